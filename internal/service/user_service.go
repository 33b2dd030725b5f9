package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/tilmock/cefr-backend/internal/config"
	"github.com/tilmock/cefr-backend/internal/model"
	"github.com/tilmock/cefr-backend/internal/repository"
)

var (
	ErrEmailTaken    = errors.New("email already registered")
	ErrUsernameTaken = errors.New("username already taken")
	ErrUserNotFound  = errors.New("user not found")
)

// UserService handles account lifecycle and entitlements.
type UserService struct {
	cfg    *config.Config
	users  *repository.UserRepository
	notifs *repository.NotificationRepository
	auth   *AuthService
	log    zerolog.Logger
}

func NewUserService(cfg *config.Config, users *repository.UserRepository, notifs *repository.NotificationRepository, auth *AuthService, log zerolog.Logger) *UserService {
	return &UserService{cfg: cfg, users: users, notifs: notifs, auth: auth, log: log}
}

// Register creates a new account with a hashed password. Uniqueness of email
// and username is checked up front so the handler can map each conflict to a
// distinct error code.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	taken, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	taken, err = s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := s.auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		Role:         model.RoleUser,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Welcome notice is best-effort; registration already succeeded.
	if err := s.notifs.Create(ctx, &model.Notification{
		Title: "New member",
		Body:  fmt.Sprintf("%s just joined the platform.", user.Username),
	}); err != nil {
		s.log.Warn().Err(err).Int("user_id", user.ID).Msg("welcome notification failed")
	}

	return user, nil
}

// Authenticate verifies email + password and returns the account.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	if err := s.auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id int) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) UpdateProfile(ctx context.Context, id int, req *model.UpdateProfileRequest) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != user.Username {
		taken, err := s.users.ExistsByUsername(ctx, req.Username)
		if err != nil {
			return nil, fmt.Errorf("check username: %w", err)
		}
		if taken {
			return nil, ErrUsernameTaken
		}
	}
	if req.Email != user.Email {
		taken, err := s.users.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, ErrEmailTaken
		}
	}

	if err := s.users.UpdateProfile(ctx, id, req.Username, req.Email); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	user.Username = req.Username
	user.Email = req.Email
	return user, nil
}

// ChangePassword verifies the current password before replacing it.
func (s *UserService) ChangePassword(ctx context.Context, id int, req *model.ChangePasswordRequest) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.auth.CheckPassword(user.PasswordHash, req.OldPassword); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := s.auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, id, hash)
}

// Promote grants admin rights; Demote revokes them.
func (s *UserService) Promote(ctx context.Context, id int) (*model.User, error) {
	return s.setRole(ctx, id, model.RoleAdmin)
}

func (s *UserService) Demote(ctx context.Context, id int) (*model.User, error) {
	return s.setRole(ctx, id, model.RoleUser)
}

func (s *UserService) setRole(ctx context.Context, id int, role model.Role) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == role {
		return user, nil
	}
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}
	user.Role = role
	return user, nil
}

// GrantPremium extends the premium entitlement by the configured grant
// window. An unexpired entitlement is extended from its current end, an
// expired or absent one from now, so granting twice always adds two windows.
func (s *UserService) GrantPremium(ctx context.Context, id int) (*model.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	base := now
	if user.PremiumUntil != nil && user.PremiumUntil.After(now) {
		base = *user.PremiumUntil
	}
	until := base.AddDate(0, 0, s.cfg.PremiumGrantDays)

	if err := s.users.UpdatePremiumUntil(ctx, id, until); err != nil {
		return nil, fmt.Errorf("update premium: %w", err)
	}
	user.PremiumUntil = &until
	return user, nil
}
