package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/tilmock/cefr-backend/internal/config"
	"github.com/tilmock/cefr-backend/internal/model"
	"github.com/tilmock/cefr-backend/internal/repository"
)

var ErrSessionNotFound = errors.New("device session not found")

// DeviceSessionService enforces the per-user concurrent device cap.
type DeviceSessionService struct {
	cfg      *config.Config
	sessions *repository.DeviceSessionRepository
	log      zerolog.Logger
}

func NewDeviceSessionService(cfg *config.Config, sessions *repository.DeviceSessionRepository, log zerolog.Logger) *DeviceSessionService {
	return &DeviceSessionService{cfg: cfg, sessions: sessions, log: log}
}

// Register records a login from a device. When the user already has the
// maximum number of active sessions, the oldest ones are evicted inside the
// same transaction so the cap holds even under concurrent logins.
func (s *DeviceSessionService) Register(ctx context.Context, userID int, req *model.CreateDeviceSessionRequest, ip string) (*model.DeviceSession, []model.DeviceSession, error) {
	deviceType := req.DeviceType
	if deviceType == "" {
		deviceType = model.DeviceTypeUnknown
	}
	if req.IPAddress != "" {
		ip = req.IPAddress
	}

	sess := &model.DeviceSession{
		UserID:            userID,
		DeviceFingerprint: req.DeviceFingerprint,
		DeviceName:        req.DeviceName,
		DeviceType:        deviceType,
		Browser:           req.Browser,
		IPAddress:         ip,
	}

	evicted, err := s.sessions.CreateWithLimit(ctx, sess, s.cfg.MaxDeviceSessions)
	if err != nil {
		return nil, nil, fmt.Errorf("register device session: %w", err)
	}

	for _, v := range evicted {
		s.log.Info().
			Int("user_id", userID).
			Int("evicted_session_id", v.ID).
			Str("device_name", v.DeviceName).
			Msg("device session evicted by cap")
	}
	return sess, evicted, nil
}

func (s *DeviceSessionService) Get(ctx context.Context, id int) (*model.DeviceSession, error) {
	sess, err := s.sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

func (s *DeviceSessionService) List(ctx context.Context, userID int, activeOnly bool) ([]model.DeviceSession, error) {
	return s.sessions.ListByUser(ctx, userID, activeOnly)
}

func (s *DeviceSessionService) CountActive(ctx context.Context, userID int) (int, error) {
	return s.sessions.CountActive(ctx, userID)
}

// Touch refreshes last_active for a session. Missing sessions are not an
// error: the device may have been evicted since its last request.
func (s *DeviceSessionService) Touch(ctx context.Context, userID int, fingerprint string) {
	sess, err := s.sessions.GetByFingerprint(ctx, userID, fingerprint)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			s.log.Warn().Err(err).Int("user_id", userID).Msg("session touch lookup failed")
		}
		return
	}
	if _, err := s.sessions.Touch(ctx, sess.ID); err != nil {
		s.log.Warn().Err(err).Int("session_id", sess.ID).Msg("session touch failed")
	}
}

// Logout deactivates the caller's active sessions matching the device
// fingerprint. The rows stay behind as login history; only active sessions
// count against the cap, so the slot frees up immediately.
func (s *DeviceSessionService) Logout(ctx context.Context, userID int, fingerprint string) (int, error) {
	sessions, err := s.sessions.ListByUser(ctx, userID, true)
	if err != nil {
		return 0, fmt.Errorf("list sessions: %w", err)
	}

	ended := 0
	for _, sess := range sessions {
		if sess.DeviceFingerprint != fingerprint {
			continue
		}
		ok, err := s.sessions.Deactivate(ctx, sess.ID)
		if err != nil {
			return ended, fmt.Errorf("deactivate session: %w", err)
		}
		if ok {
			ended++
		}
	}
	return ended, nil
}

// Delete removes one session. The ownerID guard stops users from logging out
// other people's devices; admins pass ownerID = 0 to skip the check.
func (s *DeviceSessionService) Delete(ctx context.Context, id, ownerID int) error {
	if ownerID > 0 {
		sess, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		if sess.UserID != ownerID {
			return ErrSessionNotFound
		}
	}

	ok, err := s.sessions.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteAll removes every session of a user, optionally keeping the one the
// request came from.
func (s *DeviceSessionService) DeleteAll(ctx context.Context, userID int, keepFingerprint string) (int64, error) {
	var exclude *int
	if keepFingerprint != "" {
		sess, err := s.sessions.GetByFingerprint(ctx, userID, keepFingerprint)
		if err == nil {
			exclude = &sess.ID
		} else if !errors.Is(err, pgx.ErrNoRows) {
			return 0, err
		}
	}
	return s.sessions.DeleteAllByUser(ctx, userID, exclude)
}
