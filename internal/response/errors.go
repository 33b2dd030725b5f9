package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"
	ErrRefreshInvalid     ErrCode = "REFRESH_TOKEN_INVALID"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden       ErrCode = "FORBIDDEN"
	ErrAdminAccessOnly ErrCode = "ADMIN_ACCESS_ONLY"
	ErrNotSessionOwner ErrCode = "NOT_SESSION_OWNER"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound      ErrCode = "NOT_FOUND"
	ErrConflict      ErrCode = "CONFLICT"
	ErrEmailTaken    ErrCode = "EMAIL_TAKEN"
	ErrUsernameTaken ErrCode = "USERNAME_TAKEN"

	// ─── Mock exams ────────────────────────────────────────────────────
	ErrMockNotFound      ErrCode = "MOCK_NOT_FOUND"
	ErrAnswerKeyNotFound ErrCode = "ANSWER_KEY_NOT_FOUND"
	ErrAnswerKeyExists   ErrCode = "ANSWER_KEY_EXISTS"
	ErrAlreadyEvaluated  ErrCode = "ALREADY_EVALUATED"

	// ─── Sessions ──────────────────────────────────────────────────────
	ErrSessionNotFound ErrCode = "SESSION_NOT_FOUND"
	ErrNoActiveSession ErrCode = "NO_ACTIVE_SESSION"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrTokenExpired:
		return "The authentication token has expired."
	case ErrRefreshInvalid:
		return "The refresh token is invalid or expired."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to access this resource."
	case ErrAdminAccessOnly:
		return "This resource is restricted to administrators."
	case ErrNotSessionOwner:
		return "You can only manage your own sessions."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."
	case ErrEmailTaken:
		return "This email address is already registered."
	case ErrUsernameTaken:
		return "This username is already taken."

	// ─── Mock exams ────────────────────────────────────────────────────
	case ErrMockNotFound:
		return "Mock exam not found."
	case ErrAnswerKeyNotFound:
		return "Answer key not found for this mock exam."
	case ErrAnswerKeyExists:
		return "An answer key already exists for this mock exam."
	case ErrAlreadyEvaluated:
		return "This submission has already been evaluated."

	// ─── Sessions ──────────────────────────────────────────────────────
	case ErrSessionNotFound:
		return "Device session not found."
	case ErrNoActiveSession:
		return "No active device session found."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
