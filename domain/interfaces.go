package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines user data access operations. Mutations that
// move the credential-reset state machine are single atomic updates so
// concurrent requests never lose writes.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	// SetOTP stores the code and its expiry together in one update.
	SetOTP(ctx context.Context, id primitive.ObjectID, code string, expiresAt time.Time) error
	// ConsumeOTP clears the otp fields and marks the user verified for
	// reset (and email-verified) in one update.
	ConsumeOTP(ctx context.Context, id primitive.ObjectID) error
	// ClearResetVerified drops the reset authorization without touching
	// the password; used when a reset attempt fails validation.
	ClearResetVerified(ctx context.Context, id primitive.ObjectID) error
	// UpdatePassword stores the new hash and clears the reset
	// authorization in one update.
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
}

// TaskRepository defines task data access operations, always scoped to
// the owning user.
type TaskRepository interface {
	Create(ctx context.Context, task *Task) error
	FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*Task, error)
	FindByID(ctx context.Context, id, userID primitive.ObjectID) (*Task, error)
	Update(ctx context.Context, task *Task) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
	SetStatus(ctx context.Context, id, userID primitive.ObjectID, status string) error
}

// AuthService defines the authentication and credential-reset flows.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*User, error)
	Login(ctx context.Context, clientKey, email, password string) (*AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) error
	ResendOTP(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, newPassword string) error
	CurrentUser(ctx context.Context, userID string) (*User, error)
}

// TaskService defines the task board business logic.
type TaskService interface {
	Create(ctx context.Context, userID primitive.ObjectID, title, description string) (*Task, error)
	List(ctx context.Context, userID primitive.ObjectID) ([]*Task, error)
	Get(ctx context.Context, id, userID primitive.ObjectID) (*Task, error)
	Update(ctx context.Context, id, userID primitive.ObjectID, title, description string) (*Task, error)
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
	ToggleStatus(ctx context.Context, id, userID primitive.ObjectID) (*Task, error)
}

// OTPService defines one-time code operations.
type OTPService interface {
	Generate() (string, error)
	// Issue stores a fresh code on the user with the given window and
	// returns it for delivery. The code is never logged.
	Issue(ctx context.Context, user *User, ttl time.Duration) (string, error)
	// Validate checks the candidate against the stored code. It does
	// not consume the code; consumption is the caller's single update.
	Validate(user *User, candidate string) error
}

// PasswordService defines password hashing and policy operations.
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
	CheckPolicy(password string) error
}

// TokenService defines session token operations.
type TokenService interface {
	Generate(userID string) (string, error)
	Validate(token string) (*TokenClaims, error)
	TTL() time.Duration
}

// NotificationService defines outbound email operations.
type NotificationService interface {
	SendWelcome(toName, toEmail string) error
	SendOTP(toName, toEmail, code string, ttl time.Duration) error
	SendPasswordChanged(toName, toEmail string) error
}

// LoginLimiter bounds login attempts per client key.
type LoginLimiter interface {
	// Check returns ErrRateLimited and the seconds until the window
	// resets when the key has exhausted its attempts.
	Check(ctx context.Context, key string) (retryAfter int64, err error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}
