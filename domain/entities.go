package domain

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Task status cycle: pending -> in-progress -> completed -> pending.
const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in-progress"
	TaskStatusCompleted  = "completed"
)

// User represents one account in the system.
type User struct {
	ID            primitive.ObjectID
	Name          string
	Email         string
	PasswordHash  string
	OTP           *string
	OTPExpiresAt  *time.Time
	ResetVerified bool
	IsVerified    bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasOTP reports whether an OTP verification window is currently open.
func (u *User) HasOTP() bool {
	return u.OTP != nil && u.OTPExpiresAt != nil
}

// AvatarInitials derives the avatar text from the display name:
// first rune of each word, uppercased.
func (u *User) AvatarInitials() string {
	var b strings.Builder
	for _, word := range strings.Fields(u.Name) {
		r := []rune(word)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}

// JoinDate formats the creation timestamp the way the profile screen
// shows it, e.g. "January 2026".
func (u *User) JoinDate() string {
	return u.CreatedAt.Format("January 2006")
}

// Task represents one task on a user's board.
type Task struct {
	ID          primitive.ObjectID
	UserID      primitive.ObjectID
	Title       string
	Description string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NextStatus returns the successor in the status cycle.
func NextStatus(status string) string {
	switch status {
	case TaskStatusPending:
		return TaskStatusInProgress
	case TaskStatusInProgress:
		return TaskStatusCompleted
	default:
		return TaskStatusPending
	}
}

// AuthRequest represents authentication credentials.
type AuthRequest struct {
	Email    string
	Password string
}

// AuthResult represents a successful login outcome.
type AuthResult struct {
	User      *User
	Token     string
	ExpiresIn int64
}

// TokenClaims represents the decoded session token claims. Only the
// user id is embedded; profile data is fetched fresh per request.
type TokenClaims struct {
	UserID    string
	IssuedAt  int64
	ExpiresAt int64
}
