package mocks

import (
	"context"
	"time"

	"github.com/you/schedulo/domain"
)

// MockPasswordService implements domain.PasswordService for testing.
// Defaults hash by prefixing and verify by comparing against it, so
// tests stay fast without bcrypt work.
type MockPasswordService struct {
	HashFunc        func(password string) (string, error)
	VerifyFunc      func(hashedPassword, password string) bool
	CheckPolicyFunc func(password string) error
}

func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(password)
	}
	return "hashed:" + password, nil
}

func (m *MockPasswordService) Verify(hashedPassword, password string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedPassword, password)
	}
	return hashedPassword == "hashed:"+password
}

func (m *MockPasswordService) CheckPolicy(password string) error {
	if m.CheckPolicyFunc != nil {
		return m.CheckPolicyFunc(password)
	}
	return nil
}

// MockTokenService implements domain.TokenService for testing.
type MockTokenService struct {
	GenerateFunc func(userID string) (string, error)
	ValidateFunc func(token string) (*domain.TokenClaims, error)
	TTLFunc      func() time.Duration
}

func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) Generate(userID string) (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(userID)
	}
	return "token-" + userID, nil
}

func (m *MockTokenService) Validate(token string) (*domain.TokenClaims, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) TTL() time.Duration {
	if m.TTLFunc != nil {
		return m.TTLFunc()
	}
	return time.Hour
}

// MockOTPService implements domain.OTPService for testing.
type MockOTPService struct {
	GenerateFunc func() (string, error)
	IssueFunc    func(ctx context.Context, user *domain.User, ttl time.Duration) (string, error)
	ValidateFunc func(user *domain.User, candidate string) error
}

func NewMockOTPService() *MockOTPService {
	return &MockOTPService{}
}

func (m *MockOTPService) Generate() (string, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	return "123456", nil
}

func (m *MockOTPService) Issue(ctx context.Context, user *domain.User, ttl time.Duration) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, user, ttl)
	}
	return "123456", nil
}

func (m *MockOTPService) Validate(user *domain.User, candidate string) error {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(user, candidate)
	}
	return nil
}

// MockNotificationService implements domain.NotificationService for
// testing and records what was sent.
type MockNotificationService struct {
	SendWelcomeFunc         func(toName, toEmail string) error
	SendOTPFunc             func(toName, toEmail, code string, ttl time.Duration) error
	SendPasswordChangedFunc func(toName, toEmail string) error

	WelcomeCount int
	OTPCount     int
	ChangedCount int
	LastOTP      string
}

func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) SendWelcome(toName, toEmail string) error {
	m.WelcomeCount++
	if m.SendWelcomeFunc != nil {
		return m.SendWelcomeFunc(toName, toEmail)
	}
	return nil
}

func (m *MockNotificationService) SendOTP(toName, toEmail, code string, ttl time.Duration) error {
	m.OTPCount++
	m.LastOTP = code
	if m.SendOTPFunc != nil {
		return m.SendOTPFunc(toName, toEmail, code, ttl)
	}
	return nil
}

func (m *MockNotificationService) SendPasswordChanged(toName, toEmail string) error {
	m.ChangedCount++
	if m.SendPasswordChangedFunc != nil {
		return m.SendPasswordChangedFunc(toName, toEmail)
	}
	return nil
}

// MockLoginLimiter implements domain.LoginLimiter for testing.
type MockLoginLimiter struct {
	CheckFunc         func(ctx context.Context, key string) (int64, error)
	RecordFailureFunc func(ctx context.Context, key string) error
	ResetFunc         func(ctx context.Context, key string) error

	Failures int
	Resets   int
}

func NewMockLoginLimiter() *MockLoginLimiter {
	return &MockLoginLimiter{}
}

func (m *MockLoginLimiter) Check(ctx context.Context, key string) (int64, error) {
	if m.CheckFunc != nil {
		return m.CheckFunc(ctx, key)
	}
	return 0, nil
}

func (m *MockLoginLimiter) RecordFailure(ctx context.Context, key string) error {
	m.Failures++
	if m.RecordFailureFunc != nil {
		return m.RecordFailureFunc(ctx, key)
	}
	return nil
}

func (m *MockLoginLimiter) Reset(ctx context.Context, key string) error {
	m.Resets++
	if m.ResetFunc != nil {
		return m.ResetFunc(ctx, key)
	}
	return nil
}

// Compile-time interface compliance verification
var (
	_ domain.PasswordService     = (*MockPasswordService)(nil)
	_ domain.TokenService        = (*MockTokenService)(nil)
	_ domain.OTPService          = (*MockOTPService)(nil)
	_ domain.NotificationService = (*MockNotificationService)(nil)
	_ domain.LoginLimiter        = (*MockLoginLimiter)(nil)
)
