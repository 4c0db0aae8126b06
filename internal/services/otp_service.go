package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/you/schedulo/domain"
)

// OTPServiceImpl implements domain.OTPService. Codes live on the user
// record itself; code and expiry always move together in one update.
type OTPServiceImpl struct {
	userRepo domain.UserRepository
	now      func() time.Time
}

// NewOTPService creates a new OTP service.
func NewOTPService(userRepo domain.UserRepository) domain.OTPService {
	return &OTPServiceImpl{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// Generate implements domain.OTPService. The code is a uniformly
// random integer in [100000, 999999] from a cryptographic source.
func (s *OTPServiceImpl) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+100000), nil
}

// Issue implements domain.OTPService. Any previously issued code is
// overwritten and its window restarted; last writer wins.
func (s *OTPServiceImpl) Issue(ctx context.Context, user *domain.User, ttl time.Duration) (string, error) {
	code, err := s.Generate()
	if err != nil {
		return "", err
	}

	expiresAt := s.now().Add(ttl)
	if err := s.userRepo.SetOTP(ctx, user.ID, code, expiresAt); err != nil {
		return "", fmt.Errorf("failed to store otp: %w", err)
	}

	user.OTP = &code
	user.OTPExpiresAt = &expiresAt
	return code, nil
}

// Validate implements domain.OTPService. Comparison is on strings so a
// numerically equal but differently formatted candidate never passes.
func (s *OTPServiceImpl) Validate(user *domain.User, candidate string) error {
	if !user.HasOTP() {
		return domain.ErrOTPInvalid
	}
	if *user.OTP != candidate {
		return domain.ErrOTPInvalid
	}
	if s.now().After(*user.OTPExpiresAt) {
		return domain.ErrOTPExpired
	}
	return nil
}
