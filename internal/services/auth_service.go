package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/you/schedulo/domain"
)

// AuthServiceImpl implements domain.AuthService. It orchestrates the
// registration, login and credential-reset state machine on top of the
// user repository, the OTP engine and the token issuer.
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpSvc      domain.OTPService
	notifier    domain.NotificationService
	limiter     domain.LoginLimiter
	registerTTL time.Duration
	resetTTL    time.Duration
}

// NewAuthService creates a new auth service.
func NewAuthService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpSvc domain.OTPService,
	notifier domain.NotificationService,
	limiter domain.LoginLimiter,
	registerTTL, resetTTL time.Duration,
) domain.AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpSvc:      otpSvc,
		notifier:    notifier,
		limiter:     limiter,
		registerTTL: registerTTL,
		resetTTL:    resetTTL,
	}
}

// Register implements domain.AuthService
func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if err := s.validateRegistration(name, email, password); err != nil {
		return nil, err
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:         strings.TrimSpace(name),
		Email:        normalizeEmail(email),
		PasswordHash: hashedPassword,
		IsVerified:   false,
	}

	// The unique email index makes this fail atomically on duplicates.
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if _, err := s.otpSvc.Issue(ctx, user, s.registerTTL); err != nil {
		return nil, err
	}

	if err := s.notifier.SendWelcome(user.Name, user.Email); err != nil {
		return nil, fmt.Errorf("failed to send welcome email: %w", err)
	}

	log.Printf("USER_REGISTERED: user_id=%s timestamp=%s",
		user.ID.Hex(), time.Now().UTC().Format(time.RFC3339))
	return user, nil
}

// Login implements domain.AuthService
func (s *AuthServiceImpl) Login(ctx context.Context, clientKey, email, password string) (*domain.AuthResult, error) {
	if retryAfter, err := s.limiter.Check(ctx, clientKey); err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			return nil, &domain.RateLimitError{RetryAfter: retryAfter}
		}
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		// Unknown emails count against the limiter too, so the 404
		// cannot be used to enumerate accounts unthrottled.
		if errors.Is(err, domain.ErrUserNotFound) {
			if limErr := s.limiter.RecordFailure(ctx, clientKey); limErr != nil {
				log.Printf("LOGIN_LIMITER_FAILED: key=%s error=%v", clientKey, limErr)
			}
		}
		return nil, err
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		if err := s.limiter.RecordFailure(ctx, clientKey); err != nil {
			log.Printf("LOGIN_LIMITER_FAILED: key=%s error=%v", clientKey, err)
		}
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.limiter.Reset(ctx, clientKey); err != nil {
		log.Printf("LOGIN_LIMITER_FAILED: key=%s error=%v", clientKey, err)
	}

	token, err := s.tokenSvc.Generate(user.ID.Hex())
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &domain.AuthResult{
		User:      user,
		Token:     token,
		ExpiresIn: int64(s.tokenSvc.TTL().Seconds()),
	}, nil
}

// ForgotPassword implements domain.AuthService
func (s *AuthServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	code, err := s.otpSvc.Issue(ctx, user, s.resetTTL)
	if err != nil {
		return err
	}

	if err := s.notifier.SendOTP(user.Name, user.Email, code, s.resetTTL); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}

	log.Printf("RESET_OTP_ISSUED: user_id=%s timestamp=%s",
		user.ID.Hex(), time.Now().UTC().Format(time.RFC3339))
	return nil
}

// VerifyOTP implements domain.AuthService. Successful validation
// consumes the code and authorizes exactly one password reset; both
// happen in a single repository update.
func (s *AuthServiceImpl) VerifyOTP(ctx context.Context, email, code string) error {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	if err := s.otpSvc.Validate(user, code); err != nil {
		return err
	}

	if err := s.userRepo.ConsumeOTP(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to consume otp: %w", err)
	}

	log.Printf("OTP_VERIFIED: user_id=%s timestamp=%s",
		user.ID.Hex(), time.Now().UTC().Format(time.RFC3339))
	return nil
}

// ResendOTP implements domain.AuthService. The previous code is
// overwritten and its window restarted.
func (s *AuthServiceImpl) ResendOTP(ctx context.Context, email string) error {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	code, err := s.otpSvc.Issue(ctx, user, s.resetTTL)
	if err != nil {
		return err
	}

	if err := s.notifier.SendOTP(user.Name, user.Email, code, s.resetTTL); err != nil {
		return fmt.Errorf("failed to send otp email: %w", err)
	}

	log.Printf("RESET_OTP_RESENT: user_id=%s timestamp=%s",
		user.ID.Hex(), time.Now().UTC().Format(time.RFC3339))
	return nil
}

// ResetPassword implements domain.AuthService. The reset authorization
// is spent by the attempt itself: a policy rejection clears it just as
// a successful reset does.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, email, newPassword string) error {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		// Unknown emails answer as not-verified so the reset endpoint
		// never confirms account existence; other errors propagate.
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrResetNotVerified
		}
		return err
	}
	if !user.ResetVerified {
		return domain.ErrResetNotVerified
	}

	if err := s.passwordSvc.CheckPolicy(newPassword); err != nil {
		if clearErr := s.userRepo.ClearResetVerified(ctx, user.ID); clearErr != nil {
			return fmt.Errorf("failed to clear reset flag: %w", clearErr)
		}
		return err
	}

	hashedPassword, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.notifier.SendPasswordChanged(user.Name, user.Email); err != nil {
		log.Printf("PASSWORD_CHANGED_EMAIL_FAILED: user_id=%s error=%v", user.ID.Hex(), err)
	}

	log.Printf("PASSWORD_RESET: user_id=%s timestamp=%s",
		user.ID.Hex(), time.Now().UTC().Format(time.RFC3339))
	return nil
}

// CurrentUser implements domain.AuthService
func (s *AuthServiceImpl) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	return s.userRepo.FindByID(ctx, id)
}

func (s *AuthServiceImpl) validateRegistration(name, email, password string) error {
	fields := map[string]string{}
	if len(strings.TrimSpace(name)) < 3 {
		fields["name"] = "name must be at least 3 characters"
	}
	if _, err := mail.ParseAddress(email); err != nil {
		fields["email"] = "valid email required"
	}
	if err := s.passwordSvc.CheckPolicy(password); err != nil {
		if vErr, ok := err.(*domain.ValidationError); ok {
			fields["password"] = vErr.Fields["password"]
		} else {
			return err
		}
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
