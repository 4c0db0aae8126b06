package auth

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/you/schedulo/domain"
)

// Canonical password policy, applied uniformly to registration and
// reset: 8-64 characters with at least one uppercase letter, one digit
// and one symbol.
const (
	passwordMinLen = 8
	passwordMaxLen = 64
)

// PasswordServiceImpl implements domain.PasswordService
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a new password service with the given
// bcrypt cost factor.
func NewPasswordService(cost int) domain.PasswordService {
	if cost < bcrypt.MinCost {
		cost = 12
	}
	return &PasswordServiceImpl{cost: cost}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService
func (p *PasswordServiceImpl) Verify(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// CheckPolicy implements domain.PasswordService
func (p *PasswordServiceImpl) CheckPolicy(password string) error {
	// Length bounds are in characters, not bytes.
	if n := utf8.RuneCountInString(password); n < passwordMinLen || n > passwordMaxLen {
		return domain.NewValidationError(map[string]string{
			"password": "password must be 8-64 characters long",
		})
	}

	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSymbol = true
		}
	}

	if !hasUpper || !hasDigit || !hasSymbol {
		return domain.NewValidationError(map[string]string{
			"password": "password must contain an uppercase letter, a digit and a symbol",
		})
	}

	return nil
}
