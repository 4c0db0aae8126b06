package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitError_Unwrap(t *testing.T) {
	err := fmt.Errorf("login rejected: %w", &RateLimitError{RetryAfter: 42})

	assert.True(t, errors.Is(err, ErrRateLimited))

	var rlErr *RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, int64(42), rlErr.RetryAfter)
}

func TestValidationError(t *testing.T) {
	err := NewValidationError(map[string]string{"password": "must contain a digit"})

	var vErr *ValidationError
	require.True(t, errors.As(error(err), &vErr))
	assert.Equal(t, "must contain a digit", vErr.Fields["password"])
	assert.Equal(t, "validation failed", vErr.Error())
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrUserNotFound,
		ErrInvalidCredentials,
		ErrEmailTaken,
		ErrRateLimited,
		ErrOTPInvalid,
		ErrOTPExpired,
		ErrTokenInvalid,
		ErrTokenExpired,
		ErrTokenMalformed,
		ErrResetNotVerified,
		ErrTaskNotFound,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}
