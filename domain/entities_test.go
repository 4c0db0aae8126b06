package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUser_HasOTP(t *testing.T) {
	code := "482913"
	expiry := time.Now().Add(10 * time.Minute)

	tests := []struct {
		name     string
		user     User
		expected bool
	}{
		{name: "no otp at all", user: User{}, expected: false},
		{name: "code without expiry", user: User{OTP: &code}, expected: false},
		{name: "expiry without code", user: User{OTPExpiresAt: &expiry}, expected: false},
		{name: "full otp window", user: User{OTP: &code, OTPExpiresAt: &expiry}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.user.HasOTP())
		})
	}
}

func TestUser_AvatarInitials(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		expected string
	}{
		{name: "two words", userName: "Alice Smith", expected: "AS"},
		{name: "single word", userName: "alice", expected: "A"},
		{name: "three words", userName: "ana maria silva", expected: "AMS"},
		{name: "extra whitespace", userName: "  Alice   Smith  ", expected: "AS"},
		{name: "empty name", userName: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := User{Name: tt.userName}
			assert.Equal(t, tt.expected, u.AvatarInitials())
		})
	}
}

func TestUser_JoinDate(t *testing.T) {
	u := User{CreatedAt: time.Date(2026, time.February, 14, 9, 30, 0, 0, time.UTC)}
	assert.Equal(t, "February 2026", u.JoinDate())
}

func TestNextStatus(t *testing.T) {
	assert.Equal(t, TaskStatusInProgress, NextStatus(TaskStatusPending))
	assert.Equal(t, TaskStatusCompleted, NextStatus(TaskStatusInProgress))
	assert.Equal(t, TaskStatusPending, NextStatus(TaskStatusCompleted))

	// Unknown values re-enter the cycle at pending.
	assert.Equal(t, TaskStatusPending, NextStatus("archived"))
}
