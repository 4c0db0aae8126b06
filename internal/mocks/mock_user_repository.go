package mocks

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/you/schedulo/domain"
)

// MockUserRepository implements domain.UserRepository for testing.
type MockUserRepository struct {
	CreateFunc             func(ctx context.Context, user *domain.User) error
	FindByEmailFunc        func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc           func(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	SetOTPFunc             func(ctx context.Context, id primitive.ObjectID, code string, expiresAt time.Time) error
	ConsumeOTPFunc         func(ctx context.Context, id primitive.ObjectID) error
	ClearResetVerifiedFunc func(ctx context.Context, id primitive.ObjectID) error
	UpdatePasswordFunc     func(ctx context.Context, id primitive.ObjectID, passwordHash string) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) SetOTP(ctx context.Context, id primitive.ObjectID, code string, expiresAt time.Time) error {
	if m.SetOTPFunc != nil {
		return m.SetOTPFunc(ctx, id, code, expiresAt)
	}
	return nil
}

func (m *MockUserRepository) ConsumeOTP(ctx context.Context, id primitive.ObjectID) error {
	if m.ConsumeOTPFunc != nil {
		return m.ConsumeOTPFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) ClearResetVerified(ctx context.Context, id primitive.ObjectID) error {
	if m.ClearResetVerifiedFunc != nil {
		return m.ClearResetVerifiedFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
