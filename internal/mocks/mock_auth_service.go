package mocks

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/you/schedulo/domain"
)

// MockAuthService implements domain.AuthService for handler tests.
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, name, email, password string) (*domain.User, error)
	LoginFunc          func(ctx context.Context, clientKey, email, password string) (*domain.AuthResult, error)
	ForgotPasswordFunc func(ctx context.Context, email string) error
	VerifyOTPFunc      func(ctx context.Context, email, code string) error
	ResendOTPFunc      func(ctx context.Context, email string) error
	ResetPasswordFunc  func(ctx context.Context, email, newPassword string) error
	CurrentUserFunc    func(ctx context.Context, userID string) (*domain.User, error)
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, name, email, password)
	}
	return &domain.User{Name: name, Email: email}, nil
}

func (m *MockAuthService) Login(ctx context.Context, clientKey, email, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, clientKey, email, password)
	}
	return nil, domain.ErrInvalidCredentials
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	if m.ForgotPasswordFunc != nil {
		return m.ForgotPasswordFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) VerifyOTP(ctx context.Context, email, code string) error {
	if m.VerifyOTPFunc != nil {
		return m.VerifyOTPFunc(ctx, email, code)
	}
	return nil
}

func (m *MockAuthService) ResendOTP(ctx context.Context, email string) error {
	if m.ResendOTPFunc != nil {
		return m.ResendOTPFunc(ctx, email)
	}
	return nil
}

func (m *MockAuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, email, newPassword)
	}
	return nil
}

func (m *MockAuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	if m.CurrentUserFunc != nil {
		return m.CurrentUserFunc(ctx, userID)
	}
	return nil, domain.ErrUserNotFound
}

// MockTaskService implements domain.TaskService for handler tests.
type MockTaskService struct {
	CreateFunc       func(ctx context.Context, userID primitive.ObjectID, title, description string) (*domain.Task, error)
	ListFunc         func(ctx context.Context, userID primitive.ObjectID) ([]*domain.Task, error)
	GetFunc          func(ctx context.Context, id, userID primitive.ObjectID) (*domain.Task, error)
	UpdateFunc       func(ctx context.Context, id, userID primitive.ObjectID, title, description string) (*domain.Task, error)
	DeleteFunc       func(ctx context.Context, id, userID primitive.ObjectID) error
	ToggleStatusFunc func(ctx context.Context, id, userID primitive.ObjectID) (*domain.Task, error)
}

func NewMockTaskService() *MockTaskService {
	return &MockTaskService{}
}

func (m *MockTaskService) Create(ctx context.Context, userID primitive.ObjectID, title, description string) (*domain.Task, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, title, description)
	}
	return &domain.Task{UserID: userID, Title: title, Description: description, Status: domain.TaskStatusPending}, nil
}

func (m *MockTaskService) List(ctx context.Context, userID primitive.ObjectID) ([]*domain.Task, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	return []*domain.Task{}, nil
}

func (m *MockTaskService) Get(ctx context.Context, id, userID primitive.ObjectID) (*domain.Task, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id, userID)
	}
	return nil, domain.ErrTaskNotFound
}

func (m *MockTaskService) Update(ctx context.Context, id, userID primitive.ObjectID, title, description string) (*domain.Task, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, userID, title, description)
	}
	return nil, domain.ErrTaskNotFound
}

func (m *MockTaskService) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, userID)
	}
	return nil
}

func (m *MockTaskService) ToggleStatus(ctx context.Context, id, userID primitive.ObjectID) (*domain.Task, error) {
	if m.ToggleStatusFunc != nil {
		return m.ToggleStatusFunc(ctx, id, userID)
	}
	return nil, domain.ErrTaskNotFound
}

// Compile-time interface compliance verification
var (
	_ domain.AuthService = (*MockAuthService)(nil)
	_ domain.TaskService = (*MockTaskService)(nil)
)
