package mocks

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/you/schedulo/domain"
)

// MockTaskRepository implements domain.TaskRepository for testing.
type MockTaskRepository struct {
	CreateFunc     func(ctx context.Context, task *domain.Task) error
	FindByUserFunc func(ctx context.Context, userID primitive.ObjectID) ([]*domain.Task, error)
	FindByIDFunc   func(ctx context.Context, id, userID primitive.ObjectID) (*domain.Task, error)
	UpdateFunc     func(ctx context.Context, task *domain.Task) error
	DeleteFunc     func(ctx context.Context, id, userID primitive.ObjectID) error
	SetStatusFunc  func(ctx context.Context, id, userID primitive.ObjectID, status string) error
}

// NewMockTaskRepository creates a new MockTaskRepository with default behaviors.
func NewMockTaskRepository() *MockTaskRepository {
	return &MockTaskRepository{}
}

func (m *MockTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) ([]*domain.Task, error) {
	if m.FindByUserFunc != nil {
		return m.FindByUserFunc(ctx, userID)
	}
	return []*domain.Task{}, nil
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id, userID primitive.ObjectID) (*domain.Task, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id, userID)
	}
	return nil, domain.ErrTaskNotFound
}

func (m *MockTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, task)
	}
	return nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, userID)
	}
	return nil
}

func (m *MockTaskRepository) SetStatus(ctx context.Context, id, userID primitive.ObjectID, status string) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, userID, status)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.TaskRepository = (*MockTaskRepository)(nil)
