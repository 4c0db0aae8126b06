package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/you/schedulo/domain"
)

// TaskServiceImpl implements domain.TaskService
type TaskServiceImpl struct {
	taskRepo domain.TaskRepository
}

// NewTaskService creates a new task service.
func NewTaskService(taskRepo domain.TaskRepository) domain.TaskService {
	return &TaskServiceImpl{taskRepo: taskRepo}
}

// Create implements domain.TaskService
func (s *TaskServiceImpl) Create(ctx context.Context, userID primitive.ObjectID, title, description string) (*domain.Task, error) {
	if err := validateTask(title, description); err != nil {
		return nil, err
	}

	task := &domain.Task{
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		Status:      domain.TaskStatusPending,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List implements domain.TaskService
func (s *TaskServiceImpl) List(ctx context.Context, userID primitive.ObjectID) ([]*domain.Task, error) {
	return s.taskRepo.FindByUser(ctx, userID)
}

// Get implements domain.TaskService
func (s *TaskServiceImpl) Get(ctx context.Context, id, userID primitive.ObjectID) (*domain.Task, error) {
	return s.taskRepo.FindByID(ctx, id, userID)
}

// Update implements domain.TaskService
func (s *TaskServiceImpl) Update(ctx context.Context, id, userID primitive.ObjectID, title, description string) (*domain.Task, error) {
	if err := validateTask(title, description); err != nil {
		return nil, err
	}

	task := &domain.Task{
		ID:          id,
		UserID:      userID,
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
	}
	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return s.taskRepo.FindByID(ctx, id, userID)
}

// Delete implements domain.TaskService
func (s *TaskServiceImpl) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	return s.taskRepo.Delete(ctx, id, userID)
}

// ToggleStatus implements domain.TaskService
func (s *TaskServiceImpl) ToggleStatus(ctx context.Context, id, userID primitive.ObjectID) (*domain.Task, error) {
	task, err := s.taskRepo.FindByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	next := domain.NextStatus(task.Status)
	if err := s.taskRepo.SetStatus(ctx, id, userID, next); err != nil {
		return nil, err
	}

	task.Status = next
	return task, nil
}

func validateTask(title, description string) error {
	fields := map[string]string{}
	if strings.TrimSpace(title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(description) == "" {
		fields["description"] = "description is required"
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}
	return nil
}
