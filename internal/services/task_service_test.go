package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/you/schedulo/domain"
	"github.com/you/schedulo/internal/mocks"
)

func TestTaskService_Create(t *testing.T) {
	tests := []struct {
		name        string
		title       string
		description string
		wantErr     bool
	}{
		{name: "valid task", title: "Buy milk", description: "2 liters"},
		{name: "missing title", title: "", description: "2 liters", wantErr: true},
		{name: "missing description", title: "Buy milk", description: "", wantErr: true},
		{name: "whitespace only", title: "   ", description: "\t", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := mocks.NewMockTaskRepository()
			repo.CreateFunc = func(ctx context.Context, task *domain.Task) error {
				task.ID = primitive.NewObjectID()
				return nil
			}
			svc := NewTaskService(repo)

			task, err := svc.Create(context.Background(), primitive.NewObjectID(), tt.title, tt.description)
			if tt.wantErr {
				var vErr *domain.ValidationError
				assert.ErrorAs(t, err, &vErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.TaskStatusPending, task.Status)
			assert.False(t, task.ID.IsZero())
		})
	}
}

func TestTaskService_ToggleStatus_Cycle(t *testing.T) {
	userID := primitive.NewObjectID()
	task := &domain.Task{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Status: domain.TaskStatusPending,
	}

	repo := mocks.NewMockTaskRepository()
	repo.FindByIDFunc = func(ctx context.Context, id, uid primitive.ObjectID) (*domain.Task, error) {
		u := *task
		return &u, nil
	}
	repo.SetStatusFunc = func(ctx context.Context, id, uid primitive.ObjectID, status string) error {
		task.Status = status
		return nil
	}

	svc := NewTaskService(repo)
	ctx := context.Background()

	expected := []string{
		domain.TaskStatusInProgress,
		domain.TaskStatusCompleted,
		domain.TaskStatusPending,
	}
	for _, want := range expected {
		got, err := svc.ToggleStatus(ctx, task.ID, userID)
		require.NoError(t, err)
		assert.Equal(t, want, got.Status)
	}
}

func TestTaskService_ForeignTaskIsNotFound(t *testing.T) {
	repo := mocks.NewMockTaskRepository()
	svc := NewTaskService(repo)

	_, err := svc.Get(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)

	_, err = svc.ToggleStatus(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
}
