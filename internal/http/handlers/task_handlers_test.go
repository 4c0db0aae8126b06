package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/you/schedulo/domain"
	"github.com/you/schedulo/internal/http/middleware"
	"github.com/you/schedulo/internal/mocks"
)

func sessionTokenSvc(userID primitive.ObjectID) *mocks.MockTokenService {
	svc := mocks.NewMockTokenService()
	svc.ValidateFunc = func(token string) (*domain.TokenClaims, error) {
		if token != "valid-token" {
			return nil, domain.ErrTokenInvalid
		}
		return &domain.TokenClaims{UserID: userID.Hex()}, nil
	}
	return svc
}

func taskRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "valid-token"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestTaskHandlers_Add(t *testing.T) {
	userID := primitive.NewObjectID()

	t.Run("creates task", func(t *testing.T) {
		taskSvc := mocks.NewMockTaskService()
		taskSvc.CreateFunc = func(ctx context.Context, uid primitive.ObjectID, title, description string) (*domain.Task, error) {
			require.Equal(t, userID, uid)
			return &domain.Task{
				ID:          primitive.NewObjectID(),
				UserID:      uid,
				Title:       title,
				Description: description,
				Status:      domain.TaskStatusPending,
			}, nil
		}
		r := newTestRouter(mocks.NewMockAuthService(), taskSvc, sessionTokenSvc(userID))

		w := taskRequest(t, r, http.MethodPost, "/tasks/add", `{"title":"Ship release","description":"Cut v1.2"}`)
		require.Equal(t, http.StatusCreated, w.Code)

		var resp struct {
			Success bool `json:"success"`
			Task    struct {
				Title  string `json:"title"`
				Status string `json:"status"`
			} `json:"task"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Equal(t, "Ship release", resp.Task.Title)
		assert.Equal(t, domain.TaskStatusPending, resp.Task.Status)
	})

	t.Run("validation failure", func(t *testing.T) {
		taskSvc := mocks.NewMockTaskService()
		taskSvc.CreateFunc = func(ctx context.Context, uid primitive.ObjectID, title, description string) (*domain.Task, error) {
			return nil, domain.NewValidationError(map[string]string{"title": "title is required"})
		}
		r := newTestRouter(mocks.NewMockAuthService(), taskSvc, sessionTokenSvc(userID))

		w := taskRequest(t, r, http.MethodPost, "/tasks/add", `{"description":"no title"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "fields")
	})

	t.Run("rejected without session", func(t *testing.T) {
		r := newTestRouter(mocks.NewMockAuthService(), mocks.NewMockTaskService(), sessionTokenSvc(userID))

		req := httptest.NewRequest(http.MethodPost, "/tasks/add", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestTaskHandlers_All(t *testing.T) {
	userID := primitive.NewObjectID()

	taskSvc := mocks.NewMockTaskService()
	taskSvc.ListFunc = func(ctx context.Context, uid primitive.ObjectID) ([]*domain.Task, error) {
		return []*domain.Task{
			{ID: primitive.NewObjectID(), UserID: uid, Title: "newest", Status: domain.TaskStatusPending},
			{ID: primitive.NewObjectID(), UserID: uid, Title: "oldest", Status: domain.TaskStatusCompleted},
		}, nil
	}
	r := newTestRouter(mocks.NewMockAuthService(), taskSvc, sessionTokenSvc(userID))

	w := taskRequest(t, r, http.MethodGet, "/tasks/all", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Tasks   []struct {
			Title string `json:"title"`
		} `json:"tasks"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Tasks, 2)
	assert.Equal(t, "newest", resp.Tasks[0].Title)
}

func TestTaskHandlers_NotFound(t *testing.T) {
	userID := primitive.NewObjectID()
	r := newTestRouter(mocks.NewMockAuthService(), mocks.NewMockTaskService(), sessionTokenSvc(userID))

	t.Run("unknown task id", func(t *testing.T) {
		w := taskRequest(t, r, http.MethodGet, "/tasks/"+primitive.NewObjectID().Hex(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed task id", func(t *testing.T) {
		w := taskRequest(t, r, http.MethodGet, "/tasks/not-an-id", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("toggle on foreign task", func(t *testing.T) {
		w := taskRequest(t, r, http.MethodPut, "/tasks/toggle-status/"+primitive.NewObjectID().Hex(), "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestTaskHandlers_ToggleStatus(t *testing.T) {
	userID := primitive.NewObjectID()
	taskID := primitive.NewObjectID()

	taskSvc := mocks.NewMockTaskService()
	taskSvc.ToggleStatusFunc = func(ctx context.Context, id, uid primitive.ObjectID) (*domain.Task, error) {
		if id != taskID || uid != userID {
			return nil, domain.ErrTaskNotFound
		}
		return &domain.Task{ID: id, UserID: uid, Title: "cycle me", Status: domain.TaskStatusInProgress}, nil
	}
	r := newTestRouter(mocks.NewMockAuthService(), taskSvc, sessionTokenSvc(userID))

	w := taskRequest(t, r, http.MethodPut, "/tasks/toggle-status/"+taskID.Hex(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), domain.TaskStatusInProgress)
}

func TestTaskHandlers_Delete(t *testing.T) {
	userID := primitive.NewObjectID()
	taskID := primitive.NewObjectID()

	var deleted bool
	taskSvc := mocks.NewMockTaskService()
	taskSvc.DeleteFunc = func(ctx context.Context, id, uid primitive.ObjectID) error {
		if id != taskID {
			return domain.ErrTaskNotFound
		}
		deleted = true
		return nil
	}
	r := newTestRouter(mocks.NewMockAuthService(), taskSvc, sessionTokenSvc(userID))

	w := taskRequest(t, r, http.MethodDelete, "/tasks/delete/"+taskID.Hex(), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, deleted)
}
