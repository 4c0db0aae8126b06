package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/you/schedulo/domain"
)

// TaskHandlers handles task board HTTP requests. All routes require a
// session; every operation is scoped to the authenticated user.
type TaskHandlers struct {
	taskSvc domain.TaskService
}

// NewTaskHandlers creates new task handlers.
func NewTaskHandlers(taskSvc domain.TaskService) *TaskHandlers {
	return &TaskHandlers{taskSvc: taskSvc}
}

// TaskRequest represents the create/update payload.
type TaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Add handles POST /tasks/add
func (h *TaskHandlers) Add(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskSvc.Create(c.Request.Context(), userID, req.Title, req.Description)
	if err != nil {
		h.taskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "task": taskJSON(task)})
}

// All handles GET /tasks/all
func (h *TaskHandlers) All(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}

	tasks, err := h.taskSvc.List(c.Request.Context(), userID)
	if err != nil {
		h.taskError(c, err)
		return
	}

	out := make([]gin.H, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskJSON(task))
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "tasks": out})
}

// Get handles GET /tasks/:id
func (h *TaskHandlers) Get(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	task, err := h.taskSvc.Get(c.Request.Context(), taskID, userID)
	if err != nil {
		h.taskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "task": taskJSON(task)})
}

// Update handles PUT /tasks/update/:id
func (h *TaskHandlers) Update(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskSvc.Update(c.Request.Context(), taskID, userID, req.Title, req.Description)
	if err != nil {
		h.taskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "task": taskJSON(task)})
}

// Delete handles DELETE /tasks/delete/:id
func (h *TaskHandlers) Delete(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	if err := h.taskSvc.Delete(c.Request.Context(), taskID, userID); err != nil {
		h.taskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Task deleted successfully"})
}

// ToggleStatus handles PUT /tasks/toggle-status/:id
func (h *TaskHandlers) ToggleStatus(c *gin.Context) {
	userID, ok := h.currentUser(c)
	if !ok {
		return
	}
	taskID, ok := h.taskID(c)
	if !ok {
		return
	}

	task, err := h.taskSvc.ToggleStatus(c.Request.Context(), taskID, userID)
	if err != nil {
		h.taskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "task": taskJSON(task)})
}

func (h *TaskHandlers) currentUser(c *gin.Context) (primitive.ObjectID, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
		return primitive.NilObjectID, false
	}

	id, err := primitive.ObjectIDFromHex(raw.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthenticated"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *TaskHandlers) taskID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func (h *TaskHandlers) taskError(c *gin.Context, err error) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": vErr.Fields})
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	default:
		log.Printf("TASK_INTERNAL_ERROR: request_id=%s error=%v", c.GetString("request_id"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server Error"})
	}
}

func taskJSON(task *domain.Task) gin.H {
	return gin.H{
		"id":          task.ID.Hex(),
		"title":       task.Title,
		"description": task.Description,
		"status":      task.Status,
		"createdAt":   task.CreatedAt,
		"updatedAt":   task.UpdatedAt,
	}
}
