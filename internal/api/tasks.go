package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing

	"task_system/internal/middleware" // Resolved identity accessor
	"task_system/internal/service"    // Task service

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// CreateTaskRequest is the payload for task creation
type CreateTaskRequest struct {
	Title       string `json:"title"`       // Required, validated by the service
	Description string `json:"description"` // Optional description
}

// UpdateTaskRequest carries optional task changes. Empty strings leave a
// field untouched; the completed flag only changes when present.
type UpdateTaskRequest struct {
	Title       string `json:"title"`       // New title, unchanged when empty
	Description string `json:"description"` // New description, unchanged when empty
	Completed   *bool  `json:"completed"`   // New completion flag, unchanged when absent
}

// CreateTaskHandler creates a task owned by the authenticated user
func CreateTaskHandler(tasks *service.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateTaskRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Owner always comes from the resolved identity
		task, err := tasks.Create(user.ID, req.Title, req.Description)
		if err != nil {
			if errors.Is(err, service.ErrEmptyTitle) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"owner_id": user.ID,     // Owner user ID
				"error":    err.Error(), // Error message
			}).Error("Task creation failed") // Log creation failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
			return
		}
		c.JSON(http.StatusOK, task)
	}
}

// ListTasksHandler returns all tasks owned by the authenticated user
func ListTasksHandler(tasks *service.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		list, err := tasks.ListForOwner(user.ID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"owner_id": user.ID,     // Owner user ID
				"error":    err.Error(), // Error message
			}).Error("Task listing failed") // Log listing failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tasks"})
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GetTaskHandler returns one task by id within the caller's scope
func GetTaskHandler(tasks *service.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		taskID, ok := parseTaskID(c)
		if !ok {
			return
		}
		task, err := tasks.Get(user.ID, taskID)
		if err != nil {
			respondTaskError(c, user.ID, taskID, err)
			return
		}
		c.JSON(http.StatusOK, task)
	}
}

// UpdateTaskHandler applies a partial update within the caller's scope
func UpdateTaskHandler(tasks *service.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		taskID, ok := parseTaskID(c)
		if !ok {
			return
		}
		var req UpdateTaskRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		task, err := tasks.Update(user.ID, taskID, req.Title, req.Description, req.Completed)
		if err != nil {
			respondTaskError(c, user.ID, taskID, err)
			return
		}
		c.JSON(http.StatusOK, task)
	}
}

// DeleteTaskHandler deletes one task within the caller's scope
func DeleteTaskHandler(tasks *service.TaskService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		taskID, ok := parseTaskID(c)
		if !ok {
			return
		}
		if err := tasks.Delete(user.ID, taskID); err != nil {
			respondTaskError(c, user.ID, taskID, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"detail": "Task deleted"})
	}
}

// parseTaskID reads the :id path parameter. A malformed id is reported
// as not found, matching how an unknown id reads.
func parseTaskID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return 0, false
	}
	return uint(id), true
}

// respondTaskError maps service errors to HTTP responses. Missing and
// not-owned tasks share one 404 so ownership is not leaked.
func respondTaskError(c *gin.Context, ownerID, taskID uint, err error) {
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		return
	}
	logrus.WithFields(logrus.Fields{
		"owner_id": ownerID,     // Requesting owner
		"task_id":  taskID,      // Target task
		"error":    err.Error(), // Error message
	}).Error("Task operation failed") // Log datastore failure
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Task operation failed"})
}
