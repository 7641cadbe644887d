package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub-be/internal/models"
	"taskhub-be/internal/service"
)

type TaskController struct {
	taskService service.TaskService
}

func NewTaskController(taskService service.TaskService) *TaskController {
	return &TaskController{
		taskService: taskService,
	}
}

// List handles GET /api/v1/tasks
func (tc *TaskController) List(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var query models.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	tasks, err := tc.taskService.List(c.Request.Context(), identity.UserID, &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// Create handles POST /api/v1/tasks
func (tc *TaskController) Create(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req models.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := tc.taskService.Create(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Get handles GET /api/v1/tasks/:id
func (tc *TaskController) Get(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	task, err := tc.taskService.Get(c.Request.Context(), c.Param("id"), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Update handles PUT /api/v1/tasks/:id
func (tc *TaskController) Update(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req models.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := tc.taskService.Update(c.Request.Context(), c.Param("id"), identity.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// SetCompletion handles PATCH /api/v1/tasks/:id/complete
func (tc *TaskController) SetCompletion(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req models.CompleteTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	task, err := tc.taskService.SetCompletion(c.Request.Context(), c.Param("id"), identity.UserID, *req.Completed)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /api/v1/tasks/:id
func (tc *TaskController) Delete(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	if err := tc.taskService.Delete(c.Request.Context(), c.Param("id"), identity.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Bulk handles POST /api/v1/tasks/bulk
func (tc *TaskController) Bulk(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req models.BulkTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	count, err := tc.taskService.Bulk(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BulkResponse{Success: true, AffectedCount: count})
}
