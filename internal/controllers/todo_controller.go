package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhub-be/internal/models"
	"taskhub-be/internal/service"
)

type TodoController struct {
	todoService service.TodoService
}

func NewTodoController(todoService service.TodoService) *TodoController {
	return &TodoController{
		todoService: todoService,
	}
}

// List handles GET /api/v1/todos
func (tc *TodoController) List(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var query models.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindError(c, err)
		return
	}

	todos, err := tc.todoService.List(c.Request.Context(), identity.UserID, &query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, todos)
}

// Create handles POST /api/v1/todos
func (tc *TodoController) Create(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req models.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	todo, err := tc.todoService.Create(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, todo)
}

// Get handles GET /api/v1/todos/:id
func (tc *TodoController) Get(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	todo, err := tc.todoService.Get(c.Request.Context(), c.Param("id"), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, todo)
}

// Update handles PUT /api/v1/todos/:id
func (tc *TodoController) Update(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req models.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	todo, err := tc.todoService.Update(c.Request.Context(), c.Param("id"), identity.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, todo)
}

// Toggle handles PATCH /api/v1/todos/:id/toggle
func (tc *TodoController) Toggle(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	todo, err := tc.todoService.Toggle(c.Request.Context(), c.Param("id"), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, todo)
}

// Delete handles DELETE /api/v1/todos/:id
func (tc *TodoController) Delete(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	if err := tc.todoService.Delete(c.Request.Context(), c.Param("id"), identity.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Bulk handles POST /api/v1/todos/bulk
func (tc *TodoController) Bulk(c *gin.Context) {
	identity, ok := currentIdentity(c)
	if !ok {
		return
	}

	var req models.BulkTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	count, err := tc.todoService.Bulk(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.BulkResponse{Success: true, AffectedCount: count})
}
