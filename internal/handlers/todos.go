package handlers

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"todo-app-server/internal/middleware"
	"todo-app-server/internal/models"
	"todo-app-server/internal/utils"
)

// TodoHandler handles todo CRUD requests. Every operation is scoped to the
// authenticated user; touching another user's todo yields 403.
type TodoHandler struct {
	DB *gorm.DB
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(db *gorm.DB) *TodoHandler {
	return &TodoHandler{DB: db}
}

// GetTodos returns the authenticated user's todos in creation order.
func (h *TodoHandler) GetTodos(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	var todos []models.Todo
	if err := h.DB.Where("user_id = ?", userID).Order("created_at ASC").Find(&todos).Error; err != nil {
		log.Printf("todos: list failed: %v", err)
		utils.InternalServerError(c, "Failed to fetch todos")
		return
	}

	utils.Success(c, "Todos fetched successfully", todos)
}

// CreateTodoRequest represents the request body for creating a todo.
type CreateTodoRequest struct {
	Title string `json:"title" binding:"required"`
}

// CreateTodo creates a new todo owned by the authenticated user.
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateTodoRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		utils.BadRequest(c, "Title is required")
		return
	}

	todo := models.Todo{Title: req.Title, UserID: userID}
	if err := h.DB.Create(&todo).Error; err != nil {
		log.Printf("todos: create failed: %v", err)
		utils.InternalServerError(c, "Failed to create todo")
		return
	}

	utils.Created(c, "Todo created successfully", todo)
}

// UpdateTodoRequest represents the request body for updating a todo.
type UpdateTodoRequest struct {
	Title      string `json:"title" binding:"required"`
	IsComplete bool   `json:"isComplete"`
}

// UpdateTodo updates a todo's title and completion state. The update only
// matches rows owned by the caller, so a foreign todo is reported as 403
// rather than updated.
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}
	todoID := c.Param("id")

	var req UpdateTodoRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	result := h.DB.Model(&models.Todo{}).
		Where("id = ? AND user_id = ?", todoID, userID).
		Updates(map[string]interface{}{"title": req.Title, "is_complete": req.IsComplete})
	if result.Error != nil {
		log.Printf("todos: update failed: %v", result.Error)
		utils.InternalServerError(c, "Failed to update todo")
		return
	}
	if result.RowsAffected == 0 {
		utils.Forbidden(c, "You cannot modify another user's todo")
		return
	}

	var todo models.Todo
	if err := h.DB.First(&todo, "id = ?", todoID).Error; err != nil {
		log.Printf("todos: reload after update failed: %v", err)
		utils.InternalServerError(c, "Failed to update todo")
		return
	}

	utils.Success(c, "Todo updated successfully", todo)
}

// DeleteTodo deletes a todo owned by the caller; 403 otherwise.
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		utils.Unauthorized(c, "Authentication required")
		return
	}
	todoID := c.Param("id")

	result := h.DB.Where("id = ? AND user_id = ?", todoID, userID).Delete(&models.Todo{})
	if result.Error != nil {
		log.Printf("todos: delete failed: %v", result.Error)
		utils.InternalServerError(c, "Failed to delete todo")
		return
	}
	if result.RowsAffected == 0 {
		utils.Forbidden(c, "You cannot delete another user's todo")
		return
	}

	utils.Success(c, "Todo deleted successfully", nil)
}
