package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gotodo/internal/app"
	"gotodo/internal/model"
	"gotodo/internal/transport/http/middleware"
	"gotodo/internal/transport/http/response"
)

type TodoHandler struct {
	todoService *app.TodoService
}

type createTodoRequest struct {
	Title *string `json:"title"`
}

type updateTodoRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

func NewTodoHandler(todoService *app.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

func (h *TodoHandler) Create(c *gin.Context) {
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == nil {
		response.Error(c, http.StatusBadRequest, "title is required and must be a string")
		return
	}

	todo, err := h.todoService.Create(app.CreateTodoInput{
		UserID: userID,
		Title:  *req.Title,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrEmptyTitle), errors.Is(err, app.ErrTitleTooLong):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	response.OK(c, http.StatusCreated, gin.H{"todo": todo})
}

func (h *TodoHandler) List(c *gin.Context) {
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	todos, err := h.todoService.List(userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "internal server error")
		return
	}
	if todos == nil {
		todos = []model.Todo{}
	}

	response.OK(c, http.StatusOK, gin.H{"todos": todos})
}

func (h *TodoHandler) Update(c *gin.Context) {
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	todoID, ok := parseTodoID(c)
	if !ok {
		return
	}

	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	todo, err := h.todoService.Update(app.UpdateTodoInput{
		UserID:    userID,
		TodoID:    todoID,
		Title:     req.Title,
		Completed: req.Completed,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNoFieldsToUpdate),
			errors.Is(err, app.ErrEmptyTitle),
			errors.Is(err, app.ErrTitleTooLong):
			response.Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, app.ErrTodoNotFound):
			response.Error(c, http.StatusNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	response.OK(c, http.StatusOK, gin.H{"todo": todo})
}

func (h *TodoHandler) Delete(c *gin.Context) {
	userID, _, ok := middleware.CurrentUser(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "user not authenticated")
		return
	}

	todoID, ok := parseTodoID(c)
	if !ok {
		return
	}

	if err := h.todoService.Delete(userID, todoID); err != nil {
		switch {
		case errors.Is(err, app.ErrTodoNotFound):
			response.Error(c, http.StatusNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	response.OK(c, http.StatusOK, gin.H{"message": "todo deleted successfully"})
}

func parseTodoID(c *gin.Context) (uint, bool) {
	id64, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id64 == 0 {
		response.Error(c, http.StatusBadRequest, "invalid todo id")
		return 0, false
	}
	return uint(id64), true
}
