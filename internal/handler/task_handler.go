package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"taskmarket/internal/auth"
	"taskmarket/internal/errors"
	"taskmarket/internal/service"
	"taskmarket/internal/storage"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	taskService service.TaskService
	images      *storage.ImageStore
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(taskService service.TaskService, images *storage.ImageStore) *TaskHandler {
	return &TaskHandler{taskService: taskService, images: images}
}

// CreateTaskRequest represents the multipart form fields of a new task.
type CreateTaskRequest struct {
	Title       string `form:"title" validate:"required"`
	Description string `form:"description" validate:"required"`
	Location    string `form:"location" validate:"required"`
	Budget      string `form:"budget" validate:"required"`
	Date        string `form:"date" validate:"required"`
}

// Create godoc
// @Summary Create a task
// @Tags tasks
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param title formData string true "Title"
// @Param description formData string true "Description"
// @Param location formData string true "Location"
// @Param budget formData string true "Budget"
// @Param date formData string true "Date"
// @Param image formData file false "Task image (max 5MB)"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	claims, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "invalid token, authorization denied",
			Code:  "INVALID_TOKEN",
		})
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	budget, err := decimal.NewFromString(req.Budget)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(errors.ErrInvalidBudget)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	// Image is optional; absence of the form file is not an error.
	imagePath := ""
	if file, ferr := c.FormFile("image"); ferr == nil {
		imagePath, err = h.images.Save(file)
		if err != nil {
			httpErr := errors.MapErrorToHTTP(err)
			return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
		}
	}

	task, err := h.taskService.Create(c.Request().Context(), service.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Budget:      budget,
		Date:        req.Date,
		Image:       imagePath,
		OwnerID:     claims.UserID,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusCreated, echo.Map{"task": task})
}

// List godoc
// @Summary List the authenticated user's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	claims, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "invalid token, authorization denied",
			Code:  "INVALID_TOKEN",
		})
	}

	tasks, err := h.taskService.ListByOwner(c.Request().Context(), claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, echo.Map{"tasks": tasks})
}

// Search godoc
// @Summary Search tasks by title
// @Tags tasks
// @Produce json
// @Param query query string true "Title substring, case-insensitive"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /tasks/search [get]
func (h *TaskHandler) Search(c echo.Context) error {
	tasks, err := h.taskService.Search(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, echo.Map{"tasks": tasks})
}

// Complete godoc
// @Summary Mark a task as completed
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /task/{id}/complete [put]
func (h *TaskHandler) Complete(c echo.Context) error {
	claims, ok := auth.UserFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "invalid token, authorization denied",
			Code:  "INVALID_TOKEN",
		})
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid task ID",
			Code:  "INVALID_TASK_ID",
		})
	}

	task, err := h.taskService.Complete(c.Request().Context(), taskID, claims.UserID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, echo.Map{"task": task})
}

// AddBid godoc
// @Summary Add a bid to a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /task/{id}/bid [post]
func (h *TaskHandler) AddBid(c echo.Context) error {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid task ID",
			Code:  "INVALID_TASK_ID",
		})
	}

	task, err := h.taskService.AddBid(c.Request().Context(), taskID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	return c.JSON(http.StatusOK, echo.Map{"task": task})
}
