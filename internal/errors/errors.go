package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrTaskNotFound is returned when a task is not found or not visible to the caller.
	ErrTaskNotFound = errors.New("task not found")
	// ErrMissingFields is returned when required task fields are absent.
	ErrMissingFields = errors.New("title, description, location, budget and date are required")
	// ErrMissingQuery is returned when the search query parameter is absent.
	ErrMissingQuery = errors.New("query parameter is required")
	// ErrInvalidBudget is returned when the budget is not a positive amount.
	ErrInvalidBudget = errors.New("budget must be a positive amount")
	// ErrImageTooLarge is returned when an uploaded image exceeds the size limit.
	ErrImageTooLarge = errors.New("image exceeds the 5MB limit")
	// ErrNotAnImage is returned when an upload is not an image.
	ErrNotAnImage = errors.New("only image uploads are allowed")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrTaskNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "TASK_NOT_FOUND")
	case ErrMissingFields:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_FIELDS")
	case ErrMissingQuery:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "MISSING_QUERY")
	case ErrInvalidBudget:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_BUDGET")
	case ErrImageTooLarge:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "IMAGE_TOO_LARGE")
	case ErrNotAnImage:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "UNSUPPORTED_IMAGE_TYPE")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
