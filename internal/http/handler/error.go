package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docstore/internal/http/middleware"
	"docstore/internal/logging"
	"docstore/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "FILE_REQUIRED", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

// apiError is the HTTP rendering of a service error kind.
type apiError struct {
	status  int
	code    string
	message string
}

// statusFor maps a service error to its HTTP status, code and safe message.
func statusFor(err error) apiError {
	switch {
	case errors.Is(err, service.ErrEmptyFilename):
		return apiError{fiber.StatusBadRequest, "EMPTY_FILENAME", "no file selected"}
	case errors.Is(err, service.ErrReaderNil):
		return apiError{fiber.StatusBadRequest, "FILE_REQUIRED", "file is required"}
	case errors.Is(err, service.ErrInvalidFileType):
		// The message names the rejected and allowed extensions only.
		return apiError{fiber.StatusBadRequest, "INVALID_FILE_TYPE", err.Error()}
	case errors.Is(err, service.ErrNotFound):
		return apiError{fiber.StatusNotFound, "NOT_FOUND", "document not found"}
	case errors.Is(err, service.ErrStorageFailure):
		return apiError{fiber.StatusInternalServerError, "STORAGE_ERROR", "document storage failed"}
	case errors.Is(err, service.ErrPersistenceFailure):
		return apiError{fiber.StatusInternalServerError, "PERSISTENCE_ERROR", "document metadata could not be saved or read"}
	default:
		return apiError{fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error"}
	}
}

// writeServiceError renders err using statusFor. Server-side failures are
// logged with their cause, which never reaches the client.
func writeServiceError(c *fiber.Ctx, err error) error {
	e := statusFor(err)
	if e.status >= fiber.StatusInternalServerError {
		logging.Default().Error("request failed", err, map[string]any{
			"component":  "http",
			"request_id": requestIDFromCtx(c),
			"method":     c.Method(),
			"path":       c.Path(),
			"code":       e.code,
		})
	}
	return writeError(c, e.status, e.code, e.message)
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if !errors.As(err, &fe) {
			return writeServiceError(c, err)
		}

		switch fe.Code {
		case fiber.StatusBadRequest:
			return writeError(c, fe.Code, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, fe.Code, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, fe.Code, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, fe.Code, "FILE_TOO_LARGE", "file exceeds the maximum upload size")
		default:
			return writeError(c, fe.Code, "INTERNAL_ERROR", "internal server error")
		}
	}
}
