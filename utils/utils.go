package utils

import (
	"github.com/getsentry/sentry-go"
	"github.com/gofiber/fiber/v2"
)

// ErrorResponse creates a standardized error response
func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	response := fiber.Map{
		"success": false,
		"error":   message,
	}
	if err != nil {
		response["details"] = err.Error()
		if status >= fiber.StatusInternalServerError {
			sentry.CaptureException(err)
		}
	}
	return c.Status(status).JSON(response)
}

// SuccessResponse creates a standardized success response
func SuccessResponse(data interface{}) fiber.Map {
	return fiber.Map{
		"success": true,
		"data":    data,
	}
}

// Pointer returns a pointer to the given value
func Pointer[T any](v T) *T {
	return &v
}
