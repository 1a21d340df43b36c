package utils

import (
	"github.com/gofiber/fiber/v2"

	"github.com/coverage-analytics/internal/pkg/errors"
)

// SuccessResponse is the envelope of every successful analytics response.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Meta    *Meta       `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool             `json:"success"`
	Error   *errors.AppError `json:"error"`
}

type Meta struct {
	Total int `json:"total,omitempty"`
	Limit int `json:"limit,omitempty"`
}

func SendSuccess(c *fiber.Ctx, data interface{}, meta *Meta) error {
	return c.JSON(SuccessResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// SendAccepted answers 202 for work handed to the forecast worker.
func SendAccepted(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusAccepted).JSON(SuccessResponse{
		Success: true,
		Data:    data,
	})
}

// SendError renders an *AppError anywhere in the chain with its status.
// Anything else is reported as a bare 500 so internals never leak.
func SendError(c *fiber.Ctx, err error) error {
	if appErr, ok := errors.As(err); ok {
		status := appErr.StatusCode
		if status == 0 {
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(ErrorResponse{Error: appErr})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
		Error: errors.ErrInternalServer,
	})
}
