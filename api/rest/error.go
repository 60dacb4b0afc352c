package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"imgconv/api/model"
	"imgconv/config"
	"imgconv/shared/apperr"
)

// ErrorHandler shapes errors raised outside the controllers into the same
// failure envelope the controllers use. Bodies rejected by the transport cap
// never reach a handler, so the size rejection is mapped here with the same
// code and message the validator would have produced.
func ErrorHandler(cfg *config.Config) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := http.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		if status == http.StatusRequestEntityTooLarge {
			return c.Status(status).JSON(model.ErrorResponse{
				Success: false,
				Error:   apperr.CodeFileTooLarge,
				Message: fmt.Sprintf("File size exceeds %dMB limit", cfg.MaxUploadSizeBytes/(1024*1024)),
			})
		}

		return c.Status(status).JSON(model.ErrorResponse{
			Success: false,
			Error:   "INTERNAL_ERROR",
			Message: err.Error(),
		})
	}
}
