package serverutils

import (
	"errors"

	"course-advisor-be/internal/constant"
	"course-advisor-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
)

// StatusClientClosedRequest mirrors the nginx convention for a caller that
// disconnected before the response was ready.
const StatusClientClosedRequest = 499

// ErrorHandlerMiddleware converts errors escaping the handlers into JSON
// envelopes. Internal error text never reaches the client; everything that is
// not an explicit fiber error collapses to the generic message.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		if llm.IsCancellation(err) {
			return ctx.Status(StatusClientClosedRequest).
				JSON(ErrorResponse(StatusClientClosedRequest, constant.GenericErrorMessage))
		}

		if errors.Is(err, llm.ErrNotConfigured) {
			return ctx.Status(fiber.StatusServiceUnavailable).
				JSON(ErrorResponse(fiber.StatusServiceUnavailable, constant.GenericErrorMessage))
		}

		return ctx.Status(fiber.StatusInternalServerError).
			JSON(ErrorResponse(fiber.StatusInternalServerError, constant.GenericErrorMessage))
	}
}
