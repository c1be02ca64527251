package serverutils

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"course-advisor-be/internal/constant"
	"course-advisor-be/pkg/llm"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionId string `json:"session_id"`
}

func TestValidateRequest(t *testing.T) {
	err := ValidateRequest(sampleRequest{Message: "hello"})
	assert.NoError(t, err)

	err = ValidateRequest(sampleRequest{})
	require.Error(t, err)

	var fiberErr *fiber.Error
	require.ErrorAs(t, err, &fiberErr)
	assert.Equal(t, fiber.StatusBadRequest, fiberErr.Code)
	assert.Contains(t, fiberErr.Message, "Message (required)")
}

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		name        string
		handlerErr  error
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "fiber error keeps its code and message",
			handlerErr:  fiber.NewError(fiber.StatusTooManyRequests, "daily limit reached, try again tomorrow"),
			wantStatus:  fiber.StatusTooManyRequests,
			wantMessage: "daily limit reached, try again tomorrow",
		},
		{
			name:        "caller cancellation maps to 499",
			handlerErr:  context.Canceled,
			wantStatus:  StatusClientClosedRequest,
			wantMessage: constant.GenericErrorMessage,
		},
		{
			name:        "missing provider config maps to 503",
			handlerErr:  llm.ErrNotConfigured,
			wantStatus:  fiber.StatusServiceUnavailable,
			wantMessage: constant.GenericErrorMessage,
		},
		{
			name:        "unknown error collapses to generic 500",
			handlerErr:  assert.AnError,
			wantStatus:  fiber.StatusInternalServerError,
			wantMessage: constant.GenericErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware())
			app.Get("/boom", func(c *fiber.Ctx) error {
				return tt.handlerErr
			})

			res, err := app.Test(httptest.NewRequest("GET", "/boom", nil))
			require.NoError(t, err)
			defer res.Body.Close()

			assert.Equal(t, tt.wantStatus, res.StatusCode)

			body, err := io.ReadAll(res.Body)
			require.NoError(t, err)

			var envelope Response[any]
			require.NoError(t, json.Unmarshal(body, &envelope))
			assert.Equal(t, tt.wantStatus, envelope.Code)
			assert.Equal(t, tt.wantMessage, envelope.Message)

			// Internal error text must never leak.
			if tt.handlerErr == assert.AnError {
				assert.NotContains(t, string(body), assert.AnError.Error())
			}
		})
	}
}

func TestErrorHandlerMiddlewarePassthrough(t *testing.T) {
	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.JSON(SuccessResponse("Success", fiber.Map{"answer": "42"}))
	})

	res, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, fiber.StatusOK, res.StatusCode)
}
