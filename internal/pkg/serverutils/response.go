package serverutils

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"ai-study-assistant-be/pkg/extract"
	"ai-study-assistant-be/pkg/llm"
)

type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

type errorBody struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// ErrUnknownSession is returned when the bearer token references a session
// that expired or never existed.
var ErrUnknownSession = errors.New("session not found or expired")

var validate = validator.New()

func ValidateRequest(req interface{}) error {
	return validate.Struct(req)
}

// ErrorHandlerMiddleware converts the pipeline's error taxonomy into JSON
// responses. Every failure is terminal for the current action; nothing here
// retries or queues.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		code := fiber.StatusInternalServerError
		message := "Internal server error"

		var fiberErr *fiber.Error
		var validationErrs validator.ValidationErrors

		switch {
		case errors.As(err, &fiberErr):
			code = fiberErr.Code
			message = fiberErr.Message
		case errors.As(err, &validationErrs):
			code = fiber.StatusBadRequest
			message = "Invalid request: " + validationErrs.Error()
		case errors.Is(err, extract.ErrEmptyInput):
			code = fiber.StatusBadRequest
			message = "Please provide a question, or upload a file with readable content."
		case errors.Is(err, extract.ErrUnreadable):
			code = fiber.StatusUnprocessableEntity
			message = "The uploaded file could not be processed."
		case errors.Is(err, extract.ErrUnintelligible):
			code = fiber.StatusUnprocessableEntity
			message = "Sorry, the audio could not be understood."
		case errors.Is(err, extract.ErrUnreachable):
			code = fiber.StatusBadGateway
			message = "A required service is unreachable. Please try again later."
		case errors.Is(err, llm.ErrEmptyCompletion):
			code = fiber.StatusBadGateway
			message = "No hint was produced. Please try again."
		case errors.Is(err, llm.ErrUnavailable):
			code = fiber.StatusBadGateway
			message = "Error getting AI response. Please try again later."
		case errors.Is(err, ErrUnknownSession):
			code = fiber.StatusUnauthorized
			message = "Session not found or expired. Please start a new session."
		}

		return ctx.Status(code).JSON(errorBody{
			Success: false,
			Code:    code,
			Message: message,
		})
	}
}
