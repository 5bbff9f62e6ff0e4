package utils

import (
	"errors"
	"log"
	"net/http"

	"resetclub/backend/models"
	"resetclub/backend/quiz"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SuccessResponse is the envelope of every successful academy response except
// the question set served to quiz players.
type SuccessResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Message string      `json:"message,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

type PaginatedResponse struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

func Success(c *fiber.Ctx, status int, data interface{}, meta ...interface{}) error {
	response := SuccessResponse{Success: true, Data: data}
	if len(meta) > 0 {
		response.Meta = meta[0]
	}
	return c.Status(status).JSON(response)
}

func Created(c *fiber.Ctx, data interface{}) error {
	return Success(c, fiber.StatusCreated, data)
}

func NoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func Paginate(c *fiber.Ctx, data interface{}, total int64, page int, pageSize int) error {
	return c.JSON(PaginatedResponse{
		Success:  true,
		Data:     data,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// Error writes the error envelope; details go out verbatim.
func Error(c *fiber.Ctx, status int, message string, details ...interface{}) error {
	response := ErrorResponse{
		Success: false,
		Error:   http.StatusText(status),
		Message: message,
	}
	if len(details) > 0 {
		response.Details = details[0]
	}
	return c.Status(status).JSON(response)
}

// ValidationError answers 422 with one message per offending field.
func ValidationError(c *fiber.Ctx, fields map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
		Success: false,
		Error:   "Validation Error",
		Message: "One or more fields are invalid",
		Details: fields,
	})
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// errorStatuses maps the academy and quiz sentinels to the status they are
// answered with. Anything else is a 500.
var errorStatuses = []struct {
	err    error
	status int
}{
	{gorm.ErrRecordNotFound, fiber.StatusNotFound},
	{quiz.ErrQuizNotFound, fiber.StatusNotFound},
	{quiz.ErrSessionNotFound, fiber.StatusNotFound},
	{quiz.ErrSessionOwner, fiber.StatusForbidden},
	{quiz.ErrUnknownOption, fiber.StatusBadRequest},
	{quiz.ErrNotStarted, fiber.StatusConflict},
	{quiz.ErrCompleted, fiber.StatusConflict},
	{quiz.ErrAlreadyRevealed, fiber.StatusConflict},
	{quiz.ErrNotRevealed, fiber.StatusConflict},
	{models.ErrSecondCorrect, fiber.StatusConflict},
	{models.ErrTrueFalseOptions, fiber.StatusConflict},
	{models.ErrStepBackwards, fiber.StatusConflict},
	{models.ErrUnknownStep, fiber.StatusUnprocessableEntity},
	{models.ErrValidation, fiber.StatusUnprocessableEntity},
}

// Fail answers err with the status of the sentinel it wraps. notFound, when
// given, replaces the message of a 404. Unmapped errors are logged and
// answered with a generic 500 so storage details never reach the client.
func Fail(c *fiber.Ctx, logger *log.Logger, err error, notFound ...string) error {
	var fields models.ValidationErrors
	if errors.As(err, &fields) {
		return ValidationError(c, fields)
	}

	for _, m := range errorStatuses {
		if !errors.Is(err, m.err) {
			continue
		}
		message := m.err.Error()
		if m.status == fiber.StatusNotFound && len(notFound) > 0 && notFound[0] != "" {
			message = notFound[0]
		}
		return Error(c, m.status, message)
	}

	logger.Printf("%s %s: %v", c.Method(), c.Path(), err)
	return InternalServerError(c, "Something went wrong, please try again")
}
