package response

import "github.com/gofiber/fiber/v2"

// Response is the envelope of every JSON API reply
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func send(c *fiber.Ctx, status int, r Response) error {
	return c.Status(status).JSON(r)
}

// Success sends a 200 response
func Success(c *fiber.Ctx, message string, data interface{}) error {
	return send(c, fiber.StatusOK, Response{Success: true, Message: message, Data: data})
}

// Created sends a 201 response
func Created(c *fiber.Ctx, message string, data interface{}) error {
	return send(c, fiber.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// Error sends a failure envelope with the given status
func Error(c *fiber.Ctx, statusCode int, message string) error {
	return ErrorWithData(c, statusCode, message, nil)
}

// ErrorWithData sends a failure envelope carrying extra detail for the client,
// such as the allowed next statuses of a refused transition.
func ErrorWithData(c *fiber.Ctx, statusCode int, message string, data interface{}) error {
	return send(c, statusCode, Response{Error: message, Data: data})
}

// BadRequest sends a 400 response
func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

// Unauthorized sends a 401 response
func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

// Forbidden sends a 403 response
func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

// NotFound sends a 404 response
func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

// Conflict sends a 409 response. Used for duplicates and lost optimistic-lock races.
func Conflict(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusConflict, message)
}

// UnprocessableEntity sends a 422 response with optional detail
func UnprocessableEntity(c *fiber.Ctx, message string, data interface{}) error {
	return ErrorWithData(c, fiber.StatusUnprocessableEntity, message, data)
}

// TooManyRequests sends a 429 response
func TooManyRequests(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusTooManyRequests, message)
}

// InternalServerError sends a 500 response
func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
