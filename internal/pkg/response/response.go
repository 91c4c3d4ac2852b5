package response

import "github.com/gofiber/fiber/v3"

// SemanticResponse is the envelope of every /api and /health response.
type SemanticResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// IntakeResult is the body of the notification intake endpoint. Exactly one
// of the fields is set.
type IntakeResult struct {
	Success bool   `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

const (
	MessageOK                  = "ok"
	MessageAccepted            = "accepted"
	MessageBadRequest          = "bad request"
	MessageUnauthorized        = "unauthorized"
	MessageNotFound            = "not found"
	MessageInternalServerError = "internal server error"
	MessageError               = "error"
)

var defaultMessages = map[int]string{
	fiber.StatusOK:           MessageOK,
	fiber.StatusAccepted:     MessageAccepted,
	fiber.StatusBadRequest:   MessageBadRequest,
	fiber.StatusUnauthorized: MessageUnauthorized,
	fiber.StatusNotFound:     MessageNotFound,
}

func Success(c fiber.Ctx, status int, message string, data any) error {
	return semantic(c, status, message, data)
}

func Error(c fiber.Ctx, status int, message string, data any) error {
	return semantic(c, status, message, data)
}

// IntakeOK writes 200 {"success":true}.
func IntakeOK(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(IntakeResult{Success: true})
}

// IntakeError writes {"error": message} with the given status.
func IntakeError(c fiber.Ctx, status int, message string) error {
	st := clampStatus(status)
	return c.Status(st).JSON(IntakeResult{Error: messageOr(message, st)})
}

func semantic(c fiber.Ctx, status int, message string, data any) error {
	st := clampStatus(status)
	return c.Status(st).JSON(SemanticResponse{Status: st, Message: messageOr(message, st), Data: data})
}

func clampStatus(status int) int {
	if status < 100 || status > 599 {
		return fiber.StatusInternalServerError
	}
	return status
}

func messageOr(message string, status int) string {
	if message != "" {
		return message
	}
	if m, ok := defaultMessages[status]; ok {
		return m
	}
	if status >= 500 {
		return MessageInternalServerError
	}
	return MessageError
}
