package notify

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/peihsuan88/craft-shop-backend/internal/respond"
)

type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/line/test", h.sendMessage)
}

type sendMessageRequest struct {
	UserID  string `json:"userId"`
	Message string `json:"message"`
}

func (h *Handler) sendMessage(c *fiber.Ctx) error {
	payload := new(sendMessageRequest)
	if err := c.BodyParser(payload); err != nil {
		return respond.Error(c, fiber.StatusBadRequest, err, "invalid request body")
	}
	if payload.UserID == "" {
		return respond.Error(c, fiber.StatusBadRequest, errors.New("missing required field: userId"), "please provide all required fields")
	}
	if payload.Message == "" {
		return respond.Error(c, fiber.StatusBadRequest, errors.New("missing required field: message"), "please provide all required fields")
	}

	if _, err := h.client.PushText(c.Context(), payload.UserID, payload.Message); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			// the gateway answered: propagate its status and body
			return respond.Error(c, apiErr.StatusCode, err, "LINE API rejected the message")
		}
		return respond.Error(c, fiber.StatusInternalServerError, err, "could not reach LINE API")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": payload.Message,
		"to":      payload.UserID,
	})
}
