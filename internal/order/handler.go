package order

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/peihsuan88/craft-shop-backend/internal/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Post("/api/orders", h.createOrder)
	app.Get("/api/orders", h.listOrders)
	app.Get("/api/orders/:id", h.getOrder)
}

type createOrderRequest struct {
	BuyerName        string     `json:"buyer_name"`
	BuyerEmail       string     `json:"buyer_email"`
	BuyerPhone       string     `json:"buyer_phone"`
	RecipientName    string     `json:"recipient_name"`
	RecipientPhone   string     `json:"recipient_phone"`
	RecipientAddress string     `json:"recipient_address"`
	PaymentMethod    string     `json:"payment_method"`
	Notes            string     `json:"notes"`
	CartItems        []CartItem `json:"cart_items"`
}

func (h *Handler) createOrder(c *fiber.Ctx) error {
	payload := new(createOrderRequest)
	if err := c.BodyParser(payload); err != nil {
		return respond.Error(c, fiber.StatusBadRequest, err, "invalid request body")
	}

	result, err := h.service.Create(c.Context(), CreateInput{
		BuyerName:        payload.BuyerName,
		BuyerEmail:       payload.BuyerEmail,
		BuyerPhone:       payload.BuyerPhone,
		RecipientName:    payload.RecipientName,
		RecipientPhone:   payload.RecipientPhone,
		RecipientAddress: payload.RecipientAddress,
		PaymentMethod:    payload.PaymentMethod,
		Notes:            payload.Notes,
		CartItems:        payload.CartItems,
	})
	switch err {
	case nil:
	case ErrMissingBuyerName, ErrMissingBuyerEmail, ErrEmptyCart:
		return respond.Error(c, fiber.StatusBadRequest, err, "missing required order fields")
	default:
		return respond.Error(c, fiber.StatusInternalServerError, err, "order creation failed")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"order": fiber.Map{
			"id":           result.Order.ID,
			"order_number": result.Order.OrderNumber,
			"total_amount": result.Order.TotalAmount,
		},
		"line_notification": result.Notification,
	})
}

func (h *Handler) getOrder(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return respond.Error(c, fiber.StatusBadRequest, err, "invalid order id")
	}

	ord, items, err := h.service.GetByID(id)
	switch err {
	case nil:
	case ErrNotFound:
		return respond.Error(c, fiber.StatusNotFound, err, "order not found")
	default:
		return respond.Error(c, fiber.StatusInternalServerError, err, "order lookup failed")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"order":   ord,
		"items":   items,
	})
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	orders, err := h.service.List()
	if err != nil {
		return respond.Error(c, fiber.StatusInternalServerError, err, "cannot list orders")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"count":   len(orders),
	})
}
