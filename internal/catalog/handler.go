package catalog

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/peihsuan88/craft-shop-backend/internal/respond"
)

var (
	ErrMissingKeyword  = errors.New("missing keyword")
	ErrMissingQuantity = errors.New("missing quantity")
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/products", h.getAllProducts)
	// fixed segments must be registered before /:category to avoid the
	// param route swallowing them
	app.Get("/api/products/new", h.getNewProducts)
	app.Get("/api/products/hot", h.getHotProducts)
	app.Get("/api/products/search", h.searchProducts)
	app.Get("/api/products/:category", h.getProductsByCategory)
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Put("/api/products/:category/:id/stock", h.updateStock)
}

func (h *Handler) getAllProducts(c *fiber.Ctx) error {
	all := h.service.ListAll()
	count := 0
	for _, products := range all {
		count += len(products)
	}
	return c.JSON(fiber.Map{
		"success":     true,
		"allProducts": all,
		"count":       count,
	})
}

func (h *Handler) getProductsByCategory(c *fiber.Ctx) error {
	name := c.Params("category")
	products, err := h.service.ListByCategory(name)
	if err != nil {
		return respond.Error(c, fiber.StatusBadRequest, err, "cannot list category "+name)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"category": name,
		"data":     products,
		"count":    len(products),
	})
}

func (h *Handler) getNewProducts(c *fiber.Ctx) error {
	products, errs := h.service.ListFlagged(FlagNew)
	resp := fiber.Map{
		"success":     true,
		"newProducts": products,
		"count":       len(products),
	}
	if len(errs) > 0 {
		resp["errors"] = errs
	}
	return c.JSON(resp)
}

func (h *Handler) getHotProducts(c *fiber.Ctx) error {
	products, errs := h.service.ListFlagged(FlagHot)
	resp := fiber.Map{
		"success":     true,
		"hotProducts": products,
		"count":       len(products),
	}
	if len(errs) > 0 {
		resp["errors"] = errs
	}
	return c.JSON(resp)
}

func (h *Handler) searchProducts(c *fiber.Ctx) error {
	keyword := c.Query("keyword")
	if keyword == "" {
		return respond.Error(c, fiber.StatusBadRequest, ErrMissingKeyword, "keyword query parameter is required")
	}
	results, err := h.service.Search(keyword)
	if err != nil {
		return respond.Error(c, fiber.StatusInternalServerError, err, "search failed")
	}
	return c.JSON(fiber.Map{
		"success": true,
		"keyword": keyword,
		"results": results,
		"count":   len(results),
	})
}

type updateStockRequest struct {
	// pointer so that a missing quantity is distinguishable from zero
	Quantity *int `json:"quantity"`
}

func (h *Handler) updateStock(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return respond.Error(c, fiber.StatusBadRequest, err, "invalid product id")
	}

	payload := new(updateStockRequest)
	if err := c.BodyParser(payload); err != nil {
		return respond.Error(c, fiber.StatusBadRequest, err, "invalid request body")
	}
	if payload.Quantity == nil {
		return respond.Error(c, fiber.StatusBadRequest, ErrMissingQuantity, "quantity is required")
	}

	updated, err := h.service.UpdateStock(c.Params("category"), id, *payload.Quantity)
	switch err {
	case nil:
	case ErrInvalidCategory:
		return respond.Error(c, fiber.StatusBadRequest, err, "cannot update category "+c.Params("category"))
	case ErrNotFound:
		return respond.Error(c, fiber.StatusNotFound, err, "product not found")
	default:
		return respond.Error(c, fiber.StatusInternalServerError, err, "stock update failed")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    updated,
	})
}
