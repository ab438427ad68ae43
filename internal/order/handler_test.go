package order

import (
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func makeAppWithOrderHandler(repo Repository, notifier Notifier) *fiber.App {
	h := NewHandler(NewService(repo, notifier, "U123"))
	app := fiber.New()
	h.RegisterPublicRoutes(app)
	return app
}

const validOrderBody = `{
	"buyer_name": "A",
	"buyer_email": "a@x.com",
	"buyer_phone": "0912345678",
	"recipient_name": "B",
	"recipient_address": "台北市中正區",
	"cart_items": [
		{"category": "wood", "product_id": 4, "feature": "Cypress cutting board", "price": 100, "quantity": 2}
	]
}`

func TestCreateOrderEndpoint(t *testing.T) {
	repo := NewInMemoryRepository()
	app := makeAppWithOrderHandler(repo, &stubNotifier{})

	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(validOrderBody))
	req.Header.Set("Content-Type", "application/json")
	res, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	var out struct {
		Success bool `json:"success"`
		Order   struct {
			ID          int    `json:"id"`
			OrderNumber string `json:"order_number"`
			TotalAmount int    `json:"total_amount"`
		} `json:"order"`
		LineNotification Notification `json:"line_notification"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !out.Success || out.Order.TotalAmount != 200 || out.Order.OrderNumber == "" {
		t.Fatalf("unexpected response %+v", out)
	}
	if !out.LineNotification.Sent {
		t.Fatalf("expected notification reported as sent, got %+v", out.LineNotification)
	}
	if repo.Count() != 1 {
		t.Fatalf("expected one persisted order, got %d", repo.Count())
	}
}

func TestCreateOrderEndpoint_Validation(t *testing.T) {
	repo := NewInMemoryRepository()
	app := makeAppWithOrderHandler(repo, &stubNotifier{})

	body := strings.Replace(validOrderBody, `"buyer_name": "A",`, `"buyer_name": "",`, 1)
	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
	if repo.Count() != 0 {
		t.Fatalf("validation failure must not persist anything")
	}
}

func TestCreateOrderEndpoint_NotificationFailureStillCreated(t *testing.T) {
	repo := NewInMemoryRepository()
	app := makeAppWithOrderHandler(repo, &stubNotifier{err: errors.New("gateway down")})

	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(validOrderBody))
	req.Header.Set("Content-Type", "application/json")
	res, _ := app.Test(req)
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("notification failure must not fail the request, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(b), "gateway down") {
		t.Fatalf("notification error should be reported in the response: %s", string(b))
	}
}

func TestGetOrderEndpoint(t *testing.T) {
	repo := NewInMemoryRepository()
	_, _, err := repo.Create(
		Order{OrderNumber: "OD1", BuyerName: "A", TotalAmount: 200},
		[]Item{{ProductID: 4, ProductName: "Cypress cutting board (wood)", UnitPrice: 100, Quantity: 2, Subtotal: 200}},
	)
	if err != nil {
		t.Fatalf("seed order: %v", err)
	}
	app := makeAppWithOrderHandler(repo, &stubNotifier{})

	res, _ := app.Test(httptest.NewRequest("GET", "/api/orders/1", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	b, _ := io.ReadAll(res.Body)
	body := string(b)
	if !strings.Contains(body, "OD1") || !strings.Contains(body, "Cypress cutting board") {
		t.Fatalf("unexpected body: %s", body)
	}

	res404, _ := app.Test(httptest.NewRequest("GET", "/api/orders/999", nil))
	if res404.StatusCode != fiber.StatusNotFound {
		t.Fatalf("expected 404 for unknown order, got %d", res404.StatusCode)
	}
}

func TestListOrdersEndpoint(t *testing.T) {
	repo := NewInMemoryRepository()
	_, _, _ = repo.Create(Order{OrderNumber: "OD1"}, nil)
	_, _, _ = repo.Create(Order{OrderNumber: "OD2"}, nil)
	app := makeAppWithOrderHandler(repo, &stubNotifier{})

	res, _ := app.Test(httptest.NewRequest("GET", "/api/orders", nil))
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var out struct {
		Count int `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Count != 2 {
		t.Fatalf("expected 2 orders, got %d", out.Count)
	}
}
