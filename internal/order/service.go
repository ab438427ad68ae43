package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingBuyerName  = errors.New("buyer_name is required")
	ErrMissingBuyerEmail = errors.New("buyer_email is required")
	ErrEmptyCart         = errors.New("cart_items cannot be empty")
)

const (
	// flat shipping fee in NTD, charged on every order
	shippingFee = 100
	// no discount scheme exists yet
	discountAmount = 0

	initialStatus        = "pending"
	initialPaymentStatus = "unpaid"
)

// Notifier delivers a text message to one recipient. Failures are advisory,
// never authoritative for the order itself.
type Notifier interface {
	PushText(ctx context.Context, to, text string) (string, error)
}

type Service struct {
	repo      Repository
	notifier  Notifier
	recipient string
}

// NewService builds the order workflow. recipient is the LINE user the order
// summary is pushed to; when empty, notification is skipped.
func NewService(repo Repository, notifier Notifier, recipient string) *Service {
	return &Service{repo: repo, notifier: notifier, recipient: recipient}
}

// CreateInput is the validated payload of a checkout request.
type CreateInput struct {
	BuyerName        string
	BuyerEmail       string
	BuyerPhone       string
	RecipientName    string
	RecipientPhone   string
	RecipientAddress string
	PaymentMethod    string
	Notes            string
	CartItems        []CartItem
}

// Notification reports the outcome of the best-effort LINE push, separate
// from the authoritative persistence result.
type Notification struct {
	Sent  bool   `json:"sent"`
	Error string `json:"error,omitempty"`
}

type CreateResult struct {
	Order        Order
	Items        []Item
	Notification Notification
}

// Create runs the checkout workflow: validate, compute totals, persist order
// and items in one transaction, then push the summary notification. A failed
// notification leaves the persisted order intact and is reported in the
// result instead of as an error.
func (s *Service) Create(ctx context.Context, in CreateInput) (CreateResult, error) {
	if err := validate(in); err != nil {
		return CreateResult{}, err
	}

	total := 0
	items := make([]Item, 0, len(in.CartItems))
	for _, ci := range in.CartItems {
		subtotal := ci.Price * ci.Quantity
		total += subtotal
		items = append(items, Item{
			ProductID:   ci.ProductID,
			ProductName: fmt.Sprintf("%s (%s)", ci.Feature, ci.Category),
			UnitPrice:   ci.Price,
			Quantity:    ci.Quantity,
			Subtotal:    subtotal,
		})
	}

	now := time.Now().UTC()
	ord := Order{
		OrderNumber:      newOrderNumber(now),
		CreatedAt:        now.Format(time.RFC3339),
		BuyerName:        in.BuyerName,
		BuyerEmail:       in.BuyerEmail,
		BuyerPhone:       in.BuyerPhone,
		RecipientName:    in.RecipientName,
		RecipientPhone:   in.RecipientPhone,
		RecipientAddress: in.RecipientAddress,
		Status:           initialStatus,
		PaymentMethod:    in.PaymentMethod,
		PaymentStatus:    initialPaymentStatus,
		TotalAmount:      total,
		ShippingFee:      shippingFee,
		DiscountAmount:   discountAmount,
		Notes:            in.Notes,
	}

	created, stored, err := s.repo.Create(ord, items)
	if err != nil {
		return CreateResult{}, fmt.Errorf("persist order: %w", err)
	}

	result := CreateResult{Order: created, Items: stored}
	result.Notification = s.notify(ctx, created, stored)
	return result, nil
}

func (s *Service) notify(ctx context.Context, ord Order, items []Item) Notification {
	if s.notifier == nil || s.recipient == "" {
		return Notification{Sent: false, Error: "no notification recipient configured"}
	}
	if _, err := s.notifier.PushText(ctx, s.recipient, SummaryMessage(ord, items)); err != nil {
		slog.Warn("order notification failed", "order_number", ord.OrderNumber, "error", err)
		return Notification{Sent: false, Error: err.Error()}
	}
	return Notification{Sent: true}
}

func (s *Service) GetByID(id int) (Order, []Item, error) {
	return s.repo.GetByID(id)
}

func (s *Service) List() ([]Order, error) {
	return s.repo.List()
}

func validate(in CreateInput) error {
	if in.BuyerName == "" {
		return ErrMissingBuyerName
	}
	if in.BuyerEmail == "" {
		return ErrMissingBuyerEmail
	}
	if len(in.CartItems) == 0 {
		return ErrEmptyCart
	}
	return nil
}

// newOrderNumber returns a collision-resistant order number. The timestamp
// prefix keeps numbers roughly sortable; the random suffix keeps concurrent
// checkouts within the same instant distinct.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(uuid.NewString()[:8])
	return fmt.Sprintf("OD%s-%s", now.Format("20060102150405"), suffix)
}

// SummaryMessage renders the human-readable order summary pushed over LINE.
func SummaryMessage(ord Order, items []Item) string {
	var b strings.Builder
	b.WriteString("新訂單通知\n")
	fmt.Fprintf(&b, "訂單編號: %s\n", ord.OrderNumber)
	fmt.Fprintf(&b, "訂購人: %s\n", ord.BuyerName)
	fmt.Fprintf(&b, "電話: %s\n", ord.BuyerPhone)
	fmt.Fprintf(&b, "商品金額: %d\n", ord.TotalAmount)
	b.WriteString("訂購商品:\n")
	for _, it := range items {
		fmt.Fprintf(&b, "- %s x%d = %d\n", it.ProductName, it.Quantity, it.Subtotal)
	}
	grand := ord.TotalAmount + ord.ShippingFee - ord.DiscountAmount
	fmt.Fprintf(&b, "運費: %d\n", ord.ShippingFee)
	if ord.DiscountAmount > 0 {
		fmt.Fprintf(&b, "折扣: -%d\n", ord.DiscountAmount)
	}
	fmt.Fprintf(&b, "應付總額: %d", grand)
	return b.String()
}
