package order

// Order represents one checkout transaction. Amounts are integer NTD; totals
// are computed once at creation and never recomputed.
type Order struct {
	ID               int    `json:"id"`
	OrderNumber      string `json:"order_number"`
	CreatedAt        string `json:"created_at"`
	BuyerName        string `json:"buyer_name"`
	BuyerEmail       string `json:"buyer_email"`
	BuyerPhone       string `json:"buyer_phone"`
	RecipientName    string `json:"recipient_name"`
	RecipientPhone   string `json:"recipient_phone"`
	RecipientAddress string `json:"recipient_address"`
	Status           string `json:"status"`
	PaymentMethod    string `json:"payment_method"`
	PaymentStatus    string `json:"payment_status"`
	TotalAmount      int    `json:"total_amount"`
	ShippingFee      int    `json:"shipping_fee"`
	DiscountAmount   int    `json:"discount_amount"`
	Notes            string `json:"notes"`
}

// Item is one line of an order. Subtotal is unit_price × quantity, fixed at
// insertion; it is never re-derived from the live product.
type Item struct {
	ID          int    `json:"id"`
	OrderID     int    `json:"order_id"`
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   int    `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Subtotal    int    `json:"subtotal"`
}

// CartItem is the caller-supplied line item consumed to build an order. It
// is never persisted as such.
type CartItem struct {
	Category  string `json:"category"`
	ProductID int    `json:"product_id"`
	Feature   string `json:"feature"`
	Price     int    `json:"price"`
	Quantity  int    `json:"quantity"`
}
