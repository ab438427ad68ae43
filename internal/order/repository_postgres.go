package order

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	insertOrderQuery = `
		INSERT INTO orders (order_number, created_at, buyer_name, buyer_email, buyer_phone,
			recipient_name, recipient_phone, recipient_address,
			status, payment_method, payment_status,
			total_amount, shipping_fee, discount_amount, notes)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		RETURNING id
	`
	// one statement inserts every line item; together with the surrounding
	// transaction this keeps order and items all-or-nothing
	insertItemsQuery = `
		INSERT INTO order_items (order_id, product_id, product_name, unit_price, quantity, subtotal)
		SELECT $1, unnest($2::int[]), unnest($3::text[]), unnest($4::int[]), unnest($5::int[]), unnest($6::int[])
		RETURNING id
	`
	orderColumns = `id, order_number, created_at, buyer_name, buyer_email, buyer_phone,
		recipient_name, recipient_phone, recipient_address,
		status, payment_method, payment_status,
		total_amount, shipping_fee, discount_amount, notes`
	getOrderQuery   = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	listOrdersQuery = `SELECT ` + orderColumns + ` FROM orders ORDER BY id DESC`
	getItemsQuery   = `
		SELECT id, order_id, product_id, product_name, unit_price, quantity, subtotal
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ord Order, items []Item) (Order, []Item, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	err = tx.QueryRow(insertOrderQuery,
		ord.OrderNumber, ord.CreatedAt, ord.BuyerName, ord.BuyerEmail, ord.BuyerPhone,
		ord.RecipientName, ord.RecipientPhone, ord.RecipientAddress,
		ord.Status, ord.PaymentMethod, ord.PaymentStatus,
		ord.TotalAmount, ord.ShippingFee, ord.DiscountAmount, ord.Notes,
	).Scan(&ord.ID)
	if err != nil {
		return Order{}, nil, err
	}

	productIDs := make([]int64, len(items))
	names := make([]string, len(items))
	prices := make([]int64, len(items))
	quantities := make([]int64, len(items))
	subtotals := make([]int64, len(items))
	for i, it := range items {
		productIDs[i] = int64(it.ProductID)
		names[i] = it.ProductName
		prices[i] = int64(it.UnitPrice)
		quantities[i] = int64(it.Quantity)
		subtotals[i] = int64(it.Subtotal)
	}

	rows, err := tx.Query(insertItemsQuery,
		ord.ID, pq.Array(productIDs), pq.Array(names), pq.Array(prices), pq.Array(quantities), pq.Array(subtotals))
	if err != nil {
		return Order{}, nil, err
	}
	stored := make([]Item, 0, len(items))
	i := 0
	for rows.Next() && i < len(items) {
		it := items[i]
		if err := rows.Scan(&it.ID); err != nil {
			rows.Close()
			return Order{}, nil, err
		}
		it.OrderID = ord.ID
		stored = append(stored, it)
		i++
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Order{}, nil, err
	}

	if err := tx.Commit(); err != nil {
		return Order{}, nil, err
	}
	return ord, stored, nil
}

func (r *PostgresRepository) GetByID(id int) (Order, []Item, error) {
	ord, err := scanOrder(r.db.QueryRow(getOrderQuery, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return Order{}, nil, ErrNotFound
		}
		return Order{}, nil, err
	}

	rows, err := r.db.Query(getItemsQuery, id)
	if err != nil {
		return Order{}, nil, err
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.UnitPrice, &it.Quantity, &it.Subtotal); err != nil {
			return Order{}, nil, err
		}
		items = append(items, it)
	}
	return ord, items, rows.Err()
}

func (r *PostgresRepository) List() ([]Order, error) {
	rows, err := r.db.Query(listOrdersQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, ord)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(scanner rowScanner) (Order, error) {
	var ord Order
	err := scanner.Scan(
		&ord.ID, &ord.OrderNumber, &ord.CreatedAt, &ord.BuyerName, &ord.BuyerEmail, &ord.BuyerPhone,
		&ord.RecipientName, &ord.RecipientPhone, &ord.RecipientAddress,
		&ord.Status, &ord.PaymentMethod, &ord.PaymentStatus,
		&ord.TotalAmount, &ord.ShippingFee, &ord.DiscountAmount, &ord.Notes,
	)
	return ord, err
}
