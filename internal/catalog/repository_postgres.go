package catalog

import (
	"database/sql"
	"fmt"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// productColumns matches the shared layout of the five category tables.
const productColumns = `id, feature, price, quantity, "new", hot`

func (r *PostgresRepository) ListByCategory(cat Category) ([]Product, error) {
	// cat comes from the fixed Categories set, never raw caller input
	q := fmt.Sprintf(`SELECT %s FROM %s ORDER BY id`, productColumns, cat)
	rows, err := r.db.Query(q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows, cat)
}

func (r *PostgresRepository) ListFlagged(cat Category, flag Flag) ([]Product, error) {
	q := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = TRUE ORDER BY id`, productColumns, cat, flagColumn(flag))
	rows, err := r.db.Query(q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectProducts(rows, cat)
}

func (r *PostgresRepository) UpdateQuantity(cat Category, id, quantity int) (Product, error) {
	q := fmt.Sprintf(`UPDATE %s SET quantity = $1 WHERE id = $2 RETURNING %s`, cat, productColumns)
	row := r.db.QueryRow(q, quantity, id)
	p, err := scanProduct(row, cat)
	if err != nil {
		if err == sql.ErrNoRows {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	return p, nil
}

// flagColumn maps a Flag onto its quoted column name. "new" must be quoted
// because it collides with the SQL keyword.
func flagColumn(flag Flag) string {
	if flag == FlagNew {
		return `"new"`
	}
	return string(flag)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(scanner rowScanner, cat Category) (Product, error) {
	p := Product{Category: cat}
	var feature sql.NullString
	if err := scanner.Scan(&p.ID, &feature, &p.Price, &p.Quantity, &p.New, &p.Hot); err != nil {
		return Product{}, err
	}
	if feature.Valid {
		p.Feature = &feature.String
	}
	return p, nil
}

func collectProducts(rows *sql.Rows, cat Category) ([]Product, error) {
	out := make([]Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows, cat)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
