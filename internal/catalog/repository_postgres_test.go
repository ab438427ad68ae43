package catalog

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestListByCategory_ScansNullFeature(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"id", "feature", "price", "quantity", "new", "hot"}).
		AddRow(1, "Round mirror", 450, 3, true, false).
		AddRow(2, nil, 600, 1, false, true)
	mock.ExpectQuery("SELECT id, feature, price, quantity").WillReturnRows(rows)

	products, err := repo.ListByCategory(Mirror)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Category != Mirror || *products[0].Feature != "Round mirror" {
		t.Fatalf("unexpected first product %+v", products[0])
	}
	if products[1].Feature != nil {
		t.Fatalf("NULL feature should scan to nil, got %v", *products[1].Feature)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestListFlagged_QueriesBooleanColumn(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"id", "feature", "price", "quantity", "new", "hot"}).
		AddRow(4, "Cypress cutting board", 800, 2, true, false)
	mock.ExpectQuery(`FROM wood WHERE "new" = TRUE`).WillReturnRows(rows)

	products, err := repo.ListFlagged(Wood, FlagNew)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 1 || !products[0].New {
		t.Fatalf("unexpected flagged products %+v", products)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateQuantity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	rows := sqlmock.NewRows([]string{"id", "feature", "price", "quantity", "new", "hot"}).
		AddRow(9, "Taipei 101 magnet", 120, 5, false, true)
	mock.ExpectQuery("UPDATE magnet SET quantity").WithArgs(5, 9).WillReturnRows(rows)

	p, err := repo.UpdateQuantity(Magnet, 9, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Quantity != 5 {
		t.Fatalf("expected quantity 5, got %d", p.Quantity)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestUpdateQuantity_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock error: %v", err)
	}
	defer db.Close()
	repo := NewPostgresRepository(db)

	mock.ExpectQuery("UPDATE magnet SET quantity").WithArgs(5, 99).WillReturnError(sql.ErrNoRows)

	_, err = repo.UpdateQuantity(Magnet, 99, 5)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
