package store

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"go-sales-stats/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS products (
	product_id INTEGER PRIMARY KEY,
	name TEXT NOT NULL,
	product_number TEXT NOT NULL DEFAULT '',
	color TEXT NOT NULL DEFAULT '',
	standard_cost TEXT NOT NULL,
	list_price TEXT NOT NULL,
	size TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS sales_order_details (
	sales_order_id INTEGER NOT NULL,
	sales_order_detail_id INTEGER NOT NULL,
	order_qty INTEGER NOT NULL,
	product_id INTEGER NOT NULL,
	unit_price TEXT NOT NULL,
	unit_price_discount TEXT NOT NULL,
	line_total TEXT NOT NULL,
	PRIMARY KEY (sales_order_id, sales_order_detail_id)
);
`

// Store is a sqlite backed product and sales repository. Money columns are
// TEXT so decimals round-trip exactly.
type Store struct {
	db *sqlx.DB
}

// Open opens (or creates) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	s := &Store{db: db}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenExisting opens the database at path read-only. It neither creates the
// file nor applies the schema, so a missing database is an error.
func OpenExisting(ctx context.Context, path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	db, err := sqlx.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates missing tables.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// SaveProducts upserts products in one transaction.
func (s *Store) SaveProducts(ctx context.Context, products []model.Product) error {
	const q = `INSERT OR REPLACE INTO products
		(product_id, name, product_number, color, standard_cost, list_price, size)
		VALUES (:product_id, :name, :product_number, :color, :standard_cost, :list_price, :size)`
	return inTx(ctx, s.db, func(tx *sqlx.Tx) error {
		for _, p := range products {
			if _, err := tx.NamedExecContext(ctx, q, p); err != nil {
				return fmt.Errorf("failed to save product %d: %w", p.ProductID, err)
			}
		}
		return nil
	})
}

// SaveSales upserts sales order details in one transaction.
func (s *Store) SaveSales(ctx context.Context, sales []model.SalesOrderDetail) error {
	const q = `INSERT OR REPLACE INTO sales_order_details
		(sales_order_id, sales_order_detail_id, order_qty, product_id, unit_price, unit_price_discount, line_total)
		VALUES (:sales_order_id, :sales_order_detail_id, :order_qty, :product_id, :unit_price, :unit_price_discount, :line_total)`
	return inTx(ctx, s.db, func(tx *sqlx.Tx) error {
		for _, sale := range sales {
			if _, err := tx.NamedExecContext(ctx, q, sale); err != nil {
				return fmt.Errorf("failed to save sales order detail %d/%d: %w",
					sale.SalesOrderID, sale.SalesOrderDetailID, err)
			}
		}
		return nil
	})
}

// LoadProducts returns all products ordered by id.
func (s *Store) LoadProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	err := s.db.SelectContext(ctx, &products, `SELECT product_id, name, product_number, color,
		standard_cost, list_price, size FROM products ORDER BY product_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return products, nil
}

// LoadSales returns all sales order details ordered by order and line.
func (s *Store) LoadSales(ctx context.Context) ([]model.SalesOrderDetail, error) {
	var sales []model.SalesOrderDetail
	err := s.db.SelectContext(ctx, &sales, `SELECT sales_order_id, sales_order_detail_id, order_qty,
		product_id, unit_price, unit_price_discount, line_total
		FROM sales_order_details ORDER BY sales_order_id, sales_order_detail_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to load sales order details: %w", err)
	}
	return sales, nil
}

func inTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
