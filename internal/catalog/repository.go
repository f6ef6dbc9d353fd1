package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides read access to tenant catalog data.
type Repository interface {
	ListProducts(ctx context.Context, ownerID string) ([]Product, error)
	ListCategories(ctx context.Context, ownerID string) ([]Category, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository builds a pgx backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

func (r *repository) ListProducts(ctx context.Context, ownerID string) ([]Product, error) {
	const query = `SELECT id, name, sku, category_id, price, cost_price, quantity, min_stock_level, supplier, qr_code, owner_id, created_at, updated_at
		FROM products WHERE owner_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.CategoryID, &p.Price, &p.CostPrice, &p.Quantity, &p.MinStockLevel, &p.Supplier, &p.QRCode, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("catalog: scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: list products: %w", err)
	}
	return products, nil
}

func (r *repository) ListCategories(ctx context.Context, ownerID string) ([]Category, error) {
	const query = `SELECT id, name, owner_id FROM categories WHERE owner_id = $1 ORDER BY name`
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("catalog: list categories: %w", err)
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.OwnerID); err != nil {
			return nil, fmt.Errorf("catalog: scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: list categories: %w", err)
	}
	return categories, nil
}
