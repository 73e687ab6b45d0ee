package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"techmarket/internal/domain"

	"github.com/shopspring/decimal"
)

const productColumns = "id, title, price, description, image, category, created_at"

// ProductRepository is the products table as seen by the storefront: one
// round trip per call, no caching.
type ProductRepository interface {
	Insert(ctx context.Context, product *domain.Product) error
	ListOrdered(ctx context.Context) ([]*domain.Product, error)
	UpdateByID(ctx context.Context, id int64, patch domain.ProductPatch) ([]*domain.Product, error)
	DeleteByID(ctx context.Context, id int64) ([]*domain.Product, error)
}

type productRepository struct {
	db      *sql.DB
	timeout time.Duration
}

// NewProductRepository creates a new instance of ProductRepository. Each
// query is bounded by timeout when it is positive.
func NewProductRepository(db *sql.DB, timeout time.Duration) ProductRepository {
	return &productRepository{db: db, timeout: timeout}
}

// Insert creates a product and fills in the server-assigned id and the
// price as stored
func (r *productRepository) Insert(ctx context.Context, product *domain.Product) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `
		INSERT INTO products (title, price, description, category, image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, price, created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		product.Title,
		product.Price,
		product.Description,
		product.Category,
		product.Image,
	).Scan(&product.ID, &product.Price, &product.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert product: %w", classify(err))
	}

	return nil
}

// ListOrdered returns every product ordered by ascending id
func (r *productRepository) ListOrdered(ctx context.Context) ([]*domain.Product, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `SELECT ` + productColumns + ` FROM products ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", classify(err))
	}

	return scanProducts(rows)
}

// UpdateByID applies the sparse patch to the product with the given id and
// returns the updated rows. No rows means no product matched.
func (r *productRepository) UpdateByID(ctx context.Context, id int64, patch domain.ProductPatch) ([]*domain.Product, error) {
	if patch.IsEmpty() {
		return nil, fmt.Errorf("failed to update product %d: empty patch", id)
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query, args := buildUpdate(id, patch)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", classify(err))
	}

	return scanProducts(rows)
}

// DeleteByID removes the product with the given id and returns the deleted
// rows. No rows means no product matched.
func (r *productRepository) DeleteByID(ctx context.Context, id int64) ([]*domain.Product, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	query := `DELETE FROM products WHERE id = $1 RETURNING ` + productColumns

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete product: %w", classify(err))
	}

	return scanProducts(rows)
}

// buildUpdate renders the UPDATE for the columns present in patch. Column
// names come from a fixed list, values are always parameters.
func buildUpdate(id int64, patch domain.ProductPatch) (string, []interface{}) {
	sets := []string{}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		add("title", *patch.Title)
	}
	if patch.Price != nil {
		add("price", *patch.Price)
	}
	if patch.Description != nil {
		add("description", *patch.Description)
	}
	if patch.Image != nil {
		add("image", *patch.Image)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE products SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), productColumns,
	)

	return query, args
}

func scanProducts(rows *sql.Rows) ([]*domain.Product, error) {
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		var (
			product     = &domain.Product{}
			price       decimal.NullDecimal
			description sql.NullString
			image       sql.NullString
			category    sql.NullString
		)
		err := rows.Scan(
			&product.ID,
			&product.Title,
			&price,
			&description,
			&image,
			&category,
			&product.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		product.Price = price.Decimal
		product.Description = description.String
		product.Image = image.String
		product.Category = category.String
		products = append(products, product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", classify(err))
	}

	return products, nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
