package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Product is a catalog item. Description, price, image and category are all
// optional; the storefront must tolerate any of them being absent.
type Product struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description *string    `json:"description"`
	Price       *float64   `json:"price"`
	Image       *string    `json:"image"`
	CategoryID  *uuid.UUID `json:"category_id"`
	Published   bool       `json:"published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type ProductStore struct {
	db *pgxpool.Pool
}

func (s *ProductStore) Create(ctx context.Context, p *Product) error {
	query := `
		INSERT INTO products (name, description, price, image, category_id, published)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at;
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	err := s.db.QueryRow(ctx, query,
		p.Name, p.Description, p.Price, p.Image, p.CategoryID, p.Published,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (s *ProductStore) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	query := `
		SELECT id, name, description, price, image, category_id, published, created_at, updated_at
		FROM products
		WHERE id = $1;
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	p := &Product{}
	err := s.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Image,
		&p.CategoryID, &p.Published, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update overwrites the mutable fields and returns the stored row. Callers
// load the product first and apply partial changes on top of it.
func (s *ProductStore) Update(ctx context.Context, p *Product) (*Product, error) {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, image = $4,
		    category_id = $5, published = $6, updated_at = now()
		WHERE id = $7
		RETURNING id, name, description, price, image, category_id, published, created_at, updated_at;
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	updated := &Product{}
	err := s.db.QueryRow(ctx, query,
		p.Name, p.Description, p.Price, p.Image, p.CategoryID, p.Published, p.ID,
	).Scan(
		&updated.ID, &updated.Name, &updated.Description, &updated.Price, &updated.Image,
		&updated.CategoryID, &updated.Published, &updated.CreatedAt, &updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return updated, nil
}

func (s *ProductStore) SetPublished(ctx context.Context, id uuid.UUID, published bool) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cmd, err := s.db.Exec(ctx,
		`UPDATE products SET published = $1, updated_at = now() WHERE id = $2;`,
		published, id,
	)
	if err != nil {
		return fmt.Errorf("set published: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	cmd, err := s.db.Exec(ctx, `DELETE FROM products WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListPublished returns the storefront snapshot: every published product,
// newest first. The search engine ranks over this full snapshot, so there is
// no pagination at this layer.
func (s *ProductStore) ListPublished(ctx context.Context) ([]Product, error) {
	query := `
		SELECT id, name, description, price, image, category_id, published, created_at, updated_at
		FROM products
		WHERE published = true
		ORDER BY created_at DESC;
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list published products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Image,
			&p.CategoryID, &p.Published, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return products, nil
}

// List returns a dashboard page of products (published or not) with the true
// total for pagination metadata.
func (s *ProductStore) List(ctx context.Context, limit, offset int) ([]Product, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, name, description, price, image, category_id, published, created_at, updated_at,
		       COUNT(*) OVER() AS total_count
		FROM products
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2;
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := make([]Product, 0, limit)
	var total int
	for rows.Next() {
		var p Product
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Description, &p.Price, &p.Image,
			&p.CategoryID, &p.Published, &p.CreatedAt, &p.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	// Paged past the end: no rows carry the window count, so fetch it.
	if len(products) == 0 && offset > 0 {
		if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM products;`).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count products: %w", err)
		}
	}

	return products, total, nil
}
