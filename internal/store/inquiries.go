package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Inquiry records a storefront visitor's purchase intent just before they
// are handed off to the WhatsApp chat. Reference is the short code embedded
// in the chat message so staff can find the product again.
type Inquiry struct {
	ID          int64     `json:"id"`
	Reference   string    `json:"reference"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type InquiryStore struct {
	db *pgxpool.Pool
}

// Create inserts the inquiry and stores its reference code in a single
// transaction. The code encodes the row id, so it can only be derived after
// the insert; running both statements in one transaction means no committed
// row ever lacks its reference.
func (s *InquiryStore) Create(ctx context.Context, i *Inquiry, encode func(int64) (string, error)) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	return withTx(s.db, ctx, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO inquiries (product_id, product_name) VALUES ($1, $2) RETURNING id, created_at;`,
			i.ProductID, i.ProductName,
		).Scan(&i.ID, &i.CreatedAt)
		if err != nil {
			return fmt.Errorf("create inquiry: %w", err)
		}

		reference, err := encode(i.ID)
		if err != nil {
			return fmt.Errorf("encode inquiry reference: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE inquiries SET reference = $1 WHERE id = $2;`, reference, i.ID,
		); err != nil {
			return fmt.Errorf("set inquiry reference: %w", err)
		}

		i.Reference = reference
		return nil
	})
}

func (s *InquiryStore) ListRecent(ctx context.Context, limit, offset int) ([]Inquiry, int, error) {
	if limit <= 0 || limit > 100 {
		limit = 30
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT id, COALESCE(reference, ''), product_id, product_name, created_at,
		       COUNT(*) OVER() AS total_count
		FROM inquiries
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2;
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	rows, err := s.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	var (
		inquiries []Inquiry
		total     int
	)
	for rows.Next() {
		var i Inquiry
		if err := rows.Scan(&i.ID, &i.Reference, &i.ProductID, &i.ProductName, &i.CreatedAt, &total); err != nil {
			return nil, 0, fmt.Errorf("scan inquiry: %w", err)
		}
		inquiries = append(inquiries, i)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("rows iteration: %w", err)
	}

	return inquiries, total, nil
}
