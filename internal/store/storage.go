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

var (
	ErrNotFound      = errors.New("resource not found")
	ErrConflict      = errors.New("resource already exists")
	ErrCategoryInUse = errors.New("category has associated products")

	QueryTimeoutDuration = time.Second * 5
)

type Storage struct {
	Products interface {
		Create(context.Context, *Product) error
		GetByID(context.Context, uuid.UUID) (*Product, error)
		Update(context.Context, *Product) (*Product, error)
		SetPublished(context.Context, uuid.UUID, bool) error
		Delete(context.Context, uuid.UUID) error
		ListPublished(context.Context) ([]Product, error)
		List(ctx context.Context, limit, offset int) ([]Product, int, error)
	}
	Categories interface {
		Create(context.Context, *Category) error
		GetByID(context.Context, uuid.UUID) (*Category, error)
		List(context.Context) ([]Category, error)
		Update(context.Context, *Category) (*Category, error)
		Delete(context.Context, uuid.UUID) error
	}
	Users interface {
		Create(context.Context, *User) error
		GetByID(context.Context, int64) (*User, error)
		GetByEmail(context.Context, string) (*User, error)
		CreatePasswordReset(ctx context.Context, userID int64, tokenHash string, exp time.Duration) error
		ResetPassword(ctx context.Context, tokenHash string, newHash []byte) error
		SaveRefreshToken(ctx context.Context, userID int64, token string) error
		GetRefreshToken(ctx context.Context, userID int64) (string, error)
		DeleteRefreshToken(ctx context.Context, userID int64) error
	}
	Inquiries interface {
		Create(ctx context.Context, i *Inquiry, encode func(int64) (string, error)) error
		ListRecent(ctx context.Context, limit, offset int) ([]Inquiry, int, error)
	}
}

func withTx(db *pgxpool.Pool, ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func NewStorage(db *pgxpool.Pool) Storage {
	return Storage{
		Products:   &ProductStore{db},
		Categories: &CategoryStore{db},
		Users:      &UserStore{db},
		Inquiries:  &InquiryStore{db},
	}
}
