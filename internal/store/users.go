package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrDuplicateEmail = errors.New("a user with that email already exists")
	ErrTokenExpired   = errors.New("reset token is invalid or has expired")
)

// User is a dashboard staff account. The storefront itself is anonymous.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  password  `json:"-"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type password struct {
	text *string
	hash []byte
}

func (p *password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.text = &text
	p.hash = hash
	return nil
}

func (p *password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(text))
}

func (p *password) Hash() []byte { return p.hash }

type UserStore struct {
	db *pgxpool.Pool
}

func (s *UserStore) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at;
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if u.Role == "" {
		u.Role = "staff"
	}

	err := s.db.QueryRow(ctx, query, u.Name, u.Email, u.Password.hash, u.Role).
		Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*User, error) {
	query := `
		SELECT id, name, email, password, role, created_at
		FROM users
		WHERE id = $1;
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	u := &User{}
	err := s.db.QueryRow(ctx, query, id).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password.hash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, name, email, password, role, created_at
		FROM users
		WHERE email = $1;
	`

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	u := &User{}
	err := s.db.QueryRow(ctx, query, email).
		Scan(&u.ID, &u.Name, &u.Email, &u.Password.hash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (s *UserStore) SaveRefreshToken(ctx context.Context, userID int64, token string) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx,
		`UPDATE users SET refresh_token = $1 WHERE id = $2;`, token, userID,
	)
	if err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

func (s *UserStore) GetRefreshToken(ctx context.Context, userID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var token string
	err := s.db.QueryRow(ctx,
		`SELECT COALESCE(refresh_token, '') FROM users WHERE id = $1;`, userID,
	).Scan(&token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get refresh token: %w", err)
	}
	return token, nil
}

func (s *UserStore) DeleteRefreshToken(ctx context.Context, userID int64) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	_, err := s.db.Exec(ctx,
		`UPDATE users SET refresh_token = NULL WHERE id = $1;`, userID,
	)
	if err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}

// CreatePasswordReset stores the sha256 hash of a one-time reset token.
// Older unconsumed tokens for the same user are superseded.
func (s *UserStore) CreatePasswordReset(ctx context.Context, userID int64, tokenHash string, exp time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	if _, err := s.db.Exec(ctx,
		`DELETE FROM password_resets WHERE user_id = $1;`, userID,
	); err != nil {
		return fmt.Errorf("clear old resets: %w", err)
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO password_resets (token_hash, user_id, expires_at) VALUES ($1, $2, $3);`,
		tokenHash, userID, time.Now().Add(exp),
	)
	if err != nil {
		return fmt.Errorf("create password reset: %w", err)
	}
	return nil
}

// ResetPassword consumes a valid token and swaps in the new bcrypt hash.
func (s *UserStore) ResetPassword(ctx context.Context, tokenHash string, newHash []byte) error {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var userID int64
	err := s.db.QueryRow(ctx,
		`SELECT user_id FROM password_resets WHERE token_hash = $1 AND expires_at > now();`,
		tokenHash,
	).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrTokenExpired
		}
		return fmt.Errorf("lookup reset token: %w", err)
	}

	if _, err := s.db.Exec(ctx,
		`UPDATE users SET password = $1 WHERE id = $2;`, newHash, userID,
	); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if _, err := s.db.Exec(ctx,
		`DELETE FROM password_resets WHERE user_id = $1;`, userID,
	); err != nil {
		return fmt.Errorf("consume reset token: %w", err)
	}
	return nil
}
