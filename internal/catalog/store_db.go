package catalog

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"PetStore/pkg/kit"
)

const (
	pingTimeout  = 1 * time.Second
	queryTimeout = 3 * time.Second

	pgCheckCode = "23514"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	return withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		_, err := s.db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS products (
				id    BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
				name  TEXT NOT NULL,
				price NUMERIC(12,2) NOT NULL CHECK (price >= 0.01)
			)
		`)
		return err
	})
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.db.PingContext(ctx)
	})
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Product, error) {
	var out []Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		rows, err := s.db.QueryContext(ctx, `
			SELECT id, name, price
			FROM products
			ORDER BY id ASC
		`)
		if err != nil {
			return err
		}
		defer rows.Close()

		out = make([]Product, 0, 16)
		for rows.Next() {
			var p Product
			if err := rows.Scan(&p.ID, &p.Name, &p.Price); err != nil {
				return err
			}
			out = append(out, p)
		}
		return rows.Err()
	})

	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (Product, bool, error) {
	var p Product

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			SELECT id, name, price
			FROM products
			WHERE id = $1
		`, id).Scan(&p.ID, &p.Name, &p.Price)
	})

	if errors.Is(err, sql.ErrNoRows) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, err
	}
	return p, true, nil
}

func (s *PostgresStore) Insert(ctx context.Context, candidate Product) (Product, error) {
	candidate.Name = strings.TrimSpace(candidate.Name)
	if err := validateProduct(candidate); err != nil {
		return Product{}, err
	}

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.db.QueryRowContext(ctx, `
			INSERT INTO products (name, price)
			VALUES ($1, $2)
			RETURNING id
		`, candidate.Name, candidate.Price).Scan(&candidate.ID)
	})

	if err != nil {
		if isCheckViolation(err) {
			return Product{}, priceRangeError()
		}
		return Product{}, err
	}
	return candidate, nil
}

func (s *PostgresStore) Replace(ctx context.Context, id int64, candidate Product) (bool, error) {
	if candidate.ID != id {
		return false, ErrIDMismatch
	}

	candidate.Name = strings.TrimSpace(candidate.Name)
	if err := validateProduct(candidate); err != nil {
		return false, err
	}

	var n int64
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `
			UPDATE products
			SET name = $2, price = $3
			WHERE id = $1
		`, id, candidate.Name, candidate.Price)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})

	if err != nil {
		if isCheckViolation(err) {
			return false, priceRangeError()
		}
		return false, err
	}
	return n > 0, nil
}

func (s *PostgresStore) Remove(ctx context.Context, id int64) (bool, error) {
	var n int64

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		res, err := s.db.ExecContext(ctx, `
			DELETE FROM products
			WHERE id = $1
		`, id)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		return err
	})

	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func withTimeout(parent context.Context, d time.Duration, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(parent, d)
	defer cancel()
	return fn(ctx)
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgCheckCode
}

func priceRangeError() *ValidationError {
	return &ValidationError{Fields: []kit.FieldError{
		{Field: "price", Reason: "must be at least 0.01"},
	}}
}
