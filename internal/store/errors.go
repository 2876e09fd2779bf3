package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicate          = errors.New("already exists")
	ErrConstraint         = errors.New("constraint violation")
	ErrPasswordAlreadySet = errors.New("password already set")
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// wrap 依 pgx 錯誤分類成 store 的 sentinel error，並保留原始錯誤
func wrap(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w (%w)", op, ErrDuplicate, err)
		case pgCheckViolation:
			return fmt.Errorf("%s: %w (%w)", op, ErrConstraint, err)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
