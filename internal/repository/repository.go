package repository

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("not found")

// StateRepository persists small client-side values under fixed keys.
type StateRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type Repository struct {
	State StateRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		State: NewStateRepository(db),
	}
}
