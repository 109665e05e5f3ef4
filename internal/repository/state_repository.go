package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type stateRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewStateRepository(db *sqlx.DB) StateRepository {
	return &stateRepository{db: db, now: time.Now}
}

func (r *stateRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	query := r.db.Rebind(`SELECT value FROM console_state WHERE key = ?`)

	err := r.db.GetContext(ctx, &value, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}

	return []byte(value), nil
}

func (r *stateRepository) Save(ctx context.Context, key string, value []byte) error {
	query := r.db.Rebind(`
		INSERT INTO console_state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`)

	_, err := r.db.ExecContext(ctx, query, key, string(value), r.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	return nil
}

func (r *stateRepository) Delete(ctx context.Context, key string) error {
	query := r.db.Rebind(`DELETE FROM console_state WHERE key = ?`)

	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}
