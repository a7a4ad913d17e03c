package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/AdminSiaratechnology/ladger-face-frontend-sub001/internal/domain/repository"
)

var _ repository.StateStore = (*StateStore)(nil)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS client_state (
	namespace  TEXT        NOT NULL,
	key        TEXT        NOT NULL,
	value      BYTEA       NOT NULL,
	expires_at TIMESTAMPTZ,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (namespace, key)
);
CREATE INDEX IF NOT EXISTS client_state_expires_idx ON client_state (expires_at) WHERE expires_at IS NOT NULL;`

// StateStore implementación PostgreSQL de repository.StateStore.
type StateStore struct {
	q   Querier
	ttl time.Duration
}

// NewStateStore construye el store. ttl = 0 no expira.
func NewStateStore(q Querier, ttl time.Duration) *StateStore {
	return &StateStore{q: q, ttl: ttl}
}

// EnsureSchema crea la tabla si no existe.
func (s *StateStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.q.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("client_state schema: %w", err)
	}
	return nil
}

// Get implementa repository.StateStore. Las filas expiradas se tratan como ausentes.
func (s *StateStore) Get(ctx context.Context, namespace, key string) ([]byte, error) {
	const query = `
		SELECT value FROM client_state
		WHERE namespace = $1 AND key = $2 AND (expires_at IS NULL OR expires_at > now())`
	var value []byte
	err := s.q.QueryRow(ctx, query, namespace, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("client_state get %s: %w", key, err)
	}
	return value, nil
}

// Set implementa repository.StateStore (upsert).
func (s *StateStore) Set(ctx context.Context, namespace, key string, value []byte) error {
	const query = `
		INSERT INTO client_state (namespace, key, value, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (namespace, key)
		DO UPDATE SET value = EXCLUDED.value, expires_at = EXCLUDED.expires_at, updated_at = now()`
	var expires *time.Time
	if s.ttl > 0 {
		t := time.Now().Add(s.ttl)
		expires = &t
	}
	if _, err := s.q.Exec(ctx, query, namespace, key, value, expires); err != nil {
		return fmt.Errorf("client_state set %s: %w", key, err)
	}
	return nil
}

// Delete implementa repository.StateStore.
func (s *StateStore) Delete(ctx context.Context, namespace, key string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM client_state WHERE namespace = $1 AND key = $2`, namespace, key); err != nil {
		return fmt.Errorf("client_state delete %s: %w", key, err)
	}
	return nil
}

// Clear implementa repository.StateStore.
func (s *StateStore) Clear(ctx context.Context, namespace string) error {
	if _, err := s.q.Exec(ctx, `DELETE FROM client_state WHERE namespace = $1`, namespace); err != nil {
		return fmt.Errorf("client_state clear %s: %w", namespace, err)
	}
	return nil
}

// PurgeExpired borra filas vencidas y devuelve cuántas eliminó.
func (s *StateStore) PurgeExpired(ctx context.Context) (int64, error) {
	tag, err := s.q.Exec(ctx, `DELETE FROM client_state WHERE expires_at IS NOT NULL AND expires_at <= now()`)
	if err != nil {
		return 0, fmt.Errorf("client_state purge: %w", err)
	}
	return tag.RowsAffected(), nil
}
