package repository

import (
	"context"
	"fmt"
)

const createMessagesTableSQL = `CREATE TABLE IF NOT EXISTS chat_messages (
    id         BIGSERIAL PRIMARY KEY,
    username   TEXT NOT NULL,
    message    TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// EnsureSchema crea la tabla chat_messages si no existe.
// Pensado para desarrollo; en producción conviene usar migraciones.
func (r *PgMessageRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, createMessagesTableSQL); err != nil {
		return fmt.Errorf("create chat_messages table: %w", err)
	}
	return nil
}
