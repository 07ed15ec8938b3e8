package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"sv-chat/internal/domain"
)

// MessageRepository es el dueño único del historial del chat.
// List devuelve siempre una copia en orden de inserción.
type MessageRepository interface {
	List(ctx context.Context) ([]domain.Message, error)
	Append(ctx context.Context, author, body string) (domain.Message, error)
	Clear(ctx context.Context) error
	Ping(ctx context.Context) error
}

// PgQuerier cubre los métodos de pgx que usa PgMessageRepository.
// *pgxpool.Pool lo satisface.
type PgQuerier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

type PgMessageRepository struct {
	db PgQuerier
}

func NewPgMessageRepository(db PgQuerier) *PgMessageRepository {
	return &PgMessageRepository{db: db}
}

func (r *PgMessageRepository) List(ctx context.Context) ([]domain.Message, error) {
	const query = `
		SELECT id, username, message, created_at
		FROM chat_messages
		ORDER BY id ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	messages := []domain.Message{}
	for rows.Next() {
		var msg domain.Message
		if err := rows.Scan(&msg.ID, &msg.Author, &msg.Body, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		msg.CreatedAt = msg.CreatedAt.UTC()
		messages = append(messages, msg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	return messages, nil
}

func (r *PgMessageRepository) Append(ctx context.Context, author, body string) (domain.Message, error) {
	const query = `
		INSERT INTO chat_messages (username, message, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	msg := domain.Message{
		Author:    author,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.db.QueryRow(ctx, query, msg.Author, msg.Body, msg.CreatedAt).Scan(&msg.ID); err != nil {
		return domain.Message{}, fmt.Errorf("append message: %w", err)
	}
	return msg, nil
}

// Clear vacía la tabla y reinicia la secuencia: el próximo id vuelve a ser 1.
func (r *PgMessageRepository) Clear(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `TRUNCATE chat_messages RESTART IDENTITY`); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	return nil
}

// Seed inserta el mensaje de bienvenida solo si la tabla está vacía.
func (r *PgMessageRepository) Seed(ctx context.Context) error {
	const query = `
		INSERT INTO chat_messages (username, message, created_at)
		SELECT $1::text, $2::text, $3::timestamptz
		WHERE NOT EXISTS (SELECT 1 FROM chat_messages)
	`
	if _, err := r.db.Exec(ctx, query, domain.WelcomeAuthor, domain.WelcomeBody, time.Now().UTC()); err != nil {
		return fmt.Errorf("seed messages: %w", err)
	}
	return nil
}

func (r *PgMessageRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
