package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"

	"sv-chat/internal/domain"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgxmock pool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func TestPgMessageRepositoryList(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgMessageRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT id, username, message, created_at").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "message", "created_at"}).
			AddRow(int64(1), domain.WelcomeAuthor, domain.WelcomeBody, now).
			AddRow(int64(2), "a", "hi", now.Add(time.Second)))

	out, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(out))
	}
	if out[0].ID != 1 || out[1].ID != 2 || out[1].Author != "a" || out[1].Body != "hi" {
		t.Fatalf("unexpected messages %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPgMessageRepositoryList_Empty(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgMessageRepository(mock)

	mock.ExpectQuery("SELECT id, username, message, created_at").
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "message", "created_at"}))

	out, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil list, got %+v", out)
	}
}

func TestPgMessageRepositoryAppend(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgMessageRepository(mock)

	mock.ExpectQuery("INSERT INTO chat_messages").
		WithArgs("a", "hi", pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(2)))

	msg, err := repo.Append(context.Background(), "a", "hi")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if msg.ID != 2 || msg.Author != "a" || msg.Body != "hi" || msg.CreatedAt.IsZero() {
		t.Fatalf("unexpected message %+v", msg)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPgMessageRepositoryAppend_Error(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgMessageRepository(mock)
	dbErr := errors.New("connection refused")

	mock.ExpectQuery("INSERT INTO chat_messages").
		WithArgs("a", "hi", pgxmock.AnyArg()).
		WillReturnError(dbErr)

	if _, err := repo.Append(context.Background(), "a", "hi"); !errors.Is(err, dbErr) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestPgMessageRepositoryClear(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgMessageRepository(mock)

	mock.ExpectExec("TRUNCATE chat_messages RESTART IDENTITY").
		WillReturnResult(pgxmock.NewResult("TRUNCATE", 0))

	if err := repo.Clear(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPgMessageRepositorySeedAndSchema(t *testing.T) {
	mock := newMockPool(t)
	repo := NewPgMessageRepository(mock)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS chat_messages").
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec("INSERT INTO chat_messages").
		WithArgs(domain.WelcomeAuthor, domain.WelcomeBody, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	if err := repo.Seed(context.Background()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
