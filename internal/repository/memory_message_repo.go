package repository

import (
	"context"
	"sync"
	"time"

	"sv-chat/internal/domain"
)

// MemoryMessageRepository guarda el historial en memoria del proceso.
// Se pierde al reiniciar. Sus operaciones nunca fallan.
type MemoryMessageRepository struct {
	mu       sync.RWMutex
	messages []domain.Message
	nextID   int64
	now      func() time.Time
}

// NewMemoryMessageRepository crea el store con el mensaje de bienvenida (id 1).
func NewMemoryMessageRepository() *MemoryMessageRepository {
	r := &MemoryMessageRepository{
		messages: []domain.Message{},
		nextID:   1,
		now:      func() time.Time { return time.Now().UTC() },
	}
	r.appendLocked(domain.WelcomeAuthor, domain.WelcomeBody)
	return r
}

func (r *MemoryMessageRepository) List(_ context.Context) ([]domain.Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Message, len(r.messages))
	copy(out, r.messages)
	return out, nil
}

func (r *MemoryMessageRepository) Append(_ context.Context, author, body string) (domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.appendLocked(author, body), nil
}

// Clear reinicia el contador a 1, así que el id 1 se vuelve a emitir.
func (r *MemoryMessageRepository) Clear(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = []domain.Message{}
	r.nextID = 1
	return nil
}

func (r *MemoryMessageRepository) Ping(_ context.Context) error {
	return nil
}

func (r *MemoryMessageRepository) appendLocked(author, body string) domain.Message {
	msg := domain.Message{
		ID:        r.nextID,
		Author:    author,
		Body:      body,
		CreatedAt: r.now(),
	}
	r.nextID++
	r.messages = append(r.messages, msg)
	return msg
}
