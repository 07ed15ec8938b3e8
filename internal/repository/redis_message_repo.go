package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"sv-chat/internal/domain"
)

// El id y la escritura del mensaje se resuelven en un solo paso atómico.
const redisAppendScript = `
local id = redis.call("INCR", KEYS[1])
redis.call("HSET", KEYS[2], tostring(id), ARGV[1])
return id
`

// Siembra solo con el historial vacío; el contador queda en 1 aunque tuviera otro valor.
const redisSeedScript = `
if redis.call("HLEN", KEYS[2]) > 0 then
  return 0
end
redis.call("SET", KEYS[1], 1)
redis.call("HSET", KEYS[2], "1", ARGV[1])
return 1
`

// RedisMessageRepository comparte el historial entre varias réplicas.
// Usa un contador (INCR) y un hash id -> mensaje JSON.
type RedisMessageRepository struct {
	client redis.Cmdable
	prefix string
}

func NewRedisMessageRepository(client redis.Cmdable, prefix string) *RedisMessageRepository {
	if prefix == "" {
		prefix = "chat:"
	}
	return &RedisMessageRepository{
		client: client,
		prefix: prefix,
	}
}

type redisMessagePayload struct {
	Author    string    `json:"username"`
	Body      string    `json:"message"`
	CreatedAt time.Time `json:"timestamp"`
}

func (r *RedisMessageRepository) List(ctx context.Context) ([]domain.Message, error) {
	entries, err := r.client.HGetAll(ctx, r.messagesKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	messages := make([]domain.Message, 0, len(entries))
	for field, raw := range entries {
		id, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse message id %q: %w", field, err)
		}
		var payload redisMessagePayload
		if err := json.Unmarshal([]byte(raw), &payload); err != nil {
			return nil, fmt.Errorf("decode message %d: %w", id, err)
		}
		messages = append(messages, domain.Message{
			ID:        id,
			Author:    payload.Author,
			Body:      payload.Body,
			CreatedAt: payload.CreatedAt.UTC(),
		})
	}
	sort.Slice(messages, func(i, j int) bool { return messages[i].ID < messages[j].ID })
	return messages, nil
}

func (r *RedisMessageRepository) Append(ctx context.Context, author, body string) (domain.Message, error) {
	payload := redisMessagePayload{
		Author:    author,
		Body:      body,
		CreatedAt: time.Now().UTC(),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return domain.Message{}, fmt.Errorf("encode message: %w", err)
	}

	id, err := r.client.Eval(ctx, redisAppendScript, []string{r.counterKey(), r.messagesKey()}, string(raw)).Int64()
	if err != nil {
		return domain.Message{}, fmt.Errorf("append message: %w", err)
	}

	return domain.Message{
		ID:        id,
		Author:    payload.Author,
		Body:      payload.Body,
		CreatedAt: payload.CreatedAt,
	}, nil
}

func (r *RedisMessageRepository) Clear(ctx context.Context) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.messagesKey())
		pipe.Set(ctx, r.counterKey(), 0, 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	return nil
}

// Seed agrega el mensaje de bienvenida cuando el historial está vacío,
// igual que el backend postgres. Es atómico frente a otras réplicas.
func (r *RedisMessageRepository) Seed(ctx context.Context) error {
	raw, err := json.Marshal(redisMessagePayload{
		Author:    domain.WelcomeAuthor,
		Body:      domain.WelcomeBody,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode welcome message: %w", err)
	}
	if err := r.client.Eval(ctx, redisSeedScript, []string{r.counterKey(), r.messagesKey()}, string(raw)).Err(); err != nil {
		return fmt.Errorf("seed messages: %w", err)
	}
	return nil
}

func (r *RedisMessageRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisMessageRepository) counterKey() string {
	return r.prefix + "next_id"
}

func (r *RedisMessageRepository) messagesKey() string {
	return r.prefix + "messages"
}
