package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"go.uber.org/zap"

	"sv-chat/internal/domain"
	"sv-chat/internal/repository"
)

// ValidationError es el único error de entrada del usuario; su texto se devuelve tal cual al cliente.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

var (
	ErrChatServiceNotConfigured = errors.New("chat service not configured")
	ErrMissingFields            = &ValidationError{msg: "Username and message are required"}
	ErrEmptyMessage             = &ValidationError{msg: "Message cannot be empty"}
)

// ChatService aplica las reglas de validación sobre el historial del chat.
type ChatService struct {
	logger *zap.Logger
	repo   repository.MessageRepository
}

func NewChatService(logger *zap.Logger, repo repository.MessageRepository) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		logger: logger,
		repo:   repo,
	}
}

// Messages devuelve el historial completo en orden de inserción.
func (s *ChatService) Messages(ctx context.Context) ([]domain.Message, error) {
	if s == nil || s.repo == nil {
		return nil, ErrChatServiceNotConfigured
	}
	return s.repo.List(ctx)
}

// Post valida y agrega un mensaje. El cuerpo se guarda sin recortar.
func (s *ChatService) Post(ctx context.Context, username, message string) (domain.Message, error) {
	if s == nil || s.repo == nil {
		return domain.Message{}, ErrChatServiceNotConfigured
	}
	if username == "" || message == "" {
		return domain.Message{}, ErrMissingFields
	}
	if strings.TrimFunc(message, isBlank) == "" {
		return domain.Message{}, ErrEmptyMessage
	}

	msg, err := s.repo.Append(ctx, username, message)
	if err != nil {
		return domain.Message{}, err
	}
	s.logger.Debug("message appended", zap.Int64("id", msg.ID), zap.String("username", msg.Author))
	return msg, nil
}

// isBlank: espacios Unicode más U+FEFF (BOM); U+0085 (NEL) cuenta como contenido.
func isBlank(r rune) bool {
	if r == '\u0085' {
		return false
	}
	return r == '\uFEFF' || unicode.IsSpace(r)
}

// Clear vacía el historial y reinicia el contador de ids.
func (s *ChatService) Clear(ctx context.Context) error {
	if s == nil || s.repo == nil {
		return ErrChatServiceNotConfigured
	}
	if err := s.repo.Clear(ctx); err != nil {
		return err
	}
	s.logger.Info("chat history cleared")
	return nil
}

func (s *ChatService) Health(ctx context.Context) error {
	if s == nil || s.repo == nil {
		return ErrChatServiceNotConfigured
	}
	return s.repo.Ping(ctx)
}
