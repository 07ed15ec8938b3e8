package service

import (
	"context"

	"sv-chat/internal/domain"
	"sv-chat/internal/repository"
)

// PageData son los datos del render inicial de la página del chat.
type PageData struct {
	Messages []domain.Message `json:"messages"`
}

// PageLoader lee el historial una vez por render.
type PageLoader struct {
	repo repository.MessageRepository
}

func NewPageLoader(repo repository.MessageRepository) *PageLoader {
	return &PageLoader{repo: repo}
}

func (l *PageLoader) Load(ctx context.Context) (PageData, error) {
	if l == nil || l.repo == nil {
		return PageData{}, ErrChatServiceNotConfigured
	}
	messages, err := l.repo.List(ctx)
	if err != nil {
		return PageData{}, err
	}
	return PageData{Messages: messages}, nil
}
