package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"sv-chat/internal/domain"
	"sv-chat/internal/repository"
	"sv-chat/internal/service"
)

func TestPageHandlerChatPage(t *testing.T) {
	repo := repository.NewMemoryMessageRepository()
	_, _ = repo.Append(context.Background(), "ana", "<b>hola</b>")
	r := setupChatRouter(repo)

	rec := performRequest(r, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected html content type, got %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, domain.WelcomeBody) {
		t.Fatalf("expected welcome message in page")
	}
	if !strings.Contains(body, "&lt;b&gt;hola&lt;/b&gt;") {
		t.Fatalf("expected escaped message body in page")
	}
}

func TestPageHandlerPageData(t *testing.T) {
	r := setupChatRouter(repository.NewMemoryMessageRepository())

	rec := performRequest(r, http.MethodGet, "/api/page", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var data service.PageData
	if err := json.Unmarshal(rec.Body.Bytes(), &data); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(data.Messages) != 1 || data.Messages[0].ID != 1 {
		t.Fatalf("unexpected page data %+v", data)
	}
}

func TestPageHandler_LoadFailure(t *testing.T) {
	r := setupChatRouter(&failingMessageRepo{err: errors.New("backend down")})

	if rec := performRequest(r, http.MethodGet, "/", nil); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	if rec := performRequest(r, http.MethodGet, "/api/page", nil); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}
