package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"sv-chat/internal/domain"
)

// APIError representa una respuesta de error del servidor del chat.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("chat api error: status=%d", e.StatusCode)
	}
	return e.Message
}

// ChatClient consume la API HTTP del chat.
type ChatClient struct {
	baseURL string
	client  *http.Client
}

// NewChatClient construye un cliente apuntando a baseURL.
func NewChatClient(baseURL string, httpClient *http.Client) *ChatClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &ChatClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  httpClient,
	}
}

func (c *ChatClient) ListMessages(ctx context.Context) ([]domain.Message, error) {
	var messages []domain.Message
	if err := c.do(ctx, http.MethodGet, "/api/messages", nil, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func (c *ChatClient) PostMessage(ctx context.Context, username, message string) (domain.Message, error) {
	reqBody := postMessageRequest{Username: username, Message: message}
	var msg domain.Message
	if err := c.do(ctx, http.MethodPost, "/api/messages", reqBody, &msg); err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

func (c *ChatClient) ClearMessages(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/messages", nil, nil)
}

type postMessageRequest struct {
	Username string `json:"username"`
	Message  string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *ChatClient) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		bodyBytes, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var er errorResponse
		if err := json.Unmarshal(respBody, &er); err != nil || er.Error == "" {
			// Respuestas de proxies o gateways no siguen el formato {"error": ...}.
			er.Error = strings.TrimSpace(string(respBody))
		}
		return &APIError{StatusCode: resp.StatusCode, Message: er.Error}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
