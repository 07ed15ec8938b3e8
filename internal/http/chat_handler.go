package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sv-chat/internal/service"
)

// ChatHandler expone el historial del chat por HTTP.
type ChatHandler struct {
	logger   *zap.Logger
	chatServ *service.ChatService
}

// NewChatHandler crea una instancia de ChatHandler con dependencias necesarias.
func NewChatHandler(logger *zap.Logger, chatServ *service.ChatService) *ChatHandler {
	return &ChatHandler{
		logger:   logger,
		chatServ: chatServ,
	}
}

// ListMessages maneja GET /api/messages.
func (h *ChatHandler) ListMessages(c *gin.Context) {
	messages, err := h.chatServ.Messages(c.Request.Context())
	if err != nil {
		h.logger.Error("list messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// PostMessage maneja POST /api/messages.
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Message  string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid post message request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	msg, err := h.chatServ.Post(c.Request.Context(), req.Username, req.Message)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
			return
		}
		h.logger.Error("post message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not post message"})
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// ClearMessages maneja DELETE /api/messages.
func (h *ChatHandler) ClearMessages(c *gin.Context) {
	if err := h.chatServ.Clear(c.Request.Context()); err != nil {
		h.logger.Error("clear messages failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear messages"})
		return
	}
	// 204 no lleva cuerpo; se descarta el Content-Type que puso el grupo /api.
	c.Writer.Header().Del("Content-Type")
	c.Status(http.StatusNoContent)
}

// Health maneja GET /healthz.
func (h *ChatHandler) Health(c *gin.Context) {
	if err := h.chatServ.Health(c.Request.Context()); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
