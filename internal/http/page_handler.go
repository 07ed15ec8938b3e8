package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sv-chat/internal/service"
)

// PageHandler sirve la pagina del chat con el historial precargado.
type PageHandler struct {
	logger *zap.Logger
	loader *service.PageLoader
}

func NewPageHandler(logger *zap.Logger, loader *service.PageLoader) *PageHandler {
	return &PageHandler{
		logger: logger,
		loader: loader,
	}
}

// ChatPage maneja GET /.
func (h *PageHandler) ChatPage(c *gin.Context) {
	data, err := h.loader.Load(c.Request.Context())
	if err != nil {
		h.logger.Error("load chat page failed", zap.Error(err))
		c.String(http.StatusInternalServerError, "could not load chat")
		return
	}
	c.HTML(http.StatusOK, "chat.tmpl", data)
}

// PageData maneja GET /api/page: los mismos datos del render, en JSON.
func (h *PageHandler) PageData(c *gin.Context) {
	data, err := h.loader.Load(c.Request.Context())
	if err != nil {
		h.logger.Error("load page data failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load chat"})
		return
	}
	c.JSON(http.StatusOK, data)
}
