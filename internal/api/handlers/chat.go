package handlers

import (
	"net/http"

	"nutriscan-api/internal/core/chat"

	"github.com/gin-gonic/gin"
)

// ChatHandler 成分問答處理器
type ChatHandler struct {
	service *chat.Service
}

// NewChatHandler 創建問答處理器
func NewChatHandler(service *chat.Service) *ChatHandler {
	return &ChatHandler{service: service}
}

// ChatRequest 問答請求
type ChatRequest struct {
	Question string `json:"question" binding:"required"`
}

// HandleAsk 回答成分/營養相關問題
func (h *ChatHandler) HandleAsk(c *gin.Context) {
	var req ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	answer, err := h.service.Ask(c.Request.Context(), req.Question)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, answer)
}
