package handlers

import (
	"net/http"

	"nutriscan-api/internal/core/advisor"
	"nutriscan-api/internal/core/cache"
	"nutriscan-api/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

// AIStatusHandler AI 服務狀態處理器
type AIStatusHandler struct {
	cfg     *config.Config
	advisor *advisor.Service
	store   cache.Store
}

// NewAIStatusHandler 創建 AI 狀態處理器
func NewAIStatusHandler(cfg *config.Config, adv *advisor.Service, store cache.Store) *AIStatusHandler {
	return &AIStatusHandler{cfg: cfg, advisor: adv, store: store}
}

// AIStatusResponse AI 服務狀態響應
type AIStatusResponse struct {
	Configured bool            `json:"configured"`
	Model      string          `json:"model,omitempty"`
	Features   map[string]bool `json:"features"`
	Cache      *cache.Stats    `json:"cache,omitempty"`
}

// HandleStatus 返回 AI 服務與快取狀態
// 確定性功能（掃描、目錄替代、心情靜態表、營養計算）不依賴 AI，永遠可用
func (h *AIStatusHandler) HandleStatus(c *gin.Context) {
	configured := h.advisor != nil && h.advisor.IsConfigured()

	response := AIStatusResponse{
		Configured: configured,
		Features: map[string]bool{
			"scan":         true,
			"risk":         true,
			"substitution": true,
			"mood":         true,
			"nutrition":    true,
			"chat":         configured,
		},
	}
	if configured {
		response.Model = h.cfg.Gemini.Model
	}
	if h.store != nil {
		stats := h.store.GetStats(c.Request.Context())
		response.Cache = &stats
	}

	c.JSON(http.StatusOK, response)
}
