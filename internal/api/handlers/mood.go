package handlers

import (
	"net/http"

	"nutriscan-api/internal/core/mood"

	"github.com/gin-gonic/gin"
)

// MoodHandler 心情推薦處理器
type MoodHandler struct {
	service *mood.Service
}

// NewMoodHandler 創建心情推薦處理器
func NewMoodHandler(service *mood.Service) *MoodHandler {
	return &MoodHandler{service: service}
}

// MoodRequest 心情推薦請求
type MoodRequest struct {
	Mood string `json:"mood" binding:"required"`
}

// HandleRecommend 依心情推薦食物
func (h *MoodHandler) HandleRecommend(c *gin.Context) {
	var req MoodRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.service.Recommend(c.Request.Context(), req.Mood)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// HandleMoods 列出所有支援的心情
func (h *MoodHandler) HandleMoods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"moods": mood.ValidMoods()})
}
