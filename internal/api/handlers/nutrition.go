package handlers

import (
	"net/http"

	"nutriscan-api/internal/core/nutrition"
	"nutriscan-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// NutritionHandler 營養目標處理器
type NutritionHandler struct{}

// NewNutritionHandler 創建營養目標處理器
func NewNutritionHandler() *NutritionHandler {
	return &NutritionHandler{}
}

// NutritionGoalsRequest 營養目標請求
type NutritionGoalsRequest struct {
	Profile *common.HealthProfile `json:"profile" binding:"required"`
}

// NutritionGoalsResponse 營養目標響應
type NutritionGoalsResponse struct {
	Goals common.NutritionGoals `json:"goals"`
	// 身體資料不全時為 true，表示返回的是通用預設值
	UsedDefaults bool `json:"usedDefaults"`
}

// HandleGoals 依健康檔案計算每日營養目標
func (h *NutritionHandler) HandleGoals(c *gin.Context) {
	var req NutritionGoalsRequest
	if !bindJSON(c, &req) {
		return
	}

	p := req.Profile
	usedDefaults := p == nil || p.Weight <= 0 || p.Height <= 0 || p.Age <= 0

	c.JSON(http.StatusOK, NutritionGoalsResponse{
		Goals:        nutrition.CalculateGoals(p),
		UsedDefaults: usedDefaults,
	})
}
