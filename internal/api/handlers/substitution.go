package handlers

import (
	"net/http"

	"nutriscan-api/internal/core/substitution"
	"nutriscan-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// SubstitutionHandler 替代品建議處理器
type SubstitutionHandler struct {
	service *substitution.Service
}

// NewSubstitutionHandler 創建替代品建議處理器
func NewSubstitutionHandler(service *substitution.Service) *SubstitutionHandler {
	return &SubstitutionHandler{service: service}
}

// SubstitutionRequest 替代品建議請求
// topN > 0 時按健康分數取前 N 名
type SubstitutionRequest struct {
	Ingredient string                `json:"ingredient" binding:"required"`
	Profile    *common.HealthProfile `json:"profile"`
	TopN       int                   `json:"topN" binding:"omitempty,min=1,max=20"`
}

// HandleSuggest 依健康檔案建議替代品
func (h *SubstitutionHandler) HandleSuggest(c *gin.Context) {
	var req SubstitutionRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Profile != nil && req.Profile.DietType != "" && !common.IsValidDietType(req.Profile.DietType) {
		respondError(c, common.ErrInvalidDietType)
		return
	}

	result, err := h.service.Suggest(c.Request.Context(), clientUserID(c), req.Ingredient, req.Profile, req.TopN)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
