package handlers

import (
	"net/http"
	"strings"

	"nutriscan-api/internal/core/risk"
	"nutriscan-api/internal/core/scan"
	"nutriscan-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// RiskHandler 風險評估處理器
type RiskHandler struct {
	scanService *scan.Service
	riskService *risk.Service
}

// NewRiskHandler 創建風險評估處理器
func NewRiskHandler(scanService *scan.Service, riskService *risk.Service) *RiskHandler {
	return &RiskHandler{
		scanService: scanService,
		riskService: riskService,
	}
}

// RiskAnalyzeRequest 風險評估請求
// 標籤文字與成分列表二選一；兩者都給時以成分列表為準
type RiskAnalyzeRequest struct {
	LabelText   string                `json:"labelText"`
	Ingredients []string              `json:"ingredients"`
	Profile     *common.HealthProfile `json:"profile"`
}

// RiskAnalyzeResponse 風險評估響應
type RiskAnalyzeResponse struct {
	Scan       common.ScanResult      `json:"scan"`
	Assessment *common.RiskAssessment `json:"assessment"`
	AIPowered  bool                   `json:"aiPowered"`
}

// HandleAnalyze 對標籤或成分列表產生個人化風險評估
func (h *RiskHandler) HandleAnalyze(c *gin.Context) {
	var req RiskAnalyzeRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Profile != nil && req.Profile.DietType != "" && !common.IsValidDietType(req.Profile.DietType) {
		respondError(c, common.ErrInvalidDietType)
		return
	}

	labelText := req.LabelText
	if len(req.Ingredients) > 0 {
		// 成分列表直接拼回標籤格式，走同一條比對路徑
		labelText = strings.Join(req.Ingredients, ", ")
	}

	scanResult, err := h.scanService.Analyze(labelText)
	if err != nil {
		respondError(c, err)
		return
	}

	assessment, fromAI, err := h.riskService.Analyze(c.Request.Context(), clientUserID(c), scanResult, req.Profile)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, RiskAnalyzeResponse{
		Scan:       scanResult,
		Assessment: assessment,
		AIPowered:  fromAI,
	})
}

// QuickCheckRequest 成分列表快速評估請求
type QuickCheckRequest struct {
	Ingredients []string              `json:"ingredients" binding:"required"`
	Profile     *common.HealthProfile `json:"profile"`
}

// QuickCheckResponse 成分列表快速評估響應
type QuickCheckResponse struct {
	Scan       common.ScanResult     `json:"scan"`
	Assessment common.RiskAssessment `json:"assessment"`
}

// HandleQuickCheck 不經標籤掃描的成分列表快速評估，永遠走確定性引擎
func (h *RiskHandler) HandleQuickCheck(c *gin.Context) {
	var req QuickCheckRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.Profile != nil && req.Profile.DietType != "" && !common.IsValidDietType(req.Profile.DietType) {
		respondError(c, common.ErrInvalidDietType)
		return
	}

	scanResult, assessment, err := h.riskService.QuickCheck(req.Ingredients, req.Profile)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, QuickCheckResponse{
		Scan:       scanResult,
		Assessment: assessment,
	})
}
