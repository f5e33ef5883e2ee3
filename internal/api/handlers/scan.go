package handlers

import (
	"net/http"

	"nutriscan-api/internal/core/scan"

	"github.com/gin-gonic/gin"
)

// ScanHandler 標籤掃描處理器
type ScanHandler struct {
	scanService *scan.Service
}

// NewScanHandler 創建標籤掃描處理器
func NewScanHandler(scanService *scan.Service) *ScanHandler {
	return &ScanHandler{scanService: scanService}
}

// ScanRequest 標籤掃描請求
type ScanRequest struct {
	LabelText string `json:"labelText" binding:"required"`
}

// HandleAnalyze 分析標籤文字中的成分
func (h *ScanHandler) HandleAnalyze(c *gin.Context) {
	var req ScanRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.scanService.Analyze(req.LabelText)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
