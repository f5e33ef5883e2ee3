package handlers

import (
	"errors"
	"net/http"

	"nutriscan-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// userIDHeader 個人化快取的使用者識別標頭；缺省時退回匿名
const userIDHeader = "X-User-ID"

// clientUserID 取得請求的使用者識別
func clientUserID(c *gin.Context) string {
	if id := c.GetHeader(userIDHeader); id != "" {
		return id
	}
	return "anonymous"
}

// respondError 統一錯誤回應
// CustomError 帶著自己的狀態碼與代碼，其他錯誤一律 500
func respondError(c *gin.Context, err error) {
	requestID := c.GetHeader("X-Request-ID")

	var custom *common.CustomError
	if errors.As(err, &custom) {
		if custom.Status >= 500 {
			common.LogError("請求處理失敗",
				zap.String("code", custom.Code),
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", requestID),
				zap.Error(err),
			)
		}
		c.JSON(custom.Status, common.ErrorResponse{
			Code:    custom.Code,
			Message: custom.Message,
		})
		return
	}

	common.LogError("未預期的錯誤",
		zap.String("path", c.Request.URL.Path),
		zap.String("request_id", requestID),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, common.ErrorResponse{
		Code:    common.ErrCodeInternalError,
		Message: "Internal server error",
	})
}

// bindJSON 解析請求體，失敗時直接回 400
func bindJSON(c *gin.Context, v interface{}) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		common.LogWarn("Invalid request format",
			zap.Error(err),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetHeader("X-Request-ID")),
		)
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "Invalid request format",
		})
		return false
	}
	return true
}
