package scan

import (
	"strings"

	"nutriscan-api/internal/pkg/common"

	"go.uber.org/zap"
)

// Service 標籤掃描服務
type Service struct {
	matcher *Matcher
}

// NewService 創建標籤掃描服務
func NewService(matcher *Matcher) *Service {
	return &Service{matcher: matcher}
}

// Analyze 分析標籤文字，返回成分統計與明細
func (s *Service) Analyze(labelText string) (common.ScanResult, error) {
	if strings.TrimSpace(labelText) == "" {
		return common.ScanResult{}, common.ErrEmptyLabelText
	}

	result := s.matcher.Match(labelText)
	common.LogInfo("標籤分析完成",
		zap.Int("total", result.Total),
		zap.Int("harmful", result.Harmful),
		zap.Int("moderate", result.Moderate),
	)
	return result, nil
}
