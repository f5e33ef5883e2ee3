package risk

import (
	"context"
	"strings"
	"time"

	"nutriscan-api/internal/core/advisor"
	"nutriscan-api/internal/core/cache"
	"nutriscan-api/internal/core/catalog"
	"nutriscan-api/internal/pkg/common"

	"go.uber.org/zap"
)

const riskCacheTTL = 30 * time.Minute

// Service 健康風險評估服務
// AI 顧問可用時優先使用，失敗或未設定時退回確定性引擎；
// 兩條路徑的輸出形狀完全一致，呼叫端無法區分
type Service struct {
	advisor *advisor.Service
	catalog *catalog.IngredientCatalog
	store   cache.Store
}

// NewService 創建風險評估服務；store 可為 nil（快取停用）
func NewService(adv *advisor.Service, cat *catalog.IngredientCatalog, store cache.Store) *Service {
	return &Service{
		advisor: adv,
		catalog: cat,
		store:   store,
	}
}

// Analyze 對掃描結果產生個人化風險評估
// 返回值第二項表示結果是否來自 AI 顧問
func (s *Service) Analyze(ctx context.Context, userID string, scan common.ScanResult, profile *common.HealthProfile) (*common.RiskAssessment, bool, error) {
	key := s.cacheKey(userID, scan, profile)

	if s.store != nil {
		if raw, ok := s.store.Get(ctx, key); ok {
			common.LogCacheHit("risk", key)
			var cached common.RiskAssessment
			if err := common.ParseJSON(raw, &cached); err == nil {
				return &cached, false, nil
			}
			// 壞掉的快取值直接丟棄重算
			s.store.Delete(ctx, key)
		} else {
			common.LogCacheMiss("risk", key)
		}
	}

	assessment, fromAI := s.assess(ctx, scan, profile)

	if s.store != nil {
		if raw, err := common.ToJSON(assessment); err == nil {
			if err := s.store.Set(ctx, key, raw, riskCacheTTL); err != nil {
				common.LogWarn("風險評估寫入快取失敗", zap.Error(err))
			}
		}
	}
	return assessment, fromAI, nil
}

// assess 先試 AI 顧問，失敗則退回確定性引擎
func (s *Service) assess(ctx context.Context, scan common.ScanResult, profile *common.HealthProfile) (*common.RiskAssessment, bool) {
	if s.advisor != nil && s.advisor.IsConfigured() {
		assessment, err := s.advisor.AnalyzeRisk(ctx, scan, profile)
		if err == nil {
			return assessment, true
		}
		common.LogWarn("AI 風險評估失敗，改用確定性引擎", zap.Error(err))
	}
	assessment := Assess(scan, profile)
	return &assessment, false
}

// QuickCheck 不經掃描流程的成分列表快速評估
// 成分逐一對照目錄取得風險分級（查不到視為 Safe），
// 再交給確定性引擎評分；不寫快取、不走 AI 顧問
func (s *Service) QuickCheck(ingredients []string, profile *common.HealthProfile) (common.ScanResult, common.RiskAssessment, error) {
	names := make([]string, 0, len(ingredients))
	for _, raw := range ingredients {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	if len(names) == 0 {
		return common.ScanResult{}, common.RiskAssessment{}, common.ErrInvalidRequest
	}

	result := common.ScanResult{Details: make([]common.IngredientDetail, 0, len(names))}
	for _, name := range names {
		tier := common.RiskSafe
		display := name
		if entry, ok := s.catalog.Lookup(name); ok {
			tier = entry.Risk
			display = entry.Name
		}

		result.Total++
		switch tier {
		case common.RiskHarmful:
			result.Harmful++
		case common.RiskModerate:
			result.Moderate++
		default:
			result.Safe++
		}
		result.Details = append(result.Details, common.IngredientDetail{Name: display, Risk: tier})
	}

	return result, Assess(result, profile), nil
}

// cacheKey 依使用者、成分列表與健康檔案組合快取鍵
// 同一份標籤對不同檔案必須是不同的快取項
func (s *Service) cacheKey(userID string, scan common.ScanResult, profile *common.HealthProfile) string {
	names := make([]string, 0, len(scan.Details))
	for _, d := range scan.Details {
		names = append(names, d.Name)
	}

	params := []string{userID, strings.Join(names, ",")}
	if profile != nil {
		params = append(params,
			string(profile.DietType),
			strings.Join(profile.Allergies, ","),
			strings.Join(profile.HealthGoals, ","),
		)
	}
	return cache.Key("risk", params...)
}
