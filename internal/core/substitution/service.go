package substitution

import (
	"context"
	"strconv"
	"strings"
	"time"

	"nutriscan-api/internal/core/advisor"
	"nutriscan-api/internal/core/cache"
	"nutriscan-api/internal/core/catalog"
	"nutriscan-api/internal/pkg/common"

	"go.uber.org/zap"
)

const substitutionCacheTTL = time.Hour

// 回應中的替代品來源標記
const (
	SourceCatalog = "catalog"
	SourceAdvisor = "ai"
)

// Service 替代品建議服務
// 目錄命中時完全不碰 AI；目錄沒有的成分才呼叫顧問，
// 顧問回應會寫回目錄，下一次同成分查詢就不再花錢
type Service struct {
	advisor *advisor.Service
	catalog *catalog.SubstitutionCatalog
	store   cache.Store
}

// NewService 創建替代品建議服務；store 可為 nil（快取停用）
func NewService(adv *advisor.Service, cat *catalog.SubstitutionCatalog, store cache.Store) *Service {
	return &Service{
		advisor: adv,
		catalog: cat,
		store:   store,
	}
}

// Result 替代品建議結果
type Result struct {
	Ingredient  string                       `json:"ingredient"`
	Substitutes []common.SubstituteCandidate `json:"substitutes"`
	Source      string                       `json:"source"`
}

// Suggest 依健康檔案過濾後返回指定成分的替代品
// topN > 0 時按健康分數取前 N 名，否則返回全部
func (s *Service) Suggest(ctx context.Context, userID, ingredient string, profile *common.HealthProfile, topN int) (*Result, error) {
	trimmed := strings.TrimSpace(ingredient)
	if trimmed == "" {
		return nil, common.ErrInvalidRequest
	}

	key := s.cacheKey(userID, trimmed, profile, topN)
	if s.store != nil {
		if raw, ok := s.store.Get(ctx, key); ok {
			common.LogCacheHit("substitution", key)
			var cached Result
			if err := common.ParseJSON(raw, &cached); err == nil {
				return &cached, nil
			}
			s.store.Delete(ctx, key)
		} else {
			common.LogCacheMiss("substitution", key)
		}
	}

	result, err := s.suggest(ctx, trimmed, profile, topN)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		if raw, err := common.ToJSON(result); err == nil {
			if err := s.store.Set(ctx, key, raw, substitutionCacheTTL); err != nil {
				common.LogWarn("替代品結果寫入快取失敗", zap.Error(err))
			}
		}
	}
	return result, nil
}

func (s *Service) suggest(ctx context.Context, ingredient string, profile *common.HealthProfile, topN int) (*Result, error) {
	// 目錄優先
	if subs := s.selectFiltered(ingredient, profile, topN); len(subs) > 0 {
		return &Result{Ingredient: ingredient, Substitutes: subs, Source: SourceCatalog}, nil
	}

	// 目錄沒有且顧問不可用：返回空列表而不是錯誤
	if s.advisor == nil || !s.advisor.IsConfigured() {
		return &Result{
			Ingredient:  ingredient,
			Substitutes: []common.SubstituteCandidate{},
			Source:      SourceCatalog,
		}, nil
	}

	subs, err := s.advisor.SuggestSubstitutions(ctx, ingredient, profile)
	if err != nil {
		return nil, err
	}

	// 寫回目錄後重新走過濾，所有候選都吃同一套飲食/過敏規則
	s.catalog.Append(ingredient, subs)
	filtered := s.selectFiltered(ingredient, profile, topN)
	common.LogInfo("AI 替代品已寫回目錄",
		zap.String("ingredient", ingredient),
		zap.Int("candidates", len(subs)),
		zap.Int("after_filter", len(filtered)),
	)
	return &Result{Ingredient: ingredient, Substitutes: filtered, Source: SourceAdvisor}, nil
}

func (s *Service) selectFiltered(ingredient string, profile *common.HealthProfile, topN int) []common.SubstituteCandidate {
	if topN > 0 {
		return SelectTop(ingredient, profile, s.catalog, topN)
	}
	return Select(ingredient, profile, s.catalog)
}

func (s *Service) cacheKey(userID, ingredient string, profile *common.HealthProfile, topN int) string {
	params := []string{userID, ingredient, strconv.Itoa(topN)}
	if profile != nil {
		params = append(params,
			string(profile.DietType),
			strings.Join(profile.Allergies, ","),
		)
	}
	return cache.Key("substitution", params...)
}
