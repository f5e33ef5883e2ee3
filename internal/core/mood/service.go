package mood

import (
	"context"
	"strings"
	"time"

	"nutriscan-api/internal/core/advisor"
	"nutriscan-api/internal/core/cache"
	"nutriscan-api/internal/pkg/common"

	"go.uber.org/zap"
)

const moodCacheTTL = 2 * time.Hour

// Service 心情食物推薦服務
// 靜態推薦表永遠可用，AI 顧問只負責讓內容多樣化
type Service struct {
	advisor *advisor.Service
	store   cache.Store
}

// NewService 創建心情推薦服務；store 可為 nil（快取停用）
func NewService(adv *advisor.Service, store cache.Store) *Service {
	return &Service{advisor: adv, store: store}
}

// Result 心情推薦結果
type Result struct {
	Mood   string            `json:"mood"`
	Foods  []common.MoodFood `json:"foods"`
	Count  int               `json:"count"`
	Source string            `json:"source"`
}

// Recommend 依心情返回食物推薦
func (s *Service) Recommend(ctx context.Context, mood string) (*Result, error) {
	normalized := strings.ToLower(strings.TrimSpace(mood))
	if !IsValidMood(normalized) {
		return nil, common.ErrInvalidMood
	}

	key := cache.Key("mood", normalized)
	if s.store != nil {
		if raw, ok := s.store.Get(ctx, key); ok {
			common.LogCacheHit("mood", key)
			var cached Result
			if err := common.ParseJSON(raw, &cached); err == nil {
				return &cached, nil
			}
			s.store.Delete(ctx, key)
		} else {
			common.LogCacheMiss("mood", key)
		}
	}

	result := s.recommend(ctx, normalized)

	if s.store != nil {
		if raw, err := common.ToJSON(result); err == nil {
			if err := s.store.Set(ctx, key, raw, moodCacheTTL); err != nil {
				common.LogWarn("心情推薦寫入快取失敗", zap.Error(err))
			}
		}
	}
	return result, nil
}

func (s *Service) recommend(ctx context.Context, mood string) *Result {
	if s.advisor != nil && s.advisor.IsConfigured() {
		foods, err := s.advisor.MoodRecommendations(ctx, mood)
		if err == nil && len(foods) > 0 {
			return &Result{Mood: mood, Foods: foods, Count: len(foods), Source: "ai"}
		}
		if err != nil {
			common.LogWarn("AI 心情推薦失敗，使用靜態推薦表",
				zap.String("mood", mood),
				zap.Error(err),
			)
		}
	}

	// map 取值返回共享切片，複製後再交出去
	static := moodFoodMap[mood]
	foods := make([]common.MoodFood, len(static))
	copy(foods, static)
	return &Result{Mood: mood, Foods: foods, Count: len(foods), Source: "static"}
}
