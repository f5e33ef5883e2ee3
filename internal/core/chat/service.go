package chat

import (
	"context"
	"strings"
	"time"

	"nutriscan-api/internal/core/advisor"
	"nutriscan-api/internal/core/cache"
	"nutriscan-api/internal/pkg/common"

	"go.uber.org/zap"
)

const chatCacheTTL = time.Hour

// Service 成分問答服務；純粹的 AI 功能，沒有確定性退路
type Service struct {
	advisor *advisor.Service
	store   cache.Store
}

// NewService 創建問答服務；store 可為 nil（快取停用）
func NewService(adv *advisor.Service, store cache.Store) *Service {
	return &Service{advisor: adv, store: store}
}

// 回答來源標記
const (
	SourceAdvisor = "ai"
	SourceCache   = "cache"
)

// Answer 問答結果
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Source   string `json:"source"`
}

// Ask 回答成分/營養相關問題
func (s *Service) Ask(ctx context.Context, question string) (*Answer, error) {
	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		return nil, common.ErrInvalidRequest
	}

	if s.advisor == nil || !s.advisor.IsConfigured() {
		return nil, common.ErrAINotConfigured
	}

	key := cache.Key("chat", trimmed)
	if s.store != nil {
		if raw, ok := s.store.Get(ctx, key); ok {
			common.LogCacheHit("chat", key)
			return &Answer{Question: trimmed, Answer: raw, Source: SourceCache}, nil
		}
		common.LogCacheMiss("chat", key)
	}

	answer, err := s.advisor.Chat(ctx, trimmed)
	if err != nil {
		return nil, err
	}

	if s.store != nil {
		if err := s.store.Set(ctx, key, answer, chatCacheTTL); err != nil {
			common.LogWarn("問答結果寫入快取失敗", zap.Error(err))
		}
	}
	return &Answer{Question: trimmed, Answer: answer, Source: SourceAdvisor}, nil
}
