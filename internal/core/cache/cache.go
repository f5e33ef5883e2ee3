package cache

import (
	"context"
	"strings"
	"time"
)

// Stats 快取統計
type Stats struct {
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	Keys      int     `json:"keys"`
	HitRate   float64 `json:"hitRate"`
}

// Store 回應快取介面
// 快取只是加速手段：清空或停用快取後系統仍必須產生正確結果
type Store interface {
	// Get 讀取快取值；過期視為未命中並順手清除
	Get(ctx context.Context, key string) (string, bool)

	// Set 寫入快取值；ttl <= 0 時使用預設存活時間
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Delete 刪除快取值
	Delete(ctx context.Context, key string)

	// GetStats 獲取統計信息
	GetStats(ctx context.Context) Stats

	// Close 關閉快取
	Close() error
}

// Key 生成快取鍵：category:param1:param2:...
// 所有參數先轉小寫，避免輸入大小寫不同造成快取分裂
func Key(category string, params ...string) string {
	parts := make([]string, 0, len(params)+1)
	parts = append(parts, category)
	for _, p := range params {
		parts = append(parts, strings.ToLower(p))
	}
	return strings.Join(parts, ":")
}

// hitRate 命中率；無任何請求時為 0 而不是 NaN
func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
