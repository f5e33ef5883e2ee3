package cache

import (
	"context"
	"sync"
	"time"

	"nutriscan-api/internal/infrastructure/config"
	"nutriscan-api/internal/pkg/common"

	"go.uber.org/zap"
)

// Manager 行程內記憶體快取
// 多讀多寫安全；同鍵併發寫入採最後寫入者勝出
type Manager struct {
	config *config.Config
	clock  func() time.Time
	mu     sync.Mutex
	store  map[string]cacheEntry
	stats  cacheStats
	done   chan struct{}
	once   sync.Once
}

// cacheEntry 快取條目
type cacheEntry struct {
	value       string
	expiresAt   time.Time
	createdAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// cacheStats 快取統計
type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
}

// NewManager 創建記憶體快取；快取停用時返回 nil
func NewManager(cfg *config.Config) *Manager {
	return NewManagerWithClock(cfg, time.Now)
}

// NewManagerWithClock 以注入的時鐘創建記憶體快取，方便測試過期行為
func NewManagerWithClock(cfg *config.Config, clock func() time.Time) *Manager {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil
	}

	m := &Manager{
		config: cfg,
		clock:  clock,
		store:  make(map[string]cacheEntry),
		done:   make(chan struct{}),
	}

	// 啟動清理過期快取的協程
	go m.startCleanup()

	common.LogInfo("快取管理員已初始化",
		zap.Int("最大容量", cfg.Cache.MaxSize),
		zap.Duration("預設存活時間", cfg.Cache.TTL),
		zap.Duration("清理間隔", cfg.Cache.CleanupInterval),
	)

	return m
}

// Get 讀取快取值；過期條目讀取時即清除並視為未命中
func (m *Manager) Get(ctx context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.store[key]
	if !exists {
		m.stats.misses++
		common.LogDebug("快取未命中", zap.String("鍵", key))
		return "", false
	}

	now := m.clock()
	if now.After(entry.expiresAt) {
		delete(m.store, key)
		m.stats.evictions++
		m.stats.misses++
		common.LogDebug("快取已過期", zap.String("鍵", key))
		return "", false
	}

	// 更新訪問統計
	entry.lastAccess = now
	entry.accessCount++
	m.store[key] = entry
	m.stats.hits++

	common.LogDebug("快取命中", zap.String("鍵", key))
	return entry.value, true
}

// Set 寫入快取值
func (m *Manager) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = m.config.Cache.TTL
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// 檢查快取大小
	if _, exists := m.store[key]; !exists && len(m.store) >= m.config.Cache.MaxSize {
		// 先清理過期項目
		evicted := m.cleanupLocked()
		if evicted > 0 {
			common.LogInfo("快取清理執行", zap.Int("清理數量", evicted))
		}

		// 如果仍然超過大小限制，執行 LRU 清理
		if len(m.store) >= m.config.Cache.MaxSize {
			m.evictLRULocked()
		}

		// 如果仍然超過大小限制，返回錯誤
		if len(m.store) >= m.config.Cache.MaxSize {
			common.LogWarn("快取已滿", zap.Int("目前容量", len(m.store)))
			return common.ErrCacheFull
		}
	}

	now := m.clock()
	m.store[key] = cacheEntry{
		value:      value,
		expiresAt:  now.Add(ttl),
		createdAt:  now,
		lastAccess: now,
	}

	common.LogDebug("快取已儲存",
		zap.String("鍵", key),
		zap.Duration("ttl", ttl),
	)
	return nil
}

// Delete 刪除快取值
func (m *Manager) Delete(ctx context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, key)
}

// GetStats 獲取統計信息
func (m *Manager) GetStats(ctx context.Context) Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		Hits:      m.stats.hits,
		Misses:    m.stats.misses,
		Evictions: m.stats.evictions,
		Keys:      len(m.store),
		HitRate:   hitRate(m.stats.hits, m.stats.misses),
	}
}

// startCleanup 啟動清理過期快取的協程
func (m *Manager) startCleanup() {
	ticker := time.NewTicker(m.config.Cache.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			count := m.cleanupLocked()
			remaining := len(m.store)
			m.mu.Unlock()

			if count > 0 {
				common.LogInfo("Cleaned up expired cache entries",
					zap.Int("count", count),
					zap.Int("remaining_size", remaining),
				)
			}
		case <-m.done:
			return
		}
	}
}

// cleanupLocked 清理過期的快取；呼叫端須持有鎖
func (m *Manager) cleanupLocked() int {
	now := m.clock()
	count := 0

	for key, entry := range m.store {
		if now.After(entry.expiresAt) {
			delete(m.store, key)
			count++
			m.stats.evictions++
		}
	}

	return count
}

// evictLRULocked 淘汰最少訪問的條目；呼叫端須持有鎖
func (m *Manager) evictLRULocked() {
	var oldestKey string
	var oldestAccess time.Time
	var lowestAccessCount int

	for key, entry := range m.store {
		if oldestKey == "" ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if oldestKey != "" {
		delete(m.store, oldestKey)
		m.stats.evictions++
		common.LogInfo("快取已淘汰(LRU)", zap.String("鍵", oldestKey))
	}
}

// Close 關閉快取管理員
func (m *Manager) Close() error {
	m.once.Do(func() {
		close(m.done)
	})

	m.mu.Lock()
	defer m.mu.Unlock()

	m.store = make(map[string]cacheEntry)
	common.LogInfo("快取管理員已關閉",
		zap.Int64("命中次數", m.stats.hits),
		zap.Int64("未命中次數", m.stats.misses),
		zap.Int64("淘汰次數", m.stats.evictions),
	)
	return nil
}
