package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"nutriscan-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// tokenBucket 單一客戶端的令牌桶
type tokenBucket struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	rate     float64 // 每秒補充的令牌數
	lastTime time.Time
}

func newTokenBucket(requests int, window time.Duration) *tokenBucket {
	return &tokenBucket{
		tokens:   float64(requests),
		capacity: float64(requests),
		rate:     float64(requests) / window.Seconds(),
		lastTime: time.Now(),
	}
}

// allow 檢查是否允許請求
func (b *tokenBucket) allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(b.lastTime).Seconds()
	b.lastTime = now

	b.tokens += elapsed * b.rate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

// ClientRateLimiter 以客戶端 IP 為單位的限流器
// 閒置客戶端的桶會被定期回收，避免 map 無限成長
type ClientRateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*tokenBucket
	lastSeen map[string]time.Time
	requests int
	window   time.Duration
}

// NewClientRateLimiter 創建按客戶端限流的限流器
func NewClientRateLimiter(requests int, window time.Duration) *ClientRateLimiter {
	rl := &ClientRateLimiter{
		buckets:  make(map[string]*tokenBucket),
		lastSeen: make(map[string]time.Time),
		requests: requests,
		window:   window,
	}
	go rl.cleanup()
	return rl
}

// Allow 檢查指定客戶端是否允許請求
func (rl *ClientRateLimiter) Allow(clientID string) bool {
	rl.mu.Lock()
	bucket, ok := rl.buckets[clientID]
	if !ok {
		bucket = newTokenBucket(rl.requests, rl.window)
		rl.buckets[clientID] = bucket
	}
	rl.lastSeen[clientID] = time.Now()
	rl.mu.Unlock()

	return bucket.allow()
}

// cleanup 回收超過三個視窗沒出現的客戶端
func (rl *ClientRateLimiter) cleanup() {
	interval := rl.window
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		cutoff := time.Now().Add(-3 * rl.window)
		rl.mu.Lock()
		for id, seen := range rl.lastSeen {
			if seen.Before(cutoff) {
				delete(rl.buckets, id)
				delete(rl.lastSeen, id)
			}
		}
		rl.mu.Unlock()
	}
}

// RateLimit 限流中間件，按客戶端 IP 分別計數
func RateLimit(requests int, window time.Duration) gin.HandlerFunc {
	limiter := NewClientRateLimiter(requests, window)

	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			common.LogInfo("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)

			c.Header("Retry-After", fmt.Sprintf("%d", int(window.Seconds())))
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "Too many requests",
				"retry_after": window.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
