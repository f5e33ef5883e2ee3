package advisor

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"nutriscan-api/internal/infrastructure/config"
	"nutriscan-api/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// Client Gemini API 客戶端
type Client struct {
	config *config.Config
	client *resty.Client
}

// NewClient 創建 Gemini 客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Gemini.BaseURL).
		SetTimeout(cfg.Gemini.Timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		config: cfg,
		client: client,
	}
}

// IsConfigured 檢查顧問是否可用
func (c *Client) IsConfigured() bool {
	return c.config.Gemini.Enabled && c.config.Gemini.APIKey != ""
}

// geminiRequest generateContent 請求體
type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

// geminiResponse generateContent 回應體
type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate 發送提示詞並返回模型文字回應
// 重試策略：只對暫時性失敗（連線錯誤、429、503）重試，
// 每次等待 retry_delay * 嘗試次數；4xx 驗證類錯誤不重試
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	if !c.IsConfigured() {
		return "", common.ErrAINotConfigured
	}

	req := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
		GenerationConfig: generationConfig{
			Temperature:     c.config.Gemini.Temperature,
			MaxOutputTokens: c.config.Gemini.MaxTokens,
		},
	}

	endpoint := fmt.Sprintf("/models/%s:generateContent", c.config.Gemini.Model)
	attempts := c.config.Gemini.RetryAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		start := time.Now()
		resp, err := c.client.R().
			SetContext(ctx).
			SetQueryParam("key", c.config.Gemini.APIKey).
			SetBody(req).
			Post(endpoint)

		if err == nil && resp.StatusCode() == http.StatusOK {
			return c.extractText(resp.Body())
		}

		if err != nil {
			// 連線層錯誤視為暫時性
			lastErr = fmt.Errorf("failed to send request to Gemini: %w", err)
		} else {
			lastErr = fmt.Errorf("Gemini API returned status %d: %s", resp.StatusCode(), resp.String())
			if !isRetryableStatus(resp.StatusCode()) {
				common.LogError("Gemini API 返回不可重試的錯誤",
					zap.Int("status", resp.StatusCode()),
					zap.String("model", c.config.Gemini.Model),
				)
				return "", lastErr
			}
		}

		common.LogWarn("Gemini 請求失敗，準備重試",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", attempts),
			zap.Duration("耗時", time.Since(start)),
			zap.Error(lastErr),
		)

		if attempt < attempts {
			// 遞增延遲：baseDelay * 嘗試次數
			delay := c.config.Gemini.RetryDelay * time.Duration(attempt)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}

	common.LogError("Gemini 重試耗盡",
		zap.Int("attempts", attempts),
		zap.Error(lastErr),
	)
	return "", fmt.Errorf("%w: %v", common.ErrAIUnavailable, lastErr)
}

// isRetryableStatus 暫時性的 HTTP 狀態碼
func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status == http.StatusServiceUnavailable
}

// extractText 從回應體取出第一個候選的文字
func (c *Client) extractText(body []byte) (string, error) {
	var parsed geminiResponse
	if err := common.ParseJSONBytes(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse Gemini response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty candidates in Gemini response")
	}

	text := parsed.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("empty content in Gemini response")
	}
	return text, nil
}

// Close 關閉客戶端
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
