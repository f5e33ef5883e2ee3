package advisor

import (
	"fmt"
	"strings"

	"nutriscan-api/internal/pkg/common"
)

// MalformedResponseError 模型返回了無法解析為結構化資料的文字
// 保留原始文字供呼叫端記錄或退回預設值
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed advisor response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// ExtractJSON 從模型輸出中取出第一段平衡的 JSON 物件或陣列
// 模型常在 JSON 前後附加 markdown 圍欄或說明文字，先全部剝掉
func ExtractJSON(raw string) (string, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")

	start := -1
	var open, closer rune
	for i, r := range cleaned {
		if r == '{' || r == '[' {
			start = i
			open = r
			closer = '}'
			if r == '[' {
				closer = ']'
			}
			break
		}
	}
	if start == -1 {
		return "", false
	}

	// 掃描到深度歸零為止；字串內的括號與跳脫字元不計
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(cleaned); i++ {
		ch := rune(cleaned[i])

		if escaped {
			escaped = false
			continue
		}
		switch {
		case ch == '\\' && inString:
			escaped = true
		case ch == '"':
			inString = !inString
		case inString:
		case ch == open:
			depth++
		case ch == closer:
			depth--
			if depth == 0 {
				return cleaned[start : i+1], true
			}
		}
	}

	return "", false
}

// parseStructured 剝掉圍欄後解析到目標結構
// 失敗時返回 MalformedResponseError，絕不靜默轉型
func parseStructured(raw string, v interface{}) error {
	span, ok := ExtractJSON(raw)
	if !ok {
		return &MalformedResponseError{Raw: raw, Err: fmt.Errorf("no balanced JSON span found")}
	}

	if err := common.ParseJSON(span, v); err != nil {
		// 模型偶爾漏掉鍵的雙引號，修補後再試一次
		if retryErr := common.ParseJSON(common.QuoteJSONKeys(span), v); retryErr == nil {
			return nil
		}
		return &MalformedResponseError{Raw: raw, Err: err}
	}
	return nil
}
