package scan

import (
	"regexp"
	"strings"

	"nutriscan-api/internal/core/catalog"
	"nutriscan-api/internal/pkg/common"
)

// tokenSplitPattern 標籤文字的分詞規則：空白與常見標點
var tokenSplitPattern = regexp.MustCompile(`[\s,;.()]+`)

// Matcher 標籤文字比對器
// 將自由格式的標籤文字比對到成分知識庫，產生掃描結果
type Matcher struct {
	catalog *catalog.IngredientCatalog
}

// NewMatcher 建立比對器
func NewMatcher(c *catalog.IngredientCatalog) *Matcher {
	return &Matcher{catalog: c}
}

// Match 分析標籤文字，返回掃描結果
// 規則：
//   - 全文轉小寫後依空白與標點分詞，長度 <= 2 的詞捨棄
//   - 詞與成分名稱雙向包含即視為命中
//   - 每個成分最多命中一次；Details 依知識庫順序排列
//   - 重疊命中（如 corn 與 corn syrup 同時命中）取最長名稱者
//   - 空白文字返回全零結果，不是錯誤
func (m *Matcher) Match(rawText string) common.ScanResult {
	result := common.ScanResult{Details: []common.IngredientDetail{}}

	tokens := tokenize(rawText)
	if len(tokens) == 0 {
		return result
	}

	// 先收集所有命中的條目
	matched := make([]catalog.IngredientEntry, 0, 8)
	for _, entry := range m.catalog.Entries() {
		name := strings.ToLower(entry.Name)

		found := false
		for _, token := range tokens {
			if strings.Contains(token, name) || strings.Contains(name, token) {
				found = true
				break
			}
		}

		if found {
			matched = append(matched, entry)
		}
	}

	// 重疊命中取最長：名稱是其他命中名稱真子字串者捨棄
	for _, entry := range matched {
		if shadowedByLonger(entry, matched) {
			continue
		}

		result.Total++
		result.Details = append(result.Details, common.IngredientDetail{
			Name: entry.Name,
			Risk: entry.Risk,
		})

		switch entry.Risk {
		case common.RiskSafe:
			result.Safe++
		case common.RiskModerate:
			result.Moderate++
		case common.RiskHarmful:
			result.Harmful++
		}
	}

	return result
}

// tokenize 分詞並過濾短詞
func tokenize(rawText string) []string {
	words := tokenSplitPattern.Split(strings.ToLower(rawText), -1)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) > 2 {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

// shadowedByLonger 檢查條目名稱是否為另一命中條目名稱的真子字串
func shadowedByLonger(entry catalog.IngredientEntry, matched []catalog.IngredientEntry) bool {
	name := strings.ToLower(entry.Name)
	for _, other := range matched {
		otherName := strings.ToLower(other.Name)
		if otherName != name && strings.Contains(otherName, name) {
			return true
		}
	}
	return false
}
