package substitution

import (
	"sort"
	"strings"

	"nutriscan-api/internal/core/catalog"
	"nutriscan-api/internal/pkg/common"
)

// Select 依健康檔案過濾替代品候選
// 規則：
//   - 成分不分大小寫查詢；查無返回空列表（呼叫端再決定是否走 AI 顧問）
//   - profile.DietType 有設定時只保留相容候選
//   - 候選名稱包含任一過敏原子字串者剔除
//   - 存活候選保持知識庫插入順序
//
// 全部被濾掉時返回空列表，不是錯誤
func Select(ingredient string, profile *common.HealthProfile, c *catalog.SubstitutionCatalog) []common.SubstituteCandidate {
	candidates := c.Lookup(ingredient)
	if len(candidates) == 0 {
		return []common.SubstituteCandidate{}
	}

	selected := make([]common.SubstituteCandidate, 0, len(candidates))
	for _, cand := range candidates {
		if profile != nil && profile.DietType != "" && !cand.CompatibleWith(profile.DietType) {
			continue
		}
		if profile != nil && matchesAllergy(cand.Name, profile.Allergies) {
			continue
		}
		selected = append(selected, cand)
	}

	return selected
}

// SelectTop 返回健康分數最高的前 n 個候選（分數相同時保持原順序）
// 供「最佳替代品」視圖使用；n <= 0 或超過候選數時返回全部
func SelectTop(ingredient string, profile *common.HealthProfile, c *catalog.SubstitutionCatalog, n int) []common.SubstituteCandidate {
	selected := Select(ingredient, profile, c)

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].HealthScore > selected[j].HealthScore
	})

	if n > 0 && n < len(selected) {
		selected = selected[:n]
	}
	return selected
}

// matchesAllergy 檢查候選名稱是否包含任一過敏原子字串
func matchesAllergy(name string, allergies []string) bool {
	lower := strings.ToLower(name)
	for _, allergy := range allergies {
		if allergy == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(allergy)) {
			return true
		}
	}
	return false
}
