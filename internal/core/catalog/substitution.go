package catalog

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"nutriscan-api/internal/pkg/common"

	"go.uber.org/zap"
)

// SubstitutionCatalog 替代品知識庫
// 鍵為被替換成分的小寫名稱；每個鍵下的候選保持插入順序
// 條目只會新增（種子資料或 AI 顧問回填），不會自動刪除
type SubstitutionCatalog struct {
	mu      sync.RWMutex
	entries map[string][]common.SubstituteCandidate
}

// NewSubstitutionCatalog 建立替代品知識庫
func NewSubstitutionCatalog(entries map[string][]common.SubstituteCandidate) *SubstitutionCatalog {
	c := &SubstitutionCatalog{
		entries: make(map[string][]common.SubstituteCandidate, len(entries)),
	}
	for name, subs := range entries {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" || len(subs) == 0 {
			continue
		}
		c.entries[key] = append([]common.SubstituteCandidate(nil), subs...)
	}
	return c
}

// LoadSubstitutionCatalog 從 JSON 檔載入；path 為空時使用內建種子資料
func LoadSubstitutionCatalog(path string) (*SubstitutionCatalog, error) {
	if path == "" {
		c := NewSubstitutionCatalog(seedSubstitutions)
		common.LogInfo("替代品知識庫已載入（內建種子）",
			zap.Int("成分數", len(c.entries)),
		)
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read substitution catalog: %w", err)
	}

	var entries map[string][]common.SubstituteCandidate
	if err := common.ParseJSONBytes(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse substitution catalog: %w", err)
	}

	c := NewSubstitutionCatalog(entries)
	common.LogInfo("替代品知識庫已載入",
		zap.String("path", path),
		zap.Int("成分數", len(c.entries)),
	)
	return c, nil
}

// Lookup 不分大小寫查詢替代品候選；返回副本避免呼叫端修改內部狀態
func (c *SubstitutionCatalog) Lookup(ingredient string) []common.SubstituteCandidate {
	c.mu.RLock()
	defer c.mu.RUnlock()

	subs, ok := c.entries[strings.ToLower(strings.TrimSpace(ingredient))]
	if !ok {
		return nil
	}
	return append([]common.SubstituteCandidate(nil), subs...)
}

// Append 回填 AI 顧問產生的候選；已存在的鍵不覆蓋既有候選，只追加新名稱
func (c *SubstitutionCatalog) Append(ingredient string, subs []common.SubstituteCandidate) {
	key := strings.ToLower(strings.TrimSpace(ingredient))
	if key == "" || len(subs) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	existing := make(map[string]bool, len(c.entries[key]))
	for _, s := range c.entries[key] {
		existing[strings.ToLower(s.Name)] = true
	}

	added := 0
	for _, s := range subs {
		if s.Name == "" || existing[strings.ToLower(s.Name)] {
			continue
		}
		existing[strings.ToLower(s.Name)] = true
		c.entries[key] = append(c.entries[key], s)
		added++
	}

	if added > 0 {
		common.LogInfo("替代品知識庫已回填",
			zap.String("ingredient", key),
			zap.Int("新增候選", added),
		)
	}
}

// Ingredients 返回所有已知的被替換成分（小寫鍵）
func (c *SubstitutionCatalog) Ingredients() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	return names
}

// seedSubstitutions 內建替代品種子資料
var seedSubstitutions = map[string][]common.SubstituteCandidate{
	"sugar": {
		{
			Name:           "Stevia",
			HealthScore:    9,
			Reason:         "Zero calories, natural sweetener",
			DietCompatible: []common.DietType{common.DietVegan, common.DietKeto, common.DietNormal},
		},
		{
			Name:           "Honey",
			HealthScore:    7,
			Reason:         "Natural, contains antioxidants",
			DietCompatible: []common.DietType{common.DietNormal, common.DietPaleo},
		},
		{
			Name:           "Monk Fruit",
			HealthScore:    9,
			Reason:         "Zero calories, no blood sugar spike",
			DietCompatible: []common.DietType{common.DietVegan, common.DietKeto, common.DietNormal},
		},
	},
	"msg": {
		{
			Name:           "Sea Salt",
			HealthScore:    8,
			Reason:         "Natural flavor enhancer",
			DietCompatible: []common.DietType{common.DietVegan, common.DietNormal, common.DietKeto},
		},
		{
			Name:           "Nutritional Yeast",
			HealthScore:    9,
			Reason:         "Umami flavor, rich in B vitamins",
			DietCompatible: []common.DietType{common.DietVegan, common.DietVegetarian, common.DietNormal},
		},
	},
	"palm oil": {
		{
			Name:           "Olive Oil",
			HealthScore:    10,
			Reason:         "Heart-healthy, rich in omega-3",
			DietCompatible: []common.DietType{common.DietVegan, common.DietNormal, common.DietKeto, common.DietPaleo},
		},
		{
			Name:           "Coconut Oil",
			HealthScore:    8,
			Reason:         "Medium-chain triglycerides",
			DietCompatible: []common.DietType{common.DietVegan, common.DietKeto, common.DietPaleo},
		},
	},
	"high fructose corn syrup": {
		{
			Name:           "Maple Syrup",
			HealthScore:    7,
			Reason:         "Natural, contains minerals",
			DietCompatible: []common.DietType{common.DietVegan, common.DietNormal},
		},
		{
			Name:           "Date Syrup",
			HealthScore:    8,
			Reason:         "Rich in fiber and minerals",
			DietCompatible: []common.DietType{common.DietVegan, common.DietNormal, common.DietPaleo},
		},
	},
}
