package catalog

import (
	"fmt"
	"os"
	"strings"

	"nutriscan-api/internal/pkg/common"

	"go.uber.org/zap"
)

// IngredientEntry 成分風險表的單一條目
type IngredientEntry struct {
	Name string          `json:"name"`
	Risk common.RiskTier `json:"risk"`
}

// IngredientCatalog 成分風險知識庫
// 啟動時載入一次，之後唯讀；迭代順序為載入順序
type IngredientCatalog struct {
	entries []IngredientEntry
	index   map[string]int // 小寫名稱 -> entries 索引
}

// NewIngredientCatalog 建立成分知識庫，名稱不分大小寫去重（保留先出現者）
func NewIngredientCatalog(entries []IngredientEntry) *IngredientCatalog {
	c := &IngredientCatalog{
		entries: make([]IngredientEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, e := range entries {
		key := strings.ToLower(strings.TrimSpace(e.Name))
		if key == "" {
			continue
		}
		if _, exists := c.index[key]; exists {
			continue
		}
		c.index[key] = len(c.entries)
		c.entries = append(c.entries, IngredientEntry{Name: strings.TrimSpace(e.Name), Risk: e.Risk})
	}
	return c
}

// LoadIngredientCatalog 從 JSON 檔載入成分知識庫；path 為空時使用內建種子資料
func LoadIngredientCatalog(path string) (*IngredientCatalog, error) {
	if path == "" {
		c := NewIngredientCatalog(seedIngredients)
		common.LogInfo("成分知識庫已載入（內建種子）",
			zap.Int("條目數", c.Len()),
		)
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ingredient catalog: %w", err)
	}

	var entries []IngredientEntry
	if err := common.ParseJSONBytes(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse ingredient catalog: %w", err)
	}

	for _, e := range entries {
		switch e.Risk {
		case common.RiskSafe, common.RiskModerate, common.RiskHarmful:
		default:
			return nil, fmt.Errorf("invalid risk tier %q for ingredient %q", e.Risk, e.Name)
		}
	}

	c := NewIngredientCatalog(entries)
	common.LogInfo("成分知識庫已載入",
		zap.String("path", path),
		zap.Int("條目數", c.Len()),
	)
	return c, nil
}

// Entries 依載入順序返回所有條目
func (c *IngredientCatalog) Entries() []IngredientEntry {
	return c.entries
}

// Lookup 不分大小寫查詢成分
func (c *IngredientCatalog) Lookup(name string) (IngredientEntry, bool) {
	i, ok := c.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return IngredientEntry{}, false
	}
	return c.entries[i], true
}

// Len 條目數量
func (c *IngredientCatalog) Len() int {
	return len(c.entries)
}

// seedIngredients 內建成分風險種子資料
var seedIngredients = []IngredientEntry{
	// 安全成分
	{Name: "Salt", Risk: common.RiskSafe},
	{Name: "Water", Risk: common.RiskSafe},
	{Name: "Black Pepper", Risk: common.RiskSafe},
	{Name: "Olive Oil", Risk: common.RiskSafe},
	{Name: "Citric Acid", Risk: common.RiskSafe},
	{Name: "Vitamin C", Risk: common.RiskSafe},
	{Name: "Milk", Risk: common.RiskSafe},
	{Name: "Egg", Risk: common.RiskSafe},
	{Name: "Honey", Risk: common.RiskSafe},
	{Name: "Rice", Risk: common.RiskSafe},
	{Name: "Oats", Risk: common.RiskSafe},
	{Name: "Baking Soda", Risk: common.RiskSafe},
	{Name: "Yeast", Risk: common.RiskSafe},
	{Name: "Cocoa", Risk: common.RiskSafe},
	{Name: "Vanilla Extract", Risk: common.RiskSafe},
	{Name: "Whey", Risk: common.RiskSafe},
	{Name: "Wheat", Risk: common.RiskSafe},
	{Name: "Peanut", Risk: common.RiskSafe},
	{Name: "Soybean Oil", Risk: common.RiskSafe},

	// 中度風險成分
	{Name: "MSG", Risk: common.RiskModerate},
	{Name: "Maltodextrin", Risk: common.RiskModerate},
	{Name: "Dextrose", Risk: common.RiskModerate},
	{Name: "Soy Lecithin", Risk: common.RiskModerate},
	{Name: "Carrageenan", Risk: common.RiskModerate},
	{Name: "Caramel Color", Risk: common.RiskModerate},
	{Name: "Artificial Flavor", Risk: common.RiskModerate},
	{Name: "Potassium Sorbate", Risk: common.RiskModerate},
	{Name: "Sodium Benzoate", Risk: common.RiskModerate},
	{Name: "Gelatin", Risk: common.RiskModerate},
	{Name: "Canola Oil", Risk: common.RiskModerate},
	{Name: "Corn", Risk: common.RiskModerate},

	// 有害成分
	{Name: "Sugar", Risk: common.RiskHarmful},
	{Name: "Palm Oil", Risk: common.RiskHarmful},
	{Name: "Corn Syrup", Risk: common.RiskHarmful},
	{Name: "High Fructose Corn Syrup", Risk: common.RiskHarmful},
	{Name: "Trans Fat", Risk: common.RiskHarmful},
	{Name: "Partially Hydrogenated Oil", Risk: common.RiskHarmful},
	{Name: "Aspartame", Risk: common.RiskHarmful},
	{Name: "Sodium Nitrite", Risk: common.RiskHarmful},
	{Name: "BHA", Risk: common.RiskHarmful},
	{Name: "BHT", Risk: common.RiskHarmful},
	{Name: "Red 40", Risk: common.RiskHarmful},
	{Name: "Yellow 5", Risk: common.RiskHarmful},
}
