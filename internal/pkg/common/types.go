package common

import "strings"

// RiskTier 單一成分的風險等級
type RiskTier string

const (
	RiskSafe     RiskTier = "Safe"
	RiskModerate RiskTier = "Moderate"
	RiskHarmful  RiskTier = "Harmful"
)

// DietType 飲食類型
type DietType string

const (
	DietNormal      DietType = "normal"
	DietVegan       DietType = "vegan"
	DietVegetarian  DietType = "vegetarian"
	DietKeto        DietType = "keto"
	DietPaleo       DietType = "paleo"
	DietPescatarian DietType = "pescatarian"
)

// ValidDietTypes 所有合法的飲食類型
var ValidDietTypes = []DietType{
	DietNormal, DietVegan, DietVegetarian, DietKeto, DietPaleo, DietPescatarian,
}

// IsValidDietType 檢查飲食類型是否合法
func IsValidDietType(d DietType) bool {
	for _, v := range ValidDietTypes {
		if v == d {
			return true
		}
	}
	return false
}

// ActivityLevel 活動量等級
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very-active"
)

// IngredientDetail 掃描結果中的單一成分
type IngredientDetail struct {
	Name string   `json:"name"`
	Risk RiskTier `json:"risk"`
}

// ScanResult 標籤文字分析結果
// 不變量：Total == Safe+Moderate+Harmful == len(Details)
type ScanResult struct {
	Total    int                `json:"total"`
	Safe     int                `json:"safe"`
	Moderate int                `json:"moderate"`
	Harmful  int                `json:"harmful"`
	Details  []IngredientDetail `json:"details"`
}

// HealthProfile 使用者健康檔案
// 對核心演算法而言是唯讀輸入，只透過 profile 更新請求修改
type HealthProfile struct {
	Allergies     []string      `json:"allergies"`
	DietType      DietType      `json:"dietType"`
	HealthGoals   []string      `json:"healthGoals"`
	Age           int           `json:"age,omitempty"`
	Weight        float64       `json:"weight,omitempty"` // kg
	Height        float64       `json:"height,omitempty"` // cm
	ActivityLevel ActivityLevel `json:"activityLevel,omitempty"`
}

// HasGoal 檢查是否包含指定健康目標
func (p *HealthProfile) HasGoal(goal string) bool {
	if p == nil {
		return false
	}
	for _, g := range p.HealthGoals {
		if g == goal {
			return true
		}
	}
	return false
}

// RiskAssessment 健康風險評估結果
// 確定性引擎與 AI 顧問兩條路徑都必須產生這個形狀
type RiskAssessment struct {
	RiskScore       int      `json:"riskScore"`
	RiskLevel       string   `json:"riskLevel"`
	RiskColor       string   `json:"riskColor"`
	RiskFactors     []string `json:"riskFactors"`
	Recommendations []string `json:"recommendations"`
	SafetyRating    int      `json:"safetyRating"`
}

// SubstituteCandidate 替代品候選
type SubstituteCandidate struct {
	Name           string     `json:"name"`
	HealthScore    int        `json:"healthScore"` // 1-10
	Reason         string     `json:"reason"`
	DietCompatible []DietType `json:"dietCompatible"`
}

// CompatibleWith 檢查候選是否相容指定飲食類型
func (c SubstituteCandidate) CompatibleWith(diet DietType) bool {
	for _, d := range c.DietCompatible {
		if d == diet {
			return true
		}
	}
	return false
}

// Nutrients 單一食物的營養素
type Nutrients struct {
	Carbs    float64 `json:"carbs"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Calories float64 `json:"calories"`
}

// MoodFood 依心情推薦的食物
type MoodFood struct {
	FoodName  string    `json:"foodName"`
	Nutrients Nutrients `json:"nutrients"`
	Reason    string    `json:"reason"`
	Emoji     string    `json:"emoji"`
}

// NutritionGoals 每日營養目標
type NutritionGoals struct {
	Calories int `json:"calories"`
	Protein  int `json:"protein"` // g
	Carbs    int `json:"carbs"`   // g
	Fat      int `json:"fat"`     // g
}

// FormatAllergies 將過敏原列表轉為提示詞用字串
func FormatAllergies(allergies []string) string {
	if len(allergies) == 0 {
		return "none"
	}
	return strings.Join(allergies, ", ")
}
