package risk

import (
	"fmt"
	"strings"

	"nutriscan-api/internal/pkg/common"
)

// incompatibleIngredients 各飲食類型不相容的成分子字串
var incompatibleIngredients = map[common.DietType][]string{
	common.DietVegan:      {"milk", "egg", "honey", "gelatin", "whey", "casein"},
	common.DietVegetarian: {"gelatin", "rennet"},
	common.DietKeto:       {"sugar", "wheat", "rice", "corn syrup"},
}

// highCalorieIngredients 減重目標下扣分的成分（全名比對）
var highCalorieIngredients = []string{"sugar", "palm oil", "corn syrup"}

// unhealthyFats 心臟健康目標下扣分的成分（全名比對）
var unhealthyFats = []string{"palm oil", "trans fat", "partially hydrogenated oil"}

// Assess 依掃描結果與健康檔案計算健康風險評估
// 純函數：相同輸入永遠得到相同輸出；profile 為 nil 時只計算成分數量分數
//
// 分數累計順序（只影響 riskFactors/recommendations 的訊息順序）：
//  1. 有害成分 x15、中度成分 x5
//  2. 過敏原子字串命中 +30
//  3. 飲食不相容 +10
//  4. 減重目標 +10、心臟健康目標 +15（各自獨立累加）
//
// 等級門檻使用未封頂的分數；riskScore 顯示值封頂 100；
// safetyRating 由未封頂分數計算並以 0 為下限
func Assess(scan common.ScanResult, profile *common.HealthProfile) common.RiskAssessment {
	score := 0
	riskFactors := []string{}
	recommendations := []string{}

	// 基礎分數：依風險等級計數
	score += scan.Harmful * 15
	score += scan.Moderate * 5

	if scan.Harmful > 0 {
		riskFactors = append(riskFactors, fmt.Sprintf("Contains %d harmful ingredient(s)", scan.Harmful))
		recommendations = append(recommendations, "Consider alternative products with fewer harmful additives")
	}

	// 過敏原檢查：成分名稱包含過敏原子字串即命中
	if profile != nil && len(profile.Allergies) > 0 {
		var allergenMatch []string
		for _, detail := range scan.Details {
			name := strings.ToLower(detail.Name)
			for _, allergy := range profile.Allergies {
				if strings.Contains(name, strings.ToLower(allergy)) {
					allergenMatch = append(allergenMatch, detail.Name)
					break
				}
			}
		}

		if len(allergenMatch) > 0 {
			score += 30
			riskFactors = append(riskFactors, fmt.Sprintf("Contains allergens: %s", strings.Join(allergenMatch, ", ")))
			recommendations = append(recommendations, "⚠️ CRITICAL: Contains ingredients you're allergic to - DO NOT CONSUME")
		}
	}

	// 飲食相容性檢查
	if profile != nil && profile.DietType != "" {
		dietIncompatible := incompatibleIngredients[profile.DietType]

		found := false
		for _, detail := range scan.Details {
			name := strings.ToLower(detail.Name)
			for _, inc := range dietIncompatible {
				if strings.Contains(name, inc) {
					found = true
					break
				}
			}
			if found {
				break
			}
		}

		if found {
			score += 10
			riskFactors = append(riskFactors, fmt.Sprintf("Not compatible with %s diet", profile.DietType))
			recommendations = append(recommendations, fmt.Sprintf("Contains ingredients not suitable for %s diet", profile.DietType))
		}
	}

	// 健康目標檢查：各目標獨立累加
	if profile.HasGoal("weight-loss") && containsAnyExact(scan.Details, highCalorieIngredients) {
		score += 10
		riskFactors = append(riskFactors, "Contains high-calorie ingredients")
		recommendations = append(recommendations, "Not ideal for weight loss goals")
	}

	if profile.HasGoal("heart-health") && containsAnyExact(scan.Details, unhealthyFats) {
		score += 15
		riskFactors = append(riskFactors, "Contains unhealthy fats")
		recommendations = append(recommendations, "May negatively impact heart health")
	}

	// 等級門檻使用未封頂分數
	riskLevel := "Low"
	riskColor := "green"
	switch {
	case score >= 50:
		riskLevel = "Critical"
		riskColor = "red"
	case score >= 30:
		riskLevel = "High"
		riskColor = "orange"
	case score >= 15:
		riskLevel = "Moderate"
		riskColor = "yellow"
	}

	if len(recommendations) == 0 {
		recommendations = []string{"This product appears safe for you"}
	}

	safetyRating := 100 - score
	if safetyRating < 0 {
		safetyRating = 0
	}

	riskScore := score
	if riskScore > 100 {
		riskScore = 100
	}

	return common.RiskAssessment{
		RiskScore:       riskScore,
		RiskLevel:       riskLevel,
		RiskColor:       riskColor,
		RiskFactors:     riskFactors,
		Recommendations: recommendations,
		SafetyRating:    safetyRating,
	}
}

// containsAnyExact 檢查是否有成分名稱（不分大小寫）等於清單中任一名稱
func containsAnyExact(details []common.IngredientDetail, names []string) bool {
	for _, detail := range details {
		name := strings.ToLower(detail.Name)
		for _, n := range names {
			if name == n {
				return true
			}
		}
	}
	return false
}
