package nutrition

import (
	"math"

	"nutriscan-api/internal/pkg/common"
)

// 身體資料不全時的通用預設目標
var defaultGoals = common.NutritionGoals{
	Calories: 2000,
	Protein:  50,
	Carbs:    250,
	Fat:      70,
}

// activityMultipliers Mifflin-St Jeor 的活動量係數
var activityMultipliers = map[common.ActivityLevel]float64{
	common.ActivitySedentary:  1.2,
	common.ActivityLight:      1.375,
	common.ActivityModerate:   1.55,
	common.ActivityActive:     1.725,
	common.ActivityVeryActive: 1.9,
}

// CalculateGoals 依健康檔案計算每日營養目標
// 宏量分配固定為 30% 蛋白質 / 40% 碳水 / 30% 脂肪
func CalculateGoals(profile *common.HealthProfile) common.NutritionGoals {
	if profile == nil || profile.Weight <= 0 || profile.Height <= 0 || profile.Age <= 0 {
		return defaultGoals
	}

	// Mifflin-St Jeor 基礎代謝率
	bmr := 10*profile.Weight + 6.25*profile.Height - 5*float64(profile.Age) + 5

	multiplier, ok := activityMultipliers[profile.ActivityLevel]
	if !ok {
		multiplier = activityMultipliers[common.ActivityModerate]
	}
	calories := bmr * multiplier

	if profile.HasGoal("weight-loss") {
		calories -= 500
	}
	if profile.HasGoal("muscle-gain") {
		calories += 300
	}

	return common.NutritionGoals{
		Calories: int(math.Round(calories)),
		Protein:  int(math.Round(calories * 0.30 / 4)),
		Carbs:    int(math.Round(calories * 0.40 / 4)),
		Fat:      int(math.Round(calories * 0.30 / 9)),
	}
}
