package risk

import (
	"fmt"
	"testing"

	"nutriscan-api/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanOf(details ...common.IngredientDetail) common.ScanResult {
	result := common.ScanResult{Details: details}
	for _, d := range details {
		result.Total++
		switch d.Risk {
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

func TestAssessEmptyScan(t *testing.T) {
	assessment := Assess(common.ScanResult{Details: []common.IngredientDetail{}}, nil)

	assert.Equal(t, 0, assessment.RiskScore)
	assert.Equal(t, "Low", assessment.RiskLevel)
	assert.Equal(t, "green", assessment.RiskColor)
	assert.Equal(t, 100, assessment.SafetyRating)
	assert.Empty(t, assessment.RiskFactors)
	assert.Equal(t, []string{"This product appears safe for you"}, assessment.Recommendations)
}

func TestAssessTierBoundaries(t *testing.T) {
	cases := []struct {
		score int
		level string
		color string
	}{
		{14, "Low", "green"},
		{15, "Moderate", "yellow"},
		{29, "Moderate", "yellow"},
		{30, "High", "orange"},
		{49, "High", "orange"},
		{50, "Critical", "red"},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("score_%d", tc.score), func(t *testing.T) {
			// 用中度成分 x5 與有害成分 x15 精確湊出目標分數
			harmful := tc.score / 15
			moderate := (tc.score - harmful*15) / 5
			rest := tc.score - harmful*15 - moderate*5
			require.Zero(t, rest, "score %d not reachable from tier weights", tc.score)

			details := []common.IngredientDetail{}
			for i := 0; i < harmful; i++ {
				details = append(details, common.IngredientDetail{Name: fmt.Sprintf("bad-%d", i), Risk: common.RiskHarmful})
			}
			for i := 0; i < moderate; i++ {
				details = append(details, common.IngredientDetail{Name: fmt.Sprintf("mid-%d", i), Risk: common.RiskModerate})
			}

			assessment := Assess(scanOf(details...), nil)
			assert.Equal(t, tc.score, assessment.RiskScore)
			assert.Equal(t, tc.level, assessment.RiskLevel)
			assert.Equal(t, tc.color, assessment.RiskColor)
		})
	}
}

func TestAssessAllergenMatch(t *testing.T) {
	scan := scanOf(
		common.IngredientDetail{Name: "Peanut Butter", Risk: common.RiskSafe},
		common.IngredientDetail{Name: "Salt", Risk: common.RiskSafe},
	)
	profile := &common.HealthProfile{Allergies: []string{"peanut"}}

	assessment := Assess(scan, profile)

	assert.Equal(t, 30, assessment.RiskScore)
	assert.Equal(t, "High", assessment.RiskLevel)
	assert.Contains(t, assessment.RiskFactors, "Contains allergens: Peanut Butter")
	assert.Contains(t, assessment.Recommendations, "⚠️ CRITICAL: Contains ingredients you're allergic to - DO NOT CONSUME")
}

func TestAssessAllergenAddedOnce(t *testing.T) {
	// 多個過敏原命中仍然只加一次 30 分
	scan := scanOf(
		common.IngredientDetail{Name: "Peanut", Risk: common.RiskSafe},
		common.IngredientDetail{Name: "Milk", Risk: common.RiskSafe},
	)
	profile := &common.HealthProfile{Allergies: []string{"peanut", "milk"}}

	assessment := Assess(scan, profile)
	assert.Equal(t, 30, assessment.RiskScore)
	assert.Contains(t, assessment.RiskFactors, "Contains allergens: Peanut, Milk")
}

func TestAssessDietIncompatibility(t *testing.T) {
	scan := scanOf(common.IngredientDetail{Name: "Gelatin", Risk: common.RiskModerate})

	vegan := Assess(scan, &common.HealthProfile{DietType: common.DietVegan})
	assert.Equal(t, 15, vegan.RiskScore) // 5 + 10
	assert.Contains(t, vegan.RiskFactors, "Not compatible with vegan diet")

	// 相容飲食不加分
	keto := Assess(scan, &common.HealthProfile{DietType: common.DietKeto})
	assert.Equal(t, 5, keto.RiskScore)
}

func TestAssessGoalsIndependent(t *testing.T) {
	scan := scanOf(common.IngredientDetail{Name: "Palm Oil", Risk: common.RiskHarmful})

	profile := &common.HealthProfile{HealthGoals: []string{"weight-loss", "heart-health"}}
	assessment := Assess(scan, profile)

	// 15 (有害) + 10 (減重) + 15 (心臟健康)
	assert.Equal(t, 40, assessment.RiskScore)
	assert.Equal(t, "High", assessment.RiskLevel)
	assert.Equal(t, "orange", assessment.RiskColor)
	assert.Equal(t, 60, assessment.SafetyRating)
	assert.Contains(t, assessment.RiskFactors, "Contains high-calorie ingredients")
	assert.Contains(t, assessment.RiskFactors, "Contains unhealthy fats")
}

func TestAssessGoalExactNameOnly(t *testing.T) {
	// 目標檢查是全名比對；"Organic Palm Oil" 不算 "palm oil"
	scan := scanOf(common.IngredientDetail{Name: "Organic Palm Oil", Risk: common.RiskHarmful})
	profile := &common.HealthProfile{HealthGoals: []string{"weight-loss"}}

	assessment := Assess(scan, profile)
	assert.Equal(t, 15, assessment.RiskScore)
	assert.NotContains(t, assessment.RiskFactors, "Contains high-calorie ingredients")
}

func TestAssessScoreClampAndSafetyFloor(t *testing.T) {
	// 8 個有害成分 = 120 分：顯示值封頂 100，safetyRating 底線 0
	details := []common.IngredientDetail{}
	for i := 0; i < 8; i++ {
		details = append(details, common.IngredientDetail{Name: fmt.Sprintf("bad-%d", i), Risk: common.RiskHarmful})
	}

	assessment := Assess(scanOf(details...), nil)
	assert.Equal(t, 100, assessment.RiskScore)
	assert.Equal(t, "Critical", assessment.RiskLevel)
	assert.Equal(t, 0, assessment.SafetyRating)
}

func TestAssessMonotonicity(t *testing.T) {
	base := scanOf(common.IngredientDetail{Name: "MSG", Risk: common.RiskModerate})
	more := scanOf(
		common.IngredientDetail{Name: "MSG", Risk: common.RiskModerate},
		common.IngredientDetail{Name: "Sugar", Risk: common.RiskHarmful},
	)

	baseScore := Assess(base, nil).RiskScore
	moreScore := Assess(more, nil).RiskScore
	assert.Greater(t, moreScore, baseScore)
}

func TestAssessDeterministic(t *testing.T) {
	scan := scanOf(
		common.IngredientDetail{Name: "Sugar", Risk: common.RiskHarmful},
		common.IngredientDetail{Name: "MSG", Risk: common.RiskModerate},
	)
	profile := &common.HealthProfile{
		Allergies:   []string{"milk"},
		DietType:    common.DietKeto,
		HealthGoals: []string{"weight-loss"},
	}

	first := Assess(scan, profile)
	second := Assess(scan, profile)
	assert.Equal(t, first, second)
}
