package advisor

import (
	"fmt"
	"strings"

	"nutriscan-api/internal/pkg/common"
)

// substitutionPrompt 替代品建議提示詞
func substitutionPrompt(ingredient string, profile *common.HealthProfile) string {
	dietType := common.DietNormal
	var allergies []string
	if profile != nil {
		if profile.DietType != "" {
			dietType = profile.DietType
		}
		allergies = profile.Allergies
	}

	return fmt.Sprintf(`You are a nutrition expert. Analyze "%s" and provide 3 healthier alternatives.

User preferences:
- Diet: %s
- Allergies: %s

Provide response as valid JSON array:
[
  {
    "name": "Alternative name",
    "healthScore": 8,
    "reason": "Why it's better",
    "dietCompatible": ["vegan", "keto"]
  }
]

IMPORTANT: Return ONLY the JSON array, no markdown, no explanations.`,
		ingredient, dietType, common.FormatAllergies(allergies))
}

// riskPrompt 健康風險分析提示詞
func riskPrompt(scan common.ScanResult, profile *common.HealthProfile) string {
	names := make([]string, 0, len(scan.Details))
	for _, d := range scan.Details {
		names = append(names, d.Name)
	}
	ingredientsList := "unknown"
	if len(names) > 0 {
		ingredientsList = strings.Join(names, ", ")
	}

	dietType := common.DietNormal
	var allergies []string
	if profile != nil {
		if profile.DietType != "" {
			dietType = profile.DietType
		}
		allergies = profile.Allergies
	}

	return fmt.Sprintf(`Analyze health risks for ingredients: %s

User: Allergies: %s, Diet: %s

Stats: Total: %d, Safe: %d, Moderate: %d, Harmful: %d

Provide JSON:
{
  "riskScore": 45,
  "riskLevel": "Moderate",
  "riskColor": "yellow",
  "safetyRating": 55,
  "riskFactors": ["Factor 1", "Factor 2"],
  "recommendations": ["Recommendation 1", "Recommendation 2"]
}

Return ONLY valid JSON, no markdown.`,
		ingredientsList, common.FormatAllergies(allergies), dietType,
		scan.Total, scan.Safe, scan.Moderate, scan.Harmful)
}

// moodPrompt 心情食物推薦提示詞
func moodPrompt(mood string) string {
	return fmt.Sprintf(`Recommend 3 scientifically-backed foods for someone feeling %s.

Provide response as valid JSON array:
[
  {
    "foodName": "Food name",
    "nutrients": {
      "carbs": 25,
      "protein": 10,
      "fat": 5,
      "calories": 180
    },
    "reason": "Scientific explanation",
    "emoji": "🥑"
  }
]

IMPORTANT: Return ONLY the JSON array, no markdown.`, mood)
}

// chatPrompt 成分問答提示詞
func chatPrompt(question string) string {
	return fmt.Sprintf(`%s

Provide a comprehensive answer about this food ingredient including:
1. What it is
2. Health effects
3. Safe intake levels
4. Alternatives if harmful
5. Diet compatibility

Keep response professional and under 250 words.`, question)
}
