package mood

import "nutriscan-api/internal/pkg/common"

// moodFoodMap 各心情的靜態推薦表
// AI 顧問失敗或未設定時的保底資料，營養素為每份常見份量
var moodFoodMap = map[string][]common.MoodFood{
	"happy": {
		{
			FoodName:  "Dark Chocolate",
			Nutrients: common.Nutrients{Carbs: 45, Protein: 5, Fat: 35, Calories: 550},
			Reason:    "Boosts serotonin and contains mood-enhancing compounds",
			Emoji:     "🍫",
		},
		{
			FoodName:  "Berries",
			Nutrients: common.Nutrients{Carbs: 12, Protein: 1, Fat: 0.3, Calories: 50},
			Reason:    "Rich in antioxidants that support brain health",
			Emoji:     "🫐",
		},
		{
			FoodName:  "Banana",
			Nutrients: common.Nutrients{Carbs: 27, Protein: 1.3, Fat: 0.4, Calories: 105},
			Reason:    "Contains tryptophan which converts to serotonin",
			Emoji:     "🍌",
		},
	},
	"sad": {
		{
			FoodName:  "Salmon",
			Nutrients: common.Nutrients{Carbs: 0, Protein: 25, Fat: 13, Calories: 206},
			Reason:    "Omega-3 fatty acids help combat depression",
			Emoji:     "🐟",
		},
		{
			FoodName:  "Oatmeal",
			Nutrients: common.Nutrients{Carbs: 66, Protein: 17, Fat: 7, Calories: 389},
			Reason:    "Complex carbs stabilize blood sugar and mood",
			Emoji:     "🥣",
		},
		{
			FoodName:  "Walnuts",
			Nutrients: common.Nutrients{Carbs: 14, Protein: 15, Fat: 65, Calories: 654},
			Reason:    "High in omega-3s and mood-supporting nutrients",
			Emoji:     "🌰",
		},
	},
	"stressed": {
		{
			FoodName:  "Green Tea",
			Nutrients: common.Nutrients{Carbs: 0, Protein: 0, Fat: 0, Calories: 2},
			Reason:    "L-theanine promotes relaxation without drowsiness",
			Emoji:     "🍵",
		},
		{
			FoodName:  "Avocado",
			Nutrients: common.Nutrients{Carbs: 9, Protein: 2, Fat: 15, Calories: 160},
			Reason:    "B vitamins help regulate stress hormones",
			Emoji:     "🥑",
		},
		{
			FoodName:  "Sweet Potato",
			Nutrients: common.Nutrients{Carbs: 26, Protein: 2, Fat: 0.2, Calories: 112},
			Reason:    "Complex carbs reduce cortisol levels",
			Emoji:     "🍠",
		},
	},
	"energetic": {
		{
			FoodName:  "Almonds",
			Nutrients: common.Nutrients{Carbs: 22, Protein: 21, Fat: 50, Calories: 579},
			Reason:    "Sustained energy from healthy fats and protein",
			Emoji:     "🌰",
		},
		{
			FoodName:  "Greek Yogurt",
			Nutrients: common.Nutrients{Carbs: 9, Protein: 10, Fat: 0.4, Calories: 59},
			Reason:    "Protein keeps energy levels steady",
			Emoji:     "🥛",
		},
		{
			FoodName:  "Apple",
			Nutrients: common.Nutrients{Carbs: 25, Protein: 0.5, Fat: 0.3, Calories: 95},
			Reason:    "Natural sugars with fiber for gradual energy release",
			Emoji:     "🍎",
		},
	},
	"tired": {
		{
			FoodName:  "Spinach",
			Nutrients: common.Nutrients{Carbs: 3.6, Protein: 2.9, Fat: 0.4, Calories: 23},
			Reason:    "Iron helps fight fatigue and boosts energy",
			Emoji:     "🥬",
		},
		{
			FoodName:  "Eggs",
			Nutrients: common.Nutrients{Carbs: 1.1, Protein: 13, Fat: 11, Calories: 155},
			Reason:    "B12 and protein combat tiredness",
			Emoji:     "🥚",
		},
		{
			FoodName:  "Coffee",
			Nutrients: common.Nutrients{Carbs: 0, Protein: 0, Fat: 0, Calories: 2},
			Reason:    "Caffeine provides a quick alertness boost",
			Emoji:     "☕",
		},
	},
	"anxious": {
		{
			FoodName:  "Chamomile Tea",
			Nutrients: common.Nutrients{Carbs: 0, Protein: 0, Fat: 0, Calories: 2},
			Reason:    "Natural calming properties reduce anxiety",
			Emoji:     "🫖",
		},
		{
			FoodName:  "Turkey",
			Nutrients: common.Nutrients{Carbs: 0, Protein: 29, Fat: 7, Calories: 189},
			Reason:    "Tryptophan promotes calmness and relaxation",
			Emoji:     "🦃",
		},
		{
			FoodName:  "Blueberries",
			Nutrients: common.Nutrients{Carbs: 14, Protein: 1, Fat: 0.5, Calories: 57},
			Reason:    "Vitamin C helps manage stress response",
			Emoji:     "🫐",
		},
	},
	"calm": {
		{
			FoodName:  "Herbal Tea",
			Nutrients: common.Nutrients{Carbs: 0, Protein: 0, Fat: 0, Calories: 2},
			Reason:    "Maintains relaxed state without stimulants",
			Emoji:     "🍵",
		},
		{
			FoodName:  "Quinoa",
			Nutrients: common.Nutrients{Carbs: 64, Protein: 14, Fat: 6, Calories: 368},
			Reason:    "Magnesium supports continued relaxation",
			Emoji:     "🌾",
		},
		{
			FoodName:  "Cucumber",
			Nutrients: common.Nutrients{Carbs: 3.6, Protein: 0.7, Fat: 0.1, Calories: 16},
			Reason:    "Hydrating and light, keeps you feeling balanced",
			Emoji:     "🥒",
		},
	},
}

// ValidMoods 返回所有支援的心情，順序固定
func ValidMoods() []string {
	return []string{"happy", "sad", "stressed", "energetic", "tired", "anxious", "calm"}
}

// IsValidMood 檢查心情是否在支援列表內
func IsValidMood(mood string) bool {
	_, ok := moodFoodMap[mood]
	return ok
}
