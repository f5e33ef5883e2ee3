package mood

import (
	"context"
	"testing"

	"nutriscan-api/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidMoodsCoverage(t *testing.T) {
	moods := ValidMoods()
	assert.Len(t, moods, 7)

	for _, m := range moods {
		assert.True(t, IsValidMood(m), "mood %q should be valid", m)
	}
	assert.False(t, IsValidMood("hangry"))
	assert.False(t, IsValidMood(""))
}

func TestStaticMapComplete(t *testing.T) {
	for _, m := range ValidMoods() {
		foods := moodFoodMap[m]
		require.Len(t, foods, 3, "mood %q", m)
		for _, f := range foods {
			assert.NotEmpty(t, f.FoodName, "mood %q", m)
			assert.NotEmpty(t, f.Reason, "mood %q food %q", m, f.FoodName)
			assert.NotEmpty(t, f.Emoji, "mood %q food %q", m, f.FoodName)
			assert.Greater(t, f.Nutrients.Calories, 0.0, "mood %q food %q", m, f.FoodName)
		}
	}
}

func TestRecommendInvalidMood(t *testing.T) {
	svc := NewService(nil, nil)

	_, err := svc.Recommend(context.Background(), "hangry")
	assert.ErrorIs(t, err, common.ErrInvalidMood)
}

func TestRecommendStaticFallback(t *testing.T) {
	// 沒有 AI 顧問也沒有快取時直接用靜態表
	svc := NewService(nil, nil)

	result, err := svc.Recommend(context.Background(), "happy")
	require.NoError(t, err)
	assert.Equal(t, "happy", result.Mood)
	assert.Equal(t, "static", result.Source)
	require.Len(t, result.Foods, 3)
	assert.Equal(t, 3, result.Count)
	assert.Equal(t, "Dark Chocolate", result.Foods[0].FoodName)
}

func TestRecommendNormalizesMood(t *testing.T) {
	svc := NewService(nil, nil)

	result, err := svc.Recommend(context.Background(), "  HAPPY ")
	require.NoError(t, err)
	assert.Equal(t, "happy", result.Mood)
}

func TestRecommendCopiesStaticSlice(t *testing.T) {
	svc := NewService(nil, nil)

	first, err := svc.Recommend(context.Background(), "calm")
	require.NoError(t, err)
	first.Foods[0].FoodName = "mutated"

	second, err := svc.Recommend(context.Background(), "calm")
	require.NoError(t, err)
	assert.Equal(t, "Herbal Tea", second.Foods[0].FoodName)
}
