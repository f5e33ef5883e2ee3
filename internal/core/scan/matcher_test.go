package scan

import (
	"testing"

	"nutriscan-api/internal/core/catalog"
	"nutriscan-api/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(t *testing.T, entries []catalog.IngredientEntry) *catalog.IngredientCatalog {
	t.Helper()
	return catalog.NewIngredientCatalog(entries)
}

func TestMatchCountsAndDetails(t *testing.T) {
	c := testCatalog(t, []catalog.IngredientEntry{
		{Name: "Sugar", Risk: common.RiskHarmful},
		{Name: "Palm Oil", Risk: common.RiskHarmful},
		{Name: "Salt", Risk: common.RiskSafe},
	})
	m := NewMatcher(c)

	result := m.Match("Sugar, Palm Oil, Salt")

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Safe)
	assert.Equal(t, 0, result.Moderate)
	assert.Equal(t, 2, result.Harmful)
	require.Len(t, result.Details, 3)

	// Details 依知識庫順序排列
	assert.Equal(t, "Sugar", result.Details[0].Name)
	assert.Equal(t, "Palm Oil", result.Details[1].Name)
	assert.Equal(t, "Salt", result.Details[2].Name)

	// 計數不變量
	assert.Equal(t, result.Total, result.Safe+result.Moderate+result.Harmful)
	assert.Equal(t, result.Total, len(result.Details))
}

func TestMatchCaseInsensitive(t *testing.T) {
	c := testCatalog(t, []catalog.IngredientEntry{
		{Name: "Sugar", Risk: common.RiskHarmful},
	})
	m := NewMatcher(c)

	assert.Equal(t, 1, m.Match("SUGAR").Total)
	assert.Equal(t, 1, m.Match("sugar").Total)
	assert.Equal(t, 1, m.Match("SuGaR").Total)
}

func TestMatchDedupPerEntry(t *testing.T) {
	c := testCatalog(t, []catalog.IngredientEntry{
		{Name: "Sugar", Risk: common.RiskHarmful},
	})
	m := NewMatcher(c)

	// 同一成分在標籤中出現多次只算一次
	result := m.Match("sugar, brown sugar, sugar")
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Harmful)
}

func TestMatchShortTokensIgnored(t *testing.T) {
	c := testCatalog(t, []catalog.IngredientEntry{
		{Name: "MSG", Risk: common.RiskModerate},
	})
	m := NewMatcher(c)

	// "e" 與 "of" 長度不足，不參與比對
	assert.Equal(t, 0, m.Match("e, of").Total)
	assert.Equal(t, 1, m.Match("msg").Total)
}

func TestMatchEmptyText(t *testing.T) {
	c := testCatalog(t, []catalog.IngredientEntry{
		{Name: "Sugar", Risk: common.RiskHarmful},
	})
	m := NewMatcher(c)

	for _, text := range []string{"", "   ", ",,;;..", "no known additives"} {
		result := m.Match(text)
		assert.Equal(t, 0, result.Total, "text=%q", text)
		assert.NotNil(t, result.Details)
		assert.Empty(t, result.Details)
	}
}

func TestMatchLongestWins(t *testing.T) {
	c := testCatalog(t, []catalog.IngredientEntry{
		{Name: "Corn", Risk: common.RiskModerate},
		{Name: "Corn Syrup", Risk: common.RiskHarmful},
	})
	m := NewMatcher(c)

	// corn 與 corn syrup 同時命中時只保留較長者
	result := m.Match("corn syrup")
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "Corn Syrup", result.Details[0].Name)
	assert.Equal(t, 1, result.Harmful)
	assert.Equal(t, 0, result.Moderate)
}

func TestMatchIdempotent(t *testing.T) {
	c := testCatalog(t, []catalog.IngredientEntry{
		{Name: "Sugar", Risk: common.RiskHarmful},
		{Name: "MSG", Risk: common.RiskModerate},
		{Name: "Salt", Risk: common.RiskSafe},
	})
	m := NewMatcher(c)

	text := "Sugar, MSG, Salt, Water"
	first := m.Match(text)
	second := m.Match(text)
	assert.Equal(t, first, second)
}
