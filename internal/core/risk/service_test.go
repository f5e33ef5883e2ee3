package risk

import (
	"context"
	"testing"
	"time"

	"nutriscan-api/internal/core/advisor"
	"nutriscan-api/internal/core/cache"
	"nutriscan-api/internal/core/catalog"
	"nutriscan-api/internal/infrastructure/config"
	"nutriscan-api/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, store cache.Store) *Service {
	t.Helper()
	cfg := &config.Config{} // Gemini 未啟用，走確定性引擎
	adv := advisor.NewService(advisor.NewClient(cfg))
	cat, err := catalog.LoadIngredientCatalog("")
	require.NoError(t, err)
	return NewService(adv, cat, store)
}

func newTestStore(t *testing.T) *cache.Manager {
	t.Helper()
	m := cache.NewManagerWithClock(&config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			Backend:         "memory",
			MaxSize:         100,
			TTL:             time.Hour,
			CleanupInterval: time.Minute,
		},
	}, time.Now)
	require.NotNil(t, m)
	t.Cleanup(func() { m.Close() })
	return m
}

func TestAnalyzeDeterministicFallback(t *testing.T) {
	svc := newTestService(t, nil)

	scan := common.ScanResult{
		Total: 1, Harmful: 1,
		Details: []common.IngredientDetail{{Name: "Sugar", Risk: common.RiskHarmful}},
	}

	assessment, fromAI, err := svc.Analyze(context.Background(), "user1", scan, nil)
	require.NoError(t, err)
	assert.False(t, fromAI)
	assert.Equal(t, 15, assessment.RiskScore)
	assert.Equal(t, "Moderate", assessment.RiskLevel)
}

func TestAnalyzeCachesResult(t *testing.T) {
	store := newTestStore(t)
	svc := newTestService(t, store)
	ctx := context.Background()

	scan := common.ScanResult{
		Total: 1, Harmful: 1,
		Details: []common.IngredientDetail{{Name: "Sugar", Risk: common.RiskHarmful}},
	}

	first, _, err := svc.Analyze(ctx, "user1", scan, nil)
	require.NoError(t, err)

	second, fromAI, err := svc.Analyze(ctx, "user1", scan, nil)
	require.NoError(t, err)
	assert.False(t, fromAI)
	assert.Equal(t, first, second)

	stats := store.GetStats(ctx)
	assert.Equal(t, int64(1), stats.Hits)
}

func TestAnalyzeCacheKeyIncludesProfile(t *testing.T) {
	store := newTestStore(t)
	svc := newTestService(t, store)
	ctx := context.Background()

	scan := common.ScanResult{
		Total: 1, Harmful: 1,
		Details: []common.IngredientDetail{{Name: "Sugar", Risk: common.RiskHarmful}},
	}

	plain, _, err := svc.Analyze(ctx, "user1", scan, nil)
	require.NoError(t, err)

	// 不同檔案必須得到不同評估，不能吃到上一筆快取
	keto, _, err := svc.Analyze(ctx, "user1", scan, &common.HealthProfile{DietType: common.DietKeto})
	require.NoError(t, err)
	assert.NotEqual(t, plain.RiskScore, keto.RiskScore)
}

func TestQuickCheckLooksUpTiers(t *testing.T) {
	svc := newTestService(t, nil)

	scan, assessment, err := svc.QuickCheck([]string{"palm oil", "unobtainium"}, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, scan.Total)
	assert.Equal(t, 1, scan.Harmful)
	assert.Equal(t, 1, scan.Safe)
	// 目錄命中時換成正規名稱，查不到的原樣保留並視為 Safe
	assert.Equal(t, "Palm Oil", scan.Details[0].Name)
	assert.Equal(t, common.RiskHarmful, scan.Details[0].Risk)
	assert.Equal(t, "unobtainium", scan.Details[1].Name)
	assert.Equal(t, common.RiskSafe, scan.Details[1].Risk)

	assert.Equal(t, 15, assessment.RiskScore)
	assert.Equal(t, "Moderate", assessment.RiskLevel)
}

func TestQuickCheckAppliesProfile(t *testing.T) {
	svc := newTestService(t, nil)

	profile := &common.HealthProfile{Allergies: []string{"peanut"}}
	_, assessment, err := svc.QuickCheck([]string{"peanut butter"}, profile)
	require.NoError(t, err)

	// 未知成分本身 0 分，過敏原比對仍要觸發 +30
	assert.Equal(t, 30, assessment.RiskScore)
	assert.Equal(t, "High", assessment.RiskLevel)
}

func TestQuickCheckSkipsBlankEntries(t *testing.T) {
	svc := newTestService(t, nil)

	scan, _, err := svc.QuickCheck([]string{" ", "Salt", ""}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, scan.Total)
}

func TestQuickCheckEmptyList(t *testing.T) {
	svc := newTestService(t, nil)

	_, _, err := svc.QuickCheck([]string{"   ", ""}, nil)
	assert.Error(t, err)
}
