package substitution

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
	cfg := &config.Config{} // Gemini 未啟用
	adv := advisor.NewService(advisor.NewClient(cfg))
	cat, err := catalog.LoadSubstitutionCatalog("")
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

func TestSuggestFromCatalog(t *testing.T) {
	svc := newTestService(t, nil)

	result, err := svc.Suggest(context.Background(), "user1", "sugar", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, SourceCatalog, result.Source)
	require.Len(t, result.Substitutes, 3)
	assert.Equal(t, "Stevia", result.Substitutes[0].Name)
}

func TestSuggestTopN(t *testing.T) {
	svc := newTestService(t, nil)

	result, err := svc.Suggest(context.Background(), "user1", "sugar", nil, 2)
	require.NoError(t, err)

	// 按健康分數排序後取前兩名，同分維持目錄順序
	require.Len(t, result.Substitutes, 2)
	assert.Equal(t, "Stevia", result.Substitutes[0].Name)
	assert.Equal(t, "Monk Fruit", result.Substitutes[1].Name)
}

func TestSuggestDietFiltered(t *testing.T) {
	svc := newTestService(t, nil)

	profile := &common.HealthProfile{DietType: common.DietKeto}
	result, err := svc.Suggest(context.Background(), "user1", "sugar", profile, 0)
	require.NoError(t, err)

	// 種子資料中只有 Stevia 與 Monk Fruit 相容 keto
	require.Len(t, result.Substitutes, 2)
	assert.Equal(t, "Stevia", result.Substitutes[0].Name)
	assert.Equal(t, "Monk Fruit", result.Substitutes[1].Name)
}

func TestSuggestUnknownWithoutAdvisor(t *testing.T) {
	svc := newTestService(t, nil)

	result, err := svc.Suggest(context.Background(), "user1", "unobtainium", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, SourceCatalog, result.Source)
	assert.NotNil(t, result.Substitutes)
	assert.Empty(t, result.Substitutes)
}

func TestSuggestEmptyIngredient(t *testing.T) {
	svc := newTestService(t, nil)

	_, err := svc.Suggest(context.Background(), "user1", "  ", nil, 0)
	assert.Error(t, err)
}

func TestSuggestCachesResult(t *testing.T) {
	store := newTestStore(t)
	svc := newTestService(t, store)
	ctx := context.Background()

	first, err := svc.Suggest(ctx, "user1", "sugar", nil, 0)
	require.NoError(t, err)

	second, err := svc.Suggest(ctx, "user1", "sugar", nil, 0)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	stats := store.GetStats(ctx)
	assert.Equal(t, int64(1), stats.Hits)
}

func TestSuggestCacheKeyIncludesProfile(t *testing.T) {
	store := newTestStore(t)
	svc := newTestService(t, store)
	ctx := context.Background()

	plain, err := svc.Suggest(ctx, "user1", "sugar", nil, 0)
	require.NoError(t, err)
	require.Len(t, plain.Substitutes, 3)

	keto, err := svc.Suggest(ctx, "user1", "sugar", &common.HealthProfile{DietType: common.DietKeto}, 0)
	require.NoError(t, err)
	assert.Len(t, keto.Substitutes, 2)
}
