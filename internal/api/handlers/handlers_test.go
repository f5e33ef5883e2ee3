package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nutriscan-api/internal/core/advisor"
	"nutriscan-api/internal/core/catalog"
	"nutriscan-api/internal/core/chat"
	"nutriscan-api/internal/core/mood"
	"nutriscan-api/internal/core/risk"
	"nutriscan-api/internal/core/scan"
	"nutriscan-api/internal/core/substitution"
	"nutriscan-api/internal/infrastructure/config"
	"nutriscan-api/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRouter 只掛 handler 本身，不帶限流與去重
func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{} // Gemini 未啟用，快取停用
	adv := advisor.NewService(advisor.NewClient(cfg))

	ingredientCatalog, err := catalog.LoadIngredientCatalog("")
	require.NoError(t, err)
	substitutionCatalog, err := catalog.LoadSubstitutionCatalog("")
	require.NoError(t, err)

	scanService := scan.NewService(scan.NewMatcher(ingredientCatalog))
	riskService := risk.NewService(adv, ingredientCatalog, nil)
	substitutionService := substitution.NewService(adv, substitutionCatalog, nil)
	moodService := mood.NewService(adv, nil)
	chatService := chat.NewService(adv, nil)

	scanHandler := NewScanHandler(scanService)
	riskHandler := NewRiskHandler(scanService, riskService)
	substitutionHandler := NewSubstitutionHandler(substitutionService)
	moodHandler := NewMoodHandler(moodService)
	chatHandler := NewChatHandler(chatService)
	nutritionHandler := NewNutritionHandler()
	aiStatusHandler := NewAIStatusHandler(cfg, adv, nil)

	r := gin.New()
	r.POST("/api/v1/scan/analyze", scanHandler.HandleAnalyze)
	r.POST("/api/v1/risk/analyze", riskHandler.HandleAnalyze)
	r.POST("/api/v1/risk/quick-check", riskHandler.HandleQuickCheck)
	r.POST("/api/v1/substitution/suggest", substitutionHandler.HandleSuggest)
	r.GET("/api/v1/mood/list", moodHandler.HandleMoods)
	r.POST("/api/v1/mood/recommend", moodHandler.HandleRecommend)
	r.POST("/api/v1/chat/ask", chatHandler.HandleAsk)
	r.POST("/api/v1/nutrition/goals", nutritionHandler.HandleGoals)
	r.GET("/api/v1/ai/status", aiStatusHandler.HandleStatus)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestScanAnalyzeEndpoint(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, "POST", "/api/v1/scan/analyze", `{"labelText": "Sugar, Salt, MSG"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result common.ScanResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.Safe)
	assert.Equal(t, 1, result.Moderate)
	assert.Equal(t, 1, result.Harmful)
}

func TestScanAnalyzeMissingBody(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, "POST", "/api/v1/scan/analyze", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRiskAnalyzeEndpoint(t *testing.T) {
	r := testRouter(t)

	body := `{
		"labelText": "Sugar, Aspartame, Salt",
		"profile": {"dietType": "keto", "healthGoals": ["weight-loss"]}
	}`
	w := doJSON(t, r, "POST", "/api/v1/risk/analyze", body)
	require.Equal(t, http.StatusOK, w.Code)

	var result RiskAnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.AIPowered)
	assert.Equal(t, 3, result.Scan.Total)
	require.NotNil(t, result.Assessment)
	// 2 有害 x15 + keto 不相容 +10 + 減重 +10 = 50
	assert.Equal(t, 50, result.Assessment.RiskScore)
	assert.Equal(t, "Critical", result.Assessment.RiskLevel)
}

func TestRiskAnalyzeIngredientList(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, "POST", "/api/v1/risk/analyze", `{"ingredients": ["sugar", "salt"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result RiskAnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Scan.Total)
}

func TestRiskAnalyzeInvalidDiet(t *testing.T) {
	r := testRouter(t)

	body := `{"labelText": "sugar", "profile": {"dietType": "carnivore"}}`
	w := doJSON(t, r, "POST", "/api/v1/risk/analyze", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_DIET_TYPE")
}

func TestQuickCheckEndpoint(t *testing.T) {
	r := testRouter(t)

	body := `{"ingredients": ["aspartame", "salt"], "profile": {"dietType": "keto"}}`
	w := doJSON(t, r, "POST", "/api/v1/risk/quick-check", body)
	require.Equal(t, http.StatusOK, w.Code)

	var result QuickCheckResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 2, result.Scan.Total)
	assert.Equal(t, 1, result.Scan.Harmful)
	assert.Equal(t, common.RiskHarmful, result.Scan.Details[0].Risk)
	assert.Equal(t, 15, result.Assessment.RiskScore)
}

func TestSubstitutionSuggestEndpoint(t *testing.T) {
	r := testRouter(t)

	body := `{"ingredient": "sugar", "profile": {"dietType": "keto"}}`
	w := doJSON(t, r, "POST", "/api/v1/substitution/suggest", body)
	require.Equal(t, http.StatusOK, w.Code)

	var result substitution.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, substitution.SourceCatalog, result.Source)
	require.Len(t, result.Substitutes, 2)
	assert.Equal(t, "Stevia", result.Substitutes[0].Name)

	// topN 按健康分數截斷
	w = doJSON(t, r, "POST", "/api/v1/substitution/suggest", `{"ingredient": "sugar", "topN": 1}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Substitutes, 1)
	assert.Equal(t, "Stevia", result.Substitutes[0].Name)
}

func TestMoodEndpoints(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, "POST", "/api/v1/mood/recommend", `{"mood": "happy"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var result mood.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, "static", result.Source)
	assert.Len(t, result.Foods, 3)
	assert.Equal(t, 3, result.Count)

	w = doJSON(t, r, "POST", "/api/v1/mood/recommend", `{"mood": "hangry"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req := httptest.NewRequest("GET", "/api/v1/mood/list", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "stressed")
}

func TestChatRequiresAI(t *testing.T) {
	r := testRouter(t)

	w := doJSON(t, r, "POST", "/api/v1/chat/ask", `{"question": "Is aspartame safe?"}`)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "AI_NOT_CONFIGURED")
}

func TestNutritionGoalsEndpoint(t *testing.T) {
	r := testRouter(t)

	body := `{"profile": {"age": 30, "weight": 70, "height": 175, "activityLevel": "moderate"}}`
	w := doJSON(t, r, "POST", "/api/v1/nutrition/goals", body)
	require.Equal(t, http.StatusOK, w.Code)

	var result NutritionGoalsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.UsedDefaults)
	assert.Equal(t, 2556, result.Goals.Calories)

	// 身體資料不全時回預設值
	w = doJSON(t, r, "POST", "/api/v1/nutrition/goals", `{"profile": {"age": 30}}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.UsedDefaults)
	assert.Equal(t, 2000, result.Goals.Calories)
}

func TestAIStatusEndpoint(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest("GET", "/api/v1/ai/status", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var result AIStatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Configured)
	assert.True(t, result.Features["scan"])
	assert.True(t, result.Features["risk"])
	assert.False(t, result.Features["chat"])
	assert.Nil(t, result.Cache)
}
