package advisor

import (
	"context"
	"errors"
	"strings"
	"time"

	"nutriscan-api/internal/pkg/common"

	"go.uber.org/zap"
)

// Service AI 顧問服務
// 把 Gemini 的非結構化輸出強制收斂成與確定性引擎相同的形狀；
// 解析成敗是顯式的，呼叫端據此決定是否退回確定性計算
type Service struct {
	client *Client
}

// NewService 創建 AI 顧問服務
func NewService(client *Client) *Service {
	return &Service{client: client}
}

// IsConfigured 檢查顧問是否可用
func (s *Service) IsConfigured() bool {
	return s.client.IsConfigured()
}

// SuggestSubstitutions 產生替代品建議
// 回應無法解析時返回固定的低信心預設候選，不視為錯誤
func (s *Service) SuggestSubstitutions(ctx context.Context, ingredient string, profile *common.HealthProfile) ([]common.SubstituteCandidate, error) {
	callID := common.GenerateUUID()
	start := time.Now()
	raw, err := s.client.Generate(ctx, substitutionPrompt(ingredient, profile))
	common.LogAICall("substitution", time.Since(start), err, callID)
	if err != nil {
		return nil, err
	}

	var subs []common.SubstituteCandidate
	if err := parseStructured(raw, &subs); err != nil {
		var malformed *MalformedResponseError
		if errors.As(err, &malformed) {
			common.LogWarn("顧問替代品回應無法解析，使用預設候選",
				zap.String("ingredient", ingredient),
				zap.String("raw_prefix", prefix(malformed.Raw, 200)),
			)
			return fallbackSubstitutes(), nil
		}
		return nil, err
	}

	// 收斂健康分數到合法區間
	for i := range subs {
		if subs[i].HealthScore < 1 {
			subs[i].HealthScore = 1
		}
		if subs[i].HealthScore > 10 {
			subs[i].HealthScore = 10
		}
	}
	return subs, nil
}

// AnalyzeRisk 產生健康風險評估
// 解析失敗返回錯誤，呼叫端退回確定性引擎
func (s *Service) AnalyzeRisk(ctx context.Context, scan common.ScanResult, profile *common.HealthProfile) (*common.RiskAssessment, error) {
	callID := common.GenerateUUID()
	start := time.Now()
	raw, err := s.client.Generate(ctx, riskPrompt(scan, profile))
	common.LogAICall("risk", time.Since(start), err, callID)
	if err != nil {
		return nil, err
	}

	var assessment common.RiskAssessment
	if err := parseStructured(raw, &assessment); err != nil {
		return nil, err
	}

	normalizeAssessment(&assessment)
	return &assessment, nil
}

// MoodRecommendations 產生心情食物推薦
// 解析失敗返回錯誤，呼叫端退回靜態推薦表
func (s *Service) MoodRecommendations(ctx context.Context, mood string) ([]common.MoodFood, error) {
	callID := common.GenerateUUID()
	start := time.Now()
	raw, err := s.client.Generate(ctx, moodPrompt(mood))
	common.LogAICall("mood", time.Since(start), err, callID)
	if err != nil {
		return nil, err
	}

	var foods []common.MoodFood
	if err := parseStructured(raw, &foods); err != nil {
		return nil, err
	}
	return foods, nil
}

// Chat 自由格式的成分問答；沒有確定性的對應計算
func (s *Service) Chat(ctx context.Context, question string) (string, error) {
	callID := common.GenerateUUID()
	start := time.Now()
	answer, err := s.client.Generate(ctx, chatPrompt(question))
	common.LogAICall("chat", time.Since(start), err, callID)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// normalizeAssessment 把模型輸出收斂到合法的評估形狀
func normalizeAssessment(a *common.RiskAssessment) {
	if a.RiskScore < 0 {
		a.RiskScore = 0
	}
	if a.RiskScore > 100 {
		a.RiskScore = 100
	}

	// 模型常返回小寫等級；統一成引擎的寫法
	switch strings.ToLower(a.RiskLevel) {
	case "critical":
		a.RiskLevel, a.RiskColor = "Critical", "red"
	case "high":
		a.RiskLevel, a.RiskColor = "High", "orange"
	case "moderate", "medium":
		a.RiskLevel, a.RiskColor = "Moderate", "yellow"
	default:
		a.RiskLevel, a.RiskColor = "Low", "green"
	}

	if a.SafetyRating <= 0 || a.SafetyRating > 100 {
		a.SafetyRating = 100 - a.RiskScore
	}
	if a.RiskFactors == nil {
		a.RiskFactors = []string{}
	}
	if len(a.Recommendations) == 0 {
		a.Recommendations = []string{"This product appears safe for you"}
	}
}

// fallbackSubstitutes 解析失敗時的固定低信心候選
func fallbackSubstitutes() []common.SubstituteCandidate {
	return []common.SubstituteCandidate{
		{
			Name:           "Natural Alternative",
			HealthScore:    7,
			Reason:         "Consider consulting with a nutritionist for personalized recommendations",
			DietCompatible: []common.DietType{common.DietNormal},
		},
	}
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
