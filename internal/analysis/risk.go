package analysis

import (
	"encoding/json"
	"strings"

	"legalynx/internal/domain"
)

// Per-risk weights used when a result carries risks but no usable risk_score.
const (
	highRiskWeight   = 30
	mediumRiskWeight = 15
	lowRiskWeight    = 5
)

// RiskScore derives a 0-100 score for a result: its own risk_score when numeric, otherwise a
// severity-weighted count of its risks, otherwise the neutral fallback score.
func RiskScore(result domain.StructuredResult) int {
	if score, ok := numeric(result[KeyRiskScore]); ok {
		return clamp(int(score + 0.5))
	}

	risks, ok := result[KeyRisks].([]interface{})
	if !ok || len(risks) == 0 {
		return FallbackRiskScore
	}

	total := 0
	for _, r := range risks {
		item, ok := r.(map[string]interface{})
		if !ok {
			continue
		}
		sev, _ := item["severity"].(string)
		switch strings.ToLower(strings.TrimSpace(sev)) {
		case "high":
			total += highRiskWeight
		case "medium":
			total += mediumRiskWeight
		case "low":
			total += lowRiskWeight
		}
	}
	return clamp(total)
}

func numeric(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
