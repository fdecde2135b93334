package analysis

import (
	"bytes"
	"encoding/json"
	"io"

	"legalynx/internal/domain"
)

// Fallback values used when the engine response is not a JSON object.
const (
	FallbackSummary        = "Analysis completed but JSON parsing failed"
	FallbackRiskScore      = 50
	FallbackClause         = "Unable to parse specific clauses"
	FallbackRisk           = "Unable to parse detailed risk analysis"
	FallbackRiskLocation   = "API Response"
	FallbackRecommendation = "Review API response format"
)

// Normalized is the outcome of normalizing a raw engine response.
type Normalized struct {
	Result   domain.StructuredResult
	Fallback bool
}

// Normalize parses raw as a JSON object and returns it verbatim. Anything else yields the
// deterministic fallback result, which always carries every key of the full shape whatever
// shape was requested. Normalize never fails.
func Normalize(raw string, _ Shape) Normalized {
	if result, ok := parseObject(raw); ok {
		return Normalized{Result: result}
	}
	return Normalized{Result: FallbackResult(raw), Fallback: true}
}

func parseObject(raw string) (domain.StructuredResult, bool) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, false
	}
	return domain.StructuredResult(obj), true
}

// FallbackResult builds the substitute result for an unparseable response, keeping raw verbatim.
func FallbackResult(raw string) domain.StructuredResult {
	return domain.StructuredResult{
		KeySummary:   FallbackSummary,
		KeyRawResult: raw,
		KeyRiskScore: FallbackRiskScore,
		KeyClauses:   []interface{}{FallbackClause},
		KeyRisks: []interface{}{
			map[string]interface{}{
				"risk":           FallbackRisk,
				"severity":       "Low",
				"location":       FallbackRiskLocation,
				"recommendation": FallbackRecommendation,
			},
		},
		KeyComplianceIssues: []interface{}{},
		KeyRecommendations:  []interface{}{FallbackRecommendation},
	}
}
