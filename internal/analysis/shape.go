package analysis

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"legalynx/internal/domain"
)

// ShapeChecker compares parsed results with the JSON layout each mode asks for. It only
// reports differences; results are never modified or rejected.
type ShapeChecker struct {
	schemas map[domain.AnalysisMode]*jsonschema.Schema
}

var propertySchemas = map[string]map[string]interface{}{
	KeyClauses: {
		"type":  "array",
		"items": map[string]interface{}{"type": "string"},
	},
	KeyRisks: {
		"type": "array",
		"items": map[string]interface{}{
			"type":     "object",
			"required": []string{"risk", "severity"},
			"properties": map[string]interface{}{
				"risk":           map[string]interface{}{"type": "string"},
				"severity":       map[string]interface{}{"type": "string"},
				"location":       map[string]interface{}{"type": "string"},
				"recommendation": map[string]interface{}{"type": "string"},
			},
		},
	},
	KeyComplianceIssues: {
		"type": "array",
		"items": map[string]interface{}{
			"type":     "object",
			"required": []string{"issue", "severity"},
			"properties": map[string]interface{}{
				"issue":          map[string]interface{}{"type": "string"},
				"regulation":     map[string]interface{}{"type": "string"},
				"severity":       map[string]interface{}{"type": "string"},
				"recommendation": map[string]interface{}{"type": "string"},
			},
		},
	},
	KeySummary: {"type": "string"},
	KeyRiskScore: {
		"type":    "number",
		"minimum": 0,
		"maximum": 100,
	},
	KeyRecommendations: {
		"type":  "array",
		"items": map[string]interface{}{"type": "string"},
	},
}

// NewShapeChecker compiles one schema per catalog mode.
func NewShapeChecker() (*ShapeChecker, error) {
	sc := &ShapeChecker{schemas: make(map[domain.AnalysisMode]*jsonschema.Schema, len(catalog))}
	for mode, tmpl := range catalog {
		schema, err := compileShape(string(mode), tmpl.Shape)
		if err != nil {
			return nil, fmt.Errorf("compiling %s shape: %w", mode, err)
		}
		sc.schemas[mode] = schema
	}
	return sc, nil
}

func compileShape(name string, shape Shape) (*jsonschema.Schema, error) {
	props := make(map[string]interface{}, len(shape))
	for _, key := range shape {
		props[key] = propertySchemas[key]
	}
	doc := map[string]interface{}{
		"$schema":    "http://json-schema.org/draft-07/schema#",
		"type":       "object",
		"required":   []string(shape),
		"properties": props,
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal schema: %w", err)
	}
	url := name + ".json"
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile(url)
}

// Check returns human-readable differences between result and the shape of mode, sorted.
// A nil slice means the result matches.
func (sc *ShapeChecker) Check(mode domain.AnalysisMode, result domain.StructuredResult) []string {
	schema, ok := sc.schemas[Resolve(mode)]
	if !ok {
		return nil
	}

	doc, err := toJSONValue(result)
	if err != nil {
		return []string{err.Error()}
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil
	}

	var vErr *jsonschema.ValidationError
	if !errors.As(err, &vErr) {
		return []string{err.Error()}
	}

	var warnings []string
	collectLeaves(vErr, &warnings)
	sort.Strings(warnings)
	return warnings
}

// toJSONValue re-decodes result so that it only holds the types the validator accepts.
func toJSONValue(result domain.StructuredResult) (interface{}, error) {
	b, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	return v, nil
}

func collectLeaves(e *jsonschema.ValidationError, out *[]string) {
	if len(e.Causes) == 0 {
		loc := e.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*out = append(*out, loc+": "+e.Message)
		return
	}
	for _, c := range e.Causes {
		collectLeaves(c, out)
	}
}
