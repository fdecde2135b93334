package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"legalynx/internal/config"
	gemini "legalynx/internal/engine/gemini"
	"legalynx/internal/port"
)

func TestGeminiEngine_Complete_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/gemini-2.0-flash:generateContent"), r.URL.Path)
		assert.Equal(t, "test-gemini-key", r.Header.Get("x-goog-api-key"))

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)

		contents := reqBody["contents"].([]interface{})
		require.Len(t, contents, 1)
		parts := contents[0].(map[string]interface{})["parts"].([]interface{})
		assert.Equal(t, "Find risks in:\nterm text", parts[0].(map[string]interface{})["text"])

		genCfg := reqBody["generationConfig"].(map[string]interface{})
		assert.Equal(t, float64(512), genCfg["maxOutputTokens"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{
					"content": map[string]interface{}{
						"role": "model",
						"parts": []map[string]interface{}{
							{"text": `{"risks":[],"risk_score":10}`},
						},
					},
					"finishReason": "STOP",
				},
			},
		})
	}))
	defer server.Close()

	cfg := &config.EngineProviderConfig{
		Provider:        "gemini",
		APIKey:          "test-gemini-key",
		DefaultModel:    "gemini-2.0-flash",
		TimeoutSecs:     30,
		MaxOutputTokens: 512,
	}
	e, err := gemini.NewEngineWithEndpoint(context.Background(), cfg, server.URL)
	require.NoError(t, err)

	out, err := e.Complete(context.Background(), port.CompletionInput{
		Instruction: "Find risks in:\n{contract}",
		Excerpt:     "term text",
	})

	require.NoError(t, err)
	assert.Equal(t, `{"risks":[],"risk_score":10}`, out.Text)
	assert.Equal(t, "gemini-2.0-flash", out.Model)
}
