package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"legalynx/internal/config"
	"legalynx/internal/engine"
	"legalynx/internal/port"
)

func init() {
	engine.RegisterProvider("gemini", func(cfg *config.EngineProviderConfig) (port.ReasoningEngine, error) {
		return NewEngine(context.Background(), cfg)
	})
}

// Engine implements port.ReasoningEngine using the Gemini API through the genai SDK.
type Engine struct {
	cli       *genai.Client
	model     string
	maxTokens int
}

// NewEngine creates a Gemini-backed reasoning engine.
func NewEngine(ctx context.Context, cfg *config.EngineProviderConfig) (*Engine, error) {
	return newEngine(ctx, cfg, "")
}

// NewEngineWithEndpoint creates an engine pointing at a custom API base URL (for testing).
func NewEngineWithEndpoint(ctx context.Context, cfg *config.EngineProviderConfig, baseURL string) (*Engine, error) {
	return newEngine(ctx, cfg, baseURL)
}

func newEngine(ctx context.Context, cfg *config.EngineProviderConfig, baseURL string) (*Engine, error) {
	model := cfg.DefaultModel
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  &http.Client{Timeout: timeout},
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &Engine{cli: cli, model: model, maxTokens: cfg.MaxOutputTokens}, nil
}

func (e *Engine) Complete(ctx context.Context, input port.CompletionInput) (*port.CompletionOutput, error) {
	prompt := engine.ComposePrompt(input.Instruction, input.Excerpt)

	genCfg := &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0)}
	maxTokens := input.MaxOutputTokens
	if maxTokens <= 0 {
		maxTokens = e.maxTokens
	}
	if maxTokens > 0 {
		genCfg.MaxOutputTokens = int32(maxTokens)
	}

	resp, err := e.cli.Models.GenerateContent(ctx, e.model,
		[]*genai.Content{{Role: "user", Parts: []*genai.Part{{Text: prompt}}}},
		genCfg,
	)
	if err != nil {
		if code := apiErrorCode(err); code == http.StatusTooManyRequests {
			return nil, engine.RateLimited("gemini", 0, fmt.Errorf("gemini API error: %w", err))
		}
		return nil, fmt.Errorf("calling gemini API: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from API: no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			sb.WriteString(part.Text)
		}
	}

	model := e.model
	if resp.ModelVersion != "" {
		model = resp.ModelVersion
	}

	return &port.CompletionOutput{Text: sb.String(), Model: model}, nil
}

func apiErrorCode(err error) int {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code
	}
	return 0
}
