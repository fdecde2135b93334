package service

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"legalynx/internal/analysis"
	"legalynx/internal/domain"
	"legalynx/internal/logger"
	"legalynx/internal/port"
)

// AnalyzeInput carries contract text and the bookkeeping stored alongside its analysis.
type AnalyzeInput struct {
	Text      string
	Mode      domain.AnalysisMode
	Title     string
	Source    domain.AnalysisSource
	FileName  string
	ObjectKey string
}

// DocumentInput carries an uploaded document.
type DocumentInput struct {
	Document domain.Document
	Title    string
}

// DocumentAnalysis is the outcome of analyzing an uploaded document.
type DocumentAnalysis struct {
	Outcome             *domain.AnalysisOutcome
	FileName            string
	ExtractedTextLength int
}

// AnalysisService runs single-contract analyses and exposes their history.
type AnalysisService interface {
	Analyze(ctx context.Context, input AnalyzeInput) (*domain.AnalysisOutcome, error)
	AnalyzeDocument(ctx context.Context, input DocumentInput) (*DocumentAnalysis, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.ContractAnalysis, error)
	List(ctx context.Context, offset, limit int) ([]domain.ContractAnalysis, int, error)
}

// AnalysisOptions tunes the analysis service.
type AnalysisOptions struct {
	// CallTimeout bounds a single engine call. Zero means 60 seconds.
	CallTimeout     time.Duration
	MaxOutputTokens int
	// CacheSize is the number of parsed results kept in memory. Zero disables caching.
	CacheSize int
	// ArchiveBucket receives uploaded documents. Empty disables archiving.
	ArchiveBucket string
}

type cachedResult struct {
	result   domain.StructuredResult
	model    string
	warnings []string
}

type analysisService struct {
	engine    port.ReasoningEngine
	extractor port.DocumentExtractor
	repo      port.AnalysisRepository
	storage   port.ObjectStorage
	shapes    *analysis.ShapeChecker
	cache     *lru.Cache[string, cachedResult]
	opts      AnalysisOptions
}

// NewAnalysisService creates a new AnalysisService implementation. repo and storage may be nil.
func NewAnalysisService(
	engine port.ReasoningEngine,
	extractor port.DocumentExtractor,
	repo port.AnalysisRepository,
	storage port.ObjectStorage,
	opts AnalysisOptions,
) (AnalysisService, error) {
	shapes, err := analysis.NewShapeChecker()
	if err != nil {
		return nil, fmt.Errorf("building shape checker: %w", err)
	}
	if opts.CallTimeout <= 0 {
		opts.CallTimeout = 60 * time.Second
	}

	s := &analysisService{
		engine:    engine,
		extractor: extractor,
		repo:      repo,
		storage:   storage,
		shapes:    shapes,
		opts:      opts,
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[string, cachedResult](opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating result cache: %w", err)
		}
		s.cache = cache
	}
	return s, nil
}

// BuildRequest validates contract text and cuts it down to the prefix sent to the engine.
func BuildRequest(text string, mode domain.AnalysisMode) (domain.AnalysisRequest, error) {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < domain.MinContractLength {
		return domain.AnalysisRequest{}, domain.ErrInputTooShort
	}

	req := domain.AnalysisRequest{
		Text:           text,
		Mode:           mode,
		OriginalLength: utf8.RuneCountInString(text),
	}
	if req.OriginalLength > domain.MaxEngineInputLength {
		req.Text = runePrefix(text, domain.MaxEngineInputLength)
		req.Truncated = true
	}
	return req, nil
}

func runePrefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func (s *analysisService) Analyze(ctx context.Context, input AnalyzeInput) (*domain.AnalysisOutcome, error) {
	req, err := BuildRequest(input.Text, input.Mode)
	if err != nil {
		return nil, err
	}
	if s.engine == nil {
		return nil, domain.ErrEngineNotConfigured
	}

	tmpl := analysis.TemplateFor(req.Mode)
	log := logger.WithContext(ctx)

	outcome := &domain.AnalysisOutcome{
		ID:             uuid.New(),
		Mode:           tmpl.Mode,
		RequestedMode:  input.Mode,
		Truncated:      req.Truncated,
		InputLength:    req.OriginalLength,
		AnalyzedLength: utf8.RuneCountInString(req.Text),
	}
	if req.Truncated {
		log.Info("analysisService.Analyze: contract truncated",
			"original_length", req.OriginalLength, "analyzed_length", outcome.AnalyzedLength)
	}

	key := cacheKey(tmpl.Mode, req.Text)
	if hit, ok := s.cacheGet(key); ok {
		outcome.Result = hit.result
		outcome.ModelUsed = hit.model
		outcome.ShapeWarnings = hit.warnings
		outcome.Cached = true
		log.Debug("analysisService.Analyze: cache hit", "mode", tmpl.Mode)
		s.save(ctx, input, outcome)
		return outcome, nil
	}

	out, err := s.complete(ctx, tmpl, req.Text)
	if err != nil {
		log.Error("analysisService.Analyze: engine call failed", "mode", tmpl.Mode, "error", err)
		return nil, err
	}

	normalized := analysis.Normalize(out.Text, tmpl.Shape)
	outcome.Result = normalized.Result
	outcome.Fallback = normalized.Fallback
	outcome.ModelUsed = out.Model

	if normalized.Fallback {
		log.Warn("analysisService.Analyze: engine response was not a JSON object, using fallback result",
			"mode", tmpl.Mode, "raw_length", len(out.Text))
	} else {
		outcome.ShapeWarnings = s.shapes.Check(tmpl.Mode, normalized.Result)
		if len(outcome.ShapeWarnings) > 0 {
			log.Info("analysisService.Analyze: result differs from expected shape",
				"mode", tmpl.Mode, "warnings", outcome.ShapeWarnings)
		}
		s.cachePut(key, cachedResult{result: outcome.Result, model: outcome.ModelUsed, warnings: outcome.ShapeWarnings})
	}

	s.save(ctx, input, outcome)
	return outcome, nil
}

func (s *analysisService) complete(ctx context.Context, tmpl analysis.Template, excerpt string) (*port.CompletionOutput, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.opts.CallTimeout)
	defer cancel()

	out, err := s.engine.Complete(callCtx, port.CompletionInput{
		Instruction:     tmpl.Instruction,
		Excerpt:         excerpt,
		MaxOutputTokens: s.opts.MaxOutputTokens,
	})
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w after %s", domain.ErrEngineTimeout, s.opts.CallTimeout)
		}
		return nil, fmt.Errorf("%w: %w", domain.ErrEngineInvocationFailed, err)
	}
	return out, nil
}

func cacheKey(mode domain.AnalysisMode, excerpt string) string {
	h := sha256.New()
	h.Write([]byte(mode))
	h.Write([]byte{0})
	h.Write([]byte(excerpt))
	return hex.EncodeToString(h.Sum(nil))
}

func (s *analysisService) cacheGet(key string) (cachedResult, bool) {
	if s.cache == nil {
		return cachedResult{}, false
	}
	return s.cache.Get(key)
}

func (s *analysisService) cachePut(key string, v cachedResult) {
	if s.cache != nil {
		s.cache.Add(key, v)
	}
}

func (s *analysisService) save(ctx context.Context, input AnalyzeInput, outcome *domain.AnalysisOutcome) {
	if s.repo == nil {
		return
	}
	log := logger.WithContext(ctx)

	result, err := json.Marshal(outcome.Result)
	if err != nil {
		log.Warn("analysisService.save: failed to encode result", "analysis_id", outcome.ID, "error", err)
		return
	}

	source := input.Source
	if source == "" {
		source = domain.SourceText
	}
	record := &domain.ContractAnalysis{
		ID:           outcome.ID,
		Title:        titleFor(input),
		Source:       source,
		AnalysisType: outcome.Mode,
		FileName:     input.FileName,
		ObjectKey:    input.ObjectKey,
		InputLength:  outcome.InputLength,
		Truncated:    outcome.Truncated,
		Fallback:     outcome.Fallback,
		RiskScore:    analysis.RiskScore(outcome.Result),
		Result:       result,
		ModelUsed:    outcome.ModelUsed,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, record); err != nil {
		log.Warn("analysisService.save: failed to store analysis", "analysis_id", outcome.ID, "error", err)
	}
}

func titleFor(input AnalyzeInput) string {
	if t := strings.TrimSpace(input.Title); t != "" {
		return t
	}
	if input.FileName != "" {
		return input.FileName
	}
	return "Untitled contract"
}

func (s *analysisService) AnalyzeDocument(ctx context.Context, input DocumentInput) (*DocumentAnalysis, error) {
	doc := input.Document
	log := logger.WithContext(ctx)

	var text string
	if doc.Kind == domain.MediaKindPlainText {
		text = string(doc.Data)
	} else {
		if s.extractor == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, doc.Kind)
		}
		extracted, err := s.extractor.Extract(doc.Data, doc.Kind)
		if err != nil {
			log.Warn("analysisService.AnalyzeDocument: extraction failed", "file", doc.FileName, "kind", doc.Kind, "error", err)
			return nil, err
		}
		text = extracted
	}

	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyDocument
	}

	log.Info("analysisService.AnalyzeDocument: extracted text",
		"file", doc.FileName, "kind", doc.Kind, "bytes", len(doc.Data), "chars", utf8.RuneCountInString(text))

	objectKey := s.archive(ctx, doc)

	outcome, err := s.Analyze(ctx, AnalyzeInput{
		Text:      text,
		Mode:      domain.ModeFull,
		Title:     input.Title,
		Source:    domain.SourceUpload,
		FileName:  doc.FileName,
		ObjectKey: objectKey,
	})
	if err != nil {
		s.discard(ctx, objectKey)
		return nil, err
	}

	return &DocumentAnalysis{
		Outcome:             outcome,
		FileName:            doc.FileName,
		ExtractedTextLength: utf8.RuneCountInString(text),
	}, nil
}

// archive stores the original upload and returns its object key, or "" when archiving is
// disabled or fails.
func (s *analysisService) archive(ctx context.Context, doc domain.Document) string {
	if s.storage == nil || s.opts.ArchiveBucket == "" {
		return ""
	}

	key := fmt.Sprintf("contracts/%s/%s", uuid.New(), filepath.Base(doc.FileName))
	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.opts.ArchiveBucket,
		Key:         key,
		Body:        bytes.NewReader(doc.Data),
		ContentType: contentTypeFor(doc.Kind),
		Size:        int64(len(doc.Data)),
	})
	if err != nil {
		logger.WithContext(ctx).Warn("analysisService.archive: upload failed", "key", key, "error", err)
		return ""
	}
	return key
}

// discard removes an archived upload whose analysis did not complete.
func (s *analysisService) discard(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Delete(ctx, s.opts.ArchiveBucket, key); err != nil {
		logger.WithContext(ctx).Warn("analysisService.discard: delete failed", "key", key, "error", err)
	}
}

func contentTypeFor(kind domain.MediaKind) string {
	for ct, k := range domain.AllowedContentTypes {
		if k == kind {
			return ct
		}
	}
	return "application/octet-stream"
}

func (s *analysisService) Get(ctx context.Context, id uuid.UUID) (*domain.ContractAnalysis, error) {
	if s.repo == nil {
		return nil, domain.ErrAnalysisNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *analysisService) List(ctx context.Context, offset, limit int) ([]domain.ContractAnalysis, int, error) {
	if s.repo == nil {
		return []domain.ContractAnalysis{}, 0, nil
	}
	return s.repo.List(ctx, offset, limit)
}
