package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"legalynx/internal/analysis"
	"legalynx/internal/domain"
	"legalynx/internal/engine"
	"legalynx/internal/port"
	"legalynx/internal/service"
	"legalynx/mocks"
)

// stubExtractor returns canned extraction output.
type stubExtractor struct {
	text  string
	err   error
	calls int
}

func (s *stubExtractor) Extract(_ []byte, _ domain.MediaKind) (string, error) {
	s.calls++
	return s.text, s.err
}

// contractOfLength returns contract-like text of exactly n runes with no surrounding whitespace.
func contractOfLength(n int) string {
	base := "This Non-Disclosure Agreement is entered into by the parties to protect confidential information. "
	var sb strings.Builder
	for sb.Len() < n {
		sb.WriteString(base)
	}
	return sb.String()[:n-1] + "."
}

func newAnalysisService(t *testing.T, eng port.ReasoningEngine, repo port.AnalysisRepository, opts service.AnalysisOptions) service.AnalysisService {
	t.Helper()
	if opts.CallTimeout == 0 {
		opts.CallTimeout = 5 * time.Second
	}
	svc, err := service.NewAnalysisService(eng, &stubExtractor{}, repo, nil, opts)
	require.NoError(t, err)
	return svc
}

func completion(text string) *port.CompletionOutput {
	return &port.CompletionOutput{Text: text, Model: "gpt-4"}
}

func TestAnalyze_InputTooShort(t *testing.T) {
	eng := new(mocks.MockReasoningEngine)
	svc := newAnalysisService(t, eng, nil, service.AnalysisOptions{})

	_, err := svc.Analyze(context.Background(), service.AnalyzeInput{Text: contractOfLength(99), Mode: domain.ModeFull})

	assert.ErrorIs(t, err, domain.ErrInputTooShort)
	eng.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestAnalyze_WhitespaceDoesNotCount(t *testing.T) {
	eng := new(mocks.MockReasoningEngine)
	svc := newAnalysisService(t, eng, nil, service.AnalysisOptions{})

	text := "\n\t   " + contractOfLength(99) + "      \n"
	_, err := svc.Analyze(context.Background(), service.AnalyzeInput{Text: text, Mode: domain.ModeFull})

	assert.ErrorIs(t, err, domain.ErrInputTooShort)
}

func TestAnalyze_ExactlyMinimumLengthSucceeds(t *testing.T) {
	eng := new(mocks.MockReasoningEngine)
	eng.On("Complete", mock.Anything, mock.Anything).Return(completion(`{"compliance_issues": []}`), nil)
	svc := newAnalysisService(t, eng, nil, service.AnalysisOptions{})

	outcome, err := svc.Analyze(context.Background(), service.AnalyzeInput{Text: contractOfLength(100), Mode: domain.ModeCompliance})

	require.NoError(t, err)
	assert.False(t, outcome.Truncated)
	assert.Equal(t, 100, outcome.InputLength)
}

func TestAnalyze_TruncatesToPrefixByRunes(t *testing.T) {
	text := strings.Repeat("é", 3000) + strings.Repeat("z", 2000)
	eng := new(mocks.MockReasoningEngine)
	eng.On("Complete", mock.Anything, mock.MatchedBy(func(in port.CompletionInput) bool {
		return utf8.RuneCountInString(in.Excerpt) == domain.MaxEngineInputLength &&
			strings.HasPrefix(text, in.Excerpt)
	})).Return(completion(`{"clauses": []}`), nil)
	svc := newAnalysisService(t, eng, nil, service.AnalysisOptions{})

	outcome, err := svc.Analyze(context.Background(), service.AnalyzeInput{Text: text, Mode: domain.ModeClauses})

	require.NoError(t, err)
	assert.True(t, outcome.Truncated)
	assert.Equal(t, 5000, outcome.InputLength)
	assert.Equal(t, 4000, outcome.AnalyzedLength)
	eng.AssertExpectations(t)
}

func TestBuildRequest(t *testing.T) {
	req, err := service.BuildRequest(contractOfLength(4000), domain.ModeRisks)
	require.NoError(t, err)
	assert.False(t, req.Truncated)
	assert.Equal(t, 4000, req.OriginalLength)

	long := contractOfLength(4001)
	req, err = service.BuildRequest(long, domain.ModeRisks)
	require.NoError(t, err)
	assert.True(t, req.Truncated)
	assert.Equal(t, long[:4000], req.Text)
	assert.Equal(t, 4001, req.OriginalLength)

	_, err = service.BuildRequest("   ", domain.ModeRisks)
	assert.ErrorIs(t, err, domain.ErrInputTooShort)
}

func TestAnalyze_ClausesEndToEnd(t *testing.T) {
	eng := new(mocks.MockReasoningEngine)
	eng.On("Complete", mock.Anything, mock.MatchedBy(func(in port.CompletionInput) bool {
		return in.Instruction == analysis.TemplateFor(domain.ModeClauses).Instruction
	})).Return(completion(`{"clauses": ["Confidentiality clause", "Term clause"]}`), nil)
	svc := newAnalysisService(t, eng, nil, service.AnalysisOptions{})

	outcome, err := svc.Analyze(context.Background(), service.AnalyzeInput{Text: contractOfLength(600), Mode: domain.ModeClauses})

	require.NoError(t, err)
	assert.Equal(t, domain.StructuredResult{
		"clauses": []interface{}{"Confidentiality clause", "Term clause"},
	}, outcome.Result)
	assert.Equal(t, domain.ModeClauses, outcome.Mode)
	assert.False(t, outcome.Fallback)
	assert.Empty(t, outcome.ShapeWarnings)
	assert.Equal(t, "gpt-4", outcome.ModelUsed)
	assert.NotEqual(t, uuid.Nil, outcome.ID)
}

func TestAnalyze_NonJSONResponseUsesFallback(t *testing.T) {
	eng := new(mocks.MockReasoningEngine)
	eng.On("Complete", mock.Anything, mock.Anything).Return(completion("I cannot comply"), nil)
	svc := newAnalysisService(t, eng, nil, service.AnalysisOptions{})

	outcome, err := svc.Analyze(context.Background(), service.AnalyzeInput{Text: contractOfLength(600), Mode: domain.ModeClauses})

	require.NoError(t, err)
	assert.True(t, outcome.Fallback)
	assert.Equal(t, analysis.FallbackResult("I cannot comply"), outcome.Result)
	assert.Equal(t, "I cannot comply", outcome.Result["raw_result"])
}

func TestAnalyze_UnknownModeUsesCompliance(t *testing.T) {
	eng := new(mocks.MockReasoningEngine)
	eng.On("Complete", mock.Anything, mock.MatchedBy(func(in port.CompletionInput) bool {
		return in.Instruction == analysis.TemplateFor(domain.ModeCompliance).Instruction
	})).Return(completion(`{"compliance_issues": []}`), nil)
	svc := newAnalysisService(t, eng, nil, service.AnalysisOptions{})

	outcome, err := svc.Analyze(context.Background(), service.AnalyzeInput{Text: contractOfLength(200), Mode: "bogus"})

	require.NoError(t, err)
	assert.Equal(t, domain.ModeCompliance, outcome.Mode)
	assert.Equal(t, domain.AnalysisMode("bogus"), outcome.RequestedMode)
	eng.AssertExpectations(t)
}

func TestAnalyze_ShapeWarningsDoNotAlterResult(t *testing.T) {
	eng := new(mocks.MockReasoningEngine)
	eng.On("Complete", mock.Anything, mock.Anything).Return(completion(`{"summary": "only a summary"}`), nil)
	svc := newAnalysisService(t, eng, nil, service.AnalysisOptions{})

	outcome, err := svc.Analyze(context.Background(), service.AnalyzeInput{Text: contractOfLength(200), Mode: domain.ModeFull})

	require.NoError(t, err)
	assert.False(t, outcome.Fallback)
	assert.NotEmpty(t, outcome.ShapeWarnings)
	assert.Equal(t, domain.StructuredResult{"summary": "only a summary"}, outcome.Result)
}

func TestAnalyze_EngineTimeout(t *testing.T) {
	eng := new(mocks.MockReasoningEngine)
	eng.On("Complete", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			<-ctx.Done()
		}).
		Return(nil, context.DeadlineExceeded)
	svc := newAnalysisService(t, eng, nil, service.AnalysisOptions{CallTimeout: 20 * time.Millisecond})

	_, err := svc.Analyze(context.Background(), service.AnalyzeInput{Text: contractOfLength(200), Mode: domain.ModeFull})

	assert.ErrorIs(t, err, domain.ErrEngineTimeout)
}

func TestAnalyze_EngineFailureKeepsCause(t *testing.T) {
	rlErr := engine.RateLimited("openai", 30*time.Second, errors.New("429"))
	eng := new(mocks.MockReasoningEngine)
	eng.On("Complete", mock.Anything, mock.Anything).Return(nil, rlErr)
	svc := newAnalysisService(t, eng, nil, service.AnalysisOptions{})

	_, err := svc.Analyze(context.Background(), service.AnalyzeInput{Text: contractOfLength(200), Mode: domain.ModeFull})

	assert.ErrorIs(t, err, domain.ErrEngineInvocationFailed)
	var target *engine.RateLimitError
	assert.True(t, errors.As(err, &target))
}

func TestAnalyze_NoEngine(t *testing.T) {
	svc := newAnalysisService(t, nil, nil, service.AnalysisOptions{})

	_, err := svc.Analyze(context.Background(), service.AnalyzeInput{Text: contractOfLength(200), Mode: domain.ModeFull})

	assert.ErrorIs(t, err, domain.ErrEngineNotConfigured)
}

func TestAnalyze_CachesParsedResults(t *testing.T) {
	eng := new(mocks.MockReasoningEngine)
	eng.On("Complete", mock.Anything, mock.Anything).Return(completion(`{"risks": [], "risk_score": 10}`), nil).Once()
	svc := newAnalysisService(t, eng, nil, service.AnalysisOptions{CacheSize: 8})
	input := service.AnalyzeInput{Text: contractOfLength(300), Mode: domain.ModeRisks}

	first, err := svc.Analyze(context.Background(), input)
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), input)
	require.NoError(t, err)

	assert.False(t, first.Cached)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Result, second.Result)
	assert.NotEqual(t, first.ID, second.ID)
	eng.AssertNumberOfCalls(t, "Complete", 1)
}

func TestAnalyze_CacheKeyIncludesMode(t *testing.T) {
	eng := new(mocks.MockReasoningEngine)
	eng.On("Complete", mock.Anything, mock.Anything).Return(completion(`{"clauses": []}`), nil)
	svc := newAnalysisService(t, eng, nil, service.AnalysisOptions{CacheSize: 8})
	text := contractOfLength(300)

	_, err := svc.Analyze(context.Background(), service.AnalyzeInput{Text: text, Mode: domain.ModeClauses})
	require.NoError(t, err)
	_, err = svc.Analyze(context.Background(), service.AnalyzeInput{Text: text, Mode: domain.ModeRisks})
	require.NoError(t, err)

	eng.AssertNumberOfCalls(t, "Complete", 2)
}

func TestAnalyze_FallbackResultsAreNotCached(t *testing.T) {
	eng := new(mocks.MockReasoningEngine)
	eng.On("Complete", mock.Anything, mock.Anything).Return(completion("not json"), nil)
	svc := newAnalysisService(t, eng, nil, service.AnalysisOptions{CacheSize: 8})
	input := service.AnalyzeInput{Text: contractOfLength(300), Mode: domain.ModeFull}

	_, err := svc.Analyze(context.Background(), input)
	require.NoError(t, err)
	second, err := svc.Analyze(context.Background(), input)
	require.NoError(t, err)

	assert.False(t, second.Cached)
	eng.AssertNumberOfCalls(t, "Complete", 2)
}

func TestAnalyze_SavesHistory(t *testing.T) {
	eng := new(mocks.MockReasoningEngine)
	eng.On("Complete", mock.Anything, mock.Anything).Return(completion(`{"risks": [{"risk": "x", "severity": "High"}], "risk_score": 70}`), nil)
	repo := new(mocks.MockAnalysisRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.ContractAnalysis) bool {
		return a.Title == "Vendor MSA" &&
			a.Source == domain.SourceText &&
			a.AnalysisType == domain.ModeRisks &&
			a.RiskScore == 70 &&
			a.ModelUsed == "gpt-4" &&
			strings.Contains(string(a.Result), `"risk_score":70`)
	})).Return(nil)
	svc := newAnalysisService(t, eng, repo, service.AnalysisOptions{})

	outcome, err := svc.Analyze(context.Background(), service.AnalyzeInput{Text: contractOfLength(300), Mode: domain.ModeRisks, Title: "Vendor MSA"})

	require.NoError(t, err)
	require.NotNil(t, outcome)
	repo.AssertExpectations(t)
}

func TestAnalyze_HistoryFailureIsNotFatal(t *testing.T) {
	eng := new(mocks.MockReasoningEngine)
	eng.On("Complete", mock.Anything, mock.Anything).Return(completion(`{"clauses": []}`), nil)
	repo := new(mocks.MockAnalysisRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
	svc := newAnalysisService(t, eng, repo, service.AnalysisOptions{})

	outcome, err := svc.Analyze(context.Background(), service.AnalyzeInput{Text: contractOfLength(300), Mode: domain.ModeClauses})

	require.NoError(t, err)
	assert.NotNil(t, outcome)
}

func TestAnalyzeDocument_PlainTextBypassesExtractor(t *testing.T) {
	eng := new(mocks.MockReasoningEngine)
	eng.On("Complete", mock.Anything, mock.Anything).Return(completion(`{"summary": "s"}`), nil)
	ext := &stubExtractor{}
	svc, err := service.NewAnalysisService(eng, ext, nil, nil, service.AnalysisOptions{})
	require.NoError(t, err)

	text := contractOfLength(250)
	res, err := svc.AnalyzeDocument(context.Background(), service.DocumentInput{
		Document: domain.Document{Data: []byte(text), Kind: domain.MediaKindPlainText, FileName: "c.txt"},
	})

	require.NoError(t, err)
	assert.Equal(t, 0, ext.calls)
	assert.Equal(t, 250, res.ExtractedTextLength)
	assert.Equal(t, "c.txt", res.FileName)
	assert.Equal(t, domain.ModeFull, res.Outcome.Mode)
}

func TestAnalyzeDocument_ExtractsAndArchives(t *testing.T) {
	text := contractOfLength(400)
	eng := new(mocks.MockReasoningEngine)
	eng.On("Complete", mock.Anything, mock.MatchedBy(func(in port.CompletionInput) bool {
		return in.Excerpt == text && in.Instruction == analysis.TemplateFor(domain.ModeFull).Instruction
	})).Return(completion(`{"summary": "s"}`), nil)

	store := new(mocks.MockObjectStorage)
	store.On("Upload", mock.Anything, mock.MatchedBy(func(in port.UploadInput) bool {
		return in.Bucket == "contracts-bucket" &&
			strings.HasPrefix(in.Key, "contracts/") &&
			strings.HasSuffix(in.Key, "/nda.pdf") &&
			in.ContentType == "application/pdf" &&
			in.Size == 9
	})).Return(&port.UploadOutput{Location: "s3://contracts-bucket/x"}, nil)

	repo := new(mocks.MockAnalysisRepo)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.ContractAnalysis) bool {
		return a.Source == domain.SourceUpload && a.FileName == "nda.pdf" && strings.HasPrefix(a.ObjectKey, "contracts/")
	})).Return(nil)

	ext := &stubExtractor{text: text}
	svc, err := service.NewAnalysisService(eng, ext, repo, store, service.AnalysisOptions{ArchiveBucket: "contracts-bucket"})
	require.NoError(t, err)

	res, err := svc.AnalyzeDocument(context.Background(), service.DocumentInput{
		Document: domain.Document{Data: []byte("%PDF-1.4\n"), Kind: domain.MediaKindPDF, FileName: "nda.pdf"},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, ext.calls)
	assert.Equal(t, 400, res.ExtractedTextLength)
	store.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestAnalyzeDocument_ArchiveFailureIsNotFatal(t *testing.T) {
	eng := new(mocks.MockReasoningEngine)
	eng.On("Complete", mock.Anything, mock.Anything).Return(completion(`{"summary": "s"}`), nil)
	store := new(mocks.MockObjectStorage)
	store.On("Upload", mock.Anything, mock.Anything).Return(nil, errors.New("s3 unavailable"))

	svc, err := service.NewAnalysisService(eng, &stubExtractor{text: contractOfLength(300)}, nil, store, service.AnalysisOptions{ArchiveBucket: "b"})
	require.NoError(t, err)

	res, err := svc.AnalyzeDocument(context.Background(), service.DocumentInput{
		Document: domain.Document{Data: []byte("doc"), Kind: domain.MediaKindDOCX, FileName: "a.docx"},
	})

	require.NoError(t, err)
	assert.NotNil(t, res.Outcome)
}

func TestAnalyzeDocument_DiscardsArchiveWhenAnalysisFails(t *testing.T) {
	store := new(mocks.MockObjectStorage)
	store.On("Upload", mock.Anything, mock.Anything).Return(&port.UploadOutput{}, nil)
	store.On("Delete", mock.Anything, "b", mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "contracts/")
	})).Return(nil)

	svc, err := service.NewAnalysisService(nil, &stubExtractor{text: "short but not empty"}, nil, store, service.AnalysisOptions{ArchiveBucket: "b"})
	require.NoError(t, err)

	_, err = svc.AnalyzeDocument(context.Background(), service.DocumentInput{
		Document: domain.Document{Data: []byte("doc"), Kind: domain.MediaKindPDF, FileName: "a.pdf"},
	})

	assert.ErrorIs(t, err, domain.ErrInputTooShort)
	store.AssertExpectations(t)
}

func TestAnalyzeDocument_EmptyText(t *testing.T) {
	eng := new(mocks.MockReasoningEngine)
	svc, err := service.NewAnalysisService(eng, &stubExtractor{text: " \n\t "}, nil, nil, service.AnalysisOptions{})
	require.NoError(t, err)

	_, err = svc.AnalyzeDocument(context.Background(), service.DocumentInput{
		Document: domain.Document{Data: []byte("x"), Kind: domain.MediaKindPDF, FileName: "blank.pdf"},
	})

	assert.ErrorIs(t, err, domain.ErrEmptyDocument)
	eng.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestAnalyzeDocument_ExtractionFailure(t *testing.T) {
	extErr := errors.Join(domain.ErrExtractionFailed, errors.New("bad xref"))
	svc, err := service.NewAnalysisService(new(mocks.MockReasoningEngine), &stubExtractor{err: extErr}, nil, nil, service.AnalysisOptions{})
	require.NoError(t, err)

	_, err = svc.AnalyzeDocument(context.Background(), service.DocumentInput{
		Document: domain.Document{Data: []byte("x"), Kind: domain.MediaKindPDF, FileName: "bad.pdf"},
	})

	assert.ErrorIs(t, err, domain.ErrExtractionFailed)
}

func TestGetAndList(t *testing.T) {
	id := uuid.New()
	repo := new(mocks.MockAnalysisRepo)
	repo.On("GetByID", mock.Anything, id).Return(&domain.ContractAnalysis{ID: id, Title: "NDA"}, nil)
	repo.On("List", mock.Anything, 0, 20).Return([]domain.ContractAnalysis{{ID: id}}, 1, nil)
	svc := newAnalysisService(t, nil, repo, service.AnalysisOptions{})

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "NDA", got.Title)

	list, total, err := svc.List(context.Background(), 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, list, 1)
}

func TestGetAndList_WithoutPersistence(t *testing.T) {
	svc := newAnalysisService(t, nil, nil, service.AnalysisOptions{})

	_, err := svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, domain.ErrAnalysisNotFound)

	list, total, err := svc.List(context.Background(), 0, 20)
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, list)
}
