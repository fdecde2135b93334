package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"legalynx/internal/config"
	"legalynx/internal/domain"
	"legalynx/internal/logger"
	"legalynx/internal/xlsxexport"
)

// BulkService analyzes batches of contracts.
type BulkService interface {
	AnalyzeBatch(ctx context.Context, items []domain.BatchItem) ([]domain.BatchItemResult, error)
	ExportBatch(ctx context.Context, items []domain.BatchItem) ([]byte, error)
}

type bulkService struct {
	analysisSvc AnalysisService
	concurrency int
	maxItems    int
}

// NewBulkService creates a new BulkService implementation.
func NewBulkService(analysisSvc AnalysisService, cfg *config.BulkConfig) BulkService {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}
	return &bulkService{
		analysisSvc: analysisSvc,
		concurrency: concurrency,
		maxItems:    cfg.MaxItems,
	}
}

// AnalyzeBatch runs a full analysis of every item on a bounded worker pool. Item failures are
// recorded in that item's result; only an empty or oversized batch fails the call. Results
// are returned in input order.
func (s *bulkService) AnalyzeBatch(ctx context.Context, items []domain.BatchItem) ([]domain.BatchItemResult, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyBatch
	}
	if s.maxItems > 0 && len(items) > s.maxItems {
		return nil, fmt.Errorf("%w: %d contracts, limit is %d", domain.ErrBatchTooLarge, len(items), s.maxItems)
	}

	log := logger.WithContext(ctx)
	log.Info("bulkService.AnalyzeBatch: starting", "items", len(items), "concurrency", s.concurrency)

	results := make([]domain.BatchItemResult, len(items))
	var g errgroup.Group
	g.SetLimit(s.concurrency)

	for i, item := range items {
		g.Go(func() error {
			results[i] = s.analyzeItem(ctx, i, item)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for i := range results {
		if !results[i].Success {
			failed++
		}
	}
	log.Info("bulkService.AnalyzeBatch: finished", "items", len(items), "failed", failed)

	return results, nil
}

func (s *bulkService) analyzeItem(ctx context.Context, index int, item domain.BatchItem) domain.BatchItemResult {
	res := domain.BatchItemResult{Title: item.Title, Index: index}

	outcome, err := s.analysisSvc.Analyze(ctx, AnalyzeInput{
		Text:   item.Text,
		Mode:   domain.ModeFull,
		Title:  item.Title,
		Source: domain.SourceBulk,
	})
	if err != nil {
		logger.WithContext(ctx).Warn("bulkService.analyzeItem: item failed", "index", index, "title", item.Title, "error", err)
		res.Error = err.Error()
		return res
	}

	res.Success = true
	res.Result = outcome.Result
	return res
}

// ExportBatch analyzes the batch and renders the results as an XLSX workbook.
func (s *bulkService) ExportBatch(ctx context.Context, items []domain.BatchItem) ([]byte, error) {
	results, err := s.AnalyzeBatch(ctx, items)
	if err != nil {
		return nil, err
	}
	b, err := xlsxexport.WriteBatch(results)
	if err != nil {
		return nil, fmt.Errorf("rendering export: %w", err)
	}
	return b, nil
}
