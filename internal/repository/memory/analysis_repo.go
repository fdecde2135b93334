// Package memory keeps analysis history in process memory for deployments without a database.
package memory

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"legalynx/internal/domain"
	"legalynx/internal/port"
)

// analysisRepo relies on reads using Peek, so cache recency is insertion order.
type analysisRepo struct {
	records *lru.Cache[uuid.UUID, domain.ContractAnalysis]
}

// NewAnalysisRepo creates an in-memory AnalysisRepository holding at most capacity records.
// The oldest record is evicted when the store is full. A capacity of zero means unbounded.
func NewAnalysisRepo(capacity int) (port.AnalysisRepository, error) {
	if capacity <= 0 {
		capacity = math.MaxInt
	}
	records, err := lru.New[uuid.UUID, domain.ContractAnalysis](capacity)
	if err != nil {
		return nil, fmt.Errorf("creating analysis history: %w", err)
	}
	return &analysisRepo{records: records}, nil
}

func (r *analysisRepo) Create(_ context.Context, a *domain.ContractAnalysis) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	r.records.Add(a.ID, *a)
	return nil
}

func (r *analysisRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.ContractAnalysis, error) {
	a, ok := r.records.Peek(id)
	if !ok {
		return nil, domain.ErrAnalysisNotFound
	}
	return &a, nil
}

func (r *analysisRepo) List(_ context.Context, offset, limit int) ([]domain.ContractAnalysis, int, error) {
	keys := r.records.Keys()
	total := len(keys)
	if offset >= total {
		return []domain.ContractAnalysis{}, total, nil
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}

	page := make([]domain.ContractAnalysis, 0, end-offset)
	for i := total - 1 - offset; i >= total-end; i-- {
		// A concurrent Create may have evicted the key since Keys was taken.
		if a, ok := r.records.Peek(keys[i]); ok {
			page = append(page, a)
		}
	}
	return page, total, nil
}
