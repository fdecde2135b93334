package port

import (
	"context"

	"github.com/google/uuid"

	"legalynx/internal/domain"
)

// AnalysisRepository defines the contract for analysis history persistence.
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *domain.ContractAnalysis) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ContractAnalysis, error)
	List(ctx context.Context, offset, limit int) ([]domain.ContractAnalysis, int, error)
}
