package repository

import (
	"context"

	"github.com/RMahshie/nmrcentroid/pkg/models"
	"github.com/google/uuid"
)

// RunRepository defines the interface for the integration run ledger
type RunRepository interface {
	EnsureSchema(ctx context.Context) error
	Create(ctx context.Context, run *models.Run) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Run, error)
	ListBySource(ctx context.Context, sourcePath string) ([]*models.Run, error)
}
