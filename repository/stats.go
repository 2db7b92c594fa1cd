package repository

import (
	"context"

	"github.com/focusflow/backend/domain"
)

// StatsRepository stores per-user aggregate counters. Get materializes a
// zeroed record on first access.
type StatsRepository interface {
	Get(ctx context.Context, userID string) (*domain.Stats, error)
	Save(ctx context.Context, userID string, stats *domain.Stats) error
}
