package kv

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/focusflow/backend/domain"
	"github.com/focusflow/backend/internal/infrastructure/kv"
	appLogger "github.com/focusflow/backend/pkg/logger"
	"github.com/focusflow/backend/repository"
)

type statsRepository struct {
	store  kv.Store
	keys   keys
	logger *zap.Logger
}

// NewStatsRepository creates the KV-backed stats store.
func NewStatsRepository(store kv.Store, prefix string, logger *zap.Logger) repository.StatsRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &statsRepository{
		store:  store,
		keys:   newKeys(prefix),
		logger: logger,
	}
}

func (r *statsRepository) Get(ctx context.Context, userID string) (*domain.Stats, error) {
	var stats domain.Stats
	err := getJSON(ctx, r.store, r.keys.stats(userID), &stats)
	switch {
	case err == nil:
		return &stats, nil
	case errors.Is(err, kv.ErrKeyNotFound):
		return r.migrateLegacy(ctx, userID)
	case errors.Is(err, ErrCorruptRecord):
		appLogger.WithRequestID(ctx, r.logger).Warn("stats record unreadable, using defaults",
			zap.String("user_id", userID), zap.Error(err))
		return &domain.Stats{}, nil
	default:
		return nil, err
	}
}

func (r *statsRepository) Save(ctx context.Context, userID string, stats *domain.Stats) error {
	if stats == nil {
		return domain.ErrInvalidPayload
	}
	return putJSON(ctx, r.store, r.keys.stats(userID), stats)
}

// migrateLegacy either adopts the unscoped legacy record or materializes a
// zeroed one so subsequent reads hit the scoped key directly.
func (r *statsRepository) migrateLegacy(ctx context.Context, userID string) (*domain.Stats, error) {
	var stats domain.Stats
	err := getJSON(ctx, r.store, legacyStatsKey, &stats)
	switch {
	case err == nil:
		if err := r.Save(ctx, userID, &stats); err != nil {
			return nil, err
		}
		if err := r.store.Delete(ctx, legacyStatsKey); err != nil {
			return nil, err
		}
		r.logger.Info("migrated legacy stats", zap.String("user_id", userID))
		return &stats, nil
	case errors.Is(err, kv.ErrKeyNotFound):
		// fall through to the materialized default
	case errors.Is(err, ErrCorruptRecord):
		appLogger.WithRequestID(ctx, r.logger).Warn("legacy stats unreadable, skipping migration", zap.Error(err))
	default:
		return nil, err
	}

	defaults := &domain.Stats{}
	if err := r.Save(ctx, userID, defaults); err != nil {
		return nil, err
	}
	return defaults, nil
}
