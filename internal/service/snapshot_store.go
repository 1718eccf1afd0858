package service

import (
	"context"
	"encoding/json"
	"errors"

	"roadrisk/internal/cache"
	"roadrisk/internal/domain"
	"roadrisk/internal/logger"

	"go.uber.org/zap"
)

// cacheSnapshotStore implements domain.SnapshotStore on the generic cache
// port. One snapshot record and one status flag per driver, both under
// fixed keys; no TTL — a snapshot lives until the next submission replaces
// it.
type cacheSnapshotStore struct {
	cache domain.Cache
}

// NewSnapshotStore creates a snapshot store backed by the given cache.
func NewSnapshotStore(c domain.Cache) domain.SnapshotStore {
	return &cacheSnapshotStore{cache: c}
}

func snapshotKey(driverID string) string {
	return cache.GenerateCacheKey("survey", "snapshot", driverID)
}

func statusKey(driverID string) string {
	return cache.GenerateCacheKey("survey", "status", driverID)
}

// Save implements domain.SnapshotStore
func (s *cacheSnapshotStore) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	if snapshot == nil {
		return domain.NewInvalidInputError("cannot persist nil snapshot")
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return domain.NewInternalError("failed to marshal survey snapshot", err)
	}
	key := snapshotKey(snapshot.DriverID)
	if err := s.cache.Set(ctx, key, string(data), 0); err != nil {
		logger.Get().Error("Failed to persist survey snapshot",
			zap.Error(err),
			zap.String("key", key))
		return domain.NewInternalError("failed to persist survey snapshot", err)
	}
	logger.Get().Debug("Persisted survey snapshot",
		zap.String("key", key),
		zap.String("snapshotID", snapshot.ID))
	return nil
}

// Load implements domain.SnapshotStore
func (s *cacheSnapshotStore) Load(ctx context.Context, driverID string) (*domain.Snapshot, error) {
	key := snapshotKey(driverID)
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewSnapshotNotFoundError(driverID)
		}
		return nil, domain.NewInternalError("failed to load survey snapshot", err)
	}
	var snapshot domain.Snapshot
	if err := json.Unmarshal([]byte(data), &snapshot); err != nil {
		logger.Get().Error("Failed to unmarshal survey snapshot", zap.Error(err), zap.String("key", key))
		return nil, domain.NewInternalError("failed to unmarshal survey snapshot", err)
	}
	return &snapshot, nil
}

// Status implements domain.SnapshotStore. An unset flag is "" and not an error.
func (s *cacheSnapshotStore) Status(ctx context.Context, driverID string) (string, error) {
	status, err := s.cache.Get(ctx, statusKey(driverID))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return "", nil
		}
		return "", domain.NewInternalError("failed to load survey status", err)
	}
	return status, nil
}

// SetStatus implements domain.SnapshotStore
func (s *cacheSnapshotStore) SetStatus(ctx context.Context, driverID, status string) error {
	if err := s.cache.Set(ctx, statusKey(driverID), status, 0); err != nil {
		return domain.NewInternalError("failed to persist survey status", err)
	}
	return nil
}
