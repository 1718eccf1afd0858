package service

import (
	"context"
	"time"

	"roadrisk/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockInferenceClient ---
type MockInferenceClient struct {
	mock.Mock
}

func (m *MockInferenceClient) Predict(ctx context.Context, features domain.FeatureVector) (*domain.Prediction, error) {
	args := m.Called(ctx, features)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Prediction), args.Error(1)
}

func (m *MockInferenceClient) CurrentRisk(ctx context.Context, lat, lng float64, timestamp time.Time) (*domain.PointRisk, error) {
	args := m.Called(ctx, lat, lng, timestamp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PointRisk), args.Error(1)
}

func (m *MockInferenceClient) Overlay(ctx context.Context, timestamp time.Time, rows []domain.OverlayRow) ([]domain.OverlayEntry, error) {
	args := m.Called(ctx, timestamp, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OverlayEntry), args.Error(1)
}

func (m *MockInferenceClient) Explain(ctx context.Context, segmentID string, lat, lng float64, timestamp time.Time) (*domain.Explanation, error) {
	args := m.Called(ctx, segmentID, lat, lng, timestamp)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Explanation), args.Error(1)
}

// --- MockSnapshotStore ---
type MockSnapshotStore struct {
	mock.Mock
}

func (m *MockSnapshotStore) Save(ctx context.Context, snapshot *domain.Snapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

func (m *MockSnapshotStore) Load(ctx context.Context, driverID string) (*domain.Snapshot, error) {
	args := m.Called(ctx, driverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Snapshot), args.Error(1)
}

func (m *MockSnapshotStore) Status(ctx context.Context, driverID string) (string, error) {
	args := m.Called(ctx, driverID)
	return args.String(0), args.Error(1)
}

func (m *MockSnapshotStore) SetStatus(ctx context.Context, driverID, status string) error {
	args := m.Called(ctx, driverID, status)
	return args.Error(0)
}

// --- MockCache ---
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
