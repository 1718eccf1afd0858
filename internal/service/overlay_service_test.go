package service

import (
	"context"
	"errors"
	"testing"

	"roadrisk/internal/domain"
	"roadrisk/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestOverlayRefreshSeverityLayer(t *testing.T) {
	client := new(MockInferenceClient)
	svc := NewOverlayService(client, 0)

	resp, err := svc.Refresh(context.Background(), &dto.OverlayRequest{
		Layer: dto.LayerSeverity,
		Markers: []dto.MapMarker{
			{ID: "a", Lat: 36.7, Lng: 3.05, Severity: "high"},
			{ID: "b", Lat: 36.8, Lng: 3.1, Severity: "low"},
			{ID: "c", Lat: "oops", Lng: 3.2, Severity: "medium"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, dto.LayerSeverity, resp.Layer)
	assert.Equal(t, 1, resp.Dropped)
	require.Len(t, resp.Markers, 2)

	assert.Equal(t, "#d32f2f", resp.Markers[0].Color)
	assert.Equal(t, 0.8, resp.Markers[0].Opacity)
	assert.Equal(t, "Severity: high", resp.Markers[0].Label)
	assert.Equal(t, "#388e3c", resp.Markers[1].Color)

	// Severity mode never calls the model or touches the segment cache.
	client.AssertNotCalled(t, "Overlay", mock.Anything, mock.Anything, mock.Anything)
	_, cached := svc.Lookup("a")
	assert.False(t, cached)
}

func TestOverlayRefreshAILayer(t *testing.T) {
	ctx := context.Background()

	t.Run("ScoredAndCached", func(t *testing.T) {
		client := new(MockInferenceClient)
		// The model echoes one id as a number and one as a string; both
		// must land under their canonical keys.
		client.On("Overlay", mock.Anything, mock.Anything, mock.Anything).
			Return([]domain.OverlayEntry{
				{SegmentID: float64(1), DangerLevel: "High", DangerPercent: 75.0},
				{SegmentID: "seg-2", DangerLevel: "Moderate", DangerPercent: 40.0},
			}, nil)

		svc := NewOverlayService(client, 0)
		resp, err := svc.Refresh(ctx, &dto.OverlayRequest{
			Layer: dto.LayerAI,
			Markers: []dto.MapMarker{
				{ID: float64(1), Lat: 36.7, Lng: 3.05},
				{ID: "seg-2", Lat: 36.8, Lng: 3.1},
			},
		})
		require.NoError(t, err)

		assert.Equal(t, dto.LayerAI, resp.Layer)
		require.Len(t, resp.Markers, 2)
		assert.Equal(t, "#e53935", resp.Markers[0].Color)
		assert.Equal(t, "AI risk: high (75%)", resp.Markers[0].Label)
		require.NotNil(t, resp.Markers[0].DangerPercent)
		assert.Equal(t, 75.0, *resp.Markers[0].DangerPercent)

		// Numeric and string lookups hit the same cached entry.
		entry, ok := svc.Lookup(1)
		require.True(t, ok)
		assert.Equal(t, "High", entry.DangerLevel)
		entry, ok = svc.Lookup("1")
		require.True(t, ok)
		assert.Equal(t, 75.0, entry.DangerPercent)
	})

	t.Run("UnscoredMarkerFallsBackToSeverity", func(t *testing.T) {
		client := new(MockInferenceClient)
		client.On("Overlay", mock.Anything, mock.Anything, mock.Anything).
			Return([]domain.OverlayEntry{
				{SegmentID: "a", DangerLevel: "Low", DangerPercent: 10.0},
			}, nil)

		svc := NewOverlayService(client, 0)
		resp, err := svc.Refresh(ctx, &dto.OverlayRequest{
			Layer: dto.LayerAI,
			Markers: []dto.MapMarker{
				{ID: "a", Lat: 36.7, Lng: 3.05},
				{ID: "b", Lat: 36.8, Lng: 3.1, Severity: "medium"},
			},
		})
		require.NoError(t, err)
		require.Len(t, resp.Markers, 2)

		assert.Equal(t, "No AI score", resp.Markers[1].Label)
		assert.Equal(t, "#ffa000", resp.Markers[1].Color)
		assert.Nil(t, resp.Markers[1].DangerPercent)
	})

	t.Run("CacheReplacedWholesale", func(t *testing.T) {
		client := new(MockInferenceClient)
		client.On("Overlay", mock.Anything, mock.Anything, mock.MatchedBy(func(rows []domain.OverlayRow) bool {
			return rows[0].SegmentID == "a"
		})).Return([]domain.OverlayEntry{
			{SegmentID: "a", DangerLevel: "High", DangerPercent: 80.0},
		}, nil)
		client.On("Overlay", mock.Anything, mock.Anything, mock.MatchedBy(func(rows []domain.OverlayRow) bool {
			return rows[0].SegmentID == "b"
		})).Return([]domain.OverlayEntry{
			{SegmentID: "b", DangerLevel: "Low", DangerPercent: 12.0},
		}, nil)

		svc := NewOverlayService(client, 0)
		_, err := svc.Refresh(ctx, &dto.OverlayRequest{
			Layer:   dto.LayerAI,
			Markers: []dto.MapMarker{{ID: "a", Lat: 36.7, Lng: 3.05}},
		})
		require.NoError(t, err)
		_, ok := svc.Lookup("a")
		require.True(t, ok)

		_, err = svc.Refresh(ctx, &dto.OverlayRequest{
			Layer:   dto.LayerAI,
			Markers: []dto.MapMarker{{ID: "b", Lat: 36.8, Lng: 3.1}},
		})
		require.NoError(t, err)

		// The new marker set replaced the cache; the old key is gone.
		_, ok = svc.Lookup("a")
		assert.False(t, ok)
		_, ok = svc.Lookup("b")
		assert.True(t, ok)
	})

	t.Run("LargeSetIsChunked", func(t *testing.T) {
		client := new(MockInferenceClient)
		client.On("Overlay", mock.Anything, mock.Anything, mock.MatchedBy(func(rows []domain.OverlayRow) bool {
			return len(rows) <= 2
		})).Return([]domain.OverlayEntry{}, nil)

		svc := NewOverlayService(client, 2)
		markers := make([]dto.MapMarker, 0, 5)
		for i := 0; i < 5; i++ {
			markers = append(markers, dto.MapMarker{ID: float64(i), Lat: 36.7, Lng: 3.05})
		}
		_, err := svc.Refresh(ctx, &dto.OverlayRequest{Layer: dto.LayerAI, Markers: markers})
		require.NoError(t, err)
		client.AssertNumberOfCalls(t, "Overlay", 3)
	})

	t.Run("ModelUnavailable", func(t *testing.T) {
		client := new(MockInferenceClient)
		client.On("Overlay", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("connection refused"))

		svc := NewOverlayService(client, 0)
		resp, err := svc.Refresh(ctx, &dto.OverlayRequest{
			Layer:   dto.LayerAI,
			Markers: []dto.MapMarker{{ID: "a", Lat: 36.7, Lng: 3.05}},
		})
		assert.Nil(t, resp)
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeModelUnavailable, domainErr.Code)
	})

	t.Run("EmptyMarkerSetSkipsModel", func(t *testing.T) {
		client := new(MockInferenceClient)
		svc := NewOverlayService(client, 0)
		resp, err := svc.Refresh(ctx, &dto.OverlayRequest{Layer: dto.LayerAI})
		require.NoError(t, err)
		assert.Empty(t, resp.Markers)
		client.AssertNotCalled(t, "Overlay", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOverlayExplain(t *testing.T) {
	ctx := context.Background()

	t.Run("MergesCachedScore", func(t *testing.T) {
		client := new(MockInferenceClient)
		client.On("Overlay", mock.Anything, mock.Anything, mock.Anything).
			Return([]domain.OverlayEntry{
				{SegmentID: "seg-9", DangerLevel: "High", DangerPercent: 66.0},
			}, nil)
		client.On("Explain", mock.Anything, "seg-9", 36.7, 3.05, mock.AnythingOfType("time.Time")).
			Return(&domain.Explanation{
				ShapPerFeature: map[string]float64{"risky": 1.5, "careful": -0.5},
			}, nil)

		svc := NewOverlayService(client, 0)
		_, err := svc.Refresh(ctx, &dto.OverlayRequest{
			Layer:   dto.LayerAI,
			Markers: []dto.MapMarker{{ID: "seg-9", Lat: 36.7, Lng: 3.05}},
		})
		require.NoError(t, err)

		resp, err := svc.Explain(ctx, &dto.ExplainRequest{SegmentID: "seg-9", Lat: 36.7, Lng: 3.05})
		require.NoError(t, err)

		assert.Equal(t, "seg-9", resp.SegmentID)
		require.Len(t, resp.Entries, 2)
		assert.Equal(t, "risky", resp.Entries[0].Feature)
		assert.Equal(t, "High", resp.DangerLevel)
		require.NotNil(t, resp.DangerPercent)
		assert.Equal(t, 66.0, *resp.DangerPercent)
	})

	t.Run("NoCachedScore", func(t *testing.T) {
		client := new(MockInferenceClient)
		client.On("Explain", mock.Anything, "seg-9", 36.7, 3.05, mock.AnythingOfType("time.Time")).
			Return(&domain.Explanation{ShapPerFeature: map[string]float64{"angry": 0.8}}, nil)

		svc := NewOverlayService(client, 0)
		resp, err := svc.Explain(ctx, &dto.ExplainRequest{SegmentID: "seg-9", Lat: 36.7, Lng: 3.05})
		require.NoError(t, err)
		assert.Empty(t, resp.DangerLevel)
		assert.Nil(t, resp.DangerPercent)
	})

	t.Run("NumericSegmentID", func(t *testing.T) {
		client := new(MockInferenceClient)
		client.On("Explain", mock.Anything, "7", 36.7, 3.05, mock.AnythingOfType("time.Time")).
			Return(&domain.Explanation{}, nil)

		svc := NewOverlayService(client, 0)
		resp, err := svc.Explain(ctx, &dto.ExplainRequest{SegmentID: float64(7), Lat: 36.7, Lng: 3.05})
		require.NoError(t, err)
		assert.Equal(t, "7", resp.SegmentID)
	})

	t.Run("MissingSegmentID", func(t *testing.T) {
		svc := NewOverlayService(new(MockInferenceClient), 0)
		_, err := svc.Explain(ctx, &dto.ExplainRequest{Lat: 36.7, Lng: 3.05})
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	})

	t.Run("InvalidCoordinates", func(t *testing.T) {
		svc := NewOverlayService(new(MockInferenceClient), 0)
		_, err := svc.Explain(ctx, &dto.ExplainRequest{SegmentID: "seg-9", Lat: "bad", Lng: 3.05})
		var domainErr *domain.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	})
}
