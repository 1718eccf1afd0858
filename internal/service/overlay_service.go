package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"roadrisk/internal/domain"
	"roadrisk/internal/dto"
	"roadrisk/internal/explain"
	"roadrisk/internal/flow"
	"roadrisk/internal/geo"
	"roadrisk/internal/logger"
	"roadrisk/internal/presentation"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultOverlayBatchSize = 50

// severityOpacity is the fixed opacity for severity-layer markers; only the
// AI layer scales opacity with the model's danger percent.
const severityOpacity = 0.8

// OverlayService defines the interface for the map overlay pipeline: batch
// segment scoring, the segment cache, and per-segment explanations.
type OverlayService interface {
	Refresh(ctx context.Context, req *dto.OverlayRequest) (*dto.OverlayResponse, error)
	Explain(ctx context.Context, req *dto.ExplainRequest) (*dto.ExplainResponse, error)
	Lookup(markerID interface{}) (domain.OverlayEntry, bool)
}

// overlayService implements OverlayService
type overlayService struct {
	client    domain.InferenceClient
	batchSize int

	overlayFlow *flow.Machine[map[string]domain.OverlayEntry]
	explainFlow *flow.Machine[*domain.Explanation]

	// segments is single-writer (overlay fetch completion) and
	// multi-reader (marker renders, explain merges). Replaced wholesale on
	// every committed fetch; never partially merged.
	mu       sync.RWMutex
	segments map[string]domain.OverlayEntry
}

// NewOverlayService creates a new instance of overlayService
func NewOverlayService(client domain.InferenceClient, batchSize int) OverlayService {
	if batchSize <= 0 {
		batchSize = defaultOverlayBatchSize
	}
	return &overlayService{
		client:      client,
		batchSize:   batchSize,
		overlayFlow: flow.NewMachine[map[string]domain.OverlayEntry](),
		explainFlow: flow.NewMachine[*domain.Explanation](),
		segments:    map[string]domain.OverlayEntry{},
	}
}

// normalizedMarker is a marker that survived geometry validation, carrying
// its canonical cache key.
type normalizedMarker struct {
	key      string
	severity string
	position geo.LatLng
	path     []geo.LatLng
}

// normalizeMarkers drops markers without finite coordinates. Invalid
// geometry reflects malformed upstream data, not a user-facing failure, so
// it is logged at debug and never reported as an error.
func normalizeMarkers(markers []dto.MapMarker) (valid []normalizedMarker, dropped int) {
	valid = make([]normalizedMarker, 0, len(markers))
	for i, m := range markers {
		pos, ok := geo.NormalizePosition(m.Lat, m.Lng)
		if !ok {
			dropped++
			logger.Get().Debug("OverlayService: dropped marker with invalid coordinates",
				zap.Any("markerID", m.ID))
			continue
		}
		key := domain.SegmentKey(m.ID)
		if key == "" {
			key = fmt.Sprintf("%d", i)
		}
		valid = append(valid, normalizedMarker{
			key:      key,
			severity: m.Severity,
			position: pos,
			path:     geo.NormalizePath(m.Path),
		})
	}
	return valid, dropped
}

// Refresh implements OverlayService. In AI-layer mode the visible marker
// set is batch-scored and the segment cache rebuilt wholesale; in severity
// mode markers are rendered from their reported severity without touching
// the model or the cache.
func (s *overlayService) Refresh(ctx context.Context, req *dto.OverlayRequest) (*dto.OverlayResponse, error) {
	markers, dropped := normalizeMarkers(req.Markers)

	if req.Layer != dto.LayerAI {
		return &dto.OverlayResponse{
			Layer:   dto.LayerSeverity,
			Markers: renderSeverity(markers),
			Dropped: dropped,
		}, nil
	}

	rows := make([]domain.OverlayRow, 0, len(markers))
	for _, m := range markers {
		rows = append(rows, domain.OverlayRow{
			SegmentID: m.key,
			Lat:       m.position.Lat,
			Lng:       m.position.Lng,
		})
	}

	token := s.overlayFlow.Begin(ctx)
	merged, err := s.fetchOverlay(token.Context(), requestTime(req.Timestamp), rows)
	if err != nil {
		s.overlayFlow.Complete(token, nil, err)
		return nil, domain.NewModelUnavailableError("Failed to load risk overlay", err)
	}

	// Only the currently relevant marker set replaces the shared cache;
	// a superseded fetch still answers its own request.
	if s.overlayFlow.Complete(token, merged, nil) {
		s.mu.Lock()
		s.segments = merged
		s.mu.Unlock()
	} else {
		logger.Get().Debug("OverlayService: discarded superseded overlay result",
			zap.Int("segments", len(merged)))
	}

	return &dto.OverlayResponse{
		Layer:   dto.LayerAI,
		Markers: renderAI(markers, merged),
		Dropped: dropped,
	}, nil
}

// fetchOverlay issues the batch call, splitting large marker sets into
// concurrent chunks. Entries are keyed by their canonical segment key,
// falling back to the submitted row at the same position when the model
// echoes no segment id.
func (s *overlayService) fetchOverlay(ctx context.Context, timestamp time.Time, rows []domain.OverlayRow) (map[string]domain.OverlayEntry, error) {
	merged := make(map[string]domain.OverlayEntry, len(rows))
	if len(rows) == 0 {
		return merged, nil
	}

	var chunks [][]domain.OverlayRow
	for start := 0; start < len(rows); start += s.batchSize {
		end := start + s.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		chunks = append(chunks, rows[start:end])
	}

	results := make([][]domain.OverlayEntry, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			entries, err := s.client.Overlay(gctx, timestamp, chunk)
			if err != nil {
				return err
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for ci, entries := range results {
		for ei, entry := range entries {
			key := domain.SegmentKey(entry.SegmentID)
			if key == "" && ei < len(chunks[ci]) {
				key = chunks[ci][ei].SegmentID
			}
			if key == "" {
				continue
			}
			merged[key] = entry
		}
	}
	return merged, nil
}

// Lookup implements OverlayService. The marker id is canonicalized through
// the same key conversion as the write path, so numeric and string ids hit
// the same entry.
func (s *overlayService) Lookup(markerID interface{}) (domain.OverlayEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.segments[domain.SegmentKey(markerID)]
	return entry, ok
}

// Explain implements OverlayService. The explanation is merged with the
// segment's cached overlay score when one is present.
func (s *overlayService) Explain(ctx context.Context, req *dto.ExplainRequest) (*dto.ExplainResponse, error) {
	pos, ok := geo.NormalizePosition(req.Lat, req.Lng)
	if !ok {
		return nil, domain.NewInvalidInputError("lat and lng must be finite coordinates")
	}
	segmentID := domain.SegmentKey(req.SegmentID)
	if segmentID == "" {
		return nil, domain.NewInvalidInputError("segment_id is required")
	}

	token := s.explainFlow.Begin(ctx)
	explanation, err := s.client.Explain(token.Context(), segmentID, pos.Lat, pos.Lng, requestTime(req.Timestamp))
	if err != nil {
		s.explainFlow.Complete(token, nil, err)
		return nil, domain.NewModelUnavailableError("Failed to load segment explanation", err)
	}

	resp := &dto.ExplainResponse{
		SegmentID:      segmentID,
		ShapPerFeature: explanation.ShapPerFeature,
		Entries:        toExplanationEntries(explain.Interpret(explanation.ShapPerFeature)),
	}
	if entry, cached := s.Lookup(segmentID); cached {
		resp.DangerLevel = entry.DangerLevel
		pct := entry.DangerPercent
		resp.DangerPercent = &pct
	}

	if !s.explainFlow.Complete(token, explanation, nil) {
		logger.Get().Debug("OverlayService: discarded superseded explanation",
			zap.String("segmentID", segmentID))
	}
	return resp, nil
}

func renderSeverity(markers []normalizedMarker) []dto.MarkerRender {
	renders := make([]dto.MarkerRender, 0, len(markers))
	for _, m := range markers {
		render := baseRender(m)
		render.Color = presentation.SeverityColor(m.severity)
		render.Opacity = severityOpacity
		if m.severity != "" {
			render.Label = fmt.Sprintf("Severity: %s", m.severity)
		} else {
			render.Label = "Severity: unknown"
		}
		renders = append(renders, render)
	}
	return renders
}

func renderAI(markers []normalizedMarker, segments map[string]domain.OverlayEntry) []dto.MarkerRender {
	renders := make([]dto.MarkerRender, 0, len(markers))
	for _, m := range markers {
		render := baseRender(m)
		entry, scored := segments[m.key]
		if !scored {
			// No score came back for this segment; fall back to the
			// severity styling rather than inventing a danger level.
			render.Color = presentation.SeverityColor(m.severity)
			render.Opacity = severityOpacity
			render.Label = "No AI score"
			renders = append(renders, render)
			continue
		}
		render.Color = presentation.DangerLevelColor(entry.DangerLevel)
		render.Opacity = presentation.OverlayOpacity(entry.DangerPercent)
		render.Label = fmt.Sprintf("AI risk: %s (%.0f%%)", strings.ToLower(entry.DangerLevel), entry.DangerPercent)
		render.DangerLevel = entry.DangerLevel
		pct := entry.DangerPercent
		render.DangerPercent = &pct
		renders = append(renders, render)
	}
	return renders
}

func baseRender(m normalizedMarker) dto.MarkerRender {
	render := dto.MarkerRender{
		ID:       m.key,
		Kind:     "point",
		Position: dto.Position{Lat: m.position.Lat, Lng: m.position.Lng},
	}
	if m.path != nil {
		render.Kind = "segment"
		render.Path = make([]dto.Position, 0, len(m.path))
		for _, p := range m.path {
			render.Path = append(render.Path, dto.Position{Lat: p.Lat, Lng: p.Lng})
		}
	}
	return render
}
