// Package geo validates and converts loosely-typed position data coming
// from upstream marker feeds into canonical coordinate pairs.
package geo

import (
	"encoding/json"
	"math"
	"strconv"
)

// LatLng is a canonical coordinate pair. Both components are finite.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// minPathPoints is the smallest path that still renders as a line segment.
const minPathPoints = 2

// coerce converts a loosely-typed coordinate component to a finite float64.
// Upstream feeds deliver numbers, stringified numbers and json.Number
// interchangeably.
func coerce(v interface{}) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NormalizePosition converts a loosely-typed lat/lng pair into a canonical
// coordinate. Reports false unless both components coerce to finite numbers;
// a marker that fails here is dropped before rendering, never partially
// rendered.
func NormalizePosition(lat, lng interface{}) (LatLng, bool) {
	la, ok := coerce(lat)
	if !ok {
		return LatLng{}, false
	}
	ln, ok := coerce(lng)
	if !ok {
		return LatLng{}, false
	}
	return LatLng{Lat: la, Lng: ln}, true
}

// NormalizePath converts a marker path into renderable segment geometry.
// Entries may be [lat, lng] tuples or {lat, lng} objects; invalid entries
// are filtered out. Returns nil unless at least two valid points remain,
// in which case the caller falls back to a point marker.
func NormalizePath(entries []interface{}) []LatLng {
	if len(entries) == 0 {
		return nil
	}
	points := make([]LatLng, 0, len(entries))
	for _, entry := range entries {
		switch e := entry.(type) {
		case []interface{}:
			if len(e) < 2 {
				continue
			}
			if p, ok := NormalizePosition(e[0], e[1]); ok {
				points = append(points, p)
			}
		case map[string]interface{}:
			if p, ok := NormalizePosition(e["lat"], e["lng"]); ok {
				points = append(points, p)
			}
		}
	}
	if len(points) < minPathPoints {
		return nil
	}
	return points
}
