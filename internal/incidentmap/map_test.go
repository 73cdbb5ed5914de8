package incidentmap

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/shooting-analytics/internal/domain"
)

func point(lat, lon float64, date, loc string) domain.Incident {
	inc := domain.ParseIncident(map[string]string{
		domain.ColDate:     date,
		domain.ColLocation: loc,
	})
	inc.Point = domain.Geo{Lat: lat, Lon: lon}
	inc.HasPoint = true
	return inc
}

func testFrame(rows ...domain.Incident) *domain.Frame {
	return domain.NewFrame([]string{domain.ColDate, domain.ColLocation, domain.ColPointX, domain.ColPointY}, rows)
}

func TestBuild_CentroidAndMarkers(t *testing.T) {
	f := testFrame(
		point(39.95, -75.10, "2020-01-01", "A ST"),
		point(39.97, -75.20, "2020-01-02", "B ST"),
		domain.Incident{Location: "NO POINT"},
	)

	m, err := Build(f, domain.NewColorAssigner(domain.DefaultDividerLongitude, 1), DefaultZoom)
	require.NoError(t, err)

	assert.InDelta(t, 39.96, m.Center.Lat, 1e-9)
	assert.InDelta(t, -75.15, m.Center.Lon, 1e-9)
	assert.Equal(t, DefaultZoom, m.Zoom)
	assert.Equal(t, MarkerRadius, m.Radius)
	assert.InDelta(t, MarkerFillOpacity, m.Opacity, 1e-12)
	assert.Equal(t, 1, m.Dropped)
	require.Len(t, m.Markers, 2, "one marker per row with coordinates")

	assert.Equal(t, domain.ColorEast, m.Markers[0].Color)
	assert.Contains(t, []string{domain.ColorWestPrimary, domain.ColorWestSecondary}, m.Markers[1].Color)
	assert.Equal(t, "Date: 2020-01-01\nLocation: A ST", m.Markers[0].Popup)
}

func TestBuild_NoPoints(t *testing.T) {
	_, err := Build(testFrame(domain.Incident{Location: "X"}), domain.NewColorAssigner(0, 1), 12)
	require.ErrorIs(t, err, ErrNoPoints)

	_, err = Build(testFrame(), domain.NewColorAssigner(0, 1), 12)
	require.ErrorIs(t, err, ErrNoPoints)
}

func TestBuild_Zoom(t *testing.T) {
	f := testFrame(point(39.95, -75.16, "2020-01-01", "A ST"))

	m, err := Build(f, domain.NewColorAssigner(0, 1), 0)
	require.NoError(t, err)
	assert.Equal(t, 0, m.Zoom, "zoom 0 shows the whole world and is kept")

	for _, zoom := range []int{-1, 21} {
		_, err := Build(f, domain.NewColorAssigner(0, 1), zoom)
		require.ErrorIs(t, err, ErrInvalidZoom, "zoom %d", zoom)
	}
}

func TestPopup_RawDateFallback(t *testing.T) {
	inc := domain.ParseIncident(map[string]string{domain.ColDate: "sometime", domain.ColLocation: "C ST"})
	assert.Equal(t, "Date: sometime\nLocation: C ST", Popup(inc))
}

func TestRender(t *testing.T) {
	m := Map{
		Title:   "Shooting Incidents",
		Center:  domain.Geo{Lat: 39.96, Lon: -75.15},
		Zoom:    12,
		Radius:  MarkerRadius,
		Opacity: MarkerFillOpacity,
		Markers: []Marker{
			{Lat: 39.95, Lon: -75.10, Color: "gray", Popup: "Date: 2020-01-01\nLocation: <b>A</b> ST"},
		},
	}

	out, err := RenderBytes(m)
	require.NoError(t, err)
	html := string(out)

	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, "<title>Shooting Incidents</title>")
	assert.Regexp(t, `setView\(\[39.96,-75.15\],\s*12\s*\)`, html)
	assert.Contains(t, html, `"color":"gray"`)
	assert.Regexp(t, `radius:\s*5\s*,`, html)
	assert.Regexp(t, `fillOpacity:\s*0.7\s`, html)
	assert.NotContains(t, html, "<b>A</b>", "popup markup must be escaped")
}

func TestRender_EmptyMarkers(t *testing.T) {
	out, err := RenderBytes(Map{Zoom: 12})
	require.NoError(t, err)
	assert.Contains(t, string(out), "const markers = [];")
}

type stubGeocoder struct{ calls int }

func (s *stubGeocoder) ForwardGeocode(_ context.Context, location, _ string) (domain.GeocodingResult, error) {
	s.calls++
	if location == "UNKNOWN" {
		return domain.GeocodingResult{}, nil
	}
	return domain.GeocodingResult{Lat: 39.9, Lon: -75.2, FormattedAddress: location}, nil
}

func TestFillMissingPoints(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := testFrame(
		point(39.95, -75.10, "2020-01-01", "A ST"),
		domain.Incident{Location: "B ST", Date: time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)},
		domain.Incident{Location: "UNKNOWN"},
	)
	g := &stubGeocoder{}

	filled := FillMissingPoints(context.Background(), f, g, "Philadelphia, PA", logger)

	assert.Equal(t, 1, filled)
	assert.Equal(t, 2, g.calls, "rows with a point are not geocoded")
	assert.True(t, f.Rows[1].HasPoint)
	assert.Equal(t, "forward", f.Rows[1].GeoSource)
	assert.False(t, f.Rows[2].HasPoint)
	assert.Equal(t, 0, FillMissingPoints(context.Background(), f, nil, "", logger))
}
