// Package incidentmap builds an interactive circle-marker map of incidents and
// renders it as a self-contained Leaflet HTML page.
package incidentmap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"

	"github.com/couchcryptid/shooting-analytics/internal/domain"
)

// ErrNoPoints is returned when no incident has usable coordinates.
var ErrNoPoints = errors.New("no incidents with coordinates")

// ErrInvalidZoom is returned for a zoom level outside [MinZoom, MaxZoom].
var ErrInvalidZoom = errors.New("invalid zoom level")

// Marker styling.
const (
	DefaultZoom       = 12
	MinZoom           = 0
	MaxZoom           = 20
	MarkerRadius      = 5
	MarkerFillOpacity = 0.7
)

// Marker is one circle marker.
type Marker struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Color string  `json:"color"`
	Popup string  `json:"popup"`
}

// Map is a renderable incident map.
type Map struct {
	Title   string
	Center  domain.Geo
	Zoom    int
	Radius  int
	Opacity float64
	Markers []Marker
	Dropped int // rows skipped for missing coordinates
}

// Build places one marker per incident with a point, colored by colors and
// centered on the mean coordinate. Rows without a point are counted in Dropped.
func Build(f *domain.Frame, colors *domain.ColorAssigner, zoom int) (Map, error) {
	if zoom < MinZoom || zoom > MaxZoom {
		return Map{}, fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidZoom, zoom, MinZoom, MaxZoom)
	}
	m := Map{
		Title:   "Shooting Incidents",
		Zoom:    zoom,
		Radius:  MarkerRadius,
		Opacity: MarkerFillOpacity,
	}
	coords := make([]geom.Coord, 0, f.Len())
	for _, inc := range f.Rows {
		if !inc.HasPoint {
			m.Dropped++
			continue
		}
		coords = append(coords, geom.Coord{inc.Point.Lon, inc.Point.Lat})
		m.Markers = append(m.Markers, Marker{
			Lat:   inc.Point.Lat,
			Lon:   inc.Point.Lon,
			Color: colors.Assign(inc.Point.Lon),
			Popup: Popup(inc),
		})
	}
	if len(coords) == 0 {
		return Map{}, ErrNoPoints
	}

	c := xy.MultiPointCentroid(geom.NewMultiPoint(geom.XY).MustSetCoords(coords))
	m.Center = domain.Geo{Lat: c.Y(), Lon: c.X()}
	return m, nil
}

// Popup formats the marker popup text: "Date: <date>\nLocation: <location>".
// Unparseable dates fall back to the raw cell text.
func Popup(inc domain.Incident) string {
	date := inc.Raw[domain.ColDate]
	if !inc.Date.IsZero() {
		date = inc.Date.Format("2006-01-02")
	}
	return "Date: " + date + "\nLocation: " + inc.Location
}

// FillMissingPoints forward-geocodes rows without coordinates and returns how
// many were resolved. A nil geocoder is a no-op.
func FillMissingPoints(ctx context.Context, f *domain.Frame, g domain.Geocoder, region string, logger *slog.Logger) int {
	if g == nil {
		return 0
	}
	filled := 0
	for i, inc := range f.Rows {
		if ctx.Err() != nil {
			break
		}
		if inc.HasPoint {
			continue
		}
		inc = domain.FillMissingPoint(ctx, inc, g, region, logger)
		if inc.HasPoint {
			filled++
		}
		f.Rows[i] = inc
	}
	return filled
}
