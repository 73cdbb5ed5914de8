package domain

import (
	"context"
	"log/slog"
)

// FillMissingPoint forward-geocodes the location text of an incident that has
// no coordinates. Incidents that already have a point, have no location, or
// when geocoder is nil, are returned unchanged. Failures degrade gracefully:
// the incident keeps HasPoint false and GeoSource is set to "failed".
func FillMissingPoint(ctx context.Context, inc Incident, geocoder Geocoder, region string, logger *slog.Logger) Incident {
	if geocoder == nil || inc.HasPoint || inc.Location == "" {
		return inc
	}

	result, err := geocoder.ForwardGeocode(ctx, inc.Location, region)
	if err != nil {
		logger.Warn("forward geocoding failed",
			"location", inc.Location,
			"region", region,
			"error", err,
		)
		inc.GeoSource = "failed"
		return inc
	}
	if result.Lat == 0 && result.Lon == 0 {
		inc.GeoSource = "failed"
		return inc
	}

	inc.Point = Geo{Lat: result.Lat, Lon: result.Lon}
	inc.HasPoint = true
	inc.GeoSource = "forward"
	return inc
}
