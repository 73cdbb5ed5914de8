package mapbox

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/shooting-analytics/internal/domain"
	"github.com/couchcryptid/shooting-analytics/internal/observability"
)

type countingGeocoder struct {
	calls  int
	result domain.GeocodingResult
	err    error
}

func (m *countingGeocoder) ForwardGeocode(_ context.Context, _, _ string) (domain.GeocodingResult, error) {
	m.calls++
	return m.result, m.err
}

var fifthStreet = domain.GeocodingResult{
	Lat: 39.97, Lon: -75.14, PlaceName: "North 5th Street", FormattedAddress: "1200 North 5th Street, Philadelphia",
}

func TestCachedGeocoder_Hit(t *testing.T) {
	inner := &countingGeocoder{result: fifthStreet}
	m := observability.NewMetricsForTesting()
	cached := NewCachedGeocoder(inner, 10, m)

	r1, err := cached.ForwardGeocode(context.Background(), "1200 BLOCK N 5TH ST", "Philadelphia, PA")
	require.NoError(t, err)
	r2, err := cached.ForwardGeocode(context.Background(), "1200 block n 5th st", "Philadelphia, PA")
	require.NoError(t, err)

	assert.Equal(t, r1, r2)
	assert.Equal(t, 1, inner.calls, "normalized queries share a cache entry")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GeocodeCache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GeocodeCache.WithLabelValues("miss")))
}

func TestCachedGeocoder_DistinctRegions(t *testing.T) {
	inner := &countingGeocoder{result: fifthStreet}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	_, _ = cached.ForwardGeocode(context.Background(), "100 MAIN ST", "Philadelphia, PA")
	_, _ = cached.ForwardGeocode(context.Background(), "100 MAIN ST", "Camden, NJ")

	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 2, cached.Len())
}

func TestCachedGeocoder_EmptyResultNotCached(t *testing.T) {
	inner := &countingGeocoder{}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	_, _ = cached.ForwardGeocode(context.Background(), "NOWHERE", "")
	_, _ = cached.ForwardGeocode(context.Background(), "NOWHERE", "")

	assert.Equal(t, 2, inner.calls)
	assert.Zero(t, cached.Len())
}

func TestCachedGeocoder_ErrorNotCached(t *testing.T) {
	inner := &countingGeocoder{err: errors.New("boom")}
	cached := NewCachedGeocoder(inner, 10, observability.NewMetricsForTesting())

	_, err := cached.ForwardGeocode(context.Background(), "100 MAIN ST", "")
	require.Error(t, err)
	assert.Zero(t, cached.Len())
}

func TestCachedGeocoder_EvictsLeastRecentlyUsed(t *testing.T) {
	inner := &countingGeocoder{result: fifthStreet}
	cached := NewCachedGeocoder(inner, 2, observability.NewMetricsForTesting())
	ctx := context.Background()

	_, _ = cached.ForwardGeocode(ctx, "A ST", "")
	_, _ = cached.ForwardGeocode(ctx, "B ST", "")
	_, _ = cached.ForwardGeocode(ctx, "A ST", "") // hit; B is now oldest
	_, _ = cached.ForwardGeocode(ctx, "C ST", "") // evicts B
	require.Equal(t, 3, inner.calls)

	_, _ = cached.ForwardGeocode(ctx, "A ST", "")
	assert.Equal(t, 3, inner.calls, "A should still be cached")

	_, _ = cached.ForwardGeocode(ctx, "B ST", "")
	assert.Equal(t, 4, inner.calls, "B should have been evicted")
	assert.Equal(t, 2, cached.Len())
}
