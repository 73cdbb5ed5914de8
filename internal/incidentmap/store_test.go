package incidentmap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	var s Store

	_, ok := s.HTML()
	assert.False(t, ok)
	require.Error(t, s.CheckReadiness(context.Background()))

	require.NoError(t, s.Set(Map{Title: "t", Zoom: 12, Markers: []Marker{{Lat: 1, Lon: 2, Color: "gray"}}}))

	page, ok := s.HTML()
	require.True(t, ok)
	assert.Contains(t, string(page), "<title>t</title>")
	assert.Equal(t, 1, s.Markers())
	assert.NoError(t, s.CheckReadiness(context.Background()))
}
