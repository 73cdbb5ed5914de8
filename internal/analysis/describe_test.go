package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	s, err := Describe([]float64{40, 20, 30})
	require.NoError(t, err)

	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 30.0, s.Mean, 1e-12)
	assert.InDelta(t, 10.0, s.Std, 1e-12)
	assert.Equal(t, 20.0, s.Min)
	assert.Equal(t, 25.0, s.Q25)
	assert.Equal(t, 30.0, s.Median)
	assert.Equal(t, 35.0, s.Q75)
	assert.Equal(t, 40.0, s.Max)
}

func TestDescribe_EvenSampleInterpolates(t *testing.T) {
	s, err := Describe([]float64{1, 2, 3, 4})
	require.NoError(t, err)

	assert.Equal(t, 1.75, s.Q25)
	assert.Equal(t, 2.5, s.Median)
	assert.Equal(t, 3.25, s.Q75)
}

func TestDescribe_SingleValue(t *testing.T) {
	s, err := Describe([]float64{7})
	require.NoError(t, err)

	assert.True(t, math.IsNaN(s.Std))
	assert.Equal(t, 7.0, s.Median)
}

func TestDescribe_Empty(t *testing.T) {
	_, err := Describe(nil)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestHistogram(t *testing.T) {
	bins, err := Histogram([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 5)
	require.NoError(t, err)
	require.Len(t, bins, 5)

	counts := make([]int, len(bins))
	for i, b := range bins {
		counts[i] = b.Count
	}
	assert.Equal(t, []int{2, 2, 2, 2, 3}, counts)
	assert.Equal(t, 0.0, bins[0].Lo)
	assert.Equal(t, 10.0, bins[4].Hi)
}

func TestHistogram_ConstantSample(t *testing.T) {
	bins, err := Histogram([]float64{5, 5, 5}, 4)
	require.NoError(t, err)

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, 4.5, bins[0].Lo)
	assert.Equal(t, 5.5, bins[3].Hi)
}

func TestHistogram_Invalid(t *testing.T) {
	_, err := Histogram(nil, 20)
	assert.ErrorIs(t, err, ErrNoData)

	_, err = Histogram([]float64{1}, 0)
	assert.Error(t, err)
}
