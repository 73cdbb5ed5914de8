package analysis

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/couchcryptid/shooting-analytics/internal/domain"
)

func TestCountBy(t *testing.T) {
	got := CountBy([]string{"B", "W", "B", "A", "W", "B", "H"})
	want := []Count{{"B", 3}, {"W", 2}, {"A", 1}, {"H", 1}}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("CountBy mismatch (-want +got):\n%s", diff)
	}
}

func TestCountOrdered_ZeroFills(t *testing.T) {
	got := CountOrdered([]string{"b", "b", "z"}, []string{"a", "b", "c"})
	assert.Equal(t, []Count{{"a", 0}, {"b", 2}, {"c", 0}}, got)
}

func TestCountByYear(t *testing.T) {
	got := CountByYear([]int{2021, 2019, 0, 2021, 2020})
	assert.Equal(t, []YearCount{{2019, 1}, {2020, 1}, {2021, 2}}, got)
}

func TestMeanByYear(t *testing.T) {
	got := MeanByYear([]int{2020, 2020, 2021, 0}, []float64{20, 30, 41, 99})
	assert.Equal(t, []YearMean{{Year: 2020, Mean: 25, N: 2}, {Year: 2021, Mean: 41, N: 1}}, got)
}

func TestAgeGroupCounts(t *testing.T) {
	got := AgeGroupCounts([]float64{0, 12, 13, 19, 70, 120, 150})

	assert.Len(t, got, len(domain.AgeGroups))
	assert.Equal(t, Count{"Child (0–12)", 2}, got[0])
	assert.Equal(t, Count{"Teen (13–18)", 1}, got[1])
	assert.Equal(t, Count{"Young Adult (19–25)", 1}, got[2])
	assert.Equal(t, Count{"Senior (66+)", 2}, got[6])
	assert.Equal(t, 6, Total(got))
}

func TestWeekdayCounts_CanonicalOrder(t *testing.T) {
	got := WeekdayCounts([]string{"Sunday", "Monday", "Friday", "Sunday"})

	labels := make([]string, len(got))
	for i, c := range got {
		labels[i] = c.Label
	}
	assert.Equal(t, domain.Weekdays, labels)
	assert.Equal(t, 1, got[0].N)
	assert.Equal(t, 2, got[6].N)
	assert.Equal(t, 4, Total(got))
}

func TestHourCounts_AllSlots(t *testing.T) {
	got := HourCounts([]int{0, 0, 23, 12, 24, -1})

	assert.Len(t, got, 24)
	assert.Equal(t, 2, got[0])
	assert.Equal(t, 1, got[12])
	assert.Equal(t, 1, got[23])
	assert.Zero(t, got[5])
}
