package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeGroup_Boundaries(t *testing.T) {
	tests := []struct {
		age  float64
		want string
	}{
		{0, "Child (0–12)"},
		{12, "Child (0–12)"},
		{12.5, "Teen (13–18)"},
		{13, "Teen (13–18)"},
		{18, "Teen (13–18)"},
		{19, "Young Adult (19–25)"},
		{25, "Young Adult (19–25)"},
		{26, "Adult (26–35)"},
		{35, "Adult (26–35)"},
		{36, "Mid Age (36–50)"},
		{50, "Mid Age (36–50)"},
		{51, "Older (51–65)"},
		{65, "Older (51–65)"},
		{66, "Senior (66+)"},
		{120, "Senior (66+)"},
	}

	for _, tt := range tests {
		got, ok := AgeGroup(tt.age)
		assert.True(t, ok, "age %v", tt.age)
		assert.Equal(t, tt.want, got, "age %v", tt.age)
	}
}

func TestAgeGroup_OutOfRange(t *testing.T) {
	for _, age := range []float64{-1, 120.5, 999} {
		_, ok := AgeGroup(age)
		assert.False(t, ok, "age %v", age)
	}
}

func TestAgeGroup_TotalPartition(t *testing.T) {
	// Every age in [0, 120] on a fine grid lands in exactly one bucket.
	seen := map[string]int{}
	for tenth := 0; tenth <= MaxAge*10; tenth++ {
		age := float64(tenth) / 10
		g, ok := AgeGroup(age)
		if !assert.True(t, ok, "age %v", age) {
			return
		}
		seen[g]++
	}
	assert.Len(t, seen, len(AgeGroups))
}

func TestDeriveDateTime(t *testing.T) {
	inc := DeriveDateTime(Incident{
		Date:    time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		Time:    23*time.Hour + 59*time.Minute,
		HasTime: true,
	})

	assert.Equal(t, time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC), inc.DateTime)
	assert.Equal(t, 2023, inc.Year)
	assert.Equal(t, 12, inc.Month)
	assert.Equal(t, "2023-12", inc.YearMonth)
}

func TestDeriveDateTime_MissingTimeClearsCalendar(t *testing.T) {
	inc := DeriveDateTime(Incident{
		Date:      time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
		Year:      2023,
		YearMonth: "2023-12",
	})

	assert.True(t, inc.DateTime.IsZero())
	assert.Zero(t, inc.Year)
	assert.Empty(t, inc.YearMonth)
}

func TestDeriveDayOfWeek(t *testing.T) {
	inc := DeriveDayOfWeek(Incident{DateTime: time.Date(2024, 4, 26, 15, 0, 0, 0, time.UTC)})
	assert.Equal(t, "Friday", inc.DayOfWeek)

	empty := DeriveDayOfWeek(Incident{DayOfWeek: "Monday"})
	assert.Empty(t, empty.DayOfWeek)
}

func TestDeriveHour(t *testing.T) {
	withDT := Incident{
		DateTime: time.Date(2024, 4, 26, 15, 10, 0, 0, time.UTC),
		Time:     3 * time.Hour,
		HasTime:  true,
	}
	assert.Equal(t, 15, DeriveHour(withDT, true).Hour)
	assert.Equal(t, 3, DeriveHour(withDT, false).Hour)

	overflow := DeriveHour(Incident{Time: 26 * time.Hour, HasTime: true}, false)
	assert.True(t, overflow.HasHour)
	assert.Equal(t, 2, overflow.Hour)

	none := DeriveHour(Incident{}, false)
	assert.False(t, none.HasHour)
}
