package domain

import (
	"math"
	"time"
)

// Valid age range, inclusive on both ends.
const (
	MinAge = 0
	MaxAge = 120
)

// AgeGroups lists the age buckets in ascending order.
var AgeGroups = []string{
	"Child (0–12)",
	"Teen (13–18)",
	"Young Adult (19–25)",
	"Adult (26–35)",
	"Mid Age (36–50)",
	"Older (51–65)",
	"Senior (66+)",
}

// ageUpperBounds are the inclusive upper edges of AgeGroups.
var ageUpperBounds = []float64{12, 18, 25, 35, 50, 65, MaxAge}

// Weekdays lists day names in canonical Monday-first order.
var Weekdays = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// HoursPerDay is the number of hour-of-day labels.
const HoursPerDay = 24

// AgeGroup maps an age to its bucket. Buckets are right-closed, and the first
// bucket also includes 0, so every age in [0, 120] has exactly one group.
func AgeGroup(age float64) (string, bool) {
	if math.IsNaN(age) || age < MinAge || age > MaxAge {
		return "", false
	}
	for i, upper := range ageUpperBounds {
		if age <= upper {
			return AgeGroups[i], true
		}
	}
	return "", false
}

// YearMonthLabel formats the monthly period of t, e.g. "2019-06".
func YearMonthLabel(t time.Time) string {
	return t.Format("2006-01")
}

// DeriveAgeGroup sets AgeGroup for incidents with a valid age and clears it otherwise.
func DeriveAgeGroup(inc Incident) Incident {
	inc.AgeGroup = ""
	if !inc.ValidAge() {
		return inc
	}
	inc.AgeGroup, _ = AgeGroup(inc.Age)
	return inc
}

// DeriveDateTime combines Date and Time into DateTime and derives the calendar
// fields from it. When either part is missing, every derived field is cleared.
func DeriveDateTime(inc Incident) Incident {
	if inc.Date.IsZero() || !inc.HasTime {
		inc.DateTime = time.Time{}
		inc.Year = 0
		inc.Month = 0
		inc.YearMonth = ""
		return inc
	}
	inc.DateTime = inc.Date.Add(inc.Time)
	inc.Year = inc.DateTime.Year()
	inc.Month = int(inc.DateTime.Month())
	inc.YearMonth = YearMonthLabel(inc.DateTime)
	return inc
}

// DeriveDayOfWeek sets the weekday name from DateTime.
func DeriveDayOfWeek(inc Incident) Incident {
	inc.DayOfWeek = ""
	if inc.DateTime.IsZero() {
		return inc
	}
	inc.DayOfWeek = inc.DateTime.Weekday().String()
	return inc
}

// DeriveHour sets the hour of day, from DateTime when useDateTime is set and
// otherwise from the hours component of the raw time duration.
func DeriveHour(inc Incident, useDateTime bool) Incident {
	inc.Hour = 0
	inc.HasHour = false
	switch {
	case useDateTime:
		if inc.DateTime.IsZero() {
			return inc
		}
		inc.Hour = inc.DateTime.Hour()
	case inc.HasTime:
		inc.Hour = int(inc.Time/time.Hour) % HoursPerDay
	default:
		return inc
	}
	inc.HasHour = true
	return inc
}
