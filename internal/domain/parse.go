package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// dateLayouts are tried in order; the time-of-day portion, if any, is discarded.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05Z07:00",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"1/2/2006",
	"01/02/2006 15:04",
	"1/2/2006 15:04",
}

// ParseIncident converts a raw CSV row into an Incident. It never fails:
// malformed values are left missing.
func ParseIncident(raw map[string]string) Incident {
	inc := Incident{
		Location: get(raw, ColLocation),
		Race:     get(raw, ColRace),
		Sex:      get(raw, ColSex),
		Raw:      raw,
	}

	if d, ok := ParseDate(get(raw, ColDate)); ok {
		inc.Date = d
	}
	if t, ok := ParseClock(get(raw, ColTime)); ok {
		inc.Time = t
		inc.HasTime = true
	}

	lon, okX := ParseNumber(get(raw, ColPointX))
	lat, okY := ParseNumber(get(raw, ColPointY))
	if okX && okY {
		inc.Point = Geo{Lat: lat, Lon: lon}
		inc.HasPoint = true
		inc.GeoSource = "original"
	}

	if age, ok := ParseNumber(get(raw, ColAge)); ok {
		inc.Age = age
		inc.HasAge = true
	}

	// Some exports already carry calendar columns.
	if y, ok := parseInt(get(raw, ColYear)); ok {
		inc.Year = y
	}
	if m, ok := parseInt(get(raw, ColMonth)); ok && m >= 1 && m <= 12 {
		inc.Month = m
	}
	inc.YearMonth = get(raw, ColYearMonth)

	return inc
}

// ParseDate parses a calendar date in any of the supported layouts and
// truncates it to midnight UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
	}
	return time.Time{}, false
}

// ParseClock parses a time-of-day duration such as "14:05:00", "9:30" or
// "0 days 14:05:00".
func ParseClock(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	var days int
	if i := strings.Index(s, "days"); i > 0 {
		d, err := strconv.Atoi(strings.TrimSpace(s[:i]))
		if err != nil || d < 0 {
			return 0, false
		}
		days = d
		s = strings.TrimSpace(s[i+len("days"):])
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	h, errH := strconv.Atoi(parts[0])
	m, errM := strconv.Atoi(parts[1])
	sec := 0
	var errS error
	if len(parts) == 3 {
		sec, errS = strconv.Atoi(parts[2])
	}
	if errH != nil || errM != nil || errS != nil || h < 0 || m < 0 || m > 59 || sec < 0 || sec > 59 {
		return 0, false
	}

	d := time.Duration(days)*24*time.Hour +
		time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second
	return d, true
}

// ParseNumber parses a finite float, returning false for blanks and junk.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseInt accepts integral floats like "2019.0" as written by spreadsheet tools.
func parseInt(s string) (int, bool) {
	v, ok := ParseNumber(s)
	if !ok || v != math.Trunc(v) {
		return 0, false
	}
	return int(v), true
}

func get(raw map[string]string, col string) string {
	return strings.TrimSpace(raw[col])
}
