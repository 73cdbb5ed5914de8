package domain

import "time"

// Source column names.
const (
	ColLocation = "location"
	ColDate     = "date_"
	ColTime     = "time"
	ColPointX   = "point_x"
	ColPointY   = "point_y"
	ColAge      = "age"
	ColRace     = "race"
	ColSex      = "sex"
)

// Derived column names.
const (
	ColAgeGroup  = "age_group"
	ColDateTime  = "datetime"
	ColYear      = "Year"
	ColMonth     = "Month"
	ColYearMonth = "YearMonth"
	ColDayOfWeek = "DayOfWeek"
	ColHour      = "Hour"
)

// Geo represents a WGS-84 latitude/longitude coordinate pair.
type Geo struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Incident is one parsed row of an incident export. Optional values carry an
// explicit presence flag or use the zero value as the missing marker.
type Incident struct {
	Location string
	Date     time.Time // zero when missing or unparseable
	Time     time.Duration
	HasTime  bool
	Point    Geo
	HasPoint bool
	Age      float64
	HasAge   bool // age parsed as a number; range is checked by ValidAge
	Race     string
	Sex      string

	// Derived fields.
	AgeGroup  string
	DateTime  time.Time
	Year      int
	Month     int
	YearMonth string
	DayOfWeek string
	Hour      int
	HasHour   bool

	// GeoSource records how Point was obtained: "original", "forward" or "failed".
	GeoSource string

	// Raw holds every source column as read, keyed by column name.
	Raw map[string]string
}

// ValidAge reports whether the incident has a numeric age inside [MinAge, MaxAge].
func (inc Incident) ValidAge() bool {
	return inc.HasAge && inc.Age >= MinAge && inc.Age <= MaxAge
}
