package domain

import (
	"errors"
	"strings"
	"time"
)

// ErrMissingColumns is returned when an operation needs columns the frame lacks.
var ErrMissingColumns = errors.New("missing required columns")

// Frame is the in-memory analysis table: parsed rows plus the set of columns
// that exist, in header order followed by derived columns in derivation order.
// A Frame has a single owner and is not safe for concurrent use.
type Frame struct {
	columns []string
	present map[string]bool
	Rows    []Incident
}

// NewFrame creates a frame over the given header and rows.
func NewFrame(columns []string, rows []Incident) *Frame {
	f := &Frame{present: make(map[string]bool, len(columns))}
	for _, c := range columns {
		f.AddColumn(c)
	}
	f.Rows = rows
	return f
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

// Has reports whether col exists in the frame.
func (f *Frame) Has(col string) bool {
	return f.present[col]
}

// Missing returns the subset of cols that the frame lacks, in argument order.
func (f *Frame) Missing(cols ...string) []string {
	var missing []string
	for _, c := range cols {
		if !f.present[c] {
			missing = append(missing, c)
		}
	}
	return missing
}

// AddColumn marks a column as present. Adding an existing column is a no-op.
func (f *Frame) AddColumn(col string) {
	if f.present[col] {
		return
	}
	f.present[col] = true
	f.columns = append(f.columns, col)
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.Rows)
}

// Apply replaces every row with fn(row).
func (f *Frame) Apply(fn func(Incident) Incident) {
	for i := range f.Rows {
		f.Rows[i] = fn(f.Rows[i])
	}
}

// Filter keeps the rows for which keep returns true and returns how many were dropped.
func (f *Frame) Filter(keep func(Incident) bool) int {
	kept := f.Rows[:0]
	for _, r := range f.Rows {
		if keep(r) {
			kept = append(kept, r)
		}
	}
	dropped := len(f.Rows) - len(kept)
	f.Rows = kept
	return dropped
}

// ColumnKind classifies a column for summary statistics.
type ColumnKind int

const (
	KindCategorical ColumnKind = iota
	KindNumeric
	KindTemporal
)

// Column is the non-missing content of one frame column.
type Column struct {
	Name    string
	Kind    ColumnKind
	Strings []string    // categorical values
	Numbers []float64   // numeric values
	Times   []time.Time // temporal values
}

// Count returns the number of non-missing values.
func (c Column) Count() int {
	switch c.Kind {
	case KindNumeric:
		return len(c.Numbers)
	case KindTemporal:
		return len(c.Times)
	default:
		return len(c.Strings)
	}
}

// Column extracts the non-missing values of col. Typed and derived columns use
// the parsed fields, and ages outside [MinAge, MaxAge] count as missing; any other column is numeric when every non-blank raw value
// parses as a number and categorical otherwise.
func (f *Frame) Column(col string) (Column, error) {
	if !f.present[col] {
		return Column{}, ErrMissingColumns
	}
	c := Column{Name: col}

	switch col {
	case ColDate:
		c.Kind = KindTemporal
		for _, r := range f.Rows {
			if !r.Date.IsZero() {
				c.Times = append(c.Times, r.Date)
			}
		}
	case ColDateTime:
		c.Kind = KindTemporal
		for _, r := range f.Rows {
			if !r.DateTime.IsZero() {
				c.Times = append(c.Times, r.DateTime)
			}
		}
	case ColAge:
		c.Kind = KindNumeric
		for _, r := range f.Rows {
			if r.ValidAge() {
				c.Numbers = append(c.Numbers, r.Age)
			}
		}
	case ColPointX, ColPointY:
		c.Kind = KindNumeric
		for _, r := range f.Rows {
			if !r.HasPoint {
				continue
			}
			if col == ColPointX {
				c.Numbers = append(c.Numbers, r.Point.Lon)
			} else {
				c.Numbers = append(c.Numbers, r.Point.Lat)
			}
		}
	case ColYear, ColMonth:
		c.Kind = KindNumeric
		for _, r := range f.Rows {
			v := r.Year
			if col == ColMonth {
				v = r.Month
			}
			if v != 0 {
				c.Numbers = append(c.Numbers, float64(v))
			}
		}
	case ColHour:
		c.Kind = KindNumeric
		for _, r := range f.Rows {
			if r.HasHour {
				c.Numbers = append(c.Numbers, float64(r.Hour))
			}
		}
	case ColAgeGroup, ColYearMonth, ColDayOfWeek, ColRace, ColSex, ColLocation:
		c.Kind = KindCategorical
		for _, r := range f.Rows {
			if v := stringField(r, col); v != "" {
				c.Strings = append(c.Strings, v)
			}
		}
	default:
		c = rawColumn(col, f.Rows)
	}
	return c, nil
}

func stringField(r Incident, col string) string {
	switch col {
	case ColAgeGroup:
		return r.AgeGroup
	case ColYearMonth:
		return r.YearMonth
	case ColDayOfWeek:
		return r.DayOfWeek
	case ColRace:
		return r.Race
	case ColSex:
		return r.Sex
	case ColLocation:
		return r.Location
	}
	return ""
}

func rawColumn(col string, rows []Incident) Column {
	c := Column{Name: col, Kind: KindNumeric}
	for _, r := range rows {
		v := strings.TrimSpace(r.Raw[col])
		if v == "" {
			continue
		}
		c.Strings = append(c.Strings, v)
	}
	if len(c.Strings) == 0 {
		c.Kind = KindCategorical
		return c
	}
	nums := make([]float64, 0, len(c.Strings))
	for _, s := range c.Strings {
		n, ok := ParseNumber(s)
		if !ok {
			c.Kind = KindCategorical
			return c
		}
		nums = append(nums, n)
	}
	c.Numbers = nums
	c.Strings = nil
	return c
}
