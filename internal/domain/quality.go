package domain

import "strings"

// ColumnQuality counts cell problems in one source column.
type ColumnQuality struct {
	Column     string
	Present    bool
	Blank      int
	Malformed  int // non-blank but unparseable
	OutOfRange int // parsed but outside the valid domain (age only)
}

// KnownColumns are the source columns with typed parsing, in report order.
var KnownColumns = []string{
	ColLocation, ColDate, ColTime, ColPointX, ColPointY, ColAge, ColRace, ColSex,
}

// Quality reports blank and malformed cell counts for every known column.
func Quality(f *Frame) []ColumnQuality {
	out := make([]ColumnQuality, 0, len(KnownColumns))
	for _, col := range KnownColumns {
		q := ColumnQuality{Column: col, Present: f.Has(col)}
		if !q.Present {
			out = append(out, q)
			continue
		}
		for _, inc := range f.Rows {
			raw := strings.TrimSpace(inc.Raw[col])
			if raw == "" {
				q.Blank++
				continue
			}
			switch col {
			case ColDate:
				if inc.Date.IsZero() {
					q.Malformed++
				}
			case ColTime:
				if !inc.HasTime {
					q.Malformed++
				}
			case ColPointX, ColPointY:
				if _, ok := ParseNumber(raw); !ok {
					q.Malformed++
				}
			case ColAge:
				switch {
				case !inc.HasAge:
					q.Malformed++
				case !inc.ValidAge():
					q.OutOfRange++
				}
			}
		}
		out = append(out, q)
	}
	return out
}
