package analysis

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/couchcryptid/shooting-analytics/internal/domain"
)

// SummaryStats are the row labels of a Summary, in output order.
var SummaryStats = []string{"count", "unique", "top", "freq", "mean", "std", "min", "25%", "50%", "75%", "max"}

const timestampLayout = "2006-01-02 15:04:05"

// Summary is a whole-table description: one column per frame column and one
// row per entry of SummaryStats. Cells that do not apply to a column's kind
// are empty.
type Summary struct {
	Columns []string
	Cells   map[string]map[string]string // column -> stat -> value
}

// Value returns the cell for column col and statistic name st.
func (s Summary) Value(col, st string) string {
	return s.Cells[col][st]
}

// Summarize describes every column of the frame. Numeric columns report count
// and the distribution statistics; categorical columns report count, unique,
// top and freq; temporal columns additionally report min and max.
func Summarize(f *domain.Frame) (Summary, error) {
	s := Summary{Cells: map[string]map[string]string{}}
	for _, name := range f.Columns() {
		col, err := f.Column(name)
		if err != nil {
			return Summary{}, fmt.Errorf("summarize %s: %w", name, err)
		}
		s.Columns = append(s.Columns, name)
		s.Cells[name] = describeColumn(col)
	}
	return s, nil
}

func describeColumn(col domain.Column) map[string]string {
	cells := map[string]string{"count": strconv.Itoa(col.Count())}

	switch col.Kind {
	case domain.KindNumeric:
		st, err := Describe(col.Numbers)
		if err != nil {
			return cells
		}
		cells["mean"] = formatFloat(st.Mean)
		cells["std"] = formatFloat(st.Std)
		cells["min"] = formatFloat(st.Min)
		cells["25%"] = formatFloat(st.Q25)
		cells["50%"] = formatFloat(st.Median)
		cells["75%"] = formatFloat(st.Q75)
		cells["max"] = formatFloat(st.Max)
	case domain.KindTemporal:
		labels := make([]string, len(col.Times))
		for i, t := range col.Times {
			labels[i] = t.Format(timestampLayout)
		}
		addCategorical(cells, labels)
		if len(col.Times) > 0 {
			lo, hi := col.Times[0], col.Times[0]
			for _, t := range col.Times[1:] {
				lo = earlier(lo, t)
				if t.After(hi) {
					hi = t
				}
			}
			cells["min"] = lo.Format(timestampLayout)
			cells["max"] = hi.Format(timestampLayout)
		}
	default:
		addCategorical(cells, col.Strings)
	}
	return cells
}

func addCategorical(cells map[string]string, values []string) {
	if len(values) == 0 {
		return
	}
	counts := CountBy(values)
	cells["unique"] = strconv.Itoa(len(counts))
	cells["top"] = counts[0].Label
	cells["freq"] = strconv.Itoa(counts[0].N)
}

func earlier(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// WriteCSV writes the summary with statistics as rows and columns as columns,
// the first header cell left blank for the row labels.
func WriteCSV(w io.Writer, s Summary) error {
	cw := csv.NewWriter(w)
	header := append([]string{""}, s.Columns...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	for _, st := range SummaryStats {
		row := make([]string, 0, len(s.Columns)+1)
		row = append(row, st)
		for _, col := range s.Columns {
			row = append(row, s.Value(col, st))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write summary row %s: %w", st, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
