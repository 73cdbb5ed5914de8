package pipeline

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/couchcryptid/shooting-analytics/internal/analysis"
)

func printAgeStats(w io.Writer, s analysis.Stats) {
	rows := []struct {
		label string
		value float64
	}{
		{"count", float64(s.Count)},
		{"mean", s.Mean},
		{"std", s.Std},
		{"min", s.Min},
		{"25%", s.Q25},
		{"50%", s.Median},
		{"75%", s.Q75},
		{"max", s.Max},
	}

	fmt.Fprintln(w, "\nAge Statistics:")
	tw := tabwriter.NewWriter(w, 0, 0, 4, ' ', tabwriter.AlignRight)
	for _, r := range rows {
		v := "NaN"
		if !math.IsNaN(r.value) {
			v = strconv.FormatFloat(r.value, 'f', 6, 64)
		}
		fmt.Fprintf(tw, "%s\t%s\t\n", r.label, v)
	}
	tw.Flush()
	fmt.Fprintln(w, "Name: age, dtype: float64")
}

func printContingency(w io.Writer, rowTitle, colTitle string, ct analysis.CrossTab) {
	fmt.Fprintln(w, "Contingency Table for Race and Sex:")
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprint(tw, colTitle)
	for _, c := range ct.Cols {
		fmt.Fprintf(tw, "\t%s", c)
	}
	fmt.Fprintf(tw, "\n%s\n", rowTitle)
	for i, r := range ct.Rows {
		fmt.Fprint(tw, r)
		for _, n := range ct.Counts[i] {
			fmt.Fprintf(tw, "\t%d", n)
		}
		fmt.Fprintln(tw)
	}
	tw.Flush()
}

func printChiSquare(w io.Writer, res analysis.ChiSquareResult) {
	fmt.Fprintln(w, "\nChi-squared test results:")
	fmt.Fprintf(w, "Chi-squared statistic: %.2f\n", res.Statistic)
	fmt.Fprintf(w, "Degrees of freedom: %d\n", res.DOF)
	fmt.Fprintf(w, "P-value: %.15f\n", res.PValue)
	alpha := strconv.FormatFloat(res.Alpha, 'f', -1, 64)
	if res.Significant {
		fmt.Fprintf(w, "There is a statistically significant association between race and sex (p < %s).\n", alpha)
	} else {
		fmt.Fprintf(w, "There is no statistically significant association between race and sex (p >= %s).\n", alpha)
	}
}

func writeSummaryCSV(path string, s analysis.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := analysis.WriteCSV(f, s); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
