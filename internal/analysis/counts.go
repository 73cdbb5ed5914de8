package analysis

import (
	"sort"

	"github.com/couchcryptid/shooting-analytics/internal/domain"
)

// Count is a labelled frequency.
type Count struct {
	Label string
	N     int
}

// CountBy tallies values, most frequent first with ties broken by label.
func CountBy(values []string) []Count {
	tally := map[string]int{}
	for _, v := range values {
		tally[v]++
	}
	out := make([]Count, 0, len(tally))
	for label, n := range tally {
		out = append(out, Count{Label: label, N: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// CountOrdered tallies values against a fixed label order. Labels with no
// occurrences are reported with zero; values outside order are ignored.
func CountOrdered(values []string, order []string) []Count {
	tally := map[string]int{}
	for _, v := range values {
		tally[v]++
	}
	out := make([]Count, len(order))
	for i, label := range order {
		out[i] = Count{Label: label, N: tally[label]}
	}
	return out
}

// YearCount is the number of incidents in one year.
type YearCount struct {
	Year int
	N    int
}

// CountByYear tallies years in ascending order, ignoring zero (missing) years.
func CountByYear(years []int) []YearCount {
	tally := map[int]int{}
	for _, y := range years {
		if y != 0 {
			tally[y]++
		}
	}
	out := make([]YearCount, 0, len(tally))
	for y, n := range tally {
		out = append(out, YearCount{Year: y, N: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// YearMean is the mean of a measure within one year.
type YearMean struct {
	Year int
	Mean float64
	N    int
}

// MeanByYear averages values grouped by the parallel years slice, ascending by
// year. Entries with a zero year are ignored.
func MeanByYear(years []int, values []float64) []YearMean {
	type acc struct {
		sum float64
		n   int
	}
	groups := map[int]*acc{}
	for i, y := range years {
		if y == 0 || i >= len(values) {
			continue
		}
		a, ok := groups[y]
		if !ok {
			a = &acc{}
			groups[y] = a
		}
		a.sum += values[i]
		a.n++
	}
	out := make([]YearMean, 0, len(groups))
	for y, a := range groups {
		out = append(out, YearMean{Year: y, Mean: a.sum / float64(a.n), N: a.n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// AgeGroupCounts tallies valid ages per age group in bucket order.
func AgeGroupCounts(ages []float64) []Count {
	groups := make([]string, 0, len(ages))
	for _, a := range ages {
		if g, ok := domain.AgeGroup(a); ok {
			groups = append(groups, g)
		}
	}
	return CountOrdered(groups, domain.AgeGroups)
}

// WeekdayCounts tallies weekday names in Monday-first order.
func WeekdayCounts(days []string) []Count {
	return CountOrdered(days, domain.Weekdays)
}

// HourCounts tallies hours of day into all 24 slots; out-of-range hours are ignored.
func HourCounts(hours []int) [domain.HoursPerDay]int {
	var out [domain.HoursPerDay]int
	for _, h := range hours {
		if h >= 0 && h < domain.HoursPerDay {
			out[h]++
		}
	}
	return out
}

// Total sums the counts.
func Total(counts []Count) int {
	n := 0
	for _, c := range counts {
		n += c.N
	}
	return n
}
