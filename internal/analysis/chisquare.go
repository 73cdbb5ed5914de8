package analysis

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// DefaultAlpha is the conventional significance threshold.
const DefaultAlpha = 0.05

// ErrDegenerateTable is returned for a contingency table with no observations
// or with an empty row or column.
var ErrDegenerateTable = errors.New("degenerate contingency table")

// ChiSquareResult is the outcome of a chi-squared test of independence.
type ChiSquareResult struct {
	Statistic   float64
	DOF         int
	PValue      float64
	Expected    [][]float64
	Alpha       float64
	Significant bool
}

// ChiSquare tests whether the row and column variables of ct are independent.
// With one degree of freedom Yates' continuity correction is applied. A table
// with a single row or column has zero degrees of freedom and yields a zero
// statistic with p = 1.
func ChiSquare(ct CrossTab, alpha float64) (ChiSquareResult, error) {
	n := ct.Total()
	if n == 0 {
		return ChiSquareResult{}, ErrDegenerateTable
	}
	rowTotals := ct.RowTotals()
	colTotals := ct.ColTotals()
	for _, t := range rowTotals {
		if t == 0 {
			return ChiSquareResult{}, ErrDegenerateTable
		}
	}
	for _, t := range colTotals {
		if t == 0 {
			return ChiSquareResult{}, ErrDegenerateTable
		}
	}

	res := ChiSquareResult{
		DOF:      (len(ct.Rows) - 1) * (len(ct.Cols) - 1),
		Expected: make([][]float64, len(ct.Rows)),
		Alpha:    alpha,
	}

	var observed, expected []float64
	for i := range ct.Rows {
		res.Expected[i] = make([]float64, len(ct.Cols))
		for j := range ct.Cols {
			e := float64(rowTotals[i]) * float64(colTotals[j]) / float64(n)
			res.Expected[i][j] = e
			observed = append(observed, float64(ct.Counts[i][j]))
			expected = append(expected, e)
		}
	}

	if res.DOF == 0 {
		res.PValue = 1
		res.Significant = res.PValue < alpha
		return res, nil
	}

	if res.DOF == 1 {
		for k := range observed {
			diff := expected[k] - observed[k]
			observed[k] += math.Copysign(math.Min(0.5, math.Abs(diff)), diff)
		}
	}

	res.Statistic = stat.ChiSquare(observed, expected)
	res.PValue = distuv.ChiSquared{K: float64(res.DOF)}.Survival(res.Statistic)
	res.Significant = res.PValue < alpha
	return res, nil
}
