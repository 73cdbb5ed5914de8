package analysis

import "sort"

// CrossTab is a two-way frequency table. Counts[i][j] is the number of
// observations with row label Rows[i] and column label Cols[j].
type CrossTab struct {
	Rows   []string
	Cols   []string
	Counts [][]int
}

// NewCrossTab tabulates paired observations. Labels are sorted and every cell
// is present, zero when the pair never occurs. Pairs with an empty label on
// either side are skipped.
func NewCrossTab(rowVals, colVals []string) CrossTab {
	rowIdx := map[string]int{}
	colIdx := map[string]int{}
	for i := range rowVals {
		if i >= len(colVals) || rowVals[i] == "" || colVals[i] == "" {
			continue
		}
		rowIdx[rowVals[i]] = 0
		colIdx[colVals[i]] = 0
	}

	ct := CrossTab{Rows: sortedKeys(rowIdx), Cols: sortedKeys(colIdx)}
	for i, r := range ct.Rows {
		rowIdx[r] = i
	}
	for j, c := range ct.Cols {
		colIdx[c] = j
	}

	ct.Counts = make([][]int, len(ct.Rows))
	for i := range ct.Counts {
		ct.Counts[i] = make([]int, len(ct.Cols))
	}
	for i := range rowVals {
		if i >= len(colVals) || rowVals[i] == "" || colVals[i] == "" {
			continue
		}
		ct.Counts[rowIdx[rowVals[i]]][colIdx[colVals[i]]]++
	}
	return ct
}

// RowTotals returns the marginal total of every row.
func (ct CrossTab) RowTotals() []int {
	out := make([]int, len(ct.Rows))
	for i, row := range ct.Counts {
		for _, n := range row {
			out[i] += n
		}
	}
	return out
}

// ColTotals returns the marginal total of every column.
func (ct CrossTab) ColTotals() []int {
	out := make([]int, len(ct.Cols))
	for _, row := range ct.Counts {
		for j, n := range row {
			out[j] += n
		}
	}
	return out
}

// Total returns the number of tabulated observations.
func (ct CrossTab) Total() int {
	n := 0
	for _, t := range ct.RowTotals() {
		n += t
	}
	return n
}

// Col returns the counts of column j down every row.
func (ct CrossTab) Col(j int) []int {
	out := make([]int, len(ct.Rows))
	for i, row := range ct.Counts {
		out[i] = row[j]
	}
	return out
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
