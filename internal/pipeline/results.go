package pipeline

import "github.com/couchcryptid/shooting-analytics/internal/analysis"

// Results collects the tables computed during a run. Fields stay nil for steps
// that were skipped or failed.
type Results struct {
	AgeStats     *analysis.Stats
	AgeBins      []analysis.Bin
	AgeGroups    []analysis.Count
	ExcludedRows int
	AgeByYear    []analysis.YearMean
	Summary      *analysis.Summary
	Yearly       []analysis.YearCount
	Monthly      []analysis.Count // chronological by "YYYY-MM"
	Race         []analysis.Count
	Sex          []analysis.Count
	RaceByYear   *analysis.CrossTab
	SexByYear    *analysis.CrossTab
	RaceSex      *analysis.CrossTab
	Independence *analysis.ChiSquareResult
	DayOfWeek    []analysis.Count
	Hours        []analysis.Count // always 24 entries, "0".."23"
}
