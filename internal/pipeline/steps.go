package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/plot/vg"

	"github.com/couchcryptid/shooting-analytics/internal/adapter/chart"
	"github.com/couchcryptid/shooting-analytics/internal/adapter/workbook"
	"github.com/couchcryptid/shooting-analytics/internal/analysis"
	"github.com/couchcryptid/shooting-analytics/internal/domain"
)

// Step names.
const (
	StepAgeProfile     = "age_profile"
	StepDeriveDateTime = "derive_datetime"
	StepExcludeYear    = "exclude_year"
	StepAgeByYear      = "age_by_year"
	StepSummary        = "summary_statistics"
	StepYearlyCounts   = "yearly_counts"
	StepMonthlyCounts  = "monthly_counts"
	StepRaceCounts     = "race_counts"
	StepSexCounts      = "sex_counts"
	StepRaceByYear     = "race_by_year"
	StepSexByYear      = "sex_by_year"
	StepRaceSexAssoc   = "race_sex_independence"
	StepDayOfWeek      = "day_of_week"
	StepHourOfDay      = "hour_of_day"
)

// Output files.
const (
	FileAgeHistogram = "age_distribution.png"
	FileAgeGroups    = "shootings_by_age_group.png"
	FileAgeByYear    = "avg_age_by_year.png"
	FileSummaryCSV   = "summary_statistics.csv"
	FileSummaryXLSX  = "summary_statistics.xlsx"
	FileYearly       = "yearly_shootings.png"
	FileMonthly      = "monthly_shootings.png"
	FileRace         = "shootings_by_race.png"
	FileSex          = "shootings_by_sex.png"
	FileRaceByYear   = "yearly_shootings_by_race.png"
	FileSexByYear    = "yearly_shootings_by_sex.png"
	FileRaceSexXLSX  = "contingency_race_sex.xlsx"
	FileDayOfWeek    = "shootings_by_dayofweek.png"
	FileHourOfDay    = "shootings_by_hour.png"
)

// StepFunc is the body of a step.
type StepFunc func(ctx context.Context, env *Env) ([]string, error)

type funcStep struct {
	name     string
	requires []string
	provides []string
	run      StepFunc
}

func (s funcStep) Name() string       { return s.name }
func (s funcStep) Requires() []string { return s.requires }
func (s funcStep) Provides() []string { return s.provides }
func (s funcStep) Run(ctx context.Context, env *Env) ([]string, error) {
	return s.run(ctx, env)
}

// NewStep builds a Step from a function.
func NewStep(name string, requires []string, run StepFunc) Step {
	return funcStep{name: name, requires: requires, run: run}
}

// NewDerivingStep builds a Step that adds the provides columns to the frame.
func NewDerivingStep(name string, requires, provides []string, run StepFunc) Step {
	return funcStep{name: name, requires: requires, provides: provides, run: run}
}

// DefaultSteps returns the trends analysis in run order. Derivation steps come
// before the steps that read their columns.
func DefaultSteps() []Step {
	return []Step{
		NewDerivingStep(StepAgeProfile, []string{domain.ColAge}, []string{domain.ColAgeGroup}, ageProfile),
		NewDerivingStep(StepDeriveDateTime, []string{domain.ColDate, domain.ColTime}, dateTimeColumns, deriveDateTime),
		NewStep(StepExcludeYear, []string{domain.ColYear}, excludeYear),
		NewStep(StepAgeByYear, []string{domain.ColAge, domain.ColYear}, ageByYear),
		NewStep(StepSummary, nil, summaryStatistics),
		NewStep(StepYearlyCounts, []string{domain.ColYear}, yearlyCounts),
		NewStep(StepMonthlyCounts, []string{domain.ColYearMonth}, monthlyCounts),
		NewStep(StepRaceCounts, []string{domain.ColRace}, categoryCounts(domain.ColRace)),
		NewStep(StepSexCounts, []string{domain.ColSex}, categoryCounts(domain.ColSex)),
		NewStep(StepRaceByYear, []string{domain.ColRace, domain.ColYear}, categoryByYear(domain.ColRace)),
		NewStep(StepSexByYear, []string{domain.ColSex, domain.ColYear}, categoryByYear(domain.ColSex)),
		NewStep(StepRaceSexAssoc, []string{domain.ColRace, domain.ColSex}, raceSexIndependence),
		NewDerivingStep(StepDayOfWeek, []string{domain.ColDateTime}, []string{domain.ColDayOfWeek}, dayOfWeek),
		NewDerivingStep(StepHourOfDay, []string{domain.ColTime}, []string{domain.ColHour}, hourOfDay),
	}
}

// SelectSteps returns the named default steps in run order. An empty name list
// selects every step.
func SelectSteps(names ...string) ([]Step, error) {
	all := DefaultSteps()
	if len(names) == 0 {
		return all, nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var out []Step
	for _, s := range all {
		if want[s.Name()] {
			out = append(out, s)
			delete(want, s.Name())
		}
	}
	if len(want) > 0 {
		unknown := make([]string, 0, len(want))
		for n := range want {
			unknown = append(unknown, n)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown step(s): %s", strings.Join(unknown, ", "))
	}
	return out, nil
}

func ageProfile(_ context.Context, env *Env) ([]string, error) {
	var ages []float64
	for _, inc := range env.Frame.Rows {
		if inc.ValidAge() {
			ages = append(ages, inc.Age)
		}
	}
	stats, err := analysis.Describe(ages)
	if err != nil {
		return nil, fmt.Errorf("no ages in [%d, %d]: %w", domain.MinAge, domain.MaxAge, err)
	}
	env.Results.AgeStats = &stats
	printAgeStats(env.Out, stats)

	env.Frame.Apply(domain.DeriveAgeGroup)
	env.Frame.AddColumn(domain.ColAgeGroup)

	bins, err := analysis.Histogram(ages, env.Settings.HistogramBins)
	if err != nil {
		return nil, fmt.Errorf("age histogram: %w", err)
	}
	env.Results.AgeBins = bins
	hist, err := env.Charts.Histogram(FileAgeHistogram, chart.Meta{
		Title:  "Distribution of Age in Shootings",
		XLabel: "Age",
		YLabel: "Frequency",
		Color:  "skyblue",
		Grid:   true,
	}, bins)
	if err != nil {
		return nil, err
	}

	groups := analysis.AgeGroupCounts(ages)
	env.Results.AgeGroups = groups
	labels, values := countSeries(groups)
	bar, err := env.Charts.Bar(FileAgeGroups, chart.Meta{
		Title:        "Shootings by Age Group",
		XLabel:       "Age Group",
		YLabel:       "Number of Shootings",
		Color:        "coral",
		RotateLabels: true,
	}, labels, values)
	if err != nil {
		return []string{hist}, err
	}
	return []string{hist, bar}, nil
}

var dateTimeColumns = []string{domain.ColDateTime, domain.ColYear, domain.ColMonth, domain.ColYearMonth}

func deriveDateTime(_ context.Context, env *Env) ([]string, error) {
	env.Frame.Apply(domain.DeriveDateTime)
	for _, c := range dateTimeColumns {
		env.Frame.AddColumn(c)
	}

	valid := 0
	for _, inc := range env.Frame.Rows {
		if !inc.DateTime.IsZero() {
			valid++
		}
	}
	env.Logger.Info("datetime derived", "rows", env.Frame.Len(), "valid", valid)
	return nil, nil
}

func excludeYear(_ context.Context, env *Env) ([]string, error) {
	cutoff := env.Settings.ExcludeYear
	if cutoff == 0 {
		env.Logger.Debug("year exclusion disabled")
		return nil, nil
	}
	dropped := env.Frame.Filter(func(inc domain.Incident) bool { return inc.Year != cutoff })
	env.Results.ExcludedRows = dropped
	env.Metrics.RowsDropped.WithLabelValues("excluded_year").Add(float64(dropped))
	env.Logger.Info("excluded incomplete year", "year", cutoff, "rows", dropped)
	return nil, nil
}

func ageByYear(_ context.Context, env *Env) ([]string, error) {
	var years []int
	var ages []float64
	for _, inc := range env.Frame.Rows {
		if inc.ValidAge() && inc.Year != 0 {
			years = append(years, inc.Year)
			ages = append(ages, inc.Age)
		}
	}
	means := analysis.MeanByYear(years, ages)
	if len(means) == 0 {
		return nil, fmt.Errorf("no rows with both a valid age and a year: %w", analysis.ErrNoData)
	}
	env.Results.AgeByYear = means

	labels := make([]string, len(means))
	values := make([]float64, len(means))
	for i, m := range means {
		labels[i] = strconv.Itoa(m.Year)
		values[i] = m.Mean
	}
	path, err := env.Charts.Line(FileAgeByYear, chart.Meta{
		Title:  "Average Age of Shooting Victims by Year",
		XLabel: "Year",
		YLabel: "Average Age",
		Color:  "darkblue",
		Grid:   true,
	}, labels, values)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func summaryStatistics(_ context.Context, env *Env) ([]string, error) {
	s, err := analysis.Summarize(env.Frame)
	if err != nil {
		return nil, err
	}
	env.Results.Summary = &s

	csvPath := filepath.Join(env.Settings.OutputDir, FileSummaryCSV)
	if err := writeSummaryCSV(csvPath, s); err != nil {
		return nil, err
	}
	xlsxPath := filepath.Join(env.Settings.OutputDir, FileSummaryXLSX)
	if err := workbook.WriteSummary(xlsxPath, s); err != nil {
		return []string{csvPath}, err
	}
	fmt.Fprintf(env.Out, "Summary statistics saved to %s\n", csvPath)
	return []string{csvPath, xlsxPath}, nil
}

func yearlyCounts(_ context.Context, env *Env) ([]string, error) {
	years := make([]int, 0, env.Frame.Len())
	for _, inc := range env.Frame.Rows {
		years = append(years, inc.Year)
	}
	counts := analysis.CountByYear(years)
	if len(counts) == 0 {
		return nil, fmt.Errorf("no rows with a year: %w", analysis.ErrNoData)
	}
	env.Results.Yearly = counts

	labels := make([]string, len(counts))
	values := make([]float64, len(counts))
	for i, c := range counts {
		labels[i] = strconv.Itoa(c.Year)
		values[i] = float64(c.N)
	}
	path, err := env.Charts.Line(FileYearly, chart.Meta{
		Title:  "Yearly Philadelphia Shootings",
		XLabel: "Year",
		YLabel: "Number of Shootings",
		Grid:   true,
	}, labels, values)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func monthlyCounts(_ context.Context, env *Env) ([]string, error) {
	var periods []string
	for _, inc := range env.Frame.Rows {
		if inc.YearMonth != "" {
			periods = append(periods, inc.YearMonth)
		}
	}
	counts := analysis.CountBy(periods)
	if len(counts) == 0 {
		return nil, fmt.Errorf("no rows with a year-month: %w", analysis.ErrNoData)
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Label < counts[j].Label })
	env.Results.Monthly = counts

	labels, values := countSeries(counts)
	path, err := env.Charts.Line(FileMonthly, chart.Meta{
		Title:        "Monthly Philadelphia Shootings",
		XLabel:       "Year-Month",
		YLabel:       "Number of Shootings",
		Grid:         true,
		RotateLabels: true,
		Width:        12 * vg.Inch,
	}, labels, values)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

// categoryMeta holds the per-column chart wording.
type categoryMeta struct {
	title, label, color, countFile, yearlyFile, yearlyTitle string
}

var categories = map[string]categoryMeta{
	domain.ColRace: {
		title: "Shootings by Race", label: "Race", color: "steelblue",
		countFile: FileRace, yearlyFile: FileRaceByYear, yearlyTitle: "Yearly Shooting Trends by Race",
	},
	domain.ColSex: {
		title: "Shootings by Sex", label: "Sex", color: "orange",
		countFile: FileSex, yearlyFile: FileSexByYear, yearlyTitle: "Yearly Shooting Trends by Sex",
	},
}

func categoryCounts(col string) func(context.Context, *Env) ([]string, error) {
	meta := categories[col]
	return func(_ context.Context, env *Env) ([]string, error) {
		counts := analysis.CountBy(categoryValues(env.Frame, col))
		if len(counts) == 0 {
			return nil, fmt.Errorf("no %s values: %w", col, analysis.ErrNoData)
		}
		if col == domain.ColRace {
			env.Results.Race = counts
		} else {
			env.Results.Sex = counts
		}

		labels, values := countSeries(counts)
		path, err := env.Charts.Bar(meta.countFile, chart.Meta{
			Title:        meta.title,
			XLabel:       meta.label,
			YLabel:       "Number of Shootings",
			Color:        meta.color,
			RotateLabels: true,
			Width:        8 * vg.Inch,
		}, labels, values)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}
}

func categoryByYear(col string) func(context.Context, *Env) ([]string, error) {
	meta := categories[col]
	return func(_ context.Context, env *Env) ([]string, error) {
		var years, values []string
		for _, inc := range env.Frame.Rows {
			v := categoryValue(inc, col)
			if inc.Year == 0 || v == "" {
				continue
			}
			years = append(years, strconv.Itoa(inc.Year))
			values = append(values, v)
		}
		ct := analysis.NewCrossTab(years, values)
		if ct.Total() == 0 {
			return nil, fmt.Errorf("no rows with both %s and a year: %w", col, analysis.ErrNoData)
		}
		if col == domain.ColRace {
			env.Results.RaceByYear = &ct
		} else {
			env.Results.SexByYear = &ct
		}

		series := make([]chart.Series, len(ct.Cols))
		for j, name := range ct.Cols {
			column := ct.Col(j)
			vals := make([]float64, len(column))
			for i, n := range column {
				vals[i] = float64(n)
			}
			series[j] = chart.Series{Name: name, Values: vals}
		}
		path, err := env.Charts.MultiLine(meta.yearlyFile, chart.Meta{
			Title:  meta.yearlyTitle,
			XLabel: "Year",
			YLabel: "Number of Shootings",
			Grid:   true,
			Width:  12 * vg.Inch,
			Height: 8 * vg.Inch,
		}, ct.Rows, series)
		if err != nil {
			return nil, err
		}
		return []string{path}, nil
	}
}

func raceSexIndependence(_ context.Context, env *Env) ([]string, error) {
	var races, sexes []string
	for _, inc := range env.Frame.Rows {
		races = append(races, inc.Race)
		sexes = append(sexes, inc.Sex)
	}
	ct := analysis.NewCrossTab(races, sexes)
	env.Results.RaceSex = &ct
	printContingency(env.Out, domain.ColRace, domain.ColSex, ct)

	res, err := analysis.ChiSquare(ct, env.Settings.Alpha)
	if err != nil {
		return nil, fmt.Errorf("chi-squared test: %w", err)
	}
	env.Results.Independence = &res
	printChiSquare(env.Out, res)

	path := filepath.Join(env.Settings.OutputDir, FileRaceSexXLSX)
	if err := workbook.WriteContingency(path, domain.ColRace, domain.ColSex, ct, res); err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func dayOfWeek(_ context.Context, env *Env) ([]string, error) {
	env.Frame.Apply(domain.DeriveDayOfWeek)
	env.Frame.AddColumn(domain.ColDayOfWeek)

	var days []string
	for _, inc := range env.Frame.Rows {
		if inc.DayOfWeek != "" {
			days = append(days, inc.DayOfWeek)
		}
	}
	if len(days) == 0 {
		return nil, fmt.Errorf("no rows with a valid datetime: %w", analysis.ErrNoData)
	}
	counts := analysis.WeekdayCounts(days)
	env.Results.DayOfWeek = counts

	labels, values := countSeries(counts)
	path, err := env.Charts.Bar(FileDayOfWeek, chart.Meta{
		Title:        "Shootings by Day of Week",
		XLabel:       "Day of Week",
		YLabel:       "Number of Shootings",
		Color:        "green",
		RotateLabels: true,
		Width:        8 * vg.Inch,
	}, labels, values)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func hourOfDay(_ context.Context, env *Env) ([]string, error) {
	useDateTime := env.Frame.Has(domain.ColDateTime)
	env.Frame.Apply(func(inc domain.Incident) domain.Incident {
		return domain.DeriveHour(inc, useDateTime)
	})
	env.Frame.AddColumn(domain.ColHour)

	var hours []int
	for _, inc := range env.Frame.Rows {
		if inc.HasHour {
			hours = append(hours, inc.Hour)
		}
	}
	slots := analysis.HourCounts(hours)
	counts := make([]analysis.Count, len(slots))
	for h, n := range slots {
		counts[h] = analysis.Count{Label: strconv.Itoa(h), N: n}
	}
	env.Results.Hours = counts

	labels, values := countSeries(counts)
	path, err := env.Charts.Bar(FileHourOfDay, chart.Meta{
		Title:  "Shootings by Hour of Day",
		XLabel: "Hour of Day",
		YLabel: "Number of Shootings",
		Color:  "purple",
		Grid:   true,
	}, labels, values)
	if err != nil {
		return nil, err
	}
	return []string{path}, nil
}

func countSeries(counts []analysis.Count) ([]string, []float64) {
	labels := make([]string, len(counts))
	values := make([]float64, len(counts))
	for i, c := range counts {
		labels[i] = c.Label
		values[i] = float64(c.N)
	}
	return labels, values
}

func categoryValues(f *domain.Frame, col string) []string {
	var out []string
	for _, inc := range f.Rows {
		if v := categoryValue(inc, col); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func categoryValue(inc domain.Incident, col string) string {
	if col == domain.ColRace {
		return inc.Race
	}
	return inc.Sex
}
