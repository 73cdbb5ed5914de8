// Package mockdata generates reproducible synthetic incident CSVs for demos
// and tests.
package mockdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/couchcryptid/shooting-analytics/internal/domain"
)

// Header is the column layout of generated files.
var Header = []string{
	"objectid", domain.ColLocation, domain.ColDate, domain.ColTime,
	domain.ColPointX, domain.ColPointY, domain.ColAge, domain.ColRace, domain.ColSex, "fatal",
}

// Options control generation.
type Options struct {
	Rows      int
	Seed      uint64
	StartYear int
	Years     int
	// MissingRate is the chance that an optional cell (time, point, age,
	// race, sex) is left blank.
	MissingRate float64
}

// DefaultOptions produce a small multi-year file.
func DefaultOptions() Options {
	return Options{Rows: 500, Seed: 1, StartYear: 2019, Years: 4, MissingRate: 0.03}
}

var (
	streets = []string{"N 5TH ST", "W GIRARD AVE", "KENSINGTON AVE", "N BROAD ST", "MARKET ST", "S 52ND ST", "GERMANTOWN AVE", "WOODLAND AVE"}
	races   = []string{"B", "W", "A", "M"}
	raceCDF = []float64{0.78, 0.95, 0.98, 1}
)

// Philadelphia bounding box.
const (
	minLon, maxLon = -75.28, -74.96
	minLat, maxLat = 39.87, 40.14
)

// Generate writes opts.Rows incidents as CSV to w.
func Generate(w io.Writer, opts Options) error {
	if opts.Rows < 0 || opts.Years <= 0 {
		return fmt.Errorf("invalid options: rows=%d years=%d", opts.Rows, opts.Years)
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed+1))
	start := time.Date(opts.StartYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	days := int(start.AddDate(opts.Years, 0, 0).Sub(start).Hours() / 24)

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for i := 0; i < opts.Rows; i++ {
		date := start.AddDate(0, 0, rng.IntN(days))
		blank := func(v string) string {
			if rng.Float64() < opts.MissingRate {
				return ""
			}
			return v
		}
		rec := []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%d BLOCK %s", (rng.IntN(60)+1)*100, streets[rng.IntN(len(streets))]),
			date.Format("2006-01-02"),
			blank(fmt.Sprintf("%02d:%02d:00", hour(rng), rng.IntN(60))),
			blank(strconv.FormatFloat(minLon+rng.Float64()*(maxLon-minLon), 'f', 6, 64)),
			blank(strconv.FormatFloat(minLat+rng.Float64()*(maxLat-minLat), 'f', 6, 64)),
			blank(strconv.Itoa(age(rng))),
			blank(pick(rng, races, raceCDF)),
			blank(pickSex(rng)),
			strconv.Itoa(boolInt(rng.Float64() < 0.2)),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// hour skews toward evening and night.
func hour(rng *rand.Rand) int {
	if rng.Float64() < 0.6 {
		return (18 + rng.IntN(10)) % domain.HoursPerDay
	}
	return rng.IntN(domain.HoursPerDay)
}

func age(rng *rand.Rand) int {
	a := int(rng.NormFloat64()*9 + 27)
	return max(a, 1)
}

func pickSex(rng *rand.Rand) string {
	if rng.Float64() < 0.9 {
		return "M"
	}
	return "F"
}

func pick(rng *rand.Rand, values []string, cdf []float64) string {
	x := rng.Float64()
	for i, c := range cdf {
		if x < c {
			return values[i]
		}
	}
	return values[len(values)-1]
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
