// Command genmock writes a reproducible synthetic incident CSV for demos and
// test fixtures. The output has the same columns as the city export, so it
// exercises every trends step and the map.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/incidents.csv -rows 2000 -seed 42
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/couchcryptid/shooting-analytics/internal/mockdata"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	def := mockdata.DefaultOptions()
	fs := flag.NewFlagSet("genmock", flag.ContinueOnError)
	out := fs.String("out", "", "output CSV path, - for stdout")
	rows := fs.Int("rows", def.Rows, "number of incidents")
	seed := fs.Uint64("seed", def.Seed, "random seed")
	startYear := fs.Int("start-year", def.StartYear, "first year of incidents")
	years := fs.Int("years", def.Years, "number of years covered")
	missing := fs.Float64("missing-rate", def.MissingRate, "chance an optional cell is blank")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *out == "" {
		fs.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	opts := mockdata.Options{
		Rows:        *rows,
		Seed:        *seed,
		StartYear:   *startYear,
		Years:       *years,
		MissingRate: *missing,
	}

	if *out == "-" {
		return mockdata.Generate(stdout, opts)
	}
	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create %s: %w", *out, err)
	}
	if err := mockdata.Generate(f, opts); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %d incidents to %s\n", opts.Rows, *out)
	return nil
}
