// Package csvsource loads incident CSV exports into a domain.Frame.
package csvsource

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/couchcryptid/shooting-analytics/internal/domain"
)

// headerAliases maps alternative spellings onto the canonical column names.
var headerAliases = map[string]string{
	"date": domain.ColDate,
}

// Load opens and reads the CSV file at path.
func Load(path string) (*domain.Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	frame, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return frame, nil
}

// Read parses CSV content with a header row. Every cell is read as text and
// typed later by domain.ParseIncident, so a malformed cell never fails the load.
func Read(r io.Reader) (*domain.Frame, error) {
	df := dataframe.ReadCSV(r,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read csv: %w", df.Err)
	}

	records := df.Records()
	if len(records) == 0 {
		return nil, fmt.Errorf("read csv: no header row")
	}

	header := canonicalHeader(records[0])
	rows := make([]domain.Incident, 0, len(records)-1)
	for _, rec := range records[1:] {
		raw := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(rec) {
				raw[name] = rec[i]
			}
		}
		rows = append(rows, domain.ParseIncident(raw))
	}
	return domain.NewFrame(header, rows), nil
}

// canonicalHeader trims names, strips a UTF-8 byte order mark and applies
// headerAliases when the canonical name is not already present.
func canonicalHeader(names []string) []string {
	out := make([]string, len(names))
	seen := map[string]bool{}
	for i, n := range names {
		n = strings.TrimSpace(strings.TrimPrefix(n, "\ufeff"))
		out[i] = n
		seen[n] = true
	}
	for i, n := range out {
		if canon, ok := headerAliases[strings.ToLower(n)]; ok && !seen[canon] {
			out[i] = canon
			seen[canon] = true
		}
	}
	return out
}
