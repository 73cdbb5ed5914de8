package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/couchcryptid/shooting-analytics/internal/adapter/csvsource"
	"github.com/couchcryptid/shooting-analytics/internal/domain"
	"github.com/couchcryptid/shooting-analytics/internal/incidentmap"
)

// MapFile is the rendered map written by the map command.
const MapFile = "incidents_map.html"

func newMapCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "map",
		Short: "Render an interactive incident map as HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			applyMapFlags(cmd, a)
			m, err := a.buildMap(cmd)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(a.cfg.OutputDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			path := filepath.Join(a.cfg.OutputDir, MapFile)
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("create %s: %w", path, err)
			}
			if err := incidentmap.Render(f, m); err != nil {
				f.Close()
				return fmt.Errorf("render map: %w", err)
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Map with %d markers saved to %s\n", len(m.Markers), path)
			return nil
		},
	}
	addMapFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "directory for the map page (default $OUTPUT_DIR)")
	return cmd
}

func addMapFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("input", "i", "", "coordinates CSV (default $MAP_INPUT)")
	cmd.Flags().Uint64("seed", 0, "marker color seed, 0 varies per run (default $MAP_SEED)")
	cmd.Flags().Float64("divider", domain.DefaultDividerLongitude, "longitude dividing gray from green/red markers (default $DIVIDER_LONGITUDE)")
	cmd.Flags().Int("zoom", incidentmap.DefaultZoom, "initial map zoom level (default $MAP_ZOOM)")
}

func applyMapFlags(cmd *cobra.Command, a *app) {
	stringFlag(cmd, "input", &a.cfg.MapInput)
	stringFlag(cmd, "output", &a.cfg.OutputDir)
	if cmd.Flags().Changed("seed") {
		a.cfg.MapSeed, _ = cmd.Flags().GetUint64("seed")
	}
	if cmd.Flags().Changed("zoom") {
		a.cfg.MapZoom, _ = cmd.Flags().GetInt("zoom")
	}
	if cmd.Flags().Changed("divider") {
		a.cfg.DividerLongitude, _ = cmd.Flags().GetFloat64("divider")
	}
}

// buildMap loads the coordinates CSV, geocodes missing points when enabled,
// and places the markers.
func (a *app) buildMap(cmd *cobra.Command) (incidentmap.Map, error) {
	cfg := a.cfg
	frame, err := csvsource.Load(cfg.MapInput)
	if err != nil {
		return incidentmap.Map{}, err
	}
	a.metrics.RowsLoaded.Add(float64(frame.Len()))

	if g := a.geocoder(); g != nil {
		filled := incidentmap.FillMissingPoints(cmd.Context(), frame, g, cfg.MapboxRegion, a.logger)
		a.logger.Info("missing points geocoded", "filled", filled)
	}

	m, err := incidentmap.Build(frame, domain.NewColorAssigner(cfg.DividerLongitude, cfg.MapSeed), cfg.MapZoom)
	if err != nil {
		return incidentmap.Map{}, fmt.Errorf("build map from %s: %w", cfg.MapInput, err)
	}
	a.metrics.RowsDropped.WithLabelValues("no_point").Add(float64(m.Dropped))
	a.metrics.MarkersRendered.Add(float64(len(m.Markers)))
	a.logger.Info("map built",
		"input", cfg.MapInput,
		"markers", len(m.Markers),
		"dropped", m.Dropped,
		"center_lat", m.Center.Lat,
		"center_lon", m.Center.Lon,
	)
	return m, nil
}
