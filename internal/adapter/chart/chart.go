// Package chart renders analysis results to PNG files with gonum/plot.
package chart

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/couchcryptid/shooting-analytics/internal/analysis"
)

// Meta describes the decoration of a chart.
type Meta struct {
	Title        string
	XLabel       string
	YLabel       string
	Color        string // named color, see palette
	Grid         bool
	RotateLabels bool
	Width        vg.Length
	Height       vg.Length
}

// Series is one named line of a multi-line chart.
type Series struct {
	Name   string
	Values []float64
}

var palette = map[string]color.RGBA{
	"skyblue":   {R: 135, G: 206, B: 235, A: 255},
	"coral":     {R: 255, G: 127, B: 80, A: 255},
	"darkblue":  {R: 0, G: 0, B: 139, A: 255},
	"steelblue": {R: 31, G: 119, B: 180, A: 255},
	"orange":    {R: 255, G: 165, B: 0, A: 255},
	"green":     {R: 0, G: 128, B: 0, A: 255},
	"purple":    {R: 128, G: 0, B: 128, A: 255},
}

// Default figure sizes.
const (
	defaultWidth  = 10 * vg.Inch
	defaultHeight = 6 * vg.Inch
)

// Renderer writes charts as PNG files into a directory.
type Renderer struct {
	dir string
}

// NewRenderer creates a renderer writing into dir, creating it if needed.
func NewRenderer(dir string) (*Renderer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create chart dir: %w", err)
	}
	return &Renderer{dir: dir}, nil
}

// Histogram draws pre-computed bins.
func (r *Renderer) Histogram(file string, meta Meta, bins []analysis.Bin) (string, error) {
	if len(bins) == 0 {
		return "", analysis.ErrNoData
	}
	p := newPlot(meta)

	hbins := make([]plotter.HistogramBin, len(bins))
	for i, b := range bins {
		hbins[i] = plotter.HistogramBin{Min: b.Lo, Max: b.Hi, Weight: float64(b.Count)}
	}
	h := &plotter.Histogram{
		Bins:      hbins,
		Width:     bins[0].Hi - bins[0].Lo,
		FillColor: colorOf(meta.Color),
		LineStyle: plotter.DefaultLineStyle,
	}
	p.Add(h)
	return r.save(p, meta, file)
}

// Bar draws one bar per label.
func (r *Renderer) Bar(file string, meta Meta, labels []string, values []float64) (string, error) {
	if len(values) == 0 || len(labels) != len(values) {
		return "", fmt.Errorf("bar chart %s: %d labels for %d values", file, len(labels), len(values))
	}
	p := newPlot(meta)

	bars, err := plotter.NewBarChart(plotter.Values(values), barWidth(len(values), meta))
	if err != nil {
		return "", fmt.Errorf("bar chart %s: %w", file, err)
	}
	bars.Color = colorOf(meta.Color)
	bars.LineStyle.Width = vg.Length(0)
	p.Add(bars)
	p.NominalX(labels...)
	return r.save(p, meta, file)
}

// Line draws a single series against categorical x labels.
func (r *Renderer) Line(file string, meta Meta, labels []string, values []float64) (string, error) {
	return r.MultiLine(file, meta, labels, []Series{{Values: values}})
}

// MultiLine draws several series sharing the same x labels, with a legend
// when more than one series is named.
func (r *Renderer) MultiLine(file string, meta Meta, labels []string, series []Series) (string, error) {
	if len(labels) == 0 || len(series) == 0 {
		return "", analysis.ErrNoData
	}
	p := newPlot(meta)

	for i, s := range series {
		if len(s.Values) != len(labels) {
			return "", fmt.Errorf("line chart %s: series %q has %d values for %d labels", file, s.Name, len(s.Values), len(labels))
		}
		pts := make(plotter.XYs, len(s.Values))
		for j, v := range s.Values {
			pts[j] = plotter.XY{X: float64(j), Y: v}
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return "", fmt.Errorf("line chart %s: %w", file, err)
		}
		c := colorOf(meta.Color)
		if len(series) > 1 {
			c = plotutil.Color(i)
		}
		line.Color = c
		line.Width = vg.Points(1.5)
		points.Color = c
		points.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		if s.Name != "" {
			p.Legend.Add(s.Name, line, points)
		}
	}
	p.Legend.Top = true
	p.NominalX(labels...)
	return r.save(p, meta, file)
}

func newPlot(meta Meta) *plot.Plot {
	p := plot.New()
	p.Title.Text = meta.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = meta.XLabel
	p.Y.Label.Text = meta.YLabel
	p.Y.Min = 0
	if meta.RotateLabels {
		p.X.Tick.Label.Rotation = math.Pi / 4
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}
	if meta.Grid {
		p.Add(plotter.NewGrid())
	}
	return p
}

func (r *Renderer) save(p *plot.Plot, meta Meta, file string) (string, error) {
	w, h := meta.Width, meta.Height
	if w == 0 {
		w = defaultWidth
	}
	if h == 0 {
		h = defaultHeight
	}
	path := filepath.Join(r.dir, file)
	if err := p.Save(w, h, path); err != nil {
		return "", fmt.Errorf("save chart %s: %w", file, err)
	}
	return path, nil
}

func barWidth(n int, meta Meta) vg.Length {
	w := meta.Width
	if w == 0 {
		w = defaultWidth
	}
	width := w * 0.6 / vg.Length(n)
	if width > vg.Points(40) {
		width = vg.Points(40)
	}
	return width
}

func colorOf(name string) color.Color {
	if c, ok := palette[name]; ok {
		return c
	}
	return palette["steelblue"]
}
