package incidentmap

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
)

//go:embed map.html
var mapHTML string

var page = template.Must(template.New("map").Parse(mapHTML))

type pageData struct {
	Title   string
	Center  template.JS
	Zoom    int
	Radius  int
	Opacity float64
	Markers template.JS
}

// Render writes m as a standalone HTML document.
func Render(w io.Writer, m Map) error {
	center, err := marshalTemplateJS([2]float64{m.Center.Lat, m.Center.Lon})
	if err != nil {
		return fmt.Errorf("encode center: %w", err)
	}
	markers := m.Markers
	if markers == nil {
		markers = []Marker{}
	}
	payload, err := marshalTemplateJS(markers)
	if err != nil {
		return fmt.Errorf("encode markers: %w", err)
	}

	return page.Execute(w, pageData{
		Title:   m.Title,
		Center:  center,
		Zoom:    m.Zoom,
		Radius:  m.Radius,
		Opacity: m.Opacity,
		Markers: payload,
	})
}

// RenderBytes renders m into memory.
func RenderBytes(m Map) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// marshalTemplateJS encodes v as JSON and marks it safe for a script context.
// encoding/json escapes <, > and & so the payload cannot close the script tag.
func marshalTemplateJS(v any) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}
