// Package export writes sweeps and their chart projections to files.
package export

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/san-kum/pvtlab/internal/analysis"
	"github.com/san-kum/pvtlab/internal/chart"
)

// Formats lists the file formats Write understands.
var Formats = []string{"csv", "json", "html", "png", "svg"}

// FormatFromPath infers the format from the file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	for _, f := range Formats {
		if ext == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("export: no format for %q", path)
}

// Write dispatches on format. Tabular formats take res; chart formats take d.
func Write(w io.Writer, format string, res *analysis.Result, d *chart.Description, o HTMLOptions) error {
	switch format {
	case "csv":
		return WriteCSV(w, res)
	case "json":
		return WriteJSON(w, res)
	case "html":
		return WriteHTML(w, d, o)
	case "png":
		width, height := o.size()
		return WritePNG(w, d, width, height)
	case "svg":
		width, height := o.size()
		return WriteSVG(w, d, width, height)
	}
	return fmt.Errorf("export: unknown format %q", format)
}
