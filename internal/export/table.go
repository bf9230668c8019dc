package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/san-kum/pvtlab/internal/analysis"
	"github.com/san-kum/pvtlab/internal/pvt"
)

// Header returns the CSV column names of res: the swept parameter, the other
// inputs, the result, each extra and the failure reason.
func Header(res *analysis.Result) []string {
	h := []string{res.Param}
	for _, in := range res.Inputs {
		if in != res.Param {
			h = append(h, in)
		}
	}
	h = append(h, analysis.ResultKey)
	h = append(h, res.Extras...)
	return append(h, "reason")
}

func formatValue(v pvt.Value) string {
	if !v.OK {
		return ""
	}
	return strconv.FormatFloat(v.V, 'f', 5, 64)
}

// WriteCSV writes one row per grid point. Absent values are empty cells.
func WriteCSV(w io.Writer, res *analysis.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header(res)); err != nil {
		return err
	}

	for _, p := range res.Points {
		row := []string{strconv.FormatFloat(p.X, 'f', 5, 64)}
		for _, in := range res.Inputs {
			if in == res.Param {
				continue
			}
			v, ok := p.Inputs[in]
			row = append(row, formatValue(pvt.Value{V: v, OK: ok}))
		}
		row = append(row, formatValue(p.Result))
		for _, e := range res.Extras {
			row = append(row, formatValue(p.Extras[e]))
		}
		row = append(row, string(p.Reason))
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

type jsonPoint struct {
	X      float64              `json:"x"`
	Inputs pvt.Snapshot         `json:"inputs"`
	Result pvt.Value            `json:"result"`
	Extras map[string]pvt.Value `json:"extras,omitempty"`
	Reason pvt.Kind             `json:"reason,omitempty"`
}

// Document is the JSON export of one sweep.
type Document struct {
	Correlation string      `json:"correlation"`
	Param       string      `json:"param"`
	Unit        string      `json:"unit"`
	ExportedAt  time.Time   `json:"exported_at"`
	Absent      int         `json:"absent"`
	Points      []jsonPoint `json:"points"`
}

// NewDocument converts res into its JSON form.
func NewDocument(res *analysis.Result) Document {
	doc := Document{
		Correlation: res.Correlation,
		Param:       res.Param,
		Unit:        res.Unit,
		ExportedAt:  time.Now().UTC(),
		Absent:      res.AbsentCount(),
		Points:      make([]jsonPoint, len(res.Points)),
	}
	for i, p := range res.Points {
		doc.Points[i] = jsonPoint{X: p.X, Inputs: p.Inputs, Result: p.Result, Extras: p.Extras, Reason: p.Reason}
	}
	return doc
}

// WriteJSON writes res as indented JSON. Absent values encode as null.
func WriteJSON(w io.Writer, res *analysis.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(res))
}
