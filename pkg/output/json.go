package output

import (
	"context"
	"encoding/json"
	"io"

	"github.com/ccollicutt/accessstat/pkg/analyzer"
)

// JSONFormatter formats reports as indented JSON.
// Percentages are written as numbers with two decimals.
type JSONFormatter struct {
	opts FormatOptions
}

// NewJSONFormatter creates a new JSON formatter with the given options.
func NewJSONFormatter(opts FormatOptions) *JSONFormatter {
	return &JSONFormatter{opts: opts}
}

// Name returns the format name.
func (f *JSONFormatter) Name() string {
	return "json"
}

type jsonRate struct {
	Count   int         `json:"count"`
	Total   int         `json:"total"`
	Percent json.Number `json:"percent"`
}

type jsonSection struct {
	Statistic analyzer.Statistic      `json:"statistic"`
	Entries   []analyzer.Entry        `json:"entries,omitempty"`
	Addresses []analyzer.AddressEntry `json:"addresses,omitempty"`
	Rate      *jsonRate               `json:"rate,omitempty"`
}

type jsonReport struct {
	Summary  Summary       `json:"summary"`
	Total    int           `json:"total"`
	Sections []jsonSection `json:"sections"`
	Metadata Metadata      `json:"metadata"`
}

type jsonSummary struct {
	Summary
	Total int `json:"total"`
}

// Format renders the report as JSON. Quiet mode writes the line summary and
// the request total only.
func (f *JSONFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if f.opts.Quiet {
		return encoder.Encode(jsonSummary{Summary: report.Summary, Total: report.Total})
	}

	return encoder.Encode(newJSONReport(report))
}

func newJSONReport(report *Report) jsonReport {
	sections := make([]jsonSection, 0, len(report.Sections))
	for _, s := range report.Sections {
		js := jsonSection{
			Statistic: s.Statistic,
			Entries:   s.Entries,
			Addresses: s.Addresses,
		}
		if s.Rate != nil {
			js.Rate = &jsonRate{
				Count:   s.Rate.Count,
				Total:   s.Rate.Total,
				Percent: json.Number(s.Rate.Percent.StringFixed(2)),
			}
		}
		sections = append(sections, js)
	}

	return jsonReport{
		Summary:  report.Summary,
		Total:    report.Total,
		Sections: sections,
		Metadata: report.Metadata,
	}
}
