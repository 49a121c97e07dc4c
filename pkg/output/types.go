// Package output provides formatting and output generation for analysis results.
package output

import (
	"time"

	"github.com/ccollicutt/accessstat/pkg/analyzer"
)

// Report is the complete analysis output.
type Report struct {
	// Summary provides line counts for the run.
	Summary Summary `json:"summary"`

	// Total is the number of requests the statistics were computed over.
	Total int `json:"total"`

	// Sections holds one entry per computed statistic, in report order.
	Sections []analyzer.Section `json:"sections"`

	// Metadata provides context about the analysis.
	Metadata Metadata `json:"metadata"`
}

// Summary provides line counts.
type Summary struct {
	LinesRead   int `json:"lines_read"`
	LinesParsed int `json:"lines_parsed"`
	LinesFailed int `json:"lines_failed"`

	// TopLimit is the size of the top-N rankings.
	TopLimit int `json:"top_limit"`
}

// Metadata provides context about the analysis run.
type Metadata struct {
	// RunID identifies the run in diagnostics.
	RunID string `json:"run_id"`

	// Sources lists the streams that were analyzed.
	Sources []string `json:"sources"`

	// Statistics is the comma separated list of computed statistics.
	Statistics string `json:"statistics"`

	// StripQueryString reports whether query strings were removed from paths.
	StripQueryString bool `json:"strip_query_string"`

	// AnalyzedAt is when the analysis finished.
	AnalyzedAt time.Time `json:"analyzed_at"`

	// Duration is how long the analysis took.
	Duration time.Duration `json:"duration"`
}

// NewReport creates a Report from a finished run and its computed statistics.
func NewReport(result *analyzer.AnalysisResult, stats *analyzer.Report) *Report {
	md := result.Metadata
	return &Report{
		Summary: Summary{
			LinesRead:   md.LinesRead,
			LinesParsed: md.LinesParsed,
			LinesFailed: md.LinesFailed,
			TopLimit:    result.Engine.TopLimit(),
		},
		Total:    stats.Total,
		Sections: stats.Sections,
		Metadata: Metadata{
			RunID:            md.RunID,
			Sources:          md.Sources,
			Statistics:       result.Engine.Selection().String(),
			StripQueryString: md.StripQuery,
			AnalyzedAt:       md.EndTime,
			Duration:         md.EndTime.Sub(md.StartTime),
		},
	}
}

// HasParseFailures returns true if any line could not be parsed.
func (r *Report) HasParseFailures() bool {
	return r.Summary.LinesFailed > 0
}
