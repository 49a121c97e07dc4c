package output

import (
	"context"
	"fmt"
	"io"

	"github.com/ccollicutt/accessstat/pkg/analyzer"
)

// TextFormatter formats reports as human-readable text.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(ctx context.Context, report *Report, w io.Writer) error {
	if f.opts.Quiet {
		return f.formatQuiet(report, w)
	}
	return f.formatFull(report, w)
}

func (f *TextFormatter) formatQuiet(report *Report, w io.Writer) error {
	_, err := fmt.Fprintf(w, "accessstat: %d lines read, %d parsed, %d failed\n",
		report.Summary.LinesRead,
		report.Summary.LinesParsed,
		report.Summary.LinesFailed)
	return err
}

func (f *TextFormatter) formatFull(report *Report, w io.Writer) error {
	ew := &errWriter{w: w}
	limit := report.Summary.TopLimit

	for i := range report.Sections {
		section := &report.Sections[i]

		switch section.Statistic {
		case analyzer.StatTimeStat:
			ew.printf("\n* The total number of requests made every minute:\n\n")
			for _, e := range section.Entries {
				ew.printf("%-20s  %d\n", e.Key, e.Count)
			}
		case analyzer.StatTop10:
			ew.printf("\n* Top %d requested pages (page - total requests):\n\n", limit)
			f.formatEntries(ew, section.Entries, "")
		case analyzer.StatTop10Unsuccess:
			ew.printf("\n* Top %d unsuccessful page requests (page - total requests):\n\n", limit)
			f.formatEntries(ew, section.Entries, "")
		case analyzer.StatTop10IPs:
			ew.printf("\n* Top %d IPs making the most requests (ip - total requests) with top %d requested pages per IP:\n\n", limit, limit)
			for _, addr := range section.Addresses {
				ew.printf("%-55s  %d\n", addr.Address, addr.Count)
				f.formatEntries(ew, addr.Pages, "     ")
			}
		case analyzer.StatSuccess:
			ew.printf("\n* Percentage of successful requests (anything 2xx or 3xx): %s\n", section.Rate)
		case analyzer.StatUnsuccess:
			ew.printf("\n* Percentage of unsuccessful requests (not 2xx or 3xx): %s\n", section.Rate)
		}
	}

	if f.opts.Verbose {
		ew.printf("\n---\n")
		ew.printf("Lines read: %d, parsed: %d, failed: %d\n",
			report.Summary.LinesRead,
			report.Summary.LinesParsed,
			report.Summary.LinesFailed)
		ew.printf("Statistics: %s\n", report.Metadata.Statistics)
		queries := "kept"
		if report.Metadata.StripQueryString {
			queries = "stripped"
		}
		ew.printf("Query strings: %s\n", queries)
		ew.printf("Run: %s\n", report.Metadata.RunID)
		ew.printf("Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}

	return ew.err
}

func (f *TextFormatter) formatEntries(ew *errWriter, entries []analyzer.Entry, indent string) {
	for _, e := range entries {
		ew.printf("%s%-50s  %d\n", indent, e.Key, e.Count)
	}
}

// errWriter keeps the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
