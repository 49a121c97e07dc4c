package analyzer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/ccollicutt/accessstat/internal/logging"
	"github.com/ccollicutt/accessstat/pkg/config"
	"github.com/ccollicutt/accessstat/pkg/metrics"
	"github.com/ccollicutt/accessstat/pkg/parser"
)

// Analyzer drives one pass over a line source: extract, then aggregate.
type Analyzer struct {
	extractor *parser.Extractor
	engine    *Engine

	logger   zerolog.Logger
	recorder *metrics.Recorder
	runID    string
}

// AnalyzerOption configures analyzer behavior.
type AnalyzerOption func(*Analyzer)

// WithLogger sets the logger receiving parse diagnostics.
func WithLogger(logger zerolog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithRecorder sets the metrics recorder for the run.
func WithRecorder(r *metrics.Recorder) AnalyzerOption {
	return func(a *Analyzer) {
		a.recorder = r
	}
}

// WithRunID overrides the generated run identifier.
func WithRunID(id string) AnalyzerOption {
	return func(a *Analyzer) {
		if id != "" {
			a.runID = id
		}
	}
}

// NewAnalyzer creates a new analyzer from configuration.
func NewAnalyzer(cfg *config.Config, opts ...AnalyzerOption) (*Analyzer, error) {
	sel, err := ParseStatistics(cfg.Statistics)
	if err != nil {
		return nil, fmt.Errorf("statistics: %w", err)
	}
	if sel.Empty() {
		return nil, errors.New("no statistics to compute")
	}

	a := &Analyzer{
		extractor: parser.NewExtractor(cfg.StripQueryString),
		engine:    NewEngine(sel, WithTopLimit(cfg.TopLimit)),
		logger:    zerolog.Nop(),
		runID:     logging.NewRunID(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.logger = logging.WithRunID(a.logger, a.runID)

	return a, nil
}

// Engine returns the aggregation engine.
func (a *Analyzer) Engine() *Engine {
	return a.engine
}

// AnalysisResult contains the engine state after a run and its metadata.
type AnalysisResult struct {
	// Engine holds the accumulated statistics.
	Engine *Engine

	// Metadata provides context about the analysis.
	Metadata AnalysisMetadata
}

// AnalysisMetadata provides context about the analysis run.
type AnalysisMetadata struct {
	// RunID identifies the run in logs and reports.
	RunID string

	// Sources lists the streams that were read.
	Sources []string

	// StripQuery reports whether query strings were removed from paths.
	StripQuery bool

	// StartTime is when analysis began.
	StartTime time.Time

	// EndTime is when analysis completed.
	EndTime time.Time

	// LinesRead is the number of lines read from the source.
	LinesRead int

	// LinesParsed is the number of lines extracted into records.
	LinesParsed int

	// LinesFailed is the number of lines that could not be extracted.
	LinesFailed int
}

// Analyze reads every line from source and aggregates it.
// Unparsable lines are logged and skipped; source errors abort the run.
func (a *Analyzer) Analyze(ctx context.Context, source parser.LineSource) (*AnalysisResult, error) {
	result := &AnalysisResult{
		Engine: a.engine,
		Metadata: AnalysisMetadata{
			RunID:      a.runID,
			StripQuery: a.extractor.StripQuery(),
			StartTime:  time.Now(),
		},
	}

	sourcesSeen := make(map[string]bool)

	for {
		line, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading log source: %w", err)
		}

		if !sourcesSeen[line.Source] {
			sourcesSeen[line.Source] = true
			result.Metadata.Sources = append(result.Metadata.Sources, line.Source)
		}
		result.Metadata.LinesRead++

		rec, err := a.extractor.Extract(line.Content)
		if err != nil {
			result.Metadata.LinesFailed++
			a.recorder.LineFailed()
			a.logger.Warn().
				Str(logging.FieldSource, line.Source).
				Int(logging.FieldLine, line.LineNum).
				Msg(err.Error())
			continue
		}

		result.Metadata.LinesParsed++
		a.recorder.LineParsed(rec.Status)
		a.engine.Process(rec)
	}

	result.Metadata.EndTime = time.Now()
	a.recorder.RunFinished(result.Metadata.StartTime, result.Metadata.EndTime)

	a.logger.Debug().
		Int("lines_read", result.Metadata.LinesRead).
		Int("lines_parsed", result.Metadata.LinesParsed).
		Int("lines_failed", result.Metadata.LinesFailed).
		Str("statistics", a.engine.Selection().String()).
		Msg("analysis complete")

	return result, nil
}
