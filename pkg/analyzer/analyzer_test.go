package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccollicutt/accessstat/pkg/config"
	"github.com/ccollicutt/accessstat/pkg/metrics"
	"github.com/ccollicutt/accessstat/pkg/parser"
)

// errSource fails after returning its lines.
type errSource struct {
	lines []string
	index int
	err   error
}

func (s *errSource) Next(ctx context.Context) (*parser.LogLine, error) {
	if s.index >= len(s.lines) {
		return nil, s.err
	}
	s.index++
	return &parser.LogLine{Content: s.lines[s.index-1], Source: "mock", LineNum: s.index}, nil
}

func (s *errSource) Close() error {
	return nil
}

func TestNewAnalyzer(t *testing.T) {
	a, err := NewAnalyzer(config.DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, FullSelection(), a.Engine().Selection())
	assert.Equal(t, config.DefaultTopLimit, a.Engine().TopLimit())
}

func TestNewAnalyzer_UnknownStatistic(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Statistics = []string{"top10", "nope"}

	_, err := NewAnalyzer(cfg)
	var unknown *UnknownStatisticError
	assert.True(t, errors.As(err, &unknown))
}

func TestNewAnalyzer_NoStatistics(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Statistics = []string{""}

	_, err := NewAnalyzer(cfg)
	assert.Error(t, err)
}

func TestAnalyzer_Analyze(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)
	recorder := metrics.NewRecorder()

	a, err := NewAnalyzer(config.DefaultConfig(),
		WithLogger(logger),
		WithRecorder(recorder),
		WithRunID("01HZZZZZZZZZZZZZZZZZZZZZZZ"),
	)
	require.NoError(t, err)

	input := sampleLog + "unparsed string\n"
	result, err := a.Analyze(context.Background(), parser.NewReaderSource("sample.log", strings.NewReader(input)))
	require.NoError(t, err)

	md := result.Metadata
	assert.Equal(t, "01HZZZZZZZZZZZZZZZZZZZZZZZ", md.RunID)
	assert.Equal(t, []string{"sample.log"}, md.Sources)
	assert.Equal(t, 19, md.LinesRead)
	assert.Equal(t, 18, md.LinesParsed)
	assert.Equal(t, 1, md.LinesFailed)
	assert.False(t, md.EndTime.Before(md.StartTime))
	assert.Equal(t, 18, result.Engine.Total())

	// One diagnostic for the failing line
	var event map[string]any
	line, _, _ := strings.Cut(logs.String(), "\n")
	require.NoError(t, json.Unmarshal([]byte(line), &event))
	assert.Equal(t, "warn", event["level"])
	assert.Equal(t, "unable to parse string unparsed string", event["message"])
	assert.Equal(t, "sample.log", event["source"])
	assert.Equal(t, float64(19), event["line"])
	assert.Equal(t, "01HZZZZZZZZZZZZZZZZZZZZZZZ", event["run_id"])
	assert.Equal(t, 1, strings.Count(logs.String(), "unable to parse string"))

	series, err := testutil.GatherAndCount(recorder.Registry(), "accessstat_lines_total")
	require.NoError(t, err)
	assert.Equal(t, 2, series)
}

func TestAnalyzer_Analyze_OnlyMalformed(t *testing.T) {
	var logs bytes.Buffer
	a, err := NewAnalyzer(config.DefaultConfig(), WithLogger(zerolog.New(&logs)))
	require.NoError(t, err)

	result, err := a.Analyze(context.Background(), parser.NewReaderSource("bad.log", strings.NewReader("unparsed string\n")))
	require.NoError(t, err)

	assert.Equal(t, 0, result.Engine.Total())
	assert.Equal(t, 1, result.Metadata.LinesFailed)
	assert.Contains(t, logs.String(), "unable to parse string unparsed string")

	_, err = result.Engine.Report()
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestAnalyzer_Analyze_SourceError(t *testing.T) {
	a, err := NewAnalyzer(config.DefaultConfig())
	require.NoError(t, err)

	boom := errors.New("disk on fire")
	_, err = a.Analyze(context.Background(), &errSource{lines: sampleLines(2), err: boom})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "reading log source")
}

func TestAnalyzer_Analyze_Cancelled(t *testing.T) {
	a, err := NewAnalyzer(config.DefaultConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = a.Analyze(ctx, parser.NewReaderSource("sample.log", strings.NewReader(sampleLog)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzer_Analyze_KeepQueryString(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.StripQueryString = false
	cfg.Statistics = []string{"top10"}

	a, err := NewAnalyzer(cfg)
	require.NoError(t, err)

	result, err := a.Analyze(context.Background(), &errSource{lines: sampleLines(3), err: io.EOF})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{
		"/kernel/get.php?aws=nLZQtFvpe": 1,
		"/kernel/get.php?":              1,
		"/printer/remove.php":           1,
	}, result.Engine.PathCounts())
	assert.Empty(t, result.Engine.MinuteCounts())
}

func TestAnalyzer_Analyze_LongLine(t *testing.T) {
	var logs bytes.Buffer
	a, err := NewAnalyzer(config.DefaultConfig(), WithLogger(zerolog.New(&logs)))
	require.NoError(t, err)

	lines := sampleLines(2)
	input := lines[0] + "\n" + strings.Repeat("junk", 512*1024) + "\n" + lines[1] + "\n"

	result, err := a.Analyze(context.Background(), parser.NewReaderSource("long.log", strings.NewReader(input)))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Metadata.LinesRead)
	assert.Equal(t, 2, result.Metadata.LinesParsed)
	assert.Equal(t, 1, result.Metadata.LinesFailed)
	assert.Contains(t, logs.String(), `"line":2`)
}

func TestAnalyzer_Analyze_StripQueryMetadata(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.StripQueryString = false

	a, err := NewAnalyzer(cfg)
	require.NoError(t, err)

	result, err := a.Analyze(context.Background(), parser.NewReaderSource("sample.log", strings.NewReader(sampleLog)))
	require.NoError(t, err)
	assert.False(t, result.Metadata.StripQuery)

	a, err = NewAnalyzer(config.DefaultConfig())
	require.NoError(t, err)
	result, err = a.Analyze(context.Background(), parser.NewReaderSource("sample.log", strings.NewReader(sampleLog)))
	require.NoError(t, err)
	assert.True(t, result.Metadata.StripQuery)
}
