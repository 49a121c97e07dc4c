package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/accessstat/internal/logging"
	"github.com/ccollicutt/accessstat/pkg/analyzer"
	"github.com/ccollicutt/accessstat/pkg/config"
	"github.com/ccollicutt/accessstat/pkg/metrics"
	"github.com/ccollicutt/accessstat/pkg/output"
	"github.com/ccollicutt/accessstat/pkg/parser"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

// AnalyzeOptions holds command-line options for the analyze command.
type AnalyzeOptions struct {
	ConfigPath      string
	Statistics      string
	KeepQuery       bool
	TopLimit        int
	Output          string
	Verbose         bool
	Quiet           bool
	Strict          bool
	SkipUndefined   bool
	LogLevel        string
	LogFormat       string
	MetricsTextfile string
}

// NewAnalyzeCommand creates the analyze command.
func NewAnalyzeCommand() *cobra.Command {
	opts := &AnalyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <log-file|->",
		Short: "Compute statistics for an access log",
		Long: `Read an access log (or stdin when the argument is "-") and print the
selected statistics.

Statistics: top10, success, unsuccess, top10unsuccess, top10ips, timestat.
Run "accessstat statistics" for descriptions.

Exit codes:
  0 - Statistics computed
  1 - Some lines failed to parse (only with --strict)
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Configuration file")
	cmd.Flags().StringVarP(&opts.Statistics, "statistics", "s", config.DefaultStatistics, "Comma separated statistics to compute")
	cmd.Flags().BoolVarP(&opts.KeepQuery, "query", "q", false, "Keep the query string in request paths")
	cmd.Flags().IntVar(&opts.TopLimit, "top", config.DefaultTopLimit, "Number of entries in top-N rankings")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", config.DefaultOutput, "Output format (text|json)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Append run details to the report")
	cmd.Flags().BoolVar(&opts.Quiet, "quiet", false, "Print the line summary only")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Exit 1 when any line fails to parse")
	cmd.Flags().BoolVar(&opts.SkipUndefined, "skip-undefined-rates", false, "Omit percentages when no request was parsed")
	cmd.Flags().StringVar(&opts.LogLevel, "log-level", config.DefaultLogLevel, "Diagnostics level (trace|debug|info|warn|error|disabled)")
	cmd.Flags().StringVar(&opts.LogFormat, "log-format", config.DefaultLogFormat, "Diagnostics format (console|json)")
	cmd.Flags().StringVar(&opts.MetricsTextfile, "metrics-textfile", "", "Write run metrics to a Prometheus textfile")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string, opts *AnalyzeOptions) error {
	logPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ExitCode = 0

	cfg, err := resolveConfig(ctx, cmd, opts)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}

	var recorder *metrics.Recorder
	if cfg.MetricsTextfile != "" {
		recorder = metrics.NewRecorder()
	}

	a, err := analyzer.NewAnalyzer(cfg,
		analyzer.WithLogger(logger.With().Str(logging.FieldComponent, "analyzer").Logger()),
		analyzer.WithRecorder(recorder),
	)
	if err != nil {
		return fmt.Errorf("creating analyzer: %w", err)
	}

	source, err := parser.NewFileSource(logPath)
	if err != nil {
		return err
	}
	defer source.Close()

	logger.Debug().Str(logging.FieldSource, source.Name()).Msg("reading log")

	result, err := a.Analyze(ctx, source)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	var reportOpts []analyzer.ReportOption
	if opts.SkipUndefined {
		reportOpts = append(reportOpts, analyzer.SkipUndefinedRates())
	}
	stats, err := result.Engine.Report(reportOpts...)
	if err != nil {
		return fmt.Errorf("computing statistics: %w", err)
	}

	report := output.NewReport(result, stats)

	formatter, err := output.NewFormatter(cfg.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
	})
	if err != nil {
		return err
	}

	if err := formatter.Format(ctx, report, cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if err := recorder.WriteTextfile(cfg.MetricsTextfile); err != nil {
		logger.Error().Err(err).Msg("metrics not written")
	}

	if opts.Strict && report.HasParseFailures() {
		ExitCode = 1
	}

	return nil
}

// resolveConfig layers defaults, the optional config file, environment and
// explicitly set flags, then validates the result.
func resolveConfig(ctx context.Context, cmd *cobra.Command, opts *AnalyzeOptions) (*config.Config, error) {
	var cfg *config.Config
	if opts.ConfigPath != "" {
		loaded, err := config.Load(ctx, opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
		cfg.ApplyEnvironmentOverrides()
	}

	flags := cmd.Flags()
	if flags.Changed("statistics") {
		cfg.Statistics = config.SplitList(opts.Statistics)
	}
	if flags.Changed("query") {
		cfg.StripQueryString = !opts.KeepQuery
	}
	if flags.Changed("top") {
		cfg.TopLimit = opts.TopLimit
	}
	if flags.Changed("output") {
		cfg.Output = opts.Output
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.LogLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = opts.LogFormat
	}
	if flags.Changed("metrics-textfile") {
		cfg.MetricsTextfile = opts.MetricsTextfile
	}

	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
