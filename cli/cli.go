package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ChristianF88/bitsort/config"
	"github.com/ChristianF88/bitsort/diag"
	"github.com/ChristianF88/bitsort/version"
	"go.uber.org/zap"
	cli "github.com/urfave/cli/v2"
)

// parseDate attempts to parse the build date
func parseDate(d string) time.Time {
	t, err := time.Parse(time.RFC3339, d)
	if err != nil {
		return time.Now()
	}
	return t
}

// Shared flag definitions to eliminate duplication
var (
	// Configuration flags
	configFlag = &cli.StringFlag{
		Name:     "config",
		Usage:    "Path to configuration file",
		Required: true,
	}

	// Input flags
	inputFlag = &cli.StringFlag{
		Name:     "input",
		Usage:    "Path to the input file",
		Required: true,
	}
	formatFlag = &cli.StringFlag{
		Name:  "format",
		Usage: "Input format: 'ints' (one integer per line) or 'records' (comma-separated, see --keyField)",
		Value: string(config.FormatInts),
	}
	keyFieldFlag = &cli.IntFlag{
		Name:  "keyField",
		Usage: "Zero based field holding the integer key of a record",
	}
	startFlag = &cli.IntFlag{
		Name:  "start",
		Usage: "First index of the range to sort",
	}
	endFlag = &cli.IntFlag{
		Name:  "end",
		Usage: "Index one past the range to sort (0 means the end of the input)",
	}

	// Engine flags
	engineFlag = &cli.StringFlag{
		Name:  "engine",
		Usage: "Sorting engine: auto, pigeonhole, nomask or radix",
		Value: string(config.EngineAuto),
	}
	minFlag = &cli.Int64Flag{
		Name:  "min",
		Usage: "Lower bound for the nomask engine (requires --max)",
	}
	maxFlag = &cli.Int64Flag{
		Name:  "max",
		Usage: "Upper bound for the nomask engine (requires --min)",
	}
	sectionBitsFlag = &cli.IntFlag{
		Name:  "sectionBits",
		Usage: "Widest radix pass in bits",
		Value: config.DefaultSectionBits,
	}
	warnRangeFlag = &cli.Uint64Flag{
		Name:  "warnRange",
		Usage: "Bucket count above which an oversized-range warning is logged",
		Value: config.DefaultWarnRange,
	}
	workersFlag = &cli.IntFlag{
		Name:  "workers",
		Usage: "Number of jobs sorted in parallel (0 means one per CPU)",
	}

	// Output flags
	outputFlag = &cli.StringFlag{
		Name:  "output",
		Usage: "Path where the sorted data is written. If not provided, nothing is written.",
	}
	plotPathFlag = &cli.StringFlag{
		Name:  "plotPath",
		Usage: "Path where to save the key heatmap (e.g., '/path/to/keys.html'). If not provided, no plot will be generated.",
	}
	compactFlag = &cli.BoolFlag{
		Name:  "compact",
		Usage: "Output compact JSON (no pretty printing)",
		Value: false,
	}
	plainFlag = &cli.BoolFlag{
		Name:  "plain",
		Usage: "Output plain text format for easy readability",
		Value: false,
	}
	tuiFlag = &cli.BoolFlag{
		Name:  "tui",
		Usage: "Launch TUI (Terminal User Interface) mode",
		Value: false,
	}

	// Logging flags
	logLevelFlag = &cli.StringFlag{
		Name:  "logLevel",
		Usage: "Diagnostics log level (debug, info, warn, error)",
		Value: config.DefaultLogLevel,
	}
	logFormatFlag = &cli.StringFlag{
		Name:  "logFormat",
		Usage: "Diagnostics log format: console or json",
		Value: config.DefaultLogFormat,
	}
)

func validatePlotPath(plotPath string) error {
	if plotPath != "" {
		plotDir := filepath.Dir(plotPath)
		if plotDir == "." {
			plotDir, _ = os.Getwd()
		}
		if _, err := os.Stat(plotDir); os.IsNotExist(err) {
			return fmt.Errorf("plot directory does not exist: %s", plotDir)
		}
	}
	return nil
}

func validateInputExists(inputPath string) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input does not exist: %s", inputPath)
	}
	return nil
}

// createConfigFromCLI builds a single job configuration named "cli" from flags.
func createConfigFromCLI(c *cli.Context) (*config.Config, error) {
	engine, err := config.ParseEngine(c.String("engine"))
	if err != nil {
		return nil, err
	}
	format, err := config.ParseFormat(c.String("format"))
	if err != nil {
		return nil, err
	}

	job := &config.JobConfig{
		Input:    c.String("input"),
		Engine:   engine,
		Format:   format,
		KeyField: c.Int("keyField"),
		Start:    c.Int("start"),
		End:      c.Int("end"),
		Output:   c.String("output"),
	}
	if c.IsSet("min") {
		v := c.Int64("min")
		job.Min = &v
	}
	if c.IsSet("max") {
		v := c.Int64("max")
		job.Max = &v
	}

	global := config.DefaultGlobal()
	global.SectionBits = c.Int("sectionBits")
	global.WarnRange = c.Uint64("warnRange")
	global.PlotPath = c.String("plotPath")
	global.LogLevel = c.String("logLevel")
	global.LogFormat = c.String("logFormat")

	cfg := &config.Config{
		Global: global,
		Jobs:   map[string]*config.JobConfig{cliJobName: job},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func outputConfigFromCLI(c *cli.Context) OutputConfig {
	return OutputConfig{
		Compact: c.Bool("compact"),
		Plain:   c.Bool("plain"),
		TUI:     c.Bool("tui"),
		Workers: c.Int("workers"),
	}
}

func newLogger(level, format string) (*zap.Logger, error) {
	logger, err := diag.NewLogger(level, format)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}

// Command handler functions to reduce deep nesting

// handleSortCommand sorts a single input described by flags
func handleSortCommand(c *cli.Context) error {
	if err := validateInputExists(c.String("input")); err != nil {
		return err
	}
	if err := validatePlotPath(c.String("plotPath")); err != nil {
		return err
	}
	cfg, err := createConfigFromCLI(c)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Global.LogLevel, cfg.Global.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync()

	return executeRun(c.Context, c.App.Writer, cfg, outputConfigFromCLI(c), logger)
}

// handleInspectCommand reports the analysis of an input without sorting it
func handleInspectCommand(c *cli.Context) error {
	if err := validateInputExists(c.String("input")); err != nil {
		return err
	}
	cfg, err := createConfigFromCLI(c)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg.Global.LogLevel, cfg.Global.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync()

	return Inspect(c.App.Writer, cfg, outputConfigFromCLI(c), logger)
}

// handleRunCommand runs every job of a configuration file
func handleRunCommand(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := validatePlotPath(cfg.Global.PlotPath); err != nil {
		return err
	}

	// flags given explicitly override the file
	if c.IsSet("logLevel") {
		cfg.Global.LogLevel = c.String("logLevel")
	}
	if c.IsSet("logFormat") {
		cfg.Global.LogFormat = c.String("logFormat")
	}
	logger, err := newLogger(cfg.Global.LogLevel, cfg.Global.LogFormat)
	if err != nil {
		return err
	}
	defer logger.Sync()

	return executeRun(c.Context, c.App.Writer, cfg, outputConfigFromCLI(c), logger)
}

var App = &cli.App{
	Name:     "bitsort",
	Usage:    "Sort integers and integer keyed records by the bits that differ",
	Version:  version.Version,
	Compiled: parseDate(version.Date),
	Commands: []*cli.Command{
		{
			Name:  "sort",
			Usage: "Sort a single input file",
			Flags: []cli.Flag{
				// Input
				inputFlag,
				formatFlag,
				keyFieldFlag,
				startFlag,
				endFlag,
				// Engine
				engineFlag,
				minFlag,
				maxFlag,
				sectionBitsFlag,
				warnRangeFlag,
				// Output
				outputFlag,
				plotPathFlag,
				compactFlag,
				plainFlag,
				tuiFlag,
				// Logging
				logLevelFlag,
				logFormatFlag,
			},
			Action: handleSortCommand,
		},
		{
			Name:  "inspect",
			Usage: "Show the bit analysis and bucket strategy for an input without sorting",
			Flags: []cli.Flag{
				inputFlag,
				formatFlag,
				keyFieldFlag,
				startFlag,
				endFlag,
				engineFlag,
				sectionBitsFlag,
				compactFlag,
				plainFlag,
				logLevelFlag,
				logFormatFlag,
			},
			Action: handleInspectCommand,
		},
		{
			Name:  "run",
			Usage: "Run every job of a configuration file",
			Flags: []cli.Flag{
				configFlag,
				workersFlag,
				compactFlag,
				plainFlag,
				tuiFlag,
				logLevelFlag,
				logFormatFlag,
			},
			Action: handleRunCommand,
		},
	},
}
