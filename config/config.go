package config

import (
	"fmt"
	"os"
	"sort"

	"github.com/BurntSushi/toml"
)

// Engine selects the sorting engine for a job.
type Engine string

const (
	EngineAuto       Engine = "auto"
	EnginePigeonhole Engine = "pigeonhole"
	EngineNoMask     Engine = "nomask"
	EngineRadix      Engine = "radix"
)

// ParseEngine validates an engine name. An empty name means auto.
func ParseEngine(s string) (Engine, error) {
	switch e := Engine(s); e {
	case "":
		return EngineAuto, nil
	case EngineAuto, EnginePigeonhole, EngineNoMask, EngineRadix:
		return e, nil
	}
	return "", fmt.Errorf("unknown engine %q (want auto, pigeonhole, nomask or radix)", s)
}

// Format is the layout of a job's input file.
type Format string

const (
	// FormatInts holds one integer per line.
	FormatInts Format = "ints"
	// FormatRecords holds comma-separated fields, one of which is the key.
	FormatRecords Format = "records"
)

// ParseFormat validates a format name. An empty name means ints.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case "":
		return FormatInts, nil
	case FormatInts, FormatRecords:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (want ints or records)", s)
}

const (
	DefaultSectionBits = 11
	DefaultWarnRange   = 1 << 24
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "console"
)

type GlobalConfig struct {
	SectionBits int    `toml:"sectionBits"`
	WarnRange   uint64 `toml:"warnRange"`
	LogLevel    string `toml:"logLevel"`
	LogFormat   string `toml:"logFormat"`
	PlotPath    string `toml:"plotPath"`
}

// DefaultGlobal returns the global settings used when none are configured.
func DefaultGlobal() *GlobalConfig {
	return &GlobalConfig{
		SectionBits: DefaultSectionBits,
		WarnRange:   DefaultWarnRange,
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
	}
}

// JobConfig describes one input to sort.
type JobConfig struct {
	Input    string `toml:"input"`
	Engine   Engine `toml:"engine"`
	Format   Format `toml:"format"`
	KeyField int    `toml:"keyField"`
	// Start and End select the half-open range [Start, End); End 0 means
	// the end of the input.
	Start  int    `toml:"start"`
	End    int    `toml:"end"`
	Min    *int64 `toml:"min"`
	Max    *int64 `toml:"max"`
	Output string `toml:"output"`
}

type Config struct {
	Global *GlobalConfig         `toml:"global"`
	Jobs   map[string]*JobConfig `toml:"jobs"`
}

func LoadConfig(configPath string) (*Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var rawConfig map[string]any
	if _, err := toml.Decode(string(configData), &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config := &Config{
		Global: DefaultGlobal(),
		Jobs:   make(map[string]*JobConfig),
	}

	for key, value := range rawConfig {
		switch key {
		case "global":
			if globalMap, ok := value.(map[string]any); ok {
				if err := parseGlobalConfig(globalMap, config.Global); err != nil {
					return nil, fmt.Errorf("parsing global config: %w", err)
				}
			}
		case "jobs":
			jobsMap, ok := value.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("jobs must be a table")
			}
			for name, sub := range jobsMap {
				jobMap, ok := sub.(map[string]any)
				if !ok {
					return nil, fmt.Errorf("job %q must be a table", name)
				}
				job, err := parseJobConfig(jobMap)
				if err != nil {
					return nil, fmt.Errorf("parsing job %q: %w", name, err)
				}
				config.Jobs[name] = job
			}
		default:
			return nil, fmt.Errorf("unknown config section %q", key)
		}
	}

	return config, nil
}

func parseGlobalConfig(m map[string]any, config *GlobalConfig) error {
	if v, ok := m["sectionBits"].(int64); ok {
		config.SectionBits = int(v)
	}
	if v, ok := m["warnRange"].(int64); ok {
		if v <= 0 {
			return fmt.Errorf("warnRange must be positive, got %d", v)
		}
		config.WarnRange = uint64(v)
	}
	if v, ok := m["logLevel"].(string); ok {
		config.LogLevel = v
	}
	if v, ok := m["logFormat"].(string); ok {
		config.LogFormat = v
	}
	if v, ok := m["plotPath"].(string); ok {
		config.PlotPath = v
	}
	return nil
}

func parseJobConfig(m map[string]any) (*JobConfig, error) {
	config := &JobConfig{Engine: EngineAuto, Format: FormatInts}
	var err error
	if v, ok := m["input"].(string); ok {
		config.Input = v
	}
	if v, ok := m["engine"].(string); ok {
		if config.Engine, err = ParseEngine(v); err != nil {
			return nil, err
		}
	}
	if v, ok := m["format"].(string); ok {
		if config.Format, err = ParseFormat(v); err != nil {
			return nil, err
		}
	}
	if v, ok := m["keyField"].(int64); ok {
		config.KeyField = int(v)
	}
	if v, ok := m["start"].(int64); ok {
		config.Start = int(v)
	}
	if v, ok := m["end"].(int64); ok {
		config.End = int(v)
	}
	if v, ok := m["min"].(int64); ok {
		config.Min = &v
	}
	if v, ok := m["max"].(int64); ok {
		config.Max = &v
	}
	if v, ok := m["output"].(string); ok {
		config.Output = v
	}
	return config, nil
}

// JobNames returns the configured job names in a stable order.
func (c *Config) JobNames() []string {
	names := make([]string, 0, len(c.Jobs))
	for name := range c.Jobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Config) Validate() error {
	if c.Global == nil {
		return fmt.Errorf("global configuration section is required")
	}
	if c.Global.SectionBits < 1 || c.Global.SectionBits > 24 {
		return fmt.Errorf("sectionBits must be between 1 and 24, got %d", c.Global.SectionBits)
	}
	if len(c.Jobs) == 0 {
		return fmt.Errorf("at least one job is required")
	}
	for _, name := range c.JobNames() {
		job := c.Jobs[name]
		if job == nil {
			return fmt.Errorf("job %q is empty", name)
		}
		if err := job.Validate(); err != nil {
			return fmt.Errorf("job %q: %w", name, err)
		}
	}
	return nil
}

func (j *JobConfig) Validate() error {
	if j.Input == "" {
		return fmt.Errorf("input is required")
	}
	if _, err := os.Stat(j.Input); os.IsNotExist(err) {
		return fmt.Errorf("input does not exist: %s", j.Input)
	}
	if j.Start < 0 || j.End < 0 || (j.End != 0 && j.End < j.Start) {
		return fmt.Errorf("invalid range [%d, %d)", j.Start, j.End)
	}
	if (j.Min == nil) != (j.Max == nil) {
		return fmt.Errorf("min and max must be given together")
	}
	if j.Min != nil && j.Engine != EngineNoMask {
		return fmt.Errorf("min/max only apply to the nomask engine")
	}
	if j.Format == FormatRecords {
		if j.KeyField < 0 {
			return fmt.Errorf("keyField must not be negative")
		}
		if j.Engine != EngineRadix && j.Engine != EngineAuto {
			return fmt.Errorf("records can only be sorted by the radix engine")
		}
	}
	return nil
}
