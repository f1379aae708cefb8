package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test_config.toml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}
	return configPath
}

func writeInput(t *testing.T) string {
	t.Helper()
	inputPath := filepath.Join(t.TempDir(), "values.txt")
	if err := os.WriteFile(inputPath, []byte("3\n1\n2\n"), 0644); err != nil {
		t.Fatalf("Failed to write input file: %v", err)
	}
	return inputPath
}

func TestLoadConfig(t *testing.T) {
	input := writeInput(t)
	configPath := writeConfig(t, `
[global]
sectionBits = 8
warnRange = 1048576
logLevel = "info"
logFormat = "json"
plotPath = "/tmp/keys.html"

[jobs.latencies]
input = "`+input+`"
engine = "pigeonhole"
start = 1
end = 3
output = "/tmp/sorted.txt"

[jobs.bounded]
input = "`+input+`"
engine = "nomask"
min = -10
max = 10

[jobs.events]
input = "`+input+`"
engine = "radix"
format = "records"
keyField = 2
`)

	config, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if config.Global.SectionBits != 8 {
		t.Errorf("Expected SectionBits 8, got %d", config.Global.SectionBits)
	}
	if config.Global.WarnRange != 1048576 {
		t.Errorf("Expected WarnRange 1048576, got %d", config.Global.WarnRange)
	}
	if config.Global.LogLevel != "info" || config.Global.LogFormat != "json" {
		t.Errorf("Unexpected logging settings: %+v", config.Global)
	}
	if config.Global.PlotPath != "/tmp/keys.html" {
		t.Errorf("Expected PlotPath '/tmp/keys.html', got '%s'", config.Global.PlotPath)
	}

	if names := config.JobNames(); strings.Join(names, ",") != "bounded,events,latencies" {
		t.Errorf("Unexpected job names %v", names)
	}

	latencies := config.Jobs["latencies"]
	if latencies.Engine != EnginePigeonhole || latencies.Start != 1 || latencies.End != 3 {
		t.Errorf("Unexpected latencies job: %+v", latencies)
	}
	if latencies.Format != FormatInts {
		t.Errorf("Expected default format ints, got %q", latencies.Format)
	}

	bounded := config.Jobs["bounded"]
	if bounded.Min == nil || bounded.Max == nil || *bounded.Min != -10 || *bounded.Max != 10 {
		t.Errorf("Unexpected bounds: %+v", bounded)
	}

	events := config.Jobs["events"]
	if events.Format != FormatRecords || events.KeyField != 2 {
		t.Errorf("Unexpected events job: %+v", events)
	}

	if err := config.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	input := writeInput(t)
	config, err := LoadConfig(writeConfig(t, "[jobs.a]\ninput = \""+input+"\"\n"))
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if config.Global.SectionBits != DefaultSectionBits || config.Global.WarnRange != DefaultWarnRange {
		t.Errorf("Defaults not applied: %+v", config.Global)
	}
	if config.Jobs["a"].Engine != EngineAuto {
		t.Errorf("Expected auto engine, got %q", config.Jobs["a"].Engine)
	}
}

func TestLoadConfigWithMissingFile(t *testing.T) {
	if _, err := LoadConfig("nonexistent_config.toml"); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid toml", "[jobs.a\ninput = 1"},
		{"unknown section", "[static]\nlogFile = \"x\""},
		{"unknown engine", "[jobs.a]\nengine = \"bogo\""},
		{"unknown format", "[jobs.a]\nformat = \"xml\""},
		{"negative warn range", "[global]\nwarnRange = -4"},
		{"job not a table", "jobs = 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.content)); err == nil {
				t.Errorf("Expected error for %s", tt.name)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	input := writeInput(t)
	min, max := int64(0), int64(5)

	tests := []struct {
		name    string
		job     JobConfig
		wantErr string
	}{
		{"valid", JobConfig{Input: input, Engine: EngineAuto, Format: FormatInts}, ""},
		{"missing input", JobConfig{Engine: EngineAuto}, "input is required"},
		{"input does not exist", JobConfig{Input: "/nonexistent/values.txt"}, "does not exist"},
		{"bad range", JobConfig{Input: input, Start: 5, End: 2}, "invalid range"},
		{"half bounds", JobConfig{Input: input, Engine: EngineNoMask, Min: &min}, "together"},
		{"bounds without nomask", JobConfig{Input: input, Engine: EngineRadix, Min: &min, Max: &max}, "nomask"},
		{"records with pigeonhole", JobConfig{Input: input, Engine: EnginePigeonhole, Format: FormatRecords}, "radix"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Global: DefaultGlobal(), Jobs: map[string]*JobConfig{"job": &tt.job}}
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidateGlobal(t *testing.T) {
	cfg := &Config{Global: DefaultGlobal(), Jobs: map[string]*JobConfig{}}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for config without jobs")
	}
	cfg.Global.SectionBits = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for sectionBits 0")
	}
}
