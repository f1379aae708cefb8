package config

import (
	"os"
	"testing"
)

func FuzzLoadConfig(f *testing.F) {
	// Seed with minimal valid config
	f.Add([]byte(`
[jobs.a]
input = "values.txt"
`))

	// Seed with empty config
	f.Add([]byte(""))

	// Seed with every field
	f.Add([]byte(`
[global]
sectionBits = 8
warnRange = 1048576
logLevel = "info"
logFormat = "json"
plotPath = "/tmp/keys.html"

[jobs.b]
input = "records.csv"
engine = "radix"
format = "records"
keyField = 2
start = 1
end = 10
output = "/tmp/out.csv"
`))

	// Seed with bad values
	f.Add([]byte(`
[global]
warnRange = -1
[jobs.c]
engine = "bogo"
`))

	f.Fuzz(func(t *testing.T, data []byte) {
		tmpDir := t.TempDir()
		configPath := tmpDir + "/fuzz.toml"
		if err := os.WriteFile(configPath, data, 0644); err != nil {
			return
		}
		// Should not panic, invalid configs return errors
		cfg, err := LoadConfig(configPath)
		if err == nil {
			cfg.Validate()
		}
	})
}

func FuzzParseEngine(f *testing.F) {
	f.Add("")
	f.Add("auto")
	f.Add("radix")
	f.Add("RADIX")
	f.Fuzz(func(t *testing.T, s string) {
		e, err := ParseEngine(s)
		if err == nil && e == "" {
			t.Errorf("ParseEngine(%q) returned empty engine without error", s)
		}
	})
}
