// Package config loads the optional rhein project file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"rhein/pkg/compiler"
)

// FileNames are searched in order by Find.
var FileNames = []string{"rhein.yaml", "rhein.yml", "rhein.toml"}

// Log selects the front-end log output.
type Log struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Config holds the project settings. Zero fields take their defaults.
type Config struct {
	TypeStrict string `yaml:"typeStrict" toml:"typeStrict"` // directive value; empty means strict
	Indent     int    `yaml:"indent" toml:"indent"`
	OutputExt  string `yaml:"outputExt" toml:"outputExt"`
	Jobs       int    `yaml:"jobs" toml:"jobs"`
	Log        Log    `yaml:"log" toml:"log"`
}

// Default returns the settings used when no file is present.
func Default() Config {
	return Config{
		OutputExt: ".js",
		Jobs:      runtime.NumCPU(),
		Log:       Log{Level: "info", Format: "text"},
	}
}

// Mode returns the compilation mode the file asks for.
func (c Config) Mode() compiler.Mode {
	if c.TypeStrict == "" {
		return compiler.Strict
	}
	return compiler.ParseMode(c.TypeStrict)
}

// Load reads path, choosing the decoder from its extension. Fields missing
// from the file keep their defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
		if undec := md.Undecoded(); len(undec) > 0 {
			return Config{}, fmt.Errorf("%s: unknown key %q", path, undec[0].String())
		}
	default:
		return Config{}, fmt.Errorf("%s: unsupported config format %q", path, ext)
	}

	return cfg, cfg.validate()
}

// Find returns the first config file present in dir, or "" if none is.
func Find(dir string) string {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if st, err := os.Stat(p); err == nil && !st.IsDir() {
			return p
		}
	}
	return ""
}

func (c Config) validate() error {
	if c.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", c.Indent)
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if c.OutputExt != "" && !strings.HasPrefix(c.OutputExt, ".") {
		return fmt.Errorf("outputExt must start with '.', got %q", c.OutputExt)
	}
	return nil
}
