// Package config handles jtj.toml project configuration and its
// environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/chazu/jtj/archive"
)

// FileName is the name of the project configuration file.
const FileName = "jtj.toml"

// Config represents a jtj.toml project configuration.
type Config struct {
	Archive  Archive  `toml:"archive"`
	Loader   Loader   `toml:"loader"`
	Output   Output   `toml:"output"`
	Manifest Manifest `toml:"manifest"`
	Report   Report   `toml:"report"`
	Log      Log      `toml:"log"`

	// Dir is the directory containing the jtj.toml file (set at load time).
	Dir string `toml:"-"`
}

// Archive configures archive discovery.
type Archive struct {
	// Search lists jar files or directories holding them.
	Search  []string `toml:"search"`
	Exclude []string `toml:"exclude"`
}

// Loader configures the isolated class loading context.
type Loader struct {
	// Provided lists package prefixes the host supplies; types under them
	// are never read from the archive.
	Provided      []string `toml:"provided"`
	// SkipSynthetic rejects compiler-generated synthetic and bridge methods
	// instead of bridging them.
	SkipSynthetic bool     `toml:"skip_synthetic"`
}

// Output configures where generated trees go.
type Output struct {
	Dir     string `toml:"dir"`
	SDK     string `toml:"sdk"`
	Bridges string `toml:"bridges"`
}

// Manifest configures the registration extension.
type Manifest struct {
	Naming string `toml:"naming"`
}

// Report configures the console report and its optional database export.
type Report struct {
	Database string `toml:"database"`
	Color    string `toml:"color"`
}

// Log configures logging verbosity.
type Log struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no jtj.toml exists.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
	if c.Output.SDK == "" {
		c.Output.SDK = "sdk"
	}
	if c.Output.Bridges == "" {
		c.Output.Bridges = filepath.Join("tmp", "javaprepare", "JTJ")
	}
	if c.Manifest.Naming == "" {
		c.Manifest.Naming = "hash"
	}
	if c.Report.Color == "" {
		c.Report.Color = "auto"
	}
	if c.Log.Level == "" {
		c.Log.Level = "warning"
	}
}

// Load parses a jtj.toml file from the given directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, FileName))
}

// LoadFile parses the configuration file at path.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var c Config
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	// Relative paths in the file are relative to the file.
	for i, s := range c.Archive.Search {
		c.Archive.Search[i] = c.resolve(s)
	}
	if c.Output.Dir != "" {
		c.Output.Dir = c.resolve(c.Output.Dir)
	}
	if c.Report.Database != "" {
		c.Report.Database = c.resolve(c.Report.Database)
	}

	c.applyDefaults()
	return &c, nil
}

// FindAndLoad walks up from startDir to find a jtj.toml file, then loads
// and returns it. Returns nil if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) || c.Dir == "" {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// Overrides are the environment variables that take precedence over the
// file.
type Overrides struct {
	Classpath string `env:"JTJ_CLASSPATH"`
	OutputDir string `env:"JTJ_OUTPUT_DIR"`
	Naming    string `env:"JTJ_MANIFEST_NAMING"`
	ReportDB  string `env:"JTJ_REPORT_DB"`
	LogLevel  string `env:"JTJ_LOG_LEVEL"`
}

// ApplyEnv reads overrides from the process environment.
func (c *Config) ApplyEnv() error {
	return c.applyEnv(env.Options{})
}

func (c *Config) applyEnv(opts env.Options) error {
	var o Overrides
	if err := env.ParseWithOptions(&o, opts); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	if o.Classpath != "" {
		c.Archive.Search = archive.SplitSearchList(o.Classpath)
	}
	if o.OutputDir != "" {
		c.Output.Dir = o.OutputDir
	}
	if o.Naming != "" {
		c.Manifest.Naming = o.Naming
	}
	if o.ReportDB != "" {
		c.Report.Database = o.ReportDB
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	return nil
}

// SDKDir is the root of the stub tree.
func (c *Config) SDKDir() string {
	return filepath.Join(c.Output.Dir, c.Output.SDK)
}

// BridgesDir is the root of the adapter tree.
func (c *Config) BridgesDir() string {
	return filepath.Join(c.Output.Dir, c.Output.Bridges)
}
