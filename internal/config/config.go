// Package config loads and validates the .scriptbridge YAML command
// catalog.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// FileName is the catalog file looked up in the working directory and
// its parents.
const FileName = ".scriptbridge"

// Default values for executor configuration.
const (
	DefaultTimeout   = 5 * time.Minute
	DefaultMaxOutput = 64 << 10 // 64 KB of stderr per run
	DefaultPathVar   = "PYTHONPATH"
)

// DefaultInterpreter is used when no interpreter is configured. The
// trailing "-" makes the interpreter read the script from stdin.
var DefaultInterpreter = []string{"python3", "-"}

// Config holds the parsed .scriptbridge catalog.
// All fields are optional; zero values represent defaults.
type Config struct {
	Version      int         `yaml:"version"`
	RawTimeout   string      `yaml:"timeout"`     // e.g. "5m", "30s"
	RawMaxOutput int         `yaml:"max_output"`  // bytes of executor stderr kept
	Interpreter  []string    `yaml:"interpreter"` // argv prefix, e.g. [python3, -]
	PathVar      string      `yaml:"path_var"`    // env var for the search-path list
	Audit        AuditConfig `yaml:"audit"`
	Commands     []Command   `yaml:"commands"`
}

// AuditConfig controls the shared usage log.
type AuditConfig struct {
	Enabled *bool  `yaml:"enabled"` // nil means enabled
	Dir     string `yaml:"dir"`     // empty means the system temp directory
	File    string `yaml:"file"`    // default log file name for all commands
}

// Command binds a named host command to a script file.
type Command struct {
	Name        string   `yaml:"name"`
	Script      string   `yaml:"script"`
	SearchPaths []string `yaml:"search_paths"`
	LogFile     string   `yaml:"log_file"` // overrides audit.file for this command
}

// envOverrides are applied on top of the parsed file.
type envOverrides struct {
	LogDir    string        `env:"SCRIPTBRIDGE_LOG_DIR"`
	Timeout   time.Duration `env:"SCRIPTBRIDGE_TIMEOUT"`
	MaxOutput int           `env:"SCRIPTBRIDGE_MAX_OUTPUT"`
}

// Timeout returns the configured executor timeout or the default.
func (c *Config) Timeout() time.Duration {
	if c.RawTimeout != "" {
		d, err := time.ParseDuration(c.RawTimeout)
		if err == nil && d > 0 {
			return d
		}
	}
	return DefaultTimeout
}

// MaxOutputBytes returns the configured stderr cap or the default.
func (c *Config) MaxOutputBytes() int {
	if c.RawMaxOutput > 0 {
		return c.RawMaxOutput
	}
	return DefaultMaxOutput
}

// InterpreterArgv returns the configured interpreter argv or the default.
func (c *Config) InterpreterArgv() []string {
	if len(c.Interpreter) > 0 {
		return c.Interpreter
	}
	return DefaultInterpreter
}

// PathVarName returns the env var used to forward search paths.
func (c *Config) PathVarName() string {
	if c.PathVar != "" {
		return c.PathVar
	}
	return DefaultPathVar
}

// AuditEnabled reports whether usage logging is on (the default).
func (c *Config) AuditEnabled() bool {
	return c.Audit.Enabled == nil || *c.Audit.Enabled
}

// LogFileFor returns the audit log file name for cmd: the per-command
// override, then the catalog-wide name, then "scriptbridge_<user>.log".
func (c *Config) LogFileFor(cmd Command, username string) string {
	if cmd.LogFile != "" {
		return cmd.LogFile
	}
	if c.Audit.File != "" {
		return c.Audit.File
	}
	return fmt.Sprintf("scriptbridge_%s.log", username)
}

// Command looks up a catalog entry by name.
func (c *Config) Command(name string) (Command, bool) {
	for _, cmd := range c.Commands {
		if cmd.Name == name {
			return cmd, true
		}
	}
	return Command{}, false
}

// ResolveScript returns the command's script path, resolving a relative
// path against root.
func (cmd Command) ResolveScript(root string) string {
	if filepath.IsAbs(cmd.Script) {
		return cmd.Script
	}
	return filepath.Join(root, cmd.Script)
}

// SearchPathString builds the opaque path-list string forwarded to the
// executor: the script's own directory followed by the configured
// extras, joined with the OS list separator. Relative extras are
// resolved against root.
func (cmd Command) SearchPathString(root string) string {
	paths := []string{filepath.Dir(cmd.ResolveScript(root))}
	for _, p := range cmd.SearchPaths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(root, p)
		}
		paths = append(paths, p)
	}
	return strings.Join(paths, string(os.PathListSeparator))
}

// LoadResult holds the parsed catalog and the directory it was found in.
type LoadResult struct {
	Config *Config
	Root   string // directory containing the catalog; falls back to workdir
}

// Load discovers the .scriptbridge file by walking upward from workdir.
// If no catalog exists, a default Config rooted at workdir is returned.
// SCRIPTBRIDGE_* environment variables override file values.
func Load(workdir string) (*LoadResult, error) {
	root, err := findRoot(workdir)
	if err != nil {
		// No catalog found; use workdir as root with defaults.
		cfg := &Config{}
		if err := applyEnv(cfg); err != nil {
			return nil, err
		}
		return &LoadResult{Config: cfg, Root: workdir}, nil
	}
	return LoadFile(filepath.Join(root, FileName))
}

// LoadFile reads a catalog from an explicit path.
func LoadFile(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return &LoadResult{Config: cfg, Root: filepath.Dir(path)}, nil
}

func applyEnv(cfg *Config) error {
	var ov envOverrides
	if err := env.Parse(&ov); err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	if ov.LogDir != "" {
		cfg.Audit.Dir = ov.LogDir
	}
	if ov.Timeout > 0 {
		cfg.RawTimeout = ov.Timeout.String()
	}
	if ov.MaxOutput > 0 {
		cfg.RawMaxOutput = ov.MaxOutput
	}
	return nil
}

// findRoot walks upward from dir looking for a directory containing the
// catalog file.
func findRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found", FileName)
		}
		dir = parent
	}
}
