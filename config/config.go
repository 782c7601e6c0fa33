// Package config loads NetGraph's engine-level operational defaults
// (§6 "Environment variables": "external collaborators may inject
// concurrency and log-verbosity knobs") from environment, file, and
// built-in defaults via koanf, the way
// Hola-to-network_logistics_problem/pkg/config/loader.go layers its own
// Config. These are engine defaults only: a scenario document's own values
// (parallelism, seed, ...) always override what this package supplies.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "NETGRAPH_"

// Config is the engine's operational defaults, overridable by a scenario
// document's own per-step values (Iterations, Seed, Parallelism on a
// workflow step always win when set).
type Config struct {
	Parallelism int     `koanf:"parallelism"` // 0 selects runtime.GOMAXPROCS(0) (§4.11 step 2)
	Iterations  int     `koanf:"iterations"`  // default Monte Carlo iteration count when a step omits one
	Epsilon     float64 `koanf:"epsilon"`     // tolerance for capacity/flow-conservation comparisons (§8 properties 3-4)
	LogLevel    string  `koanf:"log_level"`   // "debug" | "info" | "warn" | "error"
}

// Loader layers Config sources with ascending priority: built-in defaults,
// an optional YAML file, then environment variables — the same three-tier
// priority Hola-to-network_logistics_problem's pkg/config.Loader uses.
type Loader struct {
	k          *koanf.Koanf
	configPath string
	envPrefix  string
}

// Option configures a Loader.
type Option func(*Loader)

// WithConfigPath sets the YAML file path consulted between defaults and
// environment variables. An empty or missing path is not an error: the
// file tier is optional.
func WithConfigPath(path string) Option {
	return func(l *Loader) { l.configPath = path }
}

// WithEnvPrefix overrides the environment variable prefix (default
// "NETGRAPH_").
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) { l.envPrefix = prefix }
}

// NewLoader constructs a Loader with the given options.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{k: koanf.New("."), envPrefix: envPrefix}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// builtinDefaults is the lowest-priority tier, shared by Load and Default.
var builtinDefaults = map[string]any{
	"parallelism": 0,
	"iterations":  1,
	"epsilon":     1e-9,
	"log_level":   "info",
}

// Load resolves a Config from defaults, file, and environment, in that
// ascending-priority order.
func (l *Loader) Load() (*Config, error) {
	if err := l.k.Load(confmap.Provider(builtinDefaults, "."), nil); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	if l.configPath != "" {
		if _, err := os.Stat(l.configPath); err == nil {
			if err := l.k.Load(file.Provider(l.configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file %q: %w", l.configPath, err)
			}
		}
	}

	err := l.k.Load(env.Provider(l.envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, l.envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load config env: %w", err)
	}

	var cfg Config
	if err := l.k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Default returns the built-in defaults with no file or environment
// overlay, for callers that want engine defaults without touching the
// filesystem or environment (e.g. library-embedding tests).
func Default() *Config {
	k := koanf.New(".")
	_ = k.Load(confmap.Provider(builtinDefaults, "."), nil)
	var cfg Config
	_ = k.Unmarshal("", &cfg)
	return &cfg
}
