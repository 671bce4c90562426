package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides (SKILLCTL_SKILLS_DIR, ...)
const EnvPrefix = "SKILLCTL"

// Config represents the config.toml configuration file
type Config struct {
	// Directory the agent runtime scans for skills
	SkillsDir string `mapstructure:"skills_dir" toml:"skills_dir" comment:"Directory the agent runtime scans for skills"`

	// Clone cache; empty means <data dir>/repos
	CacheDir string `mapstructure:"cache_dir" toml:"cache_dir" comment:"Clone cache, empty means <data dir>/repos"`

	// Registry file; empty means <data dir>/registry.json
	RegistryPath string `mapstructure:"registry_path" toml:"registry_path" comment:"Registry file, empty means <data dir>/registry.json"`

	// Marker file that identifies a skill directory
	ManifestFile string `mapstructure:"manifest_file" toml:"manifest_file" comment:"Marker file that identifies a skill directory"`

	Discovery DiscoveryConfig `mapstructure:"discovery" toml:"discovery"`
	Copy      CopyConfig      `mapstructure:"copy" toml:"copy"`
	Git       GitConfig       `mapstructure:"git" toml:"git"`
	Timeouts  TimeoutsConfig  `mapstructure:"timeouts" toml:"timeouts"`
	Log       LogConfig       `mapstructure:"log" toml:"log"`
}

// DiscoveryConfig controls where skills are looked up inside a repository
type DiscoveryConfig struct {
	// Candidate skill prefixes, most specific first
	Prefixes []string `mapstructure:"prefixes" toml:"prefixes" comment:"Candidate skill prefixes, most specific first"`
}

// CopyConfig controls how skills are copied into the skills directory
type CopyConfig struct {
	// Glob patterns (relative to a skill root) that are never copied
	Exclude []string `mapstructure:"exclude" toml:"exclude" comment:"Glob patterns, relative to a skill root, that are never copied"`
}

// GitConfig holds git subprocess settings
type GitConfig struct {
	Binary       string `mapstructure:"binary" toml:"binary"`
	CloneRetries int    `mapstructure:"clone_retries" toml:"clone_retries" comment:"Extra clone attempts after a failure (0 disables retries)"`
}

// TimeoutsConfig holds git subprocess timeouts as duration strings ("30s", "5m")
type TimeoutsConfig struct {
	Check string `mapstructure:"check" toml:"check"`
	Clone string `mapstructure:"clone" toml:"clone"`
	Pull  string `mapstructure:"pull" toml:"pull"`
	Query string `mapstructure:"query" toml:"query"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `mapstructure:"level" toml:"level"`
	Format string `mapstructure:"format" toml:"format" comment:"text or json"`
}

// DefaultPrefixes are the skill container paths checked inside a cloned repository
var DefaultPrefixes = []string{
	".claude/skills",
	".agents/skills",
	".codex/skills",
	"skills",
	".",
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		SkillsDir:    "~/.claude/skills",
		ManifestFile: "SKILL.md",
		Discovery: DiscoveryConfig{
			Prefixes: append([]string(nil), DefaultPrefixes...),
		},
		Copy: CopyConfig{
			Exclude: []string{
				".git/**",
				"**/.DS_Store",
				"**/__pycache__/**",
			},
		},
		Git: GitConfig{
			Binary: "git",
		},
		Timeouts: TimeoutsConfig{
			Check: "5s",
			Clone: "5m",
			Pull:  "2m",
			Query: "10s",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// NewViper returns a viper instance seeded with defaults and SKILLCTL_* env lookup
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// SetDefaults registers every config key so env overrides and Unmarshal see it
func SetDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("skills_dir", d.SkillsDir)
	v.SetDefault("cache_dir", d.CacheDir)
	v.SetDefault("registry_path", d.RegistryPath)
	v.SetDefault("manifest_file", d.ManifestFile)
	v.SetDefault("discovery.prefixes", d.Discovery.Prefixes)
	v.SetDefault("copy.exclude", d.Copy.Exclude)
	v.SetDefault("git.binary", d.Git.Binary)
	v.SetDefault("git.clone_retries", d.Git.CloneRetries)
	v.SetDefault("timeouts.check", d.Timeouts.Check)
	v.SetDefault("timeouts.clone", d.Timeouts.Clone)
	v.SetDefault("timeouts.pull", d.Timeouts.Pull)
	v.SetDefault("timeouts.query", d.Timeouts.Query)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Load reads configFile (if it exists) into v and decodes the result.
// A missing file is not an error: defaults and env overrides still apply.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("read config %s: %w", configFile, err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.ManifestFile == "" {
		cfg.ManifestFile = DefaultConfig().ManifestFile
	}
	if len(cfg.Discovery.Prefixes) == 0 {
		cfg.Discovery.Prefixes = append([]string(nil), DefaultPrefixes...)
	}
	return cfg, nil
}

// Marshal renders the config as TOML
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

// Save writes the config to path as TOML
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := c.Marshal()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// CheckTimeout bounds `git --version`
func (t TimeoutsConfig) CheckTimeout() time.Duration {
	return parseDuration(t.Check, 5*time.Second)
}

// CloneTimeout bounds `git clone`
func (t TimeoutsConfig) CloneTimeout() time.Duration {
	return parseDuration(t.Clone, 5*time.Minute)
}

// PullTimeout bounds `git pull`
func (t TimeoutsConfig) PullTimeout() time.Duration {
	return parseDuration(t.Pull, 2*time.Minute)
}

// QueryTimeout bounds read-only git queries (rev-parse, config --get)
func (t TimeoutsConfig) QueryTimeout() time.Duration {
	return parseDuration(t.Query, 10*time.Second)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
