package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/samhoang/skillctl/internal/config"
	"github.com/samhoang/skillctl/internal/logger"
	"github.com/samhoang/skillctl/internal/presenter"
)

var Version = "dev"

var (
	cfgFile       string
	skillsDirFlag string
	cacheDirFlag  string
	logLevelFlag  string
	logFormatFlag string
)

// Loaded by PersistentPreRunE before any subcommand runs
var (
	appConfig *config.Config
	appPaths  *config.Paths
	appViper  *viper.Viper
)

var rootCmd = &cobra.Command{
	Use:   "skillctl",
	Short: "Install and manage agent skills from git repositories",
	Long: `skillctl installs agent skills from git repositories into a local skills
directory and keeps track of them in a registry.

A repository is cloned into a cache, the directory holding its skills is
detected (.claude/skills, .agents/skills, skills, ...) and every skill
directory containing a SKILL.md is copied into the skills directory.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		presenter.New().Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentPreRunE = loadRuntime
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "Config file (default ~/.skillctl/config.toml)")
	flags.StringVar(&skillsDirFlag, "skills-dir", "", "Target skills directory")
	flags.StringVar(&cacheDirFlag, "cache-dir", "", "Clone cache directory")
	flags.StringVar(&logLevelFlag, "log-level", "", "Log level (debug, info, warn, error)")
	flags.StringVar(&logFormatFlag, "log-format", "", "Log format (text, json)")

	appViper = newViper()
}

// newViper returns a config viper with the global flags bound over env and file values
func newViper() *viper.Viper {
	v := config.NewViper()
	for key, flag := range map[string]string{
		"skills_dir": "skills-dir",
		"cache_dir":  "cache-dir",
		"log.level":  "log-level",
		"log.format": "log-format",
	} {
		if err := v.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
	return v
}

// loadRuntime resolves paths, loads the config and configures logging
// annotationConfigOptional marks read-only commands that still run on
// defaults when the config file cannot be loaded
const annotationConfigOptional = "skillctl/config-optional"

func configOptional(cmd *cobra.Command) bool {
	_, ok := cmd.Annotations[annotationConfigOptional]
	return ok
}

func loadRuntime(cmd *cobra.Command, args []string) error {
	paths, err := config.ResolvePaths()
	if err != nil {
		return err
	}

	configFile := cfgFile
	if configFile == "" {
		configFile = paths.ConfigPath
	} else {
		paths.ConfigPath = configFile
	}

	cfg, err := config.Load(appViper, configFile)
	if err != nil {
		if !configOptional(cmd) {
			return err
		}
		logger.G(cmd.Context()).WithError(err).Warn("ignoring unreadable config file, using defaults")
		appViper = newViper()
		if cfg, err = config.Load(appViper, ""); err != nil {
			return err
		}
	}
	paths.Apply(cfg)

	if err := logger.SetLogLevel(cfg.Log.Level); err != nil {
		if !configOptional(cmd) {
			return err
		}
		logger.G(cmd.Context()).WithError(err).Warn("ignoring invalid log level")
	}
	logger.SetLogFormat(cfg.Log.Format)

	appConfig = cfg
	appPaths = paths

	logger.G(cmd.Context()).
		WithField("config", configFile).
		WithField("skills_dir", paths.SkillsDir).
		WithField("cache_dir", paths.CacheDir).
		Debug("loaded configuration")
	return nil
}
