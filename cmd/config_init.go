package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/samhoang/skillctl/internal/config"
)

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate default config.toml configuration",
	Long: `Generate a default config.toml configuration file.

The config file controls:
  - Where skills are installed and repositories are cached
  - Which repository paths are searched for skills
  - Files excluded when copying skills
  - Git binary, clone retries and timeouts

Example config.toml:

  skills_dir = "~/.claude/skills"
  manifest_file = "SKILL.md"

  [discovery]
  prefixes = [".claude/skills", ".agents/skills", ".codex/skills", "skills", "."]

  [git]
  binary = "git"
  clone_retries = 0

  [timeouts]
  clone = "5m"
  pull = "2m"`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "Overwrite an existing config file")
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	p := newPresenter(cmd)
	configPath := appPaths.ConfigPath

	// Check if already exists
	if _, err := os.Stat(configPath); err == nil && !configInitForce {
		p.Info(fmt.Sprintf("Config already exists: %s", configPath))
		p.Info("Edit it directly or rerun with --force to regenerate.")
		return nil
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	p.Success(fmt.Sprintf("Created: %s", configPath))
	return nil
}
