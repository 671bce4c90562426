package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samhoang/skillctl/internal/installer"
	"github.com/samhoang/skillctl/internal/presenter"
	"github.com/samhoang/skillctl/internal/source"
)

var (
	updatePluginName string
	updateStrict     bool
)

var updateCmd = &cobra.Command{
	Use:     "update",
	Aliases: []string{"up"},
	Short:   "Pull plugins and refresh their skills",
	Long: `Pull the latest commit of each installed plugin and copy its skills again.

Without --plugin-name every installed plugin is updated. A plugin that cannot
be updated is skipped with a warning; use --strict to fail when that happens.

Examples:
  skillctl update
  skillctl update --plugin-name tools`,
	Args: cobra.NoArgs,
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updatePluginName, "plugin-name", "", "Plugin to update (default: all)")
	updateCmd.Flags().BoolVar(&updateStrict, "strict", false, "Exit non-zero if any plugin is skipped")
	updateCmd.RegisterFlagCompletionFunc("plugin-name", completePluginNames)
	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	p := newPresenter(cmd)

	result, err := newManager().Update(cmd.Context(), installer.UpdateOptions{
		PluginName: updatePluginName,
		Strict:     updateStrict,
	})
	if result != nil {
		printUpdateResult(p, result)
	}
	return err
}

func printUpdateResult(p *presenter.Presenter, result *installer.UpdateResult) {
	if len(result.Updated) == 0 && len(result.Skipped) == 0 {
		p.Info("No plugins installed")
		return
	}

	for _, u := range result.Updated {
		status := "up to date"
		if u.Changed {
			status = fmt.Sprintf("%s -> %s", shortOrNone(u.OldCommit), source.ShortCommit(u.NewCommit))
		}
		if u.Recloned {
			status += ", re-cloned"
		}
		p.Success(fmt.Sprintf("%s: %s (%d skills)", u.Name, status, len(u.Skills)))
		if len(u.Removed) > 0 {
			p.Detail("removed: " + strings.Join(u.Removed, ", "))
		}
		if len(u.Conflicted) > 0 {
			p.Detail("owned by another plugin: " + strings.Join(u.Conflicted, ", "))
		}
	}

	for _, s := range result.Skipped {
		p.Warning(fmt.Sprintf("%s: skipped: %v", s.Plugin, s.Err))
	}
}

func shortOrNone(commit string) string {
	if commit == "" {
		return "(none)"
	}
	return source.ShortCommit(commit)
}
