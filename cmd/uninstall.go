package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var uninstallPluginName string

var uninstallCmd = &cobra.Command{
	Use:     "uninstall",
	Aliases: []string{"rm", "remove"},
	Short:   "Remove an installed plugin and its skills",
	Long: `Remove every skill a plugin installed, delete its cached clone and
drop it from the registry.

Example:
  skillctl uninstall --plugin-name tools`,
	Args: cobra.NoArgs,
	RunE: runUninstall,
}

func init() {
	uninstallCmd.Flags().StringVar(&uninstallPluginName, "plugin-name", "", "Plugin to remove")
	uninstallCmd.MarkFlagRequired("plugin-name")
	uninstallCmd.RegisterFlagCompletionFunc("plugin-name", completePluginNames)
	rootCmd.AddCommand(uninstallCmd)
}

func runUninstall(cmd *cobra.Command, args []string) error {
	p := newPresenter(cmd)

	result, err := newManager().Uninstall(cmd.Context(), uninstallPluginName)
	if err != nil {
		return err
	}

	p.Success(fmt.Sprintf("Uninstalled %s (%d of %d skill directories removed)",
		result.Plugin.Name, result.Removed, len(result.Plugin.Skills)))
	return nil
}
