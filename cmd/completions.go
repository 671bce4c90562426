package cmd

import (
	"github.com/spf13/cobra"

	"github.com/samhoang/skillctl/internal/config"
	"github.com/samhoang/skillctl/internal/registry"
)

// completePluginNames lists plugin names from the registry
func completePluginNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	paths := appPaths
	if paths == nil {
		resolved, err := config.ResolvePaths()
		if err != nil {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		paths = resolved
	}

	reg, err := registry.NewStore(paths.RegistryPath).Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	return reg.Names(), cobra.ShellCompDirectiveNoFileComp
}
