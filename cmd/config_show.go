package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration after applying defaults, the config file,
SKILLCTL_* environment variables and command-line flags.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	data, err := appConfig.Marshal()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# config:   %s\n", appPaths.ConfigPath)
	fmt.Fprintf(out, "# registry: %s\n", appPaths.RegistryPath)
	fmt.Fprintf(out, "# cache:    %s\n", appPaths.CacheDir)
	fmt.Fprintf(out, "# skills:   %s\n\n", appPaths.SkillsDir)
	_, err = out.Write(data)
	return err
}
