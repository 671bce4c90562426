package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samhoang/skillctl/internal/installer"
	"github.com/samhoang/skillctl/internal/picker"
	"github.com/samhoang/skillctl/internal/source"
)

var (
	installGitURL      string
	installPluginName  string
	installSkills      []string
	installInteractive bool
	installForce       bool
)

var installCmd = &cobra.Command{
	Use:     "install",
	Aliases: []string{"i"},
	Short:   "Install skills from a git repository",
	Long: `Clone a git repository and copy its skills into the skills directory.

Without --skills every skill in the repository is installed. The plugin is
recorded under the repository name unless --plugin-name is given.

Examples:
  skillctl install --git-url https://github.com/acme/tools.git
  skillctl install --git-url git@github.com:acme/tools.git --skills formatter,linter
  skillctl install --git-url https://github.com/acme/tools --plugin-name acme -i`,
	Args: cobra.NoArgs,
	RunE: runInstall,
}

func init() {
	installCmd.Flags().StringVar(&installGitURL, "git-url", "", "Git repository url")
	installCmd.Flags().StringVar(&installPluginName, "plugin-name", "", "Plugin name (default: repository name)")
	installCmd.Flags().StringSliceVar(&installSkills, "skills", nil, "Comma-separated skills to install (default: all)")
	installCmd.Flags().BoolVarP(&installInteractive, "interactive", "i", false, "Choose skills interactively")
	installCmd.Flags().BoolVarP(&installForce, "force", "f", false, "Take over skills installed by another plugin")
	installCmd.MarkFlagRequired("git-url")
	installCmd.MarkFlagsMutuallyExclusive("skills", "interactive")
	rootCmd.AddCommand(installCmd)
}

func runInstall(cmd *cobra.Command, args []string) error {
	p := newPresenter(cmd)

	opts := installer.InstallOptions{
		GitURL:     installGitURL,
		PluginName: installPluginName,
		Skills:     installSkills,
		Force:      installForce,
	}
	if installInteractive {
		opts.Select = picker.SelectSkills
	}

	p.Info(fmt.Sprintf("Installing from %s...", installGitURL))

	result, err := newManager().Install(cmd.Context(), opts)
	if err != nil {
		return err
	}

	plugin := result.Plugin
	p.Success(fmt.Sprintf("Installed %s (%d skills, commit %s)",
		plugin.Name, len(plugin.Skills), source.ShortCommit(plugin.CommitHash)))
	for _, skill := range plugin.Skills {
		p.Detail(skill)
	}

	if result.Replaced {
		p.Warning(fmt.Sprintf("Replaced existing registry entry for %s", plugin.Name))
	}
	if len(result.Transferred) > 0 {
		var moved []string
		for skill, from := range result.Transferred {
			moved = append(moved, fmt.Sprintf("%s (from %s)", skill, from))
		}
		sort.Strings(moved)
		p.Warning("Took over: " + strings.Join(moved, ", "))
	}
	return nil
}
