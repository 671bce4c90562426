package cmd

import (
	"github.com/spf13/cobra"
)

var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for skillctl.

To load completions:

Bash:
  $ source <(skillctl completion bash)
  # To load completions for each session, execute once:
  # Linux:
  $ skillctl completion bash > /etc/bash_completion.d/skillctl
  # macOS:
  $ skillctl completion bash > $(brew --prefix)/etc/bash_completion.d/skillctl

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. Execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ skillctl completion zsh > "${fpath[1]}/_skillctl"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ skillctl completion fish | source
  # To load completions for each session, execute once:
  $ skillctl completion fish > ~/.config/fish/completions/skillctl.fish

PowerShell:
  PS> skillctl completion powershell | Out-String | Invoke-Expression
  # To load completions for every new session, run:
  PS> skillctl completion powershell > skillctl.ps1
  # and source this file from your PowerShell profile.
`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	PersistentPreRunE:     func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletionV2(out, true)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		default:
			return rootCmd.GenPowerShellCompletionWithDesc(out)
		}
	},
}

func init() {
	rootCmd.AddCommand(completionCmd)
}
