package cmd

import (
	"github.com/spf13/cobra"

	"github.com/samhoang/skillctl/internal/installer"
	"github.com/samhoang/skillctl/internal/presenter"
)

// newManager builds the installer for the loaded configuration.
// Tests replace it to avoid running git.
var newManager = func() *installer.Manager {
	return installer.NewManagerFromConfig(appConfig, appPaths)
}

func newPresenter(cmd *cobra.Command) *presenter.Presenter {
	return presenter.NewWithOptions(cmd.OutOrStdout(), cmd.ErrOrStderr(), presenter.DetectColorMode())
}
