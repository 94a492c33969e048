// Package cli defines the concord command tree.
package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/concord/internal/config"
)

// App holds what every command needs.
type App struct {
	Config config.Config
	Logger *slog.Logger
}

// NewRootCmd creates the top-level "concord" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "concord",
		Short:        "Multi-party negotiation simulator",
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(app),
		newSimulateCmd(app),
		newCarbonCmd(app),
	)

	return root
}
