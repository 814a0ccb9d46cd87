package cli

import (
	"strings"

	"github.com/avollmer/leitstand/internal/hierarchy"
	"github.com/avollmer/leitstand/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// App holds references to the services used by CLI commands.
type App struct {
	Overview service.OverviewService
	Import   service.ImportService
	Builder  *hierarchy.Builder

	// IsInteractive reports whether stdin is a terminal; confirmation
	// prompts and the browse TUI require it.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "leitstand" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "leitstand",
		Short: "Production control room for sales and production ledgers",
	}

	// Flag names are matched case-insensitively; the ERP crowd types
	// --Project as often as --project.
	root.PersistentFlags().SetNormalizeFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ToLower(name))
	})

	root.AddCommand(
		newImportCmd(app),
		newTreeCmd(app),
		newStatusCmd(app),
		newBrowseCmd(app),
	)

	return root
}
