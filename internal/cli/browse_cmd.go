package cli

import (
	"fmt"

	"github.com/avollmer/leitstand/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newBrowseCmd(app *App) *cobra.Command {
	var view string
	var project string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the hierarchy interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.ValidViewModes[view] {
				return fmt.Errorf("unknown view %q (use production, sales or standalone)", view)
			}
			if app.IsInteractive != nil && !app.IsInteractive() {
				return fmt.Errorf("browse needs an interactive terminal; use \"leitstand tree\" instead")
			}

			model := newBrowseModel(app, domain.ViewMode(view), project)
			_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&view, "view", string(domain.ViewSales), "Hierarchy view: production, sales or standalone")
	cmd.Flags().StringVar(&project, "project", "", "Restrict to a single project number")

	return cmd
}
