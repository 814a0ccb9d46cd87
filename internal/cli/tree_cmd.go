package cli

import (
	"context"
	"fmt"

	"github.com/avollmer/leitstand/internal/cli/formatter"
	"github.com/avollmer/leitstand/internal/domain"
	"github.com/avollmer/leitstand/internal/hierarchy"
	"github.com/avollmer/leitstand/internal/service"
	"github.com/spf13/cobra"
)

func newTreeCmd(app *App) *cobra.Command {
	var view string
	var project string
	var hideCompleted bool

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show the matched sales/production hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !domain.ValidViewModes[view] {
				return fmt.Errorf("unknown view %q (use production, sales or standalone)", view)
			}

			ov, err := app.Overview.BuildOverview(context.Background(), service.OverviewRequest{
				View:          domain.ViewMode(view),
				Project:       project,
				HideCompleted: hideCompleted,
			})
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatOverview(ov, func(n *hierarchy.Node) bool {
				return app.Builder.SubtreeCompleted(n)
			}))
			return nil
		},
	}

	cmd.Flags().StringVar(&view, "view", string(domain.ViewSales), "Hierarchy view: production, sales or standalone")
	cmd.Flags().StringVar(&project, "project", "", "Restrict to a single project number")
	cmd.Flags().BoolVar(&hideCompleted, "hide-completed", false, "Hide fully completed subtrees")

	return cmd
}
