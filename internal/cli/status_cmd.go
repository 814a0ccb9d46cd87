package cli

import (
	"context"
	"fmt"

	"github.com/avollmer/leitstand/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show database contents and recent imports",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Overview.GetStatus(context.Background())
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatStatus(report))
			return nil
		},
	}
}
