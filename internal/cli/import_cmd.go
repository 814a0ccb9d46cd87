package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/avollmer/leitstand/internal/cli/formatter"
	"github.com/avollmer/leitstand/internal/domain"
	"github.com/avollmer/leitstand/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <sales|production> <file>",
		Short: "Import a ledger export (CSV)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset := domain.Dataset(args[0])
			path := args[1]

			if replace {
				ok, err := confirmReplace(app, dataset)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Import cancelled.")
					return nil
				}
			}

			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("opening %s: %w", path, err)
			}
			defer f.Close()

			sum, err := app.Import.ImportLedger(context.Background(), service.ImportRequest{
				Dataset:    dataset,
				SourceFile: filepath.Base(path),
				Reader:     f,
				Replace:    replace,
			})
			if err != nil {
				return err
			}

			fmt.Print(formatter.FormatImportSummary(sum))
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "Delete the dataset's existing records before importing")

	return cmd
}

// confirmReplace asks before wiping a dataset. Non-interactive runs proceed
// without a prompt, so imports stay scriptable.
func confirmReplace(app *App, dataset domain.Dataset) (bool, error) {
	if app.IsInteractive == nil || !app.IsInteractive() {
		return true, nil
	}
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete all existing %s records before importing?", dataset)).
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
