package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tgienger/tasks/internal/app"
	"github.com/tgienger/tasks/internal/snapshot"
)

// formatFor picks the explicit --format value, or guesses from the path
func formatFor(flag, path string) (snapshot.Format, error) {
	if flag == "" {
		return snapshot.FormatFromPath(path), nil
	}
	return snapshot.ParseFormat(flag)
}

func newImportCmd(o *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Merge tasks from an exported file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			f, err := formatFor(format, path)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			return o.withApp(func(a *app.App) error {
				res, err := a.Store.Import(data, f)
				if err != nil {
					return fmt.Errorf("import %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d tasks (%d rejected, %d duplicates)\n",
					res.Imported, res.Rejected, res.Duplicates)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "json or yaml (default: from file extension)")
	return cmd
}

func newExportCmd(o *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export [FILE]",
		Short: "Write all tasks to a file (- for stdout)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := snapshot.DefaultFileName
			if len(args) == 1 {
				path = args[0]
			}
			f, err := formatFor(format, path)
			if err != nil {
				return err
			}
			return o.withApp(func(a *app.App) error {
				data, err := a.Store.ExportSnapshot(f)
				if err != nil {
					return err
				}
				if path == "-" {
					_, err = cmd.OutOrStdout().Write(data)
					return err
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d tasks to %s\n", a.Store.Len(), path)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "json or yaml (default: from file extension)")
	return cmd
}
