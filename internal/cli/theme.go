package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tgienger/tasks/internal/app"
	"github.com/tgienger/tasks/internal/ui/styles"
)

func newThemeCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [dark|light]",
		Short:     "Show or set the color theme",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{styles.ThemeDark, styles.ThemeLight},
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(func(a *app.App) error {
				if len(args) == 0 {
					name := a.Theme()
					if name == "" {
						name = styles.ThemeDark
					}
					fmt.Fprintln(cmd.OutOrStdout(), name)
					return nil
				}
				if err := a.SetTheme(args[0]); err != nil {
					return fmt.Errorf("save theme: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Theme set to %s\n", args[0])
				return nil
			})
		},
	}
}
