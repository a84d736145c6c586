package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tgienger/tasks/internal/app"
	"github.com/tgienger/tasks/internal/models"
	"github.com/tgienger/tasks/internal/notify"
)

func newStatsCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show progress and completion counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(func(a *app.App) error {
				st := a.Store.Stats()
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Total:           %d\n", st.Total)
				fmt.Fprintf(out, "Completed:       %d (%.0f%%)\n", st.Completed, st.Percent)
				fmt.Fprintf(out, "Pending:         %d\n", st.Pending)
				fmt.Fprintf(out, "Done today:      %d\n", st.CompletedToday)
				fmt.Fprintf(out, "Done this week:  %d\n", st.CompletedWeek)
				fmt.Fprintf(out, "Streak:          %d days\n", st.Streak)
				fmt.Fprintf(out, "Overdue:         %d\n", st.Overdue)
				fmt.Fprintf(out, "Due today:       %d\n", st.DueToday)
				return nil
			})
		},
	}
}

func newDueCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "due",
		Short: "List pending tasks due today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(func(a *app.App) error {
				out := cmd.OutOrStdout()
				n, err := notify.New(a.Store, func(due []models.Task) {
					for _, t := range due {
						printTask(out, t)
					}
				}, a.Logger, notify.Config{Interval: a.Config.NotifyInterval})
				if err != nil {
					return err
				}
				if len(n.Check()) == 0 {
					fmt.Fprintln(out, "Nothing due today.")
				}
				return nil
			})
		},
	}
}
