package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tgienger/tasks/internal/app"
	"github.com/tgienger/tasks/internal/models"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", s)
	}
	return id, nil
}

func notFound(id int64) error {
	return fmt.Errorf("no task with id %d", id)
}

func printTask(w io.Writer, t models.Task) {
	check := " "
	if t.Completed {
		check = "x"
	}
	due := ""
	if t.HasDueDate() {
		due = "  due " + t.DueDate.String()
	}
	fmt.Fprintf(w, "%d  [%s] %-6s  %s%s\n", t.ID, check, t.Priority, t.DisplayText(), due)
}

func newAddCmd(o *options) *cobra.Command {
	var priority, due string

	cmd := &cobra.Command{
		Use:   "add TEXT...",
		Short: "Add a task at the top of the list",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok := models.ParsePriority(priority)
			if !ok {
				return fmt.Errorf("invalid priority %q (want low, medium or high)", priority)
			}
			d, err := models.ParseDate(due)
			if err != nil {
				return fmt.Errorf("invalid due date %q (want YYYY-MM-DD)", due)
			}
			return o.withApp(func(a *app.App) error {
				t, ok := a.Store.Add(strings.Join(args, " "), p, d)
				if !ok {
					return fmt.Errorf("task text is empty")
				}
				printTask(cmd.OutOrStdout(), t)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&priority, "priority", "p", string(models.PriorityLow), "Priority: low, medium or high")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	return cmd
}

func newListCmd(o *options) *cobra.Command {
	var search, filter string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, ok := models.ParseFilterMode(filter)
			if !ok {
				return fmt.Errorf("invalid filter %q (want all, pending or completed)", filter)
			}
			return o.withApp(func(a *app.App) error {
				out := cmd.OutOrStdout()
				n := 0
				for t := range a.Store.VisibleTasks(search, mode) {
					printTask(out, t)
					n++
				}
				if n == 0 {
					fmt.Fprintln(out, "No tasks.")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only tasks containing this text")
	cmd.Flags().StringVarP(&filter, "filter", "f", string(models.FilterAll), "all, pending or completed")
	return cmd
}

func newDoneCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Toggle a task between pending and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return o.withApp(func(a *app.App) error {
				if !a.Store.ToggleComplete(id) {
					return notFound(id)
				}
				t, _ := a.Store.Get(id)
				printTask(cmd.OutOrStdout(), t)
				return nil
			})
		},
	}
}

func newEditCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "edit ID TEXT...",
		Short: "Replace a task's text",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return o.withApp(func(a *app.App) error {
				if _, ok := a.Store.Get(id); !ok {
					return notFound(id)
				}
				a.Store.EditText(id, strings.Join(args[1:], " "))
				t, _ := a.Store.Get(id)
				printTask(cmd.OutOrStdout(), t)
				return nil
			})
		},
	}
}

func newRmCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return o.withApp(func(a *app.App) error {
				if !a.Store.Delete(id) {
					return notFound(id)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", id)
				return nil
			})
		},
	}
}

func newMoveCmd(o *options) *cobra.Command {
	var before, after string

	cmd := &cobra.Command{
		Use:   "move ID (--before ID | --after ID)",
		Short: "Move a task next to another one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			anchorArg, placeAfter := before, false
			if after != "" {
				anchorArg, placeAfter = after, true
			}
			anchor, err := parseID(anchorArg)
			if err != nil {
				return err
			}
			return o.withApp(func(a *app.App) error {
				ids, err := moveID(a.Store.IDs(), id, anchor, placeAfter)
				if err != nil {
					return err
				}
				return a.Store.Reorder(ids)
			})
		},
	}

	cmd.Flags().StringVar(&before, "before", "", "Place the task before this id")
	cmd.Flags().StringVar(&after, "after", "", "Place the task after this id")
	cmd.MarkFlagsMutuallyExclusive("before", "after")
	cmd.MarkFlagsOneRequired("before", "after")
	return cmd
}

// moveID returns ids with id taken out and put next to anchor
func moveID(ids []int64, id, anchor int64, after bool) ([]int64, error) {
	if id == anchor {
		return nil, fmt.Errorf("cannot move task %d relative to itself", id)
	}
	rest := make([]int64, 0, len(ids))
	found := false
	for _, x := range ids {
		if x == id {
			found = true
			continue
		}
		rest = append(rest, x)
	}
	if !found {
		return nil, notFound(id)
	}

	out := make([]int64, 0, len(ids))
	placed := false
	for _, x := range rest {
		if x == anchor && !after {
			out = append(out, id)
			placed = true
		}
		out = append(out, x)
		if x == anchor && after {
			out = append(out, id)
			placed = true
		}
	}
	if !placed {
		return nil, notFound(anchor)
	}
	return out, nil
}

func newClearCmd(o *options) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withApp(func(a *app.App) error {
				out := cmd.OutOrStdout()
				n := a.Store.Len()
				if n == 0 {
					fmt.Fprintln(out, "No tasks.")
					return nil
				}
				if !yes && !confirm(cmd.InOrStdin(), out, fmt.Sprintf("Delete all %d tasks?", n)) {
					fmt.Fprintln(out, "Aborted.")
					return nil
				}
				if err := a.Store.ClearAll(); err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted %d tasks\n", n)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
