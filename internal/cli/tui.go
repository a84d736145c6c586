package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tgienger/tasks/internal/models"
	"github.com/tgienger/tasks/internal/ui"
	"github.com/tgienger/tasks/internal/ui/views"
)

func runTUI(cmd *cobra.Command, o *options) error {
	a, err := o.openApp()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	stopSignals := a.ListenForSignals(cancel)
	defer stopSignals()

	p := tea.NewProgram(ui.NewApp(a.Store, a), tea.WithAltScreen(), tea.WithContext(ctx))

	// Send blocks until the program loop runs, so deliver from goroutines
	a.OnSaveError(func(err error) {
		go p.Send(views.SaveFailedMsg{Err: err})
	})
	if _, err := a.StartNotifier(func(due []models.Task) {
		go p.Send(views.DueTodayMsg{Tasks: due})
	}); err != nil {
		a.Close()
		return err
	}

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		err = nil
	}
	return errors.Join(err, a.Close())
}
