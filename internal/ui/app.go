package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tgienger/tasks/internal/store"
	"github.com/tgienger/tasks/internal/ui/styles"
	"github.com/tgienger/tasks/internal/ui/views"
)

// Currently active view
type View int

const (
	ViewTasks View = iota
	ViewStats
)

// Preferences reads and stores the theme choice
type Preferences interface {
	Theme() string
	SetTheme(name string) error
}

type App struct {
	currentView View
	taskList    *views.TaskListView
	stats       *views.StatsView
	width       int
	height      int
}

// Creates a new application
func NewApp(st *store.Store, prefs Preferences) *App {
	// an unknown or empty saved theme keeps the default
	styles.SetTheme(prefs.Theme())
	s := styles.NewStyles()

	return &App{
		currentView: ViewTasks,
		taskList:    views.NewTaskListView(st, prefs, s),
		stats:       views.NewStatsView(st, s),
	}
}

func (a *App) Init() tea.Cmd {
	return a.taskList.Init()
}

func (a *App) resize() tea.Cmd {
	return func() tea.Msg {
		return tea.WindowSizeMsg{Width: a.width, Height: a.height}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Both views keep their size while hidden
		a.taskList.Update(msg)
		a.stats.Update(msg)
		return a, nil

	case views.ShowStats:
		a.currentView = ViewStats
		return a, tea.Batch(a.stats.Init(), a.resize())

	case views.BackToTasks:
		a.currentView = ViewTasks
		return a, tea.Batch(a.taskList.Init(), a.resize())

	case views.ThemeChangedMsg:
		a.stats.Update(msg)
		return a, nil

	case views.DueTodayMsg, views.SaveFailedMsg:
		// Banners belong to the task list even while stats are shown
		_, cmd := a.taskList.Update(msg)
		return a, cmd
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewStats:
		_, cmd = a.stats.Update(msg)
	default:
		_, cmd = a.taskList.Update(msg)
	}

	return a, cmd
}

func (a *App) View() string {
	if a.currentView == ViewStats {
		return a.stats.View()
	}
	return a.taskList.View()
}
