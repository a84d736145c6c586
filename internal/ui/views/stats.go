package views

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/tasks/internal/models"
	"github.com/tgienger/tasks/internal/store"
	"github.com/tgienger/tasks/internal/ui/keys"
	"github.com/tgienger/tasks/internal/ui/styles"
)

type dueItem struct {
	task models.Task
}

func (i dueItem) Title() string       { return i.task.DisplayText() }
func (i dueItem) Description() string { return string(i.task.Priority) + " priority" }
func (i dueItem) FilterValue() string { return i.task.DisplayText() }

type dueDelegate struct {
	styles *styles.Styles
	width  int
}

func (d dueDelegate) Height() int                               { return 2 }
func (d dueDelegate) Spacing() int                              { return 1 }
func (d dueDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

func (d dueDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(dueItem)
	if !ok {
		return
	}

	selected := index == m.Index()
	width := max(d.width-4, 20)

	var titleStyle, descStyle lipgloss.Style
	if selected {
		titleStyle = d.styles.ListSelected.Width(width)
		descStyle = d.styles.ListSelected.Foreground(styles.Current.ForegroundDim).Width(width)
	} else {
		titleStyle = d.styles.ListItem.Width(width)
		descStyle = d.styles.ListItem.Foreground(styles.Current.ForegroundDim).Width(width)
	}

	fmt.Fprintf(w, "%s\n%s", titleStyle.Render(it.Title()), descStyle.Render(it.Description()))
}

// BackToTasks signals to go back to the task list
type BackToTasks struct{}

type statsLoadedMsg struct {
	stats models.Stats
	due   []models.Task
}

// StatsView shows progress counters and the tasks due today
type StatsView struct {
	store    *store.Store
	stats    models.Stats
	list     list.Model
	delegate *dueDelegate
	styles   *styles.Styles
	keys     keys.KeyMap
	width    int
	height   int
}

// NewStatsView creates the stats view
func NewStatsView(st *store.Store, s *styles.Styles) *StatsView {
	delegate := &dueDelegate{styles: s, width: styles.MaxWidth}

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Due today"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = s.Title
	l.SetShowHelp(false)

	return &StatsView{
		store:    st,
		list:     l,
		delegate: delegate,
		styles:   s,
		keys:     keys.DefaultKeyMap(),
	}
}

// Init loads the counters
func (v *StatsView) Init() tea.Cmd {
	return v.loadStats
}

func (v *StatsView) loadStats() tea.Msg {
	return statsLoadedMsg{stats: v.store.Stats(), due: v.store.DueTodayAndIncomplete()}
}

// Update handles messages
func (v *StatsView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		contentWidth := styles.ContentWidth(v.width)
		v.delegate.width = contentWidth
		v.list.SetSize(contentWidth, max(v.height-14, 4))
		return v, nil

	case ThemeChangedMsg:
		v.list.Styles.Title = v.styles.Title
		return v, nil

	case statsLoadedMsg:
		v.stats = msg.stats
		items := make([]list.Item, len(msg.due))
		for i, t := range msg.due {
			items[i] = dueItem{task: t}
		}
		return v, v.list.SetItems(items)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, v.keys.Quit):
			return v, tea.Quit
		case key.Matches(msg, v.keys.Back), key.Matches(msg, v.keys.Stats):
			return v, func() tea.Msg { return BackToTasks{} }
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

// View renders the view
func (v *StatsView) View() string {
	s := v.styles
	st := v.stats
	contentWidth := styles.ContentWidth(v.width)

	row := func(label string, value any) string {
		return lipgloss.JoinHorizontal(lipgloss.Left,
			s.TitleMuted.Width(18).Render(label),
			s.TaskTitle.Render(fmt.Sprint(value)),
		)
	}

	overdue := s.TaskTitle.Render(fmt.Sprint(st.Overdue))
	if st.Overdue > 0 {
		overdue = s.TaskOverdue.Render(fmt.Sprint(st.Overdue))
	}

	counters := lipgloss.JoinVertical(lipgloss.Left,
		s.Title.Render("Statistics"),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ProgressBar(st.Percent, clamp(contentWidth-12, 10, 50)),
			" ",
			s.TitleMuted.Render(fmt.Sprintf("%.0f%%", st.Percent)),
		),
		"",
		row("Total", st.Total),
		row("Completed", st.Completed),
		row("Pending", st.Pending),
		row("Done today", st.CompletedToday),
		row("Done this week", st.CompletedWeek),
		row("Streak (days)", st.Streak),
		lipgloss.JoinHorizontal(lipgloss.Left, s.TitleMuted.Width(18).Render("Overdue"), overdue),
	)

	var due string
	if len(v.list.Items()) == 0 {
		due = s.TitleMuted.Render("Nothing due today.")
	} else {
		due = v.list.View()
	}

	help := s.Help.Render(fmt.Sprintf("%s back • %s quit",
		s.HelpKey.Render("esc"),
		s.HelpKey.Render("q"),
	))

	content := lipgloss.JoinVertical(lipgloss.Left, counters, "", due, help)
	return styles.CenterView(lipgloss.NewStyle().Padding(1, 2).Render(content), v.width, v.height)
}
