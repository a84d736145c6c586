package views

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tgienger/tasks/internal/errs"
	"github.com/tgienger/tasks/internal/models"
	"github.com/tgienger/tasks/internal/snapshot"
	"github.com/tgienger/tasks/internal/store"
	"github.com/tgienger/tasks/internal/ui/keys"
	"github.com/tgienger/tasks/internal/ui/styles"
)

// clamp returns val clamped between minVal and maxVal
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// FocusArea represents which part of the UI has focus
type FocusArea int

const (
	FocusSearchInput FocusArea = iota
	FocusTaskList
)

// new task form fields
const (
	fieldText = iota
	fieldPriority
	fieldDue
	fieldSave
	fieldCount
)

// ThemeSaver persists the theme choice
type ThemeSaver interface {
	SetTheme(name string) error
}

// ShowStats asks the app to switch to the stats view
type ShowStats struct{}

// DueTodayMsg carries tasks that became due today
type DueTodayMsg struct {
	Tasks []models.Task
}

// SaveFailedMsg reports a background save that did not reach storage
type SaveFailedMsg struct {
	Err error
}

// ThemeChangedMsg is sent after the theme was switched
type ThemeChangedMsg struct{}

type tasksLoadedMsg struct {
	tasks []models.Task
	stats models.Stats
}

type importDoneMsg struct {
	path   string
	result store.ImportResult
	err    error
}

// TaskListView shows the task list
type TaskListView struct {
	store  *store.Store
	themes ThemeSaver
	tasks  []models.Task
	stats  models.Stats
	styles *styles.Styles
	keys   keys.KeyMap

	width  int
	height int

	// UI state
	focus       FocusArea
	cursor      int
	scrollY     int
	searchInput textinput.Model
	filter      models.FilterMode

	// Task creation/editing
	editing      bool
	editingNew   bool
	editingID    int64
	editText     textinput.Model
	editDue      textinput.Model
	editPriority models.Priority
	editFocusIdx int
	editErr      string

	// Delete confirmation
	confirmingDelete bool
	deleteTargetID   int64
	deleteTargetName string

	// Clear-all confirmation
	confirmingClear bool

	// Import prompt
	importing   bool
	importInput textinput.Model

	// Banner line under the header
	banner      string
	bannerError bool

	showHelpPopup bool
}

// NewTaskListView creates a new task list view
func NewTaskListView(st *store.Store, themes ThemeSaver, s *styles.Styles) *TaskListView {
	search := textinput.New()
	search.Placeholder = "Search tasks..."
	search.CharLimit = 100

	editText := textinput.New()
	editText.Placeholder = "What needs doing?"
	editText.CharLimit = 200

	editDue := textinput.New()
	editDue.Placeholder = "YYYY-MM-DD (optional)"
	editDue.CharLimit = 10

	importInput := textinput.New()
	importInput.Placeholder = snapshot.DefaultFileName
	importInput.CharLimit = 500

	return &TaskListView{
		store:       st,
		themes:      themes,
		styles:      s,
		keys:        keys.DefaultKeyMap(),
		focus:       FocusTaskList,
		filter:      models.FilterAll,
		searchInput: search,
		editText:    editText,
		editDue:     editDue,
		importInput: importInput,
	}
}

// Init initializes the view
func (v *TaskListView) Init() tea.Cmd {
	return v.loadTasks
}

func (v *TaskListView) loadTasks() tea.Msg {
	var tasks []models.Task
	for t := range v.store.VisibleTasks(v.searchInput.Value(), v.filter) {
		tasks = append(tasks, t)
	}
	return tasksLoadedMsg{tasks: tasks, stats: v.store.Stats()}
}

func (v *TaskListView) setBanner(text string, isError bool) {
	v.banner = text
	v.bannerError = isError
}

// Update handles messages
func (v *TaskListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		return v, nil

	case tasksLoadedMsg:
		v.tasks = msg.tasks
		v.stats = msg.stats
		if v.cursor >= len(v.tasks) {
			v.cursor = max(0, len(v.tasks)-1)
		}
		v.ensureVisible()
		return v, nil

	case DueTodayMsg:
		names := make([]string, len(msg.Tasks))
		for i, t := range msg.Tasks {
			names[i] = t.DisplayText()
		}
		v.setBanner("Due today: "+strings.Join(names, ", "), false)
		return v, nil

	case SaveFailedMsg:
		v.setBanner("Could not save tasks: "+msg.Err.Error(), true)
		return v, nil

	case importDoneMsg:
		if msg.err != nil {
			v.setBanner(importErrorText(msg.path, msg.err), true)
			return v, nil
		}
		r := msg.result
		v.setBanner(fmt.Sprintf("Imported %d tasks (%d rejected, %d duplicates)", r.Imported, r.Rejected, r.Duplicates), false)
		return v, v.loadTasks

	case tea.KeyMsg:
		// Handle help popup first - any key closes it
		if v.showHelpPopup {
			v.showHelpPopup = false
			return v, nil
		}

		if v.confirmingDelete {
			return v.updateConfirmDelete(msg)
		}

		if v.confirmingClear {
			return v.updateConfirmClear(msg)
		}

		if v.importing {
			return v.updateImporting(msg)
		}

		if v.editing {
			return v.updateEditing(msg)
		}

		return v.updateNormal(msg)
	}

	return v, nil
}

func importErrorText(path string, err error) string {
	switch {
	case errs.Is(err, errs.CodeParse):
		return "Import failed: " + path + " is not valid " + string(snapshot.FormatFromPath(path))
	case errs.Is(err, errs.CodeFormat):
		return "Import failed: " + path + " does not contain a list of tasks"
	default:
		return "Import failed: " + err.Error()
	}
}

func (v *TaskListView) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle search input typing first - don't process hotkeys while typing
	if v.focus == FocusSearchInput {
		switch {
		case key.Matches(msg, v.keys.Back):
			v.searchInput.Blur()
			v.searchInput.Reset()
			v.focus = FocusTaskList
			return v, v.loadTasks
		case key.Matches(msg, v.keys.Enter):
			v.searchInput.Blur()
			v.focus = FocusTaskList
			return v, v.loadTasks
		default:
			var cmd tea.Cmd
			v.searchInput, cmd = v.searchInput.Update(msg)
			v.cursor = 0
			v.scrollY = 0
			return v, tea.Batch(cmd, v.loadTasks)
		}
	}

	switch {
	case key.Matches(msg, v.keys.Quit):
		return v, tea.Quit

	case key.Matches(msg, v.keys.Back):
		v.banner = ""
		return v, nil

	case key.Matches(msg, v.keys.Up):
		if v.cursor > 0 {
			v.cursor--
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Down):
		if v.cursor < len(v.tasks)-1 {
			v.cursor++
			v.ensureVisible()
		}
		return v, nil

	case key.Matches(msg, v.keys.Toggle):
		if t, ok := v.selected(); ok {
			v.store.ToggleComplete(t.ID)
			return v, v.loadTasks
		}
		return v, nil

	case key.Matches(msg, v.keys.MoveUp):
		return v, v.moveSelected(-1)

	case key.Matches(msg, v.keys.MoveDown):
		return v, v.moveSelected(1)

	case key.Matches(msg, v.keys.Edit):
		if t, ok := v.selected(); ok {
			v.startEditTask(t)
			return v, textinput.Blink
		}
		return v, nil

	case key.Matches(msg, v.keys.New):
		v.startNewTask()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Delete):
		if t, ok := v.selected(); ok {
			v.confirmingDelete = true
			v.deleteTargetID = t.ID
			v.deleteTargetName = t.DisplayText()
		}
		return v, nil

	case key.Matches(msg, v.keys.ClearAll):
		if v.store.Len() > 0 {
			v.confirmingClear = true
		}
		return v, nil

	case key.Matches(msg, v.keys.Search):
		v.focus = FocusSearchInput
		v.searchInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Filter):
		v.filter = v.filter.Next()
		v.cursor = 0
		v.scrollY = 0
		return v, v.loadTasks

	case key.Matches(msg, v.keys.Theme):
		name := styles.ToggleTheme()
		*v.styles = *styles.NewStyles()
		if err := v.themes.SetTheme(name); err != nil {
			v.setBanner("Could not save theme: "+err.Error(), true)
		}
		return v, func() tea.Msg { return ThemeChangedMsg{} }

	case key.Matches(msg, v.keys.Stats):
		return v, func() tea.Msg { return ShowStats{} }

	case key.Matches(msg, v.keys.Import):
		v.importing = true
		v.importInput.Reset()
		v.importInput.Focus()
		return v, textinput.Blink

	case key.Matches(msg, v.keys.Help):
		v.showHelpPopup = true
		return v, nil
	}

	return v, nil
}

func (v *TaskListView) selected() (models.Task, bool) {
	if v.cursor < 0 || v.cursor >= len(v.tasks) {
		return models.Task{}, false
	}
	return v.tasks[v.cursor], true
}

// moveSelected swaps the selected task with its visible neighbour in the
// given direction and commits the new order.
func (v *TaskListView) moveSelected(dir int) tea.Cmd {
	target := v.cursor + dir
	if target < 0 || target >= len(v.tasks) {
		return nil
	}
	ids, ok := swapIDs(v.store.IDs(), v.tasks[v.cursor].ID, v.tasks[target].ID)
	if !ok {
		return v.loadTasks
	}
	if err := v.store.Reorder(ids); err != nil {
		v.setBanner("Could not move task: "+err.Error(), true)
		return v.loadTasks
	}
	v.cursor = target
	v.ensureVisible()
	return v.loadTasks
}

// swapIDs returns a copy of ids with a and b exchanged
func swapIDs(ids []int64, a, b int64) ([]int64, bool) {
	ia, ib := -1, -1
	for i, id := range ids {
		switch id {
		case a:
			ia = i
		case b:
			ib = i
		}
	}
	if ia < 0 || ib < 0 || ia == ib {
		return nil, false
	}
	out := make([]int64, len(ids))
	copy(out, ids)
	out[ia], out[ib] = out[ib], out[ia]
	return out, true
}

func (v *TaskListView) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.store.Delete(v.deleteTargetID)
		v.confirmingDelete = false
		return v, v.loadTasks
	case "n", "N", "esc":
		v.confirmingDelete = false
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) updateConfirmClear(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmingClear = false
		if err := v.store.ClearAll(); err != nil {
			v.setBanner("Tasks cleared, but saving failed: "+err.Error(), true)
		} else {
			v.setBanner("All tasks cleared", false)
		}
		v.cursor = 0
		v.scrollY = 0
		return v, v.loadTasks
	case "n", "N", "esc":
		v.confirmingClear = false
		return v, nil
	}
	return v, nil
}

func (v *TaskListView) updateImporting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.importing = false
		v.importInput.Blur()
		return v, nil
	case key.Matches(msg, v.keys.Enter):
		path := strings.TrimSpace(v.importInput.Value())
		if path == "" {
			path = snapshot.DefaultFileName
		}
		v.importing = false
		v.importInput.Blur()
		return v, v.importFile(path)
	}

	var cmd tea.Cmd
	v.importInput, cmd = v.importInput.Update(msg)
	return v, cmd
}

func (v *TaskListView) importFile(path string) tea.Cmd {
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return importDoneMsg{path: path, err: err}
		}
		res, err := v.store.Import(data, snapshot.FormatFromPath(path))
		return importDoneMsg{path: path, result: res, err: err}
	}
}

func (v *TaskListView) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, v.keys.Back):
		v.editing = false
		return v, nil

	case key.Matches(msg, v.keys.Save):
		return v, v.saveTask()

	case key.Matches(msg, v.keys.Enter):
		// inline edit and the last field submit; other fields advance
		if !v.editingNew || v.editFocusIdx >= fieldDue {
			return v, v.saveTask()
		}
		v.editFocusIdx++
		v.updateEditFocus()
		return v, nil
	}

	if v.editingNew {
		switch {
		case key.Matches(msg, v.keys.Tab):
			v.editFocusIdx = (v.editFocusIdx + 1) % fieldCount
			v.updateEditFocus()
			return v, nil

		case msg.String() == "shift+tab":
			v.editFocusIdx = (v.editFocusIdx + fieldCount - 1) % fieldCount
			v.updateEditFocus()
			return v, nil

		case v.editFocusIdx == fieldPriority && key.Matches(msg, v.keys.Right):
			v.editPriority = v.editPriority.Next()
			return v, nil

		case v.editFocusIdx == fieldPriority && key.Matches(msg, v.keys.Left):
			v.editPriority = v.editPriority.Prev()
			return v, nil
		}
	}

	var cmd tea.Cmd
	switch v.editFocusIdx {
	case fieldText:
		v.editText, cmd = v.editText.Update(msg)
	case fieldDue:
		v.editDue, cmd = v.editDue.Update(msg)
	}
	return v, cmd
}

func (v *TaskListView) ensureVisible() {
	visibleItems := v.visibleItems()
	if v.cursor < v.scrollY {
		v.scrollY = v.cursor
	} else if v.cursor >= v.scrollY+visibleItems {
		v.scrollY = v.cursor - visibleItems + 1
	}
}

// visibleItems is how many task rows fit below the header
func (v *TaskListView) visibleItems() int {
	return max(v.height-14, 1)
}

func (v *TaskListView) startNewTask() {
	v.editing = true
	v.editingNew = true
	v.editingID = 0
	v.editFocusIdx = fieldText
	v.editErr = ""
	v.editText.Reset()
	v.editDue.Reset()
	v.editPriority = models.PriorityLow
	v.updateEditFocus()
}

func (v *TaskListView) startEditTask(task models.Task) {
	v.editing = true
	v.editingNew = false
	v.editingID = task.ID
	v.editFocusIdx = fieldText
	v.editErr = ""
	// stored text is escaped; edit the readable form
	v.editText.SetValue(task.DisplayText())
	v.editText.CursorEnd()
	v.updateEditFocus()
}

func (v *TaskListView) updateEditFocus() {
	v.editText.Blur()
	v.editDue.Blur()

	switch v.editFocusIdx {
	case fieldText:
		v.editText.Focus()
	case fieldDue:
		v.editDue.Focus()
	}
}

func (v *TaskListView) saveTask() tea.Cmd {
	text := strings.TrimSpace(v.editText.Value())

	if !v.editingNew {
		v.editing = false
		if v.store.EditText(v.editingID, text) {
			return v.loadTasks
		}
		return nil
	}

	if text == "" {
		v.editing = false
		return nil
	}
	due, err := models.ParseDate(v.editDue.Value())
	if err != nil {
		v.editErr = "Due date must look like 2024-03-01"
		v.editFocusIdx = fieldDue
		v.updateEditFocus()
		return nil
	}
	v.store.Add(text, v.editPriority, due)
	v.editing = false
	v.cursor = 0
	v.scrollY = 0
	return v.loadTasks
}

// View renders the view
func (v *TaskListView) View() string {
	if v.showHelpPopup {
		return v.renderHelpPopup()
	}

	if v.confirmingDelete {
		return v.renderConfirm("Delete Task?", v.deleteTargetName)
	}

	if v.confirmingClear {
		return v.renderConfirm("Clear All Tasks?", fmt.Sprintf("This removes all %d tasks.", v.store.Len()))
	}

	if v.editing && v.editingNew {
		return v.renderNewForm()
	}

	var b strings.Builder

	b.WriteString(v.renderHeader())
	b.WriteString("\n")
	if v.banner != "" {
		style := v.styles.Banner
		if v.bannerError {
			style = v.styles.BannerError
		}
		b.WriteString(style.Width(styles.ContentWidth(v.width)).Render(v.banner))
		b.WriteString("\n")
	}
	if v.importing {
		b.WriteString(v.styles.InputFocused.Width(clamp(styles.ContentWidth(v.width)-6, 20, 60)).Render("Import from: " + v.importInput.View()))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(v.renderTaskList())

	b.WriteString("\n")
	b.WriteString(v.renderHelp())

	return styles.CenterView(b.String(), v.width, v.height)
}

func (v *TaskListView) renderHeader() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	isNarrow := contentWidth < 60
	st := v.stats

	title := s.Title.Render("Tasks")
	counts := s.TitleMuted.Render(fmt.Sprintf("%d/%d done", st.Completed, st.Total))

	barWidth := clamp(contentWidth-30, 10, 40)
	progress := lipgloss.JoinHorizontal(lipgloss.Center,
		s.ProgressBar(st.Percent, barWidth),
		" ",
		s.TitleMuted.Render(fmt.Sprintf("%3.0f%%", st.Percent)),
	)

	summary := s.TitleMuted.Render(fmt.Sprintf("today %d • week %d • streak %d", st.CompletedToday, st.CompletedWeek, st.Streak))
	if st.Overdue > 0 {
		summary += "  " + s.TaskOverdue.Render(fmt.Sprintf("%d overdue", st.Overdue))
	}

	// Search input - dynamic width
	searchStyle := s.Input
	if v.focus == FocusSearchInput {
		searchStyle = s.InputFocused
	}
	searchWidth := clamp(contentWidth-24, 10, 30)
	searchBox := searchStyle.Width(searchWidth).Render(v.searchInput.View())

	filterLabel := string(v.filter)
	if !isNarrow {
		filterLabel = "Show: " + filterLabel
	}
	filterBtn := s.Button.Render(filterLabel)

	var controls string
	if isNarrow {
		controls = lipgloss.JoinVertical(lipgloss.Left, searchBox, filterBtn)
	} else {
		controls = lipgloss.JoinHorizontal(lipgloss.Center, searchBox, "  ", filterBtn)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", counts),
		progress,
		summary,
		controls,
	)
}

func (v *TaskListView) renderTaskList() string {
	s := v.styles

	if len(v.tasks) == 0 {
		if v.store.Len() == 0 {
			return s.TitleMuted.Render("No tasks. Press 'n' to create one.")
		}
		return s.TitleMuted.Render("No tasks match.")
	}

	var items []string
	endIdx := min(v.scrollY+v.visibleItems(), len(v.tasks))

	for i := v.scrollY; i < endIdx; i++ {
		task := v.tasks[i]
		if v.editing && !v.editingNew && task.ID == v.editingID {
			items = append(items, s.InputFocused.Width(max(styles.ContentWidth(v.width)-6, 20)).Render(v.editText.View()))
			continue
		}
		items = append(items, v.renderTaskItem(task, i == v.cursor && v.focus == FocusTaskList))
	}

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (v *TaskListView) priorityMarker(p models.Priority) string {
	s := v.styles
	switch p {
	case models.PriorityHigh:
		return s.PriorityHigh.Render("!!!")
	case models.PriorityMedium:
		return s.PriorityMed.Render("!! ")
	default:
		return s.PriorityLow.Render("!  ")
	}
}

func (v *TaskListView) renderTaskItem(task models.Task, selected bool) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	width := max(contentWidth-4, 20)

	checkbox := "[ ]"
	if task.Completed {
		checkbox = "[x]"
	}

	text := task.DisplayText()
	if task.Completed && !selected {
		text = s.TaskDone.Render(text)
	}

	due := ""
	if task.HasDueDate() {
		dueStyle := s.TaskDue
		if task.Overdue(v.store.Now()) {
			dueStyle = s.TaskOverdue
		}
		due = " " + dueStyle.Render(task.DueDate.String())
	}

	line := checkbox + " " + v.priorityMarker(task.Priority) + " " + text + due

	itemStyle := s.ListItem.Width(width)
	if selected {
		itemStyle = s.ListSelected.Width(width)
	}
	return itemStyle.Render(line)
}

func (v *TaskListView) renderNewForm() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	textStyle := s.Input
	priorityStyle := s.Input
	dueStyle := s.Input
	btnStyle := s.Button

	switch v.editFocusIdx {
	case fieldText:
		textStyle = s.InputFocused
	case fieldPriority:
		priorityStyle = s.InputFocused
	case fieldDue:
		dueStyle = s.InputFocused
	case fieldSave:
		btnStyle = s.ButtonFocused
	}

	// Dynamic input width based on content width
	inputWidth := clamp(contentWidth-6, 20, 50)

	parts := []string{
		s.Title.Render("New Task"),
		"",
		"Task:",
		textStyle.Width(inputWidth).Render(v.editText.View()),
		"",
		"Priority:",
		priorityStyle.Width(16).Render("← " + v.priorityMarker(v.editPriority) + " " + string(v.editPriority) + " →"),
		"",
		"Due date:",
		dueStyle.Width(inputWidth).Render(v.editDue.View()),
	}
	if v.editErr != "" {
		parts = append(parts, s.TaskOverdue.Render(v.editErr))
	}
	parts = append(parts,
		"",
		btnStyle.Render(" Save "),
		"",
		s.TitleMuted.Render("Tab: next • ←→: priority • Ctrl+S: save • Esc: cancel"),
	)

	form := lipgloss.JoinVertical(lipgloss.Left, parts...)

	// Center within content width, then center that in terminal
	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		form,
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderHelp() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)
	// At narrow widths, show hint to press ? for help
	if contentWidth > 0 && contentWidth < 50 {
		return s.Help.Render(s.HelpKey.Render("?") + " help")
	}

	if v.editing {
		return s.Help.Render(fmt.Sprintf("%s save • %s cancel",
			s.HelpKey.Render("↵"),
			s.HelpKey.Render("esc"),
		))
	}

	return s.Help.Render(
		fmt.Sprintf("%s done • %s new • %s edit • %s del • %s move • %s search • %s filter • %s stats • %s help • %s quit",
			s.HelpKey.Render("space"),
			s.HelpKey.Render("n"),
			s.HelpKey.Render("e"),
			s.HelpKey.Render("d"),
			s.HelpKey.Render("K/J"),
			s.HelpKey.Render("/"),
			s.HelpKey.Render("f"),
			s.HelpKey.Render("s"),
			s.HelpKey.Render("?"),
			s.HelpKey.Render("q"),
		),
	)
}

func (v *TaskListView) renderHelpPopup() string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	helpItems := []string{
		s.HelpKey.Render("space") + "  toggle done",
		s.HelpKey.Render("n") + "      new task",
		s.HelpKey.Render("e") + "      edit task",
		s.HelpKey.Render("d") + "      delete task",
		s.HelpKey.Render("X") + "      clear all tasks",
		s.HelpKey.Render("K/J") + "    move task up/down",
		s.HelpKey.Render("/") + "      search",
		s.HelpKey.Render("f") + "      filter: all/pending/completed",
		s.HelpKey.Render("i") + "      import from file",
		s.HelpKey.Render("s") + "      statistics",
		s.HelpKey.Render("T") + "      light/dark theme",
		s.HelpKey.Render("q") + "      quit",
		"",
		s.TitleMuted.Render("Press any key to close"),
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{s.Title.Render("Keyboard Shortcuts"), ""}, helpItems...)...,
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		s.FilterBar.Render(content),
	)
	return styles.CenterView(centered, v.width, v.height)
}

func (v *TaskListView) renderConfirm(title, detail string) string {
	s := v.styles
	contentWidth := styles.ContentWidth(v.width)

	content := lipgloss.JoinVertical(lipgloss.Center,
		s.Title.Foreground(styles.Current.Error).Render(title),
		"",
		s.TitleMuted.Width(clamp(contentWidth-10, 20, 60)).Align(lipgloss.Center).Render(detail),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center,
			s.ButtonPrimary.Render(" Y - Yes "),
			"  ",
			s.Button.Render(" N - No "),
		),
	)

	centered := lipgloss.Place(contentWidth, v.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
	return styles.CenterView(centered, v.width, v.height)
}
