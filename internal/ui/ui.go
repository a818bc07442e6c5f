package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"dayflow/internal/breakdown"
	"dayflow/internal/day"
	"dayflow/internal/importer"
	"dayflow/internal/model"
	"dayflow/internal/repo"
	"dayflow/internal/store"
)

type appState int

const (
	stateList appState = iota
	stateAdd
	stateGenerate
	stateEdit
	stateConfirm
	statePrefs
	statePrefEdit
)

// Clipboard access goes through these seams so tests can run headless.
var (
	readClipboard  = clipboard.ReadAll
	writeClipboard = clipboard.WriteAll
)

var (
	appStyle     = lipgloss.NewStyle().Padding(1, 2)
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("170")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	confirmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	typeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
)

type extraKeyMap struct {
	Add     key.Binding
	Toggle  key.Binding
	Edit    key.Binding
	Delete  key.Binding
	Copy    key.Binding
	Paste   key.Binding
	Prefs   key.Binding
	PrevDay key.Binding
	NextDay key.Binding
	Today   key.Binding
}

func newExtraKeyMap() extraKeyMap {
	return extraKeyMap{
		Add: key.NewBinding(
			key.WithKeys("a", "n"),
			key.WithHelp("a/n", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", "x"),
			key.WithHelp("enter/x", "toggle"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy"),
		),
		Paste: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "paste"),
		),
		Prefs: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "preferences"),
		),
		PrevDay: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "prev day"),
		),
		NextDay: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next day"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
	}
}

// Model is the top-level BubbleTea model for the dayflow TUI.
type Model struct {
	state     appState
	list      list.Model
	input     textinput.Model
	prefInput textarea.Model
	spinner   spinner.Model

	repo     *repo.Repository
	store    *store.Store
	provider breakdown.Provider

	keys extraKeyMap
	day  day.Day

	addType      int
	editTaskID   int64
	editSubIndex int
	prefs        model.Preferences
	prefCursor   int

	status string
	err    error
	width  int
	height int
}

type tasksLoadedMsg []model.Task
type prefsLoadedMsg model.Preferences
type taskCreatedMsg struct{}
type errMsg struct{ error }

// NewModel creates a new TUI model viewing today's tasks.
func NewModel(r *repo.Repository, s *store.Store, p breakdown.Provider) Model {
	ti := textinput.New()
	ti.Placeholder = "Task title..."
	ti.CharLimit = 256

	keys := newExtraKeyMap()

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetHeight(1)
	delegate.SetSpacing(0)
	l := list.New(nil, delegate, 0, 0)
	l.Styles.Title = titleStyle
	l.SetShowHelp(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("item", "items")
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Edit, keys.Delete, keys.PrevDay, keys.NextDay}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Toggle, keys.Edit, keys.Delete, keys.Copy, keys.Paste, keys.Prefs, keys.PrevDay, keys.NextDay, keys.Today}
	}

	ta := textarea.New()
	ta.Placeholder = "Context for this task type..."
	ta.CharLimit = 2048

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		state:     stateList,
		list:      l,
		input:     ti,
		prefInput: ta,
		spinner:   sp,
		repo:      r,
		store:     s,
		provider:  p,
		keys:      keys,
		day:       day.Today(),
		prefs:     model.Preferences{},
	}
	m.list.Title = m.headerTitle()
	return m
}

func (m Model) headerTitle() string {
	title := m.day.Pretty()
	if m.day.IsToday() {
		title += " · today"
	}
	return title
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadTasks, m.loadPrefs)
}

func (m Model) loadTasks() tea.Msg {
	tasks, err := m.repo.ListForDay(m.day)
	if err != nil {
		return errMsg{err}
	}
	return tasksLoadedMsg(tasks)
}

func (m Model) loadPrefs() tea.Msg {
	prefs, err := m.store.Preferences()
	if err != nil {
		return errMsg{err}
	}
	return prefsLoadedMsg(prefs)
}

// createTask runs the breakdown provider and persists the task for the
// day that was being viewed when the user submitted. The viewed day may
// change before this resolves; the captured value keeps the create
// scoped correctly.
func (m Model) createTask(title string) tea.Cmd {
	d := m.day
	extra := m.prefs[model.PreferenceLabels[m.addType]]
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		steps, err := m.provider.Breakdown(ctx, title, extra)
		if err != nil {
			return errMsg{err}
		}
		if _, err := m.repo.Create(d, title, steps); err != nil {
			return errMsg{err}
		}
		return taskCreatedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h, v := appStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)
		m.prefInput.SetWidth(msg.Width - h - 4)
		return m, nil

	case tasksLoadedMsg:
		rows := BuildRows([]model.Task(msg))
		items := make([]list.Item, len(rows))
		for i, row := range rows {
			items[i] = row
		}
		m.list.SetItems(items)
		m.list.Title = m.headerTitle()
		m.err = nil
		return m, nil

	case prefsLoadedMsg:
		m.prefs = model.Preferences(msg)
		return m, nil

	case taskCreatedMsg:
		m.state = stateList
		return m, m.loadTasks

	case errMsg:
		m.err = msg.error
		if m.state == stateGenerate {
			m.state = stateList
		}
		return m, nil

	case spinner.TickMsg:
		if m.state == stateGenerate {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch m.state {
	case stateList:
		return m.updateList(msg)
	case stateAdd:
		return m.updateAdd(msg)
	case stateEdit:
		return m.updateEdit(msg)
	case stateConfirm:
		return m.updateConfirm(msg)
	case statePrefs:
		return m.updatePrefs(msg)
	case statePrefEdit:
		return m.updatePrefEdit(msg)
	}

	return m, nil
}

func (m Model) selectedItem() (Item, bool) {
	item, ok := m.list.SelectedItem().(Item)
	return item, ok
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		m.status = ""
		switch keyMsg.String() {
		case "a", "n":
			m.state = stateAdd
			m.input.Reset()
			m.input.Placeholder = "Task title..."
			cmd := m.input.Focus()
			return m, cmd
		case "left":
			m.day = m.day.Prev()
			return m, m.loadTasks
		case "right":
			m.day = m.day.Next()
			return m, m.loadTasks
		case "t":
			m.day = day.Today()
			return m, m.loadTasks
		case "enter", "x":
			if item, ok := m.selectedItem(); ok && !item.IsTask() {
				if err := m.repo.SetSubtaskChecked(item.Task.ID, item.SubIndex, !item.Subtask().Checked); err != nil {
					m.err = err
					return m, nil
				}
				return m, m.loadTasks
			}
		case "e":
			if item, ok := m.selectedItem(); ok {
				m.state = stateEdit
				m.editTaskID = item.Task.ID
				m.editSubIndex = item.SubIndex
				if item.IsTask() {
					m.input.Placeholder = "Task title..."
					m.input.SetValue(item.Task.Title)
				} else {
					m.input.Placeholder = "Subtask..."
					m.input.SetValue(item.Subtask().Text)
				}
				m.input.CursorEnd()
				cmd := m.input.Focus()
				return m, cmd
			}
		case "d":
			if _, ok := m.selectedItem(); ok {
				m.state = stateConfirm
				return m, nil
			}
		case "c":
			if item, ok := m.selectedItem(); ok {
				out, err := importer.Export(item.Task)
				if err == nil {
					err = writeClipboard(out)
				}
				if err != nil {
					m.err = err
					return m, nil
				}
				m.status = fmt.Sprintf("copied %q", item.Task.Title)
				return m, nil
			}
		case "v":
			text, err := readClipboard()
			if err != nil {
				m.err = err
				return m, nil
			}
			count, err := importer.Import(m.repo, m.day, text)
			if err != nil {
				m.err = err
				return m, nil
			}
			m.status = fmt.Sprintf("imported %d task(s)", count)
			return m, m.loadTasks
		case "p":
			m.state = statePrefs
			m.prefCursor = 0
			return m, m.loadPrefs
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			title := strings.TrimSpace(m.input.Value())
			if title == "" {
				// Empty titles never create a task.
				m.state = stateList
				return m, nil
			}
			m.state = stateGenerate
			return m, tea.Batch(m.spinner.Tick, m.createTask(title))
		case "tab":
			m.addType = (m.addType + 1) % len(model.PreferenceLabels)
			return m, nil
		case "esc":
			m.state = stateList
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			m.state = stateList
			if value == "" {
				// Empty edits are rejected; the stored value stands.
				return m, nil
			}
			var err error
			if m.editSubIndex < 0 {
				err = m.repo.SetTitle(m.editTaskID, value)
			} else {
				err = m.repo.SetSubtaskText(m.editTaskID, m.editSubIndex, value)
			}
			if err != nil {
				m.err = err
				return m, nil
			}
			return m, m.loadTasks
		case "esc":
			m.state = stateList
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "y":
			if item, ok := m.selectedItem(); ok {
				var err error
				if item.IsTask() {
					err = m.repo.Delete(item.Task.ID)
				} else {
					err = m.repo.DeleteSubtask(item.Task.ID, item.SubIndex)
				}
				if err != nil {
					m.err = err
				}
			}
			m.state = stateList
			return m, m.loadTasks
		case "n", "esc":
			m.state = stateList
			return m, nil
		}
	}
	return m, nil
}

func (m Model) updatePrefs(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "j", "down":
			if m.prefCursor < len(model.PreferenceLabels)-1 {
				m.prefCursor++
			}
		case "k", "up":
			if m.prefCursor > 0 {
				m.prefCursor--
			}
		case "enter":
			m.state = statePrefEdit
			m.prefInput.SetValue(m.prefs[model.PreferenceLabels[m.prefCursor]])
			cmd := m.prefInput.Focus()
			return m, cmd
		case "esc", "q":
			m.state = stateList
			return m, nil
		}
	}
	return m, nil
}

func (m Model) updatePrefEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			label := model.PreferenceLabels[m.prefCursor]
			m.prefs[label] = m.prefInput.Value()
			if err := m.store.SetPreferences(m.prefs); err != nil {
				m.err = err
			}
			m.prefInput.Blur()
			m.state = statePrefs
			return m, nil
		case "ctrl+c":
			m.prefInput.Blur()
			m.state = statePrefs
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.prefInput, cmd = m.prefInput.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var errView string
	if m.err != nil {
		errView = "\n" + errorStyle.Render("Error: "+m.err.Error()) + "\n"
	}

	switch m.state {
	case stateAdd:
		label := model.PreferenceLabels[m.addType]
		return appStyle.Render(
			titleStyle.Render("New Task · "+m.day.Pretty()) + "\n\n" +
				m.input.View() + "\n\n" +
				"type: " + typeStyle.Render(label) + "\n\n" +
				statusStyle.Render("enter: save • tab: type • esc: cancel") +
				errView,
		)
	case stateGenerate:
		return appStyle.Render(
			m.spinner.View() + " Breaking the task into steps..." +
				errView,
		)
	case stateEdit:
		header := "Edit Task"
		if m.editSubIndex >= 0 {
			header = "Edit Subtask"
		}
		return appStyle.Render(
			titleStyle.Render(header) + "\n\n" +
				m.input.View() + "\n\n" +
				statusStyle.Render("enter: save • esc: cancel") +
				errView,
		)
	case stateConfirm:
		item, _ := m.selectedItem()
		what := "Delete Task?"
		name := item.Task.Title
		if !item.IsTask() {
			what = "Delete Subtask?"
			name = item.Subtask().Text
		}
		return appStyle.Render(
			confirmStyle.Render(what) + "\n\n" +
				"  " + name + "\n\n" +
				statusStyle.Render("y: delete • n/esc: cancel") +
				errView,
		)
	case statePrefs:
		var lines []string
		for i, label := range model.PreferenceLabels {
			cursor := "  "
			if i == m.prefCursor {
				cursor = "> "
			}
			value := m.prefs[label]
			if value == "" {
				value = statusStyle.Render("(empty)")
			} else if len(value) > 40 {
				value = value[:40] + "…"
			}
			lines = append(lines, cursor+typeStyle.Render(label)+": "+value)
		}
		return appStyle.Render(
			titleStyle.Render("Preferences") + "\n\n" +
				strings.Join(lines, "\n") + "\n\n" +
				statusStyle.Render("j/k: navigate • enter: edit • esc: done") +
				errView,
		)
	case statePrefEdit:
		label := model.PreferenceLabels[m.prefCursor]
		return appStyle.Render(
			titleStyle.Render("Context · "+label) + "\n\n" +
				m.prefInput.View() + "\n\n" +
				statusStyle.Render("esc: save • ctrl+c: cancel") +
				errView,
		)
	default:
		statusView := ""
		if m.status != "" {
			statusView = "\n" + statusStyle.Render(m.status)
		}
		return appStyle.Render(m.list.View() + statusView + errView)
	}
}
