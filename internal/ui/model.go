package ui

import (
	"context"
	"sync"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/todoist/internal/client"
	"github.com/nhle/todoist/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	formStyle  = lipgloss.NewStyle().Padding(1, 2)
)

// WarningBuffer collects cache warnings so the view can render the most
// recent one in its status line. It implements client.Notifier.
type WarningBuffer struct {
	mu  sync.Mutex
	msg string
}

func (b *WarningBuffer) Warn(msg string) {
	b.mu.Lock()
	b.msg = msg
	b.mu.Unlock()
}

// Take returns the pending warning, clearing it.
func (b *WarningBuffer) Take() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	msg := b.msg
	b.msg = ""
	return msg
}

type mode int

const (
	modeList mode = iota
	modeForm
)

// opDoneMsg is sent after any cache operation resolves.
type opDoneMsg struct {
	err error
}

// Model is the Bubble Tea model for the todo client.
type Model struct {
	cache *client.Cache
	warns *WarningBuffer

	list     list.Model
	form     *huh.Form
	fb       *formBindings
	editing  bool
	editTodo model.Todo

	mode   mode
	status string
	width  int
	height int
}

// New creates the todo list model. warns must be the same buffer the
// cache's notifier writes to.
func New(cache *client.Cache, warns *WarningBuffer) Model {
	delegate := list.NewDefaultDelegate()
	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Todos"
	l.Styles.Title = titleStyle
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	return Model{
		cache: cache,
		warns: warns,
		list:  l,
		fb:    &formBindings{},
	}
}

// Init loads the collection from the server.
func (m Model) Init() tea.Cmd {
	return m.loadTodos()
}

// Update handles messages for the todo client.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width, msg.Height-2)
		return m, nil

	case opDoneMsg:
		m.status = m.warns.Take()
		m.refreshItems()
		return m, nil
	}

	if m.mode == modeForm {
		return m.updateForm(msg)
	}
	return m.updateList(msg)
}

func (m Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "a":
			m.editing = false
			m.fb.title = ""
			m.fb.description = ""
			m.form = buildTodoForm(m.fb, m.width)
			m.mode = modeForm
			return m, m.form.Init()

		case "e", "enter":
			item, ok := m.list.SelectedItem().(todoItem)
			if !ok {
				return m, nil
			}
			m.editing = true
			m.editTodo = item.todo
			m.fb.title = item.todo.Title
			m.fb.description = item.todo.Description
			m.form = buildTodoForm(m.fb, m.width)
			m.mode = modeForm
			return m, m.form.Init()

		case " ":
			item, ok := m.list.SelectedItem().(todoItem)
			if !ok {
				return m, nil
			}
			return m, m.toggleTodo(item.todo.ID)

		case "d":
			item, ok := m.list.SelectedItem().(todoItem)
			if !ok {
				return m, nil
			}
			return m, m.deleteTodo(item.todo.ID)

		case "r":
			return m, m.loadTodos()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.mode = modeList
		if m.editing {
			updated := m.editTodo
			updated.Title = m.fb.title
			updated.Description = m.fb.description
			return m, m.updateTodo(updated)
		}
		return m, m.createTodo(m.fb.title, m.fb.description)
	}
	if m.form.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}

	return m, cmd
}

// View renders either the list with its status line or the form.
func (m Model) View() string {
	if m.mode == modeForm {
		return formStyle.Render(m.form.View())
	}

	statusLine := helpStyle.Render("a add · e edit · space toggle · d delete · r reload · q quit")
	if m.status != "" {
		statusLine = warnStyle.Render(m.status)
	}
	if m.cache.Snapshot().Loading {
		statusLine = helpStyle.Render("loading...")
	}

	return m.list.View() + "\n" + statusLine
}

// refreshItems rebuilds the list from the cache snapshot.
func (m *Model) refreshItems() {
	st := m.cache.Snapshot()
	items := make([]list.Item, 0, len(st.Todos))
	for _, t := range st.Todos {
		items = append(items, todoItem{todo: t})
	}
	m.list.SetItems(items)
}

func (m Model) loadTodos() tea.Cmd {
	c := m.cache
	return func() tea.Msg {
		return opDoneMsg{err: c.Load(context.Background())}
	}
}

func (m Model) createTodo(title, description string) tea.Cmd {
	c := m.cache
	return func() tea.Msg {
		return opDoneMsg{err: c.Create(context.Background(), title, description)}
	}
}

func (m Model) updateTodo(t model.Todo) tea.Cmd {
	c := m.cache
	return func() tea.Msg {
		return opDoneMsg{err: c.Update(context.Background(), t)}
	}
}

func (m Model) toggleTodo(id int64) tea.Cmd {
	c := m.cache
	return func() tea.Msg {
		return opDoneMsg{err: c.ToggleComplete(context.Background(), id)}
	}
}

func (m Model) deleteTodo(id int64) tea.Cmd {
	c := m.cache
	return func() tea.Msg {
		return opDoneMsg{err: c.Delete(context.Background(), id)}
	}
}
