// Package ui is the Bubble Tea front end. It translates key events into
// store and query calls and re-renders the derived list after every
// change; all task semantics live in the other packages.
package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"taskdeck/internal/config"
	"taskdeck/internal/export"
	"taskdeck/internal/kv"
	"taskdeck/internal/query"
	"taskdeck/internal/task"
)

const noticeTTL = 3 * time.Second

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirmDelete
	modeConfirmClear
	modeSearch
)

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeSuccess
	noticeError
)

type notice struct {
	text  string
	level noticeLevel
}

// noticeExpiredMsg clears the notice it was scheduled for; a stale tick
// must not wipe a newer notice, hence the sequence number.
type noticeExpiredMsg int

// formState is the add/edit field editor. An empty taskID means add.
type formState struct {
	taskID      string
	title       string
	description string
	due         string
	priority    string
	category    string
	originalDue string
	index       int
}

var formFields = []string{"title", "description", "due date (YYYY-MM-DD)", "priority (low/medium/high)", "category"}

type Model struct {
	store  *task.Store
	kv     kv.Store
	cfg    config.Config
	logger *log.Logger

	visible []task.Task
	cursor  int
	mode    mode
	input   textinput.Model
	form    *formState
	params  query.Params
	pending *task.Task
	theme   Theme

	notice    notice
	noticeSeq int
}

// Run loads the persisted theme, builds the model, and blocks until the
// program exits.
func Run(store *task.Store, kvs kv.Store, cfg config.Config, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	themeName := "light"
	if saved, ok, err := kvs.Get(ThemeKey); err != nil {
		logger.Error("load theme", "err", err)
	} else if ok {
		themeName = saved
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		store:  store,
		kv:     kvs,
		cfg:    cfg,
		logger: logger,
		input:  ti,
		mode:   modeList,
		theme:  themeByName(themeName),
		params: query.Params{
			Status:   query.Status(strings.ToLower(cfg.DefaultFilter)),
			Category: query.CategoryAll,
			Sort:     query.Sort(cfg.DefaultSort),
		},
	}
	m.refresh()

	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg.String(), msg)
		case modeConfirmDelete:
			return m.updateConfirmDelete(msg.String())
		case modeConfirmClear:
			return m.updateConfirmClear(msg.String())
		case modeSearch:
			return m.updateSearch(msg.String(), msg)
		default:
			return m.updateList(msg.String())
		}
	case noticeExpiredMsg:
		if int(msg) == m.noticeSeq {
			m.notice = notice{}
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

// refresh rebuilds the derived view from the store and the current
// filter state, then clamps the cursor.
func (m *Model) refresh() {
	m.visible = query.FilterAndSort(m.store.Tasks(), m.params)
	m.cursor = clampCursor(m.cursor, len(m.visible))
}

func (m *Model) notify(text string, level noticeLevel) tea.Cmd {
	m.notice = notice{text: text, level: level}
	m.noticeSeq++
	seq := m.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg(seq)
	})
}

// reportErr converts store errors into notices, per the policy that no
// single failure takes the app down.
func (m *Model) reportErr(err error) tea.Cmd {
	return m.notify(err.Error(), noticeError)
}

func (m Model) updateList(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(m.visible) > 0 {
			m.cursor = clampCursor(m.cursor+1, len(m.visible))
		}
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.visible))
		}
	case m.cfg.Keys.Add:
		return m.openForm(nil)
	case m.cfg.Keys.Edit:
		if len(m.visible) == 0 {
			return m, m.notify("No tasks to edit", noticeInfo)
		}
		t := m.visible[m.cursor]
		return m.openForm(&t)
	case m.cfg.Keys.Toggle:
		if len(m.visible) == 0 {
			return m, nil
		}
		return m.toggle(m.visible[m.cursor].ID)
	case m.cfg.Keys.Delete:
		if len(m.visible) == 0 {
			return m, nil
		}
		t := m.visible[m.cursor]
		m.pending = &t
		m.mode = modeConfirmDelete
		return m, nil
	case m.cfg.Keys.ClearCompleted:
		if m.store.CompletedCount() == 0 {
			return m, m.notify("No completed tasks to clear.", noticeInfo)
		}
		m.mode = modeConfirmClear
		return m, nil
	case m.cfg.Keys.Export:
		return m.export()
	case m.cfg.Keys.Theme:
		return m.toggleTheme()
	case m.cfg.Keys.Filter:
		m.params.Status = nextStatus(m.params.Status)
		m.refresh()
	case m.cfg.Keys.Category:
		m.params.Category = nextCategory(m.params.Category, m.store.Tasks())
		m.refresh()
	case m.cfg.Keys.Sort:
		m.params.Sort = nextSort(m.params.Sort)
		m.refresh()
	case m.cfg.Keys.Search:
		m.mode = modeSearch
		m.input.SetValue(m.params.Search)
		m.input.Placeholder = "search"
		m.input.Focus()
	}
	return m, nil
}

func (m Model) toggle(id string) (tea.Model, tea.Cmd) {
	t, err := m.store.Toggle(id)
	if err != nil {
		m.refresh()
		return m, m.reportErr(err)
	}
	m.refresh()
	status := "active"
	if t.Completed {
		status = "completed"
	}
	return m, m.notify("Task marked as "+status, noticeSuccess)
}

func (m Model) export() (tea.Model, tea.Cmd) {
	tasks := m.store.Tasks()
	if len(tasks) == 0 {
		return m, m.notify("No tasks to export.", noticeInfo)
	}
	path, err := export.WriteFile(tasks, m.cfg.ExportDir)
	if err != nil {
		m.logger.Error("export tasks", "err", err)
		return m, m.notify("Error exporting tasks", noticeError)
	}
	return m, m.notify("Exported to "+path, noticeSuccess)
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	next := Light()
	if m.theme.Name == "light" {
		next = Dark()
	}
	m.theme = next
	if err := m.kv.Set(ThemeKey, next.Name); err != nil {
		m.logger.Error("save theme", "err", err)
		return m, m.notify("Theme not saved: "+err.Error(), noticeError)
	}
	return m, m.notify("Switched to "+next.Name+" theme", noticeSuccess)
}

func (m Model) updateConfirmDelete(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.mode = modeList
		m.pending = nil
		return m, m.notify("Delete cancelled", noticeInfo)
	case "y", "Y":
		m.mode = modeList
		if m.pending == nil {
			return m, nil
		}
		id := m.pending.ID
		m.pending = nil
		err := m.store.Delete(id)
		m.refresh()
		if err != nil {
			return m, m.reportErr(err)
		}
		return m, m.notify("Task deleted", noticeSuccess)
	default:
		return m, nil
	}
}

func (m Model) updateConfirmClear(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.mode = modeList
		return m, m.notify("Clear cancelled", noticeInfo)
	case "y", "Y":
		m.mode = modeList
		removed, err := m.store.ClearCompleted()
		m.refresh()
		if err != nil {
			return m, m.reportErr(err)
		}
		return m, m.notify(fmt.Sprintf("%d completed %s cleared", removed, plural(removed, "task", "tasks")), noticeSuccess)
	default:
		return m, nil
	}
}

func (m Model) updateSearch(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case "esc":
		m.params.Search = ""
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		m.refresh()
		return m, nil
	case "enter":
		m.input.Blur()
		m.mode = modeList
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.params.Search = strings.TrimSpace(m.input.Value())
		m.refresh()
		return m, cmd
	}
}

func (m Model) openForm(t *task.Task) (tea.Model, tea.Cmd) {
	f := &formState{priority: string(task.PriorityMedium), category: "other"}
	if t != nil {
		f.taskID = t.ID
		f.title = t.Title
		f.description = t.Description
		f.priority = string(t.Priority)
		f.category = t.Category
		if t.Due != nil {
			f.due = t.Due.String()
			f.originalDue = f.due
		}
	}
	m.form = f
	m.input.SetValue(f.value())
	m.input.Placeholder = f.label()
	m.input.Focus()
	m.mode = modeForm
	return m, nil
}

func (m Model) updateForm(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.form = nil
		m.input.Blur()
		m.mode = modeList
		return m, m.notify("Cancelled", noticeInfo)
	case "tab", "shift+tab":
		if m.form == nil {
			return m, nil
		}
		m.form.set(m.input.Value())
		step := 1
		if key == "shift+tab" {
			step = -1
		}
		m.form.index = wrapIndex(m.form.index+step, len(formFields))
		m.input.SetValue(m.form.value())
		m.input.Placeholder = m.form.label()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		if m.form == nil {
			return m, nil
		}
		m.form.set(m.input.Value())
		if m.form.index < len(formFields)-1 {
			m.form.index++
			m.input.SetValue(m.form.value())
			m.input.Placeholder = m.form.label()
			return m, nil
		}
		return m.submitForm()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	in, err := f.input(m.store.Now())
	if err != nil {
		// Invalid field: stay in the form for correction.
		return m, m.notify(err.Error(), noticeError)
	}

	var saved task.Task
	if f.taskID == "" {
		saved, err = m.store.Add(in)
	} else {
		saved, err = m.store.Edit(f.taskID, in)
	}

	if err != nil && !persistFailed(err) {
		if errors.Is(err, task.ErrEmptyTitle) {
			// Keep the form open, focused back on the title.
			f.index = 0
			m.input.SetValue(f.title)
			m.input.Placeholder = f.label()
			return m, m.notify("Task title is required", noticeError)
		}
		m.form = nil
		m.input.Blur()
		m.mode = modeList
		m.refresh()
		return m, m.reportErr(err)
	}

	m.form = nil
	m.input.Blur()
	m.mode = modeList
	m.refresh()
	for i, t := range m.visible {
		if t.ID == saved.ID {
			m.cursor = clampCursor(i, len(m.visible))
			break
		}
	}
	if err != nil {
		// The mutation stood; only the save failed.
		return m, m.reportErr(err)
	}
	if f.taskID == "" {
		return m, m.notify("Task added", noticeSuccess)
	}
	return m, m.notify("Task updated", noticeSuccess)
}

// input converts the form fields into a store Input. New due dates may
// not lie in the past; a stored past date left untouched stays valid.
func (f *formState) input(now time.Time) (task.Input, error) {
	in := task.Input{
		Title:       f.title,
		Description: f.description,
		Category:    f.category,
	}

	p := task.Priority(strings.ToLower(strings.TrimSpace(f.priority)))
	if p != "" && !p.Valid() {
		return in, fmt.Errorf("priority must be low, medium, or high")
	}
	in.Priority = p

	due := strings.TrimSpace(f.due)
	if due != "" {
		d, err := task.ParseDate(due)
		if err != nil {
			return in, fmt.Errorf("due date must be YYYY-MM-DD")
		}
		if due != f.originalDue {
			today := task.NewDate(now)
			if d.Before(today.Time) {
				return in, fmt.Errorf("due date cannot be in the past")
			}
		}
		in.Due = &d
	}
	return in, nil
}

func (f *formState) label() string {
	return formFields[f.index]
}

func (f *formState) value() string {
	switch f.index {
	case 0:
		return f.title
	case 1:
		return f.description
	case 2:
		return f.due
	case 3:
		return f.priority
	case 4:
		return f.category
	default:
		return ""
	}
}

func (f *formState) set(v string) {
	switch f.index {
	case 0:
		f.title = v
	case 1:
		f.description = v
	case 2:
		f.due = v
	case 3:
		f.priority = v
	case 4:
		f.category = v
	}
}

func nextStatus(s query.Status) query.Status {
	switch s {
	case query.StatusAll:
		return query.StatusActive
	case query.StatusActive:
		return query.StatusCompleted
	default:
		return query.StatusAll
	}
}

func nextSort(s query.Sort) query.Sort {
	switch s {
	case query.SortDateAdded:
		return query.SortDueDate
	case query.SortDueDate:
		return query.SortPriority
	case query.SortPriority:
		return query.SortAlphabetical
	default:
		return query.SortDateAdded
	}
}

func nextCategory(current string, tasks []task.Task) string {
	options := append([]string{query.CategoryAll}, query.Categories(tasks)...)
	for i, c := range options {
		if c == current {
			return options[(i+1)%len(options)]
		}
	}
	return query.CategoryAll
}

func persistFailed(err error) bool {
	var pe *task.PersistError
	return errors.As(err, &pe)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
