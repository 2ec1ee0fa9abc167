package ui

import (
	"fmt"
	"strings"
	"time"

	"taskdeck/internal/config"
	"taskdeck/internal/stats"
	"taskdeck/internal/task"
)

const barWidth = 20

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.theme.Title.Render("taskdeck"))
	b.WriteString("\n\n")

	b.WriteString(m.renderStats())
	b.WriteString("\n")
	b.WriteString(m.renderFilterLine())
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		if m.store.Len() == 0 {
			b.WriteString("No tasks yet. Press '" + m.cfg.Keys.Add + "' to add one.")
		} else {
			b.WriteString("No tasks match the current filters.")
		}
		b.WriteString("\n")
	} else {
		b.WriteString(m.renderTaskList())
	}

	b.WriteString("\n")
	switch m.mode {
	case modeForm:
		b.WriteString(m.renderForm())
	case modeConfirmDelete:
		if m.pending != nil {
			b.WriteString(fmt.Sprintf("Delete %q? y/n", m.pending.Title))
		}
		b.WriteString("\n")
	case modeConfirmClear:
		n := m.store.CompletedCount()
		b.WriteString(fmt.Sprintf("Delete %d completed %s? y/n", n, plural(n, "task", "tasks")))
		b.WriteString("\n")
	case modeSearch:
		b.WriteString("Search: ")
		b.WriteString(m.input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderNotice())
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(renderHelp(m.cfg.Keys)))

	return b.String()
}

func (m Model) renderStats() string {
	s := stats.Compute(m.store.Tasks(), time.Now())
	line := fmt.Sprintf("Total %d • Completed %d • Pending %d • Overdue %d",
		s.Total, s.Completed, s.Pending, s.Overdue)

	filled := s.Percent * barWidth / 100
	bar := m.theme.Bar.Render(strings.Repeat("█", filled)) +
		m.theme.BarEmpty.Render(strings.Repeat("░", barWidth-filled))
	return m.theme.Stats.Render(line) + "\n" + bar + fmt.Sprintf(" %d%%", s.Percent)
}

func (m Model) renderFilterLine() string {
	parts := []string{
		"filter: " + string(m.params.Status),
		"category: " + m.params.Category,
		"sort: " + string(m.params.Sort),
		fmt.Sprintf("%d %s", len(m.visible), plural(len(m.visible), "task", "tasks")),
	}
	if m.params.Search != "" {
		parts = append(parts, fmt.Sprintf("search: %q", m.params.Search))
	}
	return m.theme.Stats.Render(strings.Join(parts, " • "))
}

func (m Model) renderTaskList() string {
	now := time.Now()
	var b strings.Builder
	for i, t := range m.visible {
		cursor := " "
		if m.cursor == i && m.mode == modeList {
			cursor = m.theme.Cursor.Render(">")
		}

		checkbox := "[ ]"
		title := t.Title
		if t.Completed {
			checkbox = "[x]"
			title = m.theme.Done.Render(title)
		}

		b.WriteString(fmt.Sprintf("%s %s %s%s\n", cursor, checkbox, title, m.renderBadges(t, now)))
		if t.Description != "" {
			b.WriteString("      " + m.theme.Stats.Render(t.Description) + "\n")
		}
	}
	return b.String()
}

func (m Model) renderBadges(t task.Task, now time.Time) string {
	var badges []string
	if t.Due != nil {
		due := "due " + t.Due.Format("Jan 2, 2006")
		switch stats.Classify(t, now) {
		case stats.StatusOverdue:
			due = m.theme.Overdue.Render(due + " (overdue)")
		case stats.StatusDueSoon:
			due = m.theme.DueSoon.Render(due + " (soon)")
		default:
			due = m.theme.Badge.Render(due)
		}
		badges = append(badges, due)
	}
	badges = append(badges,
		m.theme.Badge.Render(string(t.Priority)),
		m.theme.Badge.Render(t.Category),
	)
	return "  [" + strings.Join(badges, " | ") + "]"
}

func (m Model) renderForm() string {
	if m.form == nil {
		return ""
	}
	title := "Add task"
	if m.form.taskID != "" {
		title = "Edit task"
	}
	values := []string{
		m.form.title,
		m.form.description,
		m.form.due,
		m.form.priority,
		m.form.category,
	}
	var b strings.Builder
	b.WriteString(title + " (tab/enter to move, enter on last field to save, esc to cancel)\n\n")
	for i, name := range formFields {
		prefix := " "
		val := values[i]
		if i == m.form.index {
			prefix = m.theme.Cursor.Render(">")
			val = m.input.View()
		} else if strings.TrimSpace(val) == "" {
			val = "(empty)"
		}
		b.WriteString(fmt.Sprintf("%s %-26s : %s\n", prefix, name, val))
	}
	return b.String()
}

func (m Model) renderNotice() string {
	if m.notice.text == "" {
		return ""
	}
	switch m.notice.level {
	case noticeSuccess:
		return m.theme.Success.Render(m.notice.text)
	case noticeError:
		return m.theme.Error.Render(m.notice.text)
	default:
		return m.theme.Info.Render(m.notice.text)
	}
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s edit • space toggle • %s delete • %s clear done • %s search • %s filter • %s category • %s sort • %s export • %s theme • %s quit",
		k.Up, k.Down, k.Add, k.Edit, k.Delete, k.ClearCompleted, k.Search, k.Filter, k.Category, k.Sort, k.Export, k.Theme, k.Quit)
}
