// Package export serializes the task list to delimited text for
// download-style export.
package export

import (
	"os"
	"path/filepath"
	"strings"

	"taskdeck/internal/task"
)

// FileName is the export artifact's name.
const FileName = "todo-tasks.csv"

var header = []string{"Title", "Description", "Due Date", "Priority", "Category", "Status", "Created", "Updated"}

// CSV renders the tasks in their raw (unfiltered, unsorted) order. Every
// field is quoted with embedded quotes doubled, so fields containing
// commas, quotes, or newlines round-trip safely. encoding/csv quotes
// only when it has to, and the export format quotes unconditionally,
// hence the hand-rolled rows.
func CSV(tasks []task.Task) string {
	var b strings.Builder
	writeRow(&b, header)
	for _, t := range tasks {
		status := "Pending"
		if t.Completed {
			status = "Completed"
		}
		due := ""
		if t.Due != nil {
			due = t.Due.Format("Jan 2, 2006")
		}
		writeRow(&b, []string{
			t.Title,
			t.Description,
			due,
			string(t.Priority),
			t.Category,
			status,
			t.CreatedAt.Format("Jan 2, 2006 3:04 PM"),
			t.UpdatedAt.Format("Jan 2, 2006 3:04 PM"),
		})
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}

// WriteFile writes the export into dir and returns the full path.
func WriteFile(tasks []task.Task, dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(CSV(tasks)+"\n"), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
