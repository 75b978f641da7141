// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskflow/internal/service"
	"taskflow/internal/store"
)

const (
	// LoadingText is shown while the first load is pending.
	LoadingText = "Loading tasks..."

	// EmptyAllText is shown when the collection is empty.
	EmptyAllText = "No tasks yet. Create your first task to get started!"

	// createdLayout renders creation times in the edit view.
	createdLayout = "2006-01-02 15:04"

	// descIndent aligns a description under its task title.
	descIndent = "          "
)

// FormatTask formats a task line.
// Format: "{N:>4}  [x] {TITLE}\n", followed by the description on its own
// indented line when present.
func FormatTask(w io.Writer, num int, task service.Task) {
	mark := " "
	if task.Completed() {
		mark = "x"
	}
	fmt.Fprintf(w, "%4d  [%s] %s\n", num, mark, normalizeTitle(task.Title))
	if desc := flatten(task.DescriptionText()); strings.TrimSpace(desc) != "" {
		fmt.Fprintf(w, "%s%s\n", descIndent, desc)
	}
}

// FormatStats formats the collection summary line.
func FormatStats(w io.Writer, s store.Stats) {
	fmt.Fprintf(w, "Total: %d  Active: %d  Completed: %d\n", s.Total, s.Active, s.Completed)
}

// FormatEmpty formats the message for a view with no tasks.
func FormatEmpty(w io.Writer, f store.Filter) {
	if f == store.FilterAll || f == "" {
		fmt.Fprintln(w, EmptyAllText)
		return
	}
	fmt.Fprintf(w, "No %s tasks.\n", f)
}

// FormatNotice formats a notification.
// Format: "{LEVEL}: {MESSAGE}\n"
func FormatNotice(w io.Writer, n store.Notification) {
	fmt.Fprintf(w, "%s: %s\n", n.Level, n.Message)
}

// FormatEditing formats the current edit target for the shell.
// The creation time is shown when the backend supplied a parseable one.
func FormatEditing(w io.Writer, task service.Task) {
	fmt.Fprintf(w, "Editing: %s\n", normalizeTitle(task.Title))
	if desc := flatten(task.DescriptionText()); strings.TrimSpace(desc) != "" {
		fmt.Fprintf(w, "%s%s\n", descIndent, desc)
	}
	if created, ok := task.Created(); ok {
		fmt.Fprintf(w, "%screated %s\n", descIndent, created.Format(createdLayout))
	}
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	title = flatten(title)
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}

func flatten(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
