package store

import (
	"fmt"
	"strings"

	"taskflow/internal/service"
)

// Filter selects which tasks a view shows.
type Filter string

const (
	FilterAll       Filter = "all"
	FilterActive    Filter = "active"
	FilterCompleted Filter = "completed"
)

// ParseFilter parses a user-supplied filter name (case-insensitive, trimmed).
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case FilterAll, FilterActive, FilterCompleted:
		return f, nil
	default:
		return "", fmt.Errorf("invalid filter: %s", s)
	}
}

// Match reports whether a task belongs in the filtered view.
func (f Filter) Match(t service.Task) bool {
	switch f {
	case FilterActive:
		return !t.Completed()
	case FilterCompleted:
		return t.Completed()
	default:
		return true
	}
}

// Stats summarizes a collection. Active + Completed == Total.
type Stats struct {
	Total     int
	Active    int
	Completed int
}

// FilterTasks returns the tasks matching f, preserving order.
func FilterTasks(tasks []service.Task, f Filter) []service.Task {
	result := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if f.Match(t) {
			result = append(result, t)
		}
	}
	return result
}

// ComputeStats counts tasks by status.
func ComputeStats(tasks []service.Task) Stats {
	s := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed() {
			s.Completed++
		} else {
			s.Active++
		}
	}
	return s
}
