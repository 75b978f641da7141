// Package service defines the backend-agnostic interface for task operations.
package service

import "time"

// Status is the completion state of a task.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusCompleted
}

// StatusFor maps a completion flag to its status.
func StatusFor(completed bool) Status {
	if completed {
		return StatusCompleted
	}
	return StatusActive
}

// Task represents a single task item as exchanged with the backend.
type Task struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      Status  `json:"status"`
	CreatedAt   string  `json:"createdAt,omitempty"` // set by the backend
}

// Completed reports whether the task is completed.
func (t Task) Completed() bool {
	return t.Status == StatusCompleted
}

// DescriptionText returns the description, or "" when absent.
func (t Task) DescriptionText() string {
	if t.Description == nil {
		return ""
	}
	return *t.Description
}

// Created parses CreatedAt as RFC 3339.
// ok is false if the backend did not set it or it is not parseable.
func (t Task) Created() (created time.Time, ok bool) {
	if t.CreatedAt == "" {
		return time.Time{}, false
	}
	created, err := time.Parse(time.RFC3339, t.CreatedAt)
	if err != nil {
		return time.Time{}, false
	}
	return created, true
}

// NewTask is the body of a create request.
type NewTask struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      Status  `json:"status"`
}

// TaskUpdate is the body of an update request. Status is never part of it.
type TaskUpdate struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}
