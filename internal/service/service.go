// Package service defines the backend-agnostic interface for task operations.
package service

import (
	"context"
	"errors"
)

// ErrMalformedResponse is returned by ListTasks, together with an empty
// collection, when the backend answered but its body could not be decoded.
var ErrMalformedResponse = errors.New("malformed response body")

// Service defines the interface for task backend operations.
// All remote calls go through this interface.
// The controller never speaks HTTP directly.
type Service interface {
	// ListTasks returns every task in backend order.
	// An empty or null response yields an empty slice. An undecodable one
	// yields an empty slice and an error wrapping ErrMalformedResponse.
	ListTasks(ctx context.Context) ([]Task, error)

	// CreateTask creates a task with a client-assigned id.
	CreateTask(ctx context.Context, task NewTask) error

	// UpdateTask replaces a task's title and description.
	// The status is left as the backend has it.
	UpdateTask(ctx context.Context, id string, update TaskUpdate) error

	// SetStatus sets a task's completion status.
	SetStatus(ctx context.Context, id string, status Status) error

	// DeleteTask deletes a task.
	DeleteTask(ctx context.Context, id string) error
}
