// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"errors"
	"sync"

	"taskflow/internal/service"
)

// ErrNotFound is returned when a task id is unknown.
var ErrNotFound = errors.New("not found")

// Call records one mutation received by FakeService.
type Call struct {
	Method string // "create", "update", "status" or "delete"
	ID     string
	Create service.NewTask
	Update service.TaskUpdate
	Status service.Status
}

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu        sync.RWMutex
	tasks     []service.Task
	calls     []Call
	listCalls int

	// Error injection for testing
	ListTasksErr  error
	CreateTaskErr error
	UpdateTaskErr error
	SetStatusErr  error
	DeleteTaskErr error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// AddTask seeds an active task.
func (f *FakeService) AddTask(id, title string) {
	f.AddTaskWith(service.Task{ID: id, Title: title, Status: service.StatusActive})
}

// AddTaskWith seeds a task as given.
func (f *FakeService) AddTaskWith(t service.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, t)
}

// Calls returns the mutations received so far.
func (f *FakeService) Calls() []Call {
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]Call, len(f.calls))
	copy(result, f.calls)
	return result
}

// ListCalls returns how many times ListTasks was called.
func (f *FakeService) ListCalls() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.listCalls
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]service.Task, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()

	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, task service.NewTask) error {
	f.record(Call{Method: "create", ID: task.ID, Create: task})
	if f.CreateTaskErr != nil {
		return f.CreateTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, service.Task{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		CreatedAt:   "2025-01-01T00:00:00Z",
	})
	return nil
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, update service.TaskUpdate) error {
	f.record(Call{Method: "update", ID: id, Update: update})
	if f.UpdateTaskErr != nil {
		return f.UpdateTaskErr
	}
	return f.modify(id, func(t *service.Task) {
		t.Title = update.Title
		t.Description = update.Description
	})
}

// SetStatus implements service.Service.
func (f *FakeService) SetStatus(ctx context.Context, id string, status service.Status) error {
	f.record(Call{Method: "status", ID: id, Status: status})
	if f.SetStatusErr != nil {
		return f.SetStatusErr
	}
	return f.modify(id, func(t *service.Task) {
		t.Status = status
	})
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	f.record(Call{Method: "delete", ID: id})
	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (f *FakeService) record(c Call) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
}

func (f *FakeService) modify(id string, fn func(*service.Task)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			fn(&f.tasks[i])
			return nil
		}
	}
	return ErrNotFound
}
