// Package store keeps a local copy of the task collection in step with the
// backend.
//
// The local collection only ever changes by a full reload: mutations are sent
// to the backend and, once confirmed, followed by a fresh load. A failed
// mutation leaves the collection exactly as it was. Operations never return Go
// errors; they return Notices for the caller to display.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"taskflow/internal/logging"
	"taskflow/internal/service"
)

// Store is the task store controller.
// It is safe for concurrent use but does not order concurrent operations:
// whichever reload completes last determines the collection.
type Store struct {
	svc   service.Service
	log   logrus.FieldLogger
	newID func() string

	mu      sync.RWMutex
	tasks   []service.Task
	loading bool
	editing *service.Task
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for failure details.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Store) {
		s.log = log
	}
}

// WithIDGenerator replaces the random UUID generator used for new tasks.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// New creates a Store over svc. The collection starts empty and Loading
// reports true until the first Load completes.
func New(svc service.Service, opts ...Option) *Store {
	s := &Store{
		svc:     svc,
		newID:   uuid.NewString,
		tasks:   []service.Task{},
		loading: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	s.log = s.log.WithField("component", "store")
	return s
}

// Load replaces the collection with the backend's.
// On failure the previous collection is kept, except for a malformed
// response, which empties it and still reports the failure.
func (s *Store) Load(ctx context.Context) Notices {
	tasks, err := s.svc.ListTasks(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if errors.Is(err, service.ErrMalformedResponse) {
		// Shown as an empty collection, but still reported.
		s.log.WithError(err).Debug("load returned malformed body")
		s.tasks = []service.Task{}
		return Notices{failure(MsgLoadFailed, err)}
	}
	if err != nil {
		s.log.WithError(err).Debug("load failed")
		return Notices{failure(MsgLoadFailed, err)}
	}
	if tasks == nil {
		tasks = []service.Task{}
	}
	s.tasks = tasks
	s.log.WithField("count", len(tasks)).Debug("tasks loaded")
	return nil
}

// Save creates a task, or updates the task being edited if Edit was called.
// On success the edit target is cleared and the collection reloaded. On
// failure the edit target is kept so the same save can be retried.
func (s *Store) Save(ctx context.Context, title string, description *string) Notices {
	return s.SaveTask(ctx, title, description, s.Editing())
}

// SaveTask is Save with an explicit target. A nil target creates a task.
// The title is forwarded as given.
func (s *Store) SaveTask(ctx context.Context, title string, description *string, target *service.Task) Notices {
	var (
		err error
		msg string
	)
	if target != nil {
		err = s.svc.UpdateTask(ctx, target.ID, service.TaskUpdate{
			Title:       title,
			Description: description,
		})
		msg = MsgTaskUpdated
	} else {
		err = s.svc.CreateTask(ctx, service.NewTask{
			ID:          s.newID(),
			Title:       title,
			Description: description,
			Status:      service.StatusActive,
		})
		msg = MsgTaskAdded
	}
	if err != nil {
		s.log.WithError(err).Debug("save failed")
		return Notices{failure(MsgSaveFailed, err)}
	}

	s.CancelEdit()
	return append(Notices{success(msg)}, s.Load(ctx)...)
}

// Toggle sets a task's completion status and reloads.
func (s *Store) Toggle(ctx context.Context, id string, completed bool) Notices {
	if err := s.svc.SetStatus(ctx, id, service.StatusFor(completed)); err != nil {
		s.log.WithError(err).WithField("task_id", id).Debug("status update failed")
		return Notices{failure(MsgStatusFailed, err)}
	}
	return s.Load(ctx)
}

// Delete deletes a task and reloads.
func (s *Store) Delete(ctx context.Context, id string) Notices {
	if err := s.svc.DeleteTask(ctx, id); err != nil {
		s.log.WithError(err).WithField("task_id", id).Debug("delete failed")
		return Notices{failure(MsgDeleteFailed, err)}
	}
	return append(Notices{success(MsgTaskDeleted)}, s.Load(ctx)...)
}

// Edit makes task the target of the next Save.
func (s *Store) Edit(task service.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = &task
}

// CancelEdit clears the edit target.
func (s *Store) CancelEdit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editing = nil
}

// Editing returns a copy of the edit target, or nil.
func (s *Store) Editing() *service.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.editing == nil {
		return nil
	}
	t := *s.editing
	return &t
}

// Loading reports whether the first load is still pending.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Tasks returns a copy of the collection in backend order.
func (s *Store) Tasks() []service.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]service.Task, len(s.tasks))
	copy(result, s.tasks)
	return result
}

// Find looks a task up by id.
func (s *Store) Find(id string) (service.Task, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}

// FilteredTasks returns the tasks matching f in collection order.
func (s *Store) FilteredTasks(f Filter) []service.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterTasks(s.tasks, f)
}

// Stats counts the collection by status.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ComputeStats(s.tasks)
}
