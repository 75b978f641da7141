package store_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"taskflow/internal/backend/rest"
	"taskflow/internal/service"
	"taskflow/internal/store"
	"taskflow/internal/testutil"
)

var errBackend = errors.New("backend unavailable")

func strPtr(s string) *string { return &s }

// seqIDs returns a generator yielding id-1, id-2, ...
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// loadedStore returns a store that has completed one successful load.
func loadedStore(t *testing.T, svc *testutil.FakeService) *store.Store {
	t.Helper()
	s := store.New(svc, store.WithIDGenerator(seqIDs()))
	if notices := s.Load(context.Background()); notices.Failed() {
		t.Fatalf("initial load failed: %v", notices.Err())
	}
	return s
}

func seeded() *testutil.FakeService {
	svc := testutil.NewFakeService()
	svc.AddTask("a", "Buy milk")
	svc.AddTaskWith(service.Task{ID: "b", Title: "Walk dog", Status: service.StatusCompleted})
	svc.AddTask("c", "Write report")
	return svc
}

func assertNotices(t *testing.T, got store.Notices, want ...store.Notification) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d notices, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i].Level != want[i].Level || got[i].Message != want[i].Message {
			t.Errorf("notice %d: expected %v %q, got %v %q", i, want[i].Level, want[i].Message, got[i].Level, got[i].Message)
		}
	}
}

func TestNew_LoadingUntilFirstLoad(t *testing.T) {
	s := store.New(testutil.NewFakeService())
	if !s.Loading() {
		t.Error("expected Loading before first load")
	}
	if len(s.Tasks()) != 0 {
		t.Error("expected empty collection before first load")
	}

	s.Load(context.Background())
	if s.Loading() {
		t.Error("expected Loading cleared after load")
	}
}

func TestLoad_EmptyBackend(t *testing.T) {
	s := loadedStore(t, testutil.NewFakeService())

	if got := s.Stats(); got != (store.Stats{}) {
		t.Errorf("expected zero stats, got %+v", got)
	}
	if got := s.FilteredTasks(store.FilterAll); len(got) != 0 {
		t.Errorf("expected no tasks, got %v", got)
	}
}

func TestLoad_FailureKeepsPreviousAndClearsLoading(t *testing.T) {
	svc := seeded()
	s := loadedStore(t, svc)
	before := s.Tasks()

	svc.ListTasksErr = errBackend
	notices := s.Load(context.Background())

	assertNotices(t, notices, store.Notification{Level: store.LevelError, Message: store.MsgLoadFailed})
	if !errors.Is(notices.Err(), errBackend) {
		t.Errorf("expected backend error as cause, got %v", notices.Err())
	}
	if !reflect.DeepEqual(s.Tasks(), before) {
		t.Error("collection changed after failed load")
	}
	if s.Loading() {
		t.Error("expected Loading cleared after failed load")
	}
}

func TestLoad_FirstLoadFailureLeavesEmpty(t *testing.T) {
	svc := seeded()
	svc.ListTasksErr = errBackend
	s := store.New(svc)

	if notices := s.Load(context.Background()); !notices.Failed() {
		t.Fatal("expected failure")
	}
	if len(s.Tasks()) != 0 {
		t.Error("expected empty collection")
	}
	if s.Loading() {
		t.Error("expected Loading cleared")
	}
}

func TestLoad_MalformedResponseEmptiesAndReports(t *testing.T) {
	svc := seeded()
	s := loadedStore(t, svc)

	svc.ListTasksErr = fmt.Errorf("%w: unexpected end of JSON input", service.ErrMalformedResponse)
	notices := s.Load(context.Background())

	assertNotices(t, notices, store.Notification{Level: store.LevelError, Message: store.MsgLoadFailed})
	if !errors.Is(notices.Err(), service.ErrMalformedResponse) {
		t.Errorf("expected malformed response as cause, got %v", notices.Err())
	}
	if got := s.Tasks(); got == nil || len(got) != 0 {
		t.Errorf("expected empty collection, got %#v", got)
	}
	if s.Loading() {
		t.Error("expected Loading cleared")
	}
}

func TestLoad_MalformedBodyFromRESTBackend(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "{not json")
	}))
	t.Cleanup(srv.Close)
	s := store.New(rest.NewWithHTTPClient(srv.URL+"/tasks", srv.Client(), nil))

	notices := s.Load(context.Background())

	if !notices.Failed() {
		t.Fatal("expected a failure notice for a malformed body")
	}
	assertNotices(t, notices, store.Notification{Level: store.LevelError, Message: store.MsgLoadFailed})
	if len(s.Tasks()) != 0 || s.Stats().Total != 0 {
		t.Errorf("expected empty collection, got %+v", s.Tasks())
	}
}

func TestLoad_Idempotent(t *testing.T) {
	s := loadedStore(t, seeded())
	first := s.Tasks()

	s.Load(context.Background())
	if !reflect.DeepEqual(s.Tasks(), first) {
		t.Errorf("second load changed collection: %v vs %v", first, s.Tasks())
	}
}

func TestSave_Create(t *testing.T) {
	svc := testutil.NewFakeService()
	s := loadedStore(t, svc)

	notices := s.Save(context.Background(), "Buy milk", nil)

	assertNotices(t, notices, store.Notification{Level: store.LevelSuccess, Message: store.MsgTaskAdded})
	calls := svc.Calls()
	if len(calls) != 1 || calls[0].Method != "create" {
		t.Fatalf("expected one create call, got %+v", calls)
	}
	created := calls[0].Create
	if created.ID != "id-1" || created.Title != "Buy milk" || created.Status != service.StatusActive || created.Description != nil {
		t.Errorf("unexpected create request %+v", created)
	}

	tasks := s.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Buy milk" || tasks[0].Status != service.StatusActive {
		t.Errorf("expected reloaded task, got %+v", tasks)
	}
	if svc.ListCalls() != 2 {
		t.Errorf("expected reload after create, got %d list calls", svc.ListCalls())
	}
}

func TestSave_CreateUsesFreshUUIDs(t *testing.T) {
	svc := testutil.NewFakeService()
	s := store.New(svc)

	s.Save(context.Background(), "one", nil)
	s.Save(context.Background(), "two", nil)

	calls := svc.Calls()
	if len(calls) != 2 {
		t.Fatalf("expected two calls, got %d", len(calls))
	}
	if calls[0].ID == "" || calls[0].ID == calls[1].ID {
		t.Errorf("expected distinct ids, got %q and %q", calls[0].ID, calls[1].ID)
	}
	if len(calls[0].ID) != 36 {
		t.Errorf("expected UUID-formatted id, got %q", calls[0].ID)
	}
}

func TestSave_UpdateEditingTarget(t *testing.T) {
	svc := seeded()
	s := loadedStore(t, svc)
	target, _ := s.Find("b")

	s.Edit(target)
	notices := s.Save(context.Background(), "Walk the dog", strPtr("around the park"))

	assertNotices(t, notices, store.Notification{Level: store.LevelSuccess, Message: store.MsgTaskUpdated})
	calls := svc.Calls()
	if len(calls) != 1 || calls[0].Method != "update" || calls[0].ID != "b" {
		t.Fatalf("expected update of b, got %+v", calls)
	}
	got, ok := s.Find("b")
	if !ok {
		t.Fatal("task b missing after reload")
	}
	if got.Title != "Walk the dog" || got.DescriptionText() != "around the park" {
		t.Errorf("unexpected task after update %+v", got)
	}
	if got.Status != service.StatusCompleted {
		t.Errorf("status changed by update: %q", got.Status)
	}
	if s.Editing() != nil {
		t.Error("expected edit target cleared after successful save")
	}
	if len(s.Tasks()) != 3 {
		t.Errorf("expected no task created, got %d tasks", len(s.Tasks()))
	}
}

func TestSave_FailureKeepsEditTarget(t *testing.T) {
	svc := seeded()
	s := loadedStore(t, svc)
	before := s.Tasks()
	target, _ := s.Find("a")
	s.Edit(target)

	svc.UpdateTaskErr = errBackend
	notices := s.Save(context.Background(), "Buy oat milk", nil)

	assertNotices(t, notices, store.Notification{Level: store.LevelError, Message: store.MsgSaveFailed})
	if s.Editing() == nil || s.Editing().ID != "a" {
		t.Errorf("expected edit target kept, got %+v", s.Editing())
	}
	if !reflect.DeepEqual(s.Tasks(), before) {
		t.Error("collection changed after failed save")
	}
	if svc.ListCalls() != 1 {
		t.Errorf("expected no reload after failed save, got %d list calls", svc.ListCalls())
	}

	// Retry from the same editing context.
	svc.UpdateTaskErr = nil
	notices = s.Save(context.Background(), "Buy oat milk", nil)
	if notices.Failed() {
		t.Fatalf("retry failed: %v", notices.Err())
	}
	if got, _ := s.Find("a"); got.Title != "Buy oat milk" {
		t.Errorf("expected retried update, got %+v", got)
	}
}

func TestSave_CreateFailure(t *testing.T) {
	svc := seeded()
	s := loadedStore(t, svc)
	before := s.Tasks()

	svc.CreateTaskErr = errBackend
	notices := s.Save(context.Background(), "New", nil)

	assertNotices(t, notices, store.Notification{Level: store.LevelError, Message: store.MsgSaveFailed})
	if !reflect.DeepEqual(s.Tasks(), before) {
		t.Error("collection changed after failed create")
	}
}

func TestSave_ReloadFailureAfterSuccess(t *testing.T) {
	svc := seeded()
	s := loadedStore(t, svc)
	before := s.Tasks()

	svc.ListTasksErr = errBackend
	notices := s.Save(context.Background(), "New", nil)

	assertNotices(t, notices,
		store.Notification{Level: store.LevelSuccess, Message: store.MsgTaskAdded},
		store.Notification{Level: store.LevelError, Message: store.MsgLoadFailed},
	)
	if !reflect.DeepEqual(s.Tasks(), before) {
		t.Error("expected stale pre-mutation collection after failed reload")
	}
}

func TestSaveTask_ExplicitTargetIgnoresEditState(t *testing.T) {
	svc := seeded()
	s := loadedStore(t, svc)
	target, _ := s.Find("c")

	s.SaveTask(context.Background(), "Write final report", nil, &target)

	calls := svc.Calls()
	if len(calls) != 1 || calls[0].Method != "update" || calls[0].ID != "c" {
		t.Fatalf("expected update of c, got %+v", calls)
	}
}

func TestToggle(t *testing.T) {
	svc := seeded()
	s := loadedStore(t, svc)
	before := s.Stats()

	notices := s.Toggle(context.Background(), "a", true)

	if len(notices) != 0 {
		t.Errorf("expected no notices on successful toggle, got %+v", notices)
	}
	calls := svc.Calls()
	if len(calls) != 1 || calls[0].Method != "status" || calls[0].Status != service.StatusCompleted {
		t.Fatalf("expected status=completed request, got %+v", calls)
	}
	after := s.Stats()
	if after.Completed != before.Completed+1 || after.Active != before.Active-1 {
		t.Errorf("expected one task moved to completed: before %+v after %+v", before, after)
	}

	s.Toggle(context.Background(), "a", false)
	if s.Stats() != before {
		t.Errorf("expected stats restored after untoggle, got %+v", s.Stats())
	}
}

func TestToggle_Failure(t *testing.T) {
	svc := seeded()
	s := loadedStore(t, svc)
	before := s.Tasks()

	svc.SetStatusErr = errBackend
	notices := s.Toggle(context.Background(), "a", true)

	assertNotices(t, notices, store.Notification{Level: store.LevelError, Message: store.MsgStatusFailed})
	if !reflect.DeepEqual(s.Tasks(), before) {
		t.Error("collection changed after failed toggle")
	}
	if svc.ListCalls() != 1 {
		t.Errorf("expected no reload after failed toggle, got %d list calls", svc.ListCalls())
	}
}

func TestDelete(t *testing.T) {
	svc := seeded()
	s := loadedStore(t, svc)
	before := s.Stats()

	notices := s.Delete(context.Background(), "b")

	assertNotices(t, notices, store.Notification{Level: store.LevelSuccess, Message: store.MsgTaskDeleted})
	if _, ok := s.Find("b"); ok {
		t.Error("expected b removed after reload")
	}
	if s.Stats().Total != before.Total-1 {
		t.Errorf("expected total decremented, got %+v", s.Stats())
	}
}

func TestDelete_Failure(t *testing.T) {
	svc := seeded()
	s := loadedStore(t, svc)
	before := s.Tasks()

	svc.DeleteTaskErr = errBackend
	notices := s.Delete(context.Background(), "b")

	assertNotices(t, notices, store.Notification{Level: store.LevelError, Message: store.MsgDeleteFailed})
	if !reflect.DeepEqual(s.Tasks(), before) {
		t.Error("collection changed after failed delete")
	}
	if svc.ListCalls() != 1 {
		t.Errorf("expected no reload after failed delete, got %d list calls", svc.ListCalls())
	}
}

func TestEditAndCancel(t *testing.T) {
	s := loadedStore(t, seeded())
	target, _ := s.Find("a")

	s.Edit(target)
	edit := s.Editing()
	if edit == nil || edit.ID != "a" {
		t.Fatalf("expected edit target a, got %+v", edit)
	}
	edit.Title = "mutated"
	if s.Editing().Title != "Buy milk" {
		t.Error("Editing must return a copy")
	}

	s.CancelEdit()
	if s.Editing() != nil {
		t.Error("expected edit target cleared")
	}
}

func TestTasks_ReturnsCopy(t *testing.T) {
	s := loadedStore(t, seeded())

	tasks := s.Tasks()
	tasks[0].Title = "changed"

	if got, _ := s.Find("a"); got.Title != "Buy milk" {
		t.Error("mutating Tasks() result changed the store")
	}
}
