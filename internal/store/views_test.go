package store

import (
	"reflect"
	"testing"

	"taskflow/internal/service"
)

func sampleTasks() []service.Task {
	return []service.Task{
		{ID: "1", Title: "one", Status: service.StatusActive},
		{ID: "2", Title: "two", Status: service.StatusCompleted},
		{ID: "3", Title: "three", Status: service.StatusActive},
		{ID: "4", Title: "four", Status: service.StatusCompleted},
		{ID: "5", Title: "five", Status: service.StatusActive},
	}
}

func ids(tasks []service.Task) []string {
	result := make([]string, len(tasks))
	for i, t := range tasks {
		result[i] = t.ID
	}
	return result
}

func TestFilterTasks(t *testing.T) {
	tasks := sampleTasks()

	tests := []struct {
		filter Filter
		want   []string
	}{
		{FilterAll, []string{"1", "2", "3", "4", "5"}},
		{FilterActive, []string{"1", "3", "5"}},
		{FilterCompleted, []string{"2", "4"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			got := ids(FilterTasks(tasks, tt.filter))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFilterTasks_PartitionsCollection(t *testing.T) {
	tasks := sampleTasks()
	active := FilterTasks(tasks, FilterActive)
	completed := FilterTasks(tasks, FilterCompleted)

	seen := make(map[string]int)
	for _, task := range append(active, completed...) {
		seen[task.ID]++
	}
	if len(seen) != len(tasks) {
		t.Errorf("union has %d ids, collection has %d", len(seen), len(tasks))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("task %s appears in both views", id)
		}
	}
}

func TestFilterTasks_AllIsUnchanged(t *testing.T) {
	tasks := sampleTasks()
	if got := FilterTasks(tasks, FilterAll); !reflect.DeepEqual(got, tasks) {
		t.Errorf("all filter changed the collection: %v", got)
	}
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name  string
		tasks []service.Task
		want  Stats
	}{
		{"empty", nil, Stats{}},
		{"mixed", sampleTasks(), Stats{Total: 5, Active: 3, Completed: 2}},
		{"all completed", []service.Task{{ID: "x", Status: service.StatusCompleted}}, Stats{Total: 1, Completed: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeStats(tt.tasks)
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
			if got.Active+got.Completed != got.Total {
				t.Errorf("active+completed != total: %+v", got)
			}
		})
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    Filter
		wantErr bool
	}{
		{"all", FilterAll, false},
		{" Active ", FilterActive, false},
		{"COMPLETED", FilterCompleted, false},
		{"done", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFilter(%q): unexpected error state %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFilter(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestNotices(t *testing.T) {
	var empty Notices
	if empty.Failed() || empty.Err() != nil {
		t.Error("empty notices must not report failure")
	}

	n := Notices{success(MsgTaskAdded), failure(MsgLoadFailed, errTest)}
	if !n.Failed() {
		t.Error("expected Failed")
	}
	if n.Err() != errTest {
		t.Errorf("expected errTest, got %v", n.Err())
	}
	if LevelSuccess.String() != "Success" || LevelError.String() != "Error" {
		t.Error("unexpected level names")
	}
}

var errTest = testError("boom")

type testError string

func (e testError) Error() string { return string(e) }
