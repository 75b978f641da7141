package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"taskflow/internal/service"
	"taskflow/internal/store"
)

// TaskRef represents a parsed task reference.
type TaskRef struct {
	ID     string // the argument as given: task id or id prefix
	Num    int    // 1-based position in the full list, valid if HasNum
	HasNum bool   // ID is all digits and fits an int
}

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// ParseTaskRef parses a task reference from args.
//
// Parsing rules:
// 1. No args → ErrTaskRefRequired
// 2. More than one arg → error: unexpected argument
// 3. All digits → also a position in the unfiltered list (as printed by list)
// 4. Anything else → task id or unique id prefix
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("unexpected argument: %s", args[1])
	}

	arg := strings.TrimSpace(args[0])
	ref := TaskRef{ID: arg}
	if isAllDigits(arg) {
		if num, err := strconv.Atoi(arg); err == nil {
			ref.Num = num
			ref.HasNum = true
		}
	}
	return ref, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ResolveTask finds the task a reference points at in the loaded collection.
// Lookup order: exact id, then list position for numeric refs, then unique
// id prefix. Backend ids are opaque and may themselves be all digits.
func ResolveTask(st *store.Store, ref TaskRef) (service.Task, error) {
	if ref.ID != "" {
		if t, ok := st.Find(ref.ID); ok {
			return t, nil
		}
	}

	tasks := st.Tasks()
	if ref.HasNum {
		if ref.Num < 1 || ref.Num > len(tasks) {
			return service.Task{}, fmt.Errorf("task number out of range: %d", ref.Num)
		}
		return tasks[ref.Num-1], nil
	}
	if ref.ID == "" {
		return service.Task{}, ErrTaskRefRequired
	}

	var matches []service.Task
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref.ID) {
			matches = append(matches, t)
		}
	}
	switch len(matches) {
	case 0:
		return service.Task{}, fmt.Errorf("task not found: %s", ref.ID)
	case 1:
		return matches[0], nil
	default:
		return service.Task{}, fmt.Errorf("ambiguous task id: %s", ref.ID)
	}
}
