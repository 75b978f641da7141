package commands

import (
	"errors"
	"fmt"
	"io"

	"taskflow/internal/exitcode"
	"taskflow/internal/service"
	"taskflow/internal/store"
)

// lookupTask parses args as a task reference and resolves it against the
// loaded collection. On failure it prints the error and returns a non-zero
// exit code.
func lookupTask(st *store.Store, args []string, errOut io.Writer) (service.Task, int) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		if errors.Is(err, ErrTaskRefRequired) {
			fmt.Fprintln(errOut, "error: task reference required")
		} else {
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
		return service.Task{}, exitcode.UserError
	}

	task, err := ResolveTask(st, ref)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return service.Task{}, exitcode.UserError
	}
	return task, exitcode.Success
}
