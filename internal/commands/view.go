package commands

import (
	"context"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/store"
)

// report prints notices: successes to out unless quiet, errors to errOut.
// Returns BackendError if any notice is an error.
func report(cfg *config.Config, notices store.Notices, out, errOut io.Writer) int {
	code := exitcode.Success
	for _, n := range notices {
		if n.Level == store.LevelError {
			output.FormatNotice(errOut, n)
			code = exitcode.BackendError
			continue
		}
		if !cfg.Quiet {
			output.FormatNotice(out, n)
		}
	}
	return code
}

// load performs the initial load every backend command starts with.
func load(ctx context.Context, cfg *config.Config, st *store.Store, out, errOut io.Writer) int {
	return report(cfg, st.Load(ctx), out, errOut)
}

// printView prints the stats line and the tasks matching f.
// Tasks are numbered by their position in the unfiltered collection so the
// numbers stay valid as task references under any filter.
func printView(cfg *config.Config, st *store.Store, f store.Filter, out io.Writer) {
	if st.Loading() {
		if !cfg.Quiet {
			io.WriteString(out, output.LoadingText+"\n")
		}
		return
	}

	if !cfg.Quiet {
		output.FormatStats(out, st.Stats())
	}

	positions := make(map[string]int)
	for i, t := range st.Tasks() {
		positions[t.ID] = i + 1
	}

	tasks := st.FilteredTasks(f)
	if len(tasks) == 0 {
		if !cfg.Quiet {
			output.FormatEmpty(out, f)
		}
		return
	}
	for _, t := range tasks {
		output.FormatTask(out, positions[t.ID], t)
	}
}
