package commands

import (
	"context"
	"flag"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/store"
)

func init() {
	Register(&DoneCmd{})
	Register(&UndoCmd{})
	Register(&ToggleCmd{})
}

// toggleMode selects the status a toggle command sets.
type toggleMode int

const (
	markCompleted toggleMode = iota
	markActive
	flip
)

// DoneCmd implements the done command.
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return []string{"complete"} }
func (c *DoneCmd) Synopsis() string   { return "Mark a task completed" }
func (c *DoneCmd) Usage() string      { return "taskflow done <ref>" }
func (c *DoneCmd) NeedsBackend() bool { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, st, markCompleted, args, out, errOut)
}

// UndoCmd implements the undo command.
type UndoCmd struct{}

func (c *UndoCmd) Name() string       { return "undo" }
func (c *UndoCmd) Aliases() []string  { return []string{"reopen"} }
func (c *UndoCmd) Synopsis() string   { return "Mark a task active again" }
func (c *UndoCmd) Usage() string      { return "taskflow undo <ref>" }
func (c *UndoCmd) NeedsBackend() bool { return true }

func (c *UndoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UndoCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, st, markActive, args, out, errOut)
}

// ToggleCmd implements the toggle command.
type ToggleCmd struct{}

func (c *ToggleCmd) Name() string       { return "toggle" }
func (c *ToggleCmd) Aliases() []string  { return nil }
func (c *ToggleCmd) Synopsis() string   { return "Flip a task between active and completed" }
func (c *ToggleCmd) Usage() string      { return "taskflow toggle <ref>" }
func (c *ToggleCmd) NeedsBackend() bool { return true }

func (c *ToggleCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ToggleCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	return runToggle(ctx, cfg, st, flip, args, out, errOut)
}

// runToggle is the shared implementation for done, undo and toggle.
func runToggle(ctx context.Context, cfg *config.Config, st *store.Store, mode toggleMode, args []string, out, errOut io.Writer) int {
	if code := load(ctx, cfg, st, out, errOut); code != exitcode.Success {
		return code
	}

	task, code := lookupTask(st, args, errOut)
	if code != exitcode.Success {
		return code
	}

	completed := mode == markCompleted
	if mode == flip {
		completed = !task.Completed()
	}

	code = report(cfg, st.Toggle(ctx, task.ID, completed), out, errOut)
	if code == exitcode.Success && !cfg.Quiet {
		io.WriteString(out, "ok\n")
	}
	return code
}
