package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/store"
)

func init() {
	Register(&EditCmd{})
}

// optionalFlag is a string flag that remembers whether it was given.
type optionalFlag struct {
	value string
	set   bool
}

func (f *optionalFlag) String() string { return f.value }

func (f *optionalFlag) Set(s string) error {
	f.value = s
	f.set = true
	return nil
}

// EditCmd implements the edit command.
type EditCmd struct {
	title       optionalFlag
	description optionalFlag
}

// SetTitle sets the new title (for testing).
func (c *EditCmd) SetTitle(t string) {
	_ = c.title.Set(t)
}

// SetDescription sets the new description (for testing).
func (c *EditCmd) SetDescription(d string) {
	_ = c.description.Set(d)
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Change a task's title or description" }
func (c *EditCmd) Usage() string {
	return "taskflow edit [--title <text>] [--description <text>] <ref>"
}
func (c *EditCmd) NeedsBackend() bool { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title = optionalFlag{}
	c.description = optionalFlag{}
	fs.Var(&c.title, "title", "")
	fs.Var(&c.title, "t", "")
	fs.Var(&c.description, "description", "")
	fs.Var(&c.description, "d", "")
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if !c.title.set && !c.description.set {
		fmt.Fprintln(errOut, "error: nothing to change (use --title or --description)")
		return exitcode.UserError
	}
	if c.title.set && strings.TrimSpace(c.title.value) == "" {
		fmt.Fprintln(errOut, "error: title required")
		return exitcode.UserError
	}

	if code := load(ctx, cfg, st, out, errOut); code != exitcode.Success {
		return code
	}

	task, code := lookupTask(st, args, errOut)
	if code != exitcode.Success {
		return code
	}

	// Fields not given keep their current value, as a prefilled form would.
	title := task.Title
	if c.title.set {
		title = strings.TrimSpace(c.title.value)
	}
	description := task.Description
	if c.description.set {
		description = optional(c.description.value)
	}

	st.Edit(task)
	return report(cfg, st.Save(ctx, title, description), out, errOut)
}
