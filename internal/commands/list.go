package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/store"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskflow` (no args) and `taskflow list --filter <f>`.
type ListCmd struct {
	filter string
}

// SetFilter sets the filter name (for testing).
func (c *ListCmd) SetFilter(f string) {
	c.filter = f
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string      { return "taskflow list [--filter all|active|completed]" }
func (c *ListCmd) NeedsBackend() bool { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.filter, "filter", string(store.FilterAll), "")
	fs.StringVar(&c.filter, "f", string(store.FilterAll), "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	name := c.filter
	if name == "" {
		name = string(store.FilterAll)
	}
	filter, err := store.ParseFilter(name)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	if len(args) > 0 {
		fmt.Fprintf(errOut, "error: unexpected argument: %s\n", args[0])
		return exitcode.UserError
	}

	if code := load(ctx, cfg, st, out, errOut); code != exitcode.Success {
		return code
	}

	printView(cfg, st, filter, out)
	return exitcode.Success
}
