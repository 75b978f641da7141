package commands

import (
	"context"
	"flag"
	"io"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/store"
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd implements the stats command.
type StatsCmd struct{}

func (c *StatsCmd) Name() string       { return "stats" }
func (c *StatsCmd) Aliases() []string  { return nil }
func (c *StatsCmd) Synopsis() string   { return "Print task counts" }
func (c *StatsCmd) Usage() string      { return "taskflow stats" }
func (c *StatsCmd) NeedsBackend() bool { return true }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	if code := load(ctx, cfg, st, out, errOut); code != exitcode.Success {
		return code
	}
	output.FormatStats(out, st.Stats())
	return exitcode.Success
}
