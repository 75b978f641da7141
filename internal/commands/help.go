package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"text/tabwriter"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/store"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskflow help" }
func (c *HelpCmd) NeedsBackend() bool { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	writeHelp(out, DefaultRegistry)
	return exitcode.Success
}

// writeHelp prints usage for every command in r.
func writeHelp(out io.Writer, r *Registry) {
	fmt.Fprintln(out, "Usage:")
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\t%s\n", config.AppName, "List all tasks")
	for _, cmd := range r.All() {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Usage(), cmd.Synopsis())
		for _, alias := range cmd.Aliases() {
			fmt.Fprintf(tw, "  %s %s\t%s\n", config.AppName, alias, "Same as "+cmd.Name())
		}
	}
	tw.Flush()
	fmt.Fprint(out, helpFooter)
}

const helpFooter = `
A <ref> is a task id, a task number as printed by list, or a unique id prefix.

Common flags (accepted by every command):
  --env-file <path>  Load settings from this .env file
  --api-base <url>   Override TASKFLOW_API_BASE
  --quiet            Suppress informational output
  --debug            Print debug logs to stderr
`
