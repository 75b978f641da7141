package commands

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"taskflow/internal/config"
	"taskflow/internal/exitcode"
	"taskflow/internal/output"
	"taskflow/internal/store"
)

const shellPrompt = "taskflow> "

func init() {
	Register(&ShellCmd{})
}

// ShellCmd implements the interactive shell.
// One store lives for the whole session, so the edit target and the filter
// persist between lines and failed operations leave the session usable.
type ShellCmd struct {
	in io.Reader
}

// SetInput sets the reader lines are read from (for testing).
func (c *ShellCmd) SetInput(r io.Reader) {
	c.in = r
}

func (c *ShellCmd) Name() string       { return "shell" }
func (c *ShellCmd) Aliases() []string  { return nil }
func (c *ShellCmd) Synopsis() string   { return "Interactive session" }
func (c *ShellCmd) Usage() string      { return "taskflow shell" }
func (c *ShellCmd) NeedsBackend() bool { return true }

func (c *ShellCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShellCmd) Run(ctx context.Context, cfg *config.Config, st *store.Store, args []string, out, errOut io.Writer) int {
	in := c.in
	if in == nil {
		in = os.Stdin
	}

	s := &shellSession{cfg: cfg, st: st, out: out, errOut: errOut, filter: store.FilterAll}
	report(cfg, st.Load(ctx), out, errOut)
	printView(cfg, st, s.filter, out)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, shellPrompt)
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}
		if !s.exec(ctx, scanner.Text()) {
			return exitcode.Success
		}
	}
	fmt.Fprintln(out)

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}
	return exitcode.Success
}

type shellSession struct {
	cfg    *config.Config
	st     *store.Store
	out    io.Writer
	errOut io.Writer
	filter store.Filter
}

// exec runs one input line. Returns false when the session should end.
func (s *shellSession) exec(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return true
	}
	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch name {
	case "quit", "exit":
		return false
	case "help":
		fmt.Fprint(s.out, shellHelpText)
	case "list", "ls", "filter":
		if rest != "" {
			f, err := store.ParseFilter(rest)
			if err != nil {
				fmt.Fprintf(s.errOut, "error: %v\n", err)
				return true
			}
			s.filter = f
		}
		printView(s.cfg, s.st, s.filter, s.out)
	case "stats":
		output.FormatStats(s.out, s.st.Stats())
	case "reload":
		if report(s.cfg, s.st.Load(ctx), s.out, s.errOut) == exitcode.Success {
			printView(s.cfg, s.st, s.filter, s.out)
		}
	case "new":
		s.st.CancelEdit()
		fmt.Fprintln(s.out, "New task: save <title> [| <description>]")
	case "edit":
		task, code := lookupTask(s.st, args, s.errOut)
		if code != exitcode.Success {
			return true
		}
		s.st.Edit(task)
		output.FormatEditing(s.out, task)
	case "cancel":
		s.st.CancelEdit()
	case "save":
		s.save(ctx, rest)
	case "done", "complete", "undo", "reopen", "toggle":
		task, code := lookupTask(s.st, args, s.errOut)
		if code != exitcode.Success {
			return true
		}
		completed := name == "done" || name == "complete"
		if name == "toggle" {
			completed = !task.Completed()
		}
		s.mutated(s.st.Toggle(ctx, task.ID, completed))
	case "rm", "delete":
		task, code := lookupTask(s.st, args, s.errOut)
		if code != exitcode.Success {
			return true
		}
		s.mutated(s.st.Delete(ctx, task.ID))
	default:
		fmt.Fprintf(s.errOut, "error: unknown command: %s\n", name)
	}
	return true
}

// save handles "save <title> [| <description>]".
// While editing, omitting the description keeps the current one.
func (s *shellSession) save(ctx context.Context, rest string) {
	rawTitle, rawDesc, hasDesc := strings.Cut(rest, "|")
	title := strings.TrimSpace(rawTitle)
	if title == "" {
		fmt.Fprintln(s.errOut, "error: title required")
		return
	}

	var description *string
	if hasDesc {
		description = optional(strings.TrimSpace(rawDesc))
	} else if target := s.st.Editing(); target != nil {
		description = target.Description
	}

	s.mutated(s.st.Save(ctx, title, description))
}

// mutated reports the outcome of a mutation and redraws the view on success.
func (s *shellSession) mutated(notices store.Notices) {
	if report(s.cfg, notices, s.out, s.errOut) == exitcode.Success {
		printView(s.cfg, s.st, s.filter, s.out)
	}
}

const shellHelpText = `Commands:
  list [all|active|completed]   Show tasks (optionally change the filter)
  filter <all|active|completed> Change the filter
  stats                         Show counts
  reload                        Fetch tasks again
  new                           Start a new task
  edit <ref>                    Start editing a task
  save <title> [| <description>] Save the new or edited task
  cancel                        Stop editing
  done|undo|toggle <ref>        Change a task's status
  rm <ref>                      Delete a task
  quit                          Leave the shell
`
