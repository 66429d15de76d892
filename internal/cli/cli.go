package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"

	"github.com/tiwariParth/todo-cli/internal/app"
	"github.com/tiwariParth/todo-cli/internal/config"
	"github.com/tiwariParth/todo-cli/internal/exitcode"
	"github.com/tiwariParth/todo-cli/internal/logging"
	"github.com/tiwariParth/todo-cli/internal/storage/file"
	"github.com/tiwariParth/todo-cli/internal/task"
)

const (
	Name    = "todo-cli"
	About   = "TODO list CLI app"
	Version = "1.0"
)

const usage = `Usage: todo [global flags] <command> [args]

Commands:
  add <description> <low|medium|high>   Add a task
  list [--priority <low|medium|high>]   List tasks
  complete <id>                         Mark a task as completed
  delete <id>                           Delete a task
  clear                                 Delete all tasks
  help                                  Show this help
  version                               Show the version

Global flags:
  --file <path>        Task file (default todo.json)
  --config <path>      TOML config file
  --no-color           Disable colored output
  --debug              Log load and save events to stderr
  --log-format <fmt>   Log format: text, json or logfmt
  --atomic             Write the task file atomically
`

// usageError marks bad command-line input.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usageErrorf(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// CLI represents the command-line interface.
type CLI struct {
	App    *app.TodoApp
	Out    io.Writer
	ErrOut io.Writer
}

// NewCLI initializes a new CLI.
func NewCLI(a *app.TodoApp, out, errOut io.Writer) *CLI {
	return &CLI{App: a, Out: out, ErrOut: errOut}
}

// Main resolves configuration from args, wires the file store and runs one
// command. It returns the process exit code.
func Main(args []string, out, errOut io.Writer) int {
	if len(args) > 0 && (args[0] == "--version" || args[0] == "-V") {
		fmt.Fprintf(out, "%s %s\n", Name, Version)
		return exitcode.Success
	}

	cfg, rest, err := config.Load(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fmt.Fprint(out, usage)
			return exitcode.Success
		}
		var ue *config.UsageError
		if errors.As(err, &ue) {
			return reportUsage(errOut, err)
		}
		return report(errOut, err)
	}

	if cfg.NoColor {
		color.NoColor = true
	}

	logger := logging.New(errOut, logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logger.Debug("configuration resolved", "file", cfg.File, "config", cfg.ConfigFile, "atomic", cfg.AtomicWrite)

	opts := []file.Option{file.WithLogger(logger)}
	if cfg.AtomicWrite {
		opts = append(opts, file.WithAtomicWrite())
	}
	store := file.NewFileStore(cfg.File, opts...)

	return NewCLI(app.NewTodoApp(store, app.WithLogger(logger)), out, errOut).Run(rest)
}

// Run executes one command and returns the exit code.
func (c *CLI) Run(args []string) int {
	err := c.dispatch(args)
	if err == nil {
		return exitcode.Success
	}
	var ue *usageError
	if errors.As(err, &ue) {
		return reportUsage(c.ErrOut, err)
	}
	return report(c.ErrOut, err)
}

func (c *CLI) dispatch(args []string) error {
	if len(args) < 1 {
		return usageErrorf("no command provided")
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "add":
		if len(rest) != 2 {
			return usageErrorf("add takes <description> <priority>")
		}
		priority, err := task.ParsePriority(rest[1])
		if err != nil {
			return &usageError{msg: err.Error()}
		}
		if _, err := c.App.AddTask(rest[0], priority); err != nil {
			return err
		}
		fmt.Fprintln(c.Out, "Task added successfully!")

	case "list":
		return c.list(rest)

	case "complete":
		id, err := parseID(cmd, rest)
		if err != nil {
			return err
		}
		if err := c.App.CompleteTask(id); err != nil {
			return err
		}
		fmt.Fprintf(c.Out, "Task %d marked as completed!\n", id)

	case "delete":
		id, err := parseID(cmd, rest)
		if err != nil {
			return err
		}
		if err := c.App.DeleteTask(id); err != nil {
			return err
		}
		fmt.Fprintf(c.Out, "Task %d deleted\n", id)

	case "clear":
		if len(rest) != 0 {
			return usageErrorf("clear takes no arguments")
		}
		if err := c.App.ClearTasks(); err != nil {
			return err
		}
		fmt.Fprintln(c.Out, "All tasks cleared")

	case "help", "-h", "--help":
		fmt.Fprint(c.Out, usage)

	case "version":
		fmt.Fprintf(c.Out, "%s %s\n", Name, Version)

	default:
		return usageErrorf("unknown command: %s", cmd)
	}

	return nil
}

func (c *CLI) list(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	priorityToken := fs.String("priority", "", "")
	if err := fs.Parse(args); err != nil {
		return usageErrorf("list: %v", err)
	}
	if fs.NArg() != 0 {
		return usageErrorf("list takes no arguments")
	}

	ts, err := c.App.Tasks()
	if err != nil {
		return err
	}

	tasks := ts.Tasks
	if *priorityToken != "" {
		priority, err := task.ParsePriority(*priorityToken)
		if err != nil {
			return &usageError{msg: err.Error()}
		}
		tasks = ts.Filter(priority)
	}

	RenderList(c.Out, tasks)
	return nil
}

func parseID(cmd string, args []string) (int, error) {
	if len(args) != 1 {
		return 0, usageErrorf("%s takes <id>", cmd)
	}
	id, err := strconv.ParseUint(args[0], 10, strconv.IntSize-1)
	if err != nil {
		return 0, usageErrorf("invalid task ID %q", args[0])
	}
	return int(id), nil
}

var errLabel = color.New(color.FgRed, color.Bold).SprintFunc()

func report(w io.Writer, err error) int {
	fmt.Fprintf(w, "%s %v\n", errLabel("Error:"), err)
	return exitcode.Failure
}

func reportUsage(w io.Writer, err error) int {
	fmt.Fprintf(w, "%s %v\n\n%s", errLabel("Error:"), err, usage)
	return exitcode.Usage
}
