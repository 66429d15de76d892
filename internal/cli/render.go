package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/tiwariParth/todo-cli/internal/task"
)

const completedLayout = "2006-01-02 15:04"

var (
	yellow    = color.New(color.FgYellow).SprintFunc()
	header    = color.New(color.FgGreen, color.Bold).SprintFunc()
	rule      = color.New(color.FgBlue).SprintFunc()
	cyan      = color.New(color.FgCyan).SprintFunc()
	dim       = color.New(color.Faint).SprintFunc()
	bold      = color.New(color.Bold).SprintFunc()
	greenBold = color.New(color.FgGreen, color.Bold).SprintFunc()
	redBold   = color.New(color.FgRed, color.Bold).SprintFunc()
)

// RenderList prints tasks in order followed by a summary footer.
func RenderList(w io.Writer, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, yellow("No tasks found!"))
		return
	}

	line := strings.Repeat("-", 40)
	fmt.Fprintln(w, header("TODO List:"))
	fmt.Fprintln(w, rule(line))

	for _, t := range tasks {
		id := cyan(fmt.Sprintf("#%d", t.ID))
		if !t.Completed {
			fmt.Fprintf(w, "%s %s: %s\n", redBold("x"), id, t.Description)
			continue
		}

		fmt.Fprintf(w, "%s %s: %s\n", greenBold("✓"), id, dim(t.Description))
		if ts, ok := t.CompletedOn(); ok {
			fmt.Fprintf(w, "   %s %s\n", dim("Completed on:"), ts.Local().Format(completedLayout))
		}
	}

	sum := task.Summarize(tasks)
	fmt.Fprintf(w, "\n%s\n", rule(line))
	fmt.Fprintf(w, "%s: %d | %s: %d | %s: %d\n",
		bold("Total"), sum.Total,
		greenBold("Completed"), sum.Completed,
		redBold("Pending"), sum.Pending)
}
