package main

import (
	"os"
	"strings"

	"dayplan/internal/cli"
)

func isTaskID(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "task-") {
		return false
	}
	return len(s) > len("task-")
}

// rewriteDirectTaskLookupArgs makes `dayplan <task-id>` behave like
// `dayplan tasks show <task-id>`. Cobra treats the first non-flag token
// as a subcommand, so argv is rewritten before parsing.
func rewriteDirectTaskLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}
	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if strings.HasPrefix(a, "-") {
			// Value flags carry their value in the next token unless --flag=value.
			if !strings.Contains(a, "=") && (a == "--dir" || a == "--format") {
				i++
			}
			continue
		}
		if isTaskID(a) {
			out := make([]string, 0, len(argv)+2)
			out = append(out, argv[:i]...)
			out = append(out, "tasks", "show")
			out = append(out, argv[i:]...)
			return out
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectTaskLookupArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
