package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"quire-cli/internal/cli"
)

func isSceneID(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "scn-") && len(s) > len("scn-")
}

// rewriteDirectSceneLookupArgs turns `quire <scene-id>` into `quire scenes show <scene-id>`.
// Cobra treats the first non-flag token as a subcommand, so argv is rewritten before parsing.
// Persistent flags may come first (`quire --dir x scn-...`), so we look for the first
// positional token rather than argv[1].
func rewriteDirectSceneLookupArgs(argv []string) []string {
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without consuming a value so the id is never eaten.
	valueFlags := map[string]bool{
		"--dir":    true,
		"--format": true,
		"--glyphs": true,
	}
	boolFlags := map[string]bool{
		"--pretty": true,
	}

	insertAt := func(i int) []string {
		out := make([]string, 0, len(argv)+2)
		out = append(out, argv[:i]...)
		out = append(out, "scenes", "show")
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isSceneID(argv[i+1]) {
				return insertAt(i + 1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}
		if isSceneID(a) {
			return insertAt(i)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteDirectSceneLookupArgs(os.Args)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := cli.NewRootCmd()
	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
