// Package ffmpeg invokes the external media engine (ffmpeg/ffprobe) as
// black-box commands and turns each invocation into a single blocking call
// with a typed result.
package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// stderrTailLines caps how much engine output is carried inside an error.
const stderrTailLines = 10

// run executes one engine command, capturing stderr. On failure the error
// wraps the exec error and carries the tail of the engine's stderr, which is
// where ffmpeg reports its diagnostics.
func run(ctx context.Context, args []string) error {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		tail := stderrTail(stderr.String())
		if tail == "" {
			return fmt.Errorf("%s: %w", args[0], err)
		}
		return fmt.Errorf("%s: %w: %s", args[0], err, tail)
	}
	return nil
}

func stderrTail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) > stderrTailLines {
		lines = lines[len(lines)-stderrTailLines:]
	}
	return strings.Join(lines, " | ")
}
