// Package check provides system diagnostics (the check subcommand) and
// pre-run dependency validation for ffmpeg, ffprobe, and the configured
// video codec.
package check

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/backmassage/clipweave/internal/config"
	"github.com/backmassage/clipweave/internal/fsx"
)

// Sentinel errors returned by Deps when a required tool or encoder is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
	ErrCodecTestFailed = errors.New("video codec test encode failed")
)

// Result is one diagnostic row.
type Result struct {
	Name   string
	OK     bool
	Detail string
}

// Run executes the full diagnostic suite and returns the rows in execution
// order. It never stops early; every check runs so the rendered table shows
// the complete picture.
func Run(cfg config.Config) []Result {
	results := []Result{
		checkTool("ffmpeg"),
		checkTool("ffprobe"),
		checkCodec(cfg.Video.Codec),
		checkAAC(),
	}
	for _, dir := range cfg.WorkingDirs() {
		results = append(results, checkWritable(dir))
	}
	return results
}

// Render formats the results as a table for terminal output.
func Render(results []Result) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"check", "status", "detail"})
	for _, r := range results {
		status := "ok"
		if !r.OK {
			status = "FAIL"
		}
		t.AppendRow(table.Row{r.Name, status, r.Detail})
	}
	return t.Render()
}

// Failed reports whether any check in results did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.OK {
			return true
		}
	}
	return false
}

// Deps is the pre-run validation: ffmpeg and ffprobe must be on PATH and
// the configured video codec must survive a minimal test encode. Returns a
// sentinel error on the first failure.
func Deps(cfg config.Config) error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}
	if !runSilent("ffmpeg", codecTestArgs(cfg.Video.Codec)...) {
		return fmt.Errorf("%w (%s)", ErrCodecTestFailed, cfg.Video.Codec)
	}
	return nil
}

// checkTool verifies the tool is on PATH and reports its version line.
func checkTool(name string) Result {
	if _, err := exec.LookPath(name); err != nil {
		return Result{Name: name, OK: false, Detail: "not found on PATH"}
	}
	out, err := exec.Command(name, "-version").Output()
	if err != nil {
		return Result{Name: name, OK: false, Detail: "-version failed"}
	}
	line := strings.TrimSpace(string(out))
	if idx := strings.Index(line, "\n"); idx > 0 {
		line = line[:idx]
	}
	return Result{Name: name, OK: true, Detail: line}
}

// checkCodec runs a minimal encode with the configured video codec.
func checkCodec(codec string) Result {
	name := "codec " + codec
	if !runSilent("ffmpeg", codecTestArgs(codec)...) {
		return Result{Name: name, OK: false, Detail: "test encode failed"}
	}
	return Result{Name: name, OK: true, Detail: "test encode ok"}
}

// checkAAC runs a minimal AAC encode to verify the audio encoder works.
func checkAAC() Result {
	ok := runSilent("ffmpeg",
		"-hide_banner", "-nostdin",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", "aac", "-f", "null", "-",
	)
	if !ok {
		return Result{Name: "codec aac", OK: false, Detail: "test encode failed"}
	}
	return Result{Name: "codec aac", OK: true, Detail: "test encode ok"}
}

// checkWritable creates the directory if needed and probes it for writes.
func checkWritable(dir string) Result {
	name := "dir " + dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{Name: name, OK: false, Detail: err.Error()}
	}
	if err := fsx.ProbeWritable(dir); err != nil {
		return Result{Name: name, OK: false, Detail: "write probe failed"}
	}
	return Result{Name: name, OK: true, Detail: "writable"}
}

// codecTestArgs returns the ffmpeg arguments for a minimal test encode with
// the given video codec.
func codecTestArgs(codec string) []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", codec,
		"-f", "null", "-",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
