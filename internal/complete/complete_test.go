package complete

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/backmassage/clipweave/internal/config"
	"github.com/backmassage/clipweave/internal/merge"
	"github.com/backmassage/clipweave/internal/pairing"
)

type fixture struct {
	mgr      *Manager
	cfg      config.Config
	pair     pairing.Pair
	scratchA string
	scratchB string
	output   string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.Default()
	cfg.Root = t.TempDir()

	for _, dir := range cfg.WorkingDirs() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
	}

	srcA := filepath.Join(cfg.InputDir(config.CollectionProduct), "01 - alice.mp4")
	srcB := filepath.Join(cfg.InputDir(config.CollectionSelfie), "01 - alice.mov")
	for _, p := range []string{srcA, srcB} {
		if err := os.WriteFile(p, []byte("video"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	f := &fixture{
		mgr: New(cfg, log.New(io.Discard)),
		cfg: cfg,
		pair: pairing.Pair{
			SourceA: srcA, SourceB: srcB,
			NameA: "alice", NameB: "alice", Identity: "alice", Index: 1,
		},
		scratchA: filepath.Join(cfg.ClipsDir(), "01_alice_product"),
		scratchB: filepath.Join(cfg.ClipsDir(), "01_alice_selfie"),
		output:   filepath.Join(cfg.OutputDir(), "01_alice_alice"),
	}
	for _, dir := range []string{f.scratchA, f.scratchB, f.output} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(dir, "some.mp4"), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return f
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestCommitSuccessRelocatesAndCleans(t *testing.T) {
	f := newFixture(t)

	err := f.mgr.Commit(f.pair, merge.Outcome{Success: true}, f.scratchA, f.scratchB, f.output)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if exists(f.pair.SourceA) || exists(f.pair.SourceB) {
		t.Error("inputs still in place after successful commit")
	}
	if !exists(filepath.Join(f.cfg.CompletedDir(config.CollectionProduct), "01 - alice.mp4")) {
		t.Error("product input not relocated")
	}
	if !exists(filepath.Join(f.cfg.CompletedDir(config.CollectionSelfie), "01 - alice.mov")) {
		t.Error("selfie input not relocated")
	}
	if exists(f.scratchA) || exists(f.scratchB) {
		t.Error("scratch dirs survive commit")
	}
	if !exists(f.output) {
		t.Error("output dir removed on success")
	}
}

func TestCommitNeverOverwritesCompleted(t *testing.T) {
	f := newFixture(t)
	f.mgr.now = func() time.Time {
		return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	}

	// A prior completed artifact with the same name and known content.
	prior := filepath.Join(f.cfg.CompletedDir(config.CollectionProduct), "01 - alice.mp4")
	if err := os.WriteFile(prior, []byte("prior"), 0o644); err != nil {
		t.Fatalf("write prior: %v", err)
	}

	if err := f.mgr.Commit(f.pair, merge.Outcome{Success: true}, f.scratchA, f.scratchB, f.output); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	data, err := os.ReadFile(prior)
	if err != nil {
		t.Fatalf("read prior: %v", err)
	}
	if string(data) != "prior" {
		t.Error("prior completed artifact was overwritten")
	}

	variant := filepath.Join(f.cfg.CompletedDir(config.CollectionProduct),
		"01 - alice_20240501T120000.mp4")
	if !exists(variant) {
		t.Errorf("timestamp variant %s not created", filepath.Base(variant))
	}
}

func TestCommitFailureRollsBackOutput(t *testing.T) {
	f := newFixture(t)

	err := f.mgr.Commit(f.pair, merge.Outcome{Success: false}, f.scratchA, f.scratchB, f.output)
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if exists(f.output) {
		t.Error("output dir survives failed pair")
	}
	if exists(f.scratchA) || exists(f.scratchB) {
		t.Error("scratch dirs survive failed pair")
	}
	// Inputs stay where they are for a later retry.
	if !exists(f.pair.SourceA) || !exists(f.pair.SourceB) {
		t.Error("inputs moved despite failure")
	}
}

func TestCommitReportsRelocationError(t *testing.T) {
	f := newFixture(t)

	// Removing the input makes relocation fail.
	if err := os.Remove(f.pair.SourceA); err != nil {
		t.Fatalf("remove: %v", err)
	}

	err := f.mgr.Commit(f.pair, merge.Outcome{Success: true}, f.scratchA, f.scratchB, f.output)
	if err == nil {
		t.Error("expected relocation error")
	}
	// Cleanup still happened.
	if exists(f.scratchA) || exists(f.scratchB) {
		t.Error("scratch dirs survive relocation error")
	}
}
