// Package complete finalizes a processed pair: successful inputs move into
// the per-collection completed area (never overwriting prior artifacts),
// scratch segment directories are always removed, and a failed pair's
// partial output directory is rolled back.
package complete

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/backmassage/clipweave/internal/config"
	"github.com/backmassage/clipweave/internal/fsx"
	"github.com/backmassage/clipweave/internal/merge"
	"github.com/backmassage/clipweave/internal/naming"
	"github.com/backmassage/clipweave/internal/pairing"
)

// Manager relocates inputs and cleans transient artifacts for one pair.
type Manager struct {
	cfg config.Config
	log *log.Logger
	now func() time.Time
}

// New builds a Manager.
func New(cfg config.Config, logger *log.Logger) *Manager {
	return &Manager{cfg: cfg, log: logger, now: time.Now}
}

// Commit applies the outcome of one pair. On success both inputs move to
// their completed areas; on failure the pair's output directory is removed.
// The scratch segment directories are dropped either way. Failures here are
// pair-isolated: the caller logs them and continues with the next pair.
func (m *Manager) Commit(p pairing.Pair, out merge.Outcome, scratchA, scratchB, outputDir string) error {
	var commitErr error

	if out.Success {
		if err := m.relocate(p.SourceA, config.CollectionProduct); err != nil {
			commitErr = fmt.Errorf("relocate product input: %w", err)
		} else if err := m.relocate(p.SourceB, config.CollectionSelfie); err != nil {
			commitErr = fmt.Errorf("relocate selfie input: %w", err)
		}
	} else {
		if err := os.RemoveAll(outputDir); err != nil {
			m.log.Warn("rollback: cannot remove output dir", "dir", outputDir, "err", err)
		}
	}

	for _, dir := range []string{scratchA, scratchB} {
		if err := os.RemoveAll(dir); err != nil {
			m.log.Warn("cannot remove scratch dir", "dir", dir, "err", err)
		}
	}
	return commitErr
}

// relocate moves one input into its completed area. An existing file with
// the same name is never overwritten; the incoming file gets a timestamp
// suffix instead.
func (m *Manager) relocate(src string, col config.Collection) error {
	dst := filepath.Join(m.cfg.CompletedDir(col), filepath.Base(src))
	if fsx.Exists(dst) {
		dst = naming.TimestampVariant(dst, m.now())
		m.log.Info("completed name taken, using timestamp variant", "dst", filepath.Base(dst))
	}
	return fsx.MoveFile(src, dst)
}
