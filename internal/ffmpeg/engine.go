package ffmpeg

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/backmassage/clipweave/internal/config"
	"github.com/backmassage/clipweave/internal/probe"
)

// Engine is the concrete external media engine. It satisfies the narrow
// interfaces the split and merge stages define for themselves.
type Engine struct {
	frame config.Frame
	video config.Video
	log   *log.Logger
}

// New builds an Engine from the fixed encoding profile in cfg.
func New(cfg config.Config, logger *log.Logger) *Engine {
	return &Engine{
		frame: cfg.Frame,
		video: cfg.Video,
		log:   logger,
	}
}

// ExtractSegment transcodes one fixed-duration slice of src into dst.
func (e *Engine) ExtractSegment(ctx context.Context, src, dst string, startSec, durSec int) error {
	args := SegmentArgs(src, dst, startSec, durSec, e.video)
	e.log.Debug("extract segment", "src", src, "start", startSec, "dur", durSec)
	return run(ctx, args)
}

// ProbeStreams returns the stream metadata of path.
func (e *Engine) ProbeStreams(ctx context.Context, path string) (*probe.Result, error) {
	return probe.Probe(ctx, path)
}

// Concat scales, pads, and concatenates two inputs into a single video-only
// output at the canonical frame.
func (e *Engine) Concat(ctx context.Context, inputA, inputB, dst string) error {
	args := ConcatArgs(inputA, inputB, dst, e.frame, e.video)
	e.log.Debug("concat", "a", inputA, "b", inputB, "out", dst)
	return run(ctx, args)
}
