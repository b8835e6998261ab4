// Package probe inspects media files with a single ffprobe JSON call and
// exposes the stream-level metadata the merge stage validates against.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Stream holds the properties of one stream relevant to merge validation.
type Stream struct {
	Index  int
	Type   string // "video", "audio", ...
	Codec  string
	Width  int
	Height int
}

// Result is the parsed output of one ffprobe call.
type Result struct {
	Duration float64
	Size     int64
	Streams  []Stream
}

// HasVideo reports whether any stream is a video stream. Segments without
// one are skipped by the merge stage rather than fed into the filter graph.
func (r *Result) HasVideo() bool {
	for _, s := range r.Streams {
		if s.Type == "video" {
			return true
		}
	}
	return false
}

// Probe runs ffprobe against path and returns the parsed result.
func Probe(ctx context.Context, path string) (*Result, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	return ParseJSON(out)
}

// ParseJSON converts raw ffprobe JSON output into a Result.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*Result, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse ffprobe JSON: %w", err)
	}

	res := &Result{
		Duration: parseFloat(raw.Format.Duration),
		Size:     parseInt64(raw.Format.Size),
	}
	for _, s := range raw.Streams {
		res.Streams = append(res.Streams, Stream{
			Index:  s.Index,
			Type:   s.CodecType,
			Codec:  s.CodecName,
			Width:  s.Width,
			Height: s.Height,
		})
	}
	return res, nil
}

// --- ffprobe JSON wire types ---

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
	Size     string `json:"size"`
}

type ffprobeStream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

// --- Numeric parsing helpers (ffprobe returns numbers as strings) ---

func parseInt64(s string) int64 {
	n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return n
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
