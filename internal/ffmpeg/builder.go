package ffmpeg

import (
	"fmt"
	"strconv"

	"github.com/backmassage/clipweave/internal/config"
)

// SegmentArgs builds the ffmpeg argument slice for extracting one
// fixed-duration segment. The seek happens before the input open (input
// seeking) so extraction cost does not grow with the start offset.
func SegmentArgs(src, dst string, startSec, durSec int, video config.Video) []string {
	return []string{
		"ffmpeg", "-hide_banner", "-nostdin", "-y",
		"-loglevel", "error",
		"-ss", strconv.Itoa(startSec),
		"-t", strconv.Itoa(durSec),
		"-i", src,
		"-c:v", video.Codec,
		"-crf", strconv.Itoa(video.CRF),
		"-preset", video.Preset,
		"-c:a", "aac",
		"-f", "mp4",
		dst,
	}
}

// ConcatArgs builds the ffmpeg argument slice for the composite output:
// both inputs scaled into the canonical frame, letterboxed, and concatenated
// into a single video-only stream.
func ConcatArgs(inputA, inputB, dst string, frame config.Frame, video config.Video) []string {
	return []string{
		"ffmpeg", "-hide_banner", "-nostdin", "-y",
		"-loglevel", "error",
		"-i", inputA,
		"-i", inputB,
		"-filter_complex", ConcatFilter(frame),
		"-map", "[v]",
		"-an",
		"-c:v", video.Codec,
		"-crf", strconv.Itoa(video.CRF),
		"-preset", video.Preset,
		"-movflags", "+faststart",
		"-f", "mp4",
		dst,
	}
}

// ConcatFilter renders the scale/pad/concat filter graph for the canonical
// frame. Aspect ratio is preserved by the scale step; pad centers the image.
func ConcatFilter(frame config.Frame) string {
	w, h := frame.Width, frame.Height
	chain := func(in, out string) string {
		return fmt.Sprintf(
			"[%s]scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2,setsar=1[%s]",
			in, w, h, w, h, out)
	}
	return chain("0:v", "v0") + ";" + chain("1:v", "v1") + ";[v0][v1]concat=n=2:v=1:a=0[v]"
}
