// Package naming builds the deterministic file and directory names used by
// the pipeline: sanitized identity names, segment and final clip filenames,
// per-pair output directories, and collision-safe variants for the completed
// area.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// ClipExt is the fixed container extension for segment and merge outputs.
const ClipExt = "mp4"

// Sanitize converts an identity token into a path-safe name: whitespace and
// path separators become underscores, anything outside [A-Za-z0-9._-] is
// stripped, and the result is truncated to 30 bytes.
func Sanitize(name string) string {
	name = strings.TrimSpace(name)

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r == '/' || r == '\\' || r == ' ' || r == '\t':
			b.WriteByte('_')
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		}
	}

	s := b.String()
	if len(s) > 30 {
		s = s[:30]
	}
	return s
}

// SegmentName returns the filename of segment i (1-based) for a prefix,
// e.g. "product_clip07.mp4".
func SegmentName(prefix string, i int) string {
	return fmt.Sprintf("%s_clip%02d.%s", prefix, i, ClipExt)
}

// FinalClipName returns the committed merge output filename for index i
// (1-based), e.g. "final_clip07.mp4".
func FinalClipName(i int) string {
	return fmt.Sprintf("final_clip%02d.%s", i, ClipExt)
}

// PairDirName returns the per-pair output directory name, ordered by pair
// index: "<NN>_<sanitizedA>_<sanitizedB>".
func PairDirName(index int, nameA, nameB string) string {
	return fmt.Sprintf("%02d_%s_%s", index, Sanitize(nameA), Sanitize(nameB))
}

// TimestampVariant returns path with a timestamp suffix inserted before the
// extension, used when a completed file with the same name already exists.
// "alice.mp4" becomes "alice_20240501T120000.mp4".
func TimestampVariant(path string, now time.Time) string {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	return filepath.Join(dir, fmt.Sprintf("%s_%s%s", stem, now.Format("20060102T150405"), ext))
}
