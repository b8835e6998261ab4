// Package identity derives grouping and ordering keys from media filenames.
//
// The expected schema is "<order-prefix> - <identity>.<ext>": the identity is
// the trailing run of non-dash characters before the extension, the order
// prefix is everything in front of it. Files that do not follow the schema
// degrade to an empty identity rather than an error, so a whole collection of
// non-conforming names still forms one (degenerate) group.
package identity

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Extensions is the supported media extension set (lowercase, with leading
// dot). Matching is case-insensitive everywhere it is consulted.
var Extensions = map[string]bool{
	".mp4": true,
	".avi": true,
	".mov": true,
	".mkv": true,
	".wmv": true,
	".ts":  true,
}

// schemaRE captures "<prefix>-<identity>.<ext>". The prefix match is greedy,
// so the identity is always the run after the last dash. Surrounding
// whitespace is trimmed afterwards.
var schemaRE = regexp.MustCompile(`(?i)^(.*)-([^-]*)\.(mp4|avi|mov|mkv|wmv|ts)$`)

// HasSupportedExt reports whether name carries one of the supported media
// extensions, compared case-insensitively.
func HasSupportedExt(name string) bool {
	return Extensions[strings.ToLower(filepath.Ext(name))]
}

// Extract returns the identity token of a filename, or "" when the name does
// not follow the schema. It is a pure function of its argument.
func Extract(filename string) string {
	m := schemaRE.FindStringSubmatch(filepath.Base(filename))
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[2])
}

// OrderKey returns the ordering prefix of a filename (everything before the
// identity token), or "" when the name does not follow the schema.
func OrderKey(filename string) string {
	m := schemaRE.FindStringSubmatch(filepath.Base(filename))
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
