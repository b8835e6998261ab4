package identity

import "testing"

func TestExtract(t *testing.T) {
	cases := []struct {
		name     string
		identity string
		orderKey string
	}{
		{"2024-05-01 - alice.mp4", "alice", "2024-05-01"},
		{"2024-05-01 - alice.MP4", "alice", "2024-05-01"},
		{"001 - bob.mov", "bob", "001"},
		{"a-b-c - dave.mkv", "dave", "a-b-c"},
		// No dash separator: schema does not match.
		{"alice.mp4", "", ""},
		// Unsupported extension.
		{"2024-05-01 - alice.mp3", "", ""},
		{"2024-05-01 - alice", "", ""},
		// Empty identity after the dash is valid (degenerate group).
		{"2024-05-01 - .mp4", "", "2024-05-01"},
		// Extra whitespace is trimmed on both sides.
		{"  2024-05-01  -   carol  .wmv", "carol", "2024-05-01"},
	}

	for _, tc := range cases {
		if got := Extract(tc.name); got != tc.identity {
			t.Errorf("Extract(%q) = %q, want %q", tc.name, got, tc.identity)
		}
		if got := OrderKey(tc.name); got != tc.orderKey {
			t.Errorf("OrderKey(%q) = %q, want %q", tc.name, got, tc.orderKey)
		}
	}
}

func TestExtractUsesBasenameOnly(t *testing.T) {
	if got := Extract("/in-put/product/2024-05-01 - alice.mp4"); got != "alice" {
		t.Errorf("got %q, want alice", got)
	}
	if got := OrderKey("/in-put/product/2024-05-01 - alice.mp4"); got != "2024-05-01" {
		t.Errorf("got %q, want 2024-05-01", got)
	}
}

func TestHasSupportedExt(t *testing.T) {
	cases := []struct {
		name string
		want bool
	}{
		{"a.mp4", true},
		{"a.MP4", true},
		{"a.Ts", true},
		{"a.avi", true},
		{"a.webm", false},
		{"a", false},
		{"a.mp3", false},
	}
	for _, tc := range cases {
		if got := HasSupportedExt(tc.name); got != tc.want {
			t.Errorf("HasSupportedExt(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}
