package naming

import (
	"strings"
	"testing"
	"time"
)

func TestSanitize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"alice", "alice"},
		{"  alice  ", "alice"},
		{"my clip name", "my_clip_name"},
		{"a/b\\c", "a_b_c"},
		{"héllo wörld", "hllo_wrld"},
		{"bad*chars?here", "badcharshere"},
		{"dots.and-dashes_ok", "dots.and-dashes_ok"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Sanitize(tc.in); got != tc.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestSanitizeTruncates(t *testing.T) {
	long := strings.Repeat("a", 64)
	got := Sanitize(long)
	if len(got) != 30 {
		t.Errorf("len = %d, want 30", len(got))
	}
}

func TestSegmentName(t *testing.T) {
	if got := SegmentName("product", 1); got != "product_clip01.mp4" {
		t.Errorf("got %q", got)
	}
	if got := SegmentName("selfie", 30); got != "selfie_clip30.mp4" {
		t.Errorf("got %q", got)
	}
}

func TestFinalClipName(t *testing.T) {
	if got := FinalClipName(5); got != "final_clip05.mp4" {
		t.Errorf("got %q", got)
	}
}

func TestPairDirName(t *testing.T) {
	if got := PairDirName(1, "alice", "alice"); got != "01_alice_alice" {
		t.Errorf("got %q", got)
	}
	if got := PairDirName(12, "a b", "c/d"); got != "12_a_b_c_d" {
		t.Errorf("got %q", got)
	}
}

func TestTimestampVariant(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	got := TimestampVariant("/done/alice.mp4", now)
	want := "/done/alice_20240501T120000.mp4"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
