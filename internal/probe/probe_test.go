package probe

import "testing"

const sampleJSON = `{
  "streams": [
    {"index": 0, "codec_name": "h264", "codec_type": "video", "width": 1080, "height": 1920},
    {"index": 1, "codec_name": "aac", "codec_type": "audio"}
  ],
  "format": {"duration": "4.005000", "size": "1048576"}
}`

const audioOnlyJSON = `{
  "streams": [
    {"index": 0, "codec_name": "aac", "codec_type": "audio"}
  ],
  "format": {"duration": "4.0", "size": "32768"}
}`

func TestParseJSON(t *testing.T) {
	res, err := ParseJSON([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	if len(res.Streams) != 2 {
		t.Fatalf("streams = %d, want 2", len(res.Streams))
	}
	v := res.Streams[0]
	if v.Type != "video" || v.Codec != "h264" || v.Width != 1080 || v.Height != 1920 {
		t.Errorf("video stream = %+v", v)
	}
	if res.Duration < 4.0 || res.Duration > 4.01 {
		t.Errorf("Duration = %v", res.Duration)
	}
	if res.Size != 1048576 {
		t.Errorf("Size = %d", res.Size)
	}
}

func TestHasVideo(t *testing.T) {
	withVideo, err := ParseJSON([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if !withVideo.HasVideo() {
		t.Error("HasVideo = false for sample with video stream")
	}

	audioOnly, err := ParseJSON([]byte(audioOnlyJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if audioOnly.HasVideo() {
		t.Error("HasVideo = true for audio-only sample")
	}
}

func TestParseJSONInvalid(t *testing.T) {
	if _, err := ParseJSON([]byte("{not json")); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestParseJSONEmpty(t *testing.T) {
	res, err := ParseJSON([]byte("{}"))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if res.HasVideo() {
		t.Error("HasVideo = true for empty result")
	}
}
