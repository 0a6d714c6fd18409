package internal

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleSRT = `1
00:00:00,000 --> 00:00:02,500
Welcome to the lecture.

2
00:00:02,500 --> 00:00:05,000
Welcome to the lecture.
Today we cover routing.

3
00:00:05,000 --> 00:00:08,000
Today we cover routing.

4
00:00:08,000 --> 00:00:11,000
Routers forward packets.
`

func TestParseSRT(t *testing.T) {
	lines := parseSRT(sampleSRT)

	want := []string{
		"Welcome to the lecture.",
		"Welcome to the lecture.",
		"Today we cover routing.",
		"Today we cover routing.",
		"Routers forward packets.",
	}
	if len(lines) != len(want) {
		t.Fatalf("parseSRT() returned %d lines, want %d: %v", len(lines), len(want), lines)
	}
	for i, line := range want {
		if lines[i] != line {
			t.Errorf("lines[%d] = %q, want %q", i, lines[i], line)
		}
	}
}

func TestParseSRTSkipsTimestamps(t *testing.T) {
	for _, line := range parseSRT(sampleSRT) {
		if line == "1" || line == "00:00:00,000 --> 00:00:02,500" {
			t.Errorf("sequence or timestamp line leaked into output: %q", line)
		}
	}
}

func TestRemoveDuplicates(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "consecutive repeats collapse",
			lines: []string{"a b c", "a b c", "d e f"},
			want:  []string{"a b c", "d e f"},
		},
		{
			name:  "overlapping rollup lines collapse",
			lines: []string{"Welcome to", "Welcome to the lecture"},
			want:  []string{"Welcome to"},
		},
		{
			name:  "non-adjacent repeats survive",
			lines: []string{"a", "b", "a"},
			want:  []string{"a", "b", "a"},
		},
		{
			name:  "empty input",
			lines: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := removeDuplicates(tt.lines)
			if len(got) != len(tt.want) {
				t.Fatalf("removeDuplicates(%v) = %v, want %v", tt.lines, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("result[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestProcessSrtTranscript(t *testing.T) {
	transcriptsDir := t.TempDir()
	yt := NewYouTube(transcriptsDir, false)

	srtDir := t.TempDir()
	srtPath := filepath.Join(srtDir, "tAP1eZYEuKA.en.srt")
	if err := os.WriteFile(srtPath, []byte(sampleSRT), 0644); err != nil {
		t.Fatal(err)
	}

	text, err := yt.processSrtTranscript(srtPath)
	if err != nil {
		t.Fatalf("processSrtTranscript() error = %v", err)
	}

	want := "Welcome to the lecture.\nToday we cover routing.\nRouters forward packets."
	if text != want {
		t.Errorf("processSrtTranscript() = %q, want %q", text, want)
	}

	// The cleaned transcript is cached under the video ID
	saved, err := os.ReadFile(filepath.Join(transcriptsDir, "tAP1eZYEuKA.txt"))
	if err != nil {
		t.Fatalf("reading cached transcript: %v", err)
	}
	if string(saved) != want {
		t.Errorf("cached transcript = %q", saved)
	}
}

func TestExtractSubtitleInfo(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want bool
	}{
		{
			name: "manual subtitles",
			raw:  map[string]any{"subtitles": map[string]any{"en": []any{}}},
			want: true,
		},
		{
			name: "automatic captions only",
			raw:  map[string]any{"automatic_captions": map[string]any{"en": []any{}}},
			want: true,
		},
		{
			name: "no captions",
			raw:  map[string]any{"subtitles": map[string]any{}},
			want: false,
		},
		{
			name: "missing keys",
			raw:  map[string]any{},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractSubtitleInfo(tt.raw); got != tt.want {
				t.Errorf("extractSubtitleInfo() = %t, want %t", got, tt.want)
			}
		})
	}
}

func TestMetadataCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()

	metadata := &VideoMetadata{
		Title:       "Intro to Networking",
		Channel:     "EduChannel",
		Duration:    600,
		HasCaptions: true,
	}

	if err := SaveMetadata("tAP1eZYEuKA", metadata, dir); err != nil {
		t.Fatalf("SaveMetadata() error = %v", err)
	}

	got, err := LoadCachedMetadata("tAP1eZYEuKA", dir)
	if err != nil {
		t.Fatalf("LoadCachedMetadata() error = %v", err)
	}
	if got.Title != metadata.Title || got.Channel != metadata.Channel {
		t.Errorf("cached metadata = %+v", got)
	}
	if !got.HasCaptions {
		t.Error("HasCaptions not preserved")
	}

	if _, err := LoadCachedMetadata("missingvideo", dir); err == nil {
		t.Error("expected error for missing cache entry")
	}
}
