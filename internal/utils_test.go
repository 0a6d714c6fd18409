package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseArg(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		wantURL string
		wantID  string
	}{
		{
			name:    "bare video ID",
			arg:     "tAP1eZYEuKA",
			wantURL: "https://www.youtube.com/watch?v=tAP1eZYEuKA",
			wantID:  "tAP1eZYEuKA",
		},
		{
			name:    "watch URL",
			arg:     "https://www.youtube.com/watch?v=tAP1eZYEuKA",
			wantURL: "https://www.youtube.com/watch?v=tAP1eZYEuKA",
			wantID:  "tAP1eZYEuKA",
		},
		{
			name:    "short URL",
			arg:     "https://youtu.be/tAP1eZYEuKA",
			wantURL: "https://youtu.be/tAP1eZYEuKA",
			wantID:  "tAP1eZYEuKA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotURL, gotID := ParseArg(tt.arg)
			if gotURL != tt.wantURL {
				t.Errorf("ParseArg(%q) url = %q, want %q", tt.arg, gotURL, tt.wantURL)
			}
			if gotID != tt.wantID {
				t.Errorf("ParseArg(%q) id = %q, want %q", tt.arg, gotID, tt.wantID)
			}
		})
	}
}

func TestIsValidYouTubeID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"tAP1eZYEuKA", true},
		{"abc-_123XYZ", true},
		{"tooshort", false},
		{"muchtoolongforanid", false},
		{"bad!chars@@", false},
	}

	for _, tt := range tests {
		if got := IsValidYouTubeID(tt.id); got != tt.want {
			t.Errorf("IsValidYouTubeID(%q) = %t, want %t", tt.id, got, tt.want)
		}
	}
}

func TestIsLikelyCommand(t *testing.T) {
	tests := []struct {
		arg  string
		want bool
	}{
		{"quiz", true},
		{"histroy", true},
		{"tAP1eZYEuKA", false},
		{"https://www.youtube.com/watch?v=tAP1eZYEuKA", false},
	}

	for _, tt := range tests {
		if got := IsLikelyCommand(tt.arg); got != tt.want {
			t.Errorf("IsLikelyCommand(%q) = %t, want %t", tt.arg, got, tt.want)
		}
	}
}

func TestValidateNotesModel(t *testing.T) {
	if err := ValidateNotesModel("gemini-2.5-flash"); err != nil {
		t.Errorf("ValidateNotesModel(gemini-2.5-flash) error = %v", err)
	}
	if err := ValidateNotesModel("gpt-4o"); err == nil {
		t.Error("ValidateNotesModel(gpt-4o) expected error")
	}
}

func TestSaveTranscriptRoundTrip(t *testing.T) {
	dir := t.TempDir()

	if err := SaveTranscript("tAP1eZYEuKA", "hello transcript", dir); err != nil {
		t.Fatalf("SaveTranscript() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tAP1eZYEuKA.txt"))
	if err != nil {
		t.Fatalf("reading saved transcript: %v", err)
	}
	if string(data) != "hello transcript" {
		t.Errorf("saved transcript = %q", data)
	}
}

func TestEnsureDirs(t *testing.T) {
	base := t.TempDir()
	first := filepath.Join(base, "a", "b")
	second := filepath.Join(base, "c")

	if err := EnsureDirs(first, second); err != nil {
		t.Fatalf("EnsureDirs() error = %v", err)
	}

	for _, dir := range []string{first, second} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("directory %s was not created", dir)
		}
	}
}

func TestCleanupTempDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "tmp")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "chunk.mp3"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := CleanupTempDir(dir); err != nil {
		t.Fatalf("CleanupTempDir() error = %v", err)
	}
	if FileExists(filepath.Join(dir, "chunk.mp3")) {
		t.Error("temp file was not removed")
	}

	// Cleaning a missing directory is a no-op
	if err := CleanupTempDir(filepath.Join(dir, "missing")); err != nil {
		t.Errorf("CleanupTempDir(missing) error = %v", err)
	}
}
