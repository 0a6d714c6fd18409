package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/lrstanley/go-ytdlp"
)

// ErrDownloadFailed signals a transient caption download failure worth retrying.
var ErrDownloadFailed = errors.New("caption download failed")

// VideoMetadata contains YouTube video information
type VideoMetadata struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Channel     string         `json:"channel"`
	Uploader    string         `json:"uploader"`
	Duration    float64        `json:"duration"`
	Categories  []string       `json:"categories"`
	Tags        []string       `json:"tags"`
	Chapters    []VideoChapter `json:"chapters"`
	HasCaptions bool           `json:"has_captions"`
}

// VideoChapter represents a video chapter marker
type VideoChapter struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Title     string  `json:"title"`
}

// YouTube handles YouTube video and transcript operations
type YouTube struct {
	transcriptsDir string
	verbose        bool
}

// NewYouTube creates a new YouTube downloader
func NewYouTube(transcriptsDir string, verbose bool) *YouTube {
	return &YouTube{
		transcriptsDir: transcriptsDir,
		verbose:        verbose,
	}
}

func appCacheDir() string {
	return filepath.Join(xdg.CacheHome, "eduease")
}

// Metadata fetches video details using go-ytdlp
func (yt *YouTube) Metadata(ctx context.Context, youtubeURL string) (*VideoMetadata, error) {
	if yt.verbose {
		fmt.Println("Extracting video metadata...")
	}

	dl := ytdlp.New().
		DumpSingleJSON().
		NoPlaylist().
		SkipDownload()

	result, err := dl.Run(ctx, youtubeURL)
	if err != nil {
		if yt.verbose {
			fmt.Printf("Metadata extraction error: %v\n", err)
			fmt.Printf("Stderr: %s\n", result.Stderr)
		}
		return nil, fmt.Errorf("extracting video metadata: %w", err)
	}

	// Raw map first, to pick out subtitle availability
	var rawData map[string]any
	if err := json.Unmarshal([]byte(result.Stdout), &rawData); err != nil {
		return nil, fmt.Errorf("parsing video metadata: %w", err)
	}

	var metadata VideoMetadata
	if err := json.Unmarshal([]byte(result.Stdout), &metadata); err != nil {
		return nil, fmt.Errorf("parsing video metadata: %w", err)
	}

	metadata.HasCaptions = extractSubtitleInfo(rawData)

	if yt.verbose {
		fmt.Printf("Title: %s\n", metadata.Title)
		fmt.Printf("Channel: %s\n", metadata.Channel)
		fmt.Printf("Duration: %.2f seconds\n", metadata.Duration)
	}

	return &metadata, nil
}

// Audio gets mp3 audio from a YouTube video
func (yt *YouTube) Audio(ctx context.Context, youtubeURL string) (string, error) {
	if yt.verbose {
		fmt.Println("Downloading audio...")
	}

	videoID, err := getVideoID(youtubeURL)
	if err != nil {
		return "", fmt.Errorf("extracting video ID: %w", err)
	}

	cacheDir := appCacheDir()
	if err := EnsureDirs(cacheDir); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}

	outputPath := filepath.Join(cacheDir, "%(id)s.%(ext)s")

	dl := ytdlp.New().
		Format("bestaudio").
		ExtractAudio().
		AudioFormat("mp3").
		AudioQuality("10").
		Output(outputPath)

	result, err := dl.Run(ctx, youtubeURL)
	if err != nil {
		return "", fmt.Errorf("yt-dlp failed: %w\nOutput: %s", err, result.Stderr)
	}

	return filepath.Join(cacheDir, videoID+".mp3"), nil
}

// Transcript fetches subtitles using yt-dlp
func (yt *YouTube) Transcript(ctx context.Context, youtubeURL string) error {
	if yt.verbose {
		fmt.Println("Downloading subtitles...")
	}

	videoID, err := getVideoID(youtubeURL)
	if err != nil {
		return fmt.Errorf("failed to extract video ID: %w", err)
	}

	cacheDir := appCacheDir()
	if err := EnsureDirs(cacheDir); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	outputPath := filepath.Join(cacheDir, "%(id)s")

	dl := ytdlp.New().
		WriteSubs().
		WriteAutoSubs().
		SubLangs("en").
		ConvertSubs("srt").
		SkipDownload().
		Output(outputPath)

	result, err := dl.Run(ctx, youtubeURL)
	if err != nil {
		if yt.verbose {
			fmt.Printf("Subtitle download error: %v\n", err)
			fmt.Printf("Stderr: %s\n", result.Stderr)
		}
		return fmt.Errorf("%w: %v", ErrDownloadFailed, err)
	}

	pattern := filepath.Join(cacheDir, fmt.Sprintf("%s*.srt", videoID))
	files, err := filepath.Glob(pattern)
	if err != nil || len(files) == 0 {
		return fmt.Errorf("no subtitle files found after download")
	}

	return nil
}

// FetchTranscript gets a transcript, using cached version if available
func (yt *YouTube) FetchTranscript(ctx context.Context, youtubeURL string) (string, error) {
	youtubeID, err := getVideoID(youtubeURL)
	if err != nil {
		return "", fmt.Errorf("extracting video ID: %w", err)
	}

	transcriptPath, err := yt.findExistingTranscript(youtubeID)
	if err != nil {
		return "", fmt.Errorf("error searching for existing transcript: %w", err)
	}

	if transcriptPath != "" {
		if yt.verbose {
			fmt.Printf("Found existing transcript: %s\n", transcriptPath)
		}
		return yt.processSrtTranscript(transcriptPath)
	}

	if err := yt.Transcript(ctx, youtubeURL); err != nil {
		return "", fmt.Errorf("downloading subtitle: %w", err)
	}

	transcriptPath, err = yt.findExistingTranscript(youtubeID)
	if err != nil || transcriptPath == "" {
		return "", fmt.Errorf("downloaded transcript not found")
	}

	return yt.processSrtTranscript(transcriptPath)
}

// findExistingTranscript locates a previously downloaded transcript
func (yt *YouTube) findExistingTranscript(videoID string) (string, error) {
	for _, dir := range []string{appCacheDir(), yt.transcriptsDir} {
		if !FileExists(dir) {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if strings.HasPrefix(name, videoID) && strings.HasSuffix(name, ".srt") {
				return filepath.Join(dir, name), nil
			}
		}
	}

	return "", nil
}

// processSrtTranscript converts SRT to clean plain text
func (yt *YouTube) processSrtTranscript(filePath string) (string, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("reading SRT file: %w", err)
	}

	lines := removeDuplicates(parseSRT(string(content)))
	text := strings.TrimSpace(strings.Join(lines, "\n"))

	// Extract video ID from filename
	id := strings.Split(filepath.Base(filePath), ".")[0]

	if err := SaveTranscript(id, text, yt.transcriptsDir); err != nil {
		return "", err
	}

	// Remove the raw SRT from the cache once processed
	if strings.HasPrefix(filePath, appCacheDir()) && FileExists(filePath) {
		if err := os.Remove(filePath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to remove SRT file from cache: %v\n", err)
		}
	}

	return text, nil
}

// parseSRT extracts text content from SRT format
func parseSRT(content string) []string {
	var lines []string

	for block := range strings.SplitSeq(content, "\n\n") {
		blockLines := strings.Split(block, "\n")
		if len(blockLines) >= 3 {
			// Skip sequence number and timestamp, get text lines
			for i := 2; i < len(blockLines); i++ {
				if strings.TrimSpace(blockLines[i]) != "" {
					lines = append(lines, strings.TrimSpace(blockLines[i]))
				}
			}
		}
	}

	return lines
}

// removeDuplicates eliminates consecutive repeated lines
func removeDuplicates(lines []string) []string {
	result := make([]string, 0, len(lines))
	prevLine := ""

	for _, line := range lines {
		isDuplicate := prevLine != "" && (strings.Contains(line, prevLine) || strings.Contains(prevLine, line))
		if !isDuplicate {
			result = append(result, line)
		}
		prevLine = line
	}

	return result
}

// extractSubtitleInfo extracts subtitle availability from yt-dlp JSON output
func extractSubtitleInfo(rawData map[string]any) bool {
	if subtitles, ok := rawData["subtitles"].(map[string]any); ok && len(subtitles) > 0 {
		return true
	}
	if autoCaptions, ok := rawData["automatic_captions"].(map[string]any); ok && len(autoCaptions) > 0 {
		return true
	}
	return false
}

// CachedVideoMetadata extends VideoMetadata with cache information
type CachedVideoMetadata struct {
	VideoMetadata
	CachedAt time.Time `json:"cached_at"`
}

// SaveMetadata saves video metadata to cache as JSON
func SaveMetadata(youtubeID string, metadata *VideoMetadata, transcriptsDir string) error {
	cached := CachedVideoMetadata{
		VideoMetadata: *metadata,
		CachedAt:      time.Now(),
	}

	metadataPath := filepath.Join(transcriptsDir, youtubeID+".meta.json")
	data, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}

	if err := os.WriteFile(metadataPath, data, 0644); err != nil {
		return fmt.Errorf("saving metadata: %w", err)
	}

	return nil
}

// LoadCachedMetadata loads video metadata from cache
func LoadCachedMetadata(youtubeID, transcriptsDir string) (*VideoMetadata, error) {
	metadataPath := filepath.Join(transcriptsDir, youtubeID+".meta.json")

	if !FileExists(metadataPath) {
		return nil, fmt.Errorf("metadata cache not found")
	}

	data, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata cache: %w", err)
	}

	var cached CachedVideoMetadata
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, fmt.Errorf("parsing metadata cache: %w", err)
	}

	metadata := cached.VideoMetadata
	return &metadata, nil
}
