package internal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// App holds the application state and dependencies
type App struct {
	youtube       *YouTube
	audio         *Audio
	ai            *AI
	generator     *Generator
	recommender   *Recommender
	parser        *NotesParser
	history       *History
	promptManager *PromptManager
	config        *Config
	ui            UIManager
}

// NewApp initializes the application
func NewApp(config *Config, options ...AppOption) *App {
	cmdRunner := &DefaultCommandRunner{}

	promptManager := NewPromptManager(config.ConfigDir, config.Prompt)
	audio := NewAudio(cmdRunner, config.TempDir, config.Verbose)

	ui := NewUIManager(config.Verbose, config.Quiet)

	app := &App{
		youtube:       NewYouTube(config.TranscriptsDir, config.Verbose),
		audio:         audio,
		ai:            NewAIWithKey(config.OpenAIAPIKey, audio, config.TTSVoice, WhisperLimit, config.WhisperTimeout, config.Verbose),
		generator:     NewGeneratorWithKey(config.GeminiAPIKey, config.NotesModel, config.NotesTimeout, config.Verbose),
		recommender:   NewRecommender(config.YouTubeAPIKey, config.MaxRoadmap, config.Verbose),
		parser:        NewNotesParser(config.Verbose),
		history:       NewHistory(config.HistoryDir),
		promptManager: promptManager,
		config:        config,
		ui:            ui,
	}

	for _, option := range options {
		option(app)
	}

	return app
}

// AppOption customizes App creation
type AppOption func(*App)

// WithYouTube sets a custom YouTube downloader
func WithYouTube(youtube *YouTube) AppOption {
	return func(a *App) {
		a.youtube = youtube
	}
}

// WithAI sets a custom transcription/speech processor
func WithAI(ai *AI) AppOption {
	return func(a *App) {
		a.ai = ai
	}
}

// WithGenerator sets a custom notes generator
func WithGenerator(generator *Generator) AppOption {
	return func(a *App) {
		a.generator = generator
	}
}

// WithHistory sets a custom history store
func WithHistory(history *History) AppOption {
	return func(a *App) {
		a.history = history
	}
}

// SetPromptManager sets a new prompt manager
func (app *App) SetPromptManager(pm *PromptManager) {
	app.promptManager = pm
}

// History exposes the session history store
func (app *App) History() *History {
	return app.history
}

// DownloadAudio downloads audio from a YouTube URL and returns the file path
func (app *App) DownloadAudio(ctx context.Context, youtubeURL string) (string, error) {
	if err := EnsureDirs(app.config.CacheDir); err != nil {
		return "", fmt.Errorf("creating cache directory: %w", err)
	}

	audioFile, err := app.youtube.Audio(ctx, youtubeURL)
	if err != nil {
		return "", fmt.Errorf("downloading audio: %w", err)
	}

	return audioFile, nil
}

// TranscribeAudio transcribes an audio file and returns the transcript
func (app *App) TranscribeAudio(ctx context.Context, audioFile string) (string, error) {
	return app.ai.Transcribe(ctx, audioFile)
}

// GetTranscript gets transcript from YouTube (cached or downloaded)
func (app *App) GetTranscript(ctx context.Context, youtubeURL string) (string, error) {
	return app.GetTranscriptWithStatus(ctx, youtubeURL, false)
}

// GetTranscriptWithStatus gets transcript with optional status spinner
func (app *App) GetTranscriptWithStatus(ctx context.Context, youtubeURL string, showStatus bool) (string, error) {
	var spinner ProgressBar
	if showStatus {
		spinner = app.ui.NewSpinner("Checking for existing captions...")
	}
	finish := func() {
		if spinner != nil {
			spinner.Finish()
		}
	}

	if err := EnsureDirs(app.config.TranscriptsDir); err != nil {
		finish()
		return "", fmt.Errorf("creating transcripts directory: %w", err)
	}

	_, youtubeID := ParseArg(youtubeURL)
	existingTranscriptPath := filepath.Join(app.config.TranscriptsDir, youtubeID+".txt")

	// Check for cached transcript
	if FileExists(existingTranscriptPath) {
		if spinner != nil {
			spinner.Describe("Found cached transcript")
		}
		finish()
		app.ui.Verbose("Found existing transcript for %s\n", youtubeID)
		text, err := os.ReadFile(existingTranscriptPath)
		if err != nil {
			return "", fmt.Errorf("reading existing transcript: %w", err)
		}
		return string(text), nil
	}

	if spinner != nil {
		spinner.Describe("Checking caption availability...")
		spinner.Advance()
	}

	// Check metadata first to see if captions are available (faster than attempting download)
	metadata, err := app.Metadata(ctx, youtubeURL)
	if err != nil {
		finish()
		return "", fmt.Errorf("checking video metadata: %w", err)
	}

	if !metadata.HasCaptions {
		finish()
		return "", fmt.Errorf("no captions available for %s", youtubeID)
	}

	if spinner != nil {
		spinner.Describe("Fetching YouTube captions...")
		spinner.Advance()
	}
	app.ui.Verbose("Fetching transcript for %s\n", youtubeID)

	transcript, err := app.youtube.FetchTranscript(ctx, youtubeURL)
	if err != nil || transcript == "" {
		// Retry once on plain download failures
		if errors.Is(err, ErrDownloadFailed) {
			if spinner != nil {
				spinner.Describe("Download failed, retrying...")
			}
			time.Sleep(1 * time.Second)
			transcript, err = app.youtube.FetchTranscript(ctx, youtubeURL)
		}

		if err != nil || transcript == "" {
			finish()
			return "", fmt.Errorf("no transcript available for %s", youtubeID)
		}
	}

	if err := SaveTranscript(youtubeID, transcript, app.config.TranscriptsDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	finish()
	return transcript, nil
}

// Metadata gets metadata from YouTube (cached or fresh)
func (app *App) Metadata(ctx context.Context, youtubeURL string) (*VideoMetadata, error) {
	_, youtubeID := ParseArg(youtubeURL)

	if cachedMetadata, err := LoadCachedMetadata(youtubeID, app.config.TranscriptsDir); err == nil {
		app.ui.Verbose("Using cached metadata for %s\n", youtubeID)
		return cachedMetadata, nil
	}

	app.ui.Verbose("Fetching fresh metadata for %s\n", youtubeID)
	metadata, err := app.youtube.Metadata(ctx, youtubeURL)
	if err != nil {
		return nil, err
	}

	if err := EnsureDirs(app.config.TranscriptsDir); err == nil {
		if err := SaveMetadata(youtubeID, metadata, app.config.TranscriptsDir); err != nil {
			app.ui.Verbose("Warning: Failed to cache metadata: %v\n", err)
		}
	}

	return metadata, nil
}

// GenerateDocument creates the structured notes document for a transcript
func (app *App) GenerateDocument(ctx context.Context, youtubeURL, transcript string) (string, error) {
	if transcript == "" {
		return "", fmt.Errorf("transcript is empty")
	}

	metadata, err := app.Metadata(ctx, youtubeURL)
	if err != nil {
		// Notes can still be generated without metadata
		app.ui.Verbose("Failed to extract video metadata: %v\n", err)
		metadata = nil
	}

	prompt, err := app.promptManager.CreatePrompt(transcript, metadata)
	if err != nil {
		return "", fmt.Errorf("creating prompt: %w", err)
	}

	document, err := app.generator.GenerateNotes(ctx, prompt)
	if err != nil {
		return "", err
	}

	return document, nil
}

// StudyOptions controls one notes-generation run
type StudyOptions struct {
	FallbackWhisper bool
	Level           LearningLevel
	WithAudio       bool
	WithRoadmap     bool
}

// StudyNotes runs the complete workflow for one video: transcript -> generated
// document -> parsed bundle -> stored history entry. A video already in
// history is restored from its snapshot instead of being regenerated; the
// second return value reports that case.
func (app *App) StudyNotes(ctx context.Context, youtubeURL string, opts StudyOptions) (*HistoryEntry, bool, error) {
	_, videoID := ParseArg(youtubeURL)

	if entry, ok := app.history.Lookup(videoID); ok {
		app.ui.Verbose("Restoring stored session for %s\n", videoID)
		return entry, true, nil
	}

	if opts.Level == "" {
		opts.Level = LevelBeginner
	}

	showStatus := !app.config.Quiet
	transcript, err := app.GetTranscriptWithStatus(ctx, youtubeURL, showStatus)
	if err != nil {
		if !opts.FallbackWhisper {
			if !AskUser("Do you want to transcribe it using OpenAI's whisper ($$$)?") {
				return nil, false, fmt.Errorf("transcription declined by user")
			}
		}

		transcript, err = app.transcribeVideo(ctx, youtubeURL, showStatus)
		if err != nil {
			return nil, false, err
		}

		if err := SaveTranscript(videoID, transcript, app.config.TranscriptsDir); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	var spinner ProgressBar
	if showStatus {
		spinner = app.ui.NewSpinner("Generating study notes...")
	}

	document, err := app.GenerateDocument(ctx, youtubeURL, transcript)
	if err != nil {
		if spinner != nil {
			spinner.Finish()
		}
		return nil, false, err
	}

	bundle, err := app.parser.Process(document)
	if err != nil {
		if spinner != nil {
			spinner.Finish()
		}
		return nil, false, fmt.Errorf("parsing notes: %w", err)
	}

	if spinner != nil {
		spinner.Describe("Deriving topic...")
		spinner.Advance()
	}

	topic, err := app.generator.ExtractTopic(ctx, bundle.TopicSeed())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: topic extraction failed: %v\n", err)
		topic = FallbackTopic
	}

	entry := &HistoryEntry{
		VideoID:    videoID,
		VideoURL:   youtubeURL,
		Title:      bundle.Title,
		Topic:      topic,
		Level:      opts.Level,
		Document:   document,
		Quiz:       bundle.Quiz,
		Flashcards: bundle.Flashcards,
		CreatedAt:  time.Now(),
	}

	if opts.WithAudio {
		if spinner != nil {
			spinner.Describe("Synthesizing audio summary...")
			spinner.Advance()
		}
		entry.AudioPath = app.audioSummary(ctx, videoID, bundle.Summary)
	}

	if opts.WithRoadmap {
		if spinner != nil {
			spinner.Describe("Building learning roadmap...")
			spinner.Advance()
		}
		roadmap, err := app.recommender.Recommendations(ctx, topic, opts.Level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: roadmap generation failed: %v\n", err)
		} else {
			entry.Roadmap = roadmap
		}
	}

	if spinner != nil {
		spinner.Finish()
	}

	// History is only written after the full pipeline succeeded
	if err := app.history.Append(entry); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	return entry, false, nil
}

// audioSummary synthesizes speech for the summary and stores it next to the
// history entries. Failures are reported but never abort the notes run.
func (app *App) audioSummary(ctx context.Context, videoID, summary string) string {
	if summary == "" {
		app.ui.Verbose("No summary section, skipping audio\n")
		return ""
	}

	audio, err := app.ai.Synthesize(ctx, summary)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: audio summary failed: %v\n", err)
		return ""
	}

	if err := EnsureDirs(app.config.AudioDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: creating audio directory: %v\n", err)
		return ""
	}

	audioPath := filepath.Join(app.config.AudioDir, videoID+".mp3")
	if err := os.WriteFile(audioPath, audio, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: saving audio summary: %v\n", err)
		return ""
	}

	return audioPath
}

// AudioSummary synthesizes and stores the audio summary for a stored session
func (app *App) AudioSummary(ctx context.Context, entry *HistoryEntry) (string, error) {
	bundle, err := app.parser.Process(entry.Document)
	if err != nil {
		return "", err
	}
	if bundle.Summary == "" {
		return "", fmt.Errorf("no summary section in stored notes for %s", entry.VideoID)
	}

	audioPath := app.audioSummary(ctx, entry.VideoID, bundle.Summary)
	if audioPath == "" {
		return "", fmt.Errorf("audio summary failed for %s", entry.VideoID)
	}
	return audioPath, nil
}

// Roadmap fetches video recommendations for a topic at a learning level
func (app *App) Roadmap(ctx context.Context, topic string, level LearningLevel) ([]RecommendationEntry, error) {
	return app.recommender.Recommendations(ctx, topic, level)
}

// ParseNotes re-parses a stored document into a bundle
func (app *App) ParseNotes(document string) (*NotesBundle, error) {
	return app.parser.Process(document)
}

// RenderNotes renders a stored document as readable study notes, with the raw
// quiz and flashcard JSON sections stripped out.
func (app *App) RenderNotes(entry *HistoryEntry) (string, error) {
	bundle, err := app.parser.Process(entry.Document)
	if err != nil {
		return "", err
	}

	rendered, err := RenderMarkdown(bundle.StudyText())
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	return rendered, nil
}

// transcribeVideo handles the download-and-whisper workflow with status output
func (app *App) transcribeVideo(ctx context.Context, youtubeURL string, showStatus bool) (string, error) {
	if !showStatus || app.config.Verbose {
		audioFile, err := app.DownloadAudio(ctx, youtubeURL)
		if err != nil {
			return "", err
		}
		return app.TranscribeAudio(ctx, audioFile)
	}

	spinner := app.ui.NewSpinner("Downloading audio...")

	audioFile, err := app.DownloadAudio(ctx, youtubeURL)
	if err != nil {
		spinner.Finish()
		return "", err
	}
	spinner.Finish()

	bar := app.ui.NewProgressBar(100, "Transcribing with OpenAI Whisper...")
	transcript, err := app.ai.TranscribeWithProgress(ctx, audioFile, bar)
	bar.Finish()
	if err != nil {
		return "", err
	}

	return transcript, nil
}
