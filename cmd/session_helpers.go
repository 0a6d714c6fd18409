package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LavanyaSharma232/eduease/internal"
)

// fetchSession resolves the stored study session for the given argument,
// generating notes first when the video has not been processed yet.
func fetchSession(cmd *cobra.Command, app *internal.App, arg string) (*internal.HistoryEntry, error) {
	if internal.IsLikelyCommand(arg) {
		return nil, fmt.Errorf("'%s' doesn't look like a YouTube URL or video ID", arg)
	}

	level, err := internal.HandleLevelFlag(cmd)
	if err != nil {
		return nil, err
	}

	fallbackWhisper, _ := cmd.Flags().GetBool("fallback-whisper")
	youtubeURL, _ := internal.ParseArg(arg)

	entry, _, err := app.StudyNotes(cmd.Context(), youtubeURL, internal.StudyOptions{
		FallbackWhisper: fallbackWhisper,
		Level:           level,
	})
	return entry, err
}

// fetchTranscript retrieves a transcript for the given argument and optionally falls back to Whisper.
func fetchTranscript(cmd *cobra.Command, app *internal.App, arg string) (string, error) {
	youtubeURL, _ := internal.ParseArg(arg)

	transcript, err := app.GetTranscript(cmd.Context(), youtubeURL)
	if err == nil {
		return transcript, nil
	}

	fallbackWhisper, _ := cmd.Flags().GetBool("fallback-whisper")
	if !fallbackWhisper {
		return "", err
	}

	audioFile, audioErr := app.DownloadAudio(cmd.Context(), youtubeURL)
	if audioErr != nil {
		return "", audioErr
	}

	transcript, whisperErr := app.TranscribeAudio(cmd.Context(), audioFile)
	if whisperErr != nil {
		return "", whisperErr
	}

	_, youtubeID := internal.ParseArg(youtubeURL)
	if saveErr := internal.SaveTranscript(youtubeID, transcript, config.TranscriptsDir); saveErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", saveErr)
	}

	return transcript, nil
}
