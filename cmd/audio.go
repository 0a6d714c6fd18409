package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LavanyaSharma232/eduease/internal"
)

// audioCmd represents the audio command
var audioCmd = &cobra.Command{
	Use:   "audio [YouTube URL or ID]",
	Short: "Synthesize an audio version of a video's summary",
	Long: `Synthesize the summary of a video's study notes as speech using
OpenAI's text-to-speech API (costs money). Requires OPENAI_API_KEY.`,
	Example: `  # Generate the audio summary for a processed video
  eduease audio tAP1eZYEuKA

  # Save it to a specific file
  eduease audio tAP1eZYEuKA -o summary.mp3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ValidateOpenAIAPIKey(config.OpenAIAPIKey); err != nil {
			return err
		}

		app := internal.NewApp(config)

		entry, err := fetchSession(cmd, app, args[0])
		if err != nil {
			return err
		}

		// Reuse the audio generated during the notes run when it exists
		audioPath := entry.AudioPath
		if audioPath == "" || !internal.FileExists(audioPath) {
			audioPath, err = app.AudioSummary(cmd.Context(), entry)
			if err != nil {
				return err
			}
		}

		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			data, err := os.ReadFile(audioPath)
			if err != nil {
				return fmt.Errorf("reading audio summary: %w", err)
			}
			if err := os.WriteFile(outputFile, data, 0644); err != nil {
				return fmt.Errorf("writing audio summary: %w", err)
			}
			audioPath = outputFile
		}

		if !config.Quiet {
			fmt.Printf("Audio summary: %s\n", audioPath)
		}
		return nil
	},
}

func init() {
	internal.AddTranscriptionFlags(audioCmd)
	internal.AddLevelFlag(audioCmd)
	audioCmd.Flags().StringP("output", "o", "", "Output file path (default: stored next to history entries)")
	rootCmd.AddCommand(audioCmd)
}
