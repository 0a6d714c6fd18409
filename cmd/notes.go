package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LavanyaSharma232/eduease/internal"
)

// notesCmd represents the notes command
var notesCmd = &cobra.Command{
	Use:   "notes [YouTube URL or ID]",
	Short: "Generate structured study notes from a YouTube video",
	Example: `  # Generate study notes from a YouTube video
  eduease notes "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  eduease notes tAP1eZYEuKA

  # Use specific Gemini model
  eduease notes tAP1eZYEuKA --model gemini-2.5-pro

  # Use custom prompt
  eduease notes tAP1eZYEuKA --prompt "study notes: {{.Transcript}}"

  # Save the raw notes document to a file
  eduease notes tAP1eZYEuKA -o notes.md

  # Fallback to Whisper if no captions (costs money)
  eduease notes tAP1eZYEuKA --fallback-whisper`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ValidateGenerationRequirements(cmd, config); err != nil {
			return err
		}

		app := internal.NewApp(config)

		if err := internal.HandlePromptFlag(cmd, app); err != nil {
			return err
		}

		level, err := internal.HandleLevelFlag(cmd)
		if err != nil {
			return err
		}

		fallbackWhisper, _ := cmd.Flags().GetBool("fallback-whisper")
		youtubeURL, _ := internal.ParseArg(args[0])

		entry, _, err := app.StudyNotes(cmd.Context(), youtubeURL, internal.StudyOptions{
			FallbackWhisper: fallbackWhisper,
			Level:           level,
		})
		if err != nil {
			return err
		}

		// Handle output flag
		outputFile, _ := cmd.Flags().GetString("output")
		if outputFile != "" {
			return os.WriteFile(outputFile, []byte(entry.Document), 0644)
		}

		rendered, err := app.RenderNotes(entry)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
		return nil
	},
}

func init() {
	internal.AddTranscriptionFlags(notesCmd)
	internal.AddGenerationFlags(notesCmd)
	internal.AddLevelFlag(notesCmd)
	notesCmd.Flags().StringP("output", "o", "", "Output file path for the raw notes document (default: stdout, rendered)")
	rootCmd.AddCommand(notesCmd)
}
