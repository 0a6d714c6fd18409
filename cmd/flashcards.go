package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LavanyaSharma232/eduease/internal"
)

// flashcardsCmd represents the flashcards command
var flashcardsCmd = &cobra.Command{
	Use:   "flashcards [YouTube URL or ID]",
	Short: "Review the flashcards for a video",
	Example: `  # Flip through the flashcards for a video
  eduease flashcards "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  eduease flashcards tAP1eZYEuKA

  # Print the flashcards as JSON
  eduease flashcards tAP1eZYEuKA --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := internal.NewApp(config)

		entry, err := fetchSession(cmd, app, args[0])
		if err != nil {
			return err
		}

		if len(entry.Flashcards) == 0 {
			return fmt.Errorf("no flashcards were generated for %s", entry.VideoID)
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			data, err := json.MarshalIndent(entry.Flashcards, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding flashcards: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		if entry.Title != "" {
			fmt.Printf("Flashcards: %s\n", entry.Title)
		}
		fmt.Printf("%d cards. Press Enter to reveal each answer.\n", len(entry.Flashcards))

		reader := bufio.NewReader(os.Stdin)
		for i, card := range entry.Flashcards {
			fmt.Printf("\nCard %d/%d: %s\n", i+1, len(entry.Flashcards), card.Question)
			if _, err := reader.ReadString('\n'); err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			fmt.Printf("Answer: %s\n", card.Answer)
		}

		return nil
	},
}

func init() {
	internal.AddTranscriptionFlags(flashcardsCmd)
	internal.AddLevelFlag(flashcardsCmd)
	flashcardsCmd.Flags().Bool("json", false, "Print the flashcards as JSON")
	rootCmd.AddCommand(flashcardsCmd)
}
