package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LavanyaSharma232/eduease/internal"
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored study sessions",
	Example: `  # List all stored study sessions
  eduease history

  # Show the stored notes for one session
  eduease history show tAP1eZYEuKA

  # Delete all stored sessions
  eduease history clear`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := internal.NewApp(config)

		entries, err := app.History().List()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No study sessions yet")
			return nil
		}

		for _, entry := range entries {
			title := entry.Title
			if title == "" {
				title = entry.VideoID
			}
			fmt.Printf("%s  %s  [%s] %s\n", entry.CreatedAt.Format("2006-01-02 15:04"), entry.VideoID, entry.Level, title)
		}
		return nil
	},
}

// historyShowCmd represents the history show subcommand
var historyShowCmd = &cobra.Command{
	Use:   "show [YouTube URL or ID]",
	Short: "Show the stored notes for a session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := internal.NewApp(config)

		_, videoID := internal.ParseArg(args[0])
		entry, ok := app.History().Lookup(videoID)
		if !ok {
			return fmt.Errorf("no stored session for %s", videoID)
		}

		rendered, err := app.RenderNotes(entry)
		if err != nil {
			return err
		}
		fmt.Println(rendered)

		if entry.AudioPath != "" {
			fmt.Printf("Audio summary: %s\n", entry.AudioPath)
		}
		return nil
	},
}

// historyClearCmd represents the history clear subcommand
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored study sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		app := internal.NewApp(config)

		if !internal.AskUser("Delete all stored study sessions?") {
			return nil
		}

		if err := app.History().Clear(); err != nil {
			return err
		}

		if !config.Quiet {
			fmt.Println("History cleared")
		}
		return nil
	},
}

func init() {
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
