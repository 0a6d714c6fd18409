package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/LavanyaSharma232/eduease/internal"
)

// roadmapCmd represents the roadmap command
var roadmapCmd = &cobra.Command{
	Use:   "roadmap [YouTube URL or ID]",
	Short: "Recommend videos to continue learning a topic",
	Long: `Recommend YouTube videos for the next step of a learning path.

The topic comes from the stored study session of the given video, from
--topic, or from the most recent session when neither is given.
Requires YOUTUBE_API_KEY.`,
	Example: `  # Roadmap for a processed video's topic
  eduease roadmap tAP1eZYEuKA

  # Roadmap for an explicit topic at a level
  eduease roadmap --topic "Linear Algebra" --level Advanced

  # Roadmap for the most recent study session
  eduease roadmap`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := internal.ValidateYouTubeAPIKey(config.YouTubeAPIKey); err != nil {
			return err
		}

		app := internal.NewApp(config)

		level, err := internal.HandleLevelFlag(cmd)
		if err != nil {
			return err
		}

		topic, _ := cmd.Flags().GetString("topic")
		if topic == "" {
			topic, level, err = resolveRoadmapTopic(cmd, app, args, level)
			if err != nil {
				return err
			}
		}

		roadmap, err := app.Roadmap(cmd.Context(), topic, level)
		if err != nil {
			return err
		}
		if len(roadmap) == 0 {
			return fmt.Errorf("no recommendations found for %q", topic)
		}

		fmt.Printf("Learning roadmap for %q (%s):\n", topic, level)
		for i, rec := range roadmap {
			fmt.Printf("  %d. %s\n     %s\n", i+1, rec.Title, rec.URL)
		}

		return nil
	},
}

// resolveRoadmapTopic derives topic and level from a stored session
func resolveRoadmapTopic(cmd *cobra.Command, app *internal.App, args []string, level internal.LearningLevel) (string, internal.LearningLevel, error) {
	if len(args) == 1 {
		_, videoID := internal.ParseArg(args[0])
		entry, ok := app.History().Lookup(videoID)
		if !ok {
			return "", level, fmt.Errorf("no stored session for %s, generate notes first or pass --topic", videoID)
		}
		return entry.Topic, entryLevel(cmd, entry, level), nil
	}

	entries, err := app.History().List()
	if err != nil {
		return "", level, err
	}
	if len(entries) == 0 {
		return "", level, fmt.Errorf("no study sessions yet, pass a video or --topic")
	}
	return entries[0].Topic, entryLevel(cmd, entries[0], level), nil
}

// entryLevel prefers an explicit --level flag over the stored session level
func entryLevel(cmd *cobra.Command, entry *internal.HistoryEntry, level internal.LearningLevel) internal.LearningLevel {
	if cmd.Flags().Changed("level") || entry.Level == "" {
		return level
	}
	return entry.Level
}

func init() {
	internal.AddLevelFlag(roadmapCmd)
	roadmapCmd.Flags().String("topic", "", "Topic to recommend videos for (overrides stored session topic)")
	rootCmd.AddCommand(roadmapCmd)
}
