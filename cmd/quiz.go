package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/LavanyaSharma232/eduease/internal"
)

// quizCmd represents the quiz command
var quizCmd = &cobra.Command{
	Use:   "quiz [YouTube URL or ID]",
	Short: "Take the MCQ quiz for a video",
	Long: `Take the multiple-choice quiz generated from a video's study notes.

Answer by entering the option number. Enter 'h' for a hint when one is
available, or 's' to skip a question. Questions whose correct answer
cannot be matched against any option are left out of scoring.`,
	Example: `  # Take the quiz for a video (notes are generated on first run)
  eduease quiz "https://www.youtube.com/watch?v=tAP1eZYEuKA"
  eduease quiz tAP1eZYEuKA

  # Print the quiz as JSON instead of playing it
  eduease quiz tAP1eZYEuKA --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := internal.NewApp(config)

		entry, err := fetchSession(cmd, app, args[0])
		if err != nil {
			return err
		}

		if len(entry.Quiz) == 0 {
			return fmt.Errorf("no quiz questions were generated for %s", entry.VideoID)
		}

		asJSON, _ := cmd.Flags().GetBool("json")
		if asJSON {
			data, err := json.MarshalIndent(entry.Quiz, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding quiz: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		return runQuiz(entry)
	},
}

// runQuiz plays the quiz interactively on stdin/stdout
func runQuiz(entry *internal.HistoryEntry) error {
	questions := entry.AnswerableQuiz()
	if len(questions) == 0 {
		return fmt.Errorf("none of the generated questions have a matchable correct answer")
	}

	if entry.Title != "" {
		fmt.Printf("Quiz: %s\n", entry.Title)
	}
	fmt.Printf("%d questions. Enter the option number, 'h' for a hint, 's' to skip.\n", len(questions))

	reader := bufio.NewReader(os.Stdin)
	score := 0

	for i, question := range questions {
		fmt.Printf("\nQ%d: %s\n", i+1, question.Question)
		for j, option := range question.Options {
			fmt.Printf("  %d. %s\n", j+1, option)
		}

		correctIdx, _ := question.CorrectIndex()
		answered := false
		for !answered {
			fmt.Print("> ")
			line, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading answer: %w", err)
			}
			input := strings.ToLower(strings.TrimSpace(line))

			switch {
			case input == "h":
				if question.Hint != "" {
					fmt.Printf("Hint: %s\n", question.Hint)
				} else {
					fmt.Println("No hint for this question")
				}
			case input == "s":
				fmt.Printf("Skipped. The answer was: %s\n", question.Options[correctIdx])
				answered = true
			default:
				choice, err := strconv.Atoi(input)
				if err != nil || choice < 1 || choice > len(question.Options) {
					fmt.Printf("Enter a number between 1 and %d\n", len(question.Options))
					continue
				}
				if choice-1 == correctIdx {
					fmt.Println("Correct!")
					score++
				} else {
					fmt.Printf("Incorrect. The answer was: %s\n", question.Options[correctIdx])
				}
				answered = true
			}
		}
	}

	fmt.Printf("\nScore: %d/%d\n", score, len(questions))
	return nil
}

func init() {
	internal.AddTranscriptionFlags(quizCmd)
	internal.AddLevelFlag(quizCmd)
	quizCmd.Flags().Bool("json", false, "Print the quiz as JSON instead of playing it")
	rootCmd.AddCommand(quizCmd)
}
