package internal

import (
	"fmt"

	"github.com/spf13/cobra"
)

// AddTranscriptionFlags adds flags related to transcription functionality
func AddTranscriptionFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("fallback-whisper", false, "Fallback to Whisper if no captions available (costs money)")
}

// AddGenerationFlags adds flags related to notes generation
func AddGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("model", "m", "", "Gemini model to use for notes generation")
	cmd.Flags().StringP("prompt", "p", "", "Custom notes prompt (string or file path)")
}

// AddLevelFlag adds the learning level flag for roadmap generation
func AddLevelFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("level", "l", string(LevelBeginner), "Learning level (Beginner, Intermediate, Advanced)")
}

// HandlePromptFlag processes the --prompt flag to set custom prompt
func HandlePromptFlag(cmd *cobra.Command, app *App) error {
	promptFlag := cmd.Flags().Lookup("prompt")
	if promptFlag == nil || !promptFlag.Changed {
		return nil
	}

	prompt, err := cmd.Flags().GetString("prompt")
	if err != nil {
		return fmt.Errorf("failed to get prompt flag: %w", err)
	}

	if prompt == "" {
		return nil
	}

	app.SetPromptManager(NewPromptManager(app.config.ConfigDir, prompt))

	if app.config.Verbose {
		if IsLikelyFilePath(prompt) && FileExists(prompt) {
			fmt.Printf("Using custom prompt file: %s\n", prompt)
		} else {
			fmt.Printf("Using custom prompt string\n")
		}
	}

	return nil
}

// HandleLevelFlag parses the --level flag into a LearningLevel
func HandleLevelFlag(cmd *cobra.Command) (LearningLevel, error) {
	raw, err := cmd.Flags().GetString("level")
	if err != nil {
		return "", fmt.Errorf("failed to get level flag: %w", err)
	}
	return ParseLearningLevel(raw)
}

// HandleVerboseFlag processes the --verbose flag to update config
func HandleVerboseFlag(cmd *cobra.Command, config *Config) error {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	config.Verbose = verbose
	return nil
}

// ValidateGenerationRequirements validates the Gemini API key and model from command flags and config
func ValidateGenerationRequirements(cmd *cobra.Command, config *Config) error {
	if err := ValidateGeminiAPIKey(config.GeminiAPIKey); err != nil {
		return err
	}

	modelFlag, _ := cmd.Flags().GetString("model")
	if modelFlag != "" {
		if err := ValidateNotesModel(modelFlag); err != nil {
			return err
		}
		config.NotesModel = modelFlag
	} else if err := ValidateNotesModel(config.NotesModel); err != nil {
		return fmt.Errorf("invalid model in config: %w", err)
	}

	return nil
}
