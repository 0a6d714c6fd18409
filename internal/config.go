package internal

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/lrstanley/go-ytdlp"
	"github.com/spf13/viper"
)

// CommandRunner executes external commands
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// DefaultCommandRunner implements CommandRunner
type DefaultCommandRunner struct{}

func (r *DefaultCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// Config holds application settings
type Config struct {
	// User configurable settings
	NotesModel     string
	TTSVoice       string
	TranscriptsDir string
	NotesTimeout   time.Duration
	WhisperTimeout time.Duration
	MaxRoadmap     int
	Verbose        bool
	Quiet          bool
	MCPLogEnabled  bool
	GeminiAPIKey   string
	OpenAIAPIKey   string
	YouTubeAPIKey  string
	Prompt         string

	// Fixed XDG paths (not configurable)
	ConfigDir  string
	DataDir    string
	CacheDir   string
	TempDir    string
	HistoryDir string
	AudioDir   string
}

//go:embed config.toml prompt.txt
var defaultFS embed.FS

// WhisperLimit is the maximum file size accepted by OpenAI's Whisper API (25 MiB)
const WhisperLimit int64 = 25 << 20

// ensureDefaultFile checks if a file exists in the specified directory
// and creates it from the embedded default if it doesn't exist
func ensureDefaultFile(configDir, embedFilename, description string) error {
	filePath := filepath.Join(configDir, embedFilename)

	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile(embedFilename)
	if err != nil {
		return fmt.Errorf("reading embedded default %s: %w", description, err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default %s: %w", description, err)
	}

	fmt.Printf("Created default %s at %s\n", description, filePath)
	return nil
}

// EnsureDefaultConfig checks if a config file exists in the XDG config directory
// and creates it from the embedded default if it doesn't exist
func EnsureDefaultConfig(configDir string) error {
	return ensureDefaultFile(configDir, "config.toml", "configuration")
}

// EnsureDefaultPrompt checks if a prompt.txt file exists in the XDG config directory
// and creates it from the embedded default if it doesn't exist
func EnsureDefaultPrompt(configDir string) error {
	return ensureDefaultFile(configDir, "prompt.txt", "notes prompt template")
}

// InitConfig initializes Viper and loads configuration
func InitConfig() *Config {
	// Ensure yt-dlp is installed
	ytdlp.MustInstall(context.Background(), nil)

	// XDG standard directories
	configDir := filepath.Join(xdg.ConfigHome, "eduease")
	dataDir := filepath.Join(xdg.DataHome, "eduease")
	cacheDir := filepath.Join(xdg.CacheHome, "eduease")

	transcriptsDir := filepath.Join(dataDir, "transcripts")
	historyDir := filepath.Join(dataDir, "history")
	audioDir := filepath.Join(dataDir, "audio")
	tempDir := filepath.Join(cacheDir, "temp_chunks")

	v := viper.New()

	// Defaults for configurable settings
	v.SetDefault("notes_model", "gemini-2.5-flash")
	v.SetDefault("tts_voice", "alloy")
	v.SetDefault("transcripts_dir", transcriptsDir)
	v.SetDefault("notes_timeout", 3*time.Minute)
	v.SetDefault("whisper_timeout", 10*time.Minute)
	v.SetDefault("max_roadmap", 3)
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("mcp_log", false)
	v.SetDefault("prompt", "") // if empty will use default prompt template

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	v.SetEnvPrefix("EDUEASE")
	v.AutomaticEnv()

	// API keys are usually set as plain environment variables
	_ = v.BindEnv("gemini_api_key", "GEMINI_API_KEY")
	_ = v.BindEnv("openai_api_key", "OPENAI_API_KEY")
	_ = v.BindEnv("youtube_api_key", "YOUTUBE_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	config := &Config{
		NotesModel:     v.GetString("notes_model"),
		TTSVoice:       v.GetString("tts_voice"),
		TranscriptsDir: v.GetString("transcripts_dir"),
		NotesTimeout:   v.GetDuration("notes_timeout"),
		WhisperTimeout: v.GetDuration("whisper_timeout"),
		MaxRoadmap:     v.GetInt("max_roadmap"),
		Verbose:        v.GetBool("verbose"),
		Quiet:          v.GetBool("quiet"),
		MCPLogEnabled:  v.GetBool("mcp_log"),
		GeminiAPIKey:   v.GetString("gemini_api_key"),
		OpenAIAPIKey:   v.GetString("openai_api_key"),
		YouTubeAPIKey:  v.GetString("youtube_api_key"),
		Prompt:         v.GetString("prompt"),

		ConfigDir:  configDir,
		DataDir:    dataDir,
		CacheDir:   cacheDir,
		TempDir:    tempDir,
		HistoryDir: historyDir,
		AudioDir:   audioDir,
	}

	if config.Verbose {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	return config
}
