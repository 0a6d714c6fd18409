package internal

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

// OpenAIClientInterface defines the interface for OpenAI client operations
type OpenAIClientInterface interface {
	CreateTranscription(ctx context.Context, file *os.File) (string, error)
	CreateSpeech(ctx context.Context, text, voice string) ([]byte, error)
}

// OpenAIClient wraps the official OpenAI Go SDK
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient creates a new OpenAI client
func NewOpenAIClient(apiKey string) *OpenAIClient {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIClient{client: &client}
}

// CreateTranscription implements the transcription method
func (c *OpenAIClient) CreateTranscription(ctx context.Context, file *os.File) (string, error) {
	resp, err := c.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  file,
		Model: openai.AudioModelWhisper1,
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// CreateSpeech implements text-to-speech synthesis, returning mp3 bytes
func (c *OpenAIClient) CreateSpeech(ctx context.Context, text, voice string) ([]byte, error) {
	resp, err := c.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model:          openai.SpeechModelTTS1,
		Input:          text,
		Voice:          openai.AudioSpeechNewParamsVoice(voice),
		ResponseFormat: openai.AudioSpeechNewParamsResponseFormatMP3,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading speech response: %w", err)
	}
	return data, nil
}

// AI handles OpenAI API interactions for transcription and speech synthesis
type AI struct {
	client       OpenAIClientInterface
	audio        *Audio
	voice        string
	whisperLimit int64
	timeout      time.Duration
	verbose      bool
	apiKey       string
	clientOnce   sync.Once
}

// NewAI creates a new AI processor
func NewAI(client OpenAIClientInterface, audio *Audio, voice string, whisperLimit int64, timeout time.Duration, verbose bool) *AI {
	return &AI{
		client:       client,
		audio:        audio,
		voice:        voice,
		whisperLimit: whisperLimit,
		timeout:      timeout,
		verbose:      verbose,
	}
}

// NewAIWithKey creates a new AI processor with lazy client initialization
func NewAIWithKey(apiKey string, audio *Audio, voice string, whisperLimit int64, timeout time.Duration, verbose bool) *AI {
	return &AI{
		audio:        audio,
		voice:        voice,
		whisperLimit: whisperLimit,
		timeout:      timeout,
		verbose:      verbose,
		apiKey:       apiKey,
	}
}

// ensureClient initializes the OpenAI client if needed
func (ai *AI) ensureClient() error {
	if ai.client != nil {
		return nil
	}

	if ai.apiKey == "" {
		return ValidateOpenAIAPIKey("")
	}

	ai.clientOnce.Do(func() {
		ai.client = NewOpenAIClient(ai.apiKey)
	})

	return nil
}

// Transcribe transcribes audio using OpenAI's Whisper API
func (ai *AI) Transcribe(ctx context.Context, audioFile string) (string, error) {
	return ai.TranscribeWithProgress(ctx, audioFile, nil)
}

// TranscribeWithProgress transcribes audio with an optional progress bar
func (ai *AI) TranscribeWithProgress(ctx context.Context, audioFile string, bar ProgressBar) (string, error) {
	if err := ai.ensureClient(); err != nil {
		return "", err
	}

	if ai.verbose {
		fmt.Printf("Transcribing audio file: %s\n", audioFile)
	}

	info, err := os.Stat(audioFile)
	if err != nil {
		return "", fmt.Errorf("getting audio file info: %w", err)
	}

	fileSize := info.Size()
	numChunks := int(math.Ceil(float64(fileSize) / float64(ai.whisperLimit)))

	var chunks []string
	if numChunks > 1 {
		chunks, err = ai.audio.Split(ctx, audioFile, numChunks)
		if err != nil {
			return "", fmt.Errorf("splitting audio: %w", err)
		}
	} else {
		chunks = []string{audioFile}
	}

	defer func() {
		cleanupFiles(chunks...)
		if len(chunks) > 1 {
			cleanupFiles(audioFile)
		}
	}()

	transcript, err := ai.processAudioChunks(ctx, chunks, bar)
	if err != nil {
		return "", fmt.Errorf("transcribing audio: %w", err)
	}
	return transcript, nil
}

// processAudioChunks transcribes audio chunks sequentially
// NOTE: tried to do it concurrently but one chunk returned broken transcript
// not sure if issue with the invocation of the API or just a glitch
// trying it sequentially worked
func (ai *AI) processAudioChunks(ctx context.Context, chunks []string, bar ProgressBar) (string, error) {
	numChunks := len(chunks)

	if ai.verbose {
		fmt.Printf("Transcribing chunks (%d)\n", numChunks)
	}

	var sb strings.Builder
	for i, chunkPath := range chunks {
		file, err := os.Open(chunkPath)
		if err != nil {
			return "", fmt.Errorf("opening chunk %s: %w", chunkPath, err)
		}

		text, err := ai.client.CreateTranscription(ctx, file)
		if closeErr := file.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close file %s: %v\n", chunkPath, closeErr)
		}
		if err != nil {
			return "", fmt.Errorf("transcribing chunk %d: %w", i+1, err)
		}

		sb.WriteString(text)
		if i < numChunks-1 {
			sb.WriteString("\n")
		}

		if bar != nil {
			bar.Set((i + 1) * 100 / numChunks)
		}
		if ai.verbose {
			fmt.Printf("Transcribed chunk %d/%d\n", i+1, numChunks)
		}
	}

	return sb.String(), nil
}

// Synthesize converts text to mp3 speech audio
func (ai *AI) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if err := ai.ensureClient(); err != nil {
		return nil, err
	}

	if text == "" {
		return nil, fmt.Errorf("no text to synthesize")
	}

	ctx, cancel := context.WithTimeout(ctx, ai.timeout)
	defer cancel()

	audio, err := ai.client.CreateSpeech(ctx, text, ai.voice)
	if err != nil {
		return nil, fmt.Errorf("creating speech: %w", err)
	}

	return audio, nil
}
