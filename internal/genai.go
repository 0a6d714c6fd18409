package internal

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"google.golang.org/genai"
)

// GenaiClientInterface defines the interface for Gemini text generation
type GenaiClientInterface interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
}

// GenaiClient wraps the official Gemini Go SDK
type GenaiClient struct {
	client *genai.Client
}

// NewGenaiClient creates a new Gemini client
func NewGenaiClient(ctx context.Context, apiKey string) (*GenaiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GenaiClient{client: client}, nil
}

// GenerateText implements plain text generation
func (c *GenaiClient) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// Generator produces study-notes documents and short topics using Gemini
type Generator struct {
	client     GenaiClientInterface
	model      string
	timeout    time.Duration
	verbose    bool
	apiKey     string
	clientOnce sync.Once
}

// NewGenerator creates a new notes generator
func NewGenerator(client GenaiClientInterface, model string, timeout time.Duration, verbose bool) *Generator {
	return &Generator{
		client:  client,
		model:   model,
		timeout: timeout,
		verbose: verbose,
	}
}

// NewGeneratorWithKey creates a new notes generator with lazy client initialization
func NewGeneratorWithKey(apiKey, model string, timeout time.Duration, verbose bool) *Generator {
	return &Generator{
		model:   model,
		timeout: timeout,
		verbose: verbose,
		apiKey:  apiKey,
	}
}

// ensureClient initializes the Gemini client if needed
func (g *Generator) ensureClient(ctx context.Context) error {
	if g.client != nil {
		return nil
	}

	if g.apiKey == "" {
		return ValidateGeminiAPIKey("")
	}

	var initErr error
	g.clientOnce.Do(func() {
		client, err := NewGenaiClient(ctx, g.apiKey)
		if err != nil {
			initErr = err
			return
		}
		g.client = client
	})
	if initErr != nil {
		return initErr
	}
	if g.client == nil {
		return fmt.Errorf("gemini client initialization failed previously")
	}

	return nil
}

// GenerateNotes creates a structured notes document from a prepared prompt
func (g *Generator) GenerateNotes(ctx context.Context, prompt string) (string, error) {
	if err := g.ensureClient(ctx); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	if g.verbose {
		fmt.Printf("Generating notes with %s\n", g.model)
	}

	document, err := g.client.GenerateText(ctx, g.model, prompt)
	if err != nil {
		return "", fmt.Errorf("generating notes: %w", err)
	}
	if strings.TrimSpace(document) == "" {
		return "", fmt.Errorf("model returned an empty notes document")
	}

	return document, nil
}

// ExtractTopic distills a 3-5 word search topic from summary text
func (g *Generator) ExtractTopic(ctx context.Context, summary string) (string, error) {
	if err := g.ensureClient(ctx); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	prompt := fmt.Sprintf("Based on the following summary, please identify the core topic in 3-5 words. "+
		"Your response should ONLY be the topic phrase itself, with no extra text or punctuation. "+
		"For example: 'Quantum Physics Basics'.\n\nSummary: %s", summary)

	response, err := g.client.GenerateText(ctx, g.model, prompt)
	if err != nil {
		return "", fmt.Errorf("extracting topic: %w", err)
	}

	topic := strings.ReplaceAll(strings.TrimSpace(response), `"`, "")
	if topic == "" {
		return "", fmt.Errorf("model returned an empty topic")
	}

	if g.verbose {
		fmt.Printf("Extracted topic: %q\n", topic)
	}
	return topic, nil
}
