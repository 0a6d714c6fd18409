package internal

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
)

// fakeGenaiClient returns canned responses for generator tests
type fakeGenaiClient struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenaiClient) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func TestGenerateNotes(t *testing.T) {
	t.Run("returns model output", func(t *testing.T) {
		client := &fakeGenaiClient{response: "## Title\nGenerated Notes\n"}
		g := NewGenerator(client, "gemini-2.5-flash", time.Minute, false)

		got, err := g.GenerateNotes(context.Background(), "the prompt")
		if err != nil {
			t.Fatalf("GenerateNotes() error = %v", err)
		}
		if got != "## Title\nGenerated Notes\n" {
			t.Errorf("GenerateNotes() = %q", got)
		}
		if len(client.prompts) != 1 || client.prompts[0] != "the prompt" {
			t.Errorf("prompts sent = %v", client.prompts)
		}
	})

	t.Run("empty output is an error", func(t *testing.T) {
		client := &fakeGenaiClient{response: "  \n"}
		g := NewGenerator(client, "gemini-2.5-flash", time.Minute, false)

		if _, err := g.GenerateNotes(context.Background(), "prompt"); err == nil {
			t.Error("expected error for empty notes document")
		}
	})

	t.Run("client error is wrapped", func(t *testing.T) {
		client := &fakeGenaiClient{err: fmt.Errorf("quota exceeded")}
		g := NewGenerator(client, "gemini-2.5-flash", time.Minute, false)

		_, err := g.GenerateNotes(context.Background(), "prompt")
		if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
			t.Errorf("GenerateNotes() error = %v", err)
		}
	})

	t.Run("missing API key without client", func(t *testing.T) {
		g := NewGeneratorWithKey("", "gemini-2.5-flash", time.Minute, false)

		if _, err := g.GenerateNotes(context.Background(), "prompt"); err == nil {
			t.Error("expected error when no API key is configured")
		}
	})
}

func TestExtractTopic(t *testing.T) {
	t.Run("trims whitespace and quotes", func(t *testing.T) {
		client := &fakeGenaiClient{response: "  \"Quantum Physics Basics\"\n"}
		g := NewGenerator(client, "gemini-2.5-flash", time.Minute, false)

		topic, err := g.ExtractTopic(context.Background(), "A summary about quantum physics.")
		if err != nil {
			t.Fatalf("ExtractTopic() error = %v", err)
		}
		if topic != "Quantum Physics Basics" {
			t.Errorf("ExtractTopic() = %q", topic)
		}
	})

	t.Run("summary is embedded in the prompt", func(t *testing.T) {
		client := &fakeGenaiClient{response: "Networking"}
		g := NewGenerator(client, "gemini-2.5-flash", time.Minute, false)

		if _, err := g.ExtractTopic(context.Background(), "packets and routers"); err != nil {
			t.Fatalf("ExtractTopic() error = %v", err)
		}
		if len(client.prompts) != 1 || !strings.Contains(client.prompts[0], "packets and routers") {
			t.Errorf("prompt did not include the summary: %v", client.prompts)
		}
	})

	t.Run("empty response is an error", func(t *testing.T) {
		client := &fakeGenaiClient{response: "\"\""}
		g := NewGenerator(client, "gemini-2.5-flash", time.Minute, false)

		if _, err := g.ExtractTopic(context.Background(), "summary"); err == nil {
			t.Error("expected error for empty topic")
		}
	})
}
