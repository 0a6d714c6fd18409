package internal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer wraps the MCP server and application dependencies
type MCPServer struct {
	app       *App
	mcpServer *server.MCPServer
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(app *App) *MCPServer {
	mcpServer := server.NewMCPServer(
		"eduease-server",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		app:       app,
		mcpServer: mcpServer,
	}

	// Register tools
	s.registerTools()

	return s
}

// registerTools registers all available MCP tools
func (s *MCPServer) registerTools() {
	// get_video_metadata tool
	s.mcpServer.AddTool(mcp.NewTool("get_video_metadata",
		mcp.WithDescription("Extract video metadata including caption availability. Check 'Has Captions' field to determine which transcript tool to use: if true, use get_transcript (free); if false, consider transcribe_whisper (paid)."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL"),
			mcp.Required(),
		),
	), s.handleGetMetadata)

	// get_transcript tool (free - existing captions only)
	s.mcpServer.AddTool(mcp.NewTool("get_transcript",
		mcp.WithDescription("Get existing YouTube captions/transcript (FREE). Only works if the video has captions - check metadata first. Fails if no captions available."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL"),
			mcp.Required(),
		),
	), s.handleGetTranscript)

	// transcribe_whisper tool (paid - creates transcript using AI)
	s.mcpServer.AddTool(mcp.NewTool("transcribe_whisper",
		mcp.WithDescription("Create transcript using OpenAI Whisper API (PAID). Requires OPENAI_API_KEY environment variable to be set. Use only when the video has no captions and the user explicitly agrees to incur costs. Always ask the user for confirmation before calling this tool."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL"),
			mcp.Required(),
		),
	), s.handleWhisperTranscribe)

	// generate_study_notes tool (full pipeline)
	s.mcpServer.AddTool(mcp.NewTool("generate_study_notes",
		mcp.WithDescription("Generate complete structured study notes for a video: summary, jargon buster, key takeaways, MCQ quiz and flashcards. Requires GEMINI_API_KEY. Videos without captions are transcribed with OpenAI Whisper (PAID), so check metadata and confirm with the user first. Results are stored, so repeat calls for the same video return the stored notes instantly."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL"),
			mcp.Required(),
		),
		mcp.WithString("level",
			mcp.Description("Learning level: Beginner, Intermediate or Advanced (default Beginner)"),
		),
	), s.handleStudyNotes)

	// get_quiz tool
	s.mcpServer.AddTool(mcp.NewTool("get_quiz",
		mcp.WithDescription("Get the MCQ quiz for a video as JSON. Generates study notes first if the video has not been processed yet."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL"),
			mcp.Required(),
		),
	), s.handleGetQuiz)

	// get_flashcards tool
	s.mcpServer.AddTool(mcp.NewTool("get_flashcards",
		mcp.WithDescription("Get the flashcards for a video as JSON. Generates study notes first if the video has not been processed yet."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL"),
			mcp.Required(),
		),
	), s.handleGetFlashcards)

	// get_roadmap tool
	s.mcpServer.AddTool(mcp.NewTool("get_roadmap",
		mcp.WithDescription("Get recommended YouTube videos for a topic at a learning level. Requires YOUTUBE_API_KEY."),
		mcp.WithString("topic",
			mcp.Description("Topic to find videos for"),
			mcp.Required(),
		),
		mcp.WithString("level",
			mcp.Description("Learning level: Beginner, Intermediate or Advanced (default Beginner)"),
		),
	), s.handleGetRoadmap)
}

// handleGetMetadata implements the get_video_metadata tool
func (s *MCPServer) handleGetMetadata(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}
	MCPLogDebug("get_video_metadata %s", url)

	metadata, err := s.app.Metadata(ctx, url)
	if err != nil {
		MCPLogError("metadata error: %v", err)
		return mcp.NewToolResultErrorFromErr("metadata error", err), nil
	}

	// Format metadata as text
	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("Title: %s\n", metadata.Title))
	buf.WriteString(fmt.Sprintf("Channel: %s\n", metadata.Channel))
	buf.WriteString(fmt.Sprintf("Duration: %.0f seconds\n", metadata.Duration))
	buf.WriteString(fmt.Sprintf("Description: %s\n", metadata.Description))

	// Caption availability information
	buf.WriteString(fmt.Sprintf("Has Captions: %t\n", metadata.HasCaptions))

	if len(metadata.Tags) > 0 {
		buf.WriteString(fmt.Sprintf("Tags: %s\n", strings.Join(metadata.Tags, ", ")))
	}

	if len(metadata.Categories) > 0 {
		buf.WriteString(fmt.Sprintf("Categories: %s\n", strings.Join(metadata.Categories, ", ")))
	}

	for _, ch := range metadata.Chapters {
		buf.WriteString(fmt.Sprintf("Chapter (%.0f-%.0f): %s\n", ch.StartTime, ch.EndTime, ch.Title))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(buf.String())},
	}, nil
}

// handleGetTranscript implements the get_transcript tool (free captions only)
func (s *MCPServer) handleGetTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}
	MCPLogDebug("get_transcript %s", url)

	// Captions only, no Whisper fallback
	transcript, err := s.app.GetTranscript(ctx, url)
	if err != nil {
		MCPLogError("transcript error: %v", err)
		return mcp.NewToolResultErrorFromErr("no captions available - use get_video_metadata to check caption availability, or consider transcribe_whisper (paid)", err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(transcript)},
	}, nil
}

// handleWhisperTranscribe implements the transcribe_whisper tool (paid Whisper transcription)
func (s *MCPServer) handleWhisperTranscribe(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}
	MCPLogDebug("transcribe_whisper %s", url)

	// Download audio and transcribe using Whisper (this costs money)
	audioFile, err := s.app.DownloadAudio(ctx, url)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("failed to download audio", err), nil
	}

	transcript, err := s.app.TranscribeAudio(ctx, audioFile)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("failed to transcribe audio with Whisper", err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(transcript)},
	}, nil
}

// handleStudyNotes implements the generate_study_notes tool
func (s *MCPServer) handleStudyNotes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	level := LevelBeginner
	if raw := request.GetString("level", ""); raw != "" {
		level, err = ParseLearningLevel(raw)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("invalid level", err), nil
		}
	}
	MCPLogInfo("generate_study_notes %s (%s)", url, level)

	entry, restored, err := s.app.StudyNotes(ctx, url, StudyOptions{FallbackWhisper: true, Level: level})
	if err != nil {
		MCPLogError("study notes error: %v", err)
		return mcp.NewToolResultErrorFromErr("failed to generate study notes", err), nil
	}
	if restored {
		MCPLogDebug("restored stored session for %s", entry.VideoID)
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(entry.Document)},
	}, nil
}

// handleGetQuiz implements the get_quiz tool
func (s *MCPServer) handleGetQuiz(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entry, result := s.sessionForRequest(ctx, request)
	if result != nil {
		return result, nil
	}

	if len(entry.Quiz) == 0 {
		return mcp.NewToolResultError("no quiz questions in the generated notes"), nil
	}

	return s.jsonResult(entry.Quiz)
}

// handleGetFlashcards implements the get_flashcards tool
func (s *MCPServer) handleGetFlashcards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	entry, result := s.sessionForRequest(ctx, request)
	if result != nil {
		return result, nil
	}

	if len(entry.Flashcards) == 0 {
		return mcp.NewToolResultError("no flashcards in the generated notes"), nil
	}

	return s.jsonResult(entry.Flashcards)
}

// handleGetRoadmap implements the get_roadmap tool
func (s *MCPServer) handleGetRoadmap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	topic, err := request.RequireString("topic")
	if err != nil {
		return mcp.NewToolResultError("topic parameter is required and must be a string"), nil
	}

	level := LevelBeginner
	if raw := request.GetString("level", ""); raw != "" {
		level, err = ParseLearningLevel(raw)
		if err != nil {
			return mcp.NewToolResultErrorFromErr("invalid level", err), nil
		}
	}
	MCPLogDebug("get_roadmap %q (%s)", topic, level)

	roadmap, err := s.app.Roadmap(ctx, topic, level)
	if err != nil {
		MCPLogError("roadmap error: %v", err)
		return mcp.NewToolResultErrorFromErr("failed to fetch recommendations", err), nil
	}

	return s.jsonResult(roadmap)
}

// sessionForRequest resolves the stored session for the request's url,
// generating notes first when the video has not been processed yet.
func (s *MCPServer) sessionForRequest(ctx context.Context, request mcp.CallToolRequest) (*HistoryEntry, *mcp.CallToolResult) {
	url, err := request.RequireString("url")
	if err != nil {
		return nil, mcp.NewToolResultError("url parameter is required and must be a string")
	}

	entry, _, err := s.app.StudyNotes(ctx, url, StudyOptions{FallbackWhisper: true})
	if err != nil {
		MCPLogError("study notes error: %v", err)
		return nil, mcp.NewToolResultErrorFromErr("failed to generate study notes", err)
	}

	return entry, nil
}

// jsonResult marshals v as indented JSON tool output
func (s *MCPServer) jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultErrorFromErr("encoding result", err), nil
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.NewTextContent(string(data))},
	}, nil
}

// Start starts the MCP server using the specified transport
func (s *MCPServer) Start(ctx context.Context, transport string, port int) error {
	if transport == "http" {
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)
		addr := fmt.Sprintf(":%d", port)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return httpServer.Start(addr)
	}

	// Default to stdio transport
	return server.ServeStdio(s.mcpServer)
}

// GetServer returns the underlying MCP server for advanced configuration
func (s *MCPServer) GetServer() *server.MCPServer {
	return s.mcpServer
}
