package audioserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_ytaudio/internal/engine"
)

// ConvertInput is the youtube_audio tool input.
type ConvertInput struct {
	URL string `json:"url" jsonschema:"YouTube video URL (watch, youtu.be, embed, v, shorts) or an 11-character video ID"`
}

// RegisterTools registers youtube_audio on the given MCP server.
func RegisterTools(server *mcp.Server, srcs []engine.Source) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "youtube_audio",
		Description: "Resolve a YouTube video to a direct audio stream URL. Returns title, author, thumbnail, duration, the highest-bitrate audio-only stream and which upstream answered.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input ConvertInput) (*mcp.CallToolResult, *engine.Result, error) {
		res, err := convertTool(ctx, srcs, input)
		return nil, res, err
	})
}

func convertTool(ctx context.Context, srcs []engine.Source, input ConvertInput) (*engine.Result, error) {
	res, err := engine.Convert(ctx, srcs, input.URL)
	if err != nil {
		_, msg := statusFor(err)
		return nil, errors.Join(errors.New(msg), err)
	}
	return res, nil
}
