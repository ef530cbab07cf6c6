package api

import (
	"github.com/hazyhaar/tanzil-search/pkg/kit"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegisterMCPTools registers the three verse search MCP tools on the server.
func RegisterMCPTools(srv *server.MCPServer, svc *Service) {
	registerResolveVerse(srv, svc)
	registerGetVerse(srv, svc)
	registerListChapters(srv, svc)
}

func registerResolveVerse(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("resolve_verse",
		mcp.WithDescription("Find the single best-matching verse in a chapter for a typed or transcribed query (Arabic, Latin transliteration, or translation text)."),
		mcp.WithNumber("chapter", mcp.Required(), mcp.Description("Chapter number (1-114)")),
		mcp.WithString("query", mcp.Required(), mcp.Description("The search text")),
		mcp.WithBoolean("recite", mcp.Description("Treat the query as a literal recitation instead of a keyword lookup")),
	)

	kit.RegisterMCPTool(srv, tool, resolveEndpoint(svc), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		chapter, _ := args["chapter"].(float64)
		query, _ := args["query"].(string)
		recite, _ := args["recite"].(bool)
		return &kit.MCPDecodeResult{Request: &resolveReq{
			Chapter: int(chapter),
			Query:   query,
			Recite:  recite,
		}}, nil
	})
}

func registerGetVerse(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("get_verse",
		mcp.WithDescription("Fetch one verse by chapter number and 1-based position, with Arabic text, transliteration, translation, and commentary."),
		mcp.WithNumber("chapter", mcp.Required(), mcp.Description("Chapter number (1-114)")),
		mcp.WithNumber("position", mcp.Required(), mcp.Description("Verse position within the chapter")),
	)

	kit.RegisterMCPTool(srv, tool, getVerseEndpoint(svc), func(req mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		args := req.GetArguments()
		chapter, _ := args["chapter"].(float64)
		position, _ := args["position"].(float64)
		return &kit.MCPDecodeResult{Request: &verseReq{
			Chapter:  int(chapter),
			Position: int(position),
		}}, nil
	})
}

func registerListChapters(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool("list_chapters",
		mcp.WithDescription("List all chapters with their names and verse counts."),
	)

	kit.RegisterMCPTool(srv, tool, listChaptersEndpoint(svc), func(_ mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	})
}
