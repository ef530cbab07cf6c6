package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/hazyhaar/tanzil-search/pkg/mcpquic"
	"github.com/mark3labs/mcp-go/mcp"
)

// cmdProbe connects to a running server over MCP/QUIC, lists its tools, and
// optionally resolves a query. Useful for checking a deployment end to end.
func cmdProbe(args []string) {
	fs := flag.NewFlagSet("probe", flag.ExitOnError)
	addr := fs.String("addr", "localhost:8420", "server address")
	chapter := fs.Int("chapter", 0, "chapter to resolve a query against")
	query := fs.String("query", "", "query to resolve (requires --chapter)")
	insecure := fs.Bool("insecure", true, "skip TLS verification (dev servers run self-signed)")
	fs.Parse(args)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client := mcpquic.NewClient(*addr, mcpquic.ClientTLSConfig(*insecure))
	if err := client.Connect(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "connect %s: %v\n", *addr, err)
		os.Exit(1)
	}
	defer client.Close()

	tools, err := client.ListTools(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "list tools: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%s: %d tools\n", *addr, len(tools.Tools))
	for _, t := range tools.Tools {
		fmt.Printf("  %-15s %s\n", t.Name, t.Description)
	}

	if *query == "" || *chapter == 0 {
		return
	}

	result, err := client.CallTool(ctx, "resolve_verse", map[string]any{
		"chapter": *chapter,
		"query":   *query,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "resolve_verse: %v\n", err)
		os.Exit(1)
	}
	for _, content := range result.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			fmt.Println(tc.Text)
		}
	}
}
