package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/bjaus/reindent"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the reindenter as MCP tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.log.Info("serving MCP on stdio", "languages", len(a.registry.Languages()))
			return server.ServeStdio(newMCPServer(a.registry))
		},
	}
}

// newMCPServer registers the reindent tools backed by reg.
func newMCPServer(reg *reindent.Registry) *server.MCPServer {
	s := server.NewMCPServer(
		"reindent",
		version,
		server.WithToolCapabilities(true),
	)
	h := mcpHandlers{registry: reg}

	s.AddTool(mcp.NewTool("reindent",
		mcp.WithDescription("Re-indent source text using per-language block rules"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Source text to reindent"),
		),
		mcp.WithString("language",
			mcp.Required(),
			mcp.Description("Language name or alias, e.g. javascript, python, html"),
		),
		mcp.WithString("unit",
			mcp.Description(`Indent unit: "tab", a number of spaces, or literal whitespace (default: the language's)`),
		),
		mcp.WithString("brace_style",
			mcp.Description("same-line or new-line (default: same-line)"),
		),
	), h.handleReindent)

	s.AddTool(mcp.NewTool("detect_indent",
		mcp.WithDescription("Guess the indent unit used by source text"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Source text to inspect"),
		),
	), h.handleDetectIndent)

	s.AddTool(mcp.NewTool("check_balance",
		mcp.WithDescription("Check that brackets in source text are balanced"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Source text to check"),
		),
		mcp.WithString("pairs",
			mcp.Description(`Bracket pairs to check (default: "()[]{}")`),
		),
	), h.handleCheckBalance)

	s.AddTool(mcp.NewTool("list_languages",
		mcp.WithDescription("List the languages the reindenter knows"),
	), h.handleListLanguages)

	return s
}

type mcpHandlers struct {
	registry *reindent.Registry
}

func (h mcpHandlers) handleReindent(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	source, ok := args["source"].(string)
	if !ok {
		return mcp.NewToolResultError("reindent requires a source parameter"), nil
	}
	name, _ := args["language"].(string)
	if name == "" {
		return mcp.NewToolResultError("reindent requires a language parameter"), nil
	}
	lang, err := h.registry.Lookup(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	cfg := lang.Config()
	if u, ok := args["unit"].(string); ok && u != "" {
		if cfg.Unit, err = parseUnit(u); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	if bs, ok := args["brace_style"].(string); ok {
		if cfg.BraceStyle, err = reindent.ParseBraceStyle(bs); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	return mcp.NewToolResultText(reindent.Reindent(source, cfg, lang.Rules)), nil
}

func (h mcpHandlers) handleDetectIndent(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	source, ok := args["source"].(string)
	if !ok {
		return mcp.NewToolResultError("detect_indent requires a source parameter"), nil
	}
	unit, _ := reindent.DetectUnit(source)
	return mcp.NewToolResultText(describeUnit(unit)), nil
}

func (h mcpHandlers) handleCheckBalance(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	source, ok := args["source"].(string)
	if !ok {
		return mcp.NewToolResultError("check_balance requires a source parameter"), nil
	}
	pairs, _ := args["pairs"].(string)
	if len([]rune(pairs))%2 != 0 {
		return mcp.NewToolResultError(fmt.Sprintf("pairs must have an even number of characters, got %q", pairs)), nil
	}
	if err := reindent.CheckBalance(source, pairs); err != nil {
		return mcp.NewToolResultText("unbalanced: " + err.Error()), nil
	}
	return mcp.NewToolResultText("balanced"), nil
}

func (h mcpHandlers) handleListLanguages(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type entry struct {
		Name       string   `json:"name"`
		Aliases    []string `json:"aliases,omitempty"`
		Family     string   `json:"family"`
		Unit       string   `json:"unit"`
		Extensions []string `json:"extensions"`
	}
	langs := h.registry.Languages()
	out := make([]entry, len(langs))
	for i, l := range langs {
		out[i] = entry{
			Name:       l.Name,
			Aliases:    l.Aliases,
			Family:     l.Family().String(),
			Unit:       describeUnit(l.Config().Unit),
			Extensions: l.Extensions,
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal languages: %v", err)), nil
	}
	return mcp.NewToolResultText(strings.TrimSpace(string(data))), nil
}
