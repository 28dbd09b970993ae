// Package mcp provides a Model Context Protocol server for vitals.
//
// It exposes the normalization engine as MCP tools so agent callers (EHR
// assistants, intake bots) can convert free-text measurements without
// shelling out to the CLI, plus a stats tool over the audit store.
// Stdio transport only.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hurttlocker/vitals/internal/normalize"
	"github.com/hurttlocker/vitals/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	Store   store.Store // optional; stats tool is skipped when nil
	Version string
	Limits  normalize.Limits
}

// NewServer creates a configured MCP server with the vitals tools.
func NewServer(cfg ServerConfig) *server.MCPServer {
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}

	s := server.NewMCPServer(
		"Vitals",
		ver,
		server.WithToolCapabilities(false),
	)

	n := normalize.New(cfg.Limits)

	registerNormalizeWeightTool(s, n)
	registerNormalizeHeightTool(s, n)
	if cfg.Store != nil {
		registerStatsTool(s, cfg.Store)
	}

	return s
}

// weightResult is the JSON payload for a successful weight normalization.
type weightResult struct {
	Input  string  `json:"input"`
	Pounds float64 `json:"pounds"`
}

// heightResult is the JSON payload for a successful height normalization.
type heightResult struct {
	Input       string  `json:"input"`
	Feet        int     `json:"feet"`
	Inches      float64 `json:"inches"`
	TotalInches float64 `json:"total_inches"`
	Display     string  `json:"display"`
}

func registerNormalizeWeightTool(s *server.MCPServer, n *normalize.Normalizer) {
	tool := mcp.NewTool("vitals_normalize_weight",
		mcp.WithDescription("Convert a free-text body weight entry (e.g. '70kg', '11st 6lb', '120斤') to pounds. Handles composite stone notation, localized units, misspellings, and bare numbers."),
		mcp.WithString("input",
			mcp.Required(),
			mcp.Description("The raw weight string as entered"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input, err := req.RequireString("input")
		if err != nil {
			return mcp.NewToolResultError("input is required"), nil
		}

		lbs, err := n.ParseWeight(input)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s: %v", failureKind(err), err)), nil
		}

		data, _ := json.MarshalIndent(weightResult{Input: input, Pounds: lbs}, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerNormalizeHeightTool(s *server.MCPServer, n *normalize.Normalizer) {
	tool := mcp.NewTool("vitals_normalize_height",
		mcp.WithDescription("Convert a free-text body height entry (e.g. '180cm', `5' 10\"`, '5.5 ft') to feet and inches. Composite quote notation takes priority over the decimal-feet reading; bare numbers are inferred from plausible physiological range."),
		mcp.WithString("input",
			mcp.Required(),
			mcp.Description("The raw height string as entered"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		input, err := req.RequireString("input")
		if err != nil {
			return mcp.NewToolResultError("input is required"), nil
		}

		h, err := n.ParseHeight(input)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s: %v", failureKind(err), err)), nil
		}

		data, _ := json.MarshalIndent(heightResult{
			Input:       input,
			Feet:        h.Feet,
			Inches:      h.Inches,
			TotalInches: h.TotalInches(),
			Display:     normalize.FormatHeight(h),
		}, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerStatsTool(s *server.MCPServer, st store.Store) {
	tool := mcp.NewTool("vitals_stats",
		mcp.WithDescription("Get audit-store statistics: total imported observations and parse success/failure counts for weights and heights."),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := st.Stats(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("stats error: %v", err)), nil
		}

		data, _ := json.MarshalIndent(stats, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

// failureKind names the parse failure class for tool callers.
func failureKind(err error) string {
	switch {
	case errors.Is(err, normalize.ErrUnparsable):
		return "unparsable"
	case errors.Is(err, normalize.ErrUnrecognizedUnit):
		return "unrecognized_unit"
	case errors.Is(err, normalize.ErrAmbiguous):
		return "ambiguous_unitless"
	case errors.Is(err, normalize.ErrOutOfRange):
		return "out_of_range"
	}
	return "error"
}
