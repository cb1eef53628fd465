// Package mcp provides the MCP (Model Context Protocol) server implementation.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/xvierd/fokus/internal/domain"
	"github.com/xvierd/fokus/internal/ports"
)

// defaultRecentDays is the window get_recent reports when none is given.
const defaultRecentDays = 7

// Server implements the MCP server using mark3labs/mcp-go. It only reads the
// history; the interactive session stays the single writer.
type Server struct {
	server   *server.MCPServer
	provider ports.HistoryProvider
	now      func() time.Time
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewServer creates a new MCP server instance.
func NewServer(provider ports.HistoryProvider, version string) *Server {
	s := &Server{
		provider: provider,
		now:      time.Now,
	}

	s.server = server.NewMCPServer(
		"fokus",
		version,
		server.WithLogging(),
	)

	s.registerTools()

	return s
}

// registerTools registers all available MCP tools.
func (s *Server) registerTools() {
	s.server.AddTool(
		mcp.NewTool(
			"get_today",
			mcp.WithDescription("Get the minutes of focus logged today"),
		),
		s.handleGetToday,
	)

	historyTool := mcp.NewTool(
		"get_history",
		mcp.WithDescription("Get the logged focus minutes per day, newest first"),
		mcp.WithNumber(
			"limit",
			mcp.Description("Optional maximum number of days to return"),
		),
	)
	s.server.AddTool(historyTool, s.handleGetHistory)

	recentTool := mcp.NewTool(
		"get_recent",
		mcp.WithDescription("Get one entry per calendar day for the last N days, oldest first, including days without focus"),
		mcp.WithNumber(
			"days",
			mcp.Description("Number of days to cover (default: 7)"),
		),
	)
	s.server.AddTool(recentTool, s.handleGetRecent)
}

// Start begins serving MCP requests via stdio.
func (s *Server) Start(ctx context.Context) error {
	s.ctx, s.cancel = context.WithCancel(ctx)

	return server.ServeStdio(s.server)
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	if s.ctx == nil {
		return false
	}
	return s.ctx.Err() == nil
}

// Ensure Server implements ports.MCPHandler.
var _ ports.MCPHandler = (*Server)(nil)

type dayJSON struct {
	Day     string `json:"day"`
	Minutes int    `json:"minutes"`
}

func toDays(rows []domain.DailySummary) []dayJSON {
	out := make([]dayJSON, 0, len(rows))
	for _, r := range rows {
		out = append(out, dayJSON{Day: r.Day, Minutes: r.Minutes})
	}
	return out
}

func sumMinutes(rows []domain.DailySummary) int {
	total := 0
	for _, r := range rows {
		total += r.Minutes
	}
	return total
}

// handleGetToday handles the get_today tool.
func (s *Server) handleGetToday(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	today, err := s.provider.Today(ctx, s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to get today: %w", err)
	}
	return jsonResult(dayJSON{Day: today.Day, Minutes: today.Minutes})
}

// handleGetHistory handles the get_history tool.
func (s *Server) handleGetHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 0)
	if limit < 0 {
		return mcp.NewToolResultError("limit must not be negative"), nil
	}

	rows, err := s.provider.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	total := sumMinutes(rows)
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}

	return jsonResult(map[string]interface{}{
		"days":          toDays(rows),
		"total_minutes": total,
	})
}

// handleGetRecent handles the get_recent tool.
func (s *Server) handleGetRecent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := request.GetInt("days", defaultRecentDays)
	if days < 1 || days > 366 {
		return mcp.NewToolResultError("days must be between 1 and 366"), nil
	}

	rows, err := s.provider.Recent(ctx, s.now(), days)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent history: %w", err)
	}

	return jsonResult(map[string]interface{}{
		"days":          toDays(rows),
		"total_minutes": sumMinutes(rows),
	})
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
