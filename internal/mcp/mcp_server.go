// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/adminizer/giving/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the donor analytics MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Giving Donor Analytics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_donor_report ---
	s.AddTool(mcp.NewTool("get_donor_report",
		mcp.WithDescription("Summarize the stored donor data: totals, frequency and tier segments, trends, retention, top donors and insights."),
		mcp.WithString("tiers", mcp.Description("Comma-separated lifetime amount tier boundaries (e.g., '100,500,1000'). Defaults to the configured tiers.")),
		mcp.WithNumber("limit", mcp.Description("Number of top donors to include.")),
	), h.handleGetDonorReport)

	// --- 2. Tool: get_top_donors ---
	s.AddTool(mcp.NewTool("get_top_donors",
		mcp.WithDescription("List donors ranked by lifetime giving, highest first."),
		mcp.WithNumber("limit", mcp.Description("Limit the number of donors returned.")),
	), h.handleGetTopDonors)

	// --- 3. Tool: get_upload_history ---
	s.AddTool(mcp.NewTool("get_upload_history",
		mcp.WithDescription("List past donor data imports, oldest first."),
	), h.handleGetUploadHistory)

	// --- 4. Tool: get_store_status ---
	s.AddTool(mcp.NewTool("get_store_status",
		mcp.WithDescription("Show the donor store backend, entry counts and last update time."),
	), h.handleGetStoreStatus)

	return s
}

// StartMCPServer starts the donor analytics MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
