package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/adminizer/giving/core"
	"github.com/adminizer/giving/core/algo"
	"github.com/adminizer/giving/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// store returns the active donor store or a tool error result.
func (h *toolHandler) store() (contract.DonorStore, *mcp.CallToolResult) {
	if h.mgr == nil {
		return nil, mcp.NewToolResultError(core.ErrNoStore.Error())
	}
	store := h.mgr.GetDonorStore()
	if store == nil {
		return nil, mcp.NewToolResultError(core.ErrNoStore.Error())
	}
	return store, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDonorReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if tiers := request.GetString("tiers", ""); tiers != "" {
		parsed, err := contract.ParseTiers(tiers)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid tiers: %v", err)), nil
		}
		cfg.TierBreakpoints = parsed
	}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}

	store, errResult := h.store()
	if errResult != nil {
		return errResult, nil
	}
	result, err := core.NewImporter(store, core.OptionsFromConfig(cfg)).Report(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("report failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleGetTopDonors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := h.baseCfg.ResultLimit
	if l := request.GetInt("limit", 0); l > 0 {
		limit = l
	}

	store, errResult := h.store()
	if errResult != nil {
		return errResult, nil
	}
	donors, err := core.NewImporter(store, core.OptionsFromConfig(h.baseCfg)).Donors(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading donors failed: %v", err)), nil
	}
	return jsonResult(algo.RankDonors(donors, limit))
}

func (h *toolHandler) handleGetUploadHistory(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store, errResult := h.store()
	if errResult != nil {
		return errResult, nil
	}
	history, err := core.NewImporter(store, core.OptionsFromConfig(h.baseCfg)).History(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading history failed: %v", err)), nil
	}
	return jsonResult(history)
}

func (h *toolHandler) handleGetStoreStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	store, errResult := h.store()
	if errResult != nil {
		return errResult, nil
	}
	status, err := store.GetStatus()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("status failed: %v", err)), nil
	}
	return jsonResult(status)
}
