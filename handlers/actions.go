// ABOUTME: Recommended action MCP tool handlers
// ABOUTME: Implements get_next_actions, get_lead_actions and complete_action tools
package handlers

import (
	"context"

	"github.com/harperreed/outreach/actions"
	"github.com/harperreed/outreach/apperr"
	"github.com/harperreed/outreach/clock"
	"github.com/harperreed/outreach/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ActionHandlers struct {
	svc *actions.Service
}

func NewActionHandlers(svc *actions.Service) *ActionHandlers {
	return &ActionHandlers{svc: svc}
}

type GetNextActionsInput struct {
	OwnerID string `json:"owner_id,omitempty" jsonschema:"Salesperson whose dashboard to show (default everyone)"`
}

type ActionsOutput struct {
	Date    string         `json:"date"`
	Actions []ActionOutput `json:"actions"`
}

func (h *ActionHandlers) GetNextActions(ctx context.Context, _ *mcp.CallToolRequest, input GetNextActionsInput) (*mcp.CallToolResult, ActionsOutput, error) {
	list, err := h.svc.Dashboard(ctx, input.OwnerID)
	if err != nil {
		return nil, ActionsOutput{}, toolError(err)
	}
	return nil, h.output(list), nil
}

type GetLeadActionsInput struct {
	LeadID string `json:"lead_id" jsonschema:"Lead ID (required)"`
}

func (h *ActionHandlers) GetLeadActions(ctx context.Context, _ *mcp.CallToolRequest, input GetLeadActionsInput) (*mcp.CallToolResult, ActionsOutput, error) {
	id, err := parseID("lead_id", input.LeadID)
	if err != nil {
		return nil, ActionsOutput{}, err
	}

	list, err := h.svc.ForLead(ctx, id)
	if err != nil {
		return nil, ActionsOutput{}, toolError(err)
	}
	return nil, h.output(list), nil
}

type CompleteActionInput struct {
	ActionID string `json:"action_id" jsonschema:"Action ID from get_next_actions or get_lead_actions (required). Only task and engagement actions complete directly."`
}

func (h *ActionHandlers) CompleteAction(ctx context.Context, _ *mcp.CallToolRequest, input CompleteActionInput) (*mcp.CallToolResult, CompletionOutput, error) {
	if input.ActionID == "" {
		return nil, CompletionOutput{}, toolError(apperr.Validation("action_id is required"))
	}

	done, err := h.svc.CompleteByID(ctx, input.ActionID)
	if err != nil {
		return nil, CompletionOutput{}, toolError(err)
	}
	return nil, completionToOutput(done), nil
}

func (h *ActionHandlers) output(list []models.RecommendedAction) ActionsOutput {
	c := h.svc.Clock()
	return ActionsOutput{
		Date:    clock.Today(c).Format(actions.DateLayout),
		Actions: actionsToOutput(list),
	}
}
