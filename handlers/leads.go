// ABOUTME: Lead MCP tool handlers
// ABOUTME: Implements add_lead, find_leads, update_lead_status and reassign_lead tools
package handlers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/actions"
	"github.com/harperreed/outreach/apperr"
	"github.com/harperreed/outreach/db"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type LeadHandlers struct {
	svc *actions.Service
}

func NewLeadHandlers(svc *actions.Service) *LeadHandlers {
	return &LeadHandlers{svc: svc}
}

type AddLeadInput struct {
	Name       string `json:"name" jsonschema:"Lead name (required)"`
	Email      string `json:"email,omitempty" jsonschema:"Email address"`
	Phone      string `json:"phone,omitempty" jsonschema:"Phone number"`
	Status     string `json:"status,omitempty" jsonschema:"Lifecycle status: new, contacted, engaged, nurture, won, lost (default new)"`
	LeadSource string `json:"lead_source" jsonschema:"Acquisition source: social_media, cold_outreach, referral, website, event, other (required)"`
	Instagram  string `json:"instagram,omitempty" jsonschema:"Instagram handle or profile URL"`
	Facebook   string `json:"facebook,omitempty" jsonschema:"Facebook profile URL"`
	OwnerID    string `json:"owner_id,omitempty" jsonschema:"Salesperson who owns the lead"`
	Notes      string `json:"notes,omitempty" jsonschema:"Free-form notes"`
}

func (h *LeadHandlers) AddLead(ctx context.Context, _ *mcp.CallToolRequest, input AddLeadInput) (*mcp.CallToolResult, LeadOutput, error) {
	lead, err := h.svc.AddLead(ctx, actions.LeadInput(input))
	if err != nil {
		return nil, LeadOutput{}, toolError(err)
	}
	return nil, leadToOutput(lead), nil
}

type FindLeadsInput struct {
	Query      string `json:"query,omitempty" jsonschema:"Search name, email or phone"`
	Status     string `json:"status,omitempty" jsonschema:"Filter by lifecycle status"`
	LeadSource string `json:"lead_source,omitempty" jsonschema:"Filter by acquisition source"`
	OwnerID    string `json:"owner_id,omitempty" jsonschema:"Filter by owner or assignee"`
	Limit      int    `json:"limit,omitempty" jsonschema:"Maximum number of results (default 20)"`
}

type FindLeadsOutput struct {
	Leads []LeadOutput `json:"leads"`
}

func (h *LeadHandlers) FindLeads(ctx context.Context, _ *mcp.CallToolRequest, input FindLeadsInput) (*mcp.CallToolResult, FindLeadsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}

	leads, err := h.svc.FindLeads(ctx, db.LeadFilter{
		OwnerID: input.OwnerID,
		Status:  input.Status,
		Source:  input.LeadSource,
		Query:   input.Query,
		Limit:   limit,
	})
	if err != nil {
		return nil, FindLeadsOutput{}, toolError(err)
	}

	out := make([]LeadOutput, len(leads))
	for i := range leads {
		out[i] = leadToOutput(&leads[i])
	}
	return nil, FindLeadsOutput{Leads: out}, nil
}

type UpdateLeadStatusInput struct {
	LeadID string `json:"lead_id" jsonschema:"Lead ID (required)"`
	Status string `json:"status" jsonschema:"New status: new, contacted, engaged, nurture, won, lost (required)"`
}

func (h *LeadHandlers) UpdateLeadStatus(ctx context.Context, _ *mcp.CallToolRequest, input UpdateLeadStatusInput) (*mcp.CallToolResult, LeadOutput, error) {
	id, err := parseID("lead_id", input.LeadID)
	if err != nil {
		return nil, LeadOutput{}, err
	}
	if err := h.svc.UpdateLeadStatus(ctx, id, input.Status); err != nil {
		return nil, LeadOutput{}, toolError(err)
	}

	lead, err := h.svc.GetLead(ctx, id)
	if err != nil {
		return nil, LeadOutput{}, toolError(err)
	}
	return nil, leadToOutput(lead), nil
}

type ReassignLeadInput struct {
	LeadID     string `json:"lead_id" jsonschema:"Lead ID (required)"`
	AssignedTo string `json:"assigned_to" jsonschema:"Salesperson taking over the lead (required)"`
}

func (h *LeadHandlers) ReassignLead(ctx context.Context, _ *mcp.CallToolRequest, input ReassignLeadInput) (*mcp.CallToolResult, LeadOutput, error) {
	id, err := parseID("lead_id", input.LeadID)
	if err != nil {
		return nil, LeadOutput{}, err
	}
	if input.AssignedTo == "" {
		return nil, LeadOutput{}, toolError(apperr.Validation("assigned_to is required"))
	}
	if err := h.svc.ReassignLead(ctx, id, input.AssignedTo); err != nil {
		return nil, LeadOutput{}, toolError(err)
	}

	lead, err := h.svc.GetLead(ctx, id)
	if err != nil {
		return nil, LeadOutput{}, toolError(err)
	}
	return nil, leadToOutput(lead), nil
}

func parseID(field, value string) (uuid.UUID, error) {
	if value == "" {
		return uuid.Nil, toolError(apperr.Validation(fmt.Sprintf("%s is required", field)))
	}
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, toolError(apperr.Validation(fmt.Sprintf("invalid %s: %q", field, value)))
	}
	return id, nil
}
