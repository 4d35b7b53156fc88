// ABOUTME: MCP resource handlers for exposing leads, actions and rule configuration
// ABOUTME: Serves read-only JSON under the outreach:// URI scheme
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/actions"
	"github.com/harperreed/outreach/apperr"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/ruleconfig"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const resourceScheme = "outreach://"

type ResourceHandlers struct {
	svc   *actions.Service
	rules *ruleconfig.Store
}

func NewResourceHandlers(svc *actions.Service, rules *ruleconfig.Store) *ResourceHandlers {
	return &ResourceHandlers{svc: svc, rules: rules}
}

// Resources lists the fixed resources; per-lead actions are served through
// the template.
func (h *ResourceHandlers) Resources() []*mcp.Resource {
	return []*mcp.Resource{
		{URI: resourceScheme + "actions", Name: "next-actions", Description: "Today's ranked dashboard across every lead", MIMEType: "application/json"},
		{URI: resourceScheme + "leads", Name: "leads", Description: "Every lead in the pipeline", MIMEType: "application/json"},
		{URI: resourceScheme + "rules", Name: "rule-criteria", Description: "Effective DM follow-up completion criteria", MIMEType: "application/json"},
	}
}

// LeadActionsTemplate describes the per-lead action list.
func (h *ResourceHandlers) LeadActionsTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		URITemplate: resourceScheme + "leads/{id}/actions",
		Name:        "lead-actions",
		Description: "Every recommended action for one lead",
		MIMEType:    "application/json",
	}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", resourceScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")
	switch {
	case len(parts) == 1 && parts[0] == "actions":
		list, err := h.svc.Dashboard(ctx, "")
		if err != nil {
			return nil, err
		}
		return jsonResource(uri, actionsToOutput(list))

	case len(parts) == 1 && parts[0] == "leads":
		leads, err := h.svc.FindLeads(ctx, db.LeadFilter{})
		if err != nil {
			return nil, err
		}
		out := make([]LeadOutput, len(leads))
		for i := range leads {
			out[i] = leadToOutput(&leads[i])
		}
		return jsonResource(uri, out)

	case len(parts) == 3 && parts[0] == "leads" && parts[2] == "actions":
		id, err := uuid.Parse(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid lead ID: %w", err)
		}
		list, err := h.svc.ForLead(ctx, id)
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		if err != nil {
			return nil, err
		}
		return jsonResource(uri, actionsToOutput(list))

	case len(parts) == 1 && parts[0] == "rules":
		rules, err := h.rules.Effective()
		if err != nil {
			return nil, err
		}
		out := make([]RuleOutput, len(rules))
		for i, r := range rules {
			out[i] = ruleToOutput(r)
		}
		return jsonResource(uri, out)
	}

	return nil, mcp.ResourceNotFoundError(uri)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
