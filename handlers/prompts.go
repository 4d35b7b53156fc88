// ABOUTME: MCP prompt handlers for reusable outreach workflow templates
// ABOUTME: Builds daily-plan and lead-summary prompts from live engine output
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/actions"
	"github.com/harperreed/outreach/clock"
	"github.com/harperreed/outreach/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type PromptHandlers struct {
	svc *actions.Service
}

func NewPromptHandlers(svc *actions.Service) *PromptHandlers {
	return &PromptHandlers{svc: svc}
}

// Prompts lists the templates GetPrompt can render.
func (h *PromptHandlers) Prompts() []*mcp.Prompt {
	return []*mcp.Prompt{
		{
			Name:        "daily-plan",
			Description: "Plan today's outreach from the ranked action dashboard",
			Arguments: []*mcp.PromptArgument{
				{Name: "owner_id", Description: "Salesperson whose dashboard to plan (default everyone)"},
			},
		},
		{
			Name:        "lead-summary",
			Description: "Summarize a lead's history and recommend how to approach them",
			Arguments: []*mcp.PromptArgument{
				{Name: "lead_id", Description: "Lead ID", Required: true},
			},
		},
	}
}

// GetPrompt generates the prompt message based on the template
func (h *PromptHandlers) GetPrompt(ctx context.Context, request *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	switch request.Params.Name {
	case "daily-plan":
		return h.dailyPlan(ctx, request.Params.Arguments)
	case "lead-summary":
		return h.leadSummary(ctx, request.Params.Arguments)
	default:
		return nil, fmt.Errorf("unknown prompt: %s", request.Params.Name)
	}
}

func (h *PromptHandlers) dailyPlan(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	owner := args["owner_id"]
	list, err := h.svc.Dashboard(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Today is %s. ", clock.Today(h.svc.Clock()).Format("Monday, January 2"))
	if owner != "" {
		fmt.Fprintf(&b, "These are the top recommended actions for %s:\n\n", owner)
	} else {
		b.WriteString("These are the top recommended actions across every lead:\n\n")
	}
	if len(list) == 0 {
		b.WriteString("Nothing is due.\n")
	}
	for i, a := range list {
		fmt.Fprintf(&b, "%d. [%s] %s: %s (due %s)\n", i+1, a.Urgency, a.LeadName, a.Label, a.DueDate.Format(actions.DateLayout))
	}

	b.WriteString("\nPlease:")
	b.WriteString("\n1. Group these into a realistic order for the day")
	b.WriteString("\n2. Draft a short opening line for each call or DM")
	b.WriteString("\n3. Flag anything that looks overdue or at risk")

	return textPrompt("Daily outreach plan", b.String()), nil
}

func (h *PromptHandlers) leadSummary(ctx context.Context, args map[string]string) (*mcp.GetPromptResult, error) {
	idStr, ok := args["lead_id"]
	if !ok {
		return nil, fmt.Errorf("lead_id is required")
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		return nil, fmt.Errorf("invalid lead_id: %w", err)
	}

	lead, err := h.svc.GetLead(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := h.svc.ListActivities(ctx, id)
	if err != nil {
		return nil, err
	}
	bookings, err := h.svc.ListBookings(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := h.svc.ForLead(ctx, id)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("Please summarize this lead:\n\n")
	fmt.Fprintf(&b, "Name: %s\n", lead.Name)
	fmt.Fprintf(&b, "Status: %s\n", lead.Status)
	fmt.Fprintf(&b, "Source: %s\n", lead.LeadSource)
	if lead.HasSocialLink() {
		fmt.Fprintf(&b, "Social: %s %s\n", lead.Instagram, lead.Facebook)
	}
	if lead.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", lead.Notes)
	}

	fmt.Fprintf(&b, "\nActivity history (%d):\n", len(history))
	for _, a := range history {
		fmt.Fprintf(&b, "  - %s %s", a.OccurredAt.Format(actions.DateLayout), a.ActivityType)
		if a.Outcome != "" {
			fmt.Fprintf(&b, " (%s)", a.Outcome)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nBookings: %d\n", len(bookings))

	b.WriteString("\nRecommended next actions:\n")
	for _, a := range next {
		fmt.Fprintf(&b, "  %s %s (due %s)\n", models.UrgencyIndicator(a.Urgency), a.Label, a.DueDate.Format(actions.DateLayout))
	}

	b.WriteString("\nPlease provide:")
	b.WriteString("\n1. Where this lead stands in the pipeline")
	b.WriteString("\n2. How to approach the most urgent action")

	return textPrompt(fmt.Sprintf("Summary for lead: %s", lead.Name), b.String()), nil
}

func textPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []*mcp.PromptMessage{
			{
				Role:    "user",
				Content: &mcp.TextContent{Text: text},
			},
		},
	}
}
