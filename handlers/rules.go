// ABOUTME: Rule configuration MCP tool handlers
// ABOUTME: Implements set_rule_criterion, unset_rule_criterion and list_rule_criteria tools
package handlers

import (
	"context"
	"fmt"

	"github.com/harperreed/outreach/apperr"
	"github.com/harperreed/outreach/engine"
	"github.com/harperreed/outreach/ruleconfig"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type RuleHandlers struct {
	rules *ruleconfig.Store
}

func NewRuleHandlers(rules *ruleconfig.Store) *RuleHandlers {
	return &RuleHandlers{rules: rules}
}

type RuleOutput struct {
	Label     string `json:"label"`
	Criterion string `json:"criterion"`
	Known     bool   `json:"known"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func ruleToOutput(r ruleconfig.Rule) RuleOutput {
	out := RuleOutput{Label: r.Label, Criterion: r.Criterion, Known: r.Known()}
	if !r.UpdatedAt.IsZero() {
		out.UpdatedAt = r.UpdatedAt.Format(timeLayout)
	}
	return out
}

type SetRuleCriterionInput struct {
	Label     string `json:"label,omitempty" jsonschema:"Rule label, e.g. DM Follow-up (Day 14)"`
	Days      int    `json:"days,omitempty" jsonschema:"DM follow-up threshold (3, 14 or 30); used when label is empty"`
	Criterion string `json:"criterion" jsonschema:"any_outreach, engagement, conversation or booking (required)"`
}

func (h *RuleHandlers) SetRuleCriterion(_ context.Context, _ *mcp.CallToolRequest, input SetRuleCriterionInput) (*mcp.CallToolResult, RuleOutput, error) {
	label, err := resolveLabel(input.Label, input.Days)
	if err != nil {
		return nil, RuleOutput{}, err
	}

	rule, err := h.rules.Set(label, input.Criterion)
	if err != nil {
		return nil, RuleOutput{}, toolError(err)
	}
	return nil, ruleToOutput(*rule), nil
}

type UnsetRuleCriterionInput struct {
	Label string `json:"label,omitempty" jsonschema:"Rule label to reset to the default criterion"`
	Days  int    `json:"days,omitempty" jsonschema:"DM follow-up threshold; used when label is empty"`
}

type UnsetRuleCriterionOutput struct {
	Label   string `json:"label"`
	Message string `json:"message"`
}

func (h *RuleHandlers) UnsetRuleCriterion(_ context.Context, _ *mcp.CallToolRequest, input UnsetRuleCriterionInput) (*mcp.CallToolResult, UnsetRuleCriterionOutput, error) {
	label, err := resolveLabel(input.Label, input.Days)
	if err != nil {
		return nil, UnsetRuleCriterionOutput{}, err
	}
	if err := h.rules.Delete(label); err != nil {
		return nil, UnsetRuleCriterionOutput{}, err
	}
	return nil, UnsetRuleCriterionOutput{
		Label:   label,
		Message: fmt.Sprintf("%s reverted to the default criterion", label),
	}, nil
}

type ListRuleCriteriaInput struct{}

type ListRuleCriteriaOutput struct {
	Rules []RuleOutput `json:"rules"`
}

// ListRuleCriteria shows the effective criterion for every DM follow-up
// threshold followed by any other stored labels.
func (h *RuleHandlers) ListRuleCriteria(_ context.Context, _ *mcp.CallToolRequest, _ ListRuleCriteriaInput) (*mcp.CallToolResult, ListRuleCriteriaOutput, error) {
	effective, err := h.rules.Effective()
	if err != nil {
		return nil, ListRuleCriteriaOutput{}, err
	}
	stored, err := h.rules.All()
	if err != nil {
		return nil, ListRuleCriteriaOutput{}, err
	}

	seen := make(map[string]bool, len(effective))
	out := make([]RuleOutput, 0, len(effective)+len(stored))
	for _, r := range effective {
		seen[r.Label] = true
		out = append(out, ruleToOutput(r))
	}
	for _, r := range stored {
		if !seen[r.Label] {
			out = append(out, ruleToOutput(r))
		}
	}
	return nil, ListRuleCriteriaOutput{Rules: out}, nil
}

func resolveLabel(label string, days int) (string, error) {
	if label != "" {
		return label, nil
	}
	if days > 0 {
		return engine.DMLabel(days), nil
	}
	return "", toolError(apperr.Validation("label or days is required"))
}
