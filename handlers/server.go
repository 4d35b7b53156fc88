// ABOUTME: MCP server assembly
// ABOUTME: Registers every outreach tool, resource and prompt on one server
package handlers

import (
	"github.com/harperreed/outreach/actions"
	"github.com/harperreed/outreach/ruleconfig"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// NewServer builds the MCP server. The caller picks the transport.
func NewServer(svc *actions.Service, rules *ruleconfig.Store, version string) *mcp.Server {
	leadHandlers := NewLeadHandlers(svc)
	recordHandlers := NewRecordHandlers(svc)
	actionHandlers := NewActionHandlers(svc)
	ruleHandlers := NewRuleHandlers(rules)
	resourceHandlers := NewResourceHandlers(svc, rules)
	promptHandlers := NewPromptHandlers(svc)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "outreach",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_lead",
		Description: "Add a new sales lead",
	}, leadHandlers.AddLead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "find_leads",
		Description: "Search leads by name, email or phone, optionally filtered by status, source or owner",
	}, leadHandlers.FindLeads)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "update_lead_status",
		Description: "Move a lead to another lifecycle status (new, contacted, engaged, nurture, won, lost)",
	}, leadHandlers.UpdateLeadStatus)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "reassign_lead",
		Description: "Assign a lead to another salesperson; it then appears on their dashboard too",
	}, leadHandlers.ReassignLead)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "log_activity",
		Description: "Log a call, text, email, DM, social engagement or note against a lead",
	}, recordHandlers.LogActivity)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_activities",
		Description: "List a lead's activity history, oldest first",
	}, recordHandlers.ListActivities)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_booking",
		Description: "Record a booking for a lead",
	}, recordHandlers.AddBooking)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "add_task",
		Description: "Schedule a manual follow-up task for a lead",
	}, recordHandlers.AddTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_tasks",
		Description: "List open tasks, optionally for one lead or owner",
	}, recordHandlers.ListTasks)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_next_actions",
		Description: "Get today's top ranked outreach actions across every lead, or one salesperson's leads",
	}, actionHandlers.GetNextActions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_lead_actions",
		Description: "Get every recommended action for one lead",
	}, actionHandlers.GetLeadActions)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "complete_action",
		Description: "Complete a task or engagement action. Calls and DMs are completed by logging the activity instead",
	}, actionHandlers.CompleteAction)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "set_rule_criterion",
		Description: "Set what counts as handling a DM follow-up step (any_outreach, engagement, conversation, booking)",
	}, ruleHandlers.SetRuleCriterion)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "unset_rule_criterion",
		Description: "Reset a DM follow-up step to the default criterion",
	}, ruleHandlers.UnsetRuleCriterion)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_rule_criteria",
		Description: "List the completion criterion in effect for every DM follow-up step",
	}, ruleHandlers.ListRuleCriteria)

	for _, r := range resourceHandlers.Resources() {
		server.AddResource(r, resourceHandlers.ReadResource)
	}
	server.AddResourceTemplate(resourceHandlers.LeadActionsTemplate(), resourceHandlers.ReadResource)

	for _, p := range promptHandlers.Prompts() {
		server.AddPrompt(p, promptHandlers.GetPrompt)
	}

	return server
}
