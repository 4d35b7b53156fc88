// ABOUTME: Activity, booking and task MCP tool handlers
// ABOUTME: Implements log_activity, list_activities, add_booking and add_task tools
package handlers

import (
	"context"

	"github.com/harperreed/outreach/actions"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type RecordHandlers struct {
	svc *actions.Service
}

func NewRecordHandlers(svc *actions.Service) *RecordHandlers {
	return &RecordHandlers{svc: svc}
}

type LogActivityInput struct {
	LeadID       string `json:"lead_id" jsonschema:"Lead ID (required)"`
	ActivityType string `json:"activity_type" jsonschema:"One of call, text, email, dm, engagement, note (required)"`
	Outcome      string `json:"outcome,omitempty" jsonschema:"For contact activities: no_response, conversation, booked, not_interested"`
	OccurredAt   string `json:"occurred_at,omitempty" jsonschema:"RFC 3339 timestamp or YYYY-MM-DD date (defaults to now)"`
	Notes        string `json:"notes,omitempty" jsonschema:"Notes about the touchpoint"`
}

func (h *RecordHandlers) LogActivity(ctx context.Context, _ *mcp.CallToolRequest, input LogActivityInput) (*mcp.CallToolResult, ActivityOutput, error) {
	activity, err := h.svc.LogActivity(ctx, actions.ActivityInput(input))
	if err != nil {
		return nil, ActivityOutput{}, toolError(err)
	}
	return nil, activityToOutput(activity), nil
}

type ListActivitiesInput struct {
	LeadID string `json:"lead_id" jsonschema:"Lead ID (required)"`
}

type ListActivitiesOutput struct {
	Activities []ActivityOutput `json:"activities"`
}

func (h *RecordHandlers) ListActivities(ctx context.Context, _ *mcp.CallToolRequest, input ListActivitiesInput) (*mcp.CallToolResult, ListActivitiesOutput, error) {
	id, err := parseID("lead_id", input.LeadID)
	if err != nil {
		return nil, ListActivitiesOutput{}, err
	}

	history, err := h.svc.ListActivities(ctx, id)
	if err != nil {
		return nil, ListActivitiesOutput{}, toolError(err)
	}

	out := make([]ActivityOutput, len(history))
	for i := range history {
		out[i] = activityToOutput(&history[i])
	}
	return nil, ListActivitiesOutput{Activities: out}, nil
}

type AddBookingInput struct {
	LeadID    string `json:"lead_id" jsonschema:"Lead ID (required)"`
	BookedAt  string `json:"booked_at,omitempty" jsonschema:"When the booking was made, RFC 3339 or YYYY-MM-DD (defaults to now)"`
	ShootDate string `json:"shoot_date,omitempty" jsonschema:"Session date, YYYY-MM-DD"`
	Notes     string `json:"notes,omitempty" jsonschema:"Booking notes"`
}

func (h *RecordHandlers) AddBooking(ctx context.Context, _ *mcp.CallToolRequest, input AddBookingInput) (*mcp.CallToolResult, BookingOutput, error) {
	booking, err := h.svc.AddBooking(ctx, actions.BookingInput(input))
	if err != nil {
		return nil, BookingOutput{}, toolError(err)
	}
	return nil, bookingToOutput(booking), nil
}

type AddTaskInput struct {
	LeadID   string `json:"lead_id" jsonschema:"Lead ID (required)"`
	Title    string `json:"title" jsonschema:"What needs doing (required)"`
	DueDate  string `json:"due_date,omitempty" jsonschema:"Due date, YYYY-MM-DD (defaults to today when evaluated)"`
	DueTime  string `json:"due_time,omitempty" jsonschema:"Due time, HH:MM"`
	Priority string `json:"priority,omitempty" jsonschema:"high, medium or low (default derived from due date)"`
	OwnerID  string `json:"owner_id,omitempty" jsonschema:"Salesperson responsible"`
}

func (h *RecordHandlers) AddTask(ctx context.Context, _ *mcp.CallToolRequest, input AddTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	task, err := h.svc.AddTask(ctx, actions.TaskInput(input))
	if err != nil {
		return nil, TaskOutput{}, toolError(err)
	}
	return nil, taskToOutput(task), nil
}

type ListTasksInput struct {
	LeadID  string `json:"lead_id,omitempty" jsonschema:"Only tasks for this lead"`
	OwnerID string `json:"owner_id,omitempty" jsonschema:"Only tasks owned by this salesperson"`
	All     bool   `json:"all,omitempty" jsonschema:"Include completed tasks"`
}

type ListTasksOutput struct {
	Tasks []TaskOutput `json:"tasks"`
}

func (h *RecordHandlers) ListTasks(ctx context.Context, _ *mcp.CallToolRequest, input ListTasksInput) (*mcp.CallToolResult, ListTasksOutput, error) {
	filter := db.TaskFilter{OwnerID: input.OwnerID}
	if !input.All {
		filter.Status = models.TaskStatusOpen
	}
	if input.LeadID != "" {
		id, err := parseID("lead_id", input.LeadID)
		if err != nil {
			return nil, ListTasksOutput{}, err
		}
		filter.LeadID = &id
	}

	tasks, err := h.svc.ListTasks(ctx, filter)
	if err != nil {
		return nil, ListTasksOutput{}, toolError(err)
	}

	out := make([]TaskOutput, len(tasks))
	for i := range tasks {
		out[i] = taskToOutput(&tasks[i])
	}
	return nil, ListTasksOutput{Tasks: out}, nil
}
