// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Summarizes leads by status and actions by urgency with the top of today's list
package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/outreach/actions"
	"github.com/harperreed/outreach/clock"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/models"
)

type DashboardStats struct {
	Date  time.Time
	Owner string

	// Pipeline overview
	LeadsByStatus map[string]int
	TotalLeads    int

	// Action load across every lead in scope
	ActionsByUrgency map[string]int
	TotalActions     int
	OpenTasks        int

	// Top of today's ranked list
	TopActions []models.RecommendedAction
}

func GenerateDashboardStats(ctx context.Context, svc *actions.Service, owner string) (*DashboardStats, error) {
	stats := &DashboardStats{
		Date:             clock.Today(svc.Clock()),
		Owner:            owner,
		LeadsByStatus:    make(map[string]int),
		ActionsByUrgency: make(map[string]int),
	}

	leads, err := svc.FindLeads(ctx, db.LeadFilter{OwnerID: owner})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leads: %w", err)
	}
	for _, lead := range leads {
		stats.LeadsByStatus[lead.Status]++
	}
	stats.TotalLeads = len(leads)

	all, err := svc.AllActions(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate actions: %w", err)
	}
	for _, a := range all {
		stats.ActionsByUrgency[a.Urgency]++
		if a.Type == models.ActionManual {
			stats.OpenTasks++
		}
	}
	stats.TotalActions = len(all)

	top, err := svc.Dashboard(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	stats.TopActions = top

	return stats, nil
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	// Header
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString(fmt.Sprintf("  OUTREACH DASHBOARD · %s\n", stats.Date.Format("Mon Jan 2, 2006")))
	if stats.Owner != "" {
		out.WriteString(fmt.Sprintf("  for %s\n", stats.Owner))
	}
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	out.WriteString("PIPELINE\n")
	renderPipeline(&out, stats.LeadsByStatus)
	out.WriteString("\n")

	out.WriteString("TODAY\n")
	out.WriteString(fmt.Sprintf("  🔴 %d high  🟡 %d medium  🟢 %d low  (%d actions, %d open tasks)\n\n",
		stats.ActionsByUrgency[models.PriorityHigh],
		stats.ActionsByUrgency[models.PriorityMedium],
		stats.ActionsByUrgency[models.PriorityLow],
		stats.TotalActions, stats.OpenTasks))

	if len(stats.TopActions) > 0 {
		out.WriteString("UP NEXT\n")
		for i, a := range stats.TopActions {
			out.WriteString(fmt.Sprintf("  %2d. %s %-20s %s\n", i+1, models.UrgencyIndicator(a.Urgency), a.LeadName, a.Label))
		}
	} else {
		out.WriteString("Nothing due today.\n")
	}

	return out.String()
}

func renderPipeline(out *strings.Builder, byStatus map[string]int) {
	maxCount := 0
	for _, n := range byStatus {
		if n > maxCount {
			maxCount = n
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	for _, status := range models.Statuses() {
		n := byStatus[status]
		barLength := (n * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)
		out.WriteString(fmt.Sprintf("  %-10s %s  %2d\n", status, bar, n))
	}
}
