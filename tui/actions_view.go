// ABOUTME: Ranked action list view
// ABOUTME: Lists the dashboard actions and completes the selected one
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/outreach/actions"
	"github.com/harperreed/outreach/clock"
	"github.com/harperreed/outreach/models"
)

func newActionsTable(height int) table.Model {
	columns := []table.Column{
		{Title: "", Width: 2},
		{Title: "Lead", Width: 22},
		{Title: "Action", Width: 34},
		{Title: "Type", Width: 10},
		{Title: "Due", Width: 10},
	}
	return table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(tableHeight(height)),
	)
}

func tableHeight(height int) int {
	return max(height-10, 3)
}

func actionRows(list []models.RecommendedAction) []table.Row {
	rows := make([]table.Row, len(list))
	for i, a := range list {
		rows[i] = table.Row{
			models.UrgencyIndicator(a.Urgency),
			a.LeadName,
			a.Label,
			a.Type,
			a.DueDate.Format(actions.DateLayout),
		}
	}
	return rows
}

func (m Model) renderActionsView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("NEXT ACTIONS · " + clock.Today(m.svc.Clock()).Format("Mon Jan 2")))
	s.WriteString("\n\n")

	s.WriteString(m.renderTabs())
	s.WriteString("\n\n")

	if m.scope == ScopeLead && m.lead != nil {
		s.WriteString(m.renderLeadHeader())
		s.WriteString("\n")
	}

	if len(m.actions) == 0 {
		s.WriteString("Nothing due. Nice work.\n")
	} else {
		s.WriteString(m.table.View())
	}
	s.WriteString("\n")

	switch {
	case m.err != nil:
		s.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	case m.status != "":
		s.WriteString(statusStyle.Render(m.status))
	}
	s.WriteString("\n")

	s.WriteString(m.renderActionsHelp())
	return s.String()
}

func (m Model) renderTabs() string {
	dashboard := "Dashboard"
	if m.opts.Owner != "" {
		dashboard = "Dashboard (" + m.opts.Owner + ")"
	}
	lead := "Lead"
	if m.lead != nil {
		lead = "Lead: " + m.lead.Name
	}

	tabs := []string{dashboard, lead}
	rendered := make([]string, len(tabs))
	for i, tab := range tabs {
		if Scope(i) == m.scope {
			rendered[i] = tabActiveStyle.Render(tab)
		} else {
			rendered[i] = tabInactiveStyle.Render(tab)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderActionsHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Enter/c: Complete",
		"Tab: Dashboard/Lead",
		"n: New lead",
		"r: Refresh",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleActionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "enter", "c":
		m.completeSelected()
		return m, nil
	case "tab":
		m.toggleScope()
		return m, nil
	case "n":
		m.viewMode = ViewNewLead
		cmd := m.initLeadForm()
		return m, cmd
	case "r":
		m.status = ""
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) selected() *models.RecommendedAction {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.actions) {
		return nil
	}
	return &m.actions[i]
}

func (m *Model) completeSelected() {
	action := m.selected()
	if action == nil {
		return
	}

	done, err := m.svc.Complete(context.Background(), *action)
	if err != nil {
		m.err = err
		m.status = ""
		return
	}

	m.status = fmt.Sprintf("Completed %q for %s", action.Label, action.LeadName)
	if m.opts.OnComplete != nil {
		m.opts.OnComplete(done)
	}
	m.refresh()
}

// toggleScope switches between the dashboard and the selected action's lead.
func (m *Model) toggleScope() {
	if m.scope == ScopeLead {
		m.scope = ScopeDashboard
		m.leadID = nil
		m.lead = nil
	} else {
		action := m.selected()
		if action == nil {
			return
		}
		id := action.LeadID
		m.scope = ScopeLead
		m.leadID = &id
	}
	m.status = ""
	m.table.SetCursor(0)
	m.refresh()
}
