// ABOUTME: Lead detail header for the TUI
// ABOUTME: Renders the selected lead's fields above its action list
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(14)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

func (m Model) renderLeadHeader() string {
	lead := m.lead
	var s strings.Builder

	s.WriteString(m.renderField("Name", lead.Name))
	s.WriteString(m.renderField("Status", lead.Status))
	s.WriteString(m.renderField("Source", lead.LeadSource))
	s.WriteString(m.renderField("Instagram", lead.Instagram))
	s.WriteString(m.renderField("Facebook", lead.Facebook))
	s.WriteString(m.renderField("Owner", lead.OwnerID))
	if lead.AssignedTo != "" {
		s.WriteString(m.renderField("Assigned", lead.AssignedTo))
	}

	return s.String()
}

func (m Model) renderField(label, value string) string {
	if value == "" {
		return ""
	}
	return fieldLabelStyle.Render(label+":") + " " + fieldValueStyle.Render(value) + "\n"
}
