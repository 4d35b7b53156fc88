// ABOUTME: New lead form
// ABOUTME: Collects name, source and contact details and submits them to the service
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/outreach/actions"
)

const (
	fieldName = iota
	fieldSource
	fieldInstagram
	fieldFacebook
	fieldPhone
)

func (m *Model) initLeadForm() tea.Cmd {
	inputs := make([]textinput.Model, 5)

	inputs[fieldName] = textinput.New()
	inputs[fieldName].Placeholder = "Name"
	inputs[fieldName].CharLimit = 200

	inputs[fieldSource] = textinput.New()
	inputs[fieldSource].Placeholder = "Source (social_media, cold_outreach, referral, website, event, other)"
	inputs[fieldSource].CharLimit = 20

	inputs[fieldInstagram] = textinput.New()
	inputs[fieldInstagram].Placeholder = "Instagram"
	inputs[fieldInstagram].CharLimit = 100

	inputs[fieldFacebook] = textinput.New()
	inputs[fieldFacebook].Placeholder = "Facebook"
	inputs[fieldFacebook].CharLimit = 200

	inputs[fieldPhone] = textinput.New()
	inputs[fieldPhone].Placeholder = "Phone"
	inputs[fieldPhone].CharLimit = 20

	m.formInputs = inputs
	m.focusIndex = 0
	m.err = nil
	m.updateFormFocus()
	return textinput.Blink
}

func (m *Model) updateFormFocus() {
	for i := range m.formInputs {
		if i == m.focusIndex {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
}

func (m Model) renderLeadForm() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("NEW LEAD"))
	s.WriteString("\n\n")

	for i, input := range m.formInputs {
		if i == m.focusIndex {
			s.WriteString("> ")
		} else {
			s.WriteString("  ")
		}
		s.WriteString(input.View())
		s.WriteString("\n")
	}

	if m.err != nil {
		s.WriteString("\n")
		s.WriteString(errorStyle.Render("Error: " + m.err.Error()))
		s.WriteString("\n")
	}

	help := []string{
		"Tab: Next field",
		"Enter: Save",
		"Esc: Cancel",
	}
	s.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return s.String()
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewActions
		m.err = nil
		return m, nil
	case "tab", "down":
		m.focusIndex = (m.focusIndex + 1) % len(m.formInputs)
		m.updateFormFocus()
		return m, nil
	case "shift+tab", "up":
		m.focusIndex = (m.focusIndex + len(m.formInputs) - 1) % len(m.formInputs)
		m.updateFormFocus()
		return m, nil
	case "enter":
		m.saveLead()
		return m, nil
	}

	var cmd tea.Cmd
	m.formInputs[m.focusIndex], cmd = m.formInputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m *Model) saveLead() {
	value := func(i int) string { return strings.TrimSpace(m.formInputs[i].Value()) }

	lead, err := m.svc.AddLead(context.Background(), actions.LeadInput{
		Name:       value(fieldName),
		LeadSource: value(fieldSource),
		Instagram:  value(fieldInstagram),
		Facebook:   value(fieldFacebook),
		Phone:      value(fieldPhone),
		OwnerID:    m.opts.Owner,
	})
	if err != nil {
		m.err = err
		return
	}

	if m.opts.OnNewLead != nil {
		m.opts.OnNewLead(lead)
	}
	m.viewMode = ViewActions
	m.status = fmt.Sprintf("Added %s", lead.Name)
	m.refresh()
}
