// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Interactive dashboard over the ranked next-action list
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/harperreed/outreach/actions"
	"github.com/harperreed/outreach/models"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewActions ViewMode = iota
	ViewNewLead
)

// Scope selects between the multi-lead dashboard and one lead's full list.
type Scope int

const (
	ScopeDashboard Scope = iota
	ScopeLead
)

// Options carries the callbacks the host program injects. Both are optional.
type Options struct {
	// Owner limits the dashboard to one salesperson. Empty means everyone.
	Owner string
	// OnComplete runs after an action completes successfully.
	OnComplete func(*actions.Completion)
	// OnNewLead runs after the new-lead form saves a lead.
	OnNewLead func(*models.Lead)
}

// Model is the main bubbletea model
type Model struct {
	svc  *actions.Service
	opts Options

	viewMode ViewMode
	scope    Scope

	// Lead scope state
	leadID *uuid.UUID
	lead   *models.Lead

	// Actions view state
	actions []models.RecommendedAction
	table   table.Model

	// New lead form state
	formInputs []textinput.Model
	focusIndex int

	status string
	err    error

	width  int
	height int
}

// New creates a model and loads the dashboard.
func New(svc *actions.Service, opts Options) Model {
	m := Model{
		svc:      svc,
		opts:     opts,
		viewMode: ViewActions,
		scope:    ScopeDashboard,
		width:    100,
		height:   24,
	}
	m.table = newActionsTable(m.height)
	m.refresh()
	return m
}

// Run starts the full-screen program and blocks until the user quits.
func Run(svc *actions.Service, opts Options) error {
	p := tea.NewProgram(New(svc, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(tableHeight(m.height))
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewNewLead:
		return m.renderLeadForm()
	default:
		return m.renderActionsView()
	}
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewNewLead:
		return m.handleFormKeys(msg)
	default:
		return m.handleActionKeys(msg)
	}
}

// Actions returns the list currently on screen.
func (m Model) Actions() []models.RecommendedAction {
	return m.actions
}

// Err returns the last error shown in the status line.
func (m Model) Err() error {
	return m.err
}

// refresh recomputes the list for the current scope. Completing an action
// or saving a lead always goes through here.
func (m *Model) refresh() {
	ctx := context.Background()

	var (
		list []models.RecommendedAction
		err  error
	)
	if m.scope == ScopeLead && m.leadID != nil {
		list, err = m.svc.ForLead(ctx, *m.leadID)
		if err == nil {
			m.lead, err = m.svc.GetLead(ctx, *m.leadID)
		}
	} else {
		list, err = m.svc.Dashboard(ctx, m.opts.Owner)
	}
	if err != nil {
		m.err = err
		return
	}

	m.err = nil
	m.actions = list
	m.table.SetRows(actionRows(list))
	if m.table.Cursor() >= len(list) {
		m.table.SetCursor(max(len(list)-1, 0))
	}
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)
