// ABOUTME: Tests for pipeline graph and dashboard rendering
// ABOUTME: Uses a temp database with a fixed clock
package viz

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/goccy/go-graphviz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/outreach/actions"
	"github.com/harperreed/outreach/clock"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/engine"
	"github.com/harperreed/outreach/logging"
	"github.com/harperreed/outreach/models"
)

func newTestService(t *testing.T) *actions.Service {
	t.Helper()

	database, err := db.OpenDatabase(filepath.Join(t.TempDir(), "viz.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	loc, err := clock.LoadLocation("America/Chicago")
	require.NoError(t, err)
	c := clock.Fixed(time.Date(2026, 10, 19, 10, 0, 0, 0, loc), loc)

	return actions.NewService(database, nil, engine.New(c, nil), logging.Discard())
}

func seed(t *testing.T, svc *actions.Service) {
	t.Helper()
	ctx := context.Background()

	for _, in := range []actions.LeadInput{
		{Name: "Ava", LeadSource: models.SourceColdOutreach, OwnerID: "amy"},
		{Name: "Bo", LeadSource: models.SourceReferral, Status: models.StatusEngaged, OwnerID: "amy"},
		{Name: "Cy", LeadSource: models.SourceWebsite, Status: models.StatusWon, OwnerID: "jake"},
	} {
		_, err := svc.AddLead(ctx, in)
		require.NoError(t, err)
	}
}

func TestGenerateDashboardStats(t *testing.T) {
	svc := newTestService(t)
	seed(t, svc)

	stats, err := GenerateDashboardStats(context.Background(), svc, "")
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalLeads)
	assert.Equal(t, 1, stats.LeadsByStatus[models.StatusNew])
	assert.Equal(t, 1, stats.LeadsByStatus[models.StatusWon])
	assert.Equal(t, 1, stats.ActionsByUrgency[models.PriorityHigh])
	assert.Equal(t, 1, stats.TotalActions)
	require.Len(t, stats.TopActions, 1)
	assert.Equal(t, "Ava", stats.TopActions[0].LeadName)

	scoped, err := GenerateDashboardStats(context.Background(), svc, "jake")
	require.NoError(t, err)
	assert.Equal(t, 1, scoped.TotalLeads)
	assert.Empty(t, scoped.TopActions)
}

func TestRenderDashboard(t *testing.T) {
	svc := newTestService(t)
	seed(t, svc)

	stats, err := GenerateDashboardStats(context.Background(), svc, "amy")
	require.NoError(t, err)
	out := RenderDashboard(stats)

	assert.Contains(t, out, "OUTREACH DASHBOARD · Mon Oct 19, 2026")
	assert.Contains(t, out, "for amy")
	assert.Contains(t, out, "🔴 1 high")
	assert.Contains(t, out, "Initial Cold Call")
	assert.Contains(t, out, "nurture")
}

func TestRenderDashboardEmpty(t *testing.T) {
	stats, err := GenerateDashboardStats(context.Background(), newTestService(t), "")
	require.NoError(t, err)
	assert.Contains(t, RenderDashboard(stats), "Nothing due today.")
}

func TestGeneratePipelineGraph(t *testing.T) {
	svc := newTestService(t)
	seed(t, svc)

	dot, err := NewGraphGenerator(svc).GeneratePipelineGraph(context.Background(), "", graphviz.XDOT)
	require.NoError(t, err)

	assert.Contains(t, dot, "Lead Pipeline")
	assert.Contains(t, dot, "status_new")
	assert.Contains(t, dot, "salmon", "Ava's cold call is high urgency")
	assert.Contains(t, dot, "gray90", "won leads have no actions")
}

func TestUrgencyColor(t *testing.T) {
	assert.Equal(t, "salmon", urgencyColor(models.PriorityHigh))
	assert.Equal(t, "khaki", urgencyColor(models.PriorityMedium))
	assert.Equal(t, "palegreen", urgencyColor(models.PriorityLow))
	assert.Equal(t, "gray90", urgencyColor(""))
}
