// ABOUTME: Pipeline graph generation with graphviz
// ABOUTME: Renders leads grouped under their status, coloured by their most urgent action
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/google/uuid"

	"github.com/harperreed/outreach/actions"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/models"
)

type GraphGenerator struct {
	svc *actions.Service
}

func NewGraphGenerator(svc *actions.Service) *GraphGenerator {
	return &GraphGenerator{svc: svc}
}

// urgencyColor maps a lead's most urgent action to a node fill colour.
func urgencyColor(urgency string) string {
	switch urgency {
	case models.PriorityHigh:
		return "salmon"
	case models.PriorityMedium:
		return "khaki"
	case models.PriorityLow:
		return "palegreen"
	}
	return "gray90"
}

// GeneratePipelineGraph renders the pipeline for owner (empty for everyone)
// in the given graphviz format, usually graphviz.XDOT or graphviz.SVG.
func (g *GraphGenerator) GeneratePipelineGraph(ctx context.Context, owner string, format graphviz.Format) (string, error) {
	leads, err := g.svc.FindLeads(ctx, db.LeadFilter{OwnerID: owner})
	if err != nil {
		return "", err
	}
	all, err := g.svc.AllActions(ctx, owner)
	if err != nil {
		return "", err
	}

	// Actions arrive ranked, so the first one seen per lead is its most urgent.
	top := make(map[uuid.UUID]models.RecommendedAction)
	for _, a := range all {
		if _, ok := top[a.LeadID]; !ok {
			top[a.LeadID] = a
		}
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer gv.Close()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer graph.Close()

	graph.SetLabel("Lead Pipeline")
	graph.SetRankDir(cgraph.LRRank)

	statusNodes := make(map[string]*cgraph.Node)
	var prev *cgraph.Node
	for _, status := range models.Statuses() {
		node, err := graph.CreateNodeByName("status_" + status)
		if err != nil {
			return "", fmt.Errorf("failed to create status node: %w", err)
		}
		node.SetLabel(status)
		node.SetShape("box")
		node.SetStyle("filled")
		node.SetFillColor("lightblue")
		statusNodes[status] = node

		if prev != nil {
			edge, err := graph.CreateEdgeByName("next_"+status, prev, node)
			if err != nil {
				return "", fmt.Errorf("failed to create pipeline edge: %w", err)
			}
			edge.SetStyle("bold")
		}
		prev = node
	}

	for _, lead := range leads {
		node, err := graph.CreateNodeByName("lead_" + lead.ID.String()[:8])
		if err != nil {
			return "", fmt.Errorf("failed to create lead node: %w", err)
		}

		label := lead.Name
		urgency := ""
		if a, ok := top[lead.ID]; ok {
			label = fmt.Sprintf("%s\n%s", lead.Name, a.Label)
			urgency = a.Urgency
		}
		node.SetLabel(label)
		node.SetShape("ellipse")
		node.SetStyle("filled")
		node.SetFillColor(urgencyColor(urgency))

		if statusNode, ok := statusNodes[lead.Status]; ok {
			edge, err := graph.CreateEdgeByName("in_"+lead.ID.String()[:8], statusNode, node)
			if err != nil {
				return "", fmt.Errorf("failed to create lead edge: %w", err)
			}
			edge.SetStyle("dashed")
		}
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, format, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}

	return buf.String(), nil
}
