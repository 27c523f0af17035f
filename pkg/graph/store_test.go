package graph

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/ai"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/common"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/geometry"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/layout"
)

func TestAddNodeAssignsIDAndPosition(t *testing.T) {
	s := NewStore()
	s.SetViewport(geometry.Rect{X: 0, Y: 0, Width: 1000, Height: 800})

	n, err := s.AddNode(common.Node{Label: "French Revolution", Type: common.NodeTypeEvent})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.ID == "" {
		t.Error("expected an assigned ID")
	}
	// Near the viewport center, within jitter bounds.
	if n.Position.X < 500-insertJitter || n.Position.X > 500+insertJitter {
		t.Errorf("X position %v not near viewport center", n.Position.X)
	}
	if n.Position.Y < 400-insertJitter || n.Position.Y > 400+insertJitter {
		t.Errorf("Y position %v not near viewport center", n.Position.Y)
	}

	if _, err := s.AddNode(common.Node{}); !errors.Is(err, ErrNodeLabel) {
		t.Fatalf("expected ErrNodeLabel for empty label, got %v", err)
	}
}

func TestAddNodeWithoutViewportUsesInsertPosition(t *testing.T) {
	s := NewStore()
	n, err := s.AddNode(common.Node{Label: "first"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Position != (common.Point{X: 50, Y: 50}) {
		t.Errorf("expected default insert position for empty graph, got %+v", n.Position)
	}

	second, err := s.AddNode(common.Node{Label: "second"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantX := n.Position.X + geometry.DefaultNodeWidth + geometry.InsertGap
	if second.Position.X != wantX {
		t.Errorf("expected second node at X=%v, got %v", wantX, second.Position.X)
	}
}

func TestAddEdgeRejectsUnknownEndpoints(t *testing.T) {
	s := NewStore()
	a, _ := s.AddNode(common.Node{Label: "a"})
	b, _ := s.AddNode(common.Node{Label: "b"})

	if _, ok := s.AddEdge(common.Edge{Source: a.ID, Target: "ghost"}); ok {
		t.Error("expected edge with unknown target to be rejected")
	}
	if _, ok := s.AddEdge(common.Edge{Source: "", Target: b.ID}); ok {
		t.Error("expected edge with empty source to be rejected")
	}

	e, ok := s.AddEdge(common.Edge{Source: a.ID, Target: b.ID, Type: "caused-by"})
	if !ok {
		t.Fatal("expected valid edge to be accepted")
	}
	if e.ID == "" {
		t.Error("expected an assigned edge ID")
	}
	if e.Label != "Caused By" {
		t.Errorf("expected label to default from type, got %q", e.Label)
	}
}

func TestRemoveNodeCascadesEdges(t *testing.T) {
	s := NewStore()
	a, _ := s.AddNode(common.Node{Label: "a"})
	b, _ := s.AddNode(common.Node{Label: "b"})
	c, _ := s.AddNode(common.Node{Label: "c"})
	s.AddEdge(common.Edge{Source: a.ID, Target: b.ID})
	s.AddEdge(common.Edge{Source: b.ID, Target: c.ID})
	kept, _ := s.AddEdge(common.Edge{Source: a.ID, Target: c.ID})
	s.SelectNode(b.ID)

	if !s.RemoveNode(b.ID) {
		t.Fatal("expected removal to succeed")
	}
	nodes, edges := s.Graph()
	if len(nodes) != 2 {
		t.Errorf("expected 2 nodes, got %d", len(nodes))
	}
	if len(edges) != 1 || edges[0].ID != kept.ID {
		t.Errorf("expected only the a-c edge to survive, got %+v", edges)
	}
	if state := s.Snapshot(); state.SelectedNodeID != "" {
		t.Errorf("expected selection to be cleared, got %q", state.SelectedNodeID)
	}

	if s.RemoveNode("missing") {
		t.Error("expected removal of unknown node to report false")
	}
}

func TestUpdateNodePatch(t *testing.T) {
	s := NewStore()
	n, _ := s.AddNode(common.Node{Label: "Bastille", Type: common.NodeTypePlace})

	label := "Storming of the Bastille"
	typ := common.NodeTypeEvent
	updated, ok := s.UpdateNode(n.ID, NodePatch{Label: &label, Type: &typ})
	if !ok {
		t.Fatal("expected update to find the node")
	}
	if updated.Label != label || updated.Type != typ {
		t.Errorf("patch not applied: %+v", updated)
	}
	if updated.Position != n.Position {
		t.Errorf("unpatched field changed: %+v", updated.Position)
	}

	if _, ok := s.UpdateNode("missing", NodePatch{Label: &label}); ok {
		t.Error("expected update of unknown node to be a no-op")
	}
}

func TestSelectionIsMutuallyExclusive(t *testing.T) {
	s := NewStore()
	a, _ := s.AddNode(common.Node{Label: "a"})
	b, _ := s.AddNode(common.Node{Label: "b"})
	e, _ := s.AddEdge(common.Edge{Source: a.ID, Target: b.ID})

	s.SelectNode(a.ID)
	s.SelectEdge(e.ID)
	state := s.Snapshot()
	if state.SelectedNodeID != "" || state.SelectedEdgeID != e.ID {
		t.Errorf("expected edge selection to clear node selection, got %+v", state)
	}

	s.SelectNode(b.ID)
	state = s.Snapshot()
	if state.SelectedNodeID != b.ID || state.SelectedEdgeID != "" {
		t.Errorf("expected node selection to clear edge selection, got %+v", state)
	}

	s.SelectNode("")
	if state := s.Snapshot(); state.SelectedNodeID != "" {
		t.Error("expected empty ID to clear selection")
	}
}

func TestConvertEntitiesIsIdempotent(t *testing.T) {
	s := NewStore()
	entities := []common.Entity{
		{ID: "ent1", Type: common.NodeTypePerson, Text: "Robespierre"},
		{ID: "ent2", Type: common.NodeTypeEvent, Text: "Reign of Terror"},
	}

	added := s.ConvertEntitiesToNodes(entities)
	if len(added) != 2 {
		t.Fatalf("expected 2 nodes added, got %d", len(added))
	}

	again := s.ConvertEntitiesToNodes(entities)
	if len(again) != 0 {
		t.Fatalf("expected repeat conversion to add nothing, got %d", len(again))
	}
	nodes, _ := s.Graph()
	if len(nodes) != 2 {
		t.Errorf("expected 2 nodes total, got %d", len(nodes))
	}
	for _, n := range nodes {
		if n.Label == "" {
			t.Errorf("node %s has no label", n.ID)
		}
	}
}

func TestApplyLayoutRepositionsNodes(t *testing.T) {
	s := NewStore()
	a, _ := s.AddNode(common.Node{Label: "a"})
	b, _ := s.AddNode(common.Node{Label: "b"})
	s.AddEdge(common.Edge{Source: a.ID, Target: b.ID})

	nodes := s.ApplyLayout(layout.NewLayered(layout.DirectionVertical))
	byID := make(map[string]common.Node, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = n
	}
	if byID[b.ID].Position.Y <= byID[a.ID].Position.Y {
		t.Errorf("expected b below a after vertical layout: a=%+v b=%+v",
			byID[a.ID].Position, byID[b.ID].Position)
	}
}

func TestAnalyzeTextMergesGraph(t *testing.T) {
	payload := `{
		"entities": [
			{"text": "A", "type": "concept"},
			{"text": "B", "type": "concept"}
		],
		"relationships": [
			{"source": "A", "target": "B", "type": "led-to", "description": "A causes B"}
		]
	}`
	client := &stubClient{response: markerWrap(payload)}

	s := NewStore()
	outcome, err := s.AnalyzeText(context.Background(), client, "A causes B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.NodesAdded != 2 || outcome.EdgesAdded != 1 {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	nodes, edges := s.Graph()
	if len(nodes) != 2 || len(edges) != 1 {
		t.Fatalf("expected 2 nodes and 1 edge, got %d and %d", len(nodes), len(edges))
	}
	e := edges[0]
	if e.Source == "A" || e.Target == "B" {
		t.Error("edge endpoints reference entity text instead of node IDs")
	}
	if e.Label != "A causes B" {
		t.Errorf("expected description as edge label, got %q", e.Label)
	}

	state := s.Snapshot()
	if state.Loading {
		t.Error("expected loading flag to be cleared")
	}
	if state.Error != "" {
		t.Errorf("expected no recorded error, got %q", state.Error)
	}
}

func TestAnalyzeTextRecordsError(t *testing.T) {
	client := &stubClient{response: "no markers here"}
	s := NewStore()
	if _, err := s.AnalyzeText(context.Background(), client, "text"); !errors.Is(err, ErrContract) {
		t.Fatalf("expected ErrContract, got %v", err)
	}
	state := s.Snapshot()
	if state.Error == "" {
		t.Error("expected the failure to be recorded on the store")
	}
	if state.Loading {
		t.Error("expected loading flag to be cleared after failure")
	}
}

func TestAnalyzeTextRejectsConcurrentRuns(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	client := &blockingClient{started: started, release: release}

	s := NewStore()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.AnalyzeText(context.Background(), client, "first")
	}()

	<-started
	_, err := s.AnalyzeText(context.Background(), client, "second")
	if !errors.Is(err, ErrAnalyzeInFlight) {
		t.Fatalf("expected ErrAnalyzeInFlight, got %v", err)
	}
	close(release)
	wg.Wait()
}

type blockingClient struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingClient) GenerateCompletion(ctx context.Context, prompt string, opts ...ai.GenerateOption) (string, error) {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return markerWrap(`{"entities": [], "relationships": []}`), nil
}
