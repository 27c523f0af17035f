package graph

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/ai"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/common"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/geometry"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/layout"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/logger"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/sync/semaphore"
)

var (
	// ErrAnalyzeInFlight rejects a second analysis while one is running.
	ErrAnalyzeInFlight = errors.New("an analysis is already in progress")

	// ErrNodeLabel rejects nodes without a label.
	ErrNodeLabel = errors.New("node label must not be empty")
)

// insertJitter is the maximum per-axis offset applied to manually
// inserted nodes so that repeated inserts do not stack exactly.
const insertJitter = 20.0

// Store holds the working graph of a single editing session: nodes,
// edges, the current selection and the state of the last analysis run.
// All methods are safe for concurrent use.
type Store struct {
	mu sync.Mutex

	nodes []common.Node
	edges []common.Edge

	selectedNodeID string
	selectedEdgeID string

	loading bool
	lastErr string

	viewport geometry.Rect

	arranger    *layout.Arranger
	analyzeLock *semaphore.Weighted
	rng         *rand.Rand
}

// NewStore returns an empty session store.
func NewStore() *Store {
	return &Store{
		arranger:    layout.NewArranger(),
		analyzeLock: semaphore.NewWeighted(1),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// State is a consistent snapshot of the store for serialization.
type State struct {
	Nodes          []common.Node `json:"nodes"`
	Edges          []common.Edge `json:"edges"`
	SelectedNodeID string        `json:"selectedNodeId,omitempty"`
	SelectedEdgeID string        `json:"selectedEdgeId,omitempty"`
	Loading        bool          `json:"loading"`
	Error          string        `json:"error,omitempty"`
}

// Snapshot returns a copy of the full session state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{
		Nodes:          append([]common.Node(nil), s.nodes...),
		Edges:          append([]common.Edge(nil), s.edges...),
		SelectedNodeID: s.selectedNodeID,
		SelectedEdgeID: s.selectedEdgeID,
		Loading:        s.loading,
		Error:          s.lastErr,
	}
}

// Graph returns copies of the current nodes and edges.
func (s *Store) Graph() ([]common.Node, []common.Edge) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]common.Node(nil), s.nodes...), append([]common.Edge(nil), s.edges...)
}

// SetViewport records the visible region of the canvas. The insert
// position of manually added nodes is derived from it.
func (s *Store) SetViewport(r geometry.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = r
}

// AddNode inserts a node, assigning it an ID and a position near the
// center of the viewport. The label is required; every other field is
// optional.
func (s *Store) AddNode(n common.Node) (common.Node, error) {
	if n.Label == "" {
		return common.Node{}, ErrNodeLabel
	}
	id, err := gonanoid.New()
	if err != nil {
		return common.Node{}, err
	}
	n.ID = id

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.viewport == (geometry.Rect{}) {
		n.Position = geometry.DefaultInsertPosition(s.nodes)
	} else {
		center := s.viewport.Center()
		n.Position = common.Point{
			X: center.X + (s.rng.Float64()*2-1)*insertJitter,
			Y: center.Y + (s.rng.Float64()*2-1)*insertJitter,
		}
	}
	s.nodes = append(s.nodes, n)
	logger.Debug("[Graph] node added", "id", n.ID, "label", n.Label)
	return n, nil
}

// NodePatch is a partial node update. Nil fields are left unchanged.
type NodePatch struct {
	Type        *common.NodeType `json:"type,omitempty"`
	Label       *string          `json:"label,omitempty"`
	Subtitle    *string          `json:"subtitle,omitempty"`
	ImageURL    *string          `json:"imageUrl,omitempty"`
	Description *string          `json:"description,omitempty"`
	Position    *common.Point    `json:"position,omitempty"`
	Width       *float64         `json:"width,omitempty"`
	Height      *float64         `json:"height,omitempty"`
}

// UpdateNode applies a patch to the node with the given ID. Updating a
// node that does not exist is a no-op.
func (s *Store) UpdateNode(id string, patch NodePatch) (common.Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.nodes {
		if s.nodes[i].ID != id {
			continue
		}
		n := &s.nodes[i]
		if patch.Type != nil {
			n.Type = *patch.Type
		}
		if patch.Label != nil {
			n.Label = *patch.Label
		}
		if patch.Subtitle != nil {
			n.Subtitle = *patch.Subtitle
		}
		if patch.ImageURL != nil {
			n.ImageURL = *patch.ImageURL
		}
		if patch.Description != nil {
			n.Description = *patch.Description
		}
		if patch.Position != nil {
			n.Position = *patch.Position
		}
		if patch.Width != nil {
			n.Width = *patch.Width
		}
		if patch.Height != nil {
			n.Height = *patch.Height
		}
		return *n, true
	}
	return common.Node{}, false
}

// RemoveNode deletes a node together with every edge attached to it and
// clears the selection if the node was selected.
func (s *Store) RemoveNode(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.nodes[:0]
	found := false
	for _, n := range s.nodes {
		if n.ID == id {
			found = true
			continue
		}
		kept = append(kept, n)
	}
	if !found {
		return false
	}
	s.nodes = kept

	edges := s.edges[:0]
	removed := 0
	for _, e := range s.edges {
		if e.Source == id || e.Target == id {
			removed++
			continue
		}
		edges = append(edges, e)
	}
	s.edges = edges

	if s.selectedNodeID == id {
		s.selectedNodeID = ""
	}
	logger.Debug("[Graph] node removed", "id", id, "cascadedEdges", removed)
	return true
}

// AddEdge inserts an edge after verifying that both endpoints exist.
// Edges referencing unknown nodes are rejected. A missing label falls
// back to the human-readable form of the edge type.
func (s *Store) AddEdge(e common.Edge) (common.Edge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addEdgeLocked(e)
}

func (s *Store) addEdgeLocked(e common.Edge) (common.Edge, bool) {
	if e.Source == "" || e.Target == "" || !s.hasNodeLocked(e.Source) || !s.hasNodeLocked(e.Target) {
		logger.Warn("[Graph] rejecting edge with unknown endpoint", "source", e.Source, "target", e.Target)
		return common.Edge{}, false
	}
	e.ID = "e" + uuid.NewString()
	if e.Label == "" && e.Type != "" {
		e.Label = common.DisplayName(e.Type)
	}
	s.edges = append(s.edges, e)
	return e, true
}

func (s *Store) hasNodeLocked(id string) bool {
	for _, n := range s.nodes {
		if n.ID == id {
			return true
		}
	}
	return false
}

// EdgePatch is a partial edge update. Nil fields are left unchanged.
type EdgePatch struct {
	Type  *common.EdgeType `json:"type,omitempty"`
	Label *string          `json:"label,omitempty"`
}

// UpdateEdge applies a patch to the edge with the given ID.
func (s *Store) UpdateEdge(id string, patch EdgePatch) (common.Edge, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.edges {
		if s.edges[i].ID != id {
			continue
		}
		e := &s.edges[i]
		if patch.Type != nil {
			e.Type = *patch.Type
		}
		if patch.Label != nil {
			e.Label = *patch.Label
		}
		return *e, true
	}
	return common.Edge{}, false
}

// RemoveEdge deletes the edge with the given ID and clears the
// selection if the edge was selected.
func (s *Store) RemoveEdge(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.edges {
		if e.ID == id {
			s.edges = append(s.edges[:i], s.edges[i+1:]...)
			if s.selectedEdgeID == id {
				s.selectedEdgeID = ""
			}
			return true
		}
	}
	return false
}

// SelectNode marks a node as selected. Selecting a node clears any edge
// selection; an empty ID clears the node selection.
func (s *Store) SelectNode(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedNodeID = id
	if id != "" {
		s.selectedEdgeID = ""
	}
}

// SelectEdge marks an edge as selected. Selecting an edge clears any
// node selection; an empty ID clears the edge selection.
func (s *Store) SelectEdge(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedEdgeID = id
	if id != "" {
		s.selectedNodeID = ""
	}
}

// ApplyLayout runs a layout engine over the current graph and stores
// the repositioned nodes. It returns the updated node list.
func (s *Store) ApplyLayout(engine layout.Engine) []common.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = layout.Apply(engine, s.nodes, s.edges)
	return append([]common.Node(nil), s.nodes...)
}

// ConvertEntitiesToNodes turns extracted entities into graph nodes,
// arranging them in a type-grouped grid. Entities whose ID already
// exists as a node are skipped, so repeated conversion of the same
// extraction result is a no-op.
func (s *Store) ConvertEntitiesToNodes(entities []common.Entity) []common.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.convertEntitiesLocked(entities)
}

func (s *Store) convertEntitiesLocked(entities []common.Entity) []common.Node {
	fresh := make([]common.Entity, 0, len(entities))
	for _, e := range entities {
		if e.ID == "" || s.hasNodeLocked(e.ID) {
			continue
		}
		fresh = append(fresh, e)
	}
	if len(fresh) == 0 {
		logger.Debug("[Graph] no new entities to convert")
		return nil
	}

	positions := s.arranger.ArrangeByType(fresh)
	added := make([]common.Node, 0, len(fresh))
	for _, e := range fresh {
		n := common.Node{
			ID:          e.ID,
			Type:        e.Type,
			Label:       e.Text,
			Description: e.Context,
			Position:    positions[e.ID],
		}
		s.nodes = append(s.nodes, n)
		added = append(added, n)
	}
	return added
}

// AnalyzeOutcome carries what an analysis run extracted and how much
// of it was merged into the graph.
type AnalyzeOutcome struct {
	Entities      []common.Entity       `json:"entities"`
	Relationships []common.Relationship `json:"relationships"`
	NodesAdded    int                   `json:"nodesAdded"`
	EdgesAdded    int                   `json:"edgesAdded"`
}

// AnalyzeText extracts entities and relationships from the text and
// merges them into the graph. Only one analysis may run at a time;
// concurrent calls fail with ErrAnalyzeInFlight. The loading flag is
// visible through Snapshot for the duration of the run, and the last
// error is recorded on the store.
func (s *Store) AnalyzeText(ctx context.Context, client ai.Client, text string) (*AnalyzeOutcome, error) {
	if !s.analyzeLock.TryAcquire(1) {
		return nil, ErrAnalyzeInFlight
	}
	defer s.analyzeLock.Release(1)

	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	result, err := Analyze(ctx, client, text)
	if err != nil {
		s.mu.Lock()
		s.lastErr = err.Error()
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := s.convertEntitiesLocked(result.Entities)
	edgesAdded := 0
	for _, rel := range result.Relationships {
		label := rel.Description
		e := common.Edge{
			Source: rel.SourceID,
			Target: rel.TargetID,
			Type:   rel.Type,
			Label:  label,
		}
		if _, ok := s.addEdgeLocked(e); ok {
			edgesAdded++
		}
	}

	logger.Info("[Graph] analysis merged", "nodes", len(added), "edges", edgesAdded)
	return &AnalyzeOutcome{
		Entities:      result.Entities,
		Relationships: result.Relationships,
		NodesAdded:    len(added),
		EdgesAdded:    edgesAdded,
	}, nil
}
