package layout

import (
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/common"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/geometry"
)

// Direction selects the primary flow axis of the layered layout.
type Direction string

const (
	// DirectionVertical arranges layers top to bottom.
	DirectionVertical Direction = "vertical"
	// DirectionHorizontal arranges layers left to right.
	DirectionHorizontal Direction = "horizontal"
)

// Layered assigns connected nodes to layers by their longest path from a
// root and stacks each layer along the cross axis. Isolated nodes are not
// placed; the adapter in Apply falls back to their existing position.
type Layered struct {
	Direction    Direction
	LayerSpacing float64
	NodeSpacing  float64
}

// NewLayered creates a layered engine with default spacing.
func NewLayered(direction Direction) *Layered {
	if direction == "" {
		direction = DirectionVertical
	}
	return &Layered{
		Direction:    direction,
		LayerSpacing: 100,
		NodeSpacing:  60,
	}
}

// Solve computes center-anchored positions for every node that participates
// in at least one edge. Edges referencing unknown nodes are ignored.
func (l *Layered) Solve(nodes []common.Node, edges []common.Edge) map[string]common.Point {
	byID := make(map[string]common.Node, len(nodes))
	order := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if _, seen := byID[n.ID]; seen {
			continue
		}
		byID[n.ID] = n
		order = append(order, n.ID)
	}

	succ := make(map[string][]string)
	indegree := make(map[string]int)
	connected := make(map[string]bool)
	for _, e := range edges {
		if _, ok := byID[e.Source]; !ok {
			continue
		}
		if _, ok := byID[e.Target]; !ok {
			continue
		}
		succ[e.Source] = append(succ[e.Source], e.Target)
		indegree[e.Target]++
		connected[e.Source] = true
		connected[e.Target] = true
	}

	layers := make(map[string]int)
	for id := range connected {
		layers[id] = 0
	}

	// Longest-path layering by relaxation. The iteration cap keeps cyclic
	// graphs from looping forever.
	for range len(connected) {
		changed := false
		for id := range connected {
			for _, next := range succ[id] {
				if layers[next] < layers[id]+1 {
					layers[next] = layers[id] + 1
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	// Group by layer in the original node order so placement is stable.
	byLayer := make(map[int][]string)
	maxLayer := 0
	for _, id := range order {
		if !connected[id] {
			continue
		}
		layer := layers[id]
		byLayer[layer] = append(byLayer[layer], id)
		if layer > maxLayer {
			maxLayer = layer
		}
	}

	positions := make(map[string]common.Point, len(layers))
	for layer := 0; layer <= maxLayer; layer++ {
		cross := 0.0
		for _, id := range byLayer[layer] {
			w, h := geometry.NodeSize(byID[id])
			main := float64(layer) * (geometry.DefaultNodeHeight + l.LayerSpacing)
			if l.Direction == DirectionHorizontal {
				main = float64(layer) * (geometry.DefaultNodeWidth + l.LayerSpacing)
				positions[id] = common.Point{X: main + w/2, Y: cross + h/2}
				cross += h + l.NodeSpacing
			} else {
				positions[id] = common.Point{X: cross + w/2, Y: main + h/2}
				cross += w + l.NodeSpacing
			}
		}
	}

	return positions
}
