// Package layout computes node positions for the diagram. It contains a
// layered solver for formal auto-layout and a cheap bucketed-grid heuristic
// used right after bulk extraction.
package layout

import (
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/common"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/geometry"
)

// Engine solves node placement. Implementations return center-anchored
// positions keyed by node ID and may omit nodes they cannot place.
type Engine interface {
	Solve(nodes []common.Node, edges []common.Edge) map[string]common.Point
}

// Apply runs the engine and maps its center-based coordinates onto the
// nodes' top-left anchors. Nodes omitted from the result keep their
// pre-existing position; a node that never had one ends up at {0,0}.
func Apply(engine Engine, nodes []common.Node, edges []common.Edge) []common.Node {
	positions := engine.Solve(nodes, edges)

	out := make([]common.Node, len(nodes))
	copy(out, nodes)
	for i := range out {
		center, ok := positions[out[i].ID]
		if !ok {
			continue
		}
		w, h := geometry.NodeSize(out[i])
		out[i].Position = common.Point{X: center.X - w/2, Y: center.Y - h/2}
	}
	return out
}
