// Package geometry provides pure bounding-box and placement math over node
// sets. It is a leaf package used by both the layout heuristics and the
// export pipeline.
package geometry

import (
	"math"

	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/common"
)

// Default node dimensions used when a node carries no explicit size.
const (
	DefaultNodeWidth  = 160.0
	DefaultNodeHeight = 80.0

	// InsertGap is the horizontal gap between the rightmost node and a
	// newly inserted one.
	InsertGap = 40.0
)

// Rect is an axis-aligned rectangle in diagram coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the middle point of the rectangle.
func (r Rect) Center() common.Point {
	return common.Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Orientation is the dominant spread direction of a node set.
type Orientation string

const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
)

func sane(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// NodeSize returns the node's width and height, falling back to the
// defaults when unset.
func NodeSize(n common.Node) (float64, float64) {
	w := sane(n.Width)
	if w <= 0 {
		w = DefaultNodeWidth
	}
	h := sane(n.Height)
	if h <= 0 {
		h = DefaultNodeHeight
	}
	return w, h
}

// BoundingBox returns the minimal axis-aligned rectangle covering every
// node, using each node's actual or default size. An empty input yields a
// zero rect at the origin. Non-finite coordinates are treated as zero.
func BoundingBox(nodes []common.Node) Rect {
	if len(nodes) == 0 {
		return Rect{}
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		x := sane(n.Position.X)
		y := sane(n.Position.Y)
		w, h := NodeSize(n)

		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x+w)
		maxY = math.Max(maxY, y+h)
	}

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// DefaultInsertPosition returns a position for a new node. With no existing
// nodes the fixed default {50,50} is returned; otherwise the point sits to
// the right of the rightmost node's right edge by InsertGap, aligned with
// that node's top.
func DefaultInsertPosition(nodes []common.Node) common.Point {
	if len(nodes) == 0 {
		return common.Point{X: 50, Y: 50}
	}

	rightmost := nodes[0]
	rightEdge := math.Inf(-1)
	for _, n := range nodes {
		w, _ := NodeSize(n)
		edge := sane(n.Position.X) + w
		if edge > rightEdge {
			rightEdge = edge
			rightmost = n
		}
	}

	return common.Point{X: rightEdge + InsertGap, Y: sane(rightmost.Position.Y)}
}

// DetectOrientation compares the maximum pairwise horizontal distance
// between node positions against the maximum pairwise vertical distance.
// The comparison is strict, so exactly equal spreads report vertical.
func DetectOrientation(nodes []common.Node) Orientation {
	var maxDX, maxDY float64
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			dx := math.Abs(sane(nodes[i].Position.X) - sane(nodes[j].Position.X))
			dy := math.Abs(sane(nodes[i].Position.Y) - sane(nodes[j].Position.Y))
			maxDX = math.Max(maxDX, dx)
			maxDY = math.Max(maxDY, dy)
		}
	}

	if maxDX > maxDY {
		return OrientationHorizontal
	}
	return OrientationVertical
}
