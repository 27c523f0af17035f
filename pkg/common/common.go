package common

import "time"

// Point is a position in diagram coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node represents a vertex in the historical knowledge graph. Each node
// carries display metadata and a 2-D position in diagram space.
//
// A node's position is always defined once it enters the renderable set;
// callers that cannot compute one use the zero point.
type Node struct {
	ID          string   `json:"id"`
	Type        NodeType `json:"type"`
	Label       string   `json:"label"`
	Subtitle    string   `json:"subtitle,omitempty"`
	ImageURL    string   `json:"imageUrl,omitempty"`
	Description string   `json:"description,omitempty"`
	Position    Point    `json:"position"`
	Width       float64  `json:"width,omitempty"`
	Height      float64  `json:"height,omitempty"`
}

// Edge represents a directed relationship between two nodes. Source and
// Target must reference existing node IDs at creation time. Multiple edges
// between the same pair of nodes are permitted.
type Edge struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   EdgeType `json:"type"`
	Label  string   `json:"label,omitempty"`
}

// Entity is a pre-graph extraction result. Entities are promoted to nodes
// by an explicit convert step; promotion is idempotent by ID.
type Entity struct {
	ID         string   `json:"id"`
	Type       NodeType `json:"type"`
	Text       string   `json:"text"`
	StartIndex int      `json:"startIndex"`
	EndIndex   int      `json:"endIndex"`
	Context    string   `json:"context,omitempty"`
}

// Relationship is an extracted relationship whose endpoints have been
// resolved to entity IDs. Relationships whose endpoints could not be
// resolved are dropped before this type is produced.
type Relationship struct {
	SourceID    string   `json:"sourceId"`
	TargetID    string   `json:"targetId"`
	Type        EdgeType `json:"type"`
	Description string   `json:"description,omitempty"`
}

// Highlight is a user-marked span of source text. Highlights live in their
// own persisted store and are independent of the node/edge model.
type Highlight struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	From      int       `json:"from"`
	To        int       `json:"to"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
