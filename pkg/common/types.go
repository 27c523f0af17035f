package common

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// NodeType classifies a node. The canonical set is closed; values outside
// it are carried through unchanged and degrade to the default style.
type NodeType string

const (
	NodeTypePerson  NodeType = "person"
	NodeTypePlace   NodeType = "place"
	NodeTypeEvent   NodeType = "event"
	NodeTypeConcept NodeType = "concept"
)

// NodeTypes lists the canonical node types in display order.
var NodeTypes = []NodeType{NodeTypePerson, NodeTypePlace, NodeTypeEvent, NodeTypeConcept}

// EdgeType classifies a relationship. Extraction may produce free-form
// values (caused-by, led-to, ...); unknown values degrade to the default
// style and derive their label via DisplayName.
type EdgeType string

const (
	EdgeTypeCauses       EdgeType = "causes"
	EdgeTypeInfluences   EdgeType = "influences"
	EdgeTypeParticipates EdgeType = "participates"
	EdgeTypeLocated      EdgeType = "located"
)

// NodeStyle describes how a node type is rendered.
type NodeStyle struct {
	Color string
	Icon  string
}

// EdgeStyle describes how an edge type is rendered.
type EdgeStyle struct {
	Color  string
	Dashed bool
}

var defaultNodeStyle = NodeStyle{Color: "#64748b", Icon: "circle"}

var defaultEdgeStyle = EdgeStyle{Color: "#94a3b8"}

// StyleForNodeType returns the visual style for a node type. Unknown types
// return the default style, never an error.
func StyleForNodeType(t NodeType) NodeStyle {
	switch t {
	case NodeTypePerson:
		return NodeStyle{Color: "#3b82f6", Icon: "user"}
	case NodeTypePlace:
		return NodeStyle{Color: "#22c55e", Icon: "map-pin"}
	case NodeTypeEvent:
		return NodeStyle{Color: "#ef4444", Icon: "calendar"}
	case NodeTypeConcept:
		return NodeStyle{Color: "#a855f7", Icon: "lightbulb"}
	default:
		return defaultNodeStyle
	}
}

// StyleForEdgeType returns the visual style for an edge type. Unknown types
// return the default style, never an error.
func StyleForEdgeType(t EdgeType) EdgeStyle {
	switch t {
	case EdgeTypeCauses:
		return EdgeStyle{Color: "#ef4444"}
	case EdgeTypeInfluences:
		return EdgeStyle{Color: "#3b82f6"}
	case EdgeTypeParticipates:
		return EdgeStyle{Color: "#22c55e"}
	case EdgeTypeLocated:
		return EdgeStyle{Color: "#eab308", Dashed: true}
	default:
		return defaultEdgeStyle
	}
}

// DisplayName turns a relationship type into human-readable label text,
// e.g. "caused-by" becomes "Caused By".
func DisplayName(t EdgeType) string {
	words := strings.FieldsFunc(string(t), func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
