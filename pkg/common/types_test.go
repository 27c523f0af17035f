package common

import "testing"

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		in   EdgeType
		want string
	}{
		{name: "hyphenated", in: "caused-by", want: "Caused By"},
		{name: "single word", in: "influences", want: "Influences"},
		{name: "underscored", in: "part_of", want: "Part Of"},
		{name: "multibyte initial", in: "était-allié", want: "Était Allié"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayName(tt.in); got != tt.want {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestStyleFallbacks(t *testing.T) {
	if got := StyleForNodeType("political"); got != defaultNodeStyle {
		t.Errorf("unknown node type should use the default style, got %+v", got)
	}
	if got := StyleForEdgeType("opposed-to"); got != defaultEdgeStyle {
		t.Errorf("unknown edge type should use the default style, got %+v", got)
	}
	if StyleForNodeType(NodeTypePerson) == defaultNodeStyle {
		t.Errorf("known node type should not use the default style")
	}
}
