package ai

import "testing"

func TestUnmarshalFlexible(t *testing.T) {
	type result struct {
		Label string `json:"label"`
		Count int    `json:"count,omitempty"`
	}

	tests := []struct {
		name  string
		input string
		want  result
	}{
		{
			name:  "valid json object",
			input: `{"label":"French Revolution"}`,
			want:  result{Label: "French Revolution"},
		},
		{
			name:  "unquoted key and single quotes",
			input: `{label: 'French Revolution'}`,
			want:  result{Label: "French Revolution"},
		},
		{
			name:  "trailing comma",
			input: `{"label":"French Revolution",}`,
			want:  result{Label: "French Revolution"},
		},
		{
			name:  "missing end bracket",
			input: `{"label":"French Revolution`,
			want:  result{Label: "French Revolution"},
		},
		{
			name:  "stringified object",
			input: `"{\"label\": \"French Revolution\"}"`,
			want:  result{Label: "French Revolution"},
		},
		{
			name:  "duplicate leading brace",
			input: "{\n{\n  \"label\": \"French Revolution\"\n}\n",
			want:  result{Label: "French Revolution"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got result
			if err := UnmarshalFlexible(tc.input, &got); err != nil {
				t.Fatalf("UnmarshalFlexible() error = %v", err)
			}
			if got != tc.want {
				t.Fatalf("UnmarshalFlexible() got = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestUnmarshalFlexibleUnrecoverable(t *testing.T) {
	var got struct {
		Label string `json:"label"`
	}
	if err := UnmarshalFlexible("no json here", &got); err == nil {
		t.Fatal("UnmarshalFlexible() expected error for unrecoverable input")
	}
}
