package ai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Markers delimiting the JSON payload in an extraction response. The model
// is instructed to emit exactly one JSON object between them.
const (
	ResultStartMarker = "RESULT_START:"
	ResultEndMarker   = "RESULT_END:"
)

const extractPromptTemplate = `You are a historian's assistant. Identify the historical entities and the relationships between them in the text below.

Entity types: %s.
Relationship types: %s.

Respond with a single JSON object matching this schema:
%s

Relationships reference entities by their exact "text" value. Output the JSON object between the literal markers %s and %s, each on its own line, and nothing else between them.

Text:
%s`

const contextPromptTemplate = `Write a short historical context note, in markdown, for the following item on a knowledge graph. Two or three paragraphs, factual tone, no headings.

Label: %s
Type: %s
Description: %s`

// ExtractionPrompt builds the fixed extraction instruction for the given
// user text. The schema argument (see GenerateSchema) pins down the result
// shape the parser expects between the markers.
func ExtractionPrompt(schema any, entityTypes []string, relationshipTypes []string, text string) string {
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		schemaJSON = []byte("{}")
	}

	return fmt.Sprintf(
		extractPromptTemplate,
		strings.Join(entityTypes, ", "),
		strings.Join(relationshipTypes, ", "),
		string(schemaJSON),
		ResultStartMarker,
		ResultEndMarker,
		text,
	)
}

// ContextPrompt builds the instruction used to generate the side-panel
// context note for a single node.
func ContextPrompt(label, nodeType, description string) string {
	if description == "" {
		description = "(none)"
	}
	return fmt.Sprintf(contextPromptTemplate, label, nodeType, description)
}
