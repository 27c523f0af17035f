package graph

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/zakhoudache/pastlink-nodes-sub000/internal/util"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/ai"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/common"
	"github.com/zakhoudache/pastlink-nodes-sub000/pkg/logger"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// MaxAnalyzeChars caps the length of text accepted for extraction.
const MaxAnalyzeChars = 10000

var (
	// ErrEmptyText rejects analysis of empty or whitespace-only input.
	ErrEmptyText = errors.New("text is empty")

	// ErrTextTooLong rejects input above MaxAnalyzeChars.
	ErrTextTooLong = fmt.Errorf("text exceeds the maximum length of %d characters", MaxAnalyzeChars)

	// ErrContract marks a model response that does not contain the
	// marker-delimited JSON payload the extraction contract requires.
	ErrContract = errors.New("response does not match the extraction contract")
)

type extractEntity struct {
	Text    string `json:"text" jsonschema_description:"Exact span of the entity as it appears in the source text"`
	Type    string `json:"type" jsonschema_description:"One of the provided entity types"`
	Context string `json:"context,omitempty" jsonschema_description:"Short note on the entity's role in the text"`
}

type extractRelationship struct {
	Source      string `json:"source" jsonschema_description:"Text of the source entity, as identified in the entities list"`
	Target      string `json:"target" jsonschema_description:"Text of the target entity, as identified in the entities list"`
	Type        string `json:"type" jsonschema_description:"One of the provided relationship types"`
	Description string `json:"description,omitempty" jsonschema_description:"Short explanation of how the entities are related"`
}

type extractResponse struct {
	Entities      []extractEntity       `json:"entities" jsonschema_description:"Entities identified in the text"`
	Relationships []extractRelationship `json:"relationships" jsonschema_description:"Relationships identified in the text"`
}

// ExtractResult is the typed output of a successful extraction: entities
// with assigned IDs and relationships resolved to those IDs.
type ExtractResult struct {
	Entities      []common.Entity       `json:"entities"`
	Relationships []common.Relationship `json:"relationships"`
}

func entityTypeNames() []string {
	names := make([]string, 0, len(common.NodeTypes))
	for _, t := range common.NodeTypes {
		names = append(names, string(t))
	}
	return names
}

func relationshipTypeNames() []string {
	return []string{"caused-by", "led-to", "influenced", "part-of", "opposed-to", "related-to"}
}

// parseMarkerPayload extracts the JSON payload between the result markers.
// A response missing either marker violates the contract.
func parseMarkerPayload(raw string) (string, error) {
	start := strings.Index(raw, ai.ResultStartMarker)
	if start == -1 {
		return "", fmt.Errorf("%w: missing %s marker", ErrContract, ai.ResultStartMarker)
	}
	rest := raw[start+len(ai.ResultStartMarker):]
	end := strings.Index(rest, ai.ResultEndMarker)
	if end == -1 {
		return "", fmt.Errorf("%w: missing %s marker", ErrContract, ai.ResultEndMarker)
	}
	return strings.TrimSpace(rest[:end]), nil
}

// Analyze sends the text to the extraction endpoint and parses the
// marker-delimited JSON contract out of the response. Every entity is
// assigned an ID; relationships referencing entity text that does not
// resolve to a known entity are dropped.
func Analyze(ctx context.Context, client ai.Client, text string) (*ExtractResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}
	if utf8.RuneCountInString(text) > MaxAnalyzeChars {
		return nil, ErrTextTooLong
	}

	prompt := ai.ExtractionPrompt(
		ai.GenerateSchema(extractResponse{}),
		entityTypeNames(),
		relationshipTypeNames(),
		text,
	)

	raw, err := client.GenerateCompletion(ctx, prompt)
	if err != nil {
		return nil, err
	}

	payload, err := parseMarkerPayload(raw)
	if err != nil {
		logger.Error("[Extract] contract violation", "raw", util.Truncate(raw, 500))
		return nil, err
	}

	var res extractResponse
	if err := ai.UnmarshalFlexible(payload, &res); err != nil {
		logger.Error("[Extract] payload is not valid JSON", "raw", util.Truncate(payload, 500))
		return nil, fmt.Errorf("%w: %v", ErrContract, err)
	}

	result := &ExtractResult{
		Entities:      make([]common.Entity, 0, len(res.Entities)),
		Relationships: make([]common.Relationship, 0, len(res.Relationships)),
	}

	idByText := make(map[string]string, len(res.Entities))
	for _, e := range res.Entities {
		entityText := strings.TrimSpace(e.Text)
		if entityText == "" {
			continue
		}
		if _, seen := idByText[entityText]; seen {
			continue
		}
		id, err := gonanoid.New()
		if err != nil {
			return nil, fmt.Errorf("failed to generate ID for entity: %w", err)
		}

		start, end := 0, 0
		if idx := strings.Index(text, entityText); idx != -1 {
			start = idx
			end = idx + len(entityText)
		}

		idByText[entityText] = id
		result.Entities = append(result.Entities, common.Entity{
			ID:         id,
			Type:       common.NodeType(e.Type),
			Text:       entityText,
			StartIndex: start,
			EndIndex:   end,
			Context:    e.Context,
		})
	}

	for _, rel := range res.Relationships {
		sourceID := idByText[strings.TrimSpace(rel.Source)]
		targetID := idByText[strings.TrimSpace(rel.Target)]
		if sourceID == "" || targetID == "" {
			logger.Debug("[Extract] dropping unresolved relationship", "source", rel.Source, "target", rel.Target)
			continue
		}
		result.Relationships = append(result.Relationships, common.Relationship{
			SourceID:    sourceID,
			TargetID:    targetID,
			Type:        common.EdgeType(rel.Type),
			Description: rel.Description,
		})
	}

	return result, nil
}
