package store

import (
	"encoding/json"
	"fmt"

	"github.com/abhisek/examprep/internal/schema"
)

// StateSchema describes an exported state document.
var StateSchema = &schema.Schema{
	Name: "examprep-state",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"schema_version": map[string]any{"type": "string", "pattern": `^v[0-9]+\.[0-9]+\.[0-9]+`},
			"materials":      arrayOf(objectWith("id", "name")),
			"concepts":       arrayOf(objectWith("id", "title")),
			"flashcards": arrayOf(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id":             map[string]any{"type": "string", "minLength": 1},
					"front":          map[string]any{"type": "string"},
					"back":           map[string]any{"type": "string"},
					"review_count":   map[string]any{"type": "integer", "minimum": 0},
					"correct_streak": map[string]any{"type": "integer", "minimum": 0},
				},
				"required": []any{"id", "front", "back"},
			}),
			"quizzes":       arrayOf(objectWith("id", "title")),
			"quiz_attempts": arrayOf(objectWith("id", "quiz_id")),
			"sessions": arrayOf(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"duration":      map[string]any{"type": "integer", "minimum": 0},
					"activity_type": map[string]any{"enum": []any{"flashcard", "quiz", "concept_review", "material_upload"}},
					"performance":   map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
				},
				"required": []any{"date", "activity_type"},
			}),
			"progress": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"average_score": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
					"streak_days":   map[string]any{"type": "integer", "minimum": 0},
					"concept_mastery": map[string]any{
						"type":                 "object",
						"additionalProperties": map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
					},
				},
			},
			"achievements": arrayOf(objectWith("id")),
			"resources":    arrayOf(objectWith("id", "title")),
			"study_plans":  arrayOf(objectWith("id", "title")),
			"stats":        map[string]any{"type": "object"},
		},
	},
}

func arrayOf(item map[string]any) map[string]any {
	return map[string]any{"type": []any{"array", "null"}, "items": item}
}

func objectWith(required ...string) map[string]any {
	req := make([]any, len(required))
	for i, r := range required {
		req[i] = r
	}
	return map[string]any{"type": "object", "required": req}
}

// DecodeState parses a stored document and migrates it to SchemaVersion.
func DecodeState(raw []byte) (StateData, error) {
	var d StateData
	if err := json.Unmarshal(raw, &d); err != nil {
		return StateData{}, fmt.Errorf("unmarshal state: %w", err)
	}
	if err := Migrate(&d); err != nil {
		return StateData{}, err
	}
	return d, nil
}

// ImportState validates an exported document against StateSchema, then
// decodes it.
func ImportState(raw []byte) (StateData, error) {
	if err := schema.Validate(StateSchema, raw); err != nil {
		return StateData{}, err
	}
	return DecodeState(raw)
}

// ExportState renders d as an indented JSON document.
func ExportState(d StateData) ([]byte, error) {
	if d.SchemaVersion == "" {
		d.SchemaVersion = SchemaVersion
	}
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal state: %w", err)
	}
	return b, nil
}
