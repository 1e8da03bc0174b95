package quiz

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/examprep/internal/schema"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// DocumentSchema describes an importable quiz file.
var DocumentSchema = &schema.Schema{
	Name: "quiz-document",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":          map[string]any{"type": "string"},
			"title":       map[string]any{"type": "string", "minLength": 1},
			"description": map[string]any{"type": "string"},
			"time_limit":  map[string]any{"type": "integer", "minimum": 0},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []any{"easy", "medium", "hard", "mixed"},
			},
			"concept_ids": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":       map[string]any{"type": "string"},
						"question": map[string]any{"type": "string", "minLength": 1},
						"type": map[string]any{
							"type": "string",
							"enum": []any{"multiple_choice", "true_false", "fill_blank", "essay"},
						},
						"options": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
						"correct_answer": map[string]any{
							"oneOf": []any{
								map[string]any{"type": "string"},
								map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
							},
						},
						"explanation": map[string]any{"type": "string"},
						"concept_id":  map[string]any{"type": "string"},
						"difficulty": map[string]any{
							"type": "string",
							"enum": []any{"easy", "medium", "hard"},
						},
					},
					"required": []any{"question", "type", "correct_answer"},
				},
			},
		},
		"required": []any{"title", "questions"},
	},
}

// Decode parses and validates a quiz document. Missing quiz and question
// ids are filled by newID, and every question's QuizID is set. A document
// without a time_limit key gets defaultTimeLimit; an explicit 0 stays
// untimed.
func Decode(raw []byte, newID func() string, defaultTimeLimit int) (Quiz, error) {
	if err := schema.Validate(DocumentSchema, raw); err != nil {
		return Quiz{}, err
	}

	var q Quiz
	if err := json.Unmarshal(raw, &q); err != nil {
		return Quiz{}, fmt.Errorf("decode quiz: %w", err)
	}
	var limit struct {
		TimeLimit *int `json:"time_limit"`
	}
	if err := json.Unmarshal(raw, &limit); err != nil {
		return Quiz{}, fmt.Errorf("decode quiz: %w", err)
	}
	if limit.TimeLimit == nil {
		q.TimeLimit = defaultTimeLimit
	}

	if q.ID == "" {
		q.ID = newID()
	}
	if q.Difficulty == "" {
		q.Difficulty = DifficultyMixed
	}
	for i := range q.Questions {
		if q.Questions[i].ID == "" {
			q.Questions[i].ID = newID()
		}
		q.Questions[i].QuizID = q.ID
	}
	if len(q.ConceptIDs) == 0 {
		q.ConceptIDs = conceptsOf(q.Questions)
	}

	if err := validate.Struct(q); err != nil {
		return Quiz{}, fmt.Errorf("validate quiz: %w", err)
	}
	return q, nil
}

func conceptsOf(qs []Question) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, q := range qs {
		if q.ConceptID == "" || seen[q.ConceptID] {
			continue
		}
		seen[q.ConceptID] = true
		ids = append(ids, q.ConceptID)
	}
	return ids
}
