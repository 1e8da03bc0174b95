// Package material turns study material into concepts and flashcards.
package material

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/abhisek/examprep/internal/flashcard"
)

// Type is the kind of uploaded material.
type Type string

const (
	TypePDF   Type = "pdf"
	TypeDoc   Type = "doc"
	TypeImage Type = "image"
	TypeText  Type = "text"
	TypeVideo Type = "video"
)

// TypeOf guesses a material type from a file name.
func TypeOf(name string) Type {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return TypePDF
	case ".doc", ".docx", ".odt", ".rtf":
		return TypeDoc
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
		return TypeImage
	case ".mp4", ".mov", ".webm", ".mkv":
		return TypeVideo
	}
	return TypeText
}

// Material is an uploaded study source. Size is in bytes.
type Material struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       Type      `json:"type"`
	Content    string    `json:"content"`
	UploadedAt time.Time `json:"uploaded_at"`
	Size       int64     `json:"size"`
	ConceptIDs []string  `json:"concept_ids"`
}

// Concept is a topic extracted from a material.
type Concept struct {
	ID              string               `json:"id"`
	MaterialID      string               `json:"material_id"`
	Title           string               `json:"title"`
	Description     string               `json:"description"`
	Difficulty      flashcard.Difficulty `json:"difficulty"`
	MasteryLevel    int                  `json:"mastery_level"`
	RelatedConcepts []string             `json:"related_concepts"`
}

// ResourceType is the medium of a catalog resource.
type ResourceType string

const (
	ResourceArticle ResourceType = "article"
	ResourceVideo   ResourceType = "video"
	ResourcePodcast ResourceType = "podcast"
	ResourceBook    ResourceType = "book"
	ResourceCourse  ResourceType = "course"
)

// Resource is an external learning resource. EstimatedTime is in minutes.
type Resource struct {
	ID            string       `json:"id"`
	Title         string       `json:"title" validate:"required"`
	Description   string       `json:"description"`
	URL           string       `json:"url" validate:"required,url"`
	Type          ResourceType `json:"type" validate:"oneof=article video podcast book course"`
	Topic         string       `json:"topic"`
	Difficulty    string       `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	EstimatedTime int          `json:"estimated_time" validate:"gte=0"`
	Rating        float64      `json:"rating" validate:"gte=0,lte=5"`
}

// Deck is everything extracted from one material.
type Deck struct {
	Material Material
	Concepts []Concept
	Cards    []flashcard.Flashcard
}
