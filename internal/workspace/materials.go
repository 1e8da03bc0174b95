package workspace

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/examprep/internal/achievement"
	"github.com/abhisek/examprep/internal/flashcard"
	"github.com/abhisek/examprep/internal/material"
	"github.com/abhisek/examprep/internal/store"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ImportResult reports what an import added.
type ImportResult struct {
	Material material.Material
	Concepts int
	Reused   int
	Cards    int
	Skipped  int
}

func conceptKey(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

func remapIDs(ids []string, remap map[string]string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if to, ok := remap[id]; ok {
			id = to
		}
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// ImportDeck stores a parsed deck. Cards whose content hash already
// exists are skipped, so re-importing a deck keeps review history.
// Concepts whose title is already stored are reused rather than
// duplicated, and the material is only recorded when it brings at least
// one new concept.
func (w *Workspace) ImportDeck(ctx context.Context, deck material.Deck) (ImportResult, error) {
	res := ImportResult{Material: deck.Material}
	err := w.mutate(ctx, "import_deck", func(d *store.StateData) (bool, error) {
		known := make(map[string]string, len(d.Concepts))
		for _, c := range d.Concepts {
			known[conceptKey(c.Title)] = c.ID
		}
		remap := make(map[string]string)
		var fresh []material.Concept
		for _, c := range deck.Concepts {
			if id, ok := known[conceptKey(c.Title)]; ok {
				remap[c.ID] = id
				continue
			}
			fresh = append(fresh, c)
		}
		for i := range fresh {
			fresh[i].RelatedConcepts = remapIDs(fresh[i].RelatedConcepts, remap)
		}

		for _, c := range deck.Cards {
			if flashcard.Index(d.Flashcards, c.ID) >= 0 {
				res.Skipped++
				continue
			}
			if id, ok := remap[c.ConceptID]; ok {
				c.ConceptID = id
			}
			d.Flashcards = append(d.Flashcards, c)
			res.Cards++
		}

		res.Concepts = len(fresh)
		res.Reused = len(remap)
		if len(fresh) > 0 {
			m := deck.Material
			m.ConceptIDs = make([]string, 0, len(fresh))
			for _, c := range fresh {
				m.ConceptIDs = append(m.ConceptIDs, c.ID)
			}
			addMaterial(d, m, w.clock.Now())
			d.Concepts = append(d.Concepts, fresh...)
		}
		return false, nil
	})
	if err != nil {
		return ImportResult{}, err
	}
	w.log.Info("deck imported",
		"material", deck.Material.Name,
		"concepts", res.Concepts,
		"reused", res.Reused,
		"cards", res.Cards,
		"skipped", res.Skipped)
	return res, nil
}

// AddMaterial stores a material without extracting anything from it.
func (w *Workspace) AddMaterial(ctx context.Context, m material.Material) error {
	return w.mutate(ctx, "add_material", func(d *store.StateData) (bool, error) {
		if m.ID == "" {
			m.ID = w.newID()
		}
		addMaterial(d, m, w.clock.Now())
		return false, nil
	})
}

func addMaterial(d *store.StateData, m material.Material, now time.Time) {
	d.Materials = append(d.Materials, m)
	for _, a := range d.Achievements {
		if a.ID == achievement.FirstUpload && a.Current == 0 {
			achievement.Unlock(d.Achievements, achievement.FirstUpload, now)
			break
		}
	}
}

// RemoveMaterial deletes a material with its concepts, their flashcards
// and their mastery entries.
func (w *Workspace) RemoveMaterial(ctx context.Context, id string) error {
	return w.mutate(ctx, "remove_material", func(d *store.StateData) (bool, error) {
		i := slices.IndexFunc(d.Materials, func(m material.Material) bool { return m.ID == id })
		if i < 0 {
			return false, fmt.Errorf("material %s: %w", id, ErrNotFound)
		}
		d.Materials = slices.Delete(d.Materials, i, i+1)

		gone := make(map[string]bool)
		d.Concepts = slices.DeleteFunc(d.Concepts, func(c material.Concept) bool {
			if c.MaterialID == id {
				gone[c.ID] = true
				return true
			}
			return false
		})
		d.Flashcards = slices.DeleteFunc(d.Flashcards, func(f flashcard.Flashcard) bool {
			return gone[f.ConceptID]
		})
		for cid := range gone {
			d.Progress.RemoveConcept(cid)
		}
		return len(gone) > 0, nil
	})
}

// Materials returns all materials.
func (w *Workspace) Materials() []material.Material {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]material.Material{}, w.data.Materials...)
}

// AddConcept stores a concept.
func (w *Workspace) AddConcept(ctx context.Context, c material.Concept) error {
	return w.mutate(ctx, "add_concept", func(d *store.StateData) (bool, error) {
		if c.ID == "" {
			c.ID = w.newID()
		}
		d.Concepts = append(d.Concepts, c)
		return false, nil
	})
}

// UpdateConceptMastery sets a concept's mastery level (clamped to 0-100)
// on both the concept and the progress aggregate.
func (w *Workspace) UpdateConceptMastery(ctx context.Context, id string, level int) error {
	return w.mutate(ctx, "update_mastery", func(d *store.StateData) (bool, error) {
		i := slices.IndexFunc(d.Concepts, func(c material.Concept) bool { return c.ID == id })
		if i < 0 {
			return false, fmt.Errorf("concept %s: %w", id, ErrNotFound)
		}
		d.Progress.SetConceptMastery(id, level)
		d.Concepts[i].MasteryLevel = d.Progress.ConceptMastery[id]
		return true, nil
	})
}

// Concepts returns all concepts.
func (w *Workspace) Concepts() []material.Concept {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]material.Concept{}, w.data.Concepts...)
}

// AddResource validates and stores a catalog resource.
func (w *Workspace) AddResource(ctx context.Context, r material.Resource) error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("validate resource: %w", err)
	}
	return w.mutate(ctx, "add_resource", func(d *store.StateData) (bool, error) {
		if r.ID == "" {
			r.ID = w.newID()
		}
		d.Resources = append(d.Resources, r)
		return false, nil
	})
}

// Resources returns the resource catalog.
func (w *Workspace) Resources() []material.Resource {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]material.Resource{}, w.data.Resources...)
}
