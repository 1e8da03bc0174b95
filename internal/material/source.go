package material

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// ErrUnsupportedType is returned for material that cannot be parsed into cards.
var ErrUnsupportedType = errors.New("unsupported material type")

// LoadFile parses one markdown or text file into a deck.
func LoadFile(path string, newID func() string, now time.Time) (Deck, error) {
	if t := TypeOf(path); t != TypeText {
		return Deck{}, fmt.Errorf("%s (%s): %w", path, t, ErrUnsupportedType)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return Deck{}, fmt.Errorf("read %s: %w", path, err)
	}
	d, err := ParseDeck(filepath.Base(path), src, newID, now)
	if err != nil {
		return Deck{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return d, nil
}

// LoadDir parses every .md file under dir, in lexical path order.
// Hidden directories such as .git are skipped.
func LoadDir(dir string, newID func() string, now time.Time) ([]Deck, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".md") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(paths)

	decks := make([]Deck, 0, len(paths))
	for _, p := range paths {
		d, err := LoadFile(p, newID, now)
		if err != nil {
			return nil, err
		}
		if rel, err := filepath.Rel(dir, p); err == nil {
			d.Material.Name = filepath.ToSlash(rel)
		}
		decks = append(decks, d)
	}
	return decks, nil
}
