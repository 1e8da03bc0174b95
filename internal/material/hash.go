package material

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// Normalize joins a card's parts after lowercasing, trimming and
// normalizing line endings, one part per line.
func Normalize(front, back, concept string) string {
	part := func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimSpace(s)
		return strings.ReplaceAll(s, "\r\n", "\n")
	}
	return strings.Join([]string{part(front), part(back), part(concept)}, "\n")
}

// CardID returns the content hash used as a flashcard id, so the same
// card imported twice keeps one identity.
func CardID(front, back, concept string) string {
	sum := sha256.Sum256([]byte(Normalize(front, back, concept)))
	return fmt.Sprintf("%x", sum)
}
