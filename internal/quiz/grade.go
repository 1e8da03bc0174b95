package quiz

import "math"

// Grade scores answers against questions. Weak lists the concept of
// every missed question in question order; Strong every hit.
type Grade struct {
	Correct int
	Total   int
	Score   int
	Weak    []string
	Strong  []string
}

// GradeAnswers grades answers keyed by question id. An unanswered
// question counts as missed. An empty quiz scores 0.
func GradeAnswers(questions []Question, answers map[string]Answer) Grade {
	g := Grade{Total: len(questions), Weak: []string{}, Strong: []string{}}
	for _, q := range questions {
		if q.CorrectAnswer.Matches(answers[q.ID]) {
			g.Correct++
			g.Strong = append(g.Strong, q.ConceptID)
		} else {
			g.Weak = append(g.Weak, q.ConceptID)
		}
	}
	if g.Total > 0 {
		g.Score = int(math.Round(float64(g.Correct) / float64(g.Total) * 100))
	}
	return g
}
