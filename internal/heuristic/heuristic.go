// apps/rl-agent/internal/heuristic/heuristic.go
//
// Letter-frequency baseline solver. Scores words by positional letter
// frequency over the remaining candidates, with a small bonus for unique
// letters and a penalty for repeats. Used as a non-learning comparison
// picker for the episode driver (PICKER=heuristic).
package heuristic

import "github.com/robalobadob/wordle/apps/rl-agent/internal/feedback"

// Solver satisfies episode.Picker without learning anything.
type Solver struct{}

// New returns a frequency-scoring solver.
func New() *Solver { return &Solver{} }

// SelectGuess picks the candidate with the best frequency score.
// A single remaining candidate is returned directly; an empty set has
// nothing to score and yields "".
func (s *Solver) SelectGuess(candidates []string) string {
	switch len(candidates) {
	case 0:
		return ""
	case 1:
		return candidates[0]
	}
	score := scorer(candidates)
	best := candidates[0]
	bestScore := score(best)
	for _, w := range candidates[1:] {
		if sc := score(w); sc > bestScore {
			best, bestScore = w, sc
		}
	}
	return best
}

// scorer builds a scoring closure from the candidate pool:
//   - sum of per-position letter frequencies,
//   - +0.05 * overall frequency for each distinct letter,
//   - -2 per repeated letter (avoid burning positions early).
func scorer(candidates []string) func(string) float64 {
	var posCounts [feedback.WordLen][26]int
	var overall [26]int
	for _, w := range candidates {
		for i := 0; i < len(w); i++ {
			posCounts[i][w[i]-'a']++
			overall[w[i]-'a']++
		}
	}
	return func(w string) float64 {
		sc := 0.0
		var seen [26]bool
		distinct := 0
		for i := 0; i < len(w); i++ {
			j := w[i] - 'a'
			sc += float64(posCounts[i][j])
			if !seen[j] {
				seen[j] = true
				distinct++
				sc += 0.05 * float64(overall[j])
			}
		}
		sc -= 2 * float64(len(w)-distinct)
		return sc
	}
}
