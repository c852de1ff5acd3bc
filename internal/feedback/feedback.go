// apps/rl-agent/internal/feedback/feedback.go
//
// Guess scoring and candidate filtering for the RL agent.
// Responsibilities:
//   - Score a guess against a secret with the classic two-pass Wordle
//     algorithm (correct duplicate-letter handling).
//   - Decide whether a candidate word is consistent with an observed
//     feedback pattern.
//   - Filter a candidate list down to the words still consistent with
//     a (guess, feedback) observation.
//
// Notes:
//   - Feedback codes use the compact wire form G/Y/X so they serialize
//     directly into session logs and reports.
//   - Malformed words (wrong length, non a-z) are rejected loudly;
//     silently truncating would corrupt candidate filtering downstream.
package feedback

import (
	"encoding/json"
	"fmt"
)

// WordLen is the fixed word length for the whole system.
const WordLen = 5

// Code is the evaluation result for a single letter of a guess.
// Possible values:
//   - "G": letter is correct and in the correct position (green).
//   - "Y": letter exists in the secret but in a different position (yellow).
//   - "X": letter is not available in the secret (gray).
type Code string

const (
	Green  Code = "G"
	Yellow Code = "Y"
	Gray   Code = "X"
)

// Feedback is the ordered per-position result for one guess.
// Invariant: len(Feedback) == WordLen.
type Feedback []Code

// String renders the compact wire form, e.g. "XXGXG".
func (f Feedback) String() string {
	b := make([]byte, len(f))
	for i, c := range f {
		b[i] = c[0]
	}
	return string(b)
}

// Equal reports whether two feedback patterns are identical.
func (f Feedback) Equal(other Feedback) bool {
	if len(f) != len(other) {
		return false
	}
	for i := range f {
		if f[i] != other[i] {
			return false
		}
	}
	return true
}

// AllGreen reports whether every position is an exact match.
func (f Feedback) AllGreen() bool {
	for _, c := range f {
		if c != Green {
			return false
		}
	}
	return len(f) == WordLen
}

// MarshalJSON encodes the compact wire form ("GYXXY") used in session
// logs and reports.
func (f Feedback) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.String())
}

// UnmarshalJSON accepts the compact wire form.
func (f *Feedback) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	fb, err := Parse(s)
	if err != nil {
		return err
	}
	*f = fb
	return nil
}

// Parse converts a compact wire string ("GYXXY") back into a Feedback.
func Parse(s string) (Feedback, error) {
	if len(s) != WordLen {
		return nil, fmt.Errorf("feedback: pattern %q is not %d codes", s, WordLen)
	}
	fb := make(Feedback, WordLen)
	for i := 0; i < WordLen; i++ {
		switch c := Code(s[i : i+1]); c {
		case Green, Yellow, Gray:
			fb[i] = c
		default:
			return nil, fmt.Errorf("feedback: bad code %q in pattern %q", c, s)
		}
	}
	return fb, nil
}

// Compute scores guess against secret with the standard two-pass algorithm.
//
// Pass 1:
//   - Mark exact matches Green.
//   - Count remaining (non-green) secret letters by letter index.
//
// Pass 2:
//   - For each non-green guess letter: if there is remaining count for that
//     letter, mark Yellow and decrement; otherwise mark Gray.
//
// This ensures correct behavior with repeated letters in both secret and
// guess: the Yellow+Green total for any letter never exceeds that letter's
// occurrence count in the secret.
func Compute(secret, guess string) (Feedback, error) {
	if err := checkWord(secret); err != nil {
		return nil, err
	}
	if err := checkWord(guess); err != nil {
		return nil, err
	}

	fb := make(Feedback, WordLen)

	// Letter frequency for the non-green secret positions (a-z).
	var counts [26]int

	for i := 0; i < WordLen; i++ {
		if guess[i] == secret[i] {
			fb[i] = Green
		} else {
			counts[secret[i]-'a']++
		}
	}

	for i := 0; i < WordLen; i++ {
		if fb[i] == Green {
			continue
		}
		j := guess[i] - 'a'
		if counts[j] > 0 {
			fb[i] = Yellow
			counts[j]--
		} else {
			fb[i] = Gray
		}
	}
	return fb, nil
}

// Matches reports whether candidate would have produced fb for guess were
// it the secret. It runs the same two-pass scoring as Compute, so
// duplicate-letter semantics stay consistent with the engine.
// A malformed candidate can never be consistent and reports false.
func Matches(candidate, guess string, fb Feedback) bool {
	got, err := Compute(candidate, guess)
	if err != nil {
		return false
	}
	return got.Equal(fb)
}

// Filter returns the candidates still consistent with (guess, fb),
// excluding the guess itself so an already-disproved word cannot be
// selected again. The result is a fresh slice and is never longer than
// the input.
func Filter(candidates []string, guess string, fb Feedback) []string {
	out := make([]string, 0, len(candidates))
	for _, w := range candidates {
		if w == guess {
			continue
		}
		if Matches(w, guess, fb) {
			out = append(out, w)
		}
	}
	return out
}

// checkWord validates the fixed length and a-z alphabet.
func checkWord(w string) error {
	if len(w) != WordLen {
		return fmt.Errorf("feedback: word %q is not %d letters", w, WordLen)
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return fmt.Errorf("feedback: word %q contains non a-z letter", w)
		}
	}
	return nil
}
