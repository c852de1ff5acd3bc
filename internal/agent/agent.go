// apps/rl-agent/internal/agent/agent.go
//
// Tabular Q-learning agent over guess words.
// Responsibilities:
//   - Own the word -> value table (0.0 for unseen words).
//   - Epsilon-greedy guess selection over the current candidate set.
//   - One-step TD update toward reward + gamma * best remaining value.
//   - Best-effort JSON persistence of the table and hyperparameters.
//
// Notes:
//   - Exploration draws from the FULL word list, not the candidate set,
//     so novel words keep entering the table.
//   - Greedy ties resolve to the first candidate in iteration order;
//     selection is deterministic for a given candidate ordering.
//   - Load/Save never surface errors: a missing or corrupt table file
//     means starting with no prior learning, not a crash.
package agent

import (
	"encoding/json"
	"math/rand/v2"
	"os"
	"sort"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/maps"
)

// Default hyperparameters.
const (
	DefaultAlpha   = 0.1
	DefaultGamma   = 0.9
	DefaultEpsilon = 0.3

	// DefaultPersistPath is where the value table is stored between runs.
	DefaultPersistPath = "q_values.json"
)

// Config carries the agent hyperparameters and persistence location.
type Config struct {
	Alpha       float64 // learning rate, (0,1]
	Gamma       float64 // discount factor, [0,1]
	Epsilon     float64 // exploration probability, [0,1]
	PersistPath string
}

// DefaultConfig returns the standard hyperparameters.
func DefaultConfig() Config {
	return Config{
		Alpha:       DefaultAlpha,
		Gamma:       DefaultGamma,
		Epsilon:     DefaultEpsilon,
		PersistPath: DefaultPersistPath,
	}
}

// Agent is a single-owner tabular learner. Not safe for concurrent use;
// the process runs one agent on one goroutine.
type Agent struct {
	words []string
	q     map[string]float64

	alpha   float64
	gamma   float64
	epsilon float64

	persistPath string
}

// New constructs an Agent over the full word list and loads any persisted
// value table from cfg.PersistPath (best effort).
func New(words []string, cfg Config) *Agent {
	a := &Agent{
		words:       words,
		q:           make(map[string]float64),
		alpha:       cfg.Alpha,
		gamma:       cfg.Gamma,
		epsilon:     cfg.Epsilon,
		persistPath: cfg.PersistPath,
	}
	a.Load()
	return a
}

// Q returns the learned value for w, 0.0 if never seen.
func (a *Agent) Q(w string) float64 { return a.q[w] }

// Epsilon returns the current exploration probability.
func (a *Agent) Epsilon() float64 { return a.epsilon }

// SetEpsilon overrides the exploration probability (used to force pure
// exploitation during play or evaluation).
func (a *Agent) SetEpsilon(e float64) { a.epsilon = e }

// TableSize returns the number of words with a stored value.
func (a *Agent) TableSize() int { return len(a.q) }

// SelectGuess picks the next guess from candidates.
//
// With probability epsilon it explores: a uniformly random word from the
// full list. Otherwise it exploits: the candidate with the highest current
// value, first-encountered winning ties. An empty candidate set falls back
// to the full list rather than failing.
func (a *Agent) SelectGuess(candidates []string) string {
	pool := candidates
	if len(pool) == 0 {
		pool = a.words
	}
	if rand.Float64() < a.epsilon {
		return a.words[rand.IntN(len(a.words))]
	}
	best := pool[0]
	bestQ := a.q[best]
	for _, w := range pool[1:] {
		if q := a.q[w]; q > bestQ {
			best, bestQ = w, q
		}
	}
	return best
}

// Update applies the one-step temporal-difference rule:
//
//	Q[guess] += alpha * (reward + gamma*bestNext - Q[guess])
//
// where bestNext is the maximum value among the remaining candidates
// (0.0 when none remain).
func (a *Agent) Update(guess string, reward float64, candidates []string) {
	bestNext := 0.0
	for i, w := range candidates {
		if q := a.q[w]; i == 0 || q > bestNext {
			bestNext = q
		}
	}
	a.q[guess] += a.alpha * (reward + a.gamma*bestNext - a.q[guess])
}

// WordValue pairs a word with its learned value, for reporting.
type WordValue struct {
	Word  string  `json:"word"`
	Value float64 `json:"value"`
}

// TopWords returns the n highest-valued words, descending by value with
// a lexical tie-break so output is stable.
func (a *Agent) TopWords(n int) []WordValue {
	ws := maps.Keys(a.q)
	sort.Slice(ws, func(i, j int) bool {
		qi, qj := a.q[ws[i]], a.q[ws[j]]
		if qi != qj {
			return qi > qj
		}
		return ws[i] < ws[j]
	})
	if n > len(ws) {
		n = len(ws)
	}
	out := make([]WordValue, 0, n)
	for _, w := range ws[:n] {
		out = append(out, WordValue{Word: w, Value: a.q[w]})
	}
	return out
}

// tableFile is the on-disk JSON shape. Hyperparameters ride along so a
// resumed run picks up where it left off.
type tableFile struct {
	Alpha   float64            `json:"alpha"`
	Gamma   float64            `json:"gamma"`
	Epsilon float64            `json:"epsilon"`
	Q       map[string]float64 `json:"q"`
}

// Load restores the value table from disk. Missing or malformed storage
// silently yields an empty table; the in-memory state is authoritative.
func (a *Agent) Load() {
	raw, err := os.ReadFile(a.persistPath)
	if err != nil {
		log.Debug().Err(err).Str("path", a.persistPath).Msg("no persisted value table")
		return
	}
	var tf tableFile
	if err := json.Unmarshal(raw, &tf); err != nil {
		log.Warn().Err(err).Str("path", a.persistPath).Msg("ignoring corrupt value table")
		return
	}
	if tf.Q != nil {
		a.q = tf.Q
	}
	if tf.Alpha > 0 {
		a.alpha = tf.Alpha
	}
	if tf.Gamma > 0 {
		a.gamma = tf.Gamma
	}
	if tf.Epsilon > 0 {
		a.epsilon = tf.Epsilon
	}
	log.Info().Int("entries", len(a.q)).Str("path", a.persistPath).Msg("value table loaded")
}

// Save writes the value table to disk. Failures are swallowed: the run
// continues with the in-memory table either way.
func (a *Agent) Save() {
	tf := tableFile{Alpha: a.alpha, Gamma: a.gamma, Epsilon: a.epsilon, Q: a.q}
	raw, err := json.Marshal(tf)
	if err != nil {
		log.Warn().Err(err).Msg("value table not serializable")
		return
	}
	if err := os.WriteFile(a.persistPath, raw, 0o644); err != nil {
		log.Warn().Err(err).Str("path", a.persistPath).Msg("value table not saved")
	}
}
