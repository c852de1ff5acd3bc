// apps/rl-agent/internal/episode/episode.go
//
// Training and play loops for the RL agent.
// Responsibilities:
//   - Train: simulated episodes that shape the value table.
//   - Play: one real game of up to 6 guesses with console output.
//   - Session/Step records consumed by the report and store layers.
//
// Notes:
//   - Training takes exactly ONE guess per episode (the fixed opener),
//     then updates the table from the filtered candidate set. See the
//     training tests before changing this.
//   - Rewards are +10 for hitting the secret, -1 otherwise.
//   - The guess picker is an interface so the heuristic baseline can be
//     swapped in for the learned policy.
package episode

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/logrusorgru/aurora"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/rl-agent/internal/feedback"
)

const (
	// MaxTurns is the guess budget for one real game.
	MaxTurns = 6

	// DefaultOpener is the fixed first guess for both training and play.
	DefaultOpener = "slate"

	rewardWin  = 10.0
	rewardMiss = -1.0
)

// Picker selects the next guess from the remaining candidates.
// *agent.Agent and heuristic.Solver both satisfy it.
type Picker interface {
	SelectGuess(candidates []string) string
}

// Learner is the optional updating side of a Picker.
type Learner interface {
	Update(guess string, reward float64, candidates []string)
	Q(word string) float64
}

// Step records one guess of a session.
type Step struct {
	Turn            int               `json:"turn"`
	Guess           string            `json:"guess"`
	Feedback        feedback.Feedback `json:"feedback"`
	CandidatesAfter int               `json:"candidates_after"`
	Reward          float64           `json:"reward"`
	QValue          float64           `json:"q_value"`
}

// Session records one play-through.
type Session struct {
	Timestamp time.Time `json:"timestamp"`
	Secret    string    `json:"secret"`
	Steps     []Step    `json:"steps"`
	Won       bool      `json:"won"`
}

// Driver runs episodes over a fixed word list.
type Driver struct {
	words  []string
	picker Picker
	opener string

	// Play-only presentation knobs.
	Out   io.Writer
	Delay time.Duration
}

// NewDriver wires a driver for the given list and picker. The opener is
// validated against the list; an unlisted opener falls back to the first
// list word.
func NewDriver(words []string, picker Picker, opener string) *Driver {
	if opener == "" {
		opener = DefaultOpener
	}
	if !contains(words, opener) && len(words) > 0 {
		log.Warn().Str("opener", opener).Str("using", words[0]).Msg("opener not in word list")
		opener = words[0]
	}
	return &Driver{words: words, picker: picker, opener: opener, Out: io.Discard}
}

// Opener returns the fixed first guess in use.
func (d *Driver) Opener() string { return d.opener }

// EpisodeResult summarizes one training episode for reporting.
type EpisodeResult struct {
	Episode  int
	Secret   string
	Reward   float64
	OpenerQ  float64 // value of the opener after the update
	Solved   bool
	Remained int // candidates left after filtering
}

// Train runs n one-guess training episodes: random secret, full candidate
// reset, the fixed opener, reward, filter, TD update. Returns the
// per-episode history (used for the training chart).
func (d *Driver) Train(n int) ([]EpisodeResult, error) {
	learner, ok := d.picker.(Learner)
	if !ok {
		return nil, fmt.Errorf("episode: picker %T cannot learn", d.picker)
	}
	results := make([]EpisodeResult, 0, n)
	for ep := 0; ep < n; ep++ {
		secret := d.words[randIndex(len(d.words))]
		fb, err := feedback.Compute(secret, d.opener)
		if err != nil {
			return results, fmt.Errorf("episode %d: %w", ep, err)
		}
		reward := rewardMiss
		if d.opener == secret {
			reward = rewardWin
		}
		candidates := feedback.Filter(d.words, d.opener, fb)
		learner.Update(d.opener, reward, candidates)
		results = append(results, EpisodeResult{
			Episode:  ep,
			Secret:   secret,
			Reward:   reward,
			OpenerQ:  learner.Q(d.opener),
			Solved:   d.opener == secret,
			Remained: len(candidates),
		})
	}
	log.Info().Int("episodes", n).Str("opener", d.opener).Msg("training finished")
	return results, nil
}

// Play runs one real game against secret (pass "" for a random one) and
// returns the full session record. The value table is updated after every
// guess, exactly as in training.
func (d *Driver) Play(secret string) (*Session, error) {
	if secret == "" {
		secret = d.words[randIndex(len(d.words))]
	}
	learner, _ := d.picker.(Learner)

	session := &Session{Timestamp: time.Now().UTC(), Secret: secret}
	candidates := d.words

	fmt.Fprintf(d.Out, "Secret word selected. Start guessing!\n\n")
	for turn := 1; turn <= MaxTurns; turn++ {
		guess := d.opener
		if turn > 1 {
			guess = d.picker.SelectGuess(candidates)
		}
		fb, err := feedback.Compute(secret, guess)
		if err != nil {
			return session, fmt.Errorf("turn %d: %w", turn, err)
		}
		fmt.Fprintf(d.Out, "Guess %d: %s  (candidates: %d)\n", turn, ColorRow(guess, fb), len(candidates))

		reward := rewardMiss
		if fb.AllGreen() {
			reward = rewardWin
		}
		candidates = feedback.Filter(candidates, guess, fb)
		qv := 0.0
		if learner != nil {
			learner.Update(guess, reward, candidates)
			qv = learner.Q(guess)
		}
		session.Steps = append(session.Steps, Step{
			Turn:            turn,
			Guess:           guess,
			Feedback:        fb,
			CandidatesAfter: len(candidates),
			Reward:          reward,
			QValue:          qv,
		})
		if fb.AllGreen() {
			session.Won = true
			fmt.Fprintf(d.Out, "\nAI won!\n")
			return session, nil
		}
		if turn < MaxTurns && d.Delay > 0 {
			time.Sleep(d.Delay)
		}
	}
	fmt.Fprintf(d.Out, "\nAI lost! The word was %s.\n", secret)
	return session, nil
}

// ColorRow renders a guess as colored uppercase tiles for the console.
func ColorRow(guess string, fb feedback.Feedback) string {
	out := ""
	for i := 0; i < len(guess) && i < len(fb); i++ {
		ch := " " + string(guess[i]-'a'+'A') + " "
		switch fb[i] {
		case feedback.Green:
			out += aurora.BgGreen(aurora.Bold(ch)).String()
		case feedback.Yellow:
			out += aurora.BgYellow(aurora.Bold(ch)).String()
		default:
			out += aurora.BgGray(8, aurora.Bold(ch)).String()
		}
	}
	return out
}

func randIndex(n int) int { return rand.IntN(n) }

func contains(ws []string, w string) bool {
	for _, x := range ws {
		if x == w {
			return true
		}
	}
	return false
}
