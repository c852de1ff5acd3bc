// apps/rl-agent/internal/words/words.go
//
// Word list acquisition for the RL agent.
//
// Responsibilities:
//   - Load the 5-letter word list from a remote URL, a local file, or
//     embedded defaults (in that order).
//   - Normalize and deduplicate while preserving source order.
//   - Supply utility functions like All, RandomWord, Contains, and Stats.
//
// Initialization behavior (Init):
//   1. Fetch WORDS_URL (default: the tabatkins/wordle-list raw words file)
//      with a 10 second timeout.
//   2. On failure, read WORDS_FILE (default: ./wordle.txt) if present.
//   3. Fall back to the small embedded list in default_words.txt.
//
// Environment variables:
//   WORDS_URL=https://...        remote newline-separated list ("disabled" skips)
//   WORDS_FILE=/path/to/list.txt local fallback
//
// Constraints:
//   • Words must be 5 alphabetic letters (a-z).
//   • Lists are normalized to lowercase and deduplicated, keeping the
//     first occurrence so iteration order is stable.
//   • Initialization is run once (sync.Once).

package words

import (
	"bufio"
	_ "embed"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultURL is the canonical community word list.
const DefaultURL = "https://raw.githubusercontent.com/tabatkins/wordle-list/main/words"

const fetchTimeout = 10 * time.Second

//go:embed default_words.txt
var embeddedWords string

var (
	initOnce   sync.Once
	list       []string
	set        map[string]struct{}
	initialErr error
)

// Init loads the word list exactly once.
// Returns an error only if every source ends up empty.
func Init() error {
	initOnce.Do(func() {
		url := os.Getenv("WORDS_URL")
		if url == "" {
			url = DefaultURL
		}
		if url != "disabled" {
			if ws, err := fetchList(url); err == nil && len(ws) > 0 {
				install(ws)
				log.Info().Int("words", len(ws)).Str("source", "remote").Msg("word list loaded")
				return
			} else if err != nil {
				log.Warn().Err(err).Str("url", url).Msg("remote word list unavailable")
			}
		}

		path := os.Getenv("WORDS_FILE")
		if path == "" {
			path = "wordle.txt"
		}
		if ws, err := readWordFile(path); err == nil && len(ws) > 0 {
			install(ws)
			log.Info().Int("words", len(ws)).Str("source", path).Msg("word list loaded")
			return
		}

		ws := normalizeLines(strings.NewReader(embeddedWords))
		install(ws)
		if len(ws) == 0 {
			initialErr = errors.New("words: no usable word list")
			return
		}
		log.Info().Int("words", len(ws)).Str("source", "embedded").Msg("word list loaded")
	})
	return initialErr
}

// install publishes a loaded list and its lookup set.
func install(ws []string) {
	list = ws
	set = make(map[string]struct{}, len(ws))
	for _, w := range ws {
		set[w] = struct{}{}
	}
}

// fetchList downloads and normalizes a newline-separated word list.
func fetchList(url string) ([]string, error) {
	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("words: fetch status " + resp.Status)
	}
	return normalizeLines(resp.Body), nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return normalizeLines(f), nil
}

// normalizeLines lowercases, trims, keeps only valid 5-letter alphabetic
// words, and deduplicates preserving first-seen order.
func normalizeLines(r io.Reader) []string {
	seen := make(map[string]struct{})
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if len(w) != 5 || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// All returns the loaded list in source order. Callers must not mutate it.
func All() []string { return list }

// RandomWord returns a uniformly random word from the list.
// Falls back to "crane" if the list is not loaded yet.
func RandomWord() string {
	if len(list) == 0 {
		return "crane"
	}
	return list[rand.IntN(len(list))]
}

// Contains reports whether w is in the loaded list.
func Contains(w string) bool {
	_, ok := set[strings.ToLower(w)]
	return ok
}

// Stats returns the number of loaded words.
func Stats() int { return len(list) }

// Normalize exposes list normalization for callers that load words from
// their own sources (tests, tools).
func Normalize(r io.Reader) []string { return normalizeLines(r) }
