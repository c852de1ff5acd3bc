package heuristic

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectGuess(t *testing.T) {
	s := New()

	t.Run("empty set has nothing to pick", func(t *testing.T) {
		require.Empty(t, s.SelectGuess(nil))
	})

	t.Run("single candidate is returned directly", func(t *testing.T) {
		require.Equal(t, "crane", s.SelectGuess([]string{"crane"}))
	})

	t.Run("prefers letters common across candidates", func(t *testing.T) {
		// crane/frane/trane share four positional letters; the outlier
		// scores nothing from the pool and is heavily repeat-penalized.
		got := s.SelectGuess([]string{"crane", "frane", "trane", "zzzzz"})
		require.Equal(t, "crane", got, "shared letters win, ties break first-seen")
	})

	t.Run("penalizes repeated letters", func(t *testing.T) {
		// Same letter multiset, but one wastes a slot on a repeat.
		got := s.SelectGuess([]string{"eerie", "siren", "risen"})
		require.NotEqual(t, "eerie", got)
	})

	t.Run("always returns a member of the pool", func(t *testing.T) {
		pool := []string{"slate", "crane", "trace", "grade", "brave"}
		require.Contains(t, pool, s.SelectGuess(pool))
	})
}
