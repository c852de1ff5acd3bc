package feedback

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

var sample = []string{
	"crane", "slate", "trace", "grade", "brave",
	"speed", "erase", "adieu", "sissy", "humph",
	"karma", "naval", "serve", "model", "apple",
}

func TestCompute(t *testing.T) {
	t.Run("same word is all green", func(t *testing.T) {
		for _, w := range sample {
			fb, err := Compute(w, w)
			require.NoError(t, err)
			require.True(t, fb.AllGreen(), "Compute(%q, %q) should be all green", w, w)
		}
	})

	t.Run("duplicate letters consume at most once", func(t *testing.T) {
		// secret SPEED vs guess ERASE: both Es and the S find letters to
		// claim, R and A do not. Each secret letter is consumed at most once.
		fb, err := Compute("speed", "erase")
		require.NoError(t, err)
		require.Equal(t, "YXXYY", fb.String())
	})

	t.Run("greens are consumed before yellows", func(t *testing.T) {
		// secret ABBEY vs guess BABES: only one B remains for the yellow
		// pass after the positional B is consumed.
		fb, err := Compute("abbey", "babes")
		require.NoError(t, err)
		require.Equal(t, "YYGGX", fb.String())
	})

	t.Run("opening slate against crane", func(t *testing.T) {
		fb, err := Compute("crane", "slate")
		require.NoError(t, err)
		require.Equal(t, "XXGXG", fb.String())
	})

	t.Run("marked letters never exceed secret counts", func(t *testing.T) {
		for _, secret := range sample {
			for _, guess := range sample {
				fb, err := Compute(secret, guess)
				require.NoError(t, err)
				require.Len(t, fb, WordLen)

				var marked, have [26]int
				for i := 0; i < WordLen; i++ {
					have[secret[i]-'a']++
					if fb[i] != Gray {
						marked[guess[i]-'a']++
					}
				}
				for l := 0; l < 26; l++ {
					require.LessOrEqual(t, marked[l], have[l],
						"secret %q guess %q: letter %c over-marked", secret, guess, 'a'+l)
				}
			}
		}
	})

	t.Run("rejects malformed words", func(t *testing.T) {
		_, err := Compute("crane", "cran")
		require.Error(t, err)
		_, err = Compute("cranes", "slate")
		require.Error(t, err)
		_, err = Compute("crane", "sl4te")
		require.Error(t, err)
		_, err = Compute("CRANE", "slate")
		require.Error(t, err, "uppercase input is out of contract")
	})
}

func TestMatches(t *testing.T) {
	t.Run("reflexive consistency", func(t *testing.T) {
		for _, w := range sample {
			for _, guess := range sample {
				fb, err := Compute(w, guess)
				require.NoError(t, err)
				require.True(t, Matches(w, guess, fb),
					"%q must match its own feedback for %q", w, guess)
			}
		}
	})

	t.Run("rejects inconsistent candidates", func(t *testing.T) {
		fb, err := Compute("crane", "slate")
		require.NoError(t, err)
		// trace would put a yellow T at position 3, which crane's feedback
		// does not show.
		require.False(t, Matches("trace", "slate", fb))
	})

	t.Run("malformed candidate is never consistent", func(t *testing.T) {
		fb, err := Compute("crane", "slate")
		require.NoError(t, err)
		require.False(t, Matches("cr", "slate", fb))
	})
}

func TestFilter(t *testing.T) {
	list := []string{"crane", "slate", "trace", "grade", "brave"}

	t.Run("prunes to consistent candidates", func(t *testing.T) {
		fb, err := Compute("crane", "slate")
		require.NoError(t, err)
		got := Filter(list, "slate", fb)
		require.Equal(t, []string{"crane", "grade", "brave"}, got)
	})

	t.Run("always excludes the guess itself", func(t *testing.T) {
		fb, err := Compute("slate", "slate")
		require.NoError(t, err)
		got := Filter(list, "slate", fb)
		require.NotContains(t, got, "slate")
	})

	t.Run("never grows and is idempotent", func(t *testing.T) {
		fb, err := Compute("crane", "slate")
		require.NoError(t, err)
		once := Filter(list, "slate", fb)
		require.LessOrEqual(t, len(once), len(list))
		twice := Filter(once, "slate", fb)
		require.Equal(t, once, twice)
	})

	t.Run("preserves input order", func(t *testing.T) {
		fb, err := Compute("crane", "slate")
		require.NoError(t, err)
		got := Filter(list, "slate", fb)
		require.True(t, indexOf(list, got[0]) < indexOf(list, got[1]))
	})
}

func TestWireForm(t *testing.T) {
	t.Run("parse round-trips string form", func(t *testing.T) {
		fb, err := Parse("GYXXY")
		require.NoError(t, err)
		require.Equal(t, "GYXXY", fb.String())
	})

	t.Run("parse rejects junk", func(t *testing.T) {
		_, err := Parse("GYX")
		require.Error(t, err)
		_, err = Parse("GYXXZ")
		require.Error(t, err)
	})

	t.Run("json uses the compact form", func(t *testing.T) {
		fb, err := Compute("crane", "slate")
		require.NoError(t, err)
		raw, err := json.Marshal(fb)
		require.NoError(t, err)
		require.Equal(t, `"XXGXG"`, string(raw))

		var back Feedback
		require.NoError(t, json.Unmarshal(raw, &back))
		require.True(t, fb.Equal(back))
	})
}

func indexOf(ws []string, w string) int {
	for i, x := range ws {
		if x == w {
			return i
		}
	}
	return -1
}
