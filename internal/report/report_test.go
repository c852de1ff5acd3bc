package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/rl-agent/internal/episode"
	"github.com/robalobadob/wordle/apps/rl-agent/internal/feedback"
)

func testSession(t *testing.T) *episode.Session {
	t.Helper()
	fb, err := feedback.Compute("crane", "slate")
	require.NoError(t, err)
	win, err := feedback.Compute("crane", "crane")
	require.NoError(t, err)
	return &episode.Session{
		Timestamp: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Secret:    "crane",
		Won:       true,
		Steps: []episode.Step{
			{Turn: 1, Guess: "slate", Feedback: fb, CandidatesAfter: 3, Reward: -1, QValue: -0.1},
			{Turn: 2, Guess: "crane", Feedback: win, CandidatesAfter: 0, Reward: 10, QValue: 0.91},
		},
	}
}

func TestWriteLastRun(t *testing.T) {
	dir := t.TempDir()
	w := Writer{Dir: dir}
	require.NoError(t, w.WriteLastRun(testSession(t)))

	raw, err := os.ReadFile(filepath.Join(dir, LastRunFile))
	require.NoError(t, err)

	var back episode.Session
	require.NoError(t, json.Unmarshal(raw, &back))
	require.Equal(t, "crane", back.Secret)
	require.Len(t, back.Steps, 2)
	require.Equal(t, "XXGXG", back.Steps[0].Feedback.String())
}

func TestAppendSessionLog(t *testing.T) {
	dir := t.TempDir()
	w := Writer{Dir: dir}
	sess := testSession(t)

	require.NoError(t, w.AppendSessionLog(sess))
	require.NoError(t, w.AppendSessionLog(sess))

	raw, err := os.ReadFile(filepath.Join(dir, "logs", "session-20240301.jsonl"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 2, "each session is one JSON line")
	for _, line := range lines {
		var back episode.Session
		require.NoError(t, json.Unmarshal([]byte(line), &back))
	}
}

func TestWriteReplay(t *testing.T) {
	dir := t.TempDir()
	w := Writer{Dir: dir}
	require.NoError(t, w.WriteReplay(testSession(t)))

	raw, err := os.ReadFile(filepath.Join(dir, ReplayFile))
	require.NoError(t, err)
	html := string(raw)
	require.Contains(t, html, "CRANE", "secret is shown uppercased")
	require.Contains(t, html, `class="tile G"`, "green tiles rendered")
	require.Contains(t, html, `class="tile X"`, "gray tiles rendered")
	require.Contains(t, html, "Guess 2")
}

func TestWriteTrainingChart(t *testing.T) {
	dir := t.TempDir()
	w := Writer{Dir: dir}
	results := []episode.EpisodeResult{
		{Episode: 0, Reward: -1, OpenerQ: -0.1},
		{Episode: 1, Reward: 10, OpenerQ: 0.91},
		{Episode: 2, Reward: -1, OpenerQ: 0.72},
	}
	require.NoError(t, w.WriteTrainingChart("slate", results))

	raw, err := os.ReadFile(filepath.Join(dir, TrainingChartFile))
	require.NoError(t, err)
	require.Contains(t, string(raw), "Q(slate)", "series named after the opener")
	require.NotEmpty(t, raw)
}

func TestPersistSessionSwallowsFailures(t *testing.T) {
	w := Writer{Dir: filepath.Join(t.TempDir(), "missing", "nested")}
	require.NotPanics(t, func() { w.PersistSession(testSession(t)) })
}
