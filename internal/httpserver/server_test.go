package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/rl-agent/internal/agent"
	"github.com/robalobadob/wordle/apps/rl-agent/internal/report"
)

func newTestServer(t *testing.T, reportDir string) *Server {
	t.Helper()
	cfg := agent.DefaultConfig()
	cfg.PersistPath = filepath.Join(t.TempDir(), "q_values.json")
	a := agent.New([]string{"crane", "slate", "trace"}, cfg)
	a.Update("slate", 10, nil)
	a.Update("crane", -1, nil)
	return New(a, nil, reportDir)
}

func TestRoutes(t *testing.T) {
	srv := newTestServer(t, t.TempDir())
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("index lists endpoints", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()
		var body map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, "wordle-rl", body["service"])
	})

	t.Run("qtable top returns ranked words", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/qtable/top?n=1")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Entries int               `json:"entries"`
			Top     []agent.WordValue `json:"top"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		require.Equal(t, 2, body.Entries)
		require.Len(t, body.Top, 1)
		require.Equal(t, "slate", body.Top[0].Word)
	})

	t.Run("sessions without a store report unavailable", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/sessions")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("unknown path is a json 404", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/nope")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestReportRoutes(t *testing.T) {
	dir := t.TempDir()
	srv := newTestServer(t, dir)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	t.Run("missing report is 404", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/report")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("generated report is served as html", func(t *testing.T) {
		path := filepath.Join(dir, report.ReplayFile)
		require.NoError(t, os.WriteFile(path, []byte("<html>replay</html>"), 0o644))

		resp, err := http.Get(ts.URL + "/report")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	})
}
