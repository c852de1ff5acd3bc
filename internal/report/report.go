// apps/rl-agent/internal/report/report.go
//
// Session persistence and HTML reporting.
// Responsibilities:
//   - Write the last session to last_run.json.
//   - Append every session to a dated logs/session-YYYYMMDD.jsonl file.
//   - Render a standalone HTML replay of the last game.
//   - Render the training-curve chart (opener value per episode).
//
// All output is best-effort presentation glue: PersistSession logs a
// warning on failure and the run carries on.

package report

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/rl-agent/internal/episode"
)

// Default file names, relative to the writer directory.
const (
	LastRunFile       = "last_run.json"
	ReplayFile        = "report_last_run.html"
	TrainingChartFile = "report_training.html"
	logsDir           = "logs"
)

// Writer renders reports into a base directory ("." for the working dir).
type Writer struct {
	Dir string
}

// PersistSession records a finished session everywhere it belongs:
// last_run.json, the dated session log, and the HTML replay. Failures are
// logged and swallowed.
func (w Writer) PersistSession(sess *episode.Session) {
	if err := w.WriteLastRun(sess); err != nil {
		log.Warn().Err(err).Msg("last run not written")
	}
	if err := w.AppendSessionLog(sess); err != nil {
		log.Warn().Err(err).Msg("session log not appended")
	}
	if err := w.WriteReplay(sess); err != nil {
		log.Warn().Err(err).Msg("replay report not written")
	}
}

// WriteLastRun overwrites last_run.json with the session.
func (w Writer) WriteLastRun(sess *episode.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return os.WriteFile(filepath.Join(w.Dir, LastRunFile), raw, 0o644)
}

// AppendSessionLog appends the session as one JSON line to
// logs/session-YYYYMMDD.jsonl.
func (w Writer) AppendSessionLog(sess *episode.Session) error {
	dir := filepath.Join(w.Dir, logsDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	stamp := sess.Timestamp.UTC().Format("20060102")
	path := filepath.Join(dir, "session-"+stamp+".jsonl")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	_, err = f.Write(append(raw, '\n'))
	return err
}

// replayTmpl renders the tile board of one session. The template is a
// plain static page: tiles are colored by feedback code class.
var replayTmpl = template.Must(template.New("replay").Funcs(template.FuncMap{
	"upper": func(s string) string {
		b := []byte(s)
		for i := range b {
			if b[i] >= 'a' && b[i] <= 'z' {
				b[i] -= 'a' - 'A'
			}
		}
		return string(b)
	},
	"chars": func(s string) []string {
		out := make([]string, len(s))
		for i := range s {
			out[i] = s[i : i+1]
		}
		return out
	},
}).Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>Wordle RL — Last Run</title>
<style>
  body { font-family: system-ui, -apple-system, Segoe UI, Roboto, sans-serif; padding: 24px; color: #222; }
  h1 { margin-top: 0; }
  .row { display: flex; gap: 8px; margin: 8px 0; }
  .tile { width: 44px; height: 44px; display: grid; place-items: center; font-weight: 700; color: #fff; border-radius: 6px; }
  .G { background: #2e7d32; }
  .Y { background: #f9a825; }
  .X { background: #9e9e9e; }
  .meta { color: #555; font-size: 14px; }
</style>
</head>
<body>
<h1>Wordle RL — Last Run</h1>
<p class="meta">Played {{.Timestamp.Format "2006-01-02 15:04:05"}} UTC —
Won: <b>{{.Won}}</b> — Steps: <b>{{len .Steps}}</b> — Secret: <b>{{upper .Secret}}</b></p>
{{range .Steps}}
<div class="meta">Guess {{.Turn}} — candidates left: {{.CandidatesAfter}} — reward: {{.Reward}} — Q({{.Guess}})={{printf "%.3f" .QValue}}</div>
<div class="row">
{{- $fb := .Feedback.String -}}
{{- $guess := upper .Guess -}}
{{- range $i, $c := chars $fb}}
  <div class="tile {{$c}}">{{index (chars $guess) $i}}</div>
{{- end}}
</div>
{{end}}
</body>
</html>
`))

// WriteReplay renders the standalone HTML board for the session.
func (w Writer) WriteReplay(sess *episode.Session) error {
	f, err := os.Create(filepath.Join(w.Dir, ReplayFile))
	if err != nil {
		return err
	}
	defer f.Close()
	return replayTmpl.Execute(f, sess)
}

// WriteTrainingChart renders a line chart of the opener's value and the
// per-episode reward across training.
func (w Writer) WriteTrainingChart(opener string, results []episode.EpisodeResult) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Training — " + opener,
			Subtitle: "generated " + time.Now().UTC().Format(time.RFC3339),
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	episodes := make([]string, len(results))
	qItems := make([]opts.LineData, 0, len(results))
	rItems := make([]opts.LineData, 0, len(results))
	for i, r := range results {
		episodes[i] = fmt.Sprintf("%d", r.Episode)
		qItems = append(qItems, opts.LineData{Value: r.OpenerQ})
		rItems = append(rItems, opts.LineData{Value: r.Reward})
	}
	line.SetXAxis(episodes)
	line.AddSeries("Q("+opener+")", qItems)
	line.AddSeries("reward", rItems)

	page := components.NewPage()
	page.AddCharts(line)

	f, err := os.Create(filepath.Join(w.Dir, TrainingChartFile))
	if err != nil {
		return err
	}
	defer f.Close()
	return page.Render(io.MultiWriter(f))
}
