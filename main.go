// apps/rl-agent/main.go
//
// Entry point for the Wordle RL agent.
// Commands:
//
//	rl-agent            train EPISODES episodes, then play one game
//	rl-agent train      train only
//	rl-agent play       play one game with the persisted table
//	rl-agent serve      HTTP server for reports, history, and Q-table stats
//
// Configuration is environment-driven (.env supported via godotenv); see
// getEnv defaults below.
package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/rl-agent/internal/agent"
	"github.com/robalobadob/wordle/apps/rl-agent/internal/daily"
	"github.com/robalobadob/wordle/apps/rl-agent/internal/episode"
	"github.com/robalobadob/wordle/apps/rl-agent/internal/heuristic"
	"github.com/robalobadob/wordle/apps/rl-agent/internal/httpserver"
	"github.com/robalobadob/wordle/apps/rl-agent/internal/report"
	"github.com/robalobadob/wordle/apps/rl-agent/internal/store"
	"github.com/robalobadob/wordle/apps/rl-agent/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	if err := words.Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load word list")
	}
	list := words.All()

	cfg := agent.Config{
		Alpha:       getEnvFloat("ALPHA", agent.DefaultAlpha),
		Gamma:       getEnvFloat("GAMMA", agent.DefaultGamma),
		Epsilon:     getEnvFloat("EPSILON", agent.DefaultEpsilon),
		PersistPath: getEnv("Q_VALUES_FILE", agent.DefaultPersistPath),
	}
	ag := agent.New(list, cfg)

	cmd := "run"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	switch cmd {
	case "run":
		runTraining(ag, list)
		playOnce(ag, list)
	case "train":
		runTraining(ag, list)
	case "play":
		playOnce(ag, list)
	case "serve":
		serve(ag)
	default:
		log.Fatal().Str("command", cmd).Msg("unknown command (want run|train|play|serve)")
	}
}

// runTraining trains the agent, saves the table, and renders the training
// chart.
func runTraining(ag *agent.Agent, list []string) {
	episodes := getEnvInt("EPISODES", 100)
	drv := episode.NewDriver(list, ag, getEnv("OPENER", episode.DefaultOpener))
	results, err := drv.Train(episodes)
	if err != nil {
		log.Fatal().Err(err).Msg("training failed")
	}
	ag.Save()

	w := report.Writer{Dir: getEnv("REPORT_DIR", ".")}
	if err := w.WriteTrainingChart(drv.Opener(), results); err != nil {
		log.Warn().Err(err).Msg("training chart not written")
	}
}

// playOnce plays one real game and persists everything (best effort).
func playOnce(ag *agent.Agent, list []string) {
	var picker episode.Picker = ag
	if getEnv("PICKER", "agent") == "heuristic" {
		picker = heuristic.New()
		log.Info().Msg("using heuristic baseline picker")
	}

	drv := episode.NewDriver(list, picker, getEnv("OPENER", episode.DefaultOpener))
	drv.Out = os.Stdout
	drv.Delay = time.Duration(getEnvInt("GUESS_DELAY_MS", 2000)) * time.Millisecond

	secret := ""
	if getEnv("SECRET_MODE", "random") == "daily" {
		secret = daily.Secret(time.Now(), getEnv("DAILY_SALT", "wordle-rl"), list)
	}

	sess, err := drv.Play(secret)
	if err != nil {
		log.Fatal().Err(err).Msg("play failed")
	}
	ag.Save()

	w := report.Writer{Dir: getEnv("REPORT_DIR", ".")}
	w.PersistSession(sess)

	if st := openStore(); st != nil {
		defer st.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := st.InsertSession(ctx, sess); err != nil {
			log.Warn().Err(err).Msg("session not recorded")
		}
	}
}

// serve runs the read-only HTTP surface.
func serve(ag *agent.Agent) {
	st := openStore()
	if st != nil {
		defer st.Close()
	}
	srv := httpserver.New(ag, st, getEnv("REPORT_DIR", "."))
	port := getEnv("PORT", "5176")
	log.Info().Str("port", port).Msg("starting rl-agent server")
	if err := srv.Start(":" + port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// openStore opens the session history DB, or returns nil when unavailable.
// History is a best-effort collaborator, never a reason to abort.
func openStore() *store.Store {
	st, err := store.Open(getEnv("DB_PATH", "./data/rl.db"))
	if err != nil {
		log.Warn().Err(err).Msg("session store unavailable")
		return nil
	}
	return st
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getEnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
