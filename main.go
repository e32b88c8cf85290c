package main

import (
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()
	cfg := loadConfig()
	setupLogging(cfg.LogLevel, os.Stderr)

	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging configures the global zerolog logger: human-readable on a
// terminal, JSON lines otherwise.
func setupLogging(level string, w io.Writer) {
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if f, ok := w.(*os.File); ok && isatty.IsTerminal(f.Fd()) {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen})
		return
	}
	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

func newRootCmd(cfg Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "wordler",
		Short: "Play, host and solve word-guessing games",
		Long: `wordler pits a guesser against a keeper of a secret word.
Either side can be a person or the program: play against a hidden word,
let the solver guess a word you are thinking of, benchmark the solver,
or serve the game over HTTP.`,
		SilenceUsage: true,
	}
	root.AddCommand(
		newInitCacheCmd(cfg),
		newPlayCmd(cfg),
		newHostCmd(cfg),
		newBotCmd(cfg),
		newServeCmd(cfg),
	)
	return root
}
