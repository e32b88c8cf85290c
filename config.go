// config.go
//
// Process configuration, read once from the environment (after .env).
// Subcommand flags default to these values, so a flag always wins.
//
// Environment variables:
//   LOG_LEVEL        zerolog level (default info)
//   PORT             HTTP port for `serve` (default 5175)
//   WORDS_FILE       explicit word list, one word per line
//   WORDS_SOURCE     download source for the word-list cache
//   WORDS_CACHE_DIR  cache directory (default: user cache dir)
//   WORDS_OFFLINE    "1"/"true" to use only the embedded list
//   DAILY_SALT       salt for the daily secret
//   JWT_SECRET       key for HTTP game tokens
//   MAX_GUESSES      guess budget (default 6; 0 means unlimited)
//   WORD_LENGTH      secret length (default 5)

package main

import (
	"context"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordler/internal/words"
)

// Config is the resolved process configuration.
type Config struct {
	LogLevel    string
	Port        string
	WordsFile   string
	WordsSource string
	CacheDir    string
	Offline     bool
	DailySalt   string
	JWTSecret   string
	MaxGuesses  int
	WordLength  int
}

func loadConfig() Config {
	return Config{
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Port:        getEnv("PORT", "5175"),
		WordsFile:   os.Getenv("WORDS_FILE"),
		WordsSource: os.Getenv("WORDS_SOURCE"),
		CacheDir:    os.Getenv("WORDS_CACHE_DIR"),
		Offline:     envBool("WORDS_OFFLINE"),
		DailySalt:   getEnv("DAILY_SALT", "local_dev_salt"),
		JWTSecret:   getEnv("JWT_SECRET", "dev_secret_change_me"),
		MaxGuesses:  envInt("MAX_GUESSES", 6),
		WordLength:  envInt("WORD_LENGTH", 5),
	}
}

// wordsConfig returns where the dictionary should come from.
func (c Config) wordsConfig() words.Config {
	return words.Config{
		File:     c.WordsFile,
		Source:   c.WordsSource,
		CacheDir: c.CacheDir,
		Offline:  c.Offline,
	}
}

// loadDictionary loads the configured dictionary and logs its size.
func loadDictionary(ctx context.Context, cfg Config) (*words.Dictionary, error) {
	d, err := words.Load(ctx, cfg.wordsConfig())
	if err != nil {
		return nil, err
	}
	log.Debug().Int("words", d.Len()).Msg("dictionary loaded")
	return d, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses k as an integer, falling back to def (with a warning) when
// it is unset or malformed.
func envInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("var", k).Str("value", v).Msg("not an integer, using default")
		return def
	}
	return n
}

func envBool(k string) bool {
	b, _ := strconv.ParseBool(os.Getenv(k))
	return b
}
