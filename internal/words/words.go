// internal/words/words.go
//
// Dictionary provider for oracles and solvers.
//
// Responsibilities:
//   - Normalize raw word lists: trim, lowercase, keep only a–z words.
//   - Load a list from an explicit file, the downloaded cache, or the
//     embedded default list, in that order of preference.
//   - Offer lookups (Contains), length filtering and random selection.
//
// Environment variables (read by the caller into Config):
//   WORDS_FILE=/path/to/list.txt    explicit list, one word per line
//   WORDS_SOURCE=https://...        download source for the cache
//   WORDS_CACHE_DIR=/path           cache directory (default: user cache dir)

package words

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordler/assets"
	"github.com/robalobadob/wordler/internal/wordlist"
)

var ErrEmpty = errors.New("words: list is empty")

// Dictionary is an immutable, de-duplicated word list with set lookups.
type Dictionary struct {
	words []string
	set   map[string]struct{}
}

// New normalizes list into a Dictionary, preserving first-seen order.
func New(list []string) *Dictionary {
	d := &Dictionary{set: make(map[string]struct{}, len(list))}
	for _, raw := range list {
		w, ok := Normalize(raw)
		if !ok {
			continue
		}
		if _, dup := d.set[w]; dup {
			continue
		}
		d.set[w] = struct{}{}
		d.words = append(d.words, w)
	}
	return d
}

// Read builds a Dictionary from one word per line.
func Read(r io.Reader) (*Dictionary, error) {
	var raw []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		raw = append(raw, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return New(raw), nil
}

// ReadFile loads one word per line from path.
func ReadFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Embedded returns the built-in default list.
func Embedded() (*Dictionary, error) {
	list, err := assets.Words()
	if err != nil {
		return nil, fmt.Errorf("embedded words: %w", err)
	}
	return New(list), nil
}

// Normalize lowercases and trims w, reporting whether it is purely a–z.
func Normalize(w string) (string, bool) {
	w = strings.ToLower(strings.TrimSpace(w))
	return w, w != "" && isAlpha(w)
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

// Config selects where Load gets its words.
type Config struct {
	File     string // explicit list; wins over everything else
	Source   string // download source for the cache
	CacheDir string // cache directory; empty for the user cache dir
	Offline  bool   // never touch the network or cache; use the embedded list
}

// Load returns the configured dictionary. Without a file it reads the
// download cache (fetching it if needed) and falls back to the embedded list
// when the cache cannot be populated.
func Load(ctx context.Context, cfg Config) (*Dictionary, error) {
	var (
		d   *Dictionary
		err error
	)
	switch {
	case cfg.File != "":
		d, err = ReadFile(cfg.File)
	case cfg.Offline:
		d, err = Embedded()
	default:
		d, err = fromCache(ctx, cfg)
		if err != nil {
			log.Warn().Err(err).Msg("word list cache unavailable, using embedded list")
			d, err = Embedded()
		}
	}
	if err != nil {
		return nil, err
	}
	if d.Len() == 0 {
		return nil, ErrEmpty
	}
	return d, nil
}

func fromCache(ctx context.Context, cfg Config) (*Dictionary, error) {
	c, err := wordlist.New(cfg.CacheDir, cfg.Source)
	if err != nil {
		return nil, err
	}
	rc, err := c.Load(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Read(rc)
}

// Words returns the list in load order. Callers must not modify it.
func (d *Dictionary) Words() []string { return d.words }

// Len returns the number of distinct words.
func (d *Dictionary) Len() int { return len(d.words) }

// Contains reports whether w (case-insensitively) is in the dictionary.
func (d *Dictionary) Contains(w string) bool {
	_, ok := d.set[strings.ToLower(w)]
	return ok
}

// OfLength returns the words of exactly n letters.
func (d *Dictionary) OfLength(n int) []string {
	var out []string
	for _, w := range d.words {
		if len(w) == n {
			out = append(out, w)
		}
	}
	return out
}

// Lengths counts words by length.
func (d *Dictionary) Lengths() map[int]int {
	out := map[int]int{}
	for _, w := range d.words {
		out[len(w)]++
	}
	return out
}

// Random returns a uniformly chosen word of n letters, or "" if none exist.
// rng may be nil to use the global source.
func (d *Dictionary) Random(n int, rng *rand.Rand) string {
	pool := d.OfLength(n)
	if len(pool) == 0 {
		return ""
	}
	if rng == nil {
		return pool[rand.IntN(len(pool))]
	}
	return pool[rng.IntN(len(pool))]
}
