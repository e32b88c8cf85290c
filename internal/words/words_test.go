package words

import (
	"context"
	"io"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNormalizes(t *testing.T) {
	d := New([]string{" Radio", "audio", "AUDIO", "it's", "", "naïve", "adieu\r"})
	assert.Equal(t, []string{"radio", "audio", "adieu"}, d.Words())
	assert.True(t, d.Contains("RADIO"))
	assert.False(t, d.Contains("naïve"))
	assert.Equal(t, map[int]int{5: 3}, d.Lengths())
}

func TestOfLengthAndRandom(t *testing.T) {
	d := New(strings.Fields("cat dog radio audio ox"))
	assert.Equal(t, []string{"cat", "dog"}, d.OfLength(3))
	assert.Empty(t, d.OfLength(4))
	assert.Equal(t, "", d.Random(4, nil))

	rng := rand.New(rand.NewPCG(1, 1))
	for i := 0; i < 10; i++ {
		assert.Contains(t, []string{"radio", "audio"}, d.Random(5, rng))
	}
}

func TestEmbedded(t *testing.T) {
	d, err := Embedded()
	require.NoError(t, err)
	assert.Greater(t, len(d.OfLength(5)), 100)
	assert.True(t, d.Contains("radio"))
	assert.False(t, d.Contains("#"), "comments are skipped")
}

func TestLoadPrefersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte("Adieu\naudio\nradio\n"), 0o644))

	d, err := Load(context.Background(), Config{File: path, Offline: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"adieu", "audio", "radio"}, d.Words())

	_, err = Load(context.Background(), Config{File: filepath.Join(t.TempDir(), "missing.txt")})
	require.Error(t, err)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte("123\n\n"), 0o644))

	_, err := Load(context.Background(), Config{File: path})
	require.ErrorIs(t, err, ErrEmpty)
}

func TestLoadFromCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "zebra\nquilt\n")
	}))
	defer srv.Close()

	d, err := Load(context.Background(), Config{Source: srv.URL, CacheDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "quilt"}, d.Words())
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	d, err := Load(context.Background(), Config{Source: srv.URL, CacheDir: t.TempDir()})
	require.NoError(t, err)
	assert.True(t, d.Contains("radio"))
}
