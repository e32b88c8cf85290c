// Package assets carries the built-in word list so the tools work offline.
package assets

import (
	"bufio"
	"embed"
	"io"
	"strings"
)

//go:embed words.txt
var FS embed.FS

// Open returns the raw embedded word list.
func Open() (io.ReadCloser, error) {
	return FS.Open("words.txt")
}

// Words returns the embedded list, skipping blank lines and # comments.
func Words() ([]string, error) {
	f, err := Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}
