// Package assets embeds the default data shipped with the binary: the word list,
// the per-turn weight table and the SQLite migrations.
package assets

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
)

//go:embed wordlist.txt solver_config.json sql/*.sql
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
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
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// WordList returns the default corpus, one word per entry.
func WordList() ([]string, error) {
	return readLines("wordlist.txt")
}

// SolverConfig returns the raw default weight table (JSON).
func SolverConfig() ([]byte, error) {
	return FS.ReadFile("solver_config.json")
}

// Migrations exposes the sql/ directory.
func Migrations() (fs.FS, error) {
	return fs.Sub(FS, "sql")
}
