// internal/words/words.go
//
// Word corpus management for the solver.
//
// Responsibilities:
//   - Load the corpus from a file, a reader, or the embedded default list.
//   - Keep only valid 5-letter lowercase words, in file order, without duplicates.
//   - Answer membership queries and pick hidden targets.
//
// Target subset:
//   The leading part of the corpus is used to tune the opening guesses, so self-play
//   draws its hidden targets from the entries at index >= TargetOffset. When the
//   corpus is not longer than the offset the whole corpus is used.
//
// A Corpus is immutable once built and safe for concurrent reads.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"

	"github.com/robalobadob/wordlebot/assets"
)

// DefaultTargetOffset is where the target subset starts in the full word list.
const DefaultTargetOffset = 10657

// ErrEmpty is returned when no valid 5-letter word was found.
var ErrEmpty = errors.New("words: word list is empty")

// Corpus is an ordered, de-duplicated list of 5-letter words.
type Corpus struct {
	words []string
	set   map[string]struct{}
}

// New builds a corpus from raw entries, normalizing case and dropping invalid ones.
func New(entries []string) (*Corpus, error) {
	c := &Corpus{set: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		w := strings.TrimSpace(strings.ToLower(e))
		if len(w) != 5 || !isAlpha(w) {
			continue
		}
		if _, dup := c.set[w]; dup {
			continue
		}
		c.set[w] = struct{}{}
		c.words = append(c.words, w)
	}
	if len(c.words) == 0 {
		return nil, ErrEmpty
	}
	return c, nil
}

// Read loads one word per line from r.
func Read(r io.Reader) (*Corpus, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return New(lines)
}

// Load reads the corpus at path, or the embedded default list when path is empty.
func Load(path string) (*Corpus, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open word list: %w", err)
	}
	defer f.Close()
	c, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return c, nil
}

// Default returns the word list embedded in the binary.
func Default() (*Corpus, error) {
	lines, err := assets.WordList()
	if err != nil {
		return nil, err
	}
	return New(lines)
}

// Words returns every word in corpus order. The slice must not be modified.
func (c *Corpus) Words() []string { return c.words }

// Len is the number of words.
func (c *Corpus) Len() int { return len(c.words) }

// Contains reports whether w is in the corpus.
func (c *Corpus) Contains(w string) bool {
	_, ok := c.set[strings.ToLower(w)]
	return ok
}

// Targets returns the subset eligible as hidden self-play targets.
func (c *Corpus) Targets(offset int) []string {
	if offset <= 0 || len(c.words) <= offset {
		return c.words
	}
	return c.words[offset:]
}

// RandomAnswer returns a cryptographically random word from the target subset.
func (c *Corpus) RandomAnswer(offset int) string {
	targets := c.Targets(offset)
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(targets))))
	return targets[nBig.Int64()]
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
