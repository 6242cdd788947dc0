// internal/stats/stats.go
//
// Letter-position frequency table.
// Responsibilities:
//   - Build the table once from a word corpus (FromWords).
//   - Read and write the serialized form: {"a": [n0, n1, n2, n3, n4], ...}.
//
// A Table is immutable after construction and safe to share between goroutines.

package stats

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/robalobadob/wordlebot/internal/knowledge"
)

// ErrMalformed wraps every parse failure of a serialized table.
var ErrMalformed = errors.New("stats: malformed letter table")

// Table holds occurrence counts of each letter at each of the five positions.
type Table struct {
	counts [26][knowledge.WordLen]int
	words  int
}

// FromWords counts letters by position over words. Entries that are not five
// lowercase letters are skipped. An empty corpus yields an all-zero table.
func FromWords(words []string) *Table {
	t := &Table{}
	for _, w := range words {
		if knowledge.ValidateWord(w) != nil {
			continue
		}
		for i := 0; i < knowledge.WordLen; i++ {
			t.counts[w[i]-'a'][i]++
		}
		t.words++
	}
	return t
}

// Count returns how often letter c occurs at position pos.
func (t *Table) Count(c byte, pos int) int {
	if c < 'a' || c > 'z' || pos < 0 || pos >= knowledge.WordLen {
		return 0
	}
	return t.counts[c-'a'][pos]
}

// Words is the number of corpus words the table was built from.
func (t *Table) Words() int { return t.words }

// Positions returns the five counts of letter c.
func (t *Table) Positions(c byte) [knowledge.WordLen]int {
	if c < 'a' || c > 'z' {
		return [knowledge.WordLen]int{}
	}
	return t.counts[c-'a']
}

// MarshalJSON writes one five-count array per letter, keys in alphabetical order.
func (t *Table) MarshalJSON() ([]byte, error) {
	rows := make(map[string][knowledge.WordLen]int, 26)
	for l := 0; l < 26; l++ {
		rows[string(rune('a'+l))] = t.counts[l]
	}
	return json.MarshalIndent(rows, "", "  ")
}

// Parse reads a serialized table. Letters missing from the input count as zero.
func Parse(data []byte) (*Table, error) {
	var raw map[string][]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := &Table{}
	var seen knowledge.LetterSet
	for _, k := range keys {
		row := raw[k]
		letter := strings.ToLower(k)
		if len(letter) != 1 || letter[0] < 'a' || letter[0] > 'z' {
			return nil, fmt.Errorf("%w: key %q is not a letter", ErrMalformed, k)
		}
		if seen.Has(letter[0]) {
			return nil, fmt.Errorf("%w: letter %q appears more than once", ErrMalformed, letter)
		}
		seen = seen.Add(letter[0])
		if len(row) != knowledge.WordLen {
			return nil, fmt.Errorf("%w: %q has %d counts, want %d", ErrMalformed, k, len(row), knowledge.WordLen)
		}
		for i, n := range row {
			if n < 0 {
				return nil, fmt.Errorf("%w: %q has negative count at position %d", ErrMalformed, k, i)
			}
			t.counts[letter[0]-'a'][i] = n
		}
	}
	for l := 0; l < 26; l++ {
		t.words += t.counts[l][0]
	}
	return t, nil
}

// Load reads a serialized table from path.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return t, nil
}

// Save writes the table to path.
func (t *Table) Save(path string) error {
	data, err := t.MarshalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
