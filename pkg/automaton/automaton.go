// Package automaton implements a trie-based multi-pattern scanner used to find
// banned words anywhere in free text.
//
// An Automaton is immutable once built and safe for concurrent use.
package automaton

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

type node struct {
	children map[rune]*node
	terminal bool
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// Automaton is a character trie over a lowercased word list.
type Automaton struct {
	root  *node
	words int
}

// Result is the outcome of one Detect call.
type Result struct {
	HasMatch bool     `json:"has_match"`
	Words    []string `json:"words,omitempty"`
}

// Build inserts every non-blank word, lowercased, into a fresh trie.
func Build(words []string) *Automaton {
	a := &Automaton{root: newNode()}
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		cur := a.root
		for _, r := range w {
			next, ok := cur.children[r]
			if !ok {
				next = newNode()
				cur.children[r] = next
			}
			cur = next
		}
		if !cur.terminal {
			cur.terminal = true
			a.words++
		}
	}
	return a
}

// Len returns the number of distinct words in the automaton.
func (a *Automaton) Len() int {
	if a == nil {
		return 0
	}
	return a.words
}

// Detect finds every configured word occurring in text, case-insensitively.
// From each start offset the walk continues past terminal nodes, so nested
// words sharing a prefix ("ab", "abc") are all reported. Words are sorted.
func (a *Automaton) Detect(text string) Result {
	words := a.Scan(text)
	return Result{HasMatch: len(words) > 0, Words: words}
}

// Scan returns the sorted, de-duplicated words found in text.
func (a *Automaton) Scan(text string) []string {
	if a == nil || a.words == 0 || text == "" {
		return nil
	}

	runes := []rune(strings.ToLower(text))
	found := make(map[string]struct{})
	for start := range runes {
		cur := a.root
		for i := start; i < len(runes); i++ {
			next, ok := cur.children[runes[i]]
			if !ok {
				break
			}
			cur = next
			if cur.terminal {
				found[string(runes[start:i+1])] = struct{}{}
			}
		}
	}

	if len(found) == 0 {
		return nil
	}
	out := make([]string, 0, len(found))
	for w := range found {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// ReadWords reads one word per line, trimming whitespace and skipping blank lines.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if line == "" {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word list: %w", err)
	}
	return words, nil
}

// LoadWordFile reads a word list file.
func LoadWordFile(path string) ([]string, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from user configuration
	if err != nil {
		return nil, fmt.Errorf("failed to open word list: %w", err)
	}
	defer func() { _ = f.Close() }()
	return ReadWords(f)
}
