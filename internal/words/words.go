// internal/words/words.go
//
// Word bank for the game engine.
//
// Responsibilities:
//   - Load categorized word lists from a YAML file or fall back to the embedded default.
//   - Validate the bank up front so a bad configuration fails at startup, not mid-round.
//   - Pick a random (category, word) pair from an injected random source.
//
// File format:
//
//	categories:
//	  - name: Animals
//	    words: [elephant, giraffe]
//
// Environment variables (read by the caller):
//   WORDS_FILE=/path/to/categories.yaml
//
// Constraints:
//   • Every category has a name and at least one word.
//   • Words are normalized to lowercase and must be letters a–z only.

package words

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/wordman/wordman/assets"
)

// ErrEmpty is returned when a bank has no categories.
var ErrEmpty = errors.New("words: bank is empty")

// Category is a named, ordered list of candidate words.
type Category struct {
	Name  string   `yaml:"name"`
	Words []string `yaml:"words"`
}

type bankFile struct {
	Categories []Category `yaml:"categories"`
}

// Bank is an immutable, validated set of categories.
type Bank struct {
	categories []Category
}

// Load reads a bank from path, or the embedded default when path is empty.
func Load(path string) (*Bank, error) {
	var (
		raw []byte
		err error
	)
	if path == "" {
		raw, err = assets.Categories()
		path = "embedded categories.yaml"
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("words: read %s: %w", path, err)
	}
	b, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("words: %s: %w", path, err)
	}
	return b, nil
}

// Parse decodes a YAML bank and validates it.
func Parse(raw []byte) (*Bank, error) {
	var f bankFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return New(f.Categories)
}

// New validates and normalizes categories into a Bank.
// The input slice is copied.
func New(categories []Category) (*Bank, error) {
	if len(categories) == 0 {
		return nil, ErrEmpty
	}
	out := make([]Category, 0, len(categories))
	for i, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("category #%d has no name", i+1)
		}
		if len(c.Words) == 0 {
			return nil, fmt.Errorf("category %q has no words", name)
		}
		list := make([]string, 0, len(c.Words))
		for _, w := range c.Words {
			w = strings.ToLower(strings.TrimSpace(w))
			if w == "" || !IsAlpha(w) {
				return nil, fmt.Errorf("category %q: invalid word %q (letters a-z only)", name, w)
			}
			list = append(list, w)
		}
		out = append(out, Category{Name: name, Words: list})
	}
	return &Bank{categories: out}, nil
}

// Pick selects a category uniformly at random, then a word uniformly at
// random within it. The word is lowercase.
func (b *Bank) Pick(rng *rand.Rand) (category, word string) {
	c := b.categories[rng.Intn(len(b.categories))]
	return c.Name, c.Words[rng.Intn(len(c.Words))]
}

// Categories returns the category names in file order.
func (b *Bank) Categories() []string {
	names := make([]string, len(b.categories))
	for i, c := range b.categories {
		names[i] = c.Name
	}
	return names
}

// Stats returns counts of loaded categories and words.
func (b *Bank) Stats() (categories int, words int) {
	for _, c := range b.categories {
		words += len(c.Words)
	}
	return len(b.categories), words
}

// IsAlpha reports whether s is non-empty and all lowercase ASCII letters.
func IsAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
