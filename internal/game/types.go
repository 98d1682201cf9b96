// internal/game/types.go
//
// Core type definitions for the Wordman game engine.
// Defines:
//   - Phase: coarse game status (not started / in progress / won / lost).
//   - Score: the persisted win/loss/skip counters.
//   - Round: the word in play and its hint budget.
//   - Command: the input-agnostic actions the engine accepts.
//   - View: the read-only snapshot handed to presentation layers.

package game

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/wordman/wordman/internal/collections"
	"github.com/wordman/wordman/internal/store"
)

// MaxIncorrect is the number of wrong guesses that loses a round.
const MaxIncorrect = 12

// maxHints caps the hint budget of a round.
const maxHints = 3

// Phase is the coarse state of the engine.
type Phase int

const (
	PhaseNotStarted Phase = iota
	PhaseInProgress
	PhaseWon
	PhaseLost
)

// String returns the wire name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseInProgress:
		return "in_progress"
	case PhaseWon:
		return "won"
	case PhaseLost:
		return "lost"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name so JSON views read naturally.
func (p Phase) MarshalText() ([]byte, error) {
	if p < PhaseNotStarted || p > PhaseLost {
		return nil, fmt.Errorf("game: invalid phase %d", int(p))
	}
	return []byte(p.String()), nil
}

// Over reports whether the round has been resolved.
func (p Phase) Over() bool { return p == PhaseWon || p == PhaseLost }

// Score holds the cumulative counters persisted across rounds and reloads.
type Score struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Skips  int `json:"skips"`
}

// Round is one playthrough of a single word.
type Round struct {
	Category       string                // "" when restored from a save
	Word           string                // lowercase a–z
	Letters        collections.Set[rune] // unique letters of Word
	HintsRemaining int
}

// hintBudget returns min(max(len(word)-4, 0), 3).
func hintBudget(word string) int {
	return min(max(len(word)-4, 0), maxHints)
}

func newRound(category, word string) Round {
	return Round{
		Category:       category,
		Word:           word,
		Letters:        collections.SetOf([]rune(word)...),
		HintsRemaining: hintBudget(word),
	}
}

// guessState is reset at the start of every round.
// incorrect always equals |all − correct|.
type guessState struct {
	all       collections.Set[rune]
	correct   collections.Set[rune]
	incorrect int
}

func newGuessState() guessState {
	return guessState{all: collections.Set[rune]{}, correct: collections.Set[rune]{}}
}

// WordPicker supplies a random (category, lowercase word) pair.
// *words.Bank satisfies it.
type WordPicker interface {
	Pick(rng *rand.Rand) (category, word string)
}

// Persister loads and saves the session record. It must never fail loudly;
// *store.Adapter satisfies it.
type Persister interface {
	Load(ctx context.Context) store.Snapshot
	Save(ctx context.Context, s store.Snapshot)
}

// CommandKind enumerates the actions an input transport can request.
type CommandKind int

const (
	KindGuess CommandKind = iota
	KindHint
	KindSkip
	KindRestart
)

// String returns a human-readable command name.
func (k CommandKind) String() string {
	switch k {
	case KindGuess:
		return "guess"
	case KindHint:
		return "hint"
	case KindSkip:
		return "skip"
	case KindRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Command is a single request to the engine.
type Command struct {
	Kind   CommandKind
	Letter string // only for KindGuess
}

// Guess builds a guess command for one letter.
func Guess(letter string) Command { return Command{Kind: KindGuess, Letter: letter} }

// Hint builds a hint request.
func Hint() Command { return Command{Kind: KindHint} }

// Skip builds a skip request.
func Skip() Command { return Command{Kind: KindSkip} }

// Restart builds a restart (start / new game) request.
func Restart() Command { return Command{Kind: KindRestart} }

// LetterView is one box of the word display.
// Letter is empty while the letter is hidden.
type LetterView struct {
	Letter   string `json:"letter,omitempty"`
	Revealed bool   `json:"revealed"`
}

// View is an immutable snapshot of everything a presentation layer needs.
type View struct {
	Phase          Phase        `json:"phase"`
	Score          Score        `json:"score"`
	Category       string       `json:"category"`
	Letters        []LetterView `json:"letters"`
	Guessed        []string     `json:"guessed"`
	Correct        []string     `json:"correct"`
	Incorrect      int          `json:"incorrect"`
	MissesLeft     int          `json:"missesLeft"`
	MaxIncorrect   int          `json:"maxIncorrect"`
	HintsRemaining int          `json:"hintsRemaining"`
	Word           string       `json:"word,omitempty"` // set once the round is over
}

// HasGuessed reports whether letter has been guessed this round.
func (v View) HasGuessed(letter string) bool {
	for _, g := range v.Guessed {
		if g == letter {
			return true
		}
	}
	return false
}

// IsCorrect reports whether letter was a correct guess this round.
func (v View) IsCorrect(letter string) bool {
	for _, g := range v.Correct {
		if g == letter {
			return true
		}
	}
	return false
}
