// internal/game/engine.go
//
// Core game engine for a single Wordman player.
// Responsibilities:
//   - Restore the session score (and the word in play) from the persister.
//   - Pick new rounds from the word bank and size their hint budget.
//   - Apply letter guesses, hints, skips and restarts.
//   - Track state transitions: not started → in progress → won/lost → in progress.
//   - Persist the score and current word after every change, once ready.
//
// Notes:
//   - guessLetter is the only primitive that touches guess state; keyboard
//     input and hints both go through it.
//   - The engine is not safe for concurrent use; callers serialize access
//     (see internal/session).
package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/wordman/wordman/internal/store"
)

// Config holds engine options.
type Config struct {
	// Seed for word and hint selection. A seed of 0 means a time-based seed.
	Seed int64
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRand injects the random source, overriding Config.Seed.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithLogger sets the engine logger (default: no-op).
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// Engine owns all mutable state of one player's game.
type Engine struct {
	words WordPicker
	saver Persister
	rng   *rand.Rand
	log   zerolog.Logger

	score Score
	round Round
	guess guessState
	phase Phase
	ready bool // set once Initialize has loaded the save; gates persist
}

// New constructs an engine in PhaseNotStarted. Call Initialize before use.
func New(words WordPicker, saver Persister, cfg Config, opts ...Option) *Engine {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e := &Engine{
		words: words,
		saver: saver,
		rng:   rand.New(rand.NewSource(seed)),
		log:   zerolog.Nop(),
		guess: newGuessState(),
		phase: PhaseNotStarted,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize loads the persisted snapshot and prepares the first round.
//
// When the save carries a current word, that word is restored with an empty
// guess state; its category and hint budget are not part of the save, so the
// round sits in PhaseNotStarted until the player restarts. Otherwise a new
// round is started. Calling Initialize again is a no-op.
func (e *Engine) Initialize(ctx context.Context) {
	if e.ready {
		return
	}
	snap := e.saver.Load(ctx)
	e.score = Score{Wins: snap.Wins, Losses: snap.Losses, Skips: snap.Skips}

	if snap.CurrentWord != "" {
		e.round = newRound("", snap.CurrentWord)
		e.round.HintsRemaining = 0
		e.guess = newGuessState()
		e.log.Debug().Int("length", len(snap.CurrentWord)).Msg("restored word from save")
	} else {
		e.startNewRound(ctx)
	}

	e.ready = true
	e.persist(ctx)
}

// Ready reports whether Initialize has completed.
func (e *Engine) Ready() bool { return e.ready }

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Dispatch runs one command and reports whether engine state changed.
func (e *Engine) Dispatch(ctx context.Context, cmd Command) bool {
	switch cmd.Kind {
	case KindGuess:
		return e.SubmitGuess(ctx, cmd.Letter)
	case KindHint:
		return e.RequestHint(ctx)
	case KindSkip:
		e.RequestSkip(ctx)
		return true
	case KindRestart:
		e.RequestRestart(ctx)
		return true
	default:
		return false
	}
}

// SubmitGuess guesses one lowercase letter. Invalid, repeated or
// out-of-phase guesses are ignored and return false.
func (e *Engine) SubmitGuess(ctx context.Context, letter string) bool {
	return e.guessLetter(ctx, letter)
}

// RequestHint reveals one unguessed letter of the word if the budget allows.
func (e *Engine) RequestHint(ctx context.Context) bool {
	return e.hint(ctx)
}

// RequestSkip counts a skip and starts a new round.
func (e *Engine) RequestSkip(ctx context.Context) {
	e.skip(ctx)
}

// RequestRestart starts a new round (the "Start" / "New Game" action).
func (e *Engine) RequestRestart(ctx context.Context) {
	e.restart(ctx)
}

// startNewRound draws a word and resets guess state.
func (e *Engine) startNewRound(ctx context.Context) {
	category, word := e.words.Pick(e.rng)
	e.round = newRound(category, word)
	e.guess = newGuessState()
	e.phase = PhaseInProgress
	e.log.Debug().Str("category", category).Int("length", len(word)).
		Int("hints", e.round.HintsRemaining).Msg("new round")
	e.persist(ctx)
}

// guessLetter is the single mutation primitive for guesses.
func (e *Engine) guessLetter(ctx context.Context, letter string) bool {
	if e.phase != PhaseInProgress || len(letter) != 1 {
		return false
	}
	r := rune(letter[0])
	if r < 'a' || r > 'z' || e.guess.all.Contains(r) {
		return false
	}

	e.guess.all.Add(r)
	if e.round.Letters.Contains(r) {
		e.guess.correct.Add(r)
	} else {
		e.guess.incorrect++
	}
	e.checkEndConditions(ctx)
	return true
}

// checkEndConditions resolves the round once. Loss is checked first.
func (e *Engine) checkEndConditions(ctx context.Context) {
	if e.phase != PhaseInProgress {
		return
	}
	switch {
	case e.guess.incorrect == MaxIncorrect:
		e.phase = PhaseLost
		e.score.Losses++
		e.log.Info().Int("losses", e.score.Losses).Msg("round lost")
	case e.guess.correct.Equal(e.round.Letters):
		e.phase = PhaseWon
		e.score.Wins++
		e.log.Info().Int("wins", e.score.Wins).Msg("round won")
	default:
		return
	}
	e.persist(ctx)
}

// hint guesses a random letter of the word that has not been found yet.
func (e *Engine) hint(ctx context.Context) bool {
	if e.round.HintsRemaining == 0 || e.phase != PhaseInProgress {
		return false
	}
	missing := e.round.Letters.Difference(e.guess.correct).Sorted()
	if len(missing) == 0 {
		e.log.Warn().Msg("hint requested with no letters left")
		return false
	}
	letter := missing[e.rng.Intn(len(missing))]
	e.round.HintsRemaining--
	return e.guessLetter(ctx, string(letter))
}

// skip counts the skip, then restarts; the restart persists both.
func (e *Engine) skip(ctx context.Context) {
	e.score.Skips++
	e.restart(ctx)
}

// restart clears the round and draws a new word.
func (e *Engine) restart(ctx context.Context) {
	e.guess = newGuessState()
	e.startNewRound(ctx)
}

// persist writes the score and current word. No-op until ready.
func (e *Engine) persist(ctx context.Context) {
	if !e.ready {
		return
	}
	e.saver.Save(ctx, store.Snapshot{
		Wins:        e.score.Wins,
		Losses:      e.score.Losses,
		Skips:       e.score.Skips,
		CurrentWord: e.round.Word,
	})
}

// View returns a read-only snapshot of the engine state.
func (e *Engine) View() View {
	v := View{
		Phase:          e.phase,
		Score:          e.score,
		Category:       e.round.Category,
		Guessed:        lettersOf(e.guess.all.Sorted()),
		Correct:        lettersOf(e.guess.correct.Sorted()),
		Incorrect:      e.guess.incorrect,
		MissesLeft:     MaxIncorrect - e.guess.incorrect,
		MaxIncorrect:   MaxIncorrect,
		HintsRemaining: e.round.HintsRemaining,
	}
	// A restored word shows its hidden boxes before the player starts.
	v.Letters = make([]LetterView, 0, len(e.round.Word))
	for _, r := range e.round.Word {
		if e.guess.all.Contains(r) {
			v.Letters = append(v.Letters, LetterView{Letter: string(r), Revealed: true})
		} else {
			v.Letters = append(v.Letters, LetterView{})
		}
	}
	if e.phase.Over() {
		v.Word = e.round.Word
	}
	return v
}

func lettersOf(rs []rune) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}
