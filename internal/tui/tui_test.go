package tui

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/wordman/wordman/internal/game"
	"github.com/wordman/wordman/internal/store"
)

type oneWord string

func (w oneWord) Pick(rng *rand.Rand) (string, string) { return "Drinks", string(w) }

type nopSaver struct{ snap store.Snapshot }

func (n nopSaver) Load(ctx context.Context) store.Snapshot  { return n.snap }
func (n nopSaver) Save(ctx context.Context, s store.Snapshot) {}

func text(rows []line) string {
	var parts []string
	for _, l := range rows {
		parts = append(parts, l.String())
	}
	return strings.Join(parts, "\n")
}

func TestCommandFor(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		r    rune
		want game.Command
		ok   bool
	}{
		{tcell.KeyRune, 'E', game.Guess("e"), true},
		{tcell.KeyRune, '1', game.Hint(), true},
		{tcell.KeyRune, '2', game.Skip(), true},
		{tcell.KeyEnter, 0, game.Restart(), true},
		{tcell.KeyRune, '#', game.Command{}, false},
		{tcell.KeyTab, 0, game.Command{}, false},
	}

	for _, tt := range tests {
		got, ok := commandFor(tt.key, tt.r)
		if got != tt.want || ok != tt.ok {
			t.Errorf("commandFor(%v, %q) = (%+v, %v), want (%+v, %v)", tt.key, tt.r, got, ok, tt.want, tt.ok)
		}
	}
}

func TestHandleKeyDrivesEngine(t *testing.T) {
	e := game.New(oneWord("tea"), nopSaver{}, game.Config{Seed: 1})
	e.Initialize(context.Background())
	a := &App{engine: e, running: true}

	for _, r := range "TEA" {
		a.handleKey(context.Background(), tcell.KeyRune, r)
	}
	if e.Phase() != game.PhaseWon {
		t.Errorf("phase = %v, want won", e.Phase())
	}

	a.handleKey(context.Background(), tcell.KeyEscape, 0)
	if a.running {
		t.Error("Esc should stop the loop")
	}
}

func TestLayoutInProgress(t *testing.T) {
	e := game.New(oneWord("coffee"), nopSaver{}, game.Config{Seed: 1})
	ctx := context.Background()
	e.Initialize(ctx)
	e.SubmitGuess(ctx, "f")
	e.SubmitGuess(ctx, "z")

	out := text(layout(e.View()))
	for _, want := range []string{
		"Wins 0   Loss 0   Skipped 0   Hints 2",
		"Category: Drinks",
		" _  _  F  F  _  _ ",
		"Guesses left: 11",
		"[1] Hint",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("layout missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "COFFEE") {
		t.Errorf("layout leaks the word:\n%s", out)
	}
}

func TestLayoutResultAndStart(t *testing.T) {
	e := game.New(oneWord("tea"), nopSaver{snap: store.Snapshot{CurrentWord: "rum"}}, game.Config{Seed: 1})
	ctx := context.Background()
	e.Initialize(ctx)

	out := text(layout(e.View()))
	if !strings.Contains(out, "Press Enter to start") {
		t.Errorf("restored game should wait for Start:\n%s", out)
	}
	if !strings.Contains(out, " _  _  _ ") || strings.Contains(out, "RUM") {
		t.Errorf("restored word should show three hidden boxes:\n%s", out)
	}

	e.RequestRestart(ctx)
	for _, l := range "qwxyzj" {
		e.SubmitGuess(ctx, string(l))
	}
	for _, l := range "bdfgkl" {
		e.SubmitGuess(ctx, string(l))
	}
	out = text(layout(e.View()))
	if !strings.Contains(out, "You have Lost") || !strings.Contains(out, "The word is TEA") {
		t.Errorf("loss screen missing result:\n%s", out)
	}
	if !strings.Contains(out, "[Enter] New Game") {
		t.Errorf("loss screen missing New Game control:\n%s", out)
	}
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	screen, err := wrap(tcell.NewSimulationScreen(""))
	if err != nil {
		t.Fatalf("simulation screen: %v", err)
	}
	e := game.New(oneWord("tea"), nopSaver{}, game.Config{Seed: 1})
	a := &App{screen: screen, engine: e, running: true}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	errc := make(chan error, 1)
	go func() { errc <- a.Run(ctx) }()

	select {
	case err := <-errc:
		if err != nil {
			t.Errorf("Run() = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after the context was cancelled")
	}
	if !e.Ready() {
		t.Error("engine was not initialized before the loop")
	}
}
