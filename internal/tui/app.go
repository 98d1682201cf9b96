package tui

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wordman/wordman/internal/game"
	"github.com/wordman/wordman/internal/input"
	"github.com/wordman/wordman/internal/telemetry"
)

// App runs one engine on a terminal screen.
type App struct {
	screen  *Screen
	engine  *game.Engine
	running bool
}

// New opens the terminal and binds it to engine.
func New(engine *game.Engine) (*App, error) {
	screen, err := NewScreen()
	if err != nil {
		return nil, err
	}
	return &App{screen: screen, engine: engine, running: true}, nil
}

// Run initializes the engine and executes the input loop until the player
// quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	tracer := telemetry.Tracer("tui")
	defer a.screen.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			a.screen.Interrupt()
		case <-done:
		}
	}()

	ctx, span := tracer.Start(ctx, "tui.init")
	a.engine.Initialize(ctx)
	span.SetAttributes(attribute.String("phase", a.engine.Phase().String()))
	span.End()

	for a.running {
		a.render()

		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventKey:
			a.handleKey(ctx, ev.Key(), ev.Rune())
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventInterrupt:
			// posted on cancellation
			a.running = false
		case nil:
			// screen finalized
			a.running = false
		}
	}
	return nil
}

// handleKey quits on Esc/Ctrl-C and otherwise feeds the engine.
func (a *App) handleKey(ctx context.Context, key tcell.Key, r rune) {
	if key == tcell.KeyEscape || key == tcell.KeyCtrlC {
		a.running = false
		return
	}
	if cmd, ok := commandFor(key, r); ok {
		a.engine.Dispatch(ctx, cmd)
	}
}

// commandFor maps a tcell key event to an engine command.
func commandFor(key tcell.Key, r rune) (game.Command, bool) {
	switch key {
	case tcell.KeyEnter:
		return input.FromKey(input.KeyRestart)
	case tcell.KeyRune:
		return input.FromKey(string(r))
	}
	return game.Command{}, false
}

func (a *App) render() {
	a.screen.Clear()
	w, h := a.screen.Size()
	rows := layout(a.engine.View())
	top := max((h-len(rows))/2, 0)
	for i, l := range rows {
		x := max((w-len([]rune(l.String())))/2, 0)
		for _, seg := range l {
			x = a.screen.DrawText(x, top+i, seg.text, seg.style)
		}
	}
	a.screen.Show()
}
