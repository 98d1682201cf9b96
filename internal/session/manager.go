// internal/session/manager.go
//
// Per-player engine registry for the HTTP server.
// Responsibilities:
//   - Lazily create one game.Engine per player, bound to that player's record
//     ("wordman/<player-id>") in the shared KV.
//   - Initialize each engine before its first command (the ready gate).
//   - Serialize commands per player; different players run in parallel.
//   - Keep at most MaxPlayers engines, dropping the least recently used and
//     any idle longer than the idle timeout.
//   - Trace every command.
//
// Notes:
//   - The KV record is what survives eviction and restarts; an evicted player
//     is rebuilt from it on the next request.
//   - Nothing is written for a player until their first command, so a bare
//     GET /game from a cookieless client leaves no record behind.

package session

import (
	"context"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/wordman/wordman/internal/game"
	"github.com/wordman/wordman/internal/store"
	"github.com/wordman/wordman/internal/telemetry"
)

// Defaults for the engine cache.
const (
	DefaultMaxPlayers = 10000
	DefaultIdle       = 30 * time.Minute
)

// Option customizes a Manager.
type Option func(*Manager)

// WithLimits bounds the number of engines kept in memory and how long an idle
// one survives. Non-positive values keep the defaults.
func WithLimits(maxPlayers int, idle time.Duration) Option {
	return func(m *Manager) {
		if maxPlayers > 0 {
			m.maxPlayers = maxPlayers
		}
		if idle > 0 {
			m.idle = idle
		}
	}
}

// Manager owns the engines of all players seen recently.
type Manager struct {
	words  game.WordPicker
	kv     store.KV
	cfg    game.Config
	log    zerolog.Logger
	tracer trace.Tracer

	maxPlayers int
	idle       time.Duration

	mu      sync.Mutex // makes get-or-create atomic
	players *expirable.LRU[string, *player]
}

// player pairs an engine with the lock that serializes it.
type player struct {
	mu     sync.Mutex
	engine *game.Engine
	saver  *deferredSaver
}

// deferredSaver drops saves until the player has issued a command.
type deferredSaver struct {
	*store.Adapter
	armed bool
}

func (d *deferredSaver) Save(ctx context.Context, s store.Snapshot) {
	if d.armed {
		d.Adapter.Save(ctx, s)
	}
}

// NewManager constructs an empty Manager.
func NewManager(words game.WordPicker, kv store.KV, cfg game.Config, log zerolog.Logger, opts ...Option) *Manager {
	m := &Manager{
		words:      words,
		kv:         kv,
		cfg:        cfg,
		log:        log,
		tracer:     telemetry.Tracer("session"),
		maxPlayers: DefaultMaxPlayers,
		idle:       DefaultIdle,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.players = expirable.NewLRU[string, *player](m.maxPlayers, func(id string, _ *player) {
		m.log.Debug().Str("player", id).Msg("engine evicted")
	}, m.idle)
	return m
}

// KeyFor returns the KV key holding a player's record.
func KeyFor(playerID string) string {
	return store.DefaultKey + "/" + playerID
}

// View returns the current view for a player, creating the player if needed.
func (m *Manager) View(ctx context.Context, playerID string) game.View {
	p := m.get(playerID)
	p.mu.Lock()
	defer p.mu.Unlock()
	m.ensureReady(ctx, p)
	return p.engine.View()
}

// Dispatch runs cmd on a player's engine and returns the resulting view and
// whether anything changed.
func (m *Manager) Dispatch(ctx context.Context, playerID string, cmd game.Command) (game.View, bool) {
	ctx, span := m.tracer.Start(ctx, "session.dispatch",
		trace.WithAttributes(attribute.String("command", cmd.Kind.String())))
	defer span.End()

	p := m.get(playerID)
	p.mu.Lock()
	defer p.mu.Unlock()
	m.ensureReady(ctx, p)
	p.saver.armed = true

	changed := p.engine.Dispatch(ctx, cmd)
	v := p.engine.View()
	span.SetAttributes(
		attribute.Bool("changed", changed),
		attribute.String("phase", v.Phase.String()),
	)
	return v, changed
}

// Len reports how many players have an engine in memory.
func (m *Manager) Len() int {
	return m.players.Len()
}

// get returns the player's entry, refreshing its idle deadline.
func (m *Manager) get(playerID string) *player {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.players.Get(playerID)
	if !ok {
		log := m.log.With().Str("player", playerID).Logger()
		saver := &deferredSaver{Adapter: store.NewAdapter(m.kv, KeyFor(playerID), log)}
		p = &player{engine: game.New(m.words, saver, m.cfg, game.WithLogger(log)), saver: saver}
	}
	m.players.Add(playerID, p)
	return p
}

// ensureReady initializes the engine on first use. Caller holds p.mu.
func (m *Manager) ensureReady(ctx context.Context, p *player) {
	if p.engine.Ready() {
		return
	}
	ctx, span := m.tracer.Start(ctx, "session.initialize")
	defer span.End()
	p.engine.Initialize(ctx)
}
