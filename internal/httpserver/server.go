// internal/httpserver/server.go
//
// HTTP server wiring for the Wordman backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Game endpoints under /game, one engine per anonymous player:
//       GET  /game          → current view
//       POST /game/guess    → {"letter":"a"} or {"key":"A"}
//       POST /game/hint
//       POST /game/skip
//       POST /game/restart  → "Start" / "New Game"
//
// Notes:
//   - CORS is origin-aware and credentials-enabled (so the player cookie works).
//   - Ignored input is not an error: the unchanged view comes back with changed=false.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/wordman/wordman/internal/game"
	"github.com/wordman/wordman/internal/input"
	"github.com/wordman/wordman/internal/session"
)

// WordStats reports the size of the loaded word bank. *words.Bank satisfies it.
type WordStats interface {
	Stats() (categories int, words int)
}

// Options configures cross-cutting HTTP behaviour.
type Options struct {
	ClientOrigin string // allowed CORS origin
	PlayerSecret string // HMAC key for player tokens
	SecureCookie bool   // set Secure/SameSite=None on cookies
}

// Server bundles router, session manager and logger.
type Server struct {
	r            *chi.Mux
	sessions     *session.Manager
	bank         WordStats
	log          zerolog.Logger
	secret       []byte
	secureCookie bool
}

// New constructs a Server, installs middleware, and registers routes.
func New(sessions *session.Manager, bank WordStats, opts Options, log zerolog.Logger) *Server {
	s := &Server{
		r:            chi.NewRouter(),
		sessions:     sessions,
		bank:         bank,
		log:          log,
		secret:       []byte(opts.PlayerSecret),
		secureCookie: opts.SecureCookie,
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log))            // request-scoped logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"service":"wordman","endpoints":["/health","GET /game","POST /game/guess","POST /game/hint","POST /game/skip","POST /game/restart"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		c, n := s.bank.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"categories": c, "words": n, "players": s.sessions.Len()})
	})

	// --- game ---
	s.r.Route("/game", func(r chi.Router) {
		r.Use(s.withPlayer)
		r.Get("/", s.handleView)
		r.Post("/guess", s.handleGuess)
		r.Post("/hint", s.command(game.Hint()))
		r.Post("/skip", s.command(game.Skip()))
		r.Post("/restart", s.command(game.Restart()))
	})

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
	})

	return s
}

// Start serves HTTP on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.r, ReadHeaderTimeout: 5 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// accessLog writes one structured line per request via the request logger.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	hlog.FromRequest(r).Debug().
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("reqId", chimw.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("took", d).
		Msg("request")
})

// ------------------------------ GAME ---------------------------------------

// gameRes is the payload of every /game endpoint.
type gameRes struct {
	game.View
	Keyboard [][]input.Key `json:"keyboard"`
	Changed  bool          `json:"changed"`
}

// guessReq is the body of POST /game/guess. Letter wins over Key.
type guessReq struct {
	Letter string `json:"letter"`
	Key    string `json:"key"` // raw key name from a physical keyboard
}

// handleView returns the player's current view.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	v := s.sessions.View(r.Context(), playerID(r))
	writeGame(w, v, false)
}

// handleGuess normalizes the submitted key and applies it as a guess.
// Keys that are not letters are ignored, like any other invalid guess.
func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	raw := req.Letter
	if raw == "" {
		raw = req.Key
	}

	id := playerID(r)
	letter, ok := input.NormalizeKey(raw)
	if !ok {
		writeGame(w, s.sessions.View(r.Context(), id), false)
		return
	}
	v, changed := s.sessions.Dispatch(r.Context(), id, game.Guess(letter))
	writeGame(w, v, changed)
}

// command returns a handler that dispatches a fixed command.
func (s *Server) command(cmd game.Command) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		v, changed := s.sessions.Dispatch(r.Context(), playerID(r), cmd)
		writeGame(w, v, changed)
	}
}

func writeGame(w http.ResponseWriter, v game.View, changed bool) {
	_ = json.NewEncoder(w).Encode(gameRes{View: v, Keyboard: input.Keyboard(v), Changed: changed})
}
