package httpserver

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wordman/wordman/internal/game"
	"github.com/wordman/wordman/internal/session"
	"github.com/wordman/wordman/internal/store"
)

type oneWord string

func (w oneWord) Pick(rng *rand.Rand) (string, string) { return "Animals", string(w) }
func (w oneWord) Stats() (int, int)                    { return 1, 1 }

// response mirrors gameRes for decoding.
type response struct {
	Phase          string `json:"phase"`
	Category       string `json:"category"`
	Word           string `json:"word"`
	Incorrect      int    `json:"incorrect"`
	MissesLeft     int    `json:"missesLeft"`
	HintsRemaining int    `json:"hintsRemaining"`
	Changed        bool   `json:"changed"`
	Score          struct {
		Wins   int `json:"wins"`
		Losses int `json:"losses"`
		Skips  int `json:"skips"`
	} `json:"score"`
	Letters []struct {
		Letter   string `json:"letter"`
		Revealed bool   `json:"revealed"`
	} `json:"letters"`
	Keyboard [][]struct {
		Letter  string `json:"letter"`
		State   string `json:"state"`
		Enabled bool   `json:"enabled"`
	} `json:"keyboard"`
}

// client keeps the player cookie between requests.
type client struct {
	t      *testing.T
	h      http.Handler
	cookie *http.Cookie
}

func newClient(t *testing.T, word string) (*client, store.KV) {
	t.Helper()
	kv := store.NewMemoryKV()
	mgr := session.NewManager(oneWord(word), kv, game.Config{Seed: 1}, zerolog.Nop())
	srv := New(mgr, oneWord(word), Options{PlayerSecret: "test-secret"}, zerolog.Nop())
	return &client{t: t, h: srv.Router()}, kv
}

func (c *client) do(method, path, body string) (*httptest.ResponseRecorder, response) {
	c.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)

	for _, ck := range rec.Result().Cookies() {
		if ck.Name == playerCookieName {
			c.cookie = ck
		}
	}
	var res response
	if rec.Code == http.StatusOK && strings.HasPrefix(path, "/game") {
		if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
			c.t.Fatalf("%s %s: decode %q: %v", method, path, rec.Body.String(), err)
		}
	}
	return rec, res
}

func TestHealth(t *testing.T) {
	c, _ := newClient(t, "cat")
	rec, _ := c.do(http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Errorf("GET /health = %d %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("Content-Type = %q, want JSON", ct)
	}
}

func TestNewPlayerGetsCookieAndRound(t *testing.T) {
	c, _ := newClient(t, "tiger")
	rec, res := c.do(http.MethodGet, "/game", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /game = %d %s", rec.Code, rec.Body.String())
	}
	if c.cookie == nil {
		t.Fatal("no player cookie issued")
	}
	if res.Phase != "in_progress" || res.Category != "Animals" || len(res.Letters) != 5 || res.HintsRemaining != 1 {
		t.Errorf("view = %+v", res)
	}
	if res.Word != "" {
		t.Errorf("word leaked before the round ended: %q", res.Word)
	}
	if len(res.Keyboard) != 3 {
		t.Errorf("keyboard rows = %d, want 3", len(res.Keyboard))
	}

	// Same cookie, same player: no new cookie is minted.
	old := c.cookie.Value
	c.do(http.MethodGet, "/game", "")
	if c.cookie.Value != old {
		t.Error("valid cookie was replaced")
	}
}

func TestPlayRoundToWin(t *testing.T) {
	c, kv := newClient(t, "cat")
	c.do(http.MethodGet, "/game", "")

	_, res := c.do(http.MethodPost, "/game/guess", `{"letter":"c"}`)
	if !res.Changed || res.Phase != "in_progress" {
		t.Fatalf("guess c: %+v", res)
	}
	_, res = c.do(http.MethodPost, "/game/guess", `{"key":"A"}`)
	if !res.Changed {
		t.Fatalf("raw key A was not applied: %+v", res)
	}
	_, res = c.do(http.MethodPost, "/game/guess", `{"letter":"t"}`)
	if res.Phase != "won" || res.Score.Wins != 1 || res.Word != "cat" {
		t.Fatalf("after c,a,t: %+v", res)
	}
	for _, row := range res.Keyboard {
		for _, k := range row {
			if k.Enabled {
				t.Errorf("key %s still enabled after win", k.Letter)
			}
		}
	}

	// The record lives under the player's key.
	raw, err := kv.Get(context.Background(), "wordman/"+mustPlayer(t, c))
	if err != nil {
		t.Fatalf("record not saved: %v", err)
	}
	if !strings.Contains(string(raw), `"wins":1`) || !strings.Contains(string(raw), `"currentWord":"cat"`) {
		t.Errorf("record = %s", raw)
	}
}

func TestIgnoredInputIsNotAnError(t *testing.T) {
	c, _ := newClient(t, "cat")
	c.do(http.MethodGet, "/game", "")

	for _, body := range []string{`{"letter":"1"}`, `{"key":"Shift"}`, `{}`} {
		rec, res := c.do(http.MethodPost, "/game/guess", body)
		if rec.Code != http.StatusOK || res.Changed || res.Incorrect != 0 {
			t.Errorf("POST /game/guess %s = %d %+v", body, rec.Code, res)
		}
	}

	c.do(http.MethodPost, "/game/guess", `{"letter":"z"}`)
	_, res := c.do(http.MethodPost, "/game/guess", `{"letter":"z"}`)
	if res.Changed || res.Incorrect != 1 {
		t.Errorf("repeat guess: %+v", res)
	}

	_, res = c.do(http.MethodPost, "/game/hint", "")
	if res.Changed {
		t.Errorf("hint on a three-letter word changed state: %+v", res)
	}
}

func TestBadJSON(t *testing.T) {
	c, _ := newClient(t, "cat")
	rec, _ := c.do(http.MethodPost, "/game/guess", `{"letter":`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad JSON = %d, want 400", rec.Code)
	}
}

func TestHintSkipRestart(t *testing.T) {
	c, _ := newClient(t, "elephant")
	c.do(http.MethodGet, "/game", "")

	_, res := c.do(http.MethodPost, "/game/hint", "")
	if !res.Changed || res.HintsRemaining != 2 || res.Incorrect != 0 {
		t.Errorf("hint: %+v", res)
	}

	_, res = c.do(http.MethodPost, "/game/skip", "")
	if res.Score.Skips != 1 || res.Phase != "in_progress" || res.HintsRemaining != 3 {
		t.Errorf("skip: %+v", res)
	}

	for _, l := range "qzxjwvbfykgu" {
		_, res = c.do(http.MethodPost, "/game/guess", `{"letter":"`+string(l)+`"}`)
	}
	if res.Phase != "lost" || res.Score.Losses != 1 || res.MissesLeft != 0 {
		t.Fatalf("after 12 misses: %+v", res)
	}

	_, res = c.do(http.MethodPost, "/game/restart", "")
	if res.Phase != "in_progress" || res.Incorrect != 0 || res.Score.Losses != 1 {
		t.Errorf("restart: %+v", res)
	}
}

func TestTamperedCookieStartsNewPlayer(t *testing.T) {
	c, _ := newClient(t, "cat")
	c.do(http.MethodGet, "/game", "")
	c.do(http.MethodPost, "/game/guess", `{"letter":"c"}`)
	first := mustPlayer(t, c)

	c.cookie = &http.Cookie{Name: playerCookieName, Value: c.cookie.Value + "x"}
	_, res := c.do(http.MethodGet, "/game", "")
	if mustPlayer(t, c) == first {
		t.Error("tampered token kept the same player")
	}
	if len(res.Letters) != 3 || res.Letters[0].Revealed {
		t.Errorf("new player should start clean: %+v", res)
	}
}

func TestCORSPreflight(t *testing.T) {
	c, _ := newClient(t, "cat")
	rec, _ := c.do(http.MethodOptions, "/game/guess", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("OPTIONS = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("missing credentialed CORS header")
	}
}

func TestNotFound(t *testing.T) {
	c, _ := newClient(t, "cat")
	rec, _ := c.do(http.MethodGet, "/nope", "")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "not_found") {
		t.Errorf("GET /nope = %d %s", rec.Code, rec.Body.String())
	}
}

// mustPlayer decodes the player ID from the client's cookie.
func mustPlayer(t *testing.T, c *client) string {
	t.Helper()
	s := &Server{secret: []byte("test-secret")}
	id, err := s.parsePlayerToken(c.cookie.Value)
	if err != nil {
		t.Fatalf("parse player token: %v", err)
	}
	return id
}
