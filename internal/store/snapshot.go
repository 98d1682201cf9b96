// internal/store/snapshot.go
//
// Persistence adapter: one JSON record per player under a single key.
//
// Record shape (field names are kept compatible with existing saves):
//
//	{"wins": 3, "loss": 1, "skips": 0, "currentWord": "tiger", "version": 1}
//
// Load never fails: missing, unreadable, corrupt or unknown-version records
// yield a zeroed Snapshot and a warning. Save is best effort; a failed write
// is logged and the previous record stays as it was.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultKey is the record key used by a single local player.
const DefaultKey = "wordman"

// SchemaVersion is written with every record. Records without a version are
// treated as version 1.
const SchemaVersion = 1

// Snapshot is the persisted session score plus the word in play.
type Snapshot struct {
	Wins        int    `json:"wins"`
	Losses      int    `json:"loss"`
	Skips       int    `json:"skips"`
	CurrentWord string `json:"currentWord,omitempty"`
	Version     int    `json:"version,omitempty"`
}

// Adapter loads and saves a Snapshot under one key of a KV.
type Adapter struct {
	kv  KV
	key string
	log zerolog.Logger
}

// NewAdapter binds a KV and key. An empty key means DefaultKey.
func NewAdapter(kv KV, key string, log zerolog.Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{kv: kv, key: key, log: log.With().Str("key", key).Logger()}
}

// Key returns the record key this adapter reads and writes.
func (a *Adapter) Key() string { return a.key }

// Load reads the record. It never returns an error; on any failure the
// zero Snapshot is returned.
func (a *Adapter) Load(ctx context.Context) Snapshot {
	raw, err := a.kv.Get(ctx, a.key)
	if errors.Is(err, ErrNotFound) {
		return Snapshot{}
	}
	if err != nil {
		a.log.Warn().Err(err).Msg("read snapshot; starting fresh")
		return Snapshot{}
	}

	var s Snapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		a.log.Warn().Err(err).Msg("corrupt snapshot; starting fresh")
		return Snapshot{}
	}
	if s.Version > SchemaVersion {
		a.log.Warn().Int("version", s.Version).Msg("unknown snapshot version; starting fresh")
		return Snapshot{}
	}
	if s.Wins < 0 || s.Losses < 0 || s.Skips < 0 {
		a.log.Warn().Int("wins", s.Wins).Int("loss", s.Losses).Int("skips", s.Skips).
			Msg("negative counters in snapshot; starting fresh")
		return Snapshot{}
	}
	s.CurrentWord = strings.ToLower(s.CurrentWord)
	if s.CurrentWord != "" && !isLetters(s.CurrentWord) {
		a.log.Warn().Str("currentWord", s.CurrentWord).Msg("invalid current word; dropping it")
		s.CurrentWord = ""
	}
	s.Version = SchemaVersion
	return s
}

// Save writes the record. Failures are logged, never returned.
func (a *Adapter) Save(ctx context.Context, s Snapshot) {
	s.Version = SchemaVersion
	raw, err := json.Marshal(s)
	if err != nil {
		a.log.Warn().Err(err).Msg("encode snapshot")
		return
	}
	if err := a.kv.Put(ctx, a.key, raw); err != nil {
		a.log.Warn().Err(err).Msg("save snapshot")
	}
}

// isLetters reports whether s is all lowercase ASCII letters.
func isLetters(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
