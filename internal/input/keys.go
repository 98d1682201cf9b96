// Package input turns raw key presses into engine commands.
//
// Physical keyboards, on-screen key buttons and HTTP requests all go through
// the same normalization so every transport funnels into game.Engine.Dispatch.
package input

import (
	"strings"
	"unicode/utf8"

	"github.com/wordman/wordman/internal/game"
)

// KeyboardRows is the on-screen QWERTY layout.
var KeyboardRows = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

// Control key names accepted by FromKey besides letters.
const (
	KeyHint    = "1"
	KeySkip    = "2"
	KeyRestart = "enter"
)

// NormalizeKey lower-cases key and accepts it only if it is a single a–z letter.
func NormalizeKey(key string) (string, bool) {
	k := strings.ToLower(key)
	if utf8.RuneCountInString(k) != 1 {
		return "", false
	}
	if k[0] < 'a' || k[0] > 'z' {
		return "", false
	}
	return k, true
}

// FromKey maps a key name to a command. Letters become guesses; the control
// keys map to hint, skip and restart. Anything else is ignored.
func FromKey(key string) (game.Command, bool) {
	if l, ok := NormalizeKey(key); ok {
		return game.Guess(l), true
	}
	switch strings.ToLower(key) {
	case KeyHint:
		return game.Hint(), true
	case KeySkip:
		return game.Skip(), true
	case KeyRestart:
		return game.Restart(), true
	}
	return game.Command{}, false
}

// KeyState is how a keyboard key should be drawn.
type KeyState string

const (
	KeyUnused  KeyState = "unused"
	KeyCorrect KeyState = "correct"
	KeyWrong   KeyState = "wrong"
)

// Key is one on-screen key.
type Key struct {
	Letter  string   `json:"letter"`
	State   KeyState `json:"state"`
	Enabled bool     `json:"enabled"`
}

// Keyboard annotates the QWERTY layout with the state of each key in v.
// Keys are enabled only while the round is in progress and unguessed.
func Keyboard(v game.View) [][]Key {
	rows := make([][]Key, len(KeyboardRows))
	for i, row := range KeyboardRows {
		keys := make([]Key, 0, len(row))
		for _, r := range row {
			l := string(r)
			k := Key{Letter: l, State: KeyUnused}
			switch {
			case v.IsCorrect(l):
				k.State = KeyCorrect
			case v.HasGuessed(l):
				k.State = KeyWrong
			default:
				k.Enabled = v.Phase == game.PhaseInProgress
			}
			keys = append(keys, k)
		}
		rows[i] = keys
	}
	return rows
}
