package phh

import (
	"bytes"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"github.com/lox/headsup/internal/game"
)

// Encode writes the hand history to the provided writer in PHH TOML format.
func Encode(w io.Writer, hand *HandHistory) error {
	if hand == nil {
		return fmt.Errorf("phh: hand history is nil")
	}

	enc := toml.NewEncoder(w)
	enc.Indent = "\t"
	return enc.Encode(hand)
}

// EncodeToBytes encodes and returns the result as bytes.
func EncodeToBytes(hand *HandHistory) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, hand); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeAll writes hands as a PHHS file, one numbered section per hand
// starting at [1].
func EncodeAll(w io.Writer, hands []*HandHistory) error {
	for i, hand := range hands {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "[%d]\n", i+1); err != nil {
			return err
		}
		if err := Encode(w, hand); err != nil {
			return fmt.Errorf("hand %d: %w", i+1, err)
		}
	}
	return nil
}

// FormatAction converts an action to its PHH string. total is the player's
// commitment on the street after the action, which is what "cbr" records.
// Null actions are not emitted.
func FormatAction(player int, a game.Action, total int) (string, bool) {
	p := fmt.Sprintf("p%d", player+1)
	switch a.Kind {
	case game.Fold:
		return p + " f", true
	case game.Check, game.Call:
		return p + " cc", true
	case game.Bet, game.Raise, game.AllIn:
		if total <= 0 {
			return "", false
		}
		return fmt.Sprintf("%s cbr %d", p, total), true
	case game.Null:
		return "", false
	default:
		return fmt.Sprintf("# %s %s %d", p, a.Kind, total), true
	}
}
