// Package model contains domain values passed between layers.
package model

import (
	"errors"
	"fmt"
)

// Game geometry.
const (
	// MaxPins is the number of pins standing at the start of a frame.
	MaxPins = 10
	// Frames is the number of frames in a game.
	Frames = 10
	// LastFrame is the index of the tenth frame, which allows a bonus shot.
	LastFrame = Frames - 1
)

// ErrUnknownShot is returned when a token does not name a shot.
var ErrUnknownShot = errors.New("unknown shot")

// Shot is one ball thrown. The underlying byte is the shot's display token:
// '0'..'9' for a pin count, 'X' for a strike, '/' for a spare.
type Shot byte

// Shot variants.
const (
	Zero   Shot = '0'
	One    Shot = '1'
	Two    Shot = '2'
	Three  Shot = '3'
	Four   Shot = '4'
	Five   Shot = '5'
	Six    Shot = '6'
	Seven  Shot = '7'
	Eight  Shot = '8'
	Nine   Shot = '9'
	Strike Shot = 'X'
	Spare  Shot = '/'
)

// PinShot returns the numeric shot for n pins. ok is false unless 0 <= n <= 9.
func PinShot(n int) (Shot, bool) {
	if n < 0 || n > 9 {
		return 0, false
	}
	return Zero + Shot(n), true
}

// ParseShot maps a single-character token to a shot. Digits map to pin
// counts, "x" or "X" to a strike and "/" to a spare. Any other input
// yields ok == false.
func ParseShot(token string) (Shot, bool) {
	if len(token) != 1 {
		return 0, false
	}
	switch c := token[0]; {
	case c >= '0' && c <= '9':
		return Shot(c), true
	case c == 'x' || c == 'X':
		return Strike, true
	case c == '/':
		return Spare, true
	}
	return 0, false
}

// IsPins reports whether s is a plain pin count.
func (s Shot) IsPins() bool { return s >= Zero && s <= Nine }

// IsStrike reports whether s is a strike.
func (s Shot) IsStrike() bool { return s == Strike }

// IsSpare reports whether s is a spare.
func (s Shot) IsSpare() bool { return s == Spare }

// Valid reports whether s is one of the defined variants.
func (s Shot) Valid() bool { return s.IsPins() || s.IsStrike() || s.IsSpare() }

// Pins returns the pin count of a numeric shot and 0 for strikes and
// spares, whose value depends on the shots around them.
func (s Shot) Pins() int {
	if !s.IsPins() {
		return 0
	}
	return int(s - Zero)
}

// Kind names the variant, used for metric labels and logs.
func (s Shot) Kind() string {
	switch {
	case s.IsStrike():
		return "strike"
	case s.IsSpare():
		return "spare"
	case s.IsPins():
		return "pins"
	}
	return "unknown"
}

// String returns the display token.
func (s Shot) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Shot(%d)", byte(s))
	}
	return string(rune(s))
}

// MarshalText encodes the shot as its display token.
func (s Shot) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownShot, byte(s))
	}
	return []byte{byte(s)}, nil
}

// UnmarshalText decodes a display token.
func (s *Shot) UnmarshalText(text []byte) error {
	parsed, ok := ParseShot(string(text))
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownShot, text)
	}
	*s = parsed
	return nil
}
