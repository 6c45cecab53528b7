// Package tracker records the shots of one ten-pin game and tracks which
// frame and ball come next.
//
// A Tracker is not safe for concurrent use; callers serialize access, for
// example by confining it to a single goroutine.
package tracker

import (
	"github.com/okian/bowling/internal/domain/model"
	"github.com/okian/bowling/internal/domain/scoring"
)

// NoFrame is the current frame once the game is over.
const NoFrame = -1

// Tracker holds the shots of a game and the progress counters derived from
// them. The zero value is not ready for use; call New.
type Tracker struct {
	shots        []model.Shot
	currentFrame int
	currentShot  int
	gameOver     bool
}

// New returns a tracker at the start of a game.
func New() *Tracker {
	t := &Tracker{}
	t.Reset()
	return t
}

// CurrentFrame is the zero-based frame in progress, or NoFrame after the
// game ended.
func (t *Tracker) CurrentFrame() int { return t.currentFrame }

// CurrentShot is the zero-based ball within the current frame that is
// thrown next. It reaches 2 only for the tenth frame's bonus ball.
func (t *Tracker) CurrentShot() int { return t.currentShot }

// GameOver reports whether the tenth frame is complete.
func (t *Tracker) GameOver() bool { return t.gameOver }

// Shots returns a copy of the recorded shots.
func (t *Tracker) Shots() []model.Shot {
	out := make([]model.Shot, len(t.shots))
	copy(out, t.shots)
	return out
}

// Shoot validates s against the current position and records it.
//
// It returns ErrGameOver once the game has ended, and an *InvalidShotError
// when s cannot be thrown here. In both cases nothing changes.
func (t *Tracker) Shoot(s model.Shot) error {
	if t.gameOver {
		return ErrGameOver
	}
	if !t.allowed(s) {
		return &InvalidShotError{Shot: s, Frame: t.currentFrame, Ball: t.currentShot}
	}

	t.shots = append(t.shots, s)
	t.advance(s)
	return nil
}

// Reset clears the game back to its first ball.
func (t *Tracker) Reset() {
	t.shots = nil
	t.currentFrame = 0
	t.currentShot = 0
	t.gameOver = false
}

// Scores returns the cumulative score after each closed frame.
func (t *Tracker) Scores() []int {
	return scoring.Cumulative(t.shots)
}

// allowed rejects spares on a first ball, strikes on a second ball outside
// the tenth frame, and pin counts that would knock down more pins than the
// previous ball left standing.
func (t *Tracker) allowed(s model.Shot) bool {
	if !s.Valid() {
		return false
	}
	switch {
	case s.IsSpare():
		return t.currentShot != 0
	case s.IsStrike():
		return t.currentShot == 0 || t.currentFrame == model.LastFrame
	}

	if t.currentShot == 0 || len(t.shots) == 0 {
		return true
	}
	prev := t.shots[len(t.shots)-1]
	if !prev.IsPins() {
		return true
	}
	return prev.Pins()+s.Pins() < model.MaxPins
}

// advance moves the counters past the shot that was just recorded.
func (t *Tracker) advance(s model.Shot) {
	if t.currentFrame != model.LastFrame {
		if t.currentShot == 0 && s.IsStrike() {
			t.currentFrame++
			return
		}
		if t.currentShot == 0 {
			t.currentShot = 1
			return
		}
		t.currentFrame++
		t.currentShot = 0
		return
	}

	switch {
	case t.currentShot == 0:
		t.currentShot = 1
	case t.currentShot == 1 && t.tenthFrameOpen():
		t.finish()
	case t.currentShot == 1:
		t.currentShot = 2
	default:
		t.finish()
	}
}

// tenthFrameOpen reports whether the tenth frame holds neither a strike nor
// a spare. Only valid while the tenth frame is in progress.
func (t *Tracker) tenthFrameOpen() bool {
	start := len(t.shots) - (t.currentShot + 1)
	for _, s := range t.shots[start:] {
		if s.IsStrike() || s.IsSpare() {
			return false
		}
	}
	return true
}

func (t *Tracker) finish() {
	t.gameOver = true
	t.currentFrame = NoFrame
}
