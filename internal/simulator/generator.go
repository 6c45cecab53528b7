package simulator

import (
	"fmt"
	"math/rand"

	"github.com/okian/bowling/internal/domain/model"
	"github.com/okian/bowling/internal/domain/tracker"
)

// GenerateGame plays a complete legal game with r choosing how many pins
// fall on each ball. Every ball knocks down between zero and the pins left
// standing, so the result always passes the tracker's rules.
func GenerateGame(r *rand.Rand) ([]model.Shot, error) {
	t := tracker.New()
	for !t.GameOver() {
		standing, fresh := pinsStanding(t)
		s := shotFor(r.Intn(standing+1), standing, fresh)
		if err := t.Shoot(s); err != nil {
			return nil, fmt.Errorf("generated illegal shot %s: %w", s, err)
		}
	}
	return t.Shots(), nil
}

// pinsStanding returns how many pins the next ball can knock down and
// whether it faces a full rack.
func pinsStanding(t *tracker.Tracker) (int, bool) {
	if t.CurrentShot() == 0 {
		return model.MaxPins, true
	}
	shots := t.Shots()
	prev := shots[len(shots)-1]
	if !prev.IsPins() {
		// Only reachable in the tenth frame, where the rack is reset.
		return model.MaxPins, true
	}
	return model.MaxPins - prev.Pins(), false
}

func shotFor(knocked, standing int, fresh bool) model.Shot {
	switch {
	case knocked == standing && fresh:
		return model.Strike
	case knocked == standing:
		return model.Spare
	}
	s, _ := model.PinShot(knocked)
	return s
}
