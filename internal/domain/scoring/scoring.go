// Package scoring computes ten-pin scores from a flat list of shots.
//
// All functions are pure: they read the shots they are given and never
// cache anything, so callers may recompute on every read.
package scoring

import "github.com/okian/bowling/internal/domain/model"

// Bonus lookahead per closing mark.
const (
	strikeBonusShots = 2
	spareBonusShots  = 1
)

// PinValues returns the number of pins each shot knocked down. A strike is
// worth all pins and a spare is worth the pins left by the shot before it.
func PinValues(shots []model.Shot) []int {
	pins := make([]int, len(shots))
	for i, s := range shots {
		switch {
		case s.IsStrike():
			pins[i] = model.MaxPins
		case s.IsSpare():
			pins[i] = model.MaxPins
			if i > 0 {
				pins[i] -= pins[i-1]
			}
		default:
			pins[i] = s.Pins()
		}
	}
	return pins
}

// Cumulative returns the running total after each closed frame. A frame
// only contributes once every shot its score depends on has been thrown;
// the list stops at the first frame that is still waiting.
func Cumulative(shots []model.Shot) []int {
	pins := PinValues(shots)
	result := make([]int, 0, model.Frames)
	total := 0
	i := 0

	for frame := 0; frame < model.Frames && i < len(shots); frame++ {
		if frame == model.LastFrame {
			n, ok := tenthFrameLength(shots[i:])
			if !ok {
				break
			}
			total += sum(pins[i : i+n])
			result = append(result, total)
			break
		}

		// A frame scores its own pins plus its bonus shots; a spare's pin
		// value already tops its frame up to a full rack.
		var used, bonus int
		switch {
		case shots[i].IsStrike():
			used, bonus = 1, strikeBonusShots
		case i+1 < len(shots) && shots[i+1].IsSpare():
			used, bonus = 2, spareBonusShots
		default:
			used, bonus = 2, 0
		}
		if i+used+bonus > len(shots) {
			break
		}
		total += sum(pins[i : i+used+bonus])
		result = append(result, total)
		i += used
	}

	return result
}

// Total returns the score after the last closed frame, 0 if none closed.
func Total(shots []model.Shot) int {
	scores := Cumulative(shots)
	if len(scores) == 0 {
		return 0
	}
	return scores[len(scores)-1]
}

// tenthFrameLength reports how many shots the tenth frame needs given the
// shots thrown in it so far, and whether they have all been thrown.
func tenthFrameLength(shots []model.Shot) (int, bool) {
	if len(shots) < 2 {
		return 0, false
	}
	n := 2
	if isMark(shots[0]) || isMark(shots[1]) {
		n = 3
	}
	return n, len(shots) >= n
}

func isMark(s model.Shot) bool { return s.IsStrike() || s.IsSpare() }

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
