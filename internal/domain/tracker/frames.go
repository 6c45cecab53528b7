package tracker

import "github.com/okian/bowling/internal/domain/model"

// ShotsByFrame regroups the recorded shots into frames. A frame that is
// still in progress is included with the shots thrown so far.
func (t *Tracker) ShotsByFrame() [][]model.Shot {
	return GroupFrames(t.shots)
}

// GroupFrames splits a flat shot list into frames: a strike closes frames
// one to nine on its own, any second ball closes them, and the tenth frame
// takes every remaining shot.
func GroupFrames(shots []model.Shot) [][]model.Shot {
	result := make([][]model.Shot, 0, model.Frames)
	var frame []model.Shot
	frameIndex := 0

	for _, s := range shots {
		frame = append(frame, s)
		if frameIndex == model.LastFrame {
			continue
		}
		if len(frame) == 1 && !s.IsStrike() {
			continue
		}
		result = append(result, frame)
		frame = nil
		frameIndex++
	}

	if len(frame) > 0 {
		result = append(result, frame)
	}
	return result
}
