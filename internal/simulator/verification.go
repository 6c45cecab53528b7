package simulator

import (
	"fmt"
	"slices"

	"github.com/okian/bowling/internal/domain/model"
	"github.com/okian/bowling/internal/domain/scoring"
	"github.com/okian/bowling/internal/domain/tracker"
	"github.com/okian/bowling/internal/domain/types"
)

// verifyGame checks the service's view of a finished game against the
// locally computed frames and scores.
func verifyGame(shots []model.Shot, got types.Game) error {
	if !got.GameOver {
		return fmt.Errorf("game %s not over after %d shots", got.GameID, len(shots))
	}

	frames := tracker.GroupFrames(shots)
	if len(got.Frames) != len(frames) {
		return fmt.Errorf("game %s: got %d frames, want %d", got.GameID, len(got.Frames), len(frames))
	}
	for i, f := range frames {
		want := make([]string, len(f))
		for j, s := range f {
			want[j] = s.String()
		}
		if !slices.Equal(got.Frames[i], want) {
			return fmt.Errorf("game %s frame %d: got %v, want %v", got.GameID, i+1, got.Frames[i], want)
		}
	}

	want := scoring.Cumulative(shots)
	if !slices.Equal(got.Scores, want) {
		return fmt.Errorf("game %s: got scores %v, want %v", got.GameID, got.Scores, want)
	}
	if got.Total != scoring.Total(shots) {
		return fmt.Errorf("game %s: got total %d, want %d", got.GameID, got.Total, scoring.Total(shots))
	}
	return nil
}
