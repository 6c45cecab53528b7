// Package types contains the read shapes shared by the API and its clients.
package types

import "github.com/okian/bowling/internal/domain/model"

// Game is the JSON view of one game. CurrentFrame and CurrentShot are
// zero-based; CurrentFrame is -1 once the game is over.
type Game struct {
	GameID       string     `json:"game_id"`
	Frames       [][]string `json:"frames"`
	Scores       []int      `json:"scores"`
	Total        int        `json:"total"`
	CurrentFrame int        `json:"current_frame"`
	CurrentShot  int        `json:"current_shot"`
	GameOver     bool       `json:"game_over"`
	Duplicate    bool       `json:"duplicate,omitempty"`
}

// FromSnapshot converts a worker snapshot into its JSON view. Empty views
// encode as [] rather than null.
func FromSnapshot(s model.Snapshot) Game { //nolint:gocritic // hugeParam: snapshots are values
	frames := make([][]string, len(s.Frames))
	for i, f := range s.Frames {
		tokens := make([]string, len(f))
		for j, shot := range f {
			tokens[j] = shot.String()
		}
		frames[i] = tokens
	}
	scores := s.Scores
	if scores == nil {
		scores = []int{}
	}
	return Game{
		GameID:       s.GameID,
		Frames:       frames,
		Scores:       scores,
		Total:        s.Total(),
		CurrentFrame: s.CurrentFrame,
		CurrentShot:  s.CurrentShot,
		GameOver:     s.GameOver,
	}
}
