package tracker

import (
	"errors"
	"fmt"

	"github.com/okian/bowling/internal/domain/model"
)

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidShot = errors.New("invalid shot")
	ErrGameOver    = errors.New("game over")
)

// InvalidShotError reports a shot that breaks the rules at the position it
// was thrown. The tracker is unchanged when it is returned.
type InvalidShotError struct {
	Shot  model.Shot
	Frame int
	Ball  int
}

func (e *InvalidShotError) Error() string {
	return fmt.Sprintf("invalid shot %s in frame %d ball %d", e.Shot, e.Frame+1, e.Ball+1)
}

// Unwrap lets errors.Is match ErrInvalidShot.
func (e *InvalidShotError) Unwrap() error { return ErrInvalidShot }
