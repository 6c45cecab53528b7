package worker

import (
	"github.com/okian/bowling/pkg/logger"
)

// Option applies a configuration option to the LaneWorker.
type Option func(*LaneWorker)

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *LaneWorker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithGame replaces the tracker the worker drives.
func WithGame(g Game) Option {
	return func(w *LaneWorker) {
		if g != nil {
			w.game = g
		}
	}
}

// WithIDGenerator sets how game IDs are minted. Defaults to random UUIDs.
func WithIDGenerator(gen func() string) Option {
	return func(w *LaneWorker) {
		if gen != nil {
			w.newID = gen
		}
	}
}
