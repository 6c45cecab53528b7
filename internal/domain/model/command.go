package model

// CommandKind selects what the lane worker does with a command.
type CommandKind uint8

// Command kinds.
const (
	CommandSnapshot CommandKind = iota
	CommandShoot
	CommandReset
)

func (k CommandKind) String() string {
	switch k {
	case CommandShoot:
		return "shoot"
	case CommandReset:
		return "reset"
	case CommandSnapshot:
		return "snapshot"
	}
	return "unknown"
}

// Command is a request for the lane worker. Reply must be buffered so the
// worker never blocks on a caller that gave up waiting.
type Command struct {
	RequestID string
	Kind      CommandKind
	Shot      Shot
	Reply     chan Result
}

// NewCommand builds a command with a single-slot reply channel.
func NewCommand(requestID string, kind CommandKind, shot Shot) Command {
	return Command{
		RequestID: requestID,
		Kind:      kind,
		Shot:      shot,
		Reply:     make(chan Result, 1),
	}
}

// Result is the worker's answer to a command.
type Result struct {
	Snapshot Snapshot
	Err      error
}

// Snapshot is a read-only copy of a game's state and derived views.
type Snapshot struct {
	GameID       string
	Shots        []Shot
	Frames       [][]Shot
	Scores       []int
	CurrentFrame int
	CurrentShot  int
	GameOver     bool
}

// Total returns the last cumulative score, or 0 when no frame has closed.
func (s Snapshot) Total() int {
	if len(s.Scores) == 0 {
		return 0
	}
	return s.Scores[len(s.Scores)-1]
}
