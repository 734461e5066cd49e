package scroll

// State is the lifecycle state of a Workflow
type State int

const (
	Idle State = iota
	Cycling
	Disposed
)

func (s State) String() string {
	switch s {
	case Cycling:
		return "cycling"
	case Disposed:
		return "disposed"
	default:
		return "idle"
	}
}

// Snapshot is a copy of the workflow's observable state, taken after every task
type Snapshot struct {
	ID        string
	State     State
	Paused    bool
	Cycle     int
	Direction Direction
	Loading   bool

	Items    int
	MinIndex int
	MaxIndex int

	// BOF and EOF are true when nothing more can be fetched before the first or after the last item
	BOF bool
	EOF bool

	// FirstVisible and LastVisible are the indexes of the first and last items on screen. Only set when Visible
	Visible      bool
	FirstVisible int
	LastVisible  int
}
