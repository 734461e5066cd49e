package scroll

// Direction is the direction of movement through the collection. Forward moves toward higher indexes
type Direction int

const (
	None Direction = iota
	Forward
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return "none"
	}
}

// Opposite swaps Forward and Backward. None has no opposite and stays None
func (d Direction) Opposite() Direction {
	switch d {
	case Forward:
		return Backward
	case Backward:
		return Forward
	default:
		return None
	}
}

// ResolveDirection maps a previous and current scroll offset to the direction of movement
func ResolveDirection(prev, curr int) Direction {
	switch {
	case curr > prev:
		return Forward
	case curr < prev:
		return Backward
	default:
		return None
	}
}

// directions is the fixed iteration order used whenever both sides are processed
var directions = [2]Direction{Backward, Forward}
