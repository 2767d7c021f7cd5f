package domain

// Outcome is the state of a game.
type Outcome int

const (
	Ongoing Outcome = iota
	Won
	Lost
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "ongoing"
	}
}

// MoveKind distinguishes reveal moves from flag placements.
type MoveKind int

const (
	MoveReveal MoveKind = iota
	MoveFlag
)

func (k MoveKind) String() string {
	if k == MoveFlag {
		return "flag"
	}
	return "reveal"
}
