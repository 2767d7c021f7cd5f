package domain

import "time"

// Cell identifies a square on the minefield. Comparable, so it works
// as a map key and set element.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Less orders cells row-major for deterministic iteration.
func (c Cell) Less(o Cell) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

// Move is an advisor's suggestion for the game loop.
type Move struct {
	Cell       Cell     `json:"cell"`
	Kind       MoveKind `json:"kind"`
	Guess      bool     `json:"guess"`              // not logically proven safe
	Strategy   string   `json:"strategy,omitempty"` // "logic", "neural", "random"
	Confidence float64  `json:"confidence"`         // 0.0 .. 1.0 safety estimate
}

// GameRecord is a persisted summary of a finished game.
type GameRecord struct {
	ID           string        `json:"id,omitempty"`
	Seed         int64         `json:"seed,omitempty"`
	Height       int           `json:"height"`
	Width        int           `json:"width"`
	MineCount    int           `json:"mineCount"`
	Outcome      Outcome       `json:"outcome"`
	Moves        int           `json:"moves"`
	Guesses      int           `json:"guesses"`
	FlaggedMines int           `json:"flaggedMines"`
	Duration     time.Duration `json:"duration"`
	CreatedAt    int64         `json:"createdAt,omitempty"`
}

// GameMeta is a lightweight listing entry.
type GameMeta struct {
	ID        string  `json:"id"`
	Outcome   Outcome `json:"outcome"`
	Moves     int     `json:"moves"`
	CreatedAt int64   `json:"createdAt"`
}
