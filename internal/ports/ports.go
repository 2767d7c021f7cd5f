package ports

import (
	"context"
	"time"

	"github.com/saeedRZ1/minesweeper-agent/internal/domain"
)

// Stats captures the cost of one inference run.
type Stats struct {
	Iterations    int
	SentencesPeak int
	Duration      time.Duration
}

// BoardView is the visible side of a board: everything an observer may
// see without access to the hidden mine layout.
type BoardView interface {
	InBounds(c domain.Cell) bool
	IsRevealed(c domain.Cell) bool
	IsFlagged(c domain.Cell) bool
	// NearbyCount is only meaningful for revealed cells.
	NearbyCount(c domain.Cell) int
}

// Advisor suggests the next move for the game loop.
type Advisor interface {
	NextMove(ctx context.Context) (domain.Move, bool, error)
}

// KnowledgeBase is the deduction engine fed with (cell, count)
// observations from revealed cells.
type KnowledgeBase interface {
	AddKnowledge(cell domain.Cell, count int) Stats
	MakeSafeMove() (domain.Cell, bool)
	MakeRandomMove() (domain.Cell, bool)
	MarkMine(cell domain.Cell)
	Mines() []domain.Cell
	Safes() []domain.Cell
	MovesMade() []domain.Cell
}

// Guesser ranks frontier cells when no proven-safe move exists. The
// returned float is the estimated mine probability of the chosen cell.
type Guesser interface {
	Guess(ctx context.Context, view BoardView, frontier []domain.Cell) (domain.Cell, float64, bool)
}

// Trainable is an optional extension of Guesser for implementations
// that learn from finished games.
type Trainable interface {
	Observe(view BoardView, cell domain.Cell, isMine bool)
	Train() error
}

// Storage persists and retrieves finished game records as JSON.
type Storage interface {
	Save(ctx context.Context, rec *domain.GameRecord) error
	Load(ctx context.Context, id string) (*domain.GameRecord, error)
	List(ctx context.Context) ([]domain.GameMeta, error)
}
