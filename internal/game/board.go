package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/saeedRZ1/minesweeper-agent/internal/domain"
)

// Board holds the hidden mine layout and the visible state of one
// game. All coordinate arguments are (row, col).
type Board struct {
	height, width int
	mineCount     int

	mines    map[domain.Cell]struct{}
	revealed map[domain.Cell]struct{}
	flags    map[domain.Cell]struct{}

	exploded bool
}

// NewBoard places mineCount mines uniformly at random using rng. A nil
// rng gets a time-seeded one.
func NewBoard(height, width, mineCount int, rng *rand.Rand) (*Board, error) {
	if height < 1 || width < 1 {
		return nil, errors.New("board dimensions must be positive")
	}
	if mineCount < 0 || mineCount > height*width {
		return nil, fmt.Errorf("mine count %d out of range for %dx%d board", mineCount, height, width)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	b := &Board{
		height:    height,
		width:     width,
		mineCount: mineCount,
		mines:     make(map[domain.Cell]struct{}, mineCount),
		revealed:  make(map[domain.Cell]struct{}),
		flags:     make(map[domain.Cell]struct{}),
	}
	for len(b.mines) < mineCount {
		c := domain.Cell{Row: rng.Intn(height), Col: rng.Intn(width)}
		b.mines[c] = struct{}{}
	}
	return b, nil
}

// Height returns the number of rows.
func (b *Board) Height() int { return b.height }

// Width returns the number of columns.
func (b *Board) Width() int { return b.width }

// MineCount returns the number of hidden mines.
func (b *Board) MineCount() int { return b.mineCount }

// InBounds reports whether the cell lies on the board.
func (b *Board) InBounds(c domain.Cell) bool {
	return c.Row >= 0 && c.Row < b.height && c.Col >= 0 && c.Col < b.width
}

// Neighbors lists the in-bounds cells of the 8-neighborhood.
func (b *Board) Neighbors(c domain.Cell) []domain.Cell {
	out := make([]domain.Cell, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := domain.Cell{Row: c.Row + dr, Col: c.Col + dc}
			if b.InBounds(n) {
				out = append(out, n)
			}
		}
	}
	return out
}

// IsMine reports the hidden truth for a cell.
func (b *Board) IsMine(c domain.Cell) bool {
	_, ok := b.mines[c]
	return ok
}

// NearbyMines counts the mines among a cell's neighbors.
func (b *Board) NearbyMines(c domain.Cell) int {
	n := 0
	for _, nb := range b.Neighbors(c) {
		if b.IsMine(nb) {
			n++
		}
	}
	return n
}

// Reveal opens a single cell and returns its neighbor-mine count,
// plus whether the cell was a mine. Revealing an already-open cell
// repeats its count with no state change. There is no flood fill: the
// caller observes one count per move and cascades by deduction.
func (b *Board) Reveal(c domain.Cell) (count int, hitMine bool) {
	if !b.InBounds(c) {
		return 0, false
	}
	b.revealed[c] = struct{}{}
	if b.IsMine(c) {
		b.exploded = true
		return 0, true
	}
	return b.NearbyMines(c), false
}

// ToggleFlag flips the flag on an unrevealed cell.
func (b *Board) ToggleFlag(c domain.Cell) {
	if !b.InBounds(c) {
		return
	}
	if _, open := b.revealed[c]; open {
		return
	}
	if _, ok := b.flags[c]; ok {
		delete(b.flags, c)
	} else {
		b.flags[c] = struct{}{}
	}
}

// IsRevealed reports whether the cell has been opened.
func (b *Board) IsRevealed(c domain.Cell) bool {
	_, ok := b.revealed[c]
	return ok
}

// IsFlagged reports whether the cell carries a flag.
func (b *Board) IsFlagged(c domain.Cell) bool {
	_, ok := b.flags[c]
	return ok
}

// NearbyCount exposes the observed count of a revealed cell. Zero for
// unrevealed cells so the hidden layout cannot leak through the view.
func (b *Board) NearbyCount(c domain.Cell) int {
	if !b.IsRevealed(c) || b.IsMine(c) {
		return 0
	}
	return b.NearbyMines(c)
}

// Won reports whether every safe cell is revealed and no mine was hit.
func (b *Board) Won() bool {
	if b.exploded {
		return false
	}
	open := 0
	for c := range b.revealed {
		if !b.IsMine(c) {
			open++
		}
	}
	return open == b.height*b.width-b.mineCount
}

// Outcome reduces the board state to won, lost, or ongoing.
func (b *Board) Outcome() domain.Outcome {
	switch {
	case b.exploded:
		return domain.Lost
	case b.Won():
		return domain.Won
	default:
		return domain.Ongoing
	}
}

// Mines returns the hidden mine cells, sorted row-major. Intended for
// post-game checks and training labels, not for play.
func (b *Board) Mines() []domain.Cell {
	return sortedKeys(b.mines)
}

// Revealed returns the opened cells, sorted row-major.
func (b *Board) Revealed() []domain.Cell {
	return sortedKeys(b.revealed)
}

// Flags returns the flagged cells, sorted row-major.
func (b *Board) Flags() []domain.Cell {
	return sortedKeys(b.flags)
}

// Render draws the board for the CLI: digits for revealed counts, "."
// for a revealed zero, "F" for flags, "-" for unopened cells, "X" for
// a revealed mine, and "M" for hidden mines when showMines is set.
func (b *Board) Render(showMines bool) string {
	var sb strings.Builder
	sb.WriteString("   ")
	for col := 0; col < b.width; col++ {
		fmt.Fprintf(&sb, "%d ", col%10)
	}
	sb.WriteByte('\n')
	for row := 0; row < b.height; row++ {
		fmt.Fprintf(&sb, "%d: ", row%10)
		for col := 0; col < b.width; col++ {
			c := domain.Cell{Row: row, Col: col}
			sb.WriteString(b.renderCell(c, showMines))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (b *Board) renderCell(c domain.Cell, showMines bool) string {
	switch {
	case b.IsRevealed(c) && b.IsMine(c):
		return "X"
	case b.IsRevealed(c):
		n := b.NearbyMines(c)
		if n == 0 {
			return "."
		}
		return fmt.Sprintf("%d", n)
	case b.IsFlagged(c):
		return "F"
	case showMines && b.IsMine(c):
		return "M"
	default:
		return "-"
	}
}

func sortedKeys(set map[domain.Cell]struct{}) []domain.Cell {
	out := make([]domain.Cell, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
