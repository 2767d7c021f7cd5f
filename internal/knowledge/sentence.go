package knowledge

import (
	"fmt"
	"sort"
	"strings"

	"github.com/saeedRZ1/minesweeper-agent/internal/domain"
)

// Sentence is a logical statement about the board: exactly count of
// the cells in the set are mines. Cells are removed as they are proven
// one way or the other, so a live sentence only ever mentions
// undetermined cells.
type Sentence struct {
	cells map[domain.Cell]struct{}
	count int
}

// NewSentence copies the given cells into a fresh sentence.
func NewSentence(cells []domain.Cell, count int) *Sentence {
	set := make(map[domain.Cell]struct{}, len(cells))
	for _, c := range cells {
		set[c] = struct{}{}
	}
	return &Sentence{cells: set, count: count}
}

// Len returns the number of undetermined cells in the sentence.
func (s *Sentence) Len() int { return len(s.cells) }

// Count returns the number of mines among the sentence's cells.
func (s *Sentence) Count() int { return s.count }

// Contains reports whether the cell is still part of the sentence.
func (s *Sentence) Contains(c domain.Cell) bool {
	_, ok := s.cells[c]
	return ok
}

// Cells returns the sentence's cells in row-major order.
func (s *Sentence) Cells() []domain.Cell {
	out := make([]domain.Cell, 0, len(s.cells))
	for c := range s.cells {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// KnownMines returns every cell of the sentence when the count proves
// them all mines, and nothing otherwise. No partial conclusions.
func (s *Sentence) KnownMines() []domain.Cell {
	if len(s.cells) == 0 || s.count != len(s.cells) {
		return nil
	}
	return s.Cells()
}

// KnownSafes returns every cell of the sentence when the count proves
// them all safe, and nothing otherwise.
func (s *Sentence) KnownSafes() []domain.Cell {
	if s.count != 0 {
		return nil
	}
	return s.Cells()
}

// MarkMine removes a cell proven to be a mine, decrementing the count.
// No-op if the cell is not a member.
func (s *Sentence) MarkMine(c domain.Cell) {
	if _, ok := s.cells[c]; ok {
		delete(s.cells, c)
		s.count--
	}
}

// MarkSafe removes a cell proven safe; the count is unchanged.
func (s *Sentence) MarkSafe(c domain.Cell) {
	delete(s.cells, c)
}

// Equal reports whether two sentences assert the same fact.
func (s *Sentence) Equal(o *Sentence) bool {
	if s.count != o.count || len(s.cells) != len(o.cells) {
		return false
	}
	for c := range s.cells {
		if _, ok := o.cells[c]; !ok {
			return false
		}
	}
	return true
}

// subsetOf reports whether every cell of s is also in o.
func (s *Sentence) subsetOf(o *Sentence) bool {
	if len(s.cells) > len(o.cells) {
		return false
	}
	for c := range s.cells {
		if _, ok := o.cells[c]; !ok {
			return false
		}
	}
	return true
}

// subtractFrom derives the sentence o − s: the cells of o not in s,
// with the counts subtracted. Only meaningful when s ⊆ o.
func (s *Sentence) subtractFrom(o *Sentence) *Sentence {
	diff := make(map[domain.Cell]struct{}, len(o.cells)-len(s.cells))
	for c := range o.cells {
		if _, ok := s.cells[c]; !ok {
			diff[c] = struct{}{}
		}
	}
	return &Sentence{cells: diff, count: o.count - s.count}
}

func (s *Sentence) String() string {
	cells := s.Cells()
	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = fmt.Sprintf("(%d,%d)", c.Row, c.Col)
	}
	return fmt.Sprintf("{%s} = %d", strings.Join(parts, " "), s.count)
}
