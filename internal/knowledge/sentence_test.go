package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/saeedRZ1/minesweeper-agent/internal/domain"
)

func cell(r, c int) domain.Cell { return domain.Cell{Row: r, Col: c} }

func TestSentenceFullCountProvesMines(t *testing.T) {
	s := NewSentence([]domain.Cell{cell(0, 0), cell(0, 1)}, 2)
	assert.ElementsMatch(t, []domain.Cell{cell(0, 0), cell(0, 1)}, s.KnownMines())
	assert.Empty(t, s.KnownSafes())
}

func TestSentenceZeroCountProvesSafes(t *testing.T) {
	s := NewSentence([]domain.Cell{cell(1, 0), cell(1, 1), cell(1, 2)}, 0)
	assert.ElementsMatch(t, []domain.Cell{cell(1, 0), cell(1, 1), cell(1, 2)}, s.KnownSafes())
	assert.Empty(t, s.KnownMines())
}

func TestSentencePartialCountProvesNothing(t *testing.T) {
	s := NewSentence([]domain.Cell{cell(0, 0), cell(0, 1), cell(0, 2)}, 1)
	assert.Empty(t, s.KnownMines())
	assert.Empty(t, s.KnownSafes())
}

func TestSentenceMarkMine(t *testing.T) {
	s := NewSentence([]domain.Cell{cell(0, 0), cell(0, 1)}, 1)

	s.MarkMine(cell(0, 0))
	assert.False(t, s.Contains(cell(0, 0)))
	assert.Equal(t, 0, s.Count())

	// absent cell is a no-op
	s.MarkMine(cell(5, 5))
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, 1, s.Len())
}

func TestSentenceMarkSafeKeepsCount(t *testing.T) {
	s := NewSentence([]domain.Cell{cell(0, 0), cell(0, 1)}, 1)

	s.MarkSafe(cell(0, 1))
	assert.False(t, s.Contains(cell(0, 1)))
	assert.Equal(t, 1, s.Count())

	s.MarkSafe(cell(9, 9))
	assert.Equal(t, 1, s.Len())
}

func TestSentenceEqual(t *testing.T) {
	a := NewSentence([]domain.Cell{cell(0, 0), cell(0, 1)}, 1)
	b := NewSentence([]domain.Cell{cell(0, 1), cell(0, 0)}, 1)
	c := NewSentence([]domain.Cell{cell(0, 0), cell(0, 1)}, 2)
	d := NewSentence([]domain.Cell{cell(0, 0)}, 1)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(d))
}

func TestSentenceSubtract(t *testing.T) {
	small := NewSentence([]domain.Cell{cell(0, 0), cell(0, 1)}, 1)
	big := NewSentence([]domain.Cell{cell(0, 0), cell(0, 1), cell(0, 2)}, 2)

	assert.True(t, small.subsetOf(big))
	assert.False(t, big.subsetOf(small))

	diff := small.subtractFrom(big)
	assert.Equal(t, []domain.Cell{cell(0, 2)}, diff.Cells())
	assert.Equal(t, 1, diff.Count())

	// identical sets subtract to the trivial sentence
	twin := NewSentence([]domain.Cell{cell(0, 0), cell(0, 1)}, 1)
	assert.Equal(t, 0, small.subtractFrom(twin).Len())
}
