package knowledge

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saeedRZ1/minesweeper-agent/internal/domain"
	"github.com/saeedRZ1/minesweeper-agent/internal/game"
)

func newTestAgent(h, w int) *Agent {
	return NewAgent(h, w, rand.New(rand.NewSource(1)), nil)
}

func TestZeroCountMarksAllNeighborsSafe(t *testing.T) {
	a := newTestAgent(3, 3)
	a.AddKnowledge(cell(1, 1), 0)

	safes := a.Safes()
	assert.Len(t, safes, 9) // the revealed cell plus its 8 neighbors
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			assert.Contains(t, safes, cell(r, c))
		}
	}
	assert.Empty(t, a.Mines())
}

func TestSubsetInferenceDerivesMine(t *testing.T) {
	a := newTestAgent(3, 3)
	// A = {a,b} = 1, B = {a,b,c} = 2 must conclude c is a mine.
	ca, cb, cc := cell(0, 0), cell(0, 1), cell(0, 2)
	a.sentences = append(a.sentences,
		NewSentence([]domain.Cell{ca, cb}, 1),
		NewSentence([]domain.Cell{ca, cb, cc}, 2),
	)
	a.infer()

	assert.Contains(t, a.Mines(), cc)
	assert.NotContains(t, a.Mines(), ca)
	assert.NotContains(t, a.Mines(), cb)
	assert.NotContains(t, a.Safes(), ca)
	assert.NotContains(t, a.Safes(), cb)

	// the superset collapses onto the subset, leaving one live sentence
	require.Len(t, a.Sentences(), 1)
	assert.True(t, a.Sentences()[0].Equal(NewSentence([]domain.Cell{ca, cb}, 1)))
}

func TestSubsetScenarioIsolatesMine(t *testing.T) {
	// 2x2 board, one mine at (1,0). Three honest observations pin it.
	a := newTestAgent(2, 2)
	a.AddKnowledge(cell(0, 0), 1)
	a.AddKnowledge(cell(0, 1), 1)
	a.AddKnowledge(cell(1, 1), 1)

	assert.Equal(t, []domain.Cell{cell(1, 0)}, a.Mines())
	assert.ElementsMatch(t, []domain.Cell{cell(0, 0), cell(0, 1), cell(1, 1)}, a.Safes())
}

func TestKnownMineNeighborAdjustsCount(t *testing.T) {
	a := newTestAgent(2, 2)
	a.MarkMine(cell(0, 0))
	// (1,1) observes one mine, already attributed to (0,0), so the
	// remaining neighbors must all be safe.
	a.AddKnowledge(cell(1, 1), 1)

	assert.Contains(t, a.Safes(), cell(0, 1))
	assert.Contains(t, a.Safes(), cell(1, 0))
}

func TestInferenceIdempotentAtFixpoint(t *testing.T) {
	a := newTestAgent(3, 3)
	a.AddKnowledge(cell(0, 0), 1)
	a.AddKnowledge(cell(2, 2), 1)

	mines, safes := a.Mines(), a.Safes()
	before := len(a.Sentences())

	st := a.infer()
	assert.Equal(t, 1, st.Iterations) // first pass finds nothing new
	assert.Equal(t, mines, a.Mines())
	assert.Equal(t, safes, a.Safes())
	assert.Len(t, a.Sentences(), before)
}

func TestMinesAndSafesDisjointAndMonotonic(t *testing.T) {
	const h, w, mineCount = 8, 8, 8
	board, err := game.NewBoard(h, w, mineCount, rand.New(rand.NewSource(42)))
	require.NoError(t, err)
	a := NewAgent(h, w, rand.New(rand.NewSource(43)), nil)

	prevMines, prevSafes, prevMoves := 0, 0, 0
	for i := 0; i < h*w; i++ {
		move, ok := a.MakeSafeMove()
		if !ok {
			move, ok = a.MakeRandomMove()
		}
		if !ok {
			break
		}
		count, hit := board.Reveal(move)
		if hit {
			a.MarkMine(move)
			break
		}
		st := a.AddKnowledge(move, count)
		assert.Less(t, st.Iterations, 1000, "inference must stay bounded")

		mines, safes, moves := a.Mines(), a.Safes(), a.MovesMade()
		for _, m := range mines {
			assert.NotContains(t, safes, m, "mines and safes must stay disjoint")
		}
		assert.GreaterOrEqual(t, len(mines), prevMines)
		assert.GreaterOrEqual(t, len(safes), prevSafes)
		assert.GreaterOrEqual(t, len(moves), prevMoves)
		prevMines, prevSafes, prevMoves = len(mines), len(safes), len(moves)
	}
}

func TestMakeSafeMoveReturnsUnplayedSafe(t *testing.T) {
	a := newTestAgent(3, 3)

	_, ok := a.MakeSafeMove()
	assert.False(t, ok, "no safe move before any knowledge")

	a.AddKnowledge(cell(1, 1), 0)
	move, ok := a.MakeSafeMove()
	require.True(t, ok)
	assert.Contains(t, a.Safes(), move)
	assert.NotContains(t, a.MovesMade(), move)
}

func TestMakeRandomMoveExcludesPlayedAndMines(t *testing.T) {
	a := newTestAgent(2, 2)
	a.AddKnowledge(cell(0, 0), 1)
	a.MarkMine(cell(1, 1))

	for i := 0; i < 20; i++ {
		move, ok := a.MakeRandomMove()
		require.True(t, ok)
		assert.NotEqual(t, cell(0, 0), move)
		assert.NotEqual(t, cell(1, 1), move)
	}
}

func TestMakeRandomMoveExhausted(t *testing.T) {
	a := newTestAgent(1, 2)
	a.AddKnowledge(cell(0, 0), 1) // marks (0,1) the mine by full count
	require.Equal(t, []domain.Cell{cell(0, 1)}, a.Mines())

	_, ok := a.MakeRandomMove()
	assert.False(t, ok, "only a known mine remains")
}

func TestDuplicateSentencesCollapse(t *testing.T) {
	a := newTestAgent(3, 3)
	a.sentences = append(a.sentences,
		NewSentence([]domain.Cell{cell(0, 0), cell(0, 1)}, 1),
		NewSentence([]domain.Cell{cell(0, 1), cell(0, 0)}, 1),
	)
	a.infer()
	assert.Len(t, a.Sentences(), 1)
}
