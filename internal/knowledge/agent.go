// Package knowledge implements the deduction engine: logical sentences
// over cell sets and a forward-chaining agent that resolves them to
// proven mines and safe cells.
package knowledge

import (
	"math/rand"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/saeedRZ1/minesweeper-agent/internal/domain"
	"github.com/saeedRZ1/minesweeper-agent/internal/ports"
)

// Agent is a knowledge base over one game: the sentences gathered from
// revealed cells plus the cells proven safe or mines so far. It is
// owned by a single game loop and is not safe for concurrent use.
type Agent struct {
	height, width int

	movesMade map[domain.Cell]struct{}
	mines     map[domain.Cell]struct{}
	safes     map[domain.Cell]struct{}
	sentences []*Sentence

	rng *rand.Rand
	log logrus.FieldLogger
}

// NewAgent creates an empty knowledge base for a height×width grid.
// A nil rng gets a time-seeded one; a nil log uses the standard logger.
func NewAgent(height, width int, rng *rand.Rand, log logrus.FieldLogger) *Agent {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Agent{
		height:    height,
		width:     width,
		movesMade: make(map[domain.Cell]struct{}),
		mines:     make(map[domain.Cell]struct{}),
		safes:     make(map[domain.Cell]struct{}),
		rng:       rng,
		log:       log,
	}
}

// AddKnowledge records that cell was revealed with count mines among
// its neighbors, then runs inference until no new fact can be derived.
func (a *Agent) AddKnowledge(cell domain.Cell, count int) ports.Stats {
	start := time.Now()

	a.movesMade[cell] = struct{}{}
	a.markSafe(cell)

	// Build a sentence over the cell's undetermined neighbors. Known
	// mines still count toward the observed total, so each one excluded
	// here lowers the count by one.
	var unknown []domain.Cell
	adjusted := count
	for _, n := range a.neighbors(cell) {
		if _, ok := a.mines[n]; ok {
			adjusted--
			continue
		}
		if _, ok := a.safes[n]; ok {
			continue
		}
		unknown = append(unknown, n)
	}
	if len(unknown) > 0 {
		s := NewSentence(unknown, adjusted)
		if !a.hasSentence(s) {
			a.sentences = append(a.sentences, s)
		}
	}

	st := a.infer()
	st.Duration = time.Since(start)
	a.log.WithFields(logrus.Fields{
		"cell":       cell,
		"count":      count,
		"iterations": st.Iterations,
		"sentences":  len(a.sentences),
		"mines":      len(a.mines),
		"safes":      len(a.safes),
	}).Debug("knowledge added")
	return st
}

// infer runs the forward-chaining loop to fixpoint: resolve sentences
// whose count pins every cell, propagate those cells out of all
// sentences, prune trivial and duplicate sentences, then derive new
// sentences by subset subtraction. Terminates because each pass either
// resolves a cell (bounded by the grid) or adds a sentence over a
// strictly smaller cell set drawn from a finite universe.
func (a *Agent) infer() ports.Stats {
	var st ports.Stats
	for changed := true; changed; {
		changed = false
		st.Iterations++
		if len(a.sentences) > st.SentencesPeak {
			st.SentencesPeak = len(a.sentences)
		}

		var mines, safes []domain.Cell
		for _, s := range a.sentences {
			mines = append(mines, s.KnownMines()...)
			safes = append(safes, s.KnownSafes()...)
		}
		for _, c := range mines {
			if _, ok := a.mines[c]; !ok {
				a.markMine(c)
				changed = true
			}
		}
		for _, c := range safes {
			if _, ok := a.safes[c]; !ok {
				a.markSafe(c)
				changed = true
			}
		}

		a.prune()

		var derived []*Sentence
		for _, s1 := range a.sentences {
			for _, s2 := range a.sentences {
				if s1 == s2 || !s1.subsetOf(s2) {
					continue
				}
				d := s1.subtractFrom(s2)
				if d.Len() == 0 || a.hasSentence(d) || containsSentence(derived, d) {
					continue
				}
				derived = append(derived, d)
			}
		}
		if len(derived) > 0 {
			a.sentences = append(a.sentences, derived...)
			changed = true
		}
	}
	return st
}

// prune drops sentences with no cells left and exact duplicates.
func (a *Agent) prune() {
	kept := a.sentences[:0]
	for _, s := range a.sentences {
		if s.Len() == 0 {
			continue
		}
		if containsSentence(kept, s) {
			continue
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(a.sentences); i++ {
		a.sentences[i] = nil
	}
	a.sentences = kept
}

func (a *Agent) hasSentence(s *Sentence) bool {
	return containsSentence(a.sentences, s)
}

func containsSentence(list []*Sentence, s *Sentence) bool {
	for _, o := range list {
		if o.Equal(s) {
			return true
		}
	}
	return false
}

// MarkMine records a cell as a proven mine and removes it from every
// sentence. The game loop uses this when a revealed cell turns out to
// be a mine.
func (a *Agent) MarkMine(c domain.Cell) {
	a.markMine(c)
}

func (a *Agent) markMine(c domain.Cell) {
	a.mines[c] = struct{}{}
	for _, s := range a.sentences {
		s.MarkMine(c)
	}
}

func (a *Agent) markSafe(c domain.Cell) {
	a.safes[c] = struct{}{}
	for _, s := range a.sentences {
		s.MarkSafe(c)
	}
}

// neighbors lists the in-bounds cells of the 8-neighborhood.
func (a *Agent) neighbors(c domain.Cell) []domain.Cell {
	out := make([]domain.Cell, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			n := domain.Cell{Row: c.Row + dr, Col: c.Col + dc}
			if n.Row >= 0 && n.Row < a.height && n.Col >= 0 && n.Col < a.width {
				out = append(out, n)
			}
		}
	}
	return out
}

// MakeSafeMove returns a cell proven safe that has not been played
// yet, lowest coordinates first. The second result is false when no
// such cell is known.
func (a *Agent) MakeSafeMove() (domain.Cell, bool) {
	var candidates []domain.Cell
	for c := range a.safes {
		if _, played := a.movesMade[c]; !played {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return domain.Cell{}, false
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Less(candidates[j]) })
	return candidates[0], true
}

// MakeRandomMove returns a uniformly chosen cell that has not been
// played and is not a known mine, or false when the board is
// exhausted.
func (a *Agent) MakeRandomMove() (domain.Cell, bool) {
	var candidates []domain.Cell
	for r := 0; r < a.height; r++ {
		for c := 0; c < a.width; c++ {
			cell := domain.Cell{Row: r, Col: c}
			if _, played := a.movesMade[cell]; played {
				continue
			}
			if _, mined := a.mines[cell]; mined {
				continue
			}
			candidates = append(candidates, cell)
		}
	}
	if len(candidates) == 0 {
		return domain.Cell{}, false
	}
	return candidates[a.rng.Intn(len(candidates))], true
}

// Mines returns the cells proven to be mines, sorted row-major.
func (a *Agent) Mines() []domain.Cell { return sortedCells(a.mines) }

// Safes returns the cells proven safe, sorted row-major.
func (a *Agent) Safes() []domain.Cell { return sortedCells(a.safes) }

// MovesMade returns the cells already revealed, sorted row-major.
func (a *Agent) MovesMade() []domain.Cell { return sortedCells(a.movesMade) }

// Sentences returns copies of the live sentences for inspection.
func (a *Agent) Sentences() []*Sentence {
	out := make([]*Sentence, len(a.sentences))
	for i, s := range a.sentences {
		out[i] = NewSentence(s.Cells(), s.Count())
	}
	return out
}

func sortedCells(set map[domain.Cell]struct{}) []domain.Cell {
	out := make([]domain.Cell, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
