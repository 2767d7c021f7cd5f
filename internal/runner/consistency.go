package runner

import (
	"github.com/saeedRZ1/minesweeper-agent/internal/domain"
	"github.com/saeedRZ1/minesweeper-agent/internal/game"
	"github.com/saeedRZ1/minesweeper-agent/internal/ports"
)

// CheckConsistency cross-checks the knowledge base against the hidden
// layout: a cell is a conflict if the agent proved it both mine and
// safe, called a mine where none is, or called a board mine safe.
// Honest observations can never produce conflicts; a non-empty result
// indicates a bug, not a recoverable condition.
func CheckConsistency(b *game.Board, a ports.KnowledgeBase) []domain.Cell {
	safes := make(map[domain.Cell]struct{})
	for _, c := range a.Safes() {
		safes[c] = struct{}{}
	}

	var conflicts []domain.Cell
	for _, c := range a.Mines() {
		if _, alsoSafe := safes[c]; alsoSafe {
			conflicts = append(conflicts, c)
			continue
		}
		if !b.IsMine(c) {
			conflicts = append(conflicts, c)
		}
	}
	for _, c := range a.Safes() {
		if b.IsMine(c) {
			conflicts = append(conflicts, c)
		}
	}
	return conflicts
}
