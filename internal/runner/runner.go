// Package runner drives a full game: it asks the knowledge base for
// moves, feeds observations back, and records the result.
package runner

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/saeedRZ1/minesweeper-agent/internal/domain"
	"github.com/saeedRZ1/minesweeper-agent/internal/game"
	"github.com/saeedRZ1/minesweeper-agent/internal/ports"
)

var errNotConfigured = errors.New("runner dependency not configured")

// Runner wires one agent to one board. Guesser and Storage are
// optional; Agent and Board are required.
type Runner struct {
	Agent   ports.KnowledgeBase
	Board   *game.Board
	Guesser ports.Guesser
	Storage ports.Storage
	Seed    int64
	Log     logrus.FieldLogger
}

// New builds a Runner with the standard logger unless log is given.
func New(agent ports.KnowledgeBase, board *game.Board, guesser ports.Guesser, storage ports.Storage, log logrus.FieldLogger) *Runner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{Agent: agent, Board: board, Guesser: guesser, Storage: storage, Log: log}
}

// NextMove implements ports.Advisor: a proven-safe cell first, then a
// flag on a proven mine, then the guesser's pick over the frontier,
// then a uniform random cell.
func (r *Runner) NextMove(ctx context.Context) (domain.Move, bool, error) {
	if r.Agent == nil || r.Board == nil {
		return domain.Move{}, false, errNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return domain.Move{}, false, err
	}

	if cell, ok := r.Agent.MakeSafeMove(); ok {
		return domain.Move{Cell: cell, Kind: domain.MoveReveal, Strategy: "logic", Confidence: 1.0}, true, nil
	}

	for _, cell := range r.Agent.Mines() {
		if !r.Board.IsFlagged(cell) && !r.Board.IsRevealed(cell) {
			return domain.Move{Cell: cell, Kind: domain.MoveFlag, Strategy: "logic", Confidence: 1.0}, true, nil
		}
	}

	if r.Guesser != nil {
		if cell, prob, ok := r.Guesser.Guess(ctx, r.Board, r.frontier()); ok {
			return domain.Move{
				Cell:       cell,
				Kind:       domain.MoveReveal,
				Guess:      true,
				Strategy:   "neural",
				Confidence: 1.0 - prob,
			}, true, nil
		}
	}

	if cell, ok := r.Agent.MakeRandomMove(); ok {
		return domain.Move{Cell: cell, Kind: domain.MoveReveal, Guess: true, Strategy: "random"}, true, nil
	}
	return domain.Move{}, false, nil
}

// Play runs the game to completion and returns its record. The record
// is persisted when a Storage is configured.
func (r *Runner) Play(ctx context.Context) (*domain.GameRecord, error) {
	if r.Agent == nil || r.Board == nil {
		return nil, errNotConfigured
	}
	log := r.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	start := time.Now()
	rec := &domain.GameRecord{
		Seed:      r.Seed,
		Height:    r.Board.Height(),
		Width:     r.Board.Width(),
		MineCount: r.Board.MineCount(),
	}

	for r.Board.Outcome() == domain.Ongoing {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		move, ok, err := r.NextMove(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}

		if move.Kind == domain.MoveFlag {
			r.Board.ToggleFlag(move.Cell)
			rec.Moves++
			log.WithField("cell", move.Cell).Debug("flagged")
			continue
		}

		count, hit := r.Board.Reveal(move.Cell)
		rec.Moves++
		if move.Guess {
			rec.Guesses++
		}
		log.WithFields(logrus.Fields{
			"cell":     move.Cell,
			"strategy": move.Strategy,
			"count":    count,
			"hit":      hit,
		}).Debug("revealed")

		if hit {
			r.Agent.MarkMine(move.Cell)
			break
		}
		r.Agent.AddKnowledge(move.Cell, count)
	}

	rec.Outcome = r.Board.Outcome()
	for _, c := range r.Board.Flags() {
		if r.Board.IsMine(c) {
			rec.FlaggedMines++
		}
	}
	rec.Duration = time.Since(start)
	rec.CreatedAt = time.Now().UnixNano()

	r.feedGuesser()

	if r.Storage != nil {
		if err := r.Storage.Save(ctx, rec); err != nil {
			return rec, err
		}
	}
	return rec, nil
}

// frontier lists the hidden, non-proven-mine cells that touch at
// least one revealed cell; if none do yet, every candidate qualifies.
func (r *Runner) frontier() []domain.Cell {
	known := make(map[domain.Cell]struct{})
	for _, c := range r.Agent.Mines() {
		known[c] = struct{}{}
	}
	var frontier, all []domain.Cell
	for row := 0; row < r.Board.Height(); row++ {
		for col := 0; col < r.Board.Width(); col++ {
			c := domain.Cell{Row: row, Col: col}
			if r.Board.IsRevealed(c) {
				continue
			}
			if _, mined := known[c]; mined {
				continue
			}
			all = append(all, c)
			for _, n := range r.Board.Neighbors(c) {
				if r.Board.IsRevealed(n) {
					frontier = append(frontier, c)
					break
				}
			}
		}
	}
	if len(frontier) == 0 {
		return all
	}
	return frontier
}

// feedGuesser labels the end-of-game frontier with the true layout and
// retrains a Trainable guesser.
func (r *Runner) feedGuesser() {
	t, ok := r.Guesser.(ports.Trainable)
	if !ok {
		return
	}
	cells := r.frontier()
	for _, c := range cells {
		t.Observe(r.Board, c, r.Board.IsMine(c))
	}
	if len(cells) == 0 {
		return
	}
	if err := t.Train(); err != nil && r.Log != nil {
		r.Log.WithError(err).Warn("guesser training failed")
	}
}
