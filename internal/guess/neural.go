// Package guess ranks unopened cells by estimated mine probability for
// the moments when deduction alone cannot name a safe move.
package guess

import (
	"context"
	"errors"

	"github.com/patrikeh/go-deep"
	"github.com/patrikeh/go-deep/training"
	"github.com/sirupsen/logrus"

	"github.com/saeedRZ1/minesweeper-agent/internal/domain"
	"github.com/saeedRZ1/minesweeper-agent/internal/ports"
)

const (
	windowRadius = 2
	inputSize    = (2*windowRadius + 1) * (2*windowRadius + 1)
)

// Cell encodings for the feature window.
const (
	featOutOfBounds = 9.0
	featHidden      = -1.0
	featFlagged     = -2.0
)

// Neural estimates mine probability from a 5x5 window of the visible
// board around a candidate cell. It learns online: finished games feed
// labeled examples back in through Observe and Train.
type Neural struct {
	net      *deep.Neural
	examples training.Examples
	rate     float64
	log      logrus.FieldLogger
}

// NewNeural builds an untrained network. A nil log uses the standard
// logger.
func NewNeural(log logrus.FieldLogger) *Neural {
	if log == nil {
		log = logrus.StandardLogger()
	}
	net := deep.NewNeural(&deep.Config{
		Inputs:     inputSize,
		Layout:     []int{32, 16, 1},
		Activation: deep.ActivationReLU,
		Mode:       deep.ModeBinary,
		Weight:     deep.NewNormal(0.0, 0.1),
		Bias:       true,
	})
	return &Neural{net: net, rate: 0.01, log: log}
}

// Guess returns the candidate with the lowest predicted mine
// probability. ok is false only for an empty candidate list or a
// canceled context; an untrained network still yields a usable
// (if arbitrary) ranking.
func (n *Neural) Guess(ctx context.Context, view ports.BoardView, frontier []domain.Cell) (domain.Cell, float64, bool) {
	if len(frontier) == 0 || ctx.Err() != nil {
		return domain.Cell{}, 0, false
	}
	best := frontier[0]
	bestProb := n.predict(view, best)
	for _, c := range frontier[1:] {
		if p := n.predict(view, c); p < bestProb {
			best, bestProb = c, p
		}
	}
	n.log.WithFields(logrus.Fields{
		"cell":       best,
		"mine_prob":  bestProb,
		"candidates": len(frontier),
	}).Debug("neural guess")
	return best, bestProb, true
}

func (n *Neural) predict(view ports.BoardView, c domain.Cell) float64 {
	return n.net.Predict(Features(view, c))[0]
}

// Observe records a labeled example from a finished game.
func (n *Neural) Observe(view ports.BoardView, c domain.Cell, isMine bool) {
	label := 0.0
	if isMine {
		label = 1.0
	}
	n.examples = append(n.examples, training.Example{
		Input:    Features(view, c),
		Response: []float64{label},
	})
}

// Train fits the network to the accumulated examples and clears them.
func (n *Neural) Train() error {
	if len(n.examples) == 0 {
		return errors.New("no training examples collected")
	}
	trainer := training.NewTrainer(training.NewSGD(n.rate, 0.5, 0.0, false), 0)
	trainer.Train(n.net, n.examples, nil, 50)
	n.log.WithField("examples", len(n.examples)).Debug("guesser trained")
	n.examples = n.examples[:0]
	return nil
}

// Features flattens the visibility window around a cell: the observed
// count for revealed neighbors, and sentinel values for hidden,
// flagged, and out-of-bounds squares.
func Features(view ports.BoardView, center domain.Cell) []float64 {
	out := make([]float64, 0, inputSize)
	for dr := -windowRadius; dr <= windowRadius; dr++ {
		for dc := -windowRadius; dc <= windowRadius; dc++ {
			c := domain.Cell{Row: center.Row + dr, Col: center.Col + dc}
			switch {
			case !view.InBounds(c):
				out = append(out, featOutOfBounds)
			case view.IsRevealed(c):
				out = append(out, float64(view.NearbyCount(c)))
			case view.IsFlagged(c):
				out = append(out, featFlagged)
			default:
				out = append(out, featHidden)
			}
		}
	}
	return out
}
