package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/saeedRZ1/minesweeper-agent/internal/domain"
	"github.com/saeedRZ1/minesweeper-agent/internal/game"
	"github.com/saeedRZ1/minesweeper-agent/internal/guess"
	"github.com/saeedRZ1/minesweeper-agent/internal/infrastructure/storage"
	"github.com/saeedRZ1/minesweeper-agent/internal/knowledge"
	"github.com/saeedRZ1/minesweeper-agent/internal/ports"
	"github.com/saeedRZ1/minesweeper-agent/internal/runner"
)

func main() {
	height := flag.Int("height", 8, "board rows")
	width := flag.Int("width", 8, "board columns")
	mines := flag.Int("mines", 8, "number of mines")
	play := flag.String("play", "auto", "run mode: auto|human")
	games := flag.Int("games", 1, "games to play in auto mode")
	seed := flag.Int64("seed", 0, "rng seed (0 = time-based)")
	levelStr := flag.String("log-level", "info", "debug|info|warn|error")
	persist := flag.String("persist-path", "", "directory for game records (empty = no persistence)")
	useGuesser := flag.String("guesser", "neural", "fallback guesser: neural|random")
	flag.Parse()

	log := logrus.New()
	if lvl, err := logrus.ParseLevel(*levelStr); err == nil {
		log.SetLevel(lvl)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	var store ports.Storage
	if *persist != "" {
		store = storage.NewFS(*persist)
	}

	switch strings.ToLower(*play) {
	case "human":
		humanPlay(*height, *width, *mines, *seed)
	default:
		autoPlay(log, store, *height, *width, *mines, *games, *seed, *useGuesser)
	}
}

func autoPlay(log *logrus.Logger, store ports.Storage, height, width, mines, games int, seed int64, guesserKind string) {
	ctx := context.Background()

	// One guesser across games so it learns from each finished board.
	var guesser ports.Guesser
	if strings.ToLower(strings.TrimSpace(guesserKind)) == "neural" {
		guesser = guess.NewNeural(log)
	}

	wins := 0
	for i := 0; i < games; i++ {
		gameSeed := seed + int64(i)
		board, err := game.NewBoard(height, width, mines, rand.New(rand.NewSource(gameSeed)))
		if err != nil {
			log.WithError(err).Fatal("invalid board parameters")
		}
		agent := knowledge.NewAgent(height, width, rand.New(rand.NewSource(gameSeed+1)), log)

		r := runner.New(agent, board, guesser, store, log)
		r.Seed = gameSeed
		rec, err := r.Play(ctx)
		if err != nil {
			log.WithError(err).Fatal("game aborted")
		}
		if conflicts := runner.CheckConsistency(board, agent); len(conflicts) > 0 {
			log.WithField("cells", conflicts).Error("knowledge base inconsistent with board")
		}
		if rec.Outcome == domain.Won {
			wins++
		}
		log.WithFields(logrus.Fields{
			"game":    i + 1,
			"outcome": rec.Outcome.String(),
			"moves":   rec.Moves,
			"guesses": rec.Guesses,
			"flagged": rec.FlaggedMines,
			"dur":     rec.Duration.Round(time.Millisecond),
		}).Info("game finished")

		if i == games-1 || log.IsLevelEnabled(logrus.DebugLevel) {
			fmt.Print(board.Render(true))
		}
	}
	log.WithFields(logrus.Fields{
		"games":    games,
		"wins":     wins,
		"win_rate": fmt.Sprintf("%.2f", float64(wins)/float64(games)),
	}).Info("run complete")
}

func humanPlay(height, width, mines int, seed int64) {
	board, err := game.NewBoard(height, width, mines, rand.New(rand.NewSource(seed)))
	if err != nil {
		fmt.Fprintln(os.Stderr, "invalid board parameters:", err)
		os.Exit(1)
	}

	fmt.Println("Welcome to Minesweeper. Commands: reveal r c | flag r c | quit")
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(board.Render(false))
		fmt.Print("> ")
		if !sc.Scan() {
			return
		}
		parts := strings.Fields(strings.ToLower(sc.Text()))
		if len(parts) == 0 {
			continue
		}
		if parts[0] == "quit" {
			return
		}
		var r, c int
		if len(parts) != 3 {
			fmt.Println("invalid command")
			continue
		}
		if _, err := fmt.Sscanf(parts[1]+" "+parts[2], "%d %d", &r, &c); err != nil {
			fmt.Println("invalid coordinates")
			continue
		}
		cell := domain.Cell{Row: r, Col: c}
		if !board.InBounds(cell) {
			fmt.Println("out of bounds")
			continue
		}
		switch parts[0] {
		case "reveal":
			count, hit := board.Reveal(cell)
			if hit {
				fmt.Println("Boom! You hit a mine. Game over.")
				fmt.Print(board.Render(true))
				return
			}
			fmt.Println("Nearby mines:", count)
			if board.Won() {
				fmt.Println("You won! Congratulations.")
				fmt.Print(board.Render(true))
				return
			}
		case "flag":
			board.ToggleFlag(cell)
		default:
			fmt.Println("unknown action")
		}
	}
}
