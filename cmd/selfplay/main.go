// Command selfplay runs the AI opponent against itself (or against a random
// player) and prints the outcome distribution. It is a quick sanity harness
// for the move search: perfect self-play must always draw, and the AI must
// never lose to a random opponent.
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/tictacroom/game/engine"
)

// policy picks a cell for the side to move, or returns false when no move
// is available.
type policy func(b engine.Board, toMove engine.Mark) (int, bool)

func perfectPolicy(b engine.Board, toMove engine.Mark) (int, bool) {
	return engine.BestMove(b, toMove)
}

func randomPolicy(rng *rand.Rand) policy {
	return func(b engine.Board, toMove engine.Mark) (int, bool) {
		var free []int
		for i, m := range b {
			if m == engine.Empty {
				free = append(free, i)
			}
		}
		if len(free) == 0 {
			return 0, false
		}
		return free[rng.Intn(len(free))], true
	}
}

// playGame plays one game from an empty board, X moving first.
func playGame(xPolicy, oPolicy policy) engine.Outcome {
	var board engine.Board
	turn := engine.X

	for {
		if outcome := engine.Evaluate(board); outcome != engine.InProgress {
			return outcome
		}

		pick := xPolicy
		if turn == engine.O {
			pick = oPolicy
		}
		cell, ok := pick(board, turn)
		if !ok {
			return engine.Evaluate(board)
		}
		board[cell] = turn

		if turn == engine.X {
			turn = engine.O
		} else {
			turn = engine.X
		}
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "selfplay",
		Usage: "play the move search against itself and report outcomes",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "games",
				Value: 100,
				Usage: "number of games to play",
			},
			&cli.BoolFlag{
				Name:  "random-x",
				Usage: "replace X with a random player (O stays perfect)",
			},
			&cli.IntFlag{
				Name:  "seed",
				Value: 1,
				Usage: "seed for the random player",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	games := int(cmd.Int("games"))
	if games <= 0 {
		return fmt.Errorf("games must be positive, got %d", games)
	}

	xPolicy := policy(perfectPolicy)
	mode := "perfect vs perfect"
	if cmd.Bool("random-x") {
		rng := rand.New(rand.NewSource(int64(cmd.Int("seed"))))
		xPolicy = randomPolicy(rng)
		mode = "random X vs perfect O"
	}

	tally := map[engine.Outcome]int{}
	for i := 0; i < games; i++ {
		tally[playGame(xPolicy, perfectPolicy)]++
	}

	fmt.Printf("Mode: %s\n", mode)
	fmt.Printf("Games: %d\n", games)
	fmt.Printf("X wins: %d\n", tally[engine.XWon])
	fmt.Printf("O wins: %d\n", tally[engine.OWon])
	fmt.Printf("Draws:  %d\n", tally[engine.Draw])

	// The search is broken if the perfect O side ever loses.
	if tally[engine.XWon] > 0 && cmd.Bool("random-x") {
		return fmt.Errorf("perfect O lost %d games to a random player", tally[engine.XWon])
	}
	if !cmd.Bool("random-x") && (tally[engine.XWon] > 0 || tally[engine.OWon] > 0) {
		return fmt.Errorf("perfect self-play produced a decisive result")
	}
	return nil
}
