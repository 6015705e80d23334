package main

import (
	"math/rand"
	"testing"

	"github.com/wricardo/tictacroom/game/engine"
)

func TestPlayGamePerfectDraws(t *testing.T) {
	outcome := playGame(perfectPolicy, perfectPolicy)
	if outcome != engine.Draw {
		t.Errorf("perfect self-play finished %s, want draw", outcome)
	}
}

func TestPerfectONeverLosesToRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	random := randomPolicy(rng)

	for i := 0; i < 200; i++ {
		if outcome := playGame(random, perfectPolicy); outcome == engine.XWon {
			t.Fatalf("perfect O lost game %d to a random player", i)
		}
	}
}

func TestPlayGameTerminates(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	random := randomPolicy(rng)

	for i := 0; i < 50; i++ {
		outcome := playGame(random, random)
		if outcome == engine.InProgress {
			t.Fatalf("game %d ended in progress", i)
		}
	}
}
