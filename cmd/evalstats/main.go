// Command evalstats samples random self-play games and reports the
// distribution of static evaluation scores per game phase. Useful for
// sanity-checking weight changes: the score distribution should stay
// roughly centered and widen toward the endgame.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pkoopman/draughtsplay/internal/board"
	"github.com/pkoopman/draughtsplay/internal/engine"
)

func main() {
	games := flag.Int("games", 200, "number of random games to sample")
	plies := flag.Int("plies", 80, "maximum plies per game")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	rnd := rand.New(rand.NewSource(*seed))
	eval := engine.NewEvaluator(engine.DefaultWeights)

	// Scores bucketed by game phase.
	phases := make([][]float64, engine.NumPhases)

	for g := 0; g < *games; g++ {
		pos := board.NewPosition()
		for ply := 0; ply < *plies; ply++ {
			moves := pos.LegalMoves()
			if len(moves) == 0 {
				break
			}
			pos.Apply(moves[rnd.Intn(len(moves))])

			counts := pos.CountPieces()
			total := counts[board.WhiteMan] + counts[board.BlackMan] +
				counts[board.WhiteKing] + counts[board.BlackKing]
			phase := engine.GamePhase(total)
			phases[phase] = append(phases[phase], float64(eval.Evaluate(pos)))
		}
	}

	fmt.Printf("=== Evaluation score distribution (%d games) ===\n\n", *games)
	fmt.Printf("%-6s %8s %10s %10s %10s %10s %10s\n",
		"phase", "samples", "mean", "stddev", "min", "median", "max")

	for phase, scores := range phases {
		if len(scores) == 0 {
			fmt.Printf("%-6d %8d\n", phase, 0)
			continue
		}
		sort.Float64s(scores)
		fmt.Printf("%-6d %8d %10.1f %10.1f %10.1f %10.1f %10.1f\n",
			phase,
			len(scores),
			stat.Mean(scores, nil),
			stat.StdDev(scores, nil),
			floats.Min(scores),
			stat.Quantile(0.5, stat.Empirical, scores, nil),
			floats.Max(scores),
		)
	}
}
