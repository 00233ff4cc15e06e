package engine

import (
	"errors"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/pkoopman/draughtsplay/internal/board"
)

// SearchInfo reports the result of a search for callers that want to
// display it.
type SearchInfo struct {
	Depth int
	Score int
	Move  board.Move
	PV    []board.Move
	Time  time.Duration
}

// Difficulty represents the AI difficulty level.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// DifficultySettings maps difficulty to a search depth and the move
// time after which the caller should request a stop.
var DifficultySettings = map[Difficulty]struct {
	Depth    int
	MoveTime time.Duration
}{
	Easy:   {Depth: 4, MoveTime: 500 * time.Millisecond},
	Medium: {Depth: 7, MoveTime: 2 * time.Second},
	Hard:   {Depth: 10, MoveTime: 5 * time.Second},
}

// Engine selects moves by iterative-deepening alpha-beta search. One
// search runs at a time; Stop may be called concurrently from another
// goroutine and cancels the running search cooperatively.
type Engine struct {
	eval     *Evaluator
	maxDepth int
	seed     int64

	stopFlag  atomic.Bool
	lastScore atomic.Int64
	lastPV    []board.Move
}

// NewEngine creates an engine that searches to maxDepth plies with the
// default evaluation weights.
func NewEngine(maxDepth int) *Engine {
	return NewEngineWithWeights(maxDepth, DefaultWeights)
}

// NewEngineWithWeights creates an engine with a custom weight table.
func NewEngineWithWeights(maxDepth int, w Weights) *Engine {
	return &Engine{
		eval:     NewEvaluator(w),
		maxDepth: maxDepth,
		seed:     time.Now().UnixNano(),
	}
}

// SetSeed fixes the move-ordering shuffle seed. Tests use this for
// reproducible searches.
func (e *Engine) SetSeed(seed int64) {
	e.seed = seed
}

// Stop requests that the running search stop. The search observes the
// flag at its next recursive entry and unwinds, and SelectMove returns
// the best move from the last fully completed depth.
func (e *Engine) Stop() {
	e.stopFlag.Store(true)
}

// LastScore returns the score computed by the most recent SelectMove.
func (e *Engine) LastScore() int {
	return int(e.lastScore.Load())
}

// Evaluate returns the static evaluation of a position.
func (e *Engine) Evaluate(pos *board.Position) int {
	return e.eval.Evaluate(pos)
}

// SelectMove searches the position to the engine's configured depth
// and returns the best move found. It returns NoMove only when the
// position has no legal move at all.
func (e *Engine) SelectMove(pos *board.Position) board.Move {
	return e.SelectMoveDepth(pos, e.maxDepth)
}

// SelectMoveDepth is SelectMove with an explicit depth limit.
func (e *Engine) SelectMoveDepth(pos *board.Position, maxDepth int) board.Move {
	rnd := rand.New(rand.NewSource(e.seed))
	e.seed++
	// A stop raced against the end of the previous search must not
	// cancel this one.
	e.stopFlag.Store(false)
	s := &search{eval: e.eval, rnd: rnd, stop: &e.stopFlag}
	root := NewNode(pos)

	start := time.Now()
	value, err := s.deepen(root, -Infinity, Infinity, maxDepth)
	if err != nil && !errors.Is(err, ErrStopped) {
		// deepen only ever surfaces the stop condition.
		log.Printf("engine: search failed: %v", err)
	}
	if value == 0 {
		value = root.BestValue()
	}
	e.lastScore.Store(int64(value))
	e.lastPV = append(e.lastPV[:0], root.PrincipalVariation()...)

	best := root.BestMove()
	if best.IsNoMove() {
		// Depth 0, or stopped before depth 1 completed: play anything.
		moves := pos.LegalMoves()
		if len(moves) == 0 {
			return board.NoMove
		}
		return moves[rnd.Intn(len(moves))]
	}
	log.Printf("engine: depth=%d move=%s value=%d pv=%v time=%v",
		maxDepth, best, value, root.PrincipalVariation(), time.Since(start))
	return best
}

// SelectMoveInfo runs SelectMove and also reports the search summary.
func (e *Engine) SelectMoveInfo(pos *board.Position, maxDepth int) (board.Move, SearchInfo) {
	start := time.Now()
	move := e.SelectMoveDepth(pos, maxDepth)
	return move, SearchInfo{
		Depth: maxDepth,
		Score: e.LastScore(),
		Move:  move,
		PV:    e.LastPV(),
		Time:  time.Since(start),
	}
}

// LastPV returns the principal variation of the most recent search.
func (e *Engine) LastPV() []board.Move {
	pv := make([]board.Move, len(e.lastPV))
	copy(pv, e.lastPV)
	return pv
}
