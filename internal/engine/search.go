package engine

import (
	"errors"
	"math/rand"
	"sync/atomic"

	"github.com/pkoopman/draughtsplay/internal/board"
)

// ErrStopped is returned through every search frame when an external
// stop request is observed. It is not a fault: the caller keeps the
// best move from the last fully completed deepening iteration.
var ErrStopped = errors.New("search stopped")

// search is one search session. A fresh session is constructed per
// SelectMove call so that no search state survives between invocations;
// only the stop flag is shared with the owning Engine, which is how an
// external Stop reaches the running session.
type search struct {
	eval *Evaluator
	rnd  *rand.Rand
	stop *atomic.Bool
}

// deepen runs alphaBeta at depths 1..maxDepth against the same root
// node, so the best move and principal variation found at shallower
// depths seed move ordering at the next depth. After each completed
// depth the root's overall best move and value are overwritten; a stop
// arriving mid-depth therefore leaves the previous depth's answer
// intact. Returns the score of the deepest completed depth.
func (s *search) deepen(root *Node, alpha, beta, maxDepth int) (int, error) {
	value := 0
	for depth := 1; depth <= maxDepth; depth++ {
		v, err := s.alphaBeta(root, alpha, beta, depth, root.pos.WhiteToMove(), true)
		if err != nil {
			return value, err
		}
		root.commitDepth(v)
		value = v
	}
	return value, nil
}

// alphaBeta is a fail-soft alpha-beta search. White is always the
// maximizing side, matching the evaluator's absolute sign convention.
// depth is the remaining ply budget; firstPass marks the outermost call
// of a deepening iteration and enables best-move-first ordering. The
// returned score is the exact minimax value, or a value on the correct
// side of the window when a cutoff occurred.
func (s *search) alphaBeta(node *Node, alpha, beta, depth int, maximizing, firstPass bool) (int, error) {
	if s.stop.Load() {
		// Clear before unwinding so the next search starts clean.
		s.stop.Store(false)
		return 0, ErrStopped
	}

	pos := node.pos
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		// Terminal: the side to move has no continuation.
		return s.eval.Evaluate(pos), nil
	}
	// Quiescence: never stand pat while a forced capture is pending.
	// Captures are mandatory, so classifying the first move suffices.
	if depth <= 0 && !moves[0].IsCapture() {
		return s.eval.Evaluate(pos), nil
	}

	ordered := s.order(moves, node, firstPass)

	best := -Infinity
	if !maximizing {
		best = Infinity
	}
	for _, m := range ordered {
		pos.Apply(m)
		child := NewNode(pos)
		value, err := s.alphaBeta(child, alpha, beta, depth-1, !maximizing, false)
		// The revert runs on every path, including the cancellation
		// unwind, so the shared position never leaks a move.
		pos.Undo()
		if err != nil {
			return 0, err
		}

		if maximizing {
			if value > best {
				best = value
				node.improve(m, child)
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if value < best {
				best = value
				node.improve(m, child)
			}
			if best < beta {
				beta = best
			}
		}
		if alpha >= beta {
			break
		}
	}
	return best, nil
}

// order arranges the moves to search. On the first pass of a deepening
// iteration the best move carried over from the previous depth is
// searched first; the rest are shuffled to avoid systematic move-order
// bias between otherwise equal siblings.
func (s *search) order(moves []board.Move, node *Node, firstPass bool) []board.Move {
	ordered := make([]board.Move, len(moves))
	copy(ordered, moves)
	if s.rnd != nil {
		s.rnd.Shuffle(len(ordered), func(i, j int) {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		})
	}
	if firstPass && !node.bestMove.IsNoMove() {
		for i, m := range ordered {
			if m.Equal(node.bestMove) {
				ordered[0], ordered[i] = ordered[i], ordered[0]
				break
			}
		}
	}
	return ordered
}
