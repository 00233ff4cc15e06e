package engine

import (
	"github.com/pkoopman/draughtsplay/internal/board"
)

// Node carries the search bookkeeping attached to one position: the
// best move found so far across completed deepening iterations, the
// best move at the depth currently being searched, the best value, and
// the principal variation discovered below this node (one move per
// ply, this node's move first).
//
// A fresh Node is created for the root and for every explored child;
// state flows to the parent only by explicit propagation when a child
// improves the parent's best score.
type Node struct {
	pos *board.Position

	bestMove    board.Move // best move from the last completed depth
	currentBest board.Move // best move at the depth being searched
	bestValue   int
	line        []board.Move // principal variation below this node
}

// NewNode creates a search node around a position.
func NewNode(pos *board.Position) *Node {
	return &Node{pos: pos}
}

// Position returns the wrapped position.
func (n *Node) Position() *board.Position {
	return n.pos
}

// BestMove returns the best move found at the last fully completed
// search depth, or NoMove if none completed yet.
func (n *Node) BestMove() board.Move {
	return n.bestMove
}

// BestValue returns the score recorded with the best move.
func (n *Node) BestValue() int {
	return n.bestValue
}

// PrincipalVariation returns the best line found so far, one move per
// ply starting with this node's best move.
func (n *Node) PrincipalVariation() []board.Move {
	return n.line
}

// improve records a new best move at the current depth and rebuilds the
// principal variation from the child's line.
func (n *Node) improve(m board.Move, child *Node) {
	n.currentBest = m
	n.line = append(append(n.line[:0], m), child.line...)
}

// commitDepth promotes the current depth's best move and score to the
// node's overall result. Called only after a depth completes, so a
// cancelled iteration never overwrites the previous depth's answer.
func (n *Node) commitDepth(value int) {
	n.bestMove = n.currentBest
	n.bestValue = value
}
