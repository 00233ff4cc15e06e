// Package engine implements the draughts AI search engine.
package engine

import (
	"github.com/pkoopman/draughtsplay/internal/board"
)

// Search constants
const (
	Infinity = 1 << 30
)

// NumPhases is the number of discrete game phases. Phase-dependent
// weights carry one value per phase.
const NumPhases = 4

// Phase thresholds on the total piece count, descending. 32 or more
// pieces is phase 0, 24 or more phase 1, 16 or more phase 2, fewer is
// phase 3.
const (
	phase0Pieces = 32
	phase1Pieces = 24
	phase2Pieces = 16
)

// sidePenaltyPieces is the late-middlegame threshold below which the
// side-column penalty kicks in. Edge pieces have fewer diagonals and
// are easier to immobilize once the board opens up.
const sidePenaltyPieces = phase1Pieces

// Weights parametrizes the evaluator. All phase-indexed tables give a
// value per game phase.
type Weights struct {
	Man           int            // material value of a man
	King          [NumPhases]int // material value of a king
	Tempo         [NumPhases]int // per-rank advancement bonus
	DoubleCorner  [NumPhases]int // bonus for holding the double-corner squares
	SidePiece     [NumPhases]int // penalty for pieces on the outer columns
	CenterControl [NumPhases]int // graded bonus for the central squares
	Balance       [NumPhases]int // penalty weight for left/right imbalance
	GoldenPiece   [NumPhases]int // bonus for the back-center square
	CornerBack    [NumPhases]int // back-rank defense, corner squares
	MiddleBack    [NumPhases]int // back-rank defense, central squares
	BackRank      bool           // enable the back-rank defense term
}

// DefaultWeights is the hand-tuned table the engine ships with.
var DefaultWeights = Weights{
	Man:           1000,
	King:          [NumPhases]int{3000, 3000, 3000, 3000},
	Tempo:         [NumPhases]int{20, 25, 30, 50},
	DoubleCorner:  [NumPhases]int{75, 75, 75, 75},
	SidePiece:     [NumPhases]int{-100, -100, -100, -100},
	CenterControl: [NumPhases]int{45, 50, 55, 55},
	Balance:       [NumPhases]int{-50, -50, -50, -20},
	GoldenPiece:   [NumPhases]int{60, 60, 15, 40},
	CornerBack:    [NumPhases]int{150, 150, 150, 150},
	MiddleBack:    [NumPhases]int{250, 250, 250, 250},
}

// Center control squares for White men, graded from the single most
// central square outward. Black's squares are the mirror images.
var (
	centerCore  = []int{28}
	centerInner = []int{29, 32, 33}
	centerOuter = []int{27, 34, 37, 38, 39}
)

// goldenSquare is the back-center square whose defender anchors the
// back rank: 48 for White, mirrored to 3 for Black.
const goldenSquare = 48

// doubleCornerSquares hold the double-corner bonus for both sides.
var doubleCornerSquares = map[int]bool{1: true, 6: true, 45: true, 50: true}

// Evaluator scores positions with an absolute sign convention: positive
// favors White, negative favors Black. It performs no search and keeps
// no state between calls.
type Evaluator struct {
	w Weights
}

// NewEvaluator creates an evaluator with the given weight tables.
func NewEvaluator(w Weights) *Evaluator {
	return &Evaluator{w: w}
}

// GamePhase buckets the total piece count into a phase index 0..3.
func GamePhase(totalPieces int) int {
	switch {
	case totalPieces >= phase0Pieces:
		return 0
	case totalPieces >= phase1Pieces:
		return 1
	case totalPieces >= phase2Pieces:
		return 2
	default:
		return 3
	}
}

// Evaluate returns the static score of the position. Swapping the two
// sides' pieces negates the score.
func (e *Evaluator) Evaluate(pos *board.Position) int {
	counts := pos.CountPieces()
	total := counts[board.WhiteMan] + counts[board.BlackMan] +
		counts[board.WhiteKing] + counts[board.BlackKing]
	phase := GamePhase(total)

	whiteScore := e.w.Man*counts[board.WhiteMan] + e.w.King[phase]*counts[board.WhiteKing]
	blackScore := e.w.Man*counts[board.BlackMan] + e.w.King[phase]*counts[board.BlackKing]

	pieces := pos.Pieces()
	for sq := 1; sq <= board.NumSquares; sq++ {
		switch pieces[sq] {
		case board.WhiteMan:
			whiteScore += e.positional(sq, board.White, total, phase)
		case board.BlackMan:
			blackScore += e.positional(sq, board.Black, total, phase)
		}
	}

	score := whiteScore - blackScore
	score += e.w.Balance[phase] * leftRightBalance(pos)
	return score
}

// positional scores a single man. Kings get no positional bonus; their
// raw material value already dominates.
func (e *Evaluator) positional(sq int, c board.Color, totalPieces, phase int) int {
	score := 0

	// Tempo: ranks advanced from the own back rank.
	row := board.Row(sq)
	if c == board.White {
		row = 9 - row
	}
	score += (row + 1) * e.w.Tempo[phase]

	// Graded center control.
	csq := sq
	if c == board.Black {
		csq = board.Mirror(sq)
	}
	switch {
	case intsContain(centerCore, csq):
		score += 3 * e.w.CenterControl[phase]
	case intsContain(centerInner, csq):
		score += 2 * e.w.CenterControl[phase]
	case intsContain(centerOuter, csq):
		score += e.w.CenterControl[phase]
	}

	// Golden square: the exact back-center square only.
	if csq == goldenSquare {
		score += e.w.GoldenPiece[phase]
	}

	// Double corner.
	if doubleCornerSquares[sq] {
		score += e.w.DoubleCorner[phase]
	}

	// Side-column penalty, late middlegame onward.
	if totalPieces < sidePenaltyPieces {
		if col := board.Col(sq); col == 0 || col == 9 {
			score += e.w.SidePiece[phase]
		}
	}

	// Back-rank defense, disabled in the default table.
	if e.w.BackRank && row == 0 {
		if col := board.Col(sq); col <= 1 || col >= 8 {
			score += e.w.CornerBack[phase]
		} else {
			score += e.w.MiddleBack[phase]
		}
	}

	return score
}

// leftRightBalance returns White's wing imbalance minus Black's. The
// wings are the left three and right three board columns; each side's
// imbalance is the absolute difference of its piece counts on the two
// wings. Weighted negatively, being more lopsided than the opponent is
// penalized.
func leftRightBalance(pos *board.Position) int {
	pieces := pos.Pieces()
	var white, black int
	for sq := 1; sq <= board.NumSquares; sq++ {
		pc := pieces[sq]
		if pc == board.Empty {
			continue
		}
		var wing int
		switch col := board.Col(sq); {
		case col <= 2:
			wing = 1
		case col >= 7:
			wing = -1
		default:
			continue
		}
		if pc.Color() == board.White {
			white += wing
		} else {
			black += wing
		}
	}
	return abs(white) - abs(black)
}

func intsContain(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
