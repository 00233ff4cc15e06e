package board

import (
	"fmt"
	"strconv"
	"strings"
)

// Move is a single action legal in some position: a quiet diagonal step
// or slide, or a (possibly multi-jump) capture sequence. Captures lists
// the squares of the captured pieces in jump order; Promotion is set
// when the move ends a man on its promotion row.
type Move struct {
	From      int
	To        int
	Captures  []int
	Promotion bool
}

// NoMove is the zero move, used where no move is available.
var NoMove = Move{}

// IsCapture returns true if the move captures at least one piece.
func (m Move) IsCapture() bool {
	return len(m.Captures) > 0
}

// IsNoMove returns true for the zero move.
func (m Move) IsNoMove() bool {
	return m.From == 0
}

// Equal compares two moves including their capture sequences.
func (m Move) Equal(o Move) bool {
	if m.From != o.From || m.To != o.To || m.Promotion != o.Promotion {
		return false
	}
	if len(m.Captures) != len(o.Captures) {
		return false
	}
	for i, c := range m.Captures {
		if c != o.Captures[i] {
			return false
		}
	}
	return true
}

// String returns the PDN notation of the move: "32-28" for a quiet move,
// "28x19" for a capture.
func (m Move) String() string {
	if m.IsNoMove() {
		return "-"
	}
	sep := "-"
	if m.IsCapture() {
		sep = "x"
	}
	return strconv.Itoa(m.From) + sep + strconv.Itoa(m.To)
}

// ParseMove parses PDN notation ("32-28" or "28x19") and resolves it
// against the legal moves of the position. Capture notation that is
// ambiguous between several sequences resolves to the first legal match.
func ParseMove(s string, pos *Position) (Move, error) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if len(parts) < 2 {
		return NoMove, fmt.Errorf("invalid move %q", s)
	}
	from, err := strconv.Atoi(parts[0])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q: %v", s, err)
	}
	to, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return NoMove, fmt.Errorf("invalid move %q: %v", s, err)
	}
	for _, m := range pos.LegalMoves() {
		if m.From == from && m.To == to {
			return m, nil
		}
	}
	return NoMove, fmt.Errorf("illegal move %q", s)
}
