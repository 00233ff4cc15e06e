package engine

import (
	"math/rand"
	"testing"

	"github.com/pkoopman/draughtsplay/internal/board"
)

// mirrorPosition swaps the two sides: every piece moves to its mirrored
// square with its color flipped, and the side to move flips.
func mirrorPosition(pos *board.Position) *board.Position {
	toMove := board.White
	if pos.WhiteToMove() {
		toMove = board.Black
	}
	m := board.NewEmptyPosition(toMove)
	swap := map[board.Piece]board.Piece{
		board.WhiteMan:  board.BlackMan,
		board.BlackMan:  board.WhiteMan,
		board.WhiteKing: board.BlackKing,
		board.BlackKing: board.WhiteKing,
	}
	for sq := 1; sq <= board.NumSquares; sq++ {
		if pc := pos.PieceAt(sq); pc != board.Empty {
			m.SetPiece(board.Mirror(sq), swap[pc])
		}
	}
	return m
}

func TestZeroSumSymmetry(t *testing.T) {
	eval := NewEvaluator(DefaultWeights)
	rnd := rand.New(rand.NewSource(7))

	positions := []*board.Position{board.NewPosition()}
	// Random scatterings of men and kings.
	for i := 0; i < 50; i++ {
		pos := board.NewEmptyPosition(board.White)
		for sq := 1; sq <= board.NumSquares; sq++ {
			switch rnd.Intn(8) {
			case 0:
				pos.SetPiece(sq, board.WhiteMan)
			case 1:
				pos.SetPiece(sq, board.BlackMan)
			case 2:
				pos.SetPiece(sq, board.WhiteKing)
			case 3:
				pos.SetPiece(sq, board.BlackKing)
			}
		}
		positions = append(positions, pos)
	}

	for i, pos := range positions {
		score := eval.Evaluate(pos)
		mirrored := eval.Evaluate(mirrorPosition(pos))
		if score != -mirrored {
			t.Errorf("position %d: eval=%d, mirrored eval=%d, want negation", i, score, mirrored)
		}
	}
}

func TestGoldenSquareBonus(t *testing.T) {
	eval := NewEvaluator(DefaultWeights)

	onGolden := board.NewEmptyPosition(board.White)
	onGolden.SetPiece(48, board.WhiteMan)
	offGolden := board.NewEmptyPosition(board.White)
	offGolden.SetPiece(49, board.WhiteMan)

	if g, o := eval.Evaluate(onGolden), eval.Evaluate(offGolden); g <= o {
		t.Errorf("man on golden square scores %d, one square away %d; want strictly higher", g, o)
	}

	// Black's golden square is the mirror.
	onGoldenB := board.NewEmptyPosition(board.Black)
	onGoldenB.SetPiece(3, board.BlackMan)
	offGoldenB := board.NewEmptyPosition(board.Black)
	offGoldenB.SetPiece(2, board.BlackMan)

	if g, o := eval.Evaluate(onGoldenB), eval.Evaluate(offGoldenB); g >= o {
		t.Errorf("black man on golden square scores %d, one square away %d; want strictly lower", g, o)
	}
}

func TestSideColumnPenaltyLateMiddlegame(t *testing.T) {
	eval := NewEvaluator(DefaultWeights)

	// Same rows, same wings, equal material; variant A has both white
	// men on the outer columns instead of two squares inward.
	build := func(whiteSquares ...int) *board.Position {
		pos := board.NewEmptyPosition(board.White)
		for _, sq := range whiteSquares {
			pos.SetPiece(sq, board.WhiteMan)
		}
		pos.SetPiece(39, board.BlackMan)
		pos.SetPiece(40, board.BlackMan)
		return pos
	}
	onSide := build(15, 16)
	inward := build(14, 17)

	if a, b := eval.Evaluate(onSide), eval.Evaluate(inward); a >= b {
		t.Errorf("side-column men score %d, centered men %d; want strictly lower", a, b)
	}
}

func TestNoSideColumnPenaltyInOpening(t *testing.T) {
	// With 32+ pieces on the board the side-column penalty is off.
	build := func(extra int) *board.Position {
		pos := board.NewPosition()
		// Fill to 40 pieces stays phase 0; the two variants differ only
		// by one man shifted within the same row and wing.
		pos.SetPiece(extra, board.WhiteKing)
		return pos
	}
	eval := NewEvaluator(DefaultWeights)
	a := build(25)
	b := build(24)
	if eval.Evaluate(a) != eval.Evaluate(b) {
		t.Errorf("king placement should be material-only: %d vs %d",
			eval.Evaluate(a), eval.Evaluate(b))
	}
}

func TestGamePhase(t *testing.T) {
	cases := []struct {
		pieces int
		phase  int
	}{
		{40, 0}, {32, 0}, {31, 1}, {24, 1}, {23, 2}, {16, 2}, {15, 3}, {2, 3},
	}
	for _, c := range cases {
		if got := GamePhase(c.pieces); got != c.phase {
			t.Errorf("GamePhase(%d) = %d, want %d", c.pieces, got, c.phase)
		}
	}
}

func TestMaterialDominates(t *testing.T) {
	eval := NewEvaluator(DefaultWeights)

	upAMan := board.NewEmptyPosition(board.White)
	upAMan.SetPiece(28, board.WhiteMan)
	upAMan.SetPiece(32, board.WhiteMan)
	upAMan.SetPiece(19, board.BlackMan)

	if score := eval.Evaluate(upAMan); score <= 0 {
		t.Errorf("a full man up should evaluate positive, got %d", score)
	}

	kings := board.NewEmptyPosition(board.White)
	kings.SetPiece(28, board.WhiteKing)
	kings.SetPiece(19, board.BlackMan)
	kings.SetPiece(20, board.BlackMan)

	if score := eval.Evaluate(kings); score <= 0 {
		t.Errorf("a king should outweigh two men, got %d", score)
	}
}
