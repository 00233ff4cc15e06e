package board

import (
	"math/rand"
	"testing"
)

func TestApplyUndoRoundTrip(t *testing.T) {
	pos := NewPosition()
	before := pos.Pieces()
	toMove := pos.SideToMove()

	for _, m := range pos.LegalMoves() {
		pos.Apply(m)
		pos.Undo()
		if pos.Pieces() != before {
			t.Fatalf("board changed after apply+undo of %s", m)
		}
		if pos.SideToMove() != toMove {
			t.Fatalf("side to move changed after apply+undo of %s", m)
		}
	}
}

func TestApplyUndoRandomWalk(t *testing.T) {
	// Walk random games and unwind them completely; the board must come
	// back bit-identical every time.
	rnd := rand.New(rand.NewSource(1))
	for game := 0; game < 20; game++ {
		pos := NewPosition()
		start := pos.Pieces()

		var played int
		for ply := 0; ply < 60; ply++ {
			moves := pos.LegalMoves()
			if len(moves) == 0 {
				break
			}
			pos.Apply(moves[rnd.Intn(len(moves))])
			played++
		}
		for i := 0; i < played; i++ {
			pos.Undo()
		}
		if pos.Pieces() != start {
			t.Fatalf("game %d: board not restored after unwinding %d plies", game, played)
		}
		if pos.SideToMove() != White {
			t.Fatalf("game %d: side to move not restored", game)
		}
	}
}

func TestCaptureRemovesPieces(t *testing.T) {
	pos := NewEmptyPosition(White)
	pos.SetPiece(28, WhiteMan)
	pos.SetPiece(23, BlackMan)

	m := pos.LegalMoves()[0]
	pos.Apply(m)
	if pos.PieceAt(23) != Empty {
		t.Error("captured piece still on the board")
	}
	if pos.PieceAt(28) != Empty || pos.PieceAt(19) != WhiteMan {
		t.Error("capturing man did not move from 28 to 19")
	}
	if pos.WhiteToMove() {
		t.Error("side to move did not flip")
	}
	pos.Undo()
	if pos.PieceAt(23) != BlackMan || pos.PieceAt(28) != WhiteMan || pos.PieceAt(19) != Empty {
		t.Error("undo did not restore the capture")
	}
}

func TestCopyIsIndependent(t *testing.T) {
	pos := NewPosition()
	cp := pos.Copy()
	pos.Apply(pos.LegalMoves()[0])
	if cp.Pieces() == pos.Pieces() {
		t.Error("copy shares state with the original")
	}
	if !cp.WhiteToMove() {
		t.Error("copy lost side to move")
	}
}
