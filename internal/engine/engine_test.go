package engine

import (
	"testing"
	"time"

	"github.com/pkoopman/draughtsplay/internal/board"
)

func TestSelectMoveFromStart(t *testing.T) {
	pos := board.NewPosition()
	e := NewEngine(4)
	e.SetSeed(1)

	m := e.SelectMove(pos)
	if m.IsNoMove() {
		t.Fatal("no move selected from the starting position")
	}
	legal := false
	for _, lm := range pos.LegalMoves() {
		if lm.Equal(m) {
			legal = true
		}
	}
	if !legal {
		t.Errorf("selected move %s is not legal", m)
	}
	if pos.Pieces() != board.NewPosition().Pieces() {
		t.Error("SelectMove mutated the position")
	}
}

func TestSelectMovePrefersCapture(t *testing.T) {
	// With a capture available the capture is the only legal move, and
	// the search must return it rather than fall back to anything else.
	pos, err := board.ParseFEN("W:W28:B23,5")
	if err != nil {
		t.Fatal(err)
	}
	e := NewEngine(4)
	e.SetSeed(2)

	m := e.SelectMove(pos)
	if !m.IsCapture() || m.From != 28 {
		t.Errorf("got %s, want the capture from 28", m)
	}
	if e.LastScore() < DefaultWeights.Man/2 {
		t.Errorf("score after winning a man should be clearly positive, got %d", e.LastScore())
	}
}

func TestSelectMoveNoLegalMoves(t *testing.T) {
	// White man on 46 boxed in by black men on 41 and 37.
	pos := board.NewEmptyPosition(board.White)
	pos.SetPiece(46, board.WhiteMan)
	pos.SetPiece(41, board.BlackMan)
	pos.SetPiece(37, board.BlackMan)

	e := NewEngine(3)
	if m := e.SelectMove(pos); !m.IsNoMove() {
		t.Errorf("got %s from a terminal position, want no move", m)
	}
}

func TestStopReturnsPromptly(t *testing.T) {
	pos := board.NewPosition()
	e := NewEngine(50)
	e.SetSeed(3)

	done := make(chan board.Move, 1)
	go func() {
		done <- e.SelectMove(pos)
	}()
	time.Sleep(50 * time.Millisecond)
	e.Stop()

	select {
	case m := <-done:
		if m.IsNoMove() {
			t.Error("cancelled search returned no move from the starting position")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("search did not stop")
	}
	if pos.Pieces() != board.NewPosition().Pieces() {
		t.Error("cancelled search mutated the position")
	}

	// A stale Stop must not bleed into the next search.
	if m := e.SelectMoveDepth(pos, 2); m.IsNoMove() {
		t.Error("search after cancellation returned no move")
	}
}

func TestSelectMoveInfoReportsLine(t *testing.T) {
	pos := board.NewPosition()
	e := NewEngine(4)
	e.SetSeed(4)

	m, info := e.SelectMoveInfo(pos, 4)
	if m.IsNoMove() {
		t.Fatal("no move in search info")
	}
	if len(info.PV) == 0 || !info.PV[0].Equal(m) {
		t.Errorf("pv %v does not start with the selected move %s", info.PV, m)
	}
	if info.Time <= 0 {
		t.Error("search info has no elapsed time")
	}
}

func TestDifficultySettings(t *testing.T) {
	for _, d := range []Difficulty{Easy, Medium, Hard} {
		s, ok := DifficultySettings[d]
		if !ok {
			t.Fatalf("no settings for difficulty %v", d)
		}
		if s.Depth <= 0 || s.MoveTime <= 0 {
			t.Errorf("%v: bad settings %+v", d, s)
		}
	}
	if DifficultySettings[Easy].Depth >= DifficultySettings[Hard].Depth {
		t.Error("hard must search deeper than easy")
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	for i := 0; i < 3; i++ {
		pos := board.NewPosition()
		a := NewEngine(4)
		a.SetSeed(42)
		b := NewEngine(4)
		b.SetSeed(42)
		if ma, mb := a.SelectMove(pos), b.SelectMove(pos); !ma.Equal(mb) {
			t.Fatalf("same seed diverged: %s vs %s", ma, mb)
		}
	}
}
