package engine

import (
	"math/rand"
	"sync/atomic"
	"testing"

	"github.com/pkoopman/draughtsplay/internal/board"
)

// minimax is a plain unpruned reference search with the same leaf
// policy as alphaBeta, used to verify that pruning never changes the
// minimax value.
func minimax(eval *Evaluator, pos *board.Position, depth int, maximizing bool) int {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return eval.Evaluate(pos)
	}
	if depth <= 0 && !moves[0].IsCapture() {
		return eval.Evaluate(pos)
	}
	best := -Infinity
	if !maximizing {
		best = Infinity
	}
	for _, m := range moves {
		pos.Apply(m)
		v := minimax(eval, pos, depth-1, !maximizing)
		pos.Undo()
		if maximizing {
			if v > best {
				best = v
			}
		} else if v < best {
			best = v
		}
	}
	return best
}

func newTestSearch(seed int64) *search {
	return &search{
		eval: NewEvaluator(DefaultWeights),
		rnd:  rand.New(rand.NewSource(seed)),
		stop: new(atomic.Bool),
	}
}

func TestAlphaBetaEqualsMinimax(t *testing.T) {
	fens := []string{
		board.StartFEN,
		"W:W28,32,37,41,46:B8,12,19,23",
		"B:W27,31,36:B14,20,25,K5",
		"W:WK28:B13,14,23",
	}
	for _, fen := range fens {
		pos, err := board.ParseFEN(fen)
		if err != nil {
			t.Fatalf("ParseFEN(%q): %v", fen, err)
		}
		for depth := 1; depth <= 4; depth++ {
			s := newTestSearch(int64(depth))
			got, err := s.alphaBeta(NewNode(pos), -Infinity, Infinity, depth, pos.WhiteToMove(), false)
			if err != nil {
				t.Fatalf("%s depth %d: %v", fen, depth, err)
			}
			want := minimax(s.eval, pos, depth, pos.WhiteToMove())
			if got != want {
				t.Errorf("%s depth %d: alpha-beta=%d, minimax=%d", fen, depth, got, want)
			}
		}
	}
}

func TestQuiescenceExtendsForcedCaptures(t *testing.T) {
	// At a zero-depth horizon whose only move is a capture, the search
	// must play the capture out instead of standing pat.
	pos, err := board.ParseFEN("W:W28:B23")
	if err != nil {
		t.Fatal(err)
	}
	s := newTestSearch(1)

	static := s.eval.Evaluate(pos)
	score, err := s.alphaBeta(NewNode(pos), -Infinity, Infinity, 0, true, false)
	if err != nil {
		t.Fatal(err)
	}
	if score == static {
		t.Errorf("depth-0 search returned the static eval %d despite a forced capture", static)
	}
	if score < DefaultWeights.Man/2 {
		t.Errorf("after winning the only black man the score should be clearly positive, got %d", score)
	}
}

func TestNoQuiescenceOnQuietHorizon(t *testing.T) {
	pos, err := board.ParseFEN("W:W46:B5")
	if err != nil {
		t.Fatal(err)
	}
	s := newTestSearch(1)
	score, err := s.alphaBeta(NewNode(pos), -Infinity, Infinity, 0, true, false)
	if err != nil {
		t.Fatal(err)
	}
	if want := s.eval.Evaluate(pos); score != want {
		t.Errorf("quiet horizon: got %d, want static eval %d", score, want)
	}
}

func TestBestMoveFirstOrdering(t *testing.T) {
	pos := board.NewPosition()
	s := newTestSearch(3)
	root := NewNode(pos)

	if _, err := s.deepen(root, -Infinity, Infinity, 3); err != nil {
		t.Fatal(err)
	}
	carried := root.BestMove()
	if carried.IsNoMove() {
		t.Fatal("no best move after deepening")
	}

	ordered := s.order(pos.LegalMoves(), root, true)
	if !ordered[0].Equal(carried) {
		t.Errorf("first-pass ordering searched %s first, want carried best move %s", ordered[0], carried)
	}
}

func TestPrincipalVariationDepth(t *testing.T) {
	pos := board.NewPosition()
	s := newTestSearch(5)
	root := NewNode(pos)

	const depth = 4
	if _, err := s.deepen(root, -Infinity, Infinity, depth); err != nil {
		t.Fatal(err)
	}
	pv := root.PrincipalVariation()
	if len(pv) == 0 || len(pv) > depth {
		t.Fatalf("principal variation has %d moves, want 1..%d", len(pv), depth)
	}
	if !pv[0].Equal(root.BestMove()) {
		t.Errorf("principal variation starts with %s, best move is %s", pv[0], root.BestMove())
	}

	// The PV must be a playable line.
	played := 0
	for _, m := range pv {
		legal := false
		for _, lm := range pos.LegalMoves() {
			if lm.Equal(m) {
				legal = true
				break
			}
		}
		if !legal {
			t.Errorf("pv move %s is not legal in its position", m)
			break
		}
		pos.Apply(m)
		played++
	}
	for i := 0; i < played; i++ {
		pos.Undo()
	}
}

func TestMonotonicDepthKeepsWinningMove(t *testing.T) {
	// White's man on 33 can step to 28 (safe) or 29 (lost to 24x33).
	// From depth 2 upward the search must keep choosing 33-28.
	for depth := 2; depth <= 5; depth++ {
		pos, err := board.ParseFEN("W:W33:B24")
		if err != nil {
			t.Fatal(err)
		}
		s := newTestSearch(int64(depth) * 11)
		root := NewNode(pos)
		if _, err := s.deepen(root, -Infinity, Infinity, depth); err != nil {
			t.Fatal(err)
		}
		best := root.BestMove()
		if best.From != 33 || best.To != 28 {
			t.Errorf("depth %d: best move %s, want 33-28", depth, best)
		}
	}
}

func TestSearchLeavesPositionUntouched(t *testing.T) {
	pos := board.NewPosition()
	before := pos.Pieces()

	s := newTestSearch(9)
	if _, err := s.deepen(NewNode(pos), -Infinity, Infinity, 4); err != nil {
		t.Fatal(err)
	}
	if pos.Pieces() != before || !pos.WhiteToMove() {
		t.Error("search mutated the position")
	}
}

func TestStopUnwindsAndRestoresPosition(t *testing.T) {
	pos := board.NewPosition()
	before := pos.Pieces()

	s := newTestSearch(13)
	s.stop.Store(true)
	_, err := s.alphaBeta(NewNode(pos), -Infinity, Infinity, 6, true, true)
	if err != ErrStopped {
		t.Fatalf("got %v, want ErrStopped", err)
	}
	if s.stop.Load() {
		t.Error("stop flag must be cleared when the abort is raised")
	}
	if pos.Pieces() != before {
		t.Error("position mutated across a cancelled search")
	}

	// The session is clean: the same search now runs to completion.
	if _, err := s.deepen(NewNode(pos), -Infinity, Infinity, 2); err != nil {
		t.Fatalf("search after cancellation failed: %v", err)
	}
}
