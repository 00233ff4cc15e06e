package hub

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pkoopman/draughtsplay/internal/engine"
)

// lockedBuffer makes output safe to share between the command loop
// and the search goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func runCommands(t *testing.T, commands string) (*Hub, string) {
	t.Helper()
	eng := engine.NewEngine(4)
	eng.SetSeed(1)
	out := &lockedBuffer{}
	h := NewWithIO(eng, strings.NewReader(commands), out)
	h.Run()
	return h, out.String()
}

func TestHandshake(t *testing.T) {
	_, out := runCommands(t, "hub\nisready\nquit\n")

	for _, want := range []string{"id name DraughtsPlay", "hubok", "readyok"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPosWithMoves(t *testing.T) {
	h, _ := runCommands(t, "pos start moves 32-28 19-23\nquit\n")

	if got, want := h.position.FEN(), "W:W28,31,33-50:B1-18,20,23"; got != want {
		t.Errorf("position after moves: got %s, want %s", got, want)
	}
}

func TestPosFEN(t *testing.T) {
	h, out := runCommands(t, "pos fen W:W28:B23\neval\nquit\n")

	if got := h.position.FEN(); got != "W:W28:B23" {
		t.Errorf("position: got %s", got)
	}
	if !strings.Contains(out, "eval ") {
		t.Errorf("no eval output:\n%s", out)
	}
}

func TestInvalidPosKeepsCurrent(t *testing.T) {
	h, _ := runCommands(t, "pos fen W:W28:B23\npos fen bogus\nquit\n")

	if got := h.position.FEN(); got != "W:W28:B23" {
		t.Errorf("invalid fen replaced the position: %s", got)
	}
}

func TestGoStopProducesBestMove(t *testing.T) {
	_, out := runCommands(t, "pos start\ngo depth 3\nstop\nquit\n")

	if !strings.Contains(out, "bestmove ") {
		t.Errorf("no bestmove in output:\n%s", out)
	}
	if strings.Contains(out, "bestmove none") {
		t.Errorf("bestmove none from the starting position:\n%s", out)
	}
}

func TestGoReportsInfo(t *testing.T) {
	_, out := runCommands(t, "go depth 2\nstop\nquit\n")

	if strings.Contains(out, "bestmove ") && !strings.Contains(out, "info depth") {
		t.Errorf("bestmove without an info line:\n%s", out)
	}
}

func TestMoveTimerDoesNotOutliveSearch(t *testing.T) {
	eng := engine.NewEngine(4)
	eng.SetSeed(1)
	out := &lockedBuffer{}
	h := NewWithIO(eng, strings.NewReader(""), out)

	// A movetime search on a tiny position finishes long before its
	// timer fires.
	h.handlePos([]string{"fen", "W:W46:B5"})
	h.handleGo([]string{"movetime", "100"})
	<-h.searchDone

	// The next search carries no movetime and must not be cut short
	// when the first search's timer expires.
	h.handlePos([]string{"start"})
	h.handleGo([]string{"depth", "40"})

	time.Sleep(250 * time.Millisecond)
	select {
	case <-h.searchDone:
		t.Fatal("deep search ended early: stopped by the previous search's move timer")
	default:
	}
	h.handleStop()
}

func TestPerft(t *testing.T) {
	_, out := runCommands(t, "perft 3\nquit\n")

	if !strings.Contains(out, "nodes 658") {
		t.Errorf("perft 3 from start should count 658 nodes:\n%s", out)
	}
}
