// Package hub implements the console protocol spoken by the engine
// binary. The protocol is line based: one command per line on stdin,
// responses on stdout. It follows the shape of the hub protocols used
// by draughts GUIs.
package hub

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkoopman/draughtsplay/internal/board"
	"github.com/pkoopman/draughtsplay/internal/engine"
)

// Hub implements the console protocol handler.
type Hub struct {
	engine   *engine.Engine
	position *board.Position

	in  io.Reader
	out io.Writer

	// Search state
	searching  bool
	searchDone chan struct{}
	moveTimer  *time.Timer
}

// New creates a protocol handler reading stdin and writing stdout.
func New(eng *engine.Engine) *Hub {
	return NewWithIO(eng, os.Stdin, os.Stdout)
}

// NewWithIO creates a protocol handler with explicit streams. Tests
// drive the handler through this.
func NewWithIO(eng *engine.Engine, in io.Reader, out io.Writer) *Hub {
	return &Hub{
		engine:   eng,
		position: board.NewPosition(),
		in:       in,
		out:      out,
	}
}

// Run reads commands until "quit" or end of input.
func (h *Hub) Run() {
	scanner := bufio.NewScanner(h.in)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "hub":
			h.handleHub()
		case "isready":
			fmt.Fprintln(h.out, "readyok")
		case "newgame":
			h.handleNewGame()
		case "pos":
			h.handlePos(args)
		case "go":
			h.handleGo(args)
		case "stop":
			h.handleStop()
		case "eval":
			h.handleEval()
		case "quit":
			h.handleStop()
			return
		// Debug commands
		case "d":
			fmt.Fprintln(h.out, h.position.String())
		case "perft":
			h.handlePerft(args)
		}
	}
	h.handleStop()
}

// handleHub responds to the "hub" handshake.
func (h *Hub) handleHub() {
	fmt.Fprintln(h.out, "id name DraughtsPlay")
	fmt.Fprintln(h.out, "id author DraughtsPlay Team")
	fmt.Fprintln(h.out, "param name depth type spin default 7 min 1 max 50")
	fmt.Fprintln(h.out, "hubok")
}

// handleNewGame resets to the starting position.
func (h *Hub) handleNewGame() {
	h.handleStop()
	h.position = board.NewPosition()
}

// handlePos parses and sets up a position.
// Formats:
//   - pos start
//   - pos start moves 32-28 19-23
//   - pos fen W:W31-50:B1-20
//   - pos fen W:W31-50:B1-20 moves 32-28
func (h *Hub) handlePos(args []string) {
	if len(args) == 0 {
		return
	}

	var pos *board.Position
	moveStart := len(args)

	switch args[0] {
	case "start":
		pos = board.NewPosition()
		for i, arg := range args {
			if arg == "moves" {
				moveStart = i + 1
				break
			}
		}
	case "fen":
		if len(args) < 2 {
			return
		}
		p, err := board.ParseFEN(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "info string invalid fen: %v\n", err)
			return
		}
		pos = p
		for i, arg := range args {
			if arg == "moves" {
				moveStart = i + 1
				break
			}
		}
	default:
		return
	}

	for _, moveStr := range args[moveStart:] {
		move, err := board.ParseMove(moveStr, pos)
		if err != nil {
			fmt.Fprintf(os.Stderr, "info string invalid move %s: %v\n", moveStr, err)
			return
		}
		pos.Apply(move)
	}

	h.position = pos
}

// goOptions holds parsed "go" command options.
type goOptions struct {
	Depth    int
	MoveTime time.Duration
	Infinite bool
}

// handleGo starts a search. The search runs in its own goroutine and
// prints "bestmove" when done; "stop" cancels it.
func (h *Hub) handleGo(args []string) {
	if h.searching {
		// A finished search does not need an explicit stop first.
		select {
		case <-h.searchDone:
			h.searching = false
		default:
			return
		}
	}
	// A timer left over from a search that finished on its own must
	// not fire into this one.
	if h.moveTimer != nil {
		h.moveTimer.Stop()
		h.moveTimer = nil
	}

	opts := h.parseGoOptions(args)

	depth := opts.Depth
	if depth <= 0 {
		depth = engine.DifficultySettings[engine.Medium].Depth
	}
	if opts.Infinite {
		depth = 50
	}

	if opts.MoveTime > 0 {
		h.moveTimer = time.AfterFunc(opts.MoveTime, h.engine.Stop)
	}

	h.searching = true
	h.searchDone = make(chan struct{})
	pos := h.position.Copy()

	go func() {
		defer close(h.searchDone)

		move, info := h.engine.SelectMoveInfo(pos, depth)

		if !move.IsNoMove() {
			h.sendInfo(info)
			fmt.Fprintf(h.out, "bestmove %s\n", move)
		} else {
			// No legal moves: the side to move has lost.
			fmt.Fprintln(h.out, "bestmove none")
		}
	}()
}

// parseGoOptions parses "go" command arguments.
func (h *Hub) parseGoOptions(args []string) goOptions {
	opts := goOptions{}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				opts.Depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				opts.MoveTime = time.Duration(ms) * time.Millisecond
				i++
			}
		case "infinite":
			opts.Infinite = true
		}
	}

	return opts
}

// sendInfo outputs a search summary line.
func (h *Hub) sendInfo(info engine.SearchInfo) {
	parts := []string{
		fmt.Sprintf("depth %d", info.Depth),
		fmt.Sprintf("score %d", info.Score),
		fmt.Sprintf("time %d", info.Time.Milliseconds()),
	}

	if len(info.PV) > 0 {
		pv := make([]string, len(info.PV))
		for i, m := range info.PV {
			pv[i] = m.String()
		}
		parts = append(parts, "pv "+strings.Join(pv, " "))
	}

	fmt.Fprintf(h.out, "info %s\n", strings.Join(parts, " "))
}

// handleStop cancels the running search and waits for it to unwind.
// Stopping an already finished search is harmless.
func (h *Hub) handleStop() {
	if h.moveTimer != nil {
		h.moveTimer.Stop()
		h.moveTimer = nil
	}
	if h.searching {
		h.engine.Stop()
		<-h.searchDone
		h.searching = false
		h.searchDone = nil
	}
}

// handleEval prints the static evaluation of the current position.
func (h *Hub) handleEval() {
	fmt.Fprintf(h.out, "eval %d\n", h.engine.Evaluate(h.position))
}

// handlePerft runs a perft count from the current position.
func (h *Hub) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		depth, _ = strconv.Atoi(args[0])
	}

	start := time.Now()
	nodes := h.position.Perft(depth)
	elapsed := time.Since(start)

	fmt.Fprintf(h.out, "nodes %d\n", nodes)
	fmt.Fprintf(h.out, "time %v\n", elapsed)
	if elapsed > 0 {
		fmt.Fprintf(h.out, "nps %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}
