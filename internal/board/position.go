package board

// Position represents a complete draughts position: the occupant of
// every playable square plus the side to move. Moves are applied in
// place; an undo stack restores them in reverse order.
type Position struct {
	squares    [NumSquares + 1]Piece // 1-indexed; squares[0] unused
	sideToMove Color
	history    []undoRecord
}

// undoRecord stores what Apply changed so Undo can restore it.
type undoRecord struct {
	move     Move
	moved    Piece
	captured []Piece
}

// NewPosition creates the standard starting position: Black men on
// squares 1..20, White men on 31..50, White to move.
func NewPosition() *Position {
	p := &Position{sideToMove: White}
	for sq := 1; sq <= 20; sq++ {
		p.squares[sq] = BlackMan
	}
	for sq := 31; sq <= 50; sq++ {
		p.squares[sq] = WhiteMan
	}
	return p
}

// NewEmptyPosition creates a position with no pieces. Used by tests and
// FEN parsing.
func NewEmptyPosition(toMove Color) *Position {
	return &Position{sideToMove: toMove}
}

// Copy creates a deep copy of the position with an empty undo stack.
func (p *Position) Copy() *Position {
	c := &Position{squares: p.squares, sideToMove: p.sideToMove}
	return c
}

// PieceAt returns the occupant of a square.
func (p *Position) PieceAt(sq int) Piece {
	return p.squares[sq]
}

// SetPiece places a piece on a square. Used for test and FEN setup.
func (p *Position) SetPiece(sq int, pc Piece) {
	p.squares[sq] = pc
}

// Pieces returns the dense occupant array, 1-indexed over squares
// 1..50. Index 0 is always Empty.
func (p *Position) Pieces() [NumSquares + 1]Piece {
	return p.squares
}

// SideToMove returns whose turn it is.
func (p *Position) SideToMove() Color {
	return p.sideToMove
}

// WhiteToMove returns true when it is White's turn.
func (p *Position) WhiteToMove() bool {
	return p.sideToMove == White
}

// IsEmpty returns true if the square holds no piece.
func (p *Position) IsEmpty(sq int) bool {
	return sq != 0 && p.squares[sq] == Empty
}

// IsTerminal returns true when the side to move has no legal move and
// has therefore lost the game.
func (p *Position) IsTerminal() bool {
	return len(p.LegalMoves()) == 0
}

// CountPieces returns the number of pieces of each occupant code, the
// way the evaluator consumes them: counts[WhiteMan] is the number of
// white men, and so on.
func (p *Position) CountPieces() [5]int {
	var counts [5]int
	for sq := 1; sq <= NumSquares; sq++ {
		counts[p.squares[sq]]++
	}
	return counts
}

// Apply plays the move on the board and flips the side to move. The
// move must be legal in the current position.
func (p *Position) Apply(m Move) {
	rec := undoRecord{move: m, moved: p.squares[m.From]}
	p.squares[m.From] = Empty
	if len(m.Captures) > 0 {
		rec.captured = make([]Piece, len(m.Captures))
		for i, sq := range m.Captures {
			rec.captured[i] = p.squares[sq]
			p.squares[sq] = Empty
		}
	}
	placed := rec.moved
	if m.Promotion {
		placed = placed.Promote()
	}
	p.squares[m.To] = placed
	p.sideToMove = p.sideToMove.Other()
	p.history = append(p.history, rec)
}

// Undo reverts the most recently applied move. Calling Undo with no
// applied move is a no-op.
func (p *Position) Undo() {
	n := len(p.history)
	if n == 0 {
		return
	}
	rec := p.history[n-1]
	p.history = p.history[:n-1]
	p.squares[rec.move.To] = Empty
	for i, sq := range rec.move.Captures {
		p.squares[sq] = rec.captured[i]
	}
	p.squares[rec.move.From] = rec.moved
	p.sideToMove = p.sideToMove.Other()
}

// String returns an ASCII board dump, White at the bottom.
func (p *Position) String() string {
	b := make([]byte, 0, 256)
	for row := 0; row < 10; row++ {
		for col := 0; col < 10; col++ {
			sq := SquareAt(row, col)
			if sq == 0 {
				b = append(b, ' ', '.')
			} else {
				b = append(b, ' ', p.squares[sq].Char())
			}
		}
		b = append(b, '\n')
	}
	b = append(b, []byte(p.sideToMove.String()+" to move\n")...)
	return string(b)
}
