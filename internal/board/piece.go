package board

// Color represents the color of a piece or player.
type Color uint8

const (
	White Color = iota
	Black
)

// Other returns the opposite color.
func (c Color) Other() Color {
	return c ^ 1
}

// String returns the color name.
func (c Color) String() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Piece is the occupant code of a playable square, matching the dense
// array convention used throughout the engine.
type Piece uint8

const (
	Empty Piece = iota
	WhiteMan
	BlackMan
	WhiteKing
	BlackKing
)

// Color returns the color of the piece. Only valid for non-empty pieces.
func (p Piece) Color() Color {
	if p == WhiteMan || p == WhiteKing {
		return White
	}
	return Black
}

// IsKing returns true for kings of either color.
func (p Piece) IsKing() bool {
	return p == WhiteKing || p == BlackKing
}

// IsMan returns true for men of either color.
func (p Piece) IsMan() bool {
	return p == WhiteMan || p == BlackMan
}

// Promote returns the king of the same color.
func (p Piece) Promote() Piece {
	switch p {
	case WhiteMan:
		return WhiteKing
	case BlackMan:
		return BlackKing
	}
	return p
}

// Char returns the board-dump character for the piece.
func (p Piece) Char() byte {
	return "-wbWB"[p]
}
