package board

// The playable squares of the 10x10 board are numbered 1..50, five per
// row, top-left to bottom-right. Black starts on 1..20, White on 31..50,
// and White moves toward row 0. Even rows hold their squares on odd
// columns, odd rows on even columns.

// NumSquares is the number of playable squares.
const NumSquares = 50

// Row returns the board row (0..9) of a square.
func Row(sq int) int {
	return (sq - 1) / 5
}

// Col returns the board column (0..9) of a square.
func Col(sq int) int {
	k := (sq - 1) % 5
	if Row(sq)%2 == 0 {
		return 2*k + 1
	}
	return 2 * k
}

// SquareAt returns the square number at (row, col), or 0 if the
// coordinate is off the board or not playable.
func SquareAt(row, col int) int {
	if row < 0 || row > 9 || col < 0 || col > 9 || (row+col)%2 == 0 {
		return 0
	}
	return row*5 + col/2 + 1
}

// Mirror returns the square as seen from the other side of the board.
func Mirror(sq int) int {
	return 51 - sq
}

// PromotionRow returns the row on which the given color's men promote.
func PromotionRow(c Color) int {
	if c == White {
		return 0
	}
	return 9
}

// diagonal step offsets as (row, col) deltas
var diagonals = [4][2]int{{-1, -1}, {-1, 1}, {1, -1}, {1, 1}}

// step returns the neighbouring square one diagonal step away in
// direction d, or 0 if that leaves the board.
func step(sq, d int) int {
	r := Row(sq) + diagonals[d][0]
	c := Col(sq) + diagonals[d][1]
	return SquareAt(r, c)
}

// forward reports whether diagonal direction d moves toward the
// opponent's back rank for the given color.
func forward(c Color, d int) bool {
	if c == White {
		return diagonals[d][0] < 0
	}
	return diagonals[d][0] > 0
}
