package board

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Draughts FEN, as used by PDN tools: side to move, then the white and
// black piece lists, e.g. "W:W31-50:B1-20". A square may carry a K
// prefix for a king ("W:WK28,35:B5,K12") and consecutive squares may be
// collapsed into ranges.

// StartFEN is the FEN string for the starting position.
const StartFEN = "W:W31-50:B1-20"

// ParseFEN parses a draughts FEN string into a Position.
func ParseFEN(fen string) (*Position, error) {
	parts := strings.Split(strings.TrimSpace(fen), ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("invalid FEN %q: need 3 colon-separated fields", fen)
	}
	pos := &Position{}
	switch strings.ToUpper(parts[0]) {
	case "W":
		pos.sideToMove = White
	case "B":
		pos.sideToMove = Black
	default:
		return nil, fmt.Errorf("invalid FEN %q: side to move must be W or B", fen)
	}
	for _, part := range parts[1:] {
		if len(part) == 0 {
			return nil, fmt.Errorf("invalid FEN %q: empty piece list", fen)
		}
		var man, king Piece
		switch strings.ToUpper(part[:1]) {
		case "W":
			man, king = WhiteMan, WhiteKing
		case "B":
			man, king = BlackMan, BlackKing
		default:
			return nil, fmt.Errorf("invalid FEN %q: piece list must start with W or B", fen)
		}
		body := part[1:]
		if body == "" {
			continue // side with no pieces
		}
		for _, item := range strings.Split(body, ",") {
			pc := man
			if strings.HasPrefix(strings.ToUpper(item), "K") {
				pc = king
				item = item[1:]
			}
			lo, hi, err := parseSquareRange(item)
			if err != nil {
				return nil, fmt.Errorf("invalid FEN %q: %v", fen, err)
			}
			for sq := lo; sq <= hi; sq++ {
				if pos.squares[sq] != Empty {
					return nil, fmt.Errorf("invalid FEN %q: square %d occupied twice", fen, sq)
				}
				pos.squares[sq] = pc
			}
		}
	}
	return pos, nil
}

func parseSquareRange(s string) (lo, hi int, err error) {
	if i := strings.IndexByte(s, '-'); i >= 0 {
		lo, err = strconv.Atoi(s[:i])
		if err == nil {
			hi, err = strconv.Atoi(s[i+1:])
		}
	} else {
		lo, err = strconv.Atoi(s)
		hi = lo
	}
	if err != nil {
		return 0, 0, fmt.Errorf("bad square %q", s)
	}
	if lo < 1 || hi > NumSquares || lo > hi {
		return 0, 0, fmt.Errorf("square range %q out of bounds", s)
	}
	return lo, hi, nil
}

// FEN returns the draughts FEN of the position.
func (p *Position) FEN() string {
	var b strings.Builder
	if p.sideToMove == White {
		b.WriteByte('W')
	} else {
		b.WriteByte('B')
	}
	b.WriteString(":W")
	b.WriteString(pieceList(p, WhiteMan, WhiteKing))
	b.WriteString(":B")
	b.WriteString(pieceList(p, BlackMan, BlackKing))
	return b.String()
}

func pieceList(p *Position, man, king Piece) string {
	var men, kings []int
	for sq := 1; sq <= NumSquares; sq++ {
		switch p.squares[sq] {
		case man:
			men = append(men, sq)
		case king:
			kings = append(kings, sq)
		}
	}
	sort.Ints(men)
	items := compressRanges(men)
	for _, sq := range kings {
		items = append(items, "K"+strconv.Itoa(sq))
	}
	return strings.Join(items, ",")
}

// compressRanges collapses runs of consecutive squares into "lo-hi".
func compressRanges(squares []int) []string {
	var items []string
	for i := 0; i < len(squares); {
		j := i
		for j+1 < len(squares) && squares[j+1] == squares[j]+1 {
			j++
		}
		if j-i >= 2 {
			items = append(items, strconv.Itoa(squares[i])+"-"+strconv.Itoa(squares[j]))
		} else {
			for k := i; k <= j; k++ {
				items = append(items, strconv.Itoa(squares[k]))
			}
		}
		i = j + 1
	}
	return items
}
