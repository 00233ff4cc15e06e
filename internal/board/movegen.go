package board

// Move generation for international draughts. Captures are mandatory
// and the majority rule applies: when capture sequences of different
// lengths exist, only those capturing the maximum number of pieces are
// legal. Men capture forward and backward; kings move and capture as
// flying kings. During a capture sequence the jumped pieces stay on the
// board as obstacles and may not be jumped twice; a man promotes only
// when the sequence ends on its promotion row.

// LegalMoves enumerates the legal moves for the side to move. The
// returned slice is empty exactly when the position is terminal.
func (p *Position) LegalMoves() []Move {
	if caps := p.captureMoves(); len(caps) > 0 {
		return caps
	}
	return p.quietMoves()
}

// HasCapture returns true if the side to move has at least one capture.
func (p *Position) HasCapture() bool {
	us := p.sideToMove
	for sq := 1; sq <= NumSquares; sq++ {
		pc := p.squares[sq]
		if pc == Empty || pc.Color() != us {
			continue
		}
		if pc.IsMan() {
			if p.manHasCapture(sq) {
				return true
			}
		} else if p.kingHasCapture(sq) {
			return true
		}
	}
	return false
}

func (p *Position) quietMoves() []Move {
	us := p.sideToMove
	var moves []Move
	for sq := 1; sq <= NumSquares; sq++ {
		pc := p.squares[sq]
		if pc == Empty || pc.Color() != us {
			continue
		}
		if pc.IsMan() {
			for d := 0; d < 4; d++ {
				if !forward(us, d) {
					continue
				}
				to := step(sq, d)
				if to != 0 && p.squares[to] == Empty {
					moves = append(moves, Move{
						From:      sq,
						To:        to,
						Promotion: Row(to) == PromotionRow(us),
					})
				}
			}
		} else {
			for d := 0; d < 4; d++ {
				for to := step(sq, d); to != 0 && p.squares[to] == Empty; to = step(to, d) {
					moves = append(moves, Move{From: sq, To: to})
				}
			}
		}
	}
	return moves
}

func (p *Position) captureMoves() []Move {
	us := p.sideToMove
	var seqs []Move
	for sq := 1; sq <= NumSquares; sq++ {
		pc := p.squares[sq]
		if pc == Empty || pc.Color() != us {
			continue
		}
		// Vacate the origin for the whole sequence search so circular
		// captures can land back on it.
		p.squares[sq] = Empty
		if pc.IsMan() {
			p.manCaptures(pc, sq, sq, nil, &seqs)
		} else {
			p.kingCaptures(pc, sq, sq, nil, &seqs)
		}
		p.squares[sq] = pc
	}
	if len(seqs) == 0 {
		return nil
	}
	longest := 0
	for _, m := range seqs {
		if len(m.Captures) > longest {
			longest = len(m.Captures)
		}
	}
	legal := seqs[:0]
	for _, m := range seqs {
		if len(m.Captures) == longest {
			legal = append(legal, m)
		}
	}
	return legal
}

// manCaptures extends a man's capture sequence from cur, recording every
// maximal continuation into out.
func (p *Position) manCaptures(pc Piece, origin, cur int, captured []int, out *[]Move) {
	extended := false
	for d := 0; d < 4; d++ {
		over := step(cur, d)
		if over == 0 {
			continue
		}
		target := p.squares[over]
		if target == Empty || target.Color() == pc.Color() || contains(captured, over) {
			continue
		}
		land := step(over, d)
		if land == 0 || p.squares[land] != Empty {
			continue
		}
		extended = true
		p.manCaptures(pc, origin, land, append(captured, over), out)
	}
	if !extended && len(captured) > 0 {
		*out = append(*out, Move{
			From:      origin,
			To:        cur,
			Captures:  append([]int(nil), captured...),
			Promotion: Row(cur) == PromotionRow(pc.Color()),
		})
	}
}

// kingCaptures extends a flying king's capture sequence from cur. Along
// each diagonal the first piece met must be an uncaptured enemy with at
// least one empty square behind it; every empty square behind is a
// possible landing point and a branch of the sequence.
func (p *Position) kingCaptures(pc Piece, origin, cur int, captured []int, out *[]Move) {
	extended := false
	for d := 0; d < 4; d++ {
		over := step(cur, d)
		for over != 0 && p.squares[over] == Empty {
			over = step(over, d)
		}
		if over == 0 {
			continue
		}
		target := p.squares[over]
		if target.Color() == pc.Color() || contains(captured, over) {
			continue
		}
		for land := step(over, d); land != 0 && p.squares[land] == Empty; land = step(land, d) {
			extended = true
			p.kingCaptures(pc, origin, land, append(captured, over), out)
		}
	}
	if !extended && len(captured) > 0 {
		*out = append(*out, Move{
			From:     origin,
			To:       cur,
			Captures: append([]int(nil), captured...),
		})
	}
}

func (p *Position) manHasCapture(sq int) bool {
	pc := p.squares[sq]
	for d := 0; d < 4; d++ {
		over := step(sq, d)
		if over == 0 {
			continue
		}
		target := p.squares[over]
		if target == Empty || target.Color() == pc.Color() {
			continue
		}
		if land := step(over, d); land != 0 && p.squares[land] == Empty {
			return true
		}
	}
	return false
}

func (p *Position) kingHasCapture(sq int) bool {
	pc := p.squares[sq]
	for d := 0; d < 4; d++ {
		over := step(sq, d)
		for over != 0 && p.squares[over] == Empty {
			over = step(over, d)
		}
		if over == 0 {
			continue
		}
		target := p.squares[over]
		if target.Color() == pc.Color() {
			continue
		}
		if land := step(over, d); land != 0 && p.squares[land] == Empty {
			return true
		}
	}
	return false
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// Perft counts leaf nodes of the move tree to the given depth. Used to
// validate move generation.
func (p *Position) Perft(depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := p.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		p.Apply(m)
		nodes += p.Perft(depth - 1)
		p.Undo()
	}
	return nodes
}
