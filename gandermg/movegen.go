package gandermg

import "math/bits"

// ==========================
// Attack queries
// ==========================

// IsSquareAttacked reports whether the given square is attacked by the given color.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	return b.isSquareAttackedWithOcc(int(sq), by, b.AllOccupancy())
}

// isSquareAttackedWithOcc uses the attacks-from-defender method: reverse
// attacks from the square, intersected with each attacker bitboard.
func (b *Board) isSquareAttackedWithOcc(s int, by Color, occ uint64) bool {
	byIdx := int(by)

	// Pawn attacks via the reverse table.
	if pawnAttacks[1-byIdx][s]&b.pawns[byIdx] != 0 {
		return true
	}

	if knightMoves[s]&b.knights[byIdx] != 0 {
		return true
	}

	if kingMoves[s]&b.kings[byIdx] != 0 {
		return true
	}

	if RookAttacks(s, occ)&(b.rooks[byIdx]|b.queens[byIdx]) != 0 {
		return true
	}

	if BishopAttacks(s, occ)&(b.bishops[byIdx]|b.queens[byIdx]) != 0 {
		return true
	}

	return false
}

// InCheck reports whether the specified color's king is currently in check.
func (b *Board) InCheck(color Color) bool {
	kingBB := b.kings[int(color)]
	if kingBB == 0 {
		return false
	}
	ks := bits.TrailingZeros64(kingBB)
	return b.IsSquareAttacked(Square(ks), color.Other())
}

// OurKingInCheck reports whether the side to move has its king in check.
func (b *Board) OurKingInCheck() bool { return b.InCheck(b.sideToMove) }

// ==========================
// Move generation
// ==========================

// filter modes for selective generation
const (
	genAll = iota
	genCaptures
)

// appendPromotions appends the four promotion choices for a pawn move.
func appendPromotions(moves []Move, from, to Square) []Move {
	return append(moves,
		NewPromotion(from, to, PieceTypeQueen),
		NewPromotion(from, to, PieceTypeRook),
		NewPromotion(from, to, PieceTypeBishop),
		NewPromotion(from, to, PieceTypeKnight),
	)
}

// generatePseudoInto is the core generator. It appends pseudo-legal moves
// matching the filter into dst. Pseudo-legal obeys piece rules and blockers;
// the king-safety filter is MakeMove's rejection. Castling is fully checked
// here: rights held, path empty, and origin/transit/destination unattacked.
func (b *Board) generatePseudoInto(dst []Move, filter int) []Move {
	moves := dst[:0]
	side := b.sideToMove
	us := int(side)
	them := 1 - us

	ownOcc := b.occupancy[us]
	oppOcc := b.occupancy[them]
	allOcc := ownOcc | oppOcc

	// Pawns
	pawns := b.pawns[us]
	for pawns != 0 {
		from := popLSB(&pawns)
		fromSq := Square(from)

		var one, promoRank, startRank int
		if side == White {
			one = from + 8
			promoRank = 7
			startRank = 1
		} else {
			one = from - 8
			promoRank = 0
			startRank = 6
		}

		// Pushes
		if filter != genCaptures && one >= 0 && one < 64 && (allOcc>>uint(one))&1 == 0 {
			if one/8 == promoRank {
				moves = appendPromotions(moves, fromSq, Square(one))
			} else {
				moves = append(moves, NewMove(fromSq, Square(one)))
				if from/8 == startRank {
					two := 2*one - from
					if (allOcc>>uint(two))&1 == 0 {
						moves = append(moves, NewMove(fromSq, Square(two)))
					}
				}
			}
		}

		// Captures
		caps := pawnAttacks[us][from]
		capTargets := caps & oppOcc
		for capTargets != 0 {
			to := popLSB(&capTargets)
			if to/8 == promoRank {
				moves = appendPromotions(moves, fromSq, Square(to))
			} else {
				moves = append(moves, NewMove(fromSq, Square(to)))
			}
		}

		// En passant
		if b.enPassantSquare != NoSquare && caps&(1<<uint(b.enPassantSquare)) != 0 {
			moves = append(moves, NewMove(fromSq, b.enPassantSquare))
		}
	}

	// Knights
	knights := b.knights[us]
	for knights != 0 {
		from := popLSB(&knights)
		targets := knightMoves[from] &^ ownOcc
		if filter == genCaptures {
			targets &= oppOcc
		}
		for targets != 0 {
			to := popLSB(&targets)
			moves = append(moves, NewMove(Square(from), Square(to)))
		}
	}

	// Bishops
	bishops := b.bishops[us]
	for bishops != 0 {
		from := popLSB(&bishops)
		targets := BishopAttacks(from, allOcc) &^ ownOcc
		if filter == genCaptures {
			targets &= oppOcc
		}
		for targets != 0 {
			to := popLSB(&targets)
			moves = append(moves, NewMove(Square(from), Square(to)))
		}
	}

	// Rooks
	rooks := b.rooks[us]
	for rooks != 0 {
		from := popLSB(&rooks)
		targets := RookAttacks(from, allOcc) &^ ownOcc
		if filter == genCaptures {
			targets &= oppOcc
		}
		for targets != 0 {
			to := popLSB(&targets)
			moves = append(moves, NewMove(Square(from), Square(to)))
		}
	}

	// Queens
	queens := b.queens[us]
	for queens != 0 {
		from := popLSB(&queens)
		targets := QueenAttacks(from, allOcc) &^ ownOcc
		if filter == genCaptures {
			targets &= oppOcc
		}
		for targets != 0 {
			to := popLSB(&targets)
			moves = append(moves, NewMove(Square(from), Square(to)))
		}
	}

	// King
	kingBB := b.kings[us]
	if kingBB != 0 {
		from := bits.TrailingZeros64(kingBB)
		targets := kingMoves[from] &^ ownOcc
		if filter == genCaptures {
			targets &= oppOcc
		}
		for targets != 0 {
			to := popLSB(&targets)
			moves = append(moves, NewMove(Square(from), Square(to)))
		}

		if filter != genCaptures {
			moves = b.appendCastles(moves, side, allOcc)
		}
	}

	return moves
}

// appendCastles adds the legal castling moves: rights held, squares between
// king and rook empty, and neither the king's origin, the square it crosses,
// nor its destination attacked.
func (b *Board) appendCastles(moves []Move, side Color, occ uint64) []Move {
	if side == White {
		if b.castlingRights&CastlingWhiteK != 0 &&
			b.pieces[5] == NoPiece && b.pieces[6] == NoPiece && b.pieces[7] == WhiteRook &&
			!b.isSquareAttackedWithOcc(4, Black, occ) &&
			!b.isSquareAttackedWithOcc(5, Black, occ) &&
			!b.isSquareAttackedWithOcc(6, Black, occ) {
			moves = append(moves, NewMove(4, 6))
		}
		if b.castlingRights&CastlingWhiteQ != 0 &&
			b.pieces[1] == NoPiece && b.pieces[2] == NoPiece && b.pieces[3] == NoPiece && b.pieces[0] == WhiteRook &&
			!b.isSquareAttackedWithOcc(4, Black, occ) &&
			!b.isSquareAttackedWithOcc(3, Black, occ) &&
			!b.isSquareAttackedWithOcc(2, Black, occ) {
			moves = append(moves, NewMove(4, 2))
		}
	} else {
		if b.castlingRights&CastlingBlackK != 0 &&
			b.pieces[61] == NoPiece && b.pieces[62] == NoPiece && b.pieces[63] == BlackRook &&
			!b.isSquareAttackedWithOcc(60, White, occ) &&
			!b.isSquareAttackedWithOcc(61, White, occ) &&
			!b.isSquareAttackedWithOcc(62, White, occ) {
			moves = append(moves, NewMove(60, 62))
		}
		if b.castlingRights&CastlingBlackQ != 0 &&
			b.pieces[57] == NoPiece && b.pieces[58] == NoPiece && b.pieces[59] == NoPiece && b.pieces[56] == BlackRook &&
			!b.isSquareAttackedWithOcc(60, White, occ) &&
			!b.isSquareAttackedWithOcc(59, White, occ) &&
			!b.isSquareAttackedWithOcc(58, White, occ) {
			moves = append(moves, NewMove(60, 58))
		}
	}
	return moves
}

// GeneratePseudoMovesInto appends all pseudo-legal moves for the side to move
// into dst and returns it. The dst slice is truncated and reused to avoid
// allocations when capacity suffices.
func (b *Board) GeneratePseudoMovesInto(dst []Move) []Move {
	return b.generatePseudoInto(dst, genAll)
}

// GeneratePseudoMoves returns all pseudo-legal moves (allocates a new slice).
func (b *Board) GeneratePseudoMoves() []Move {
	return b.GeneratePseudoMovesInto(make([]Move, 0, 128))
}

// GenerateCapturesInto appends pseudo-legal captures (including en passant
// and capture promotions) into dst and returns it.
func (b *Board) GenerateCapturesInto(dst []Move) []Move {
	return b.generatePseudoInto(dst, genCaptures)
}

// GenerateLegalMoves returns the fully legal move list: the pseudo-legal set
// filtered by "own king not attacked after make".
func (b *Board) GenerateLegalMoves() []Move {
	pseudo := b.GeneratePseudoMoves()
	legal := pseudo[:0]
	for _, m := range pseudo {
		if ok, st := b.MakeMove(m); ok {
			b.UnmakeMove(m, st)
			legal = append(legal, m)
		}
	}
	return legal
}

// IsCapture reports whether the given move captures a piece (including en passant).
func (b *Board) IsCapture(m Move) bool {
	if b.pieces[int(m.To())] != NoPiece {
		return true
	}
	return m.To() == b.enPassantSquare && b.enPassantSquare != NoSquare &&
		typeOf(b.pieces[int(m.From())]) == 1 && m.From().File() != m.To().File()
}

// ==========================
// Perft
// ==========================

// Perft counts leaf nodes of the legal-move tree to a fixed depth.
// Reuses per-depth buffers to avoid allocations.
func Perft(b *Board, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	pc := perftCtx{bufs: make([][]Move, depth+1)}
	return perftRec(b, depth, &pc)
}

type perftCtx struct {
	bufs [][]Move
}

func (pc *perftCtx) bufFor(depth int) []Move {
	if pc.bufs[depth] == nil {
		pc.bufs[depth] = make([]Move, 0, 256)
	}
	return pc.bufs[depth][:0]
}

func perftRec(b *Board, depth int, pc *perftCtx) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	moves := b.GeneratePseudoMovesInto(pc.bufFor(depth))
	for _, m := range moves {
		if ok, st := b.MakeMove(m); ok {
			nodes += perftRec(b, depth-1, pc)
			b.UnmakeMove(m, st)
		}
	}
	return nodes
}

// PerftDivide returns a map from each legal root move to the number of leaf
// nodes reachable from that move at the given depth. Useful for debugging.
func PerftDivide(b *Board, depth int) map[Move]uint64 {
	result := make(map[Move]uint64)
	if depth <= 0 {
		return result
	}
	for _, m := range b.GeneratePseudoMoves() {
		if ok, st := b.MakeMove(m); ok {
			result[m] = Perft(b, depth-1)
			b.UnmakeMove(m, st)
		}
	}
	return result
}
