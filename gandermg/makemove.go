package gandermg

// MoveState holds the minimal state needed to undo a move.
type MoveState struct {
	move          Move
	moved         Piece
	captured      Piece
	capturedSq    Square // differs from move.To() only for en passant
	prevCastling  CastlingRights
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevZobrist   uint64
	rookFrom      Square // for castling undo
	rookTo        Square // for castling undo
}

// NullState stores the minimal information needed to undo a null move.
type NullState struct {
	prevEnPassant Square
	prevHalfmove  int
	prevFullmove  int
	prevZobrist   uint64
	prevSide      Color
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// MakeMove applies a move to the board. Castling, en passant and double
// pushes are recognized from the position, not from move flags. It returns
// ok=false if the move leaves the mover's king in check, restoring the
// original position.
func (b *Board) MakeMove(m Move) (ok bool, st MoveState) {
	from := m.From()
	to := m.To()
	moved := b.pieces[int(from)]
	if moved == NoPiece || colorOf(moved) != b.sideToMove {
		return false, st
	}

	st.move = m
	st.moved = moved
	st.prevCastling = b.castlingRights
	st.prevEnPassant = b.enPassantSquare
	st.prevHalfmove = b.halfmoveClock
	st.prevFullmove = b.fullmoveNumber
	st.prevZobrist = b.zobristKey
	st.rookFrom, st.rookTo = NoSquare, NoSquare
	st.captured = NoPiece
	st.capturedSq = NoSquare

	us := b.sideToMove
	them := us.Other()

	// Recognize the special moves from context before touching any state.
	isEP := typeOf(moved) == 1 && to == b.enPassantSquare &&
		from.File() != to.File() && b.pieces[int(to)] == NoPiece
	isCastle := typeOf(moved) == 6 && abs(from.File()-to.File()) == 2

	// Remove the stale en passant file from the hash.
	if b.epCapturable() {
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
	}
	b.enPassantSquare = NoSquare

	// Capture
	if isEP {
		capSq := to - 8
		if us == Black {
			capSq = to + 8
		}
		st.captured = b.removePiece(capSq)
		st.capturedSq = capSq
	} else if b.pieces[int(to)] != NoPiece {
		st.captured = b.removePiece(to)
		st.capturedSq = to
	}

	// Move the piece (or promote).
	b.removePiece(from)
	if promo := m.PromotionPieceType(); promo != PieceTypeNone {
		b.addPiece(to, PieceFromType(us, promo))
	} else {
		b.addPiece(to, moved)
	}

	// Castling rook hop.
	if isCastle {
		switch to {
		case 6: // g1
			st.rookFrom, st.rookTo = 7, 5
		case 2: // c1
			st.rookFrom, st.rookTo = 0, 3
		case 62: // g8
			st.rookFrom, st.rookTo = 63, 61
		case 58: // c8
			st.rookFrom, st.rookTo = 56, 59
		}
		if st.rookFrom != NoSquare {
			rook := b.removePiece(st.rookFrom)
			b.addPiece(st.rookTo, rook)
		}
	}

	// Update castling rights on king moves, rook moves, and corner captures.
	newCR := b.castlingRights
	switch moved {
	case WhiteKing:
		newCR &^= CastlingWhiteK | CastlingWhiteQ
	case BlackKing:
		newCR &^= CastlingBlackK | CastlingBlackQ
	case WhiteRook:
		if from == 0 {
			newCR &^= CastlingWhiteQ
		} else if from == 7 {
			newCR &^= CastlingWhiteK
		}
	case BlackRook:
		if from == 56 {
			newCR &^= CastlingBlackQ
		} else if from == 63 {
			newCR &^= CastlingBlackK
		}
	}
	if typeOf(st.captured) == 4 {
		switch st.capturedSq {
		case 0:
			newCR &^= CastlingWhiteQ
		case 7:
			newCR &^= CastlingWhiteK
		case 56:
			newCR &^= CastlingBlackQ
		case 63:
			newCR &^= CastlingBlackK
		}
	}
	if newCR != b.castlingRights {
		b.zobristKey ^= zobristCastle[int(b.castlingRights)]
		b.zobristKey ^= zobristCastle[int(newCR)]
		b.castlingRights = newCR
	}

	// Record the en passant square after a double push. The square is always
	// stored (FEN prints it); the hash takes the file key only when an enemy
	// pawn can capture.
	if typeOf(moved) == 1 && abs(from.Rank()-to.Rank()) == 2 {
		ep := from + 8
		if us == Black {
			ep = from - 8
		}
		b.enPassantSquare = ep
		if pawnAttacks[us][int(ep)]&b.pawns[them] != 0 {
			b.zobristKey ^= zobristEnPassant[ep.File()]
		}
	}

	// Toggle side to move before the legality check so Unmake can rely on the
	// toggled state.
	b.sideToMove = them
	b.zobristKey ^= zobristSide

	// Reject moves that leave the mover's own king attacked.
	if b.InCheck(us) {
		b.UnmakeMove(m, st)
		return false, st
	}

	if typeOf(moved) == 1 || st.captured != NoPiece {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	if us == Black {
		b.fullmoveNumber++
	}

	return true, st
}

// UnmakeMove undoes a previously made move, restoring board state.
func (b *Board) UnmakeMove(m Move, st MoveState) {
	b.sideToMove = b.sideToMove.Other()

	from := m.From()
	to := m.To()

	// Undo the castling rook hop.
	if st.rookFrom != NoSquare {
		rook := b.removePiece(st.rookTo)
		b.addPiece(st.rookFrom, rook)
	}

	// Move the piece back, demoting promotions to the original pawn.
	b.removePiece(to)
	b.addPiece(from, st.moved)

	// Restore the captured piece on its actual square.
	if st.captured != NoPiece {
		b.addPiece(st.capturedSq, st.captured)
	}

	b.castlingRights = st.prevCastling
	b.enPassantSquare = st.prevEnPassant
	b.halfmoveClock = st.prevHalfmove
	b.fullmoveNumber = st.prevFullmove

	// Exact Zobrist restoration.
	b.zobristKey = st.prevZobrist
}

// MakeNullMove switches the side to move without moving any piece. It clears
// the en passant square and advances the clocks as a reversible quiet
// half-move. The returned state restores via UnmakeNullMove.
func (b *Board) MakeNullMove() (st NullState) {
	st.prevEnPassant = b.enPassantSquare
	st.prevHalfmove = b.halfmoveClock
	st.prevFullmove = b.fullmoveNumber
	st.prevZobrist = b.zobristKey
	st.prevSide = b.sideToMove

	if b.epCapturable() {
		b.zobristKey ^= zobristEnPassant[b.enPassantSquare.File()]
	}
	b.enPassantSquare = NoSquare

	b.halfmoveClock++

	b.sideToMove = b.sideToMove.Other()
	b.zobristKey ^= zobristSide

	if st.prevSide == Black {
		b.fullmoveNumber++
	}
	return st
}

// UnmakeNullMove restores the board to the state prior to MakeNullMove.
func (b *Board) UnmakeNullMove(st NullState) {
	b.enPassantSquare = st.prevEnPassant
	b.halfmoveClock = st.prevHalfmove
	b.fullmoveNumber = st.prevFullmove
	b.sideToMove = st.prevSide
	b.zobristKey = st.prevZobrist
}
