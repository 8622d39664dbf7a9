package gandermg

import "math/bits"

// Piece constants and types for pieces and colors
type Piece uint8

const (
	NoPiece     Piece = 0
	WhitePawn   Piece = 1
	WhiteKnight Piece = 2
	WhiteBishop Piece = 3
	WhiteRook   Piece = 4
	WhiteQueen  Piece = 5
	WhiteKing   Piece = 6

	// Black pieces are encoded as (white piece type | 8) so that
	// - piece & 7 gives the type in [1..6]
	// - piece & 8 != 0 indicates Black
	BlackPawn   Piece = 1 | 8
	BlackKnight Piece = 2 | 8
	BlackBishop Piece = 3 | 8
	BlackRook   Piece = 4 | 8
	BlackQueen  Piece = 5 | 8
	BlackKing   Piece = 6 | 8
)

// PieceType is a colorless representation of a chess piece used for table lookups.
type PieceType uint8

const (
	PieceTypeNone   PieceType = 0
	PieceTypePawn   PieceType = 1
	PieceTypeKnight PieceType = 2
	PieceTypeBishop PieceType = 3
	PieceTypeRook   PieceType = 4
	PieceTypeQueen  PieceType = 5
	PieceTypeKing   PieceType = 6
)

// Type returns the colorless type of the piece (ignores side).
func (p Piece) Type() PieceType { return PieceType(p & 7) }

// Color returns the side that owns the piece. NoPiece defaults to White.
func (p Piece) Color() Color { return colorOf(p) }

// PieceFromType combines a colorless type with a side to produce a concrete Piece.
func PieceFromType(color Color, pt PieceType) Piece {
	if pt == PieceTypeNone {
		return NoPiece
	}
	p := Piece(pt)
	if color == Black {
		p |= 8
	}
	return p
}

type Color uint8

const (
	White Color = 0
	Black Color = 1
)

// Other returns the opposing side.
func (c Color) Other() Color { return 1 - c }

// Castling rights bit flags
type CastlingRights uint8

const (
	// White king-side (short) castling
	CastlingWhiteK CastlingRights = 1 << iota
	// White queen-side (long) castling
	CastlingWhiteQ
	// Black king-side castling
	CastlingBlackK
	// Black queen-side castling
	CastlingBlackQ
)

// Square represents a board position (0-63), A1=0 .. H8=63.
type Square int

const NoSquare Square = -1

// File returns the file index (0=a .. 7=h) of the square.
func (sq Square) File() int { return int(sq) & 7 }

// Rank returns the rank index (0 .. 7) of the square.
func (sq Square) Rank() int { return int(sq) >> 3 }

// Board represents the chess board state, including piece placement and game state.
type Board struct {
	// Piece bitboards for each piece type and color (index 0 = white, 1 = black)
	pawns   [2]uint64
	knights [2]uint64
	bishops [2]uint64
	rooks   [2]uint64
	queens  [2]uint64
	kings   [2]uint64

	// Occupancy bitboards for each side
	occupancy [2]uint64

	// Piece placement array for each square (0 = NoPiece, otherwise a Piece constant)
	pieces [64]Piece

	sideToMove Color

	castlingRights CastlingRights

	// En passant target square. Set after every double pawn push (FEN standard);
	// the hash only includes it when an enemy pawn can actually capture.
	enPassantSquare Square

	// Halfmove clock (half-moves since last capture or pawn advance, for 50-move rule)
	halfmoveClock int

	// Fullmove number (starts at 1, incremented after Black's move)
	fullmoveNumber int

	zobristKey uint64
}

// HasLegalMoves reports whether the side to move has any legal moves.
func (b *Board) HasLegalMoves() bool {
	buf := make([]Move, 0, 64)
	for _, m := range b.GeneratePseudoMovesInto(buf) {
		if ok, st := b.MakeMove(m); ok {
			b.UnmakeMove(m, st)
			return true
		}
	}
	return false
}

// InCheckmate reports whether the side to move is checkmated.
func (b *Board) InCheckmate() bool {
	return b.InCheck(b.sideToMove) && !b.HasLegalMoves()
}

// InStalemate reports whether the side to move is stalemated.
func (b *Board) InStalemate() bool {
	return !b.InCheck(b.sideToMove) && !b.HasLegalMoves()
}

// IsDrawBy50 reports a 50-move rule draw (halfmoveClock counts half-moves).
func (b *Board) IsDrawBy50() bool {
	return b.halfmoveClock >= 100
}

// HalfmoveClock accessor for testing/consumers that want read-only access.
func (b *Board) HalfmoveClock() int { return b.halfmoveClock }

// FullmoveNumber returns the full move counter (incremented after Black's move).
func (b *Board) FullmoveNumber() int { return b.fullmoveNumber }

// EnPassantSquare returns the current en-passant target square or NoSquare.
func (b *Board) EnPassantSquare() Square { return b.enPassantSquare }

// SideToMove reports which side is to play.
func (b *Board) SideToMove() Color { return b.sideToMove }

// CastlingRightsMask returns the current castling rights bitmask.
func (b *Board) CastlingRightsMask() CastlingRights { return b.castlingRights }

// Hash returns the current Zobrist hash key.
func (b *Board) Hash() uint64 { return b.zobristKey }

// PieceCount returns the number of pieces on the board (kings included).
func (b *Board) PieceCount() int {
	return bits.OnesCount64(b.occupancy[0] | b.occupancy[1])
}

// HasNonPawnMaterial reports whether the given side owns at least one piece
// besides pawns and the king. Used as the null-move zugzwang guard.
func (b *Board) HasNonPawnMaterial(c Color) bool {
	ci := int(c)
	return b.knights[ci]|b.bishops[ci]|b.rooks[ci]|b.queens[ci] != 0
}

// OnlyKingsAndMinors reports whether neither side has pawns, rooks or queens,
// and at most one minor piece is on the board in total. Exactly two bishops
// on the same square color also qualify; any other pair of minors (including
// one knight per side) does not. Used for insufficient-material draw detection.
func (b *Board) OnlyKingsAndMinors() bool {
	if b.pawns[0]|b.pawns[1]|b.rooks[0]|b.rooks[1]|b.queens[0]|b.queens[1] != 0 {
		return false
	}
	minors := b.knights[0] | b.knights[1] | b.bishops[0] | b.bishops[1]
	n := bits.OnesCount64(minors)
	if n <= 1 {
		return true
	}
	// Two bishops on the same square color (one per side or both on one side)
	// cannot force mate either.
	if b.knights[0]|b.knights[1] == 0 && n == 2 {
		const lightSquares = 0x55AA55AA55AA55AA
		light := bits.OnesCount64(minors & lightSquares)
		return light == 0 || light == 2
	}
	return false
}

// ==========================
// Bitboard helpers
// ==========================

// bb returns a bitboard with the given square bit set.
func bb(sq Square) uint64 { return 1 << uint64(sq) }

// popLSB removes and returns the least significant set bit from the mask.
func popLSB(mask *uint64) int {
	idx := bits.TrailingZeros64(*mask)
	*mask &= *mask - 1
	return idx
}

// ==========================
// Board occupancy helpers
// ==========================

// AllOccupancy returns a bitboard of all occupied squares.
func (b *Board) AllOccupancy() uint64 { return b.occupancy[0] | b.occupancy[1] }

// ColorOccupancy returns the occupancy bitboard for the given color.
func (b *Board) ColorOccupancy(c Color) uint64 { return b.occupancy[int(c)] }

// PieceAt returns the piece on a square.
func (b *Board) PieceAt(sq Square) Piece { return b.pieces[int(sq)] }

// Pawns returns the pawn bitboard for the given color.
func (b *Board) Pawns(c Color) uint64 { return b.pawns[int(c)] }

// PieceBitboard returns the bitboard for a piece type of the given color.
func (b *Board) PieceBitboard(c Color, pt PieceType) uint64 {
	ci := int(c)
	switch pt {
	case PieceTypePawn:
		return b.pawns[ci]
	case PieceTypeKnight:
		return b.knights[ci]
	case PieceTypeBishop:
		return b.bishops[ci]
	case PieceTypeRook:
		return b.rooks[ci]
	case PieceTypeQueen:
		return b.queens[ci]
	case PieceTypeKing:
		return b.kings[ci]
	}
	return 0
}

// colorOf returns the color of a piece. NoPiece is treated as White.
func colorOf(p Piece) Color {
	if p&8 != 0 {
		return Black
	}
	return White
}

// typeOf returns the piece type in [1..6] with color stripped.
func typeOf(p Piece) Piece { return p & 7 }

// pieceBoard returns a pointer to the per-kind bitboard family member for p.
func (b *Board) pieceBoard(p Piece) *uint64 {
	ci := int(colorOf(p))
	switch typeOf(p) {
	case 1:
		return &b.pawns[ci]
	case 2:
		return &b.knights[ci]
	case 3:
		return &b.bishops[ci]
	case 4:
		return &b.rooks[ci]
	case 5:
		return &b.queens[ci]
	case 6:
		return &b.kings[ci]
	}
	return nil
}

// addPiece places a piece on an empty square and updates bitboards, occupancy and zobrist.
func (b *Board) addPiece(sq Square, p Piece) {
	if p == NoPiece {
		return
	}
	b.pieces[int(sq)] = p
	b.occupancy[int(colorOf(p))] |= bb(sq)
	*b.pieceBoard(p) |= bb(sq)
	b.zobristKey ^= pieceKey(p, sq)
}

// removePiece removes a piece from a square and updates bitboards, occupancy and zobrist.
func (b *Board) removePiece(sq Square) Piece {
	p := b.pieces[int(sq)]
	if p == NoPiece {
		return NoPiece
	}
	mask := ^bb(sq)
	b.pieces[int(sq)] = NoPiece
	b.occupancy[int(colorOf(p))] &= mask
	*b.pieceBoard(p) &= mask
	b.zobristKey ^= pieceKey(p, sq)
	return p
}

// Validate checks internal consistency between pieces[], per-piece bitboards, and occupancy.
// Returns true if consistent, false otherwise.
func (b *Board) Validate() bool {
	var occ [2]uint64
	var pawns, knights, bishops, rooks, queens, kings [2]uint64
	for sq := 0; sq < 64; sq++ {
		p := b.pieces[sq]
		if p == NoPiece {
			continue
		}
		ci := int(colorOf(p))
		bit := uint64(1) << uint(sq)
		occ[ci] |= bit
		switch typeOf(p) {
		case 1:
			pawns[ci] |= bit
		case 2:
			knights[ci] |= bit
		case 3:
			bishops[ci] |= bit
		case 4:
			rooks[ci] |= bit
		case 5:
			queens[ci] |= bit
		case 6:
			kings[ci] |= bit
		}
	}
	if occ != b.occupancy {
		return false
	}
	if pawns != b.pawns || knights != b.knights || bishops != b.bishops || rooks != b.rooks || queens != b.queens || kings != b.kings {
		return false
	}
	// Cross-check Zobrist
	return b.zobristKey == b.ComputeZobrist()
}
