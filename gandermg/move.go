package gandermg

import (
	"errors"
	"strings"
)

// Move encodes a chess move in a 16-bit value.
//
// Layout (LSB first): src(6) | dst(6) | promo(2) | isPromo(1) | reserved(1).
// Promotion codes 0..3 map to knight, bishop, rook, queen. Castling, en
// passant and double pushes carry no flag; MakeMove recognizes them from the
// position. The zero value means "no move".
type Move uint16

const (
	moveToShift    = 6
	movePromoShift = 12
	movePromoFlag  = 1 << 14
)

// NewMove constructs a non-promoting move.
func NewMove(from, to Square) Move {
	return Move(uint16(from&0x3F) | uint16(to&0x3F)<<moveToShift)
}

// NewPromotion constructs a promoting move to the given piece type (N/B/R/Q).
func NewPromotion(from, to Square, promo PieceType) Move {
	var code uint16
	switch promo {
	case PieceTypeKnight:
		code = 0
	case PieceTypeBishop:
		code = 1
	case PieceTypeRook:
		code = 2
	default:
		code = 3
	}
	return NewMove(from, to) | Move(code<<movePromoShift) | movePromoFlag
}

// From returns the source square of the move.
func (m Move) From() Square { return Square(m & 0x3F) }

// To returns the destination square of the move.
func (m Move) To() Square { return Square((m >> moveToShift) & 0x3F) }

// IsPromotion reports whether the move promotes a pawn.
func (m Move) IsPromotion() bool { return m&movePromoFlag != 0 }

// PromotionPieceType returns the promoted piece type, or PieceTypeNone.
func (m Move) PromotionPieceType() PieceType {
	if !m.IsPromotion() {
		return PieceTypeNone
	}
	switch (m >> movePromoShift) & 3 {
	case 0:
		return PieceTypeKnight
	case 1:
		return PieceTypeBishop
	case 2:
		return PieceTypeRook
	default:
		return PieceTypeQueen
	}
}

var promoChars = [7]byte{0, 0, 'n', 'b', 'r', 'q', 0}

// String produces the long-algebraic representation of the move
// (e.g. "e2e4", "e7e8q"). The zero move prints as "0000".
func (m Move) String() string {
	if m == 0 {
		return "0000"
	}
	from := m.From()
	to := m.To()
	buf := []byte{
		'a' + byte(from.File()), '1' + byte(from.Rank()),
		'a' + byte(to.File()), '1' + byte(to.Rank()),
	}
	if m.IsPromotion() {
		buf = append(buf, promoChars[m.PromotionPieceType()])
	}
	return string(buf)
}

// ParseMove converts a UCI string (e2e4, e7e8q, 0000) into a Move.
func ParseMove(movestr string) (Move, error) {
	movestr = strings.TrimSpace(strings.ToLower(movestr))
	if movestr == "0000" {
		return 0, nil
	}
	if len(movestr) < 4 || len(movestr) > 5 {
		return 0, errors.New("invalid move length")
	}
	from, err := algebraicToIndex(movestr[0:2])
	if err != nil {
		return 0, err
	}
	to, err := algebraicToIndex(movestr[2:4])
	if err != nil {
		return 0, err
	}
	if len(movestr) == 5 {
		var promo PieceType
		switch movestr[4] {
		case 'n':
			promo = PieceTypeKnight
		case 'b':
			promo = PieceTypeBishop
		case 'r':
			promo = PieceTypeRook
		case 'q':
			promo = PieceTypeQueen
		default:
			return 0, errors.New("invalid promotion piece")
		}
		return NewPromotion(Square(from), Square(to), promo), nil
	}
	return NewMove(Square(from), Square(to)), nil
}

func algebraicToIndex(alg string) (int, error) {
	if len(alg) != 2 {
		return 0, errors.New("invalid algebraic square length")
	}
	file := alg[0]
	rank := alg[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, errors.New("invalid algebraic square")
	}
	return int(file-'a') + int(rank-'1')*8, nil
}
