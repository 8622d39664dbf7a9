package gandermg_test

import (
	"testing"

	gm "gander-engine/gandermg"
)

func TestMoveEncoding(t *testing.T) {
	m := gm.NewMove(12, 28) // e2e4
	if m.From() != 12 || m.To() != 28 {
		t.Errorf("from/to mismatch: %d %d", m.From(), m.To())
	}
	if m.IsPromotion() {
		t.Errorf("plain move flagged as promotion")
	}
	if m.String() != "e2e4" {
		t.Errorf("expected e2e4, got %s", m)
	}

	p := gm.NewPromotion(52, 60, gm.PieceTypeQueen) // e7e8q
	if !p.IsPromotion() || p.PromotionPieceType() != gm.PieceTypeQueen {
		t.Errorf("promotion accessors broken")
	}
	if p.String() != "e7e8q" {
		t.Errorf("expected e7e8q, got %s", p)
	}

	if gm.Move(0).String() != "0000" {
		t.Errorf("zero move should print 0000")
	}
}

func TestParseMoveRoundTrip(t *testing.T) {
	for _, s := range []string{"e2e4", "g8f6", "e7e8q", "a7a8n", "h2h1r", "b7b8b"} {
		m, err := gm.ParseMove(s)
		if err != nil {
			t.Fatalf("ParseMove(%q): %v", s, err)
		}
		if m.String() != s {
			t.Errorf("round trip %q -> %q", s, m.String())
		}
	}

	if m, err := gm.ParseMove("0000"); err != nil || m != 0 {
		t.Errorf("0000 should parse to the zero move")
	}

	for _, s := range []string{"", "e2", "e2e9", "i2i4", "e7e8x", "e2e4qq"} {
		if _, err := gm.ParseMove(s); err == nil {
			t.Errorf("ParseMove(%q) should fail", s)
		}
	}
}

// Parsed moves are bitwise equal to generated ones, so matching against the
// legal move list needs no field comparison.
func TestParsedMoveMatchesGenerated(t *testing.T) {
	board := mustParse(t, gm.FENStartPos)
	parsed, _ := gm.ParseMove("e2e4")
	found := false
	for _, m := range board.GenerateLegalMoves() {
		if m == parsed {
			found = true
		}
	}
	if !found {
		t.Errorf("parsed e2e4 should equal the generated move value")
	}
}
