package engine

import (
	notnil "github.com/notnil/chess"

	gm "gander-engine/gandermg"
)

// Wdl is the tablebase verdict for a position, from the side to move's
// perspective. Cursed wins and blessed losses are results flipped by the
// 50-move rule.
type Wdl int

const (
	WdlUnavailable Wdl = iota
	WdlLoss
	WdlBlessedLoss
	WdlDraw
	WdlCursedWin
	WdlWin
)

// Prober is the external WDL oracle. The engine hands it a FEN string; table
// file discovery and decoding live entirely behind this interface.
// Implementations must be safe for concurrent reads.
type Prober interface {
	ProbeWDL(fen string) Wdl
}

// tbMaxPieces is the largest piece count the oracle is consulted for.
const tbMaxPieces = 5

// wdlScore maps a verdict to a search score. Wins and losses dominate any
// evaluation but stay below the mate range; cursed/blessed results are worth
// only a nudge since the 50-move rule turns them into draws.
func wdlScore(wdl Wdl) int32 {
	switch wdl {
	case WdlWin:
		return 20_000
	case WdlLoss:
		return -20_000
	case WdlCursedWin:
		return 100
	case WdlBlessedLoss:
		return -100
	default:
		return 0
	}
}

// probeTablebase consults the configured oracle. The board is converted via
// FEN — the portable bridge between position types, and effectively free
// since probes only happen at <= 5 pieces. A verdict of WdlUnavailable (or a
// FEN the chess library rejects) is treated as a probe miss.
func probeTablebase(b *gm.Board) (Wdl, bool) {
	if Tablebase == nil || b.PieceCount() > tbMaxPieces {
		return WdlUnavailable, false
	}

	fen := b.ToFEN()
	if _, err := notnil.FEN(fen); err != nil {
		return WdlUnavailable, false
	}

	wdl := Tablebase.ProbeWDL(fen)
	if wdl == WdlUnavailable {
		return WdlUnavailable, false
	}
	return wdl, true
}
