package engine

import (
	"fmt"
	"sync/atomic"

	gm "gander-engine/gandermg"
)

// =============================================================================
// SCORE CONSTANTS
// =============================================================================
const (
	MateScore     int32 = 30000
	MateThreshold int32 = 29000
	Infinity      int32 = 31000
	DrawScore     int32 = 0
)

// MaxPly bounds the search stack; MaxDepth is the depth tablebase hits are
// stored at so they outrank any later search result.
const (
	MaxPly        = 64
	MaxDepth int8 = 64
)

// Null-move pruning reduction and the number of moves searched at full depth
// before late-move reductions kick in.
const (
	nullMoveReduction int8 = 3
	lmrFullDepthMoves      = 3
	lmrMinDepth       int8 = 3
)

var TT TransTable
var KillerMoveTable KillerStruct
var timeHandler TimeHandler

// Tablebase is the configured WDL oracle, or nil.
var Tablebase Prober

// GlobalStop is the shared stop flag; the UCI reader sets it and the search
// checks it at every node and between iterations.
var GlobalStop atomic.Bool

var nodesChecked uint64
var searchShouldStop bool
var rootBestMove gm.Move

// NodesSearched returns the node count of the current or last search.
func NodesSearched() uint64 { return nodesChecked }

// SearchLimits carries the `go` command's constraints.
type SearchLimits struct {
	Depth      int
	MoveTimeMs int64
	TimeMs     int64
	IncMs      int64
	Infinite   bool
}

// StartSearch runs iterative deepening under the given limits and returns the
// best move found (zero move if the position has no legal moves). Info lines
// are printed per completed depth.
func StartSearch(board *gm.Board, limits SearchLimits) gm.Move {
	if !TT.IsInitialized() {
		TT.Resize(DefaultTTSizeMB)
	}

	ensureStateStackSynced(board)

	GlobalStop.Store(false)
	searchShouldStop = false
	nodesChecked = 0
	TT.NewSearch()
	KillerMoveTable.ClearKillers()
	ClearHistoryTable()
	timeHandler.initTimeManagement(limits)

	return rootsearch(board, limits.Depth)
}

func rootsearch(b *gm.Board, maxDepth int) gm.Move {
	if maxDepth <= 0 || maxDepth > int(MaxPly) {
		maxDepth = int(MaxPly)
	}

	var bestMove gm.Move
	var pvLine PVLine
	var prevPVLine PVLine

	for d := 1; d <= maxDepth; d++ {
		pvLine.Clear()
		rootBestMove = 0

		score := alphabeta(b, -Infinity, Infinity, int8(d), 0, &pvLine, true)

		if searchShouldStop || GlobalStop.Load() {
			// Discard the partial iteration; fall back to its best root move
			// only if no iteration ever completed.
			if bestMove == 0 {
				bestMove = rootBestMove
			}
			break
		}

		prevPVLine = pvLine.Clone()
		bestMove = prevPVLine.GetPVMove()

		elapsed := timeHandler.Elapsed().Milliseconds()
		if elapsed < 1 {
			elapsed = 1
		}
		nps := nodesChecked * 1000 / uint64(elapsed)

		fmt.Println(
			"info depth", d,
			"score", getMateOrCPScore(score),
			"nodes", nodesChecked,
			"time", elapsed,
			"nps", nps,
			"pv", getPVLineString(prevPVLine),
		)

		if d >= 2 && timeHandler.SoftTimeExceeded() {
			break
		}
		// A forced mate cannot improve with more depth.
		if abs32(score) >= MateThreshold {
			break
		}
	}

	return bestMove
}

func alphabeta(b *gm.Board, alpha int32, beta int32, depth int8, ply int8, pvLine *PVLine, canNull bool) int32 {
	nodesChecked++
	if nodesChecked&2047 == 0 && timeHandler.TimeStatus() {
		searchShouldStop = true
	}
	if searchShouldStop || GlobalStop.Load() {
		return 0
	}

	if ply >= MaxPly {
		return Evaluation(b)
	}

	inCheck := b.OurKingInCheck()
	isRoot := ply == 0

	if !isRoot && isDraw(b, inCheck) {
		return DrawScore
	}

	posHash := b.Hash()

	/*
		TRANSPOSITION TABLE LOOKUP
	*/
	var ttMove gm.Move
	if entry, found := TT.Probe(posHash); found {
		ttMove = entry.Move
		if entry.Depth >= depth && !isRoot {
			score := ScoreFromTT(int32(entry.Score), ply)
			switch entry.Flag {
			case ExactFlag:
				return score
			case LowerFlag:
				alpha = Max(alpha, score)
			case UpperFlag:
				beta = Min(beta, score)
			}
			if alpha >= beta {
				return score
			}
		}
	}

	/*
		TABLEBASE PROBE
		Probed before the quiescence handoff so shallow searches still see
		tablebase truth. A hit is stored at MaxDepth so no search result
		overwrites it.
	*/
	if !isRoot {
		if wdl, ok := probeTablebase(b); ok {
			score := wdlScore(wdl)
			TT.Store(posHash, MaxDepth, ply, 0, score, ExactFlag)
			return score
		}
	}

	if depth <= 0 {
		return quiescence(b, alpha, beta, ply)
	}

	/*
		NULL MOVE PRUNING
		If we skip our turn and a reduced search still beats beta, the real
		position must be even better. Disabled when the side to move has only
		pawns and king (zugzwang guard).
	*/
	if canNull && depth >= 3 && !inCheck && !isRoot && b.HasNonPawnMaterial(b.SideToMove()) {
		var childPVLine PVLine
		st := b.MakeNullMove()
		pushState(b)
		score := -alphabeta(b, -beta, -beta+1, depth-1-nullMoveReduction, ply+1, &childPVLine, false)
		popState()
		b.UnmakeNullMove(st)

		if searchShouldStop || GlobalStop.Load() {
			return 0
		}
		if score >= beta && score < MateThreshold {
			return beta
		}
	}

	moves := b.GeneratePseudoMoves()
	moveList := scoreMovesList(b, moves, ply, ttMove)

	var childPVLine PVLine
	var bestMove gm.Move
	bestScore := -Infinity
	ttFlag := uint8(UpperFlag)
	legalMoves := 0

	for index := 0; index < len(moveList.moves); index++ {
		orderNextMove(index, &moveList)
		move := moveList.moves[index].move

		isCapture := b.IsCapture(move)
		isQuiet := !isCapture && !move.IsPromotion()
		movedType := b.PieceAt(move.From()).Type()

		ok, st := b.MakeMove(move)
		if !ok {
			continue
		}
		pushState(b)
		legalMoves++

		givesCheck := b.OurKingInCheck()

		var score int32
		doLMR := legalMoves > lmrFullDepthMoves && depth >= lmrMinDepth &&
			isQuiet && !inCheck && !givesCheck &&
			!KillerMoveTable.IsKiller(move, ply)

		if doLMR {
			// Reduced null-window probe; re-search at full depth on promise.
			score = -alphabeta(b, -alpha-1, -alpha, depth-2, ply+1, &childPVLine, true)
			if score > alpha {
				score = -alphabeta(b, -beta, -alpha, depth-1, ply+1, &childPVLine, true)
			}
		} else {
			score = -alphabeta(b, -beta, -alpha, depth-1, ply+1, &childPVLine, true)
		}

		popState()
		b.UnmakeMove(move, st)

		if searchShouldStop || GlobalStop.Load() {
			return 0
		}

		if score > bestScore {
			bestScore = score
			bestMove = move
			if isRoot {
				rootBestMove = move
			}
		}

		// Beta cutoff
		if score >= beta {
			TT.Store(posHash, depth, ply, move, beta, LowerFlag)
			if isQuiet {
				KillerMoveTable.InsertKiller(move, ply)
				incrementHistoryScore(movedType, move, depth)
			}
			return beta
		}

		if score > alpha {
			alpha = score
			ttFlag = ExactFlag
			pvLine.Update(move, childPVLine)
		}
		childPVLine.Clear()
	}

	if legalMoves == 0 {
		if inCheck {
			return -MateScore + int32(ply)
		}
		return DrawScore // stalemate
	}

	TT.Store(posHash, depth, ply, bestMove, alpha, ttFlag)

	return alpha
}

func quiescence(b *gm.Board, alpha int32, beta int32, ply int8) int32 {
	nodesChecked++
	if nodesChecked&2047 == 0 && timeHandler.TimeStatus() {
		searchShouldStop = true
	}
	if searchShouldStop || GlobalStop.Load() {
		return 0
	}

	if ply >= MaxPly {
		return Evaluation(b)
	}

	inCheck := b.OurKingInCheck()

	if inCheck {
		// Standing pat is illegal in check; search every evasion.
		moveList := scoreMovesList(b, b.GeneratePseudoMoves(), ply, 0)
		legalMoves := 0

		for index := 0; index < len(moveList.moves); index++ {
			orderNextMove(index, &moveList)
			move := moveList.moves[index].move

			ok, st := b.MakeMove(move)
			if !ok {
				continue
			}
			legalMoves++

			score := -quiescence(b, -beta, -alpha, ply+1)
			b.UnmakeMove(move, st)

			if searchShouldStop || GlobalStop.Load() {
				return 0
			}
			if score >= beta {
				return beta
			}
			if score > alpha {
				alpha = score
			}
		}

		if legalMoves == 0 {
			return -MateScore + int32(ply)
		}
		return alpha
	}

	standpat := Evaluation(b)
	if standpat >= beta {
		return beta
	}
	if standpat > alpha {
		alpha = standpat
	}

	moveList := scoreMovesListCaptures(b, b.GenerateCapturesInto(make([]gm.Move, 0, 64)))

	for index := 0; index < len(moveList.moves); index++ {
		orderNextMove(index, &moveList)
		move := moveList.moves[index].move

		ok, st := b.MakeMove(move)
		if !ok {
			continue
		}

		score := -quiescence(b, -beta, -alpha, ply+1)
		b.UnmakeMove(move, st)

		if searchShouldStop || GlobalStop.Load() {
			return 0
		}
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}

	return alpha
}
