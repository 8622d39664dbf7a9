package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"gander-engine/engine"
	gm "gander-engine/gandermg"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

const (
	minHashMB = 1
	maxHashMB = 4096
)

func main() {
	uciLoop()
}

func uciLoop() {
	scanner := bufio.NewScanner(os.Stdin)
	board, _ := gm.ParseFEN(gm.Startpos)
	engine.ResetStateTracking(board)

	// Non-nil while a search goroutine is running; closed when it finishes.
	var searchDone chan struct{}
	waitForSearch := func() {
		if searchDone != nil {
			<-searchDone
			searchDone = nil
		}
	}

	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "uci":
			fmt.Println("id name GanderEngine")
			fmt.Println("id author Goose")
			fmt.Println("option name Hash type spin default", engine.DefaultTTSizeMB, "min", minHashMB, "max", maxHashMB)
			fmt.Println("option name SyzygyPath type string default <empty>")
			fmt.Println("uciok")
		case "isready":
			waitForSearch()
			fmt.Println("readyok")
		case "ucinewgame":
			waitForSearch()
			board, _ = gm.ParseFEN(gm.Startpos)
			engine.ResetForNewGame()
			engine.ResetStateTracking(board)
		case "position":
			waitForSearch()
			if next := parsePosition(tokens); next != nil {
				board = next
			}
		case "go":
			waitForSearch()
			limits := parseGo(tokens, board.SideToMove())
			searchDone = make(chan struct{})
			b := board
			done := searchDone
			go func() {
				best := engine.StartSearch(b, limits)
				fmt.Println("bestmove", best.String())
				close(done)
			}()
		case "stop":
			engine.GlobalStop.Store(true)
			waitForSearch()
		case "setoption":
			waitForSearch()
			parseSetOption(tokens)
		case "quit":
			engine.GlobalStop.Store(true)
			waitForSearch()
			return
		default:
			log.Warn().Str("command", line).Msg("unknown command")
		}
	}
}

// parsePosition handles `position startpos|fen <FEN> [moves ...]`. It returns
// the new board, or nil if the position could not be parsed. An illegal move
// in the move list aborts the remaining moves but keeps the position reached
// so far.
func parsePosition(tokens []string) *gm.Board {
	if len(tokens) < 2 {
		log.Warn().Msg("malformed position command")
		return nil
	}

	var board *gm.Board
	idx := 1

	switch strings.ToLower(tokens[idx]) {
	case "startpos":
		board, _ = gm.ParseFEN(gm.Startpos)
		idx++
	case "fen":
		idx++
		fenFields := make([]string, 0, 6)
		for idx < len(tokens) && strings.ToLower(tokens[idx]) != "moves" && len(fenFields) < 6 {
			fenFields = append(fenFields, tokens[idx])
			idx++
		}
		parsed, err := gm.ParseFEN(strings.Join(fenFields, " "))
		if err != nil {
			log.Warn().Err(err).Msg("invalid fen position")
			return nil
		}
		board = parsed
	default:
		log.Warn().Str("subcommand", tokens[idx]).Msg("invalid position subcommand")
		return nil
	}

	engine.ResetStateTracking(board)

	if idx >= len(tokens) || strings.ToLower(tokens[idx]) != "moves" {
		return board
	}

	for _, moveStr := range tokens[idx+1:] {
		parsed, err := gm.ParseMove(strings.ToLower(moveStr))
		if err != nil {
			log.Warn().Str("move", moveStr).Err(err).Msg("unparsable move; ignoring rest of move list")
			return board
		}
		legal := false
		for _, mv := range board.GenerateLegalMoves() {
			if mv == parsed {
				legal = true
				break
			}
		}
		if !legal {
			log.Warn().Str("move", moveStr).Str("fen", board.ToFEN()).Msg("illegal move; ignoring rest of move list")
			return board
		}
		board.MakeMove(parsed)
		engine.RecordState(board)
	}
	return board
}

// parseGo extracts search limits from a `go` command.
func parseGo(tokens []string, side gm.Color) engine.SearchLimits {
	var limits engine.SearchLimits
	var wtime, btime, winc, binc int64

	readInt := func(i int) int64 {
		if i >= len(tokens) {
			log.Warn().Str("option", tokens[i-1]).Msg("malformed go command option")
			return 0
		}
		v, err := strconv.ParseInt(tokens[i], 10, 64)
		if err != nil {
			log.Warn().Str("value", tokens[i]).Msg("malformed go command value")
			return 0
		}
		return v
	}

	for i := 1; i < len(tokens); i++ {
		switch strings.ToLower(tokens[i]) {
		case "infinite":
			limits.Infinite = true
		case "depth":
			i++
			limits.Depth = int(readInt(i))
		case "movetime":
			i++
			limits.MoveTimeMs = readInt(i)
		case "wtime":
			i++
			wtime = readInt(i)
		case "btime":
			i++
			btime = readInt(i)
		case "winc":
			i++
			winc = readInt(i)
		case "binc":
			i++
			binc = readInt(i)
		case "movestogo":
			// Parsed but unused; allocation is remaining/30 + inc/2.
			i++
			readInt(i)
		default:
			log.Warn().Str("subcommand", tokens[i]).Msg("unknown go subcommand")
		}
	}

	if side == gm.White {
		limits.TimeMs, limits.IncMs = wtime, winc
	} else {
		limits.TimeMs, limits.IncMs = btime, binc
	}
	return limits
}

// parseSetOption handles `setoption name <name> value <value>`. Out-of-range
// values are ignored with a warning and the prior value kept.
func parseSetOption(tokens []string) {
	nameIdx, valueIdx := -1, -1
	for i, t := range tokens {
		switch strings.ToLower(t) {
		case "name":
			if nameIdx == -1 {
				nameIdx = i
			}
		case "value":
			valueIdx = i
		}
	}
	if nameIdx == -1 || valueIdx == -1 || valueIdx < nameIdx {
		log.Warn().Msg("malformed setoption command")
		return
	}

	name := strings.ToLower(strings.Join(tokens[nameIdx+1:valueIdx], " "))
	value := strings.Join(tokens[valueIdx+1:], " ")

	switch name {
	case "hash":
		mb, err := strconv.Atoi(value)
		if err != nil || mb < minHashMB || mb > maxHashMB {
			log.Warn().Str("value", value).Msg("Hash out of range; keeping previous size")
			return
		}
		engine.TT.Resize(mb)
	case "syzygypath":
		if value == "" || value == "<empty>" {
			engine.Tablebase = nil
			return
		}
		if st, err := os.Stat(value); err != nil || !st.IsDir() {
			log.Warn().Str("path", value).Msg("SyzygyPath is not a directory; probing disabled")
			engine.Tablebase = nil
			return
		}
		if engine.Tablebase == nil {
			log.Warn().Str("path", value).Msg("no WDL backend registered; table decoding is external to this engine")
		}
	default:
		log.Warn().Str("name", name).Msg("unknown option")
	}
}
