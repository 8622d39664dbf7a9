package engine

import (
	"math/bits"
	"unsafe"

	gm "gander-engine/gandermg"
)

// TT entry bound flags.
const (
	EmptyFlag = iota
	ExactFlag
	LowerFlag // beta cutoff (score >= beta)
	UpperFlag // failed low (score <= alpha)
)

const DefaultTTSizeMB = 64

// TTEntry is one transposition table slot. Empty slots have Hash == 0 and
// Flag == EmptyFlag.
type TTEntry struct {
	Hash  uint64
	Move  gm.Move
	Score int16
	Depth int8
	Flag  uint8
	Age   uint8
}

// TransTable is a power-of-two table indexed by hash & mask, one entry per
// slot, with depth-preferred + aging replacement.
type TransTable struct {
	entries    []TTEntry
	mask       uint64
	generation uint8
}

// Resize reallocates the table for the given size in megabytes, clearing it.
// The entry count is rounded down to a power of two (minimum 1024). On an
// allocation failure the size is halved until it fits.
func (tt *TransTable) Resize(mb int) {
	if mb < 1 {
		mb = 1
	}
	entrySize := int(unsafe.Sizeof(TTEntry{}))
	for {
		numEntries := mb * 1024 * 1024 / entrySize
		size := 1 << (bits.Len(uint(numEntries)) - 1)
		if size < 1024 {
			size = 1024
		}
		entries, ok := tryAlloc(size)
		if !ok && mb > 1 {
			mb /= 2
			continue
		}
		tt.entries = entries
		tt.mask = uint64(size - 1)
		tt.generation = 0
		return
	}
}

func tryAlloc(size int) (entries []TTEntry, ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return make([]TTEntry, size), true
}

// IsInitialized reports whether the table has been allocated.
func (tt *TransTable) IsInitialized() bool { return len(tt.entries) > 0 }

// NewSearch advances the aging generation. Called once per `go`.
func (tt *TransTable) NewSearch() {
	tt.generation++
}

// Clear zeroes every slot and resets the generation.
func (tt *TransTable) Clear() {
	for i := range tt.entries {
		tt.entries[i] = TTEntry{}
	}
	tt.generation = 0
}

// Probe returns the entry for the hash, or found=false on a miss or slot
// collision. The entry's stored score is still in node-relative form; use
// ScoreFromTT before comparing against search bounds.
func (tt *TransTable) Probe(hash uint64) (entry *TTEntry, found bool) {
	if len(tt.entries) == 0 {
		return nil, false
	}
	e := &tt.entries[hash&tt.mask]
	if e.Hash == hash && e.Flag != EmptyFlag {
		return e, true
	}
	return nil, false
}

// Store writes an entry, replacing when the slot is empty, holds the same
// key, holds a shallower search, or is stale. At equal depth an exact score
// displaces a bound. Mate scores are stored as distances from this node.
func (tt *TransTable) Store(hash uint64, depth int8, ply int8, move gm.Move, score int32, flag uint8) {
	if len(tt.entries) == 0 {
		return
	}
	e := &tt.entries[hash&tt.mask]

	replace := e.Flag == EmptyFlag ||
		e.Hash == hash ||
		depth > e.Depth ||
		(depth == e.Depth && (flag == ExactFlag || e.Flag != ExactFlag)) ||
		e.Age != tt.generation

	if !replace {
		return
	}

	e.Hash = hash
	e.Move = move
	e.Score = int16(ScoreToTT(score, ply))
	e.Depth = depth
	e.Flag = flag
	e.Age = tt.generation
}

// ScoreToTT converts a search score to storage form: mate distances, which
// the search counts from the root, become relative to the current node.
func ScoreToTT(score int32, ply int8) int32 {
	if score >= MateThreshold {
		return score + int32(ply)
	}
	if score <= -MateThreshold {
		return score - int32(ply)
	}
	return score
}

// ScoreFromTT reverses ScoreToTT relative to the probing node's ply.
func ScoreFromTT(score int32, ply int8) int32 {
	if score >= MateThreshold {
		return score - int32(ply)
	}
	if score <= -MateThreshold {
		return score + int32(ply)
	}
	return score
}
