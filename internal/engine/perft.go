package engine

import (
	"context"
	"runtime"
	"slices"

	"github.com/lgbarn/chessboard-go/internal/chess"
	"github.com/lgbarn/chessboard-go/internal/hashing"
	"github.com/lgbarn/chessboard-go/internal/worker"
)

// PerftResult is the node count of a perft run, split by root move.
type PerftResult struct {
	Depth     int
	Nodes     uint64
	Divide    []MoveNodes // In AllPossibleMoves order
	Workers int

	CacheHits    uint64
	CacheMisses  uint64
	CacheEntries int // Subtree counts stored during the run
}

// perftCacheSize bounds the transposition table shared by perft workers.
const perftCacheSize = 1 << 20

// cacheMinDepth is the smallest remaining depth worth caching.
const cacheMinDepth = 2

// MoveNodes is the number of leaf nodes below one root move.
type MoveNodes struct {
	Move  chess.Move
	Nodes uint64
}

// Perft counts the leaf nodes of the pseudo-legal move tree of the given
// depth from the current position. Each root move is counted on the worker
// pool; workers < 1 uses one worker per CPU. Pawns reaching the last rank
// become queens. Subtree counts are shared between workers through a
// transposition table. The game is not modified.
func Perft(ctx context.Context, g *Game, depth, workers int) (PerftResult, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	result := PerftResult{Depth: depth, Workers: workers}
	if depth <= 0 {
		result.Nodes = 1
		return result, nil
	}

	root := g.board.Copy()
	moves := AllPossibleMoves(root, g.toMove)
	result.Divide = make([]MoveNodes, len(moves))
	table := hashing.NewTable(perftCacheSize)

	pool := worker.NewPoolWithOptions(func(item worker.WorkItem) worker.ProcessResult {
		if err := ctx.Err(); err != nil {
			return worker.ProcessResult{Index: item.Index, Move: item.Move, Error: err}
		}
		piece, _ := item.Board.PieceAt(item.Move.From)
		board := item.Board.Copy()
		applyMove(board, item.Move.From, item.Move.To, chess.Queen)
		nodes, err := countNodes(ctx, board, piece.Colour.Opposite(), item.Depth, table)
		return worker.ProcessResult{Index: item.Index, Move: item.Move, Nodes: nodes, Error: err}
	}, worker.WithWorkers(workers), worker.WithBufferSize(max(len(moves), 1)))
	result.Workers = pool.NumWorkers()
	pool.Start()

	go func() {
		defer pool.Close()
		for i, m := range moves {
			if err := pool.SubmitContext(ctx, worker.WorkItem{Index: i, Board: root, Move: m, Depth: depth - 1}); err != nil {
				pool.Stop()
				return
			}
		}
	}()

	var firstErr error
	received := 0
	for r := range pool.Results() {
		if r.Error != nil {
			if firstErr == nil {
				firstErr = r.Error
			}
			pool.Stop()
			continue
		}
		result.Divide[r.Index] = MoveNodes{Move: r.Move, Nodes: r.Nodes}
		result.Nodes += r.Nodes
		received++
	}
	if firstErr == nil && received < len(moves) {
		firstErr = ctx.Err()
	}
	if firstErr != nil {
		return PerftResult{}, firstErr
	}
	result.CacheHits = table.Hits()
	result.CacheMisses = table.Misses()
	result.CacheEntries = table.Len()
	return result, nil
}

// countNodes counts leaves depth plies below board with colour on move.
// table may be nil. Interior nodes check ctx, so a cancelled count stops
// within one subtree of depth 1.
func countNodes(ctx context.Context, board *chess.Board, colour chess.Colour, depth int, table *hashing.Table) (uint64, error) {
	if depth == 0 {
		return 1, nil
	}

	var key uint64
	cached := table != nil && depth >= cacheMinDepth
	if cached {
		key = hashing.PositionHash(board, colour)
		if nodes, ok := table.Lookup(key, depth); ok {
			return nodes, nil
		}
	}

	moves := AllPossibleMoves(board, colour)
	if depth == 1 {
		return uint64(len(moves)), nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var nodes uint64
	state := board.State()
	for _, m := range moves {
		applyMove(board, m.From, m.To, chess.Queen)
		n, err := countNodes(ctx, board, colour.Opposite(), depth-1, table)
		board.RestoreState(state)
		if err != nil {
			return 0, err
		}
		nodes += n
	}

	if cached {
		table.Store(key, depth, nodes)
	}
	return nodes, nil
}

// SortDivide orders the divide entries by origin then destination, the way
// perft tools usually print them.
func (r PerftResult) SortDivide() []MoveNodes {
	out := slices.Clone(r.Divide)
	slices.SortFunc(out, func(a, b MoveNodes) int {
		return compareMoves(a.Move, b.Move)
	})
	return out
}

func compareMoves(a, b chess.Move) int {
	if c := compareFields(a.From, b.From); c != 0 {
		return c
	}
	return compareFields(a.To, b.To)
}

func compareFields(a, b chess.Field) int {
	if a.File() != b.File() {
		return int(a.File() - b.File())
	}
	return a.Rank() - b.Rank()
}
