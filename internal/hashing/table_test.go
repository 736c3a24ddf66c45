package hashing

import (
	"sync"
	"testing"

	"github.com/lgbarn/chessboard-go/internal/testutil"
)

func TestTable_Concurrent(t *testing.T) {
	table := NewTable(0)

	const numWorkers = 10
	const keysPerWorker = 100

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for k := 0; k < keysPerWorker; k++ {
				// Every worker writes the same keys.
				table.Store(uint64(k), 2, uint64(k*10))
				if nodes, ok := table.Lookup(uint64(k), 2); !ok || nodes != uint64(k*10) {
					t.Errorf("worker %d: Lookup(%d) = %d, %v", workerID, k, nodes, ok)
				}
			}
		}(w)
	}
	wg.Wait()

	testutil.AssertEqual(t, table.Len(), keysPerWorker)
	testutil.AssertEqual(t, table.Hits(), uint64(numWorkers*keysPerWorker))
}

func BenchmarkPositionHash(b *testing.B) {
	board := initialBoard()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = PositionHash(board, 1)
	}
}
