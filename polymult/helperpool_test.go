package polymult

import (
	"sync/atomic"
	"testing"
)

func TestHelperPoolRunCoversEveryLine(t *testing.T) {
	const numLines = 97
	p := NewHelperPool(4)
	defer p.Close()

	var seen [numLines]atomic.Bool
	p.Run(numLines, func(lineOffset int) {
		seen[lineOffset].Store(true)
	})

	for i := 0; i < numLines; i++ {
		if !seen[i].Load() {
			t.Fatalf("line %d was never dispatched", i)
		}
	}
}

func TestHelperPoolSequentialCallsDoNotLeak(t *testing.T) {
	p := NewHelperPool(2)
	defer p.Close()

	for round := 0; round < 10; round++ {
		var count atomic.Int32
		p.Run(5, func(int) { count.Add(1) })
		if count.Load() != 5 {
			t.Fatalf("round %d: count = %d, want 5", round, count.Load())
		}
	}
}

func TestHelperPoolSingleWorker(t *testing.T) {
	p := NewHelperPool(1)
	defer p.Close()

	var total atomic.Int64
	p.Run(50, func(i int) { total.Add(int64(i)) })
	if total.Load() != 50*49/2 {
		t.Fatalf("total = %d, want %d", total.Load(), 50*49/2)
	}
}
