package comm

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransactionSequence(t *testing.T) {
	seq := NewTransactionSequence()
	assert.Equal(t, uint32(1), seq.Next())
	assert.Equal(t, uint32(2), seq.Next())
	assert.Equal(t, uint32(3), seq.Next())
	seq.Reset()
	assert.Equal(t, uint32(0), seq.val.Load())
	assert.Equal(t, uint32(1), seq.Next())
}

func TestTransactionSequence_Wrap(t *testing.T) {
	seq := NewTransactionSequence()
	seq.val.Store(0xFFFFFFFD)
	assert.Equal(t, uint32(0xFFFFFFFE), seq.Next())
	assert.Equal(t, uint32(1), seq.Next())
}

func TestTransactionSequence_Concurrent(t *testing.T) {
	seq := NewTransactionSequence()
	seen := sync.Map{}
	wg := sync.WaitGroup{}
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				_, dup := seen.LoadOrStore(seq.Next(), struct{}{})
				assert.False(t, dup)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, uint32(8000), seq.val.Load())
}

var seq = NewTransactionSequence()

func BenchmarkTransactionSequence_Next(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		seq.Next()
	}
}
