//go:build test

package suggest

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

// typingPatterns are the prefixes a user produces while typing each word.
var typingPatterns = [][]string{
	{"h", "he", "hel", "hell", "hello"},
	{"w", "wo", "wor", "worl", "world"},
	{"p", "pr", "pro", "prog", "progr", "progra", "program"},
	{"t", "th", "the", "ther", "there"},
	{"c", "co", "com", "comp", "compu", "comput", "computer"},
	{"k", "ke", "key", "keyb", "keybo", "keyboa", "keyboar", "keyboard"},
}

func newLoadedCompleter(words int) *Completer {
	c := NewCompleter()
	for i := 0; i < words; i++ {
		for _, pattern := range typingPatterns {
			last := pattern[len(pattern)-1]
			c.AddWord(fmt.Sprintf("%s%d", last, i), 60000-i)
		}
	}
	for _, pattern := range typingPatterns {
		c.AddWord(pattern[len(pattern)-1], 65000)
	}
	return c
}

func heapAlloc() int64 {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	return int64(m.Alloc)
}

func TestMemoryLeakBasic(t *testing.T) {
	for _, iterations := range []int{100, 500, 1000} {
		t.Run(fmt.Sprintf("iterations_%d", iterations), func(t *testing.T) {
			c := newLoadedCompleter(200)
			baseline := heapAlloc()
			baselineGoroutines := runtime.NumGoroutine()

			ops := 0
			for i := 0; i < iterations; i++ {
				for _, pattern := range typingPatterns {
					for _, prefix := range pattern {
						_ = c.Complete(prefix, 10)
						_ = c.Corrections(prefix, 3)
						ops++
					}
				}
			}

			memPerOp := float64(heapAlloc()-baseline) / float64(ops)
			goroutineDelta := runtime.NumGoroutine() - baselineGoroutines
			t.Logf("iterations=%d ops=%d mem_per_op=%.2f goroutine_delta=%d", iterations, ops, memPerOp, goroutineDelta)

			if memPerOp > 1000 {
				t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
			}
			if goroutineDelta > 2 {
				t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
			}
		})
	}
}

func TestMemoryLeakConcurrent(t *testing.T) {
	for _, workers := range []int{1, 2, 4, 8} {
		t.Run(fmt.Sprintf("workers_%d", workers), func(t *testing.T) {
			c := newLoadedCompleter(200)
			baseline := heapAlloc()

			var ops atomic.Int64
			var wg sync.WaitGroup
			for w := 0; w < workers; w++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for iter := 0; iter < 1000/workers; iter++ {
						for _, pattern := range typingPatterns {
							for _, prefix := range pattern {
								_ = c.Complete(prefix, 10)
								c.Touch(pattern[len(pattern)-1])
								ops.Add(1)
							}
						}
					}
				}()
			}
			wg.Wait()

			memPerOp := float64(heapAlloc()-baseline) / float64(ops.Load())
			t.Logf("workers=%d ops=%d mem_per_op=%.2f", workers, ops.Load(), memPerOp)
			if memPerOp > 1000 {
				t.Errorf("excessive memory usage per operation: %.2f bytes", memPerOp)
			}
		})
	}
}

func BenchmarkComplete(b *testing.B) {
	c := newLoadedCompleter(1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pattern := typingPatterns[i%len(typingPatterns)]
		_ = c.Complete(pattern[i%len(pattern)], 10)
	}
}

func BenchmarkCorrections(b *testing.B) {
	c := newLoadedCompleter(1000)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = c.Corrections("keybaord", 3)
	}
}
