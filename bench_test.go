package pairlock

import "testing"

func BenchmarkView(b *testing.B) {
	cell := New(0, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cell.View(func(v *int) { _ = *v })
	}
}

func BenchmarkUpdate(b *testing.B) {
	cell := New(0, 0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		guard := cell.Update()
		*guard.Mutable() = i
		guard.Commit()
	}
}

// BenchmarkUpdateUnderReadContention measures writer drain latency
// while many readers are continuously active, the case that determines
// how long a writer can be made to wait.
func BenchmarkUpdateUnderReadContention(b *testing.B) {
	cell := New(0, 0)
	stop := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			for {
				select {
				case <-stop:
					return
				default:
					cell.View(func(v *int) { _ = *v })
				}
			}
		}()
	}
	defer close(stop)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		guard := cell.Update()
		*guard.Mutable() = i
		guard.Commit()
	}
}
