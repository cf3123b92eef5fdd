package pairlock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// fatPayload matches the boundary scenario: a tuple whose array half
// must always be the bit pattern implied by its counter half. A torn
// publication would let a reader observe a counter paired with the
// wrong array, which must never happen under any interleaving.
type fatPayload struct {
	pattern [4]uint64
	counter uint64
}

func patternFor(counter uint64) [4]uint64 {
	return [4]uint64{counter, counter ^ 0xAAAAAAAA, counter * 3, ^counter}
}

// TestConcurrentReadersNeverObserveATornFatPayload runs one writer
// cycling through fatPayload values against many concurrent readers,
// each of which must only ever observe a self-consistent payload.
func TestConcurrentReadersNeverObserveATornFatPayload(t *testing.T) {
	zero := fatPayload{pattern: patternFor(0), counter: 0}
	cell := New(zero, zero)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var counter uint64
		for gctx.Err() == nil {
			counter++
			cell.Set(fatPayload{pattern: patternFor(counter), counter: counter})
		}
		return nil
	})

	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for gctx.Err() == nil {
				cell.View(func(v *fatPayload) {
					if *v != (fatPayload{pattern: patternFor(v.counter), counter: v.counter}) {
						t.Errorf("torn read observed: %+v", *v)
					}
				})
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
}

// TestConcurrentReadersOnlyObservePublishedStringHandles matches the
// "string arena" boundary scenario: a writer cycles through a fixed set
// of handles, and every reader-observed value must pointer-equal one of
// them — never a value outside the published set.
func TestConcurrentReadersOnlyObservePublishedStringHandles(t *testing.T) {
	published := []*string{
		ptr("a"), ptr("bb"), ptr("ccc"), ptr("dddd"),
	}
	allowed := map[*string]bool{}
	for _, p := range published {
		allowed[p] = true
	}

	cell := New(published[0], published[0])

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		i := 0
		for gctx.Err() == nil {
			cell.Set(published[i%len(published)])
			i++
		}
		return nil
	})

	for i := 0; i < 8; i++ {
		g.Go(func() error {
			for gctx.Err() == nil {
				cell.View(func(v **string) {
					if !allowed[*v] {
						t.Errorf("observed handle outside the published set: %p", *v)
					}
				})
			}
			return nil
		})
	}

	require.NoError(t, g.Wait())
}

func ptr(s string) *string { return &s }

// TestWriterCompletesDrainOnceStragglerReaderReleases matches "no
// writer starvation from a single stuck reader once that reader
// completes": a reader holds its reservation open past the moment the
// writer starts waiting, and the writer must finish promptly once the
// reader lets go.
func TestWriterCompletesDrainOnceStragglerReaderReleases(t *testing.T) {
	cell := New(1, 1)

	entered := make(chan struct{})
	release := make(chan struct{})
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		cell.View(func(v *int) {
			close(entered)
			<-release
		})
	}()
	<-entered

	// A writer only waits for readers of the inactive slot, so flip once
	// to make the straggler's slot the one the next writer must reuse.
	flip := cell.Update()
	flip.Commit()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		cell.Set(2)
	}()

	select {
	case <-writerDone:
		t.Fatal("writer must not complete while the straggling reader is still open")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	<-readerDone

	select {
	case <-writerDone:
	case <-time.After(time.Second):
		t.Fatal("writer did not complete after the straggling reader released")
	}

	assert.Equal(t, 2, Read(cell))
}

// TestPublicationVisibleToReadersStartedAfterSetReturns matches
// "publication visibility": once a single writer's Set call returns,
// that goroutine's own subsequent read must never observe a value
// published earlier than the one it just set (it may observe a later
// one, if another writer races in, but this test has only one writer
// so that cannot happen either).
func TestPublicationVisibleToReadersStartedAfterSetReturns(t *testing.T) {
	cell := New(0, 0)

	for i := 1; i <= 200; i++ {
		cell.Set(i)
		got := Read(cell)
		if got != i {
			t.Fatalf("reader immediately after Set(%d) observed %d", i, got)
		}
	}
}
