package clipboard

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/watchdeck/watchdeck/internal/logger"
)

type fakePasteboard struct {
	mu       sync.Mutex
	count    int64
	hasCount bool
	text     string
	reads    int
}

func (f *fakePasteboard) ChangeCount() (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.hasCount {
		return 0, ErrChangeCountUnsupported
	}
	return f.count, nil
}

func (f *fakePasteboard) Text() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	return f.text, nil
}

func (f *fakePasteboard) set(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = text
	f.count++
}

func (f *fakePasteboard) readCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reads
}

func newTestWatcher(pb Pasteboard, sink func(Observation)) *Watcher {
	return NewWatcher(pb, logger.New("error", false), time.Minute, nil, sink)
}

func TestWatcher_PollDetectsVideoLink(t *testing.T) {
	pb := &fakePasteboard{text: "https://youtu.be/dQw4w9WgXcQ"}
	var got []Observation
	w := newTestWatcher(pb, func(o Observation) { got = append(got, o) })

	if id := w.Poll(context.Background()); id != "dQw4w9WgXcQ" {
		t.Fatalf("Poll() = %q, want dQw4w9WgXcQ", id)
	}
	if len(got) != 1 || got[0].VideoID != "dQw4w9WgXcQ" {
		t.Errorf("sink observations = %v, want one for dQw4w9WgXcQ", got)
	}
	latest, ok := w.Latest()
	if !ok || latest.VideoID != "dQw4w9WgXcQ" {
		t.Errorf("Latest() = %v, %v", latest, ok)
	}
}

func TestWatcher_PollIgnoresNonVideoText(t *testing.T) {
	pb := &fakePasteboard{text: "just some text"}
	w := newTestWatcher(pb, nil)

	if id := w.Poll(context.Background()); id != "" {
		t.Fatalf("Poll() = %q, want empty", id)
	}
	if _, ok := w.Latest(); ok {
		t.Error("Latest() reports an observation for non-video text")
	}
}

func TestWatcher_UnchangedRawStringShortCircuits(t *testing.T) {
	pb := &fakePasteboard{text: "https://youtu.be/dQw4w9WgXcQ"}
	var calls int
	w := newTestWatcher(pb, func(Observation) { calls++ })
	ctx := context.Background()

	w.Poll(ctx)
	w.Poll(ctx)
	w.Poll(ctx)

	if calls != 1 {
		t.Errorf("sink called %d times for unchanged clipboard, want 1", calls)
	}
}

func TestWatcher_ChangeCountShortCircuitsRead(t *testing.T) {
	pb := &fakePasteboard{text: "https://youtu.be/dQw4w9WgXcQ", hasCount: true, count: 7}
	w := newTestWatcher(pb, nil)
	ctx := context.Background()

	w.Poll(ctx) // primes the counter and reads once
	w.Poll(ctx)
	w.Poll(ctx)

	if n := pb.readCount(); n != 1 {
		t.Errorf("Text() called %d times with a stable change count, want 1", n)
	}

	pb.set("https://www.youtube.com/watch?v=jNQXAC9IVRw")
	if id := w.Poll(ctx); id != "jNQXAC9IVRw" {
		t.Errorf("Poll() = %q after clipboard change, want jNQXAC9IVRw", id)
	}
}

func TestWatcher_NewLinkReplacesLatest(t *testing.T) {
	pb := &fakePasteboard{text: "https://youtu.be/dQw4w9WgXcQ"}
	w := newTestWatcher(pb, nil)
	ctx := context.Background()

	w.Poll(ctx)
	pb.set("https://youtu.be/jNQXAC9IVRw")
	w.Poll(ctx)

	latest, _ := w.Latest()
	if latest.VideoID != "jNQXAC9IVRw" {
		t.Errorf("Latest().VideoID = %s, want jNQXAC9IVRw", latest.VideoID)
	}
}

func TestWatcher_StartPollsImmediately(t *testing.T) {
	pb := &fakePasteboard{text: "https://youtu.be/dQw4w9WgXcQ"}
	w := newTestWatcher(pb, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer w.Stop()

	if _, ok := w.Latest(); !ok {
		t.Error("Start() did not poll immediately")
	}
}
