package taskform

import (
	"errors"
	"sync"
	"testing"
	"time"
)

// manualClock lets a test decide when the submission delay elapses.
type manualClock struct {
	requested []time.Duration
	fire      chan time.Time
}

func newManualForm() (*Form, *manualClock) {
	c := &manualClock{fire: make(chan time.Time, 1)}
	f := New()
	f.after = func(d time.Duration) <-chan time.Time {
		c.requested = append(c.requested, d)
		return c.fire
	}
	return f, c
}

func TestSubmitEmpty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		f, c := newManualForm()
		f.SetText(text)

		if f.CanSubmit() {
			t.Errorf("CanSubmit() with %q = true", text)
		}
		done, ok := f.Submit()
		if ok || done != nil {
			t.Errorf("Submit() with %q = (%v, %t); want (nil, false)", text, done, ok)
		}
		if f.Busy() {
			t.Errorf("Busy() after Submit(%q) = true", text)
		}
		if len(c.requested) != 0 {
			t.Errorf("Submit(%q) started a delay", text)
		}
	}
}

func TestSubmit(t *testing.T) {
	f, c := newManualForm()
	f.SetText("status?")

	done, ok := f.Submit()
	if !ok {
		t.Fatal("Submit() = false; want true")
	}
	if !f.Busy() || f.CanSubmit() {
		t.Errorf("after Submit: Busy() = %t, CanSubmit() = %t; want true, false", f.Busy(), f.CanSubmit())
	}
	if f.Text() != "status?" {
		t.Errorf("Text() while busy = %q; want status?", f.Text())
	}
	if len(c.requested) != 1 || c.requested[0] != SubmitDelay {
		t.Errorf("requested delays = %v; want [%s]", c.requested, SubmitDelay)
	}

	if _, again := f.Submit(); again {
		t.Errorf("Submit() while busy = true; want false")
	}

	c.fire <- time.Now()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("submission did not complete")
	}

	state := f.State()
	if state.Busy || state.Text != "" || state.CanSubmit {
		t.Errorf("State() after delay = %+v; want idle and empty", state)
	}
}

func TestSubmitText(t *testing.T) {
	f, c := newManualForm()

	if state, err := f.SubmitText("  "); !errors.Is(err, ErrEmpty) || state.Busy {
		t.Errorf("SubmitText(blank) = %+v, %v; want idle, ErrEmpty", state, err)
	}

	state, err := f.SubmitText("status?")
	if err != nil || !state.Busy || state.Text != "status?" {
		t.Fatalf("SubmitText(status?) = %+v, %v; want busy with status?", state, err)
	}

	state, err = f.SubmitText("again")
	if !errors.Is(err, ErrBusy) || state.Text != "status?" {
		t.Errorf("SubmitText while busy = %+v, %v; want ErrBusy and the running text", state, err)
	}
	if len(c.requested) != 1 {
		t.Errorf("requested delays = %v; want one", c.requested)
	}
}

func TestSubmitTextConcurrent(t *testing.T) {
	f, c := newManualForm()

	var wg sync.WaitGroup
	var lock sync.Mutex
	started := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := f.SubmitText("status?"); err == nil {
				lock.Lock()
				started++
				lock.Unlock()
			}
		}()
	}
	wg.Wait()

	if started != 1 || len(c.requested) != 1 {
		t.Errorf("%d submissions started, %d delays; want 1", started, len(c.requested))
	}
}

func TestSubmitRealDelay(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for the real submission delay")
	}
	f := New()
	f.SetText("route to Rotterdam")

	start := time.Now()
	done, _ := f.Submit()
	<-done

	if elapsed := time.Since(start); elapsed < SubmitDelay {
		t.Errorf("submission took %s; want at least %s", elapsed, SubmitDelay)
	}
	if f.Busy() || f.Text() != "" {
		t.Errorf("form not cleared after submission")
	}
}
