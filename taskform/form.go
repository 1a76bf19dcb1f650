package taskform

import (
	"errors"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	ErrBusy  = errors.New("a task is already running")
	ErrEmpty = errors.New("empty task")
)

// SubmitDelay is how long a submission pretends to wait for the agent.
const SubmitDelay = 2 * time.Second

// Form is a query text box whose submissions take SubmitDelay and then
// clear it. Nothing is actually sent.
type Form struct {
	text  string
	busy  bool
	after func(time.Duration) <-chan time.Time
	lock  sync.Mutex
}

func New() *Form {
	return &Form{after: time.After}
}

type State struct {
	Text      string `json:"text"`
	Busy      bool   `json:"busy"`
	CanSubmit bool   `json:"canSubmit"`
}

func (f *Form) SetText(text string) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.text = text
}

func (f *Form) Text() string {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.text
}

func (f *Form) Busy() bool {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.busy
}

func (f *Form) canSubmit() bool {
	return !f.busy && strings.TrimSpace(f.text) != ""
}

func (f *Form) CanSubmit() bool {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.canSubmit()
}

func (f *Form) state() State {
	return State{Text: f.text, Busy: f.busy, CanSubmit: f.canSubmit()}
}

func (f *Form) State() State {
	f.lock.Lock()
	defer f.lock.Unlock()
	return f.state()
}

// Submit starts a submission. It returns false when the text is blank or a
// submission is already running. Otherwise the form is busy until the
// returned channel is closed, at which point the text has been cleared.
func (f *Form) Submit() (<-chan struct{}, bool) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if !f.canSubmit() {
		return nil, false
	}
	return f.start(), true
}

// SubmitText replaces the text and submits it. A running submission keeps
// its text and fails with ErrBusy, a blank text is stored and fails with
// ErrEmpty.
func (f *Form) SubmitText(text string) (State, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	if f.busy {
		return f.state(), ErrBusy
	}
	f.text = text
	if !f.canSubmit() {
		return f.state(), ErrEmpty
	}
	f.start()
	return f.state(), nil
}

// start must be called with the lock held.
func (f *Form) start() <-chan struct{} {
	f.busy = true
	log.WithField("query", f.text).Debug("Task submitted")

	wait := f.after(SubmitDelay)
	done := make(chan struct{})
	go func() {
		<-wait
		f.lock.Lock()
		f.busy = false
		f.text = ""
		f.lock.Unlock()
		close(done)
	}()
	return done
}
