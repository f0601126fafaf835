// Package modal brokers "show a named dialog and wait for its outcome"
// between the code that needs an answer and the UI that renders dialogs.
package modal

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrRejected matches every Rejection through errors.Is.
var ErrRejected = errors.New("modal rejected")

// Rejection is the error a rejected Outcome settles with. When the first
// value is itself an error it is exposed through Unwrap.
type Rejection struct {
	Name   string
	Values []any
}

func (r *Rejection) Error() string {
	if len(r.Values) == 0 {
		return fmt.Sprintf("modal %q rejected", r.Name)
	}
	return fmt.Sprintf("modal %q rejected: %v", r.Name, r.Values[0])
}

func (r *Rejection) Unwrap() error {
	if len(r.Values) > 0 {
		if err, ok := r.Values[0].(error); ok {
			return err
		}
	}
	return nil
}

func (r *Rejection) Is(target error) bool {
	return target == ErrRejected
}

// Outcome is the pending result of one Show. It settles at most once.
type Outcome struct {
	name   string
	done   chan struct{}
	once   sync.Once
	values []any
	err    error
}

func newOutcome(name string) *Outcome {
	return &Outcome{name: name, done: make(chan struct{})}
}

func (o *Outcome) Name() string {
	return o.name
}

// Done is closed once the outcome settles. An orphaned outcome never
// settles.
func (o *Outcome) Done() <-chan struct{} {
	return o.done
}

// Wait blocks until the outcome settles or ctx is done. A rejected outcome
// returns the reject values inside a *Rejection.
func (o *Outcome) Wait(ctx context.Context) ([]any, error) {
	select {
	case <-o.done:
		return o.values, o.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (o *Outcome) settle(values []any, err error) {
	o.once.Do(func() {
		o.values = values
		o.err = err
		close(o.done)
	})
}

// Coordinator holds the single active dialog. Showing a new dialog while
// one is pending replaces it: the earlier Outcome is orphaned and never
// settles. Callers must not rely on ordering between concurrent Shows.
type Coordinator struct {
	mu      sync.Mutex
	name    string
	pending *Outcome
}

func New() *Coordinator {
	return &Coordinator{}
}

// Show makes name the active dialog and returns its pending outcome.
func (c *Coordinator) Show(name string) *Outcome {
	o := newOutcome(name)
	c.mu.Lock()
	c.name = name
	c.pending = o
	c.mu.Unlock()
	return o
}

// Accept fulfils the pending outcome with values and clears the active
// dialog. It reports whether an outcome was pending.
func (c *Coordinator) Accept(values ...any) bool {
	o, _ := c.take()
	if o == nil {
		return false
	}
	o.settle(values, nil)
	return true
}

// Reject fails the pending outcome with values and clears the active
// dialog. It reports whether an outcome was pending.
func (c *Coordinator) Reject(values ...any) bool {
	o, name := c.take()
	if o == nil {
		return false
	}
	o.settle(nil, &Rejection{Name: name, Values: values})
	return true
}

// Active returns the name of the active dialog, or "" when none is shown.
func (c *Coordinator) Active() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.name
}

func (c *Coordinator) take() (*Outcome, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	o, name := c.pending, c.name
	c.pending = nil
	c.name = ""
	return o, name
}
