package core

import (
	"context"
	"sync"
)

// Readiness is a one-shot broadcast: it fires once, with success or an
// error, and every waiter observes the same outcome.
type Readiness struct {
	once sync.Once
	done chan struct{}
	err  error
}

// NewReadiness returns an unfired signal.
func NewReadiness() *Readiness {
	return &Readiness{done: make(chan struct{})}
}

// Resolve fires the signal successfully. It returns false if the signal had
// already fired.
func (r *Readiness) Resolve() bool {
	return r.fire(nil)
}

// Fail fires the signal with err. It returns false if the signal had
// already fired.
func (r *Readiness) Fail(err error) bool {
	return r.fire(err)
}

func (r *Readiness) fire(err error) bool {
	fired := false
	r.once.Do(func() {
		r.err = err
		close(r.done)
		fired = true
	})
	return fired
}

// Done is closed once the signal has fired.
func (r *Readiness) Done() <-chan struct{} {
	return r.done
}

// Fired reports whether the signal has fired, without blocking.
func (r *Readiness) Fired() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Err returns the failure the signal fired with. It is nil before the
// signal fires and after a successful fire.
func (r *Readiness) Err() error {
	if !r.Fired() {
		return nil
	}
	return r.err
}

// Wait blocks until the signal fires or ctx is done. A fired signal is
// reported even when ctx is already done.
func (r *Readiness) Wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	default:
	}
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
