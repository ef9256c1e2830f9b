// Package calltimer times single function calls.
//
//	result := calltimer.Time2(performOps, -2, 5)
//	result.Print() // performOps done in 0 ms
package calltimer

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Observer is told about every call that completed without failing.
type Observer interface {
	Observe(label string, elapsed time.Duration)
}

type ObserverFunc func(label string, elapsed time.Duration)

func (f ObserverFunc) Observe(label string, elapsed time.Duration) {
	f(label, elapsed)
}

// Timer measures calls against a clock. It carries no mutable state once built.
type Timer struct {
	clock     clock.Clock
	observers []Observer
}

type Option func(*Timer)

func WithClock(c clock.Clock) Option {
	return func(t *Timer) {
		t.clock = c
	}
}

func WithObserver(o Observer) Option {
	return func(t *Timer) {
		t.observers = append(t.observers, o)
	}
}

func New(opts ...Option) *Timer {
	t := &Timer{clock: clock.New()}
	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Default is the Timer used by the package level functions.
var Default = New()

// measure runs call exactly once. A panic in call unwinds straight through.
func (t *Timer) measure(call func()) time.Duration {
	start := t.clock.Now()
	call()
	elapsed := t.clock.Since(start)

	// Only a fake clock can go backwards.
	if elapsed < 0 {
		elapsed = 0
	}

	return elapsed
}

func (t *Timer) notify(label string, elapsed time.Duration) {
	for _, o := range t.observers {
		o.Observe(label, elapsed)
	}
}

// Run times fn on t and labels the result with label, verbatim.
func Run[T any](t *Timer, label string, fn func() T) Result[T] {
	if t == nil {
		t = Default
	}

	var value T
	elapsed := t.measure(func() { value = fn() })
	t.notify(label, elapsed)

	return Result[T]{Duration: elapsed, Value: value, Label: label}
}

// RunErr is Run for calls that can fail. A non-nil error from fn is returned
// as is, together with an empty Result.
func RunErr[T any](t *Timer, label string, fn func() (T, error)) (Result[T], error) {
	if t == nil {
		t = Default
	}

	var (
		value T
		err   error
	)
	elapsed := t.measure(func() { value, err = fn() })
	if err != nil {
		return Result[T]{}, err
	}
	t.notify(label, elapsed)

	return Result[T]{Duration: elapsed, Value: value, Label: label}, nil
}

// Time times fn, labelled with the name of the function fn refers to.
func Time[T any](fn func() T) Result[T] {
	return Run(Default, FuncName(fn), fn)
}

func Time1[A, T any](fn func(A) T, a A) Result[T] {
	return Run(Default, FuncName(fn), func() T { return fn(a) })
}

func Time2[A, B, T any](fn func(A, B) T, a A, b B) Result[T] {
	return Run(Default, FuncName(fn), func() T { return fn(a, b) })
}

func Time3[A, B, C, T any](fn func(A, B, C) T, a A, b B, c C) Result[T] {
	return Run(Default, FuncName(fn), func() T { return fn(a, b, c) })
}

// TimeVoid times a function that returns nothing.
func TimeVoid(fn func()) Result[struct{}] {
	return Run(Default, FuncName(fn), func() struct{} {
		fn()
		return struct{}{}
	})
}

func TimeErr[T any](fn func() (T, error)) (Result[T], error) {
	return RunErr(Default, FuncName(fn), fn)
}

// Named times fn under an explicit label. Use it for closures, or wherever the
// reflected name is not what should be displayed.
func Named[T any](label string, fn func() T) Result[T] {
	return Run(Default, label, fn)
}
