package calltimer

import "time"

// Result is what a timed call hands back: the value it returned, how long it
// took and the name it was timed under.
type Result[T any] struct {
	Duration time.Duration
	Value    T
	Label    string
}

// Milliseconds returns the duration truncated to whole milliseconds.
func (r Result[T]) Milliseconds() int64 {
	return r.Duration.Milliseconds()
}
