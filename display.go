package calltimer

import (
	"fmt"
	"io"
	"os"
)

func (r Result[T]) String() string {
	return fmt.Sprintf("%s done in %d ms", r.Label, r.Milliseconds())
}

// Print writes the summary line to stdout.
func (r Result[T]) Print() {
	_ = r.Fprint(os.Stdout)
}

// Fprint writes the summary line to w.
func (r Result[T]) Fprint(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.String())
	return err
}
