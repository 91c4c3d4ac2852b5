package dispatch

import "fmt"

// PanicError reports a task that panicked. The pool keeps running.
type PanicError struct {
	Key   string
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("task %s panicked: %v", e.Key, e.Value)
}
