package mocks

import "context"

// Transactor runs the unit of work inline and records how often it was used.
// Err, when set, is returned instead of running fn.
type Transactor struct {
	Calls int
	Err   error
}

func (t *Transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	if t.Err != nil {
		return t.Err
	}
	return fn(ctx)
}
