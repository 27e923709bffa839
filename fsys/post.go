package fsys

import (
	"errors"
	"io"
)

// closers closes every member, returning the joined errors.
type closers []io.Closer

func (cs closers) Close() error {
	var errs []error
	for _, c := range cs {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}
