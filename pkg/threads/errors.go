package threads

import (
	"fmt"
	"syscall"

	"github.com/go-errors/errors"
	"golang.org/x/xerrors"
)

// ErrTimedOut is returned by Cond.TimedWait when the deadline passes. It is
// an expected outcome, not a failure.
var ErrTimedOut error = ThreadError{Op: "timed-waiting on condition", Code: syscall.ETIMEDOUT}

// WrapError wraps an error for the sake of showing a stack trace at the top level
// the go-errors package, for some reason, does not return nil when you try to wrap
// a non-error, so we're just doing it here
func WrapError(err error) error {
	if err == nil {
		return err
	}

	return errors.Wrap(err, 0)
}

// ThreadError is an error from a threading operation, carrying the errno a
// native implementation would have reported.
type ThreadError struct {
	Op    string
	Code  syscall.Errno
	frame xerrors.Frame
}

func newThreadError(op string, code syscall.Errno) ThreadError {
	return ThreadError{
		Op:    op,
		Code:  code,
		frame: xerrors.Caller(1),
	}
}

// FormatError prints the operation and the decoded errno, plus the frame with %+v
func (te ThreadError) FormatError(p xerrors.Printer) error {
	p.Printf("%s: %s (%d)", te.Op, te.Code.Error(), int(te.Code))
	te.frame.Format(p)
	return nil
}

// Format is a function
func (te ThreadError) Format(f fmt.State, c rune) {
	xerrors.FormatError(te, f, c)
}

func (te ThreadError) Error() string {
	return fmt.Sprint(te)
}

// Unwrap exposes the errno so errors.Is(err, syscall.ENOMEM) works.
func (te ThreadError) Unwrap() error {
	return te.Code
}

// HasErrorCode reports whether err is, or wraps, a ThreadError with the given code
func HasErrorCode(err error, code syscall.Errno) bool {
	var originalErr ThreadError
	if xerrors.As(err, &originalErr) {
		return originalErr.Code == code
	}
	return false
}
