// Package threads provides mutexes, condition variables, threads with
// cooperative cancellation, thread-local variables and cancellable sleeps.
//
// A thread is a goroutine started with Clone or CloneDetached. By default it
// is locked to its own OS thread for its whole life. Another goroutine may ask
// it to stop with Cancel; the thread only acts on the request at a
// cancellation point:
//
//   - TestCancel
//   - Cond.Wait and Cond.TimedWait, on entry and on return
//   - Msleep and Mwait, on entry and whenever a Cancel interrupts them
//   - Thread.Join, on entry and while waiting
//
// At a cancellation point a cancelled, killable thread ends immediately:
// deferred calls run, but control never returns to the code after the
// cancellation point. Code that must not be interrupted is bracketed by
// SaveCancel and RestoreCancel.
//
// Goroutines that were not started by this package have no thread handle.
// For them every cancellation operation is a no-op.
package threads
