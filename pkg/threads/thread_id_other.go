//go:build !linux

package threads

import "os"

// no portable thread id; the process id keeps diagnostics non-empty
func gettid() int {
	return os.Getpid()
}
