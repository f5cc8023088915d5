//go:build !linux || !(amd64 || arm64)

package threads

import "syscall"

var terminationSignals = []syscall.Signal{}

func blockTerminationSignals() error {
	return nil
}

func blockedSignals() ([]syscall.Signal, error) {
	return []syscall.Signal{}, nil
}
