//go:build linux

package threadid

import "golang.org/x/sys/unix"

// Current returns the calling OS thread's kernel id. Paired with
// runtime.LockOSThread, this gives the validator a stable identity to
// compare against for the lifetime of a single host object.
func Current() uint64 {
	return uint64(unix.Gettid())
}
