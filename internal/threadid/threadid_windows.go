//go:build windows

package threadid

import "golang.org/x/sys/windows"

// Current returns the calling OS thread's kernel id.
func Current() uint64 {
	return uint64(windows.GetCurrentThreadId())
}
