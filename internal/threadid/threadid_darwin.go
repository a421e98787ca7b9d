//go:build darwin

package threadid

/*
#include <pthread.h>
static unsigned long long clapgo_current_thread_id(void) {
	unsigned long long tid = 0;
	pthread_threadid_np(NULL, &tid);
	return tid;
}
*/
import "C"

// Current returns the calling OS thread's kernel id.
func Current() uint64 {
	return uint64(C.clapgo_current_thread_id())
}
