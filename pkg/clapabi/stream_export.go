package clapabi

/*
#include <stdint.h>
#include <stdlib.h>
#include "clap/clap.h"

extern int64_t clapgoStreamRead(const clap_istream_t *stream, void *buffer, uint64_t size);
extern int64_t clapgoStreamWrite(const clap_ostream_t *stream, const void *buffer, uint64_t size);

static void clapgo_install_istream(clap_istream_t *s) { s->read = clapgoStreamRead; }
static void clapgo_install_ostream(clap_ostream_t *s) { s->write = clapgoStreamWrite; }
*/
import "C"

import "unsafe"

// NewIStream returns a C-stable istream backed by r, plus a release func.
// The adapter's own read-granularity behaviour (whole-buffer vs chunked)
// lives entirely on the Go side in pkg/stream; this just wires the callback.
func NewIStream(r StreamReader) (*C.clap_istream_t, func()) {
	s := (*C.clap_istream_t)(C.malloc(C.sizeof_clap_istream_t))
	*s = C.clap_istream_t{}
	id := RegisterReader(r)
	s.ctx = unsafe.Pointer(id) //nolint:govet // integer handle
	C.clapgo_install_istream(s)
	release := func() {
		UnregisterReader(id)
		C.free(unsafe.Pointer(s))
	}
	return s, release
}

// NewOStream returns a C-stable ostream backed by w, plus a release func.
func NewOStream(w StreamWriter) (*C.clap_ostream_t, func()) {
	s := (*C.clap_ostream_t)(C.malloc(C.sizeof_clap_ostream_t))
	*s = C.clap_ostream_t{}
	id := RegisterWriter(w)
	s.ctx = unsafe.Pointer(id) //nolint:govet // integer handle
	C.clapgo_install_ostream(s)
	release := func() {
		UnregisterWriter(id)
		C.free(unsafe.Pointer(s))
	}
	return s, release
}

//export clapgoStreamRead
func clapgoStreamRead(stream *C.clap_istream_t, buffer unsafe.Pointer, size C.uint64_t) C.int64_t {
	id := uintptr(stream.ctx)
	r, ok := readers.get(id)
	if !ok {
		return -1
	}
	dst := unsafe.Slice((*byte)(buffer), int(size))
	n, eof := r.Read(dst)
	if n == 0 && eof {
		return 0
	}
	return C.int64_t(n)
}

//export clapgoStreamWrite
func clapgoStreamWrite(stream *C.clap_ostream_t, buffer unsafe.Pointer, size C.uint64_t) C.int64_t {
	id := uintptr(stream.ctx)
	w, ok := writers.get(id)
	if !ok {
		return -1
	}
	src := unsafe.Slice((*byte)(buffer), int(size))
	n := w.Write(src)
	return C.int64_t(n)
}
