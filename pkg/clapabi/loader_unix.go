//go:build !windows

package clapabi

// #cgo CFLAGS: -I../../include
// #include <dlfcn.h>
// #include "clap/clap.h"
import "C"

import (
	"fmt"
	"unsafe"
)

// Module is an opened plug-in shared object.
type Module struct {
	handle unsafe.Pointer
}

// OpenModule opens path with local scope and lazy binding, the same flags
// the reference host uses so a plug-in's unresolved symbols surface at
// scan-rtld-now time rather than silently at dlopen time.
func OpenModule(path string) (*Module, error) {
	cpath := CString(path)
	defer Free(cpath)
	h := C.dlopen(cpath, C.RTLD_LOCAL|C.RTLD_LAZY)
	if h == nil {
		return nil, fmt.Errorf("dlopen %q: %s", path, C.GoString(C.dlerror()))
	}
	return &Module{handle: h}, nil
}

// OpenModuleNow opens path with eager (RTLD_NOW) binding, used by the
// scan-rtld-now test to force immediate symbol resolution.
func OpenModuleNow(path string) (*Module, error) {
	cpath := CString(path)
	defer Free(cpath)
	h := C.dlopen(cpath, C.RTLD_LOCAL|C.RTLD_NOW)
	if h == nil {
		return nil, fmt.Errorf("dlopen (RTLD_NOW) %q: %s", path, C.GoString(C.dlerror()))
	}
	return &Module{handle: h}, nil
}

// Symbol resolves a symbol by name, returning nil if absent.
func (m *Module) Symbol(name string) unsafe.Pointer {
	cname := CString(name)
	defer Free(cname)
	return C.dlsym(m.handle, cname)
}

// Close releases the module.
func (m *Module) Close() error {
	if C.dlclose(m.handle) != 0 {
		return fmt.Errorf("dlclose: %s", C.GoString(C.dlerror()))
	}
	return nil
}

// EntryFromSymbol reinterprets a resolved clap_entry symbol as an Entry.
func EntryFromSymbol(p unsafe.Pointer) *Entry {
	return (*Entry)(p)
}
