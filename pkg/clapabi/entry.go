package clapabi

// #include "trampolines.h"
import "C"

import "unsafe"

// Init calls the entry point's init(path) and reports whether it succeeded.
func (e *Entry) Init(path string) bool {
	if e.init == nil {
		return false
	}
	cpath := CString(path)
	defer Free(cpath)
	return bool(C.clapgo_entry_init(e, cpath))
}

// Deinit calls the entry point's deinit().
func (e *Entry) Deinit() {
	if e.deinit != nil {
		C.clapgo_entry_deinit(e)
	}
}

// GetFactory resolves a factory by id, returning nil if absent.
func (e *Entry) GetFactory(id string) *Factory {
	if e.get_factory == nil {
		return nil
	}
	cid := CString(id)
	defer Free(cid)
	p := C.clapgo_entry_get_factory(e, cid)
	if p == nil {
		return nil
	}
	return (*Factory)(unsafe.Pointer(p))
}

// ClapVersion reports the entry's declared ABI version.
func (e *Entry) ClapVersion() (major, minor, revision uint32) {
	return uint32(e.clap_version.major), uint32(e.clap_version.minor), uint32(e.clap_version.revision)
}
