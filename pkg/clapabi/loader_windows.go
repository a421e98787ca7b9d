//go:build windows

package clapabi

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Module is an opened plug-in DLL.
type Module struct {
	handle windows.Handle
}

// OpenModule loads path via LoadLibraryW.
func OpenModule(path string) (*Module, error) {
	h, err := windows.LoadLibrary(path)
	if err != nil {
		return nil, fmt.Errorf("LoadLibraryW %q: %w", path, err)
	}
	return &Module{handle: h}, nil
}

// OpenModuleNow is identical to OpenModule on Windows: there is no lazy
// binding mode to force eager.
func OpenModuleNow(path string) (*Module, error) {
	return OpenModule(path)
}

// Symbol resolves a symbol by name, returning nil if absent.
func (m *Module) Symbol(name string) unsafe.Pointer {
	addr, err := windows.GetProcAddress(m.handle, name)
	if err != nil {
		return nil
	}
	return unsafe.Pointer(addr)
}

// Close releases the module.
func (m *Module) Close() error {
	return windows.FreeLibrary(m.handle)
}

// EntryFromSymbol reinterprets a resolved clap_entry symbol as an Entry.
func EntryFromSymbol(p unsafe.Pointer) *Entry {
	return (*Entry)(p)
}
