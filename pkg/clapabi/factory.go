package clapabi

// #include "trampolines.h"
import "C"

import "unsafe"

// PluginCount reports how many descriptors the factory advertises.
func (f *Factory) PluginCount() uint32 {
	if f.get_plugin_count == nil {
		return 0
	}
	return uint32(C.clapgo_factory_get_plugin_count(f))
}

// PluginDescriptor returns the descriptor at index, or nil if the factory
// reports a null descriptor there.
func (f *Factory) PluginDescriptor(index uint32) *Descriptor {
	if f.get_plugin_descriptor == nil {
		return nil
	}
	d := C.clapgo_factory_get_plugin_descriptor(f, C.uint32_t(index))
	if d == nil {
		return nil
	}
	return (*Descriptor)(unsafe.Pointer(d))
}

// CreatePlugin constructs a plug-in instance by id, or nil on failure.
func (f *Factory) CreatePlugin(host *Host, pluginID string) *Plugin {
	if f.create_plugin == nil {
		return nil
	}
	cid := CString(pluginID)
	defer Free(cid)
	p := C.clapgo_factory_create_plugin(f, host, cid)
	if p == nil {
		return nil
	}
	return (*Plugin)(unsafe.Pointer(p))
}
