package clapabi

// #include "trampolines.h"
import "C"

import "unsafe"

// Init calls plugin.init(plugin).
func (p *Plugin) Init() bool {
	if p.init == nil {
		return false
	}
	return bool(C.clapgo_plugin_init(p))
}

// Destroy calls plugin.destroy(plugin).
func (p *Plugin) Destroy() {
	if p.destroy != nil {
		C.clapgo_plugin_destroy(p)
	}
}

// Activate calls plugin.activate.
func (p *Plugin) Activate(sampleRate float64, minFrames, maxFrames uint32) bool {
	if p.activate == nil {
		return false
	}
	return bool(C.clapgo_plugin_activate(p, C.double(sampleRate), C.uint32_t(minFrames), C.uint32_t(maxFrames)))
}

// Deactivate calls plugin.deactivate.
func (p *Plugin) Deactivate() {
	if p.deactivate != nil {
		C.clapgo_plugin_deactivate(p)
	}
}

// StartProcessing calls plugin.start_processing, or reports true if the
// plug-in does not implement it -- the ABI treats the callback as optional
// and success-by-default.
func (p *Plugin) StartProcessing() bool {
	if p.start_processing == nil {
		return true
	}
	return bool(C.clapgo_plugin_start_processing(p))
}

// StopProcessing calls plugin.stop_processing.
func (p *Plugin) StopProcessing() {
	if p.stop_processing != nil {
		C.clapgo_plugin_stop_processing(p)
	}
}

// Reset calls plugin.reset.
func (p *Plugin) Reset() {
	if p.reset != nil {
		C.clapgo_plugin_reset(p)
	}
}

// Process calls plugin.process and returns the raw status code.
func (p *Plugin) Process(proc *Process) int32 {
	if p.process == nil {
		return ProcessError
	}
	return int32(C.clapgo_plugin_process(p, proc))
}

// GetExtension calls plugin.get_extension(plugin, id).
func (p *Plugin) GetExtension(id string) unsafe.Pointer {
	if p.get_extension == nil {
		return nil
	}
	cid := CString(id)
	defer Free(cid)
	return unsafe.Pointer(C.clapgo_plugin_get_extension(p, cid))
}

// Descriptor returns the plug-in's self-reported descriptor.
func (p *Plugin) Descriptor() *Descriptor {
	if p.desc == nil {
		return nil
	}
	return (*Descriptor)(unsafe.Pointer(p.desc))
}

// Params returns the clap.params extension vtable, or nil.
func (p *Plugin) Params() *PluginParams {
	ptr := p.GetExtension(ExtParams)
	if ptr == nil {
		return nil
	}
	return (*PluginParams)(ptr)
}

// State returns the clap.state extension vtable, or nil.
func (p *Plugin) State() *PluginState {
	ptr := p.GetExtension(ExtState)
	if ptr == nil {
		return nil
	}
	return (*PluginState)(ptr)
}

// NotePorts returns the clap.note-ports extension vtable, or nil.
func (p *Plugin) NotePorts() *PluginNotePorts {
	ptr := p.GetExtension(ExtNotePorts)
	if ptr == nil {
		return nil
	}
	return (*PluginNotePorts)(ptr)
}

// Count calls params.count(plugin).
func (pp *PluginParams) Count(p *Plugin) uint32 {
	if pp.count == nil {
		return 0
	}
	return uint32(C.clapgo_params_count(pp, p))
}

// GetInfo calls params.get_info(plugin, index, &out).
func (pp *PluginParams) GetInfo(p *Plugin, index uint32) (ParamInfo, bool) {
	var info ParamInfo
	if pp.get_info == nil {
		return info, false
	}
	ok := bool(C.clapgo_params_get_info(pp, p, C.uint32_t(index), &info))
	return info, ok
}

// GetValue calls params.get_value(plugin, id, &out).
func (pp *PluginParams) GetValue(p *Plugin, id uint32) (float64, bool) {
	var v C.double
	if pp.get_value == nil {
		return 0, false
	}
	ok := bool(C.clapgo_params_get_value(pp, p, C.uint32_t(id), &v))
	return float64(v), ok
}

// Flush calls params.flush(plugin, in, out).
func (pp *PluginParams) Flush(p *Plugin, in *C.clap_input_events_t, out *C.clap_output_events_t) {
	if pp.flush != nil {
		C.clapgo_params_flush(pp, p, in, out)
	}
}

// Save calls state.save(plugin, stream).
func (ps *PluginState) Save(p *Plugin, stream *C.clap_ostream_t) bool {
	if ps.save == nil {
		return false
	}
	return bool(C.clapgo_state_save(ps, p, stream))
}

// Load calls state.load(plugin, stream).
func (ps *PluginState) Load(p *Plugin, stream *C.clap_istream_t) bool {
	if ps.load == nil {
		return false
	}
	return bool(C.clapgo_state_load(ps, p, stream))
}

// Count calls note_ports.count(plugin, isInput).
func (np *PluginNotePorts) Count(p *Plugin, isInput bool) uint32 {
	if np.count == nil {
		return 0
	}
	return uint32(C.clapgo_note_ports_count(np, p, C.bool(isInput)))
}
