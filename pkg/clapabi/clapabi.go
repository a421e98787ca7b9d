// Package clapabi is the unsafe boundary of the validator. Every call into
// a plug-in and every trampoline the plug-in calls back into crosses cgo
// here; every other package in this module is ordinary, safe Go.
package clapabi

// #cgo CFLAGS: -I../../include
// #include <stdlib.h>
// #include <string.h>
// #include "clap/clap.h"
import "C"
import "unsafe"

// Host is the C-ABI-compatible host record handed to a plug-in. Its address
// must stay stable for as long as any plug-in holds it, so it is allocated
// with C.malloc and freed only by FreeHost.
type Host = C.clap_host_t

// Entry mirrors clap_plugin_entry_t.
type Entry = C.clap_plugin_entry_t

// Factory mirrors clap_plugin_factory_t.
type Factory = C.clap_plugin_factory_t

// Descriptor mirrors clap_plugin_descriptor_t.
type Descriptor = C.clap_plugin_descriptor_t

// Plugin mirrors clap_plugin_t, the per-instance vtable.
type Plugin = C.clap_plugin_t

// Process mirrors clap_process_t.
type Process = C.clap_process_t

// AudioBuffer mirrors clap_audio_buffer_t.
type AudioBuffer = C.clap_audio_buffer_t

// ParamInfo mirrors clap_param_info_t.
type ParamInfo = C.clap_param_info_t

// EventHeader mirrors clap_event_header_t.
type EventHeader = C.clap_event_header_t

// ParamValueEvent mirrors clap_event_param_value_t.
type ParamValueEvent = C.clap_event_param_value_t

// NotePortInfo mirrors clap_note_port_info_t.
type NotePortInfo = C.clap_note_port_info_t

// PluginParams, PluginState, PluginNotePorts mirror the like-named
// extension vtables.
type PluginParams = C.clap_plugin_params_t
type PluginState = C.clap_plugin_state_t
type PluginNotePorts = C.clap_plugin_note_ports_t

const (
	ProcessError             = C.CLAP_PROCESS_ERROR
	ProcessContinue          = C.CLAP_PROCESS_CONTINUE
	ProcessContinueIfNotQuiet = C.CLAP_PROCESS_CONTINUE_IF_NOT_QUIET
	ProcessTail              = C.CLAP_PROCESS_TAIL
	ProcessSleep             = C.CLAP_PROCESS_SLEEP

	EventParamValue = C.CLAP_EVENT_PARAM_VALUE
)

const (
	PluginFactoryID  = "clap.plugin-factory"
	ExtThreadCheck   = "clap.thread-check"
	ExtParams        = "clap.params"
	ExtState         = "clap.state"
	ExtNotePorts     = "clap.note-ports"
)

// CString allocates a C string that the caller must free with C.free.
func CString(s string) *C.char {
	return C.CString(s)
}

// GoString converts a possibly-nil C string to a Go string. Both nil and an
// empty C string map to the zero value, so callers cannot tell them apart;
// the validator treats both as absent.
func GoString(s *C.char) string {
	if s == nil {
		return ""
	}
	return C.GoString(s)
}

// Free releases memory obtained from CString.
func Free(p *C.char) {
	C.free(unsafe.Pointer(p))
}
