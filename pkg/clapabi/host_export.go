package clapabi

/*
#include <stdint.h>
#include <stdbool.h>
#include <stdlib.h>
#include "clap/clap.h"

extern const void *clapgoGetExtension(const clap_host_t *host, const char *extension_id);
extern void clapgoRequestRestart(const clap_host_t *host);
extern void clapgoRequestProcess(const clap_host_t *host);
extern void clapgoRequestCallback(const clap_host_t *host);

static void clapgo_install_host_vtable(clap_host_t *host) {
	host->get_extension = clapgoGetExtension;
	host->request_restart = clapgoRequestRestart;
	host->request_process = clapgoRequestProcess;
	host->request_callback = clapgoRequestCallback;
}

extern bool clapgoIsMainThread(const clap_host_t *host);
extern bool clapgoIsAudioThread(const clap_host_t *host);

static clap_host_thread_check_t clapgo_thread_check_vtable = {
	clapgoIsMainThread,
	clapgoIsAudioThread,
};

extern void clapgoParamsRescan(const clap_host_t *host, uint32_t flags);
extern void clapgoParamsClear(const clap_host_t *host, uint32_t param_id, uint32_t flags);
extern void clapgoParamsRequestFlush(const clap_host_t *host);

static clap_host_params_t clapgo_params_vtable = {
	clapgoParamsRescan,
	clapgoParamsClear,
	clapgoParamsRequestFlush,
};

extern void clapgoStateMarkDirty(const clap_host_t *host);

static clap_host_state_t clapgo_state_vtable = {
	clapgoStateMarkDirty,
};

static void *clapgo_thread_check_ptr(void) { return &clapgo_thread_check_vtable; }
static void *clapgo_params_ptr(void) { return &clapgo_params_vtable; }
static void *clapgo_state_ptr(void) { return &clapgo_state_vtable; }
*/
import "C"

import "unsafe"

// AllocHost allocates a C-stable clap_host_t, installs the trampoline
// vtable, and binds it to cb via the handle registry. The returned pointer
// must be released with FreeHost once no plug-in can call back into it.
func AllocHost(cb HostCallbacks, name, vendor, url, version string) *Host {
	h := (*Host)(C.malloc(C.sizeof_clap_host_t))
	*h = Host{}
	h.clap_version.major = 1
	h.clap_version.minor = 2
	h.clap_version.revision = 1
	h.name = CString(name)
	h.vendor = CString(vendor)
	h.url = CString(url)
	h.version = CString(version)
	id := RegisterHost(cb)
	h.host_data = unsafe.Pointer(id) //nolint:govet // integer handle, never a live Go pointer
	C.clapgo_install_host_vtable(h)
	return h
}

// FreeHost releases a host allocated by AllocHost and unregisters its
// callback binding.
func FreeHost(h *Host) {
	id := uintptr(h.host_data)
	UnregisterHost(id)
	Free(h.name)
	Free(h.vendor)
	Free(h.url)
	Free(h.version)
	C.free(unsafe.Pointer(h))
}

// ThreadCheckExtensionHandle registers and returns the handle for the
// static clap.thread-check host extension vtable.
func ThreadCheckExtensionHandle() uintptr {
	return RegisterExtension((*C.clap_host_thread_check_t)(C.clapgo_thread_check_ptr()))
}

// ParamsExtensionHandle registers and returns the handle for the static
// clap.params host extension vtable.
func ParamsExtensionHandle() uintptr {
	return RegisterExtension((*C.clap_host_params_t)(C.clapgo_params_ptr()))
}

// StateExtensionHandle registers and returns the handle for the static
// clap.state host extension vtable.
func StateExtensionHandle() uintptr {
	return RegisterExtension((*C.clap_host_state_t)(C.clapgo_state_ptr()))
}

func hostCallbacks(host *C.clap_host_t) HostCallbacks {
	if host == nil {
		return nil
	}
	cb, _ := hosts.get(uintptr(host.host_data))
	return cb
}

//export clapgoGetExtension
func clapgoGetExtension(host *C.clap_host_t, extensionID *C.char) unsafe.Pointer {
	cb := hostCallbacks(host)
	if cb == nil {
		return nil
	}
	id := cb.GetExtension(C.GoString(extensionID))
	if id == 0 {
		return nil
	}
	v, ok := exts.get(id)
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case *C.clap_host_thread_check_t:
		return unsafe.Pointer(t)
	case *C.clap_host_params_t:
		return unsafe.Pointer(t)
	case *C.clap_host_state_t:
		return unsafe.Pointer(t)
	default:
		return nil
	}
}

//export clapgoRequestRestart
func clapgoRequestRestart(host *C.clap_host_t) {
	if cb := hostCallbacks(host); cb != nil {
		cb.RequestRestart()
	}
}

//export clapgoRequestProcess
func clapgoRequestProcess(host *C.clap_host_t) {
	// Intentionally a no-op: the validator never schedules real-time
	// processing on the plug-in's behalf.
}

//export clapgoRequestCallback
func clapgoRequestCallback(host *C.clap_host_t) {
	if cb := hostCallbacks(host); cb != nil {
		cb.RequestCallback()
	}
}

// ThreadRoleQuerier is implemented by pkg/host to answer the thread-check
// extension without the host needing to be looked up twice per call.
type ThreadRoleQuerier interface {
	IsMainThread() bool
	IsAudioThread() bool
}

//export clapgoIsMainThread
func clapgoIsMainThread(host *C.clap_host_t) C.bool {
	if q, ok := hostCallbacks(host).(ThreadRoleQuerier); ok {
		return C.bool(q.IsMainThread())
	}
	return false
}

//export clapgoIsAudioThread
func clapgoIsAudioThread(host *C.clap_host_t) C.bool {
	if q, ok := hostCallbacks(host).(ThreadRoleQuerier); ok {
		return C.bool(q.IsAudioThread())
	}
	return false
}

// ParamsHostExtension is implemented by pkg/host to back clap.params's
// host-side obligations.
type ParamsHostExtension interface {
	ParamsRescan(flags uint32)
	ParamsClear(paramID, flags uint32)
	ParamsRequestFlush()
}

//export clapgoParamsRescan
func clapgoParamsRescan(host *C.clap_host_t, flags C.uint32_t) {
	if p, ok := hostCallbacks(host).(ParamsHostExtension); ok {
		p.ParamsRescan(uint32(flags))
	}
}

//export clapgoParamsClear
func clapgoParamsClear(host *C.clap_host_t, paramID, flags C.uint32_t) {
	if p, ok := hostCallbacks(host).(ParamsHostExtension); ok {
		p.ParamsClear(uint32(paramID), uint32(flags))
	}
}

//export clapgoParamsRequestFlush
func clapgoParamsRequestFlush(host *C.clap_host_t) {
	if p, ok := hostCallbacks(host).(ParamsHostExtension); ok {
		p.ParamsRequestFlush()
	}
}

// StateHostExtension is implemented by pkg/host to back clap.state's
// host-side obligations.
type StateHostExtension interface {
	StateMarkDirty()
}

//export clapgoStateMarkDirty
func clapgoStateMarkDirty(host *C.clap_host_t) {
	if s, ok := hostCallbacks(host).(StateHostExtension); ok {
		s.StateMarkDirty()
	}
}
