// Package host implements the validator's side of the CLAP host contract:
// identity strings, extension lookup, thread-role bookkeeping, and the
// first-violation-wins error slot that the thread-check/params/state host
// extensions report through.
package host

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/baconpaul/clap-go-validator/internal/threadid"
	"github.com/baconpaul/clap-go-validator/pkg/clapabi"
)

const (
	hostName    = "clap-validator"
	hostVendor  = "CLAP"
	hostURL     = "https://github.com/free-audio/clap"
	hostVersion = "1.0.0"
)

// Host is one validator-side host object. One is created per plug-in
// instance and lives for that instance's entire life.
type Host struct {
	log zerolog.Logger

	native *clapabi.Host

	mainThreadID uint64
	audioThread  atomic.Uint64 // 0 = unset; OS thread ids are never 0 in practice on our targets
	guardHeld    atomic.Bool

	errMu   sync.Mutex
	callErr string

	restartRequested  atomic.Bool
	callbackRequested atomic.Bool

	currentMu     sync.Mutex
	currentPlugin any // non-owning; set/cleared by pkg/instance around its lifetime
}

// New constructs a Host, locking the calling goroutine to its current OS
// thread so the captured "main thread" identity stays valid for the life
// of the host -- Go's scheduler would otherwise migrate the goroutine
// between calls, silently invalidating a naive thread-id comparison.
func New(log zerolog.Logger) *Host {
	runtime.LockOSThread()
	h := &Host{
		log:          log,
		mainThreadID: threadid.Current(),
	}
	h.native = clapabi.AllocHost(h, hostName, hostVendor, hostURL, hostVersion)
	return h
}

// Native returns the C-ABI host struct to hand to a plug-in factory.
func (h *Host) Native() *clapabi.Host { return h.native }

// Close releases the native host struct and unlocks the OS thread. Must be
// called exactly once, after every plug-in holding this host has been
// destroyed.
func (h *Host) Close() {
	clapabi.FreeHost(h.native)
	runtime.UnlockOSThread()
}

// GetExtension implements clapabi.HostCallbacks.
func (h *Host) GetExtension(extensionID string) uintptr {
	switch extensionID {
	case clapabi.ExtThreadCheck:
		return clapabi.ThreadCheckExtensionHandle()
	case clapabi.ExtParams:
		return clapabi.ParamsExtensionHandle()
	case clapabi.ExtState:
		return clapabi.StateExtensionHandle()
	default:
		return 0
	}
}

// RequestRestart implements clapabi.HostCallbacks.
func (h *Host) RequestRestart() {
	h.restartRequested.Store(true)
}

// RequestCallback implements clapabi.HostCallbacks.
func (h *Host) RequestCallback() {
	h.callbackRequested.Store(true)
}

// IsMainThread implements clapabi.ThreadRoleQuerier.
func (h *Host) IsMainThread() bool {
	return threadid.Current() == h.mainThreadID
}

// IsAudioThread implements clapabi.ThreadRoleQuerier.
func (h *Host) IsAudioThread() bool {
	return h.audioThread.Load() == threadid.Current() && h.audioThread.Load() != 0
}

// ParamsRescan implements clapabi.ParamsHostExtension.
func (h *Host) ParamsRescan(flags uint32) {
	h.assertMainThread("clap_host_params.rescan")
}

// ParamsClear implements clapabi.ParamsHostExtension.
func (h *Host) ParamsClear(paramID, flags uint32) {
	h.assertMainThread("clap_host_params.clear")
}

// ParamsRequestFlush implements clapabi.ParamsHostExtension.
func (h *Host) ParamsRequestFlush() {
	h.assertNotAudioThread("clap_host_params.request_flush")
}

// StateMarkDirty implements clapabi.StateHostExtension.
func (h *Host) StateMarkDirty() {
	h.assertMainThread("clap_host_state.mark_dirty")
}

// RestartRequested reports and clears the restart-requested flag.
func (h *Host) RestartRequested() bool {
	return h.restartRequested.Swap(false)
}

// CallbackRequested reports and clears the callback-requested flag.
func (h *Host) CallbackRequested() bool {
	return h.callbackRequested.Swap(false)
}

// DrainMainThreadCallbacks clears the callback-requested flag without
// calling back into the plug-in's on_main_thread. The reference
// implementation this is ported from leaves that dispatch unimplemented
// (its handleCallbacksOnce body is a stub); this keeps the same shape
// rather than inventing dispatch semantics nothing in the corpus specifies.
func (h *Host) DrainMainThreadCallbacks() {
	h.callbackRequested.Store(false)
}

// CallbackError returns the first recorded thread-discipline violation for
// this host, if any.
func (h *Host) CallbackError() (string, bool) {
	h.errMu.Lock()
	defer h.errMu.Unlock()
	if h.callErr == "" {
		return "", false
	}
	return h.callErr, true
}

func (h *Host) assertMainThread(fn string) {
	if h.IsMainThread() {
		return
	}
	h.recordViolation(fmt.Sprintf("%s must be called from the main thread", fn))
}

func (h *Host) assertNotAudioThread(fn string) {
	if !h.IsAudioThread() {
		return
	}
	h.recordViolation(fmt.Sprintf("%s must not be called from the audio thread", fn))
}

// SetCurrentPlugin records a non-owning back-pointer to the instance this
// host currently serves. Never a second strong reference -- instance.Close
// clears it with ClearCurrentPlugin before dropping its own reference to h.
func (h *Host) SetCurrentPlugin(p any) {
	h.currentMu.Lock()
	h.currentPlugin = p
	h.currentMu.Unlock()
}

// ClearCurrentPlugin severs the back-pointer set by SetCurrentPlugin.
func (h *Host) ClearCurrentPlugin() {
	h.currentMu.Lock()
	h.currentPlugin = nil
	h.currentMu.Unlock()
}

func (h *Host) recordViolation(msg string) {
	h.errMu.Lock()
	defer h.errMu.Unlock()
	if h.callErr == "" {
		h.callErr = msg
	}
	h.log.Warn().Str("violation", msg).Msg("host thread-discipline violation")
}
