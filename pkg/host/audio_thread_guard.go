package host

import (
	"errors"

	"github.com/baconpaul/clap-go-validator/internal/threadid"
)

// ErrGuardAlreadyHeld is returned by EnterAudioThread when a guard is
// already active on this host. Nesting is refused rather than left
// undefined: panicking across the C ABI boundary is unsafe, and silently
// clobbering the previous guard would hide a real bug in a test helper.
var ErrGuardAlreadyHeld = errors.New("audio thread guard already held")

// AudioThreadGuard marks the calling thread as this host's audio thread for
// its lifetime. Acquire via Host.EnterAudioThread; release via Close,
// typically deferred. Its zero value is unusable -- acquisition through
// EnterAudioThread is the only constructor.
type AudioThreadGuard struct {
	host *Host
}

// EnterAudioThread marks the current thread as h's audio thread. Callers
// that need to invoke start_processing/process/stop_processing must hold
// the returned guard for the duration of those calls.
func (h *Host) EnterAudioThread() (*AudioThreadGuard, error) {
	if !h.guardHeld.CompareAndSwap(false, true) {
		return nil, ErrGuardAlreadyHeld
	}
	h.audioThread.Store(threadid.Current())
	return &AudioThreadGuard{host: h}, nil
}

// Close releases the guard, clearing the host's audio-thread marking
// unconditionally -- including when called on an error unwind path.
func (g *AudioThreadGuard) Close() {
	g.host.audioThread.Store(0)
	g.host.guardHeld.Store(false)
}
