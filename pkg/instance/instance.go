// Package instance implements the plug-in lifecycle state machine: create,
// init, activate/deactivate, start/stop processing, process, and ordered
// teardown. Grounded directly on the reference validator's Plugin class.
package instance

import (
	"fmt"

	"github.com/baconpaul/clap-go-validator/pkg/clapabi"
	"github.com/baconpaul/clap-go-validator/pkg/host"
)

// Status is the plug-in's activation state.
type Status int

const (
	Inactive Status = iota
	ActiveAndSleeping
	ActiveAndProcessing
)

// nativePlugin is the subset of *clapabi.Plugin the lifecycle state machine
// drives. Expressed as an interface so the state machine itself can be
// exercised by tests without a real dlopen'd plug-in.
type nativePlugin interface {
	Init() bool
	Destroy()
	Activate(sampleRate float64, minFrames, maxFrames uint32) bool
	Deactivate()
	StartProcessing() bool
	StopProcessing()
	Process(p *clapabi.Process) int32
}

// Instance wraps one created plug-in and its dedicated host for as long as
// both are alive.
type Instance struct {
	host        *host.Host
	native      nativePlugin
	pluginID    string
	initialized bool
	status      Status
}

// New wraps a freshly created native plug-in. h must be dedicated to this
// instance: CLAP hosts give each plug-in instance its own host object.
func New(h *host.Host, native *clapabi.Plugin, pluginID string) *Instance {
	inst := &Instance{host: h, native: native, pluginID: pluginID, status: Inactive}
	h.SetCurrentPlugin(inst)
	return inst
}

// Native exposes the underlying plug-in vtable for tests that need direct
// access (params, state, note-ports extensions).
func (i *Instance) Native() *clapabi.Plugin {
	p, _ := i.native.(*clapabi.Plugin)
	return p
}

// Status reports the current lifecycle state.
func (i *Instance) Status() Status { return i.status }

// Host returns the host this instance was created with.
func (i *Instance) Host() *host.Host { return i.host }

// Init calls plugin.init(). Idempotent: once init has succeeded, further
// calls report true without calling the plug-in again.
func (i *Instance) Init() bool {
	if i.initialized {
		return true
	}
	ok := i.native.Init()
	if ok {
		i.initialized = true
	}
	return ok
}

// Activate transitions Inactive -> ActiveAndSleeping.
func (i *Instance) Activate(sampleRate float64, minFrames, maxFrames uint32) error {
	if !i.initialized {
		return fmt.Errorf("cannot activate an uninitialized plugin")
	}
	if i.status != Inactive {
		return fmt.Errorf("cannot activate from status %v", i.status)
	}
	if !i.native.Activate(sampleRate, minFrames, maxFrames) {
		return fmt.Errorf("plugin activate() returned false")
	}
	i.status = ActiveAndSleeping
	return nil
}

// Deactivate transitions to Inactive, implicitly stopping processing first
// if the plug-in was ActiveAndProcessing.
func (i *Instance) Deactivate() {
	if i.status == ActiveAndProcessing {
		i.StopProcessing()
	}
	if i.status == Inactive {
		return
	}
	i.native.Deactivate()
	i.status = Inactive
}

// StartProcessing transitions ActiveAndSleeping -> ActiveAndProcessing.
func (i *Instance) StartProcessing() error {
	if i.status != ActiveAndSleeping {
		return fmt.Errorf("cannot start processing from status %v", i.status)
	}
	if !i.native.StartProcessing() {
		return fmt.Errorf("plugin start_processing() returned false")
	}
	i.status = ActiveAndProcessing
	return nil
}

// StopProcessing transitions ActiveAndProcessing -> ActiveAndSleeping.
func (i *Instance) StopProcessing() {
	if i.status != ActiveAndProcessing {
		return
	}
	i.native.StopProcessing()
	i.status = ActiveAndSleeping
}

// Process calls plugin.process() if and only if the instance is
// ActiveAndProcessing; otherwise it returns CLAP_PROCESS_ERROR without
// touching the plug-in, per the ABI's own contract.
func (i *Instance) Process(p *clapabi.Process) int32 {
	if i.status != ActiveAndProcessing {
		return clapabi.ProcessError
	}
	return i.native.Process(p)
}

// Close tears the instance down along every exit path: stop processing if
// processing, deactivate if active, destroy if initialized, then detach
// from the host. Safe to call multiple times.
func (i *Instance) Close() {
	i.Deactivate()
	if i.initialized {
		i.native.Destroy()
		i.initialized = false
	}
	i.host.ClearCurrentPlugin()
}

// PluginID returns the id this instance was created with.
func (i *Instance) PluginID() string { return i.pluginID }

// newWithNative builds an Instance around an arbitrary nativePlugin,
// bypassing the cgo constructor New. Exported only to this package's tests
// via the internal nativePlugin interface.
func newWithNative(h *host.Host, native nativePlugin, pluginID string) *Instance {
	inst := &Instance{host: h, native: native, pluginID: pluginID, status: Inactive}
	h.SetCurrentPlugin(inst)
	return inst
}
