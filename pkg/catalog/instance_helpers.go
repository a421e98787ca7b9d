package catalog

import (
	"fmt"

	"github.com/baconpaul/clap-go-validator/pkg/clapabi"
	"github.com/baconpaul/clap-go-validator/pkg/host"
	"github.com/baconpaul/clap-go-validator/pkg/instance"
)

// openInstance creates and initializes a fresh plugin instance with its own
// dedicated host, the shape every CLAP host must give each instance. The
// returned close func tears both down in order.
func openInstance(ctx InstanceContext) (*instance.Instance, func(), error) {
	h := host.New(ctx.Log)
	native, err := ctx.Lib.CreatePlugin(h, ctx.PluginID)
	if err != nil {
		h.Close()
		return nil, nil, err
	}
	inst := instance.New(h, native, ctx.PluginID)
	if !inst.Init() {
		inst.Close()
		h.Close()
		return nil, nil, fmt.Errorf("plugin %q failed to initialize", ctx.PluginID)
	}
	closeFn := func() {
		inst.Close()
		h.Close()
	}
	return inst, closeFn, nil
}

// activateAndStart is the common activate+start_processing preamble the
// process-* and param-fuzz-basic tests share.
func activateAndStart(inst *instance.Instance, h *host.Host, sampleRate float64, maxFrames uint32) (*host.AudioThreadGuard, error) {
	if err := inst.Activate(sampleRate, 1, maxFrames); err != nil {
		return nil, err
	}
	guard, err := h.EnterAudioThread()
	if err != nil {
		return nil, err
	}
	if err := inst.StartProcessing(); err != nil {
		guard.Close()
		return nil, err
	}
	return guard, nil
}

func finite(samples []float32) bool {
	for _, s := range samples {
		if s != s { // NaN
			return false
		}
		if s > 3.4e38 || s < -3.4e38 {
			return false
		}
	}
	return true
}

func smokeProcessOnce(inst *instance.Instance, frames uint32) (int32, *clapabi.AudioBlock, error) {
	in := clapabi.NewAudioBlock(1, frames)
	out := clapabi.NewAudioBlock(1, frames)
	defer in.Close()

	ramp := in.Channel(0)
	for i := range ramp {
		ramp[i] = float32(i) / float32(len(ramp))
	}

	inEvents, releaseIn := clapabi.NewEventList(nil).AsInputEvents()
	defer releaseIn()
	outEvents, releaseOut := clapabi.EmptyOutputEvents()
	defer releaseOut()

	proc := clapabi.BuildProcess(frames, in, out, inEvents, outEvents)
	status := inst.Process(proc)
	return status, out, nil
}
