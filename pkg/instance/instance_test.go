package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baconpaul/clap-go-validator/internal/clog"
	"github.com/baconpaul/clap-go-validator/pkg/clapabi"
	"github.com/baconpaul/clap-go-validator/pkg/host"
)

type fakePlugin struct {
	initOK          bool
	activateOK      bool
	startOK         bool
	destroyCalls    int
	deactivateCalls int
	stopCalls       int
	processCalls    int
}

func (f *fakePlugin) Init() bool    { return f.initOK }
func (f *fakePlugin) Destroy()      { f.destroyCalls++ }
func (f *fakePlugin) Deactivate()   { f.deactivateCalls++ }
func (f *fakePlugin) StopProcessing() { f.stopCalls++ }
func (f *fakePlugin) Activate(sampleRate float64, minFrames, maxFrames uint32) bool {
	return f.activateOK
}
func (f *fakePlugin) StartProcessing() bool { return f.startOK }
func (f *fakePlugin) Process(p *clapabi.Process) int32 {
	f.processCalls++
	return clapabi.ProcessContinue
}

func newTestInstance(t *testing.T, fp *fakePlugin) (*Instance, *host.Host) {
	h := host.New(clog.Discard())
	t.Cleanup(h.Close)
	return newWithNative(h, fp, "com.example.test"), h
}

func TestLifecycleHappyPath(t *testing.T) {
	fp := &fakePlugin{initOK: true, activateOK: true, startOK: true}
	inst, _ := newTestInstance(t, fp)

	require.True(t, inst.Init())
	require.NoError(t, inst.Activate(44100, 1, 512))
	assert.Equal(t, ActiveAndSleeping, inst.Status())

	require.NoError(t, inst.StartProcessing())
	assert.Equal(t, ActiveAndProcessing, inst.Status())

	status := inst.Process(nil)
	assert.Equal(t, int32(clapabi.ProcessContinue), status)
	assert.Equal(t, 1, fp.processCalls)

	inst.Close()
	assert.Equal(t, Inactive, inst.Status())
	assert.Equal(t, 1, fp.stopCalls)
	assert.Equal(t, 1, fp.deactivateCalls)
	assert.Equal(t, 1, fp.destroyCalls)
}

func TestProcessBeforeStartProcessingIsAnError(t *testing.T) {
	fp := &fakePlugin{initOK: true, activateOK: true}
	inst, _ := newTestInstance(t, fp)
	require.True(t, inst.Init())
	require.NoError(t, inst.Activate(44100, 1, 512))

	status := inst.Process(nil)
	assert.Equal(t, int32(clapabi.ProcessError), status)
	assert.Equal(t, 0, fp.processCalls, "process() must not reach a non-processing plugin")
}

func TestActivateFailureLeavesStateUnchanged(t *testing.T) {
	fp := &fakePlugin{initOK: true, activateOK: false}
	inst, _ := newTestInstance(t, fp)
	require.True(t, inst.Init())

	err := inst.Activate(44100, 1, 512)
	assert.Error(t, err)
	assert.Equal(t, Inactive, inst.Status())
}

func TestDeactivateFromProcessingImplicitlyStops(t *testing.T) {
	fp := &fakePlugin{initOK: true, activateOK: true, startOK: true}
	inst, _ := newTestInstance(t, fp)
	require.True(t, inst.Init())
	require.NoError(t, inst.Activate(44100, 1, 512))
	require.NoError(t, inst.StartProcessing())

	inst.Deactivate()
	assert.Equal(t, Inactive, inst.Status())
	assert.Equal(t, 1, fp.stopCalls)
}

func TestCloseIsIdempotent(t *testing.T) {
	fp := &fakePlugin{initOK: true, activateOK: true}
	inst, _ := newTestInstance(t, fp)
	require.True(t, inst.Init())
	require.NoError(t, inst.Activate(44100, 1, 512))

	inst.Close()
	inst.Close()
	assert.Equal(t, 1, fp.destroyCalls, "destroy must only be called once")
}
