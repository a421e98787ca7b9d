package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baconpaul/clap-go-validator/internal/clog"
)

func TestMainThreadIdentity(t *testing.T) {
	h := New(clog.Discard())
	defer h.Close()

	assert.True(t, h.IsMainThread())
	assert.False(t, h.IsAudioThread())
}

func TestAudioThreadGuardMarksAndClears(t *testing.T) {
	h := New(clog.Discard())
	defer h.Close()

	guard, err := h.EnterAudioThread()
	require.NoError(t, err)
	assert.True(t, h.IsAudioThread())
	assert.True(t, h.IsMainThread(), "guard only adds the audio role, it does not remove main")

	guard.Close()
	assert.False(t, h.IsAudioThread())
}

func TestAudioThreadGuardRejectsNesting(t *testing.T) {
	h := New(clog.Discard())
	defer h.Close()

	guard, err := h.EnterAudioThread()
	require.NoError(t, err)
	defer guard.Close()

	_, err = h.EnterAudioThread()
	assert.ErrorIs(t, err, ErrGuardAlreadyHeld)
}

func TestFirstViolationWins(t *testing.T) {
	h := New(clog.Discard())
	defer h.Close()

	// ParamsRequestFlush must not be called from the audio thread.
	guard, err := h.EnterAudioThread()
	require.NoError(t, err)
	h.ParamsRequestFlush()
	guard.Close()

	msg, ok := h.CallbackError()
	require.True(t, ok)
	assert.Contains(t, msg, "must not be called from the audio thread")

	// A second violation must not replace the first recorded message --
	// only the very first violation is ever kept.
	guard, err = h.EnterAudioThread()
	require.NoError(t, err)
	h.ParamsRequestFlush()
	guard.Close()

	msg2, _ := h.CallbackError()
	assert.Equal(t, msg, msg2)
}

func TestRequestFlagsSetAndClear(t *testing.T) {
	h := New(clog.Discard())
	defer h.Close()

	assert.False(t, h.RestartRequested())
	h.RequestRestart()
	assert.True(t, h.RestartRequested())
	assert.False(t, h.RestartRequested(), "flag clears after read")

	h.RequestCallback()
	assert.True(t, h.CallbackRequested())
}
