package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusStringRoundTrip(t *testing.T) {
	cases := map[Status]string{
		Success: "success",
		Failed:  "failed",
		Crashed: "crashed",
		Skipped: "skipped",
		Warning: "warning",
	}
	for status, want := range cases {
		assert.Equal(t, want, status.String())
	}
}

func TestIsFailedOrWarning(t *testing.T) {
	assert.False(t, Success.IsFailedOrWarning())
	assert.False(t, Skipped.IsFailedOrWarning())
	assert.True(t, Failed.IsFailedOrWarning())
	assert.True(t, Crashed.IsFailedOrWarning())
	assert.True(t, Warning.IsFailedOrWarning())
}

func TestTallyComputesFailedAsFailurePlusCrash(t *testing.T) {
	tally := NewTally()
	tally.Add(Pass("a", "d"))
	tally.Add(Fail("b", "d", "because"))
	tally.Add(Crash("c", "d", "panic"))
	tally.Add(Skip("e", "d", "n/a"))
	tally.Add(Warn("f", "d", "slow"))

	assert.Equal(t, 1, tally.Passed)
	assert.Equal(t, 2, tally.Failed)
	assert.Equal(t, 1, tally.Skipped)
	assert.Equal(t, 1, tally.Warnings)
	assert.Equal(t, 5, tally.Total())
	assert.True(t, tally.HasFailures())
}
