package runner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baconpaul/clap-go-validator/internal/clog"
)

func TestMatchesFilterEmptyPatternAdmitsEverything(t *testing.T) {
	assert.True(t, matchesFilter("scan-time", "", false))
	assert.True(t, matchesFilter("scan-time", "", true))
}

func TestMatchesFilterRegexIsCaseInsensitive(t *testing.T) {
	assert.True(t, matchesFilter("Process-Audio-Basic", "process-audio", false))
}

func TestMatchesFilterInvalidRegexFallsBackToLiteral(t *testing.T) {
	// "[" is an unterminated character class in regex syntax.
	assert.True(t, matchesFilter("state-[invalid]", "state-[invalid", false))
	assert.False(t, matchesFilter("state-invalid", "state-[invalid", false))
}

func TestMatchesFilterInvertIsComplementary(t *testing.T) {
	for _, name := range []string{"scan-time", "param-fuzz-basic", "descriptor-consistency"} {
		pos := matchesFilter(name, "param", false)
		neg := matchesFilter(name, "param", true)
		assert.NotEqual(t, pos, neg)
	}
}

func TestRunWithNoPathsReturnsSentinelError(t *testing.T) {
	_, err := Run(clog.Discard(), Settings{})
	assert.ErrorIs(t, err, ErrNoPaths)
}

func TestRunOnMissingLibraryCountsOneFailure(t *testing.T) {
	out, err := Run(clog.Discard(), Settings{Paths: []string{"/does/not/exist.clap"}, TestFilter: "scan-time"})
	assert.NoError(t, err)
	assert.True(t, out.Tally.HasFailures())
}
