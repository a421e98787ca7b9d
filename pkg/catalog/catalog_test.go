package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/baconpaul/clap-go-validator/internal/clog"
	"github.com/baconpaul/clap-go-validator/pkg/result"
)

func TestUnknownLibraryTestNameFails(t *testing.T) {
	r := RunLibraryTest("does-not-exist", LibraryContext{Path: "/nonexistent", Log: clog.Discard()})
	assert.Equal(t, result.Failed, r.Status)
	assert.Contains(t, r.Detail, "not found")
}

func TestUnknownInstanceTestNameFails(t *testing.T) {
	r := RunInstanceTest("does-not-exist", InstanceContext{Log: clog.Discard()})
	assert.Equal(t, result.Failed, r.Status)
	assert.Contains(t, r.Detail, "not found")
}

func TestScanTimeFailsOnMissingLibrary(t *testing.T) {
	r := RunLibraryTest("scan-time", LibraryContext{Path: "/definitely/does/not/exist.clap", Log: clog.Discard()})
	assert.Equal(t, result.Failed, r.Status)
}

func TestCatalogCompletenessMatchesSpec(t *testing.T) {
	libNames := map[string]bool{}
	for _, tc := range LibraryTestCases() {
		libNames[tc.Name] = true
	}
	for _, want := range []string{
		"scan-time", "scan-rtld-now", "query-factory-nonexistent",
		"create-id-with-trailing-garbage", "preset-discovery-crawl",
		"preset-discovery-descriptor-consistency", "preset-discovery-load",
	} {
		assert.True(t, libNames[want], "missing library test %q", want)
	}

	instNames := map[string]bool{}
	for _, tc := range InstanceTestCases() {
		instNames[tc.Name] = true
	}
	for _, want := range []string{
		"descriptor-consistency", "features-categories", "features-duplicates",
		"process-audio-out-of-place-basic", "process-note-out-of-place-basic",
		"process-note-inconsistent", "param-conversions", "param-fuzz-basic",
		"param-set-wrong-namespace", "state-invalid", "state-reproducibility-basic",
		"state-reproducibility-null-cookies", "state-reproducibility-flush",
		"state-buffered-streams",
	} {
		assert.True(t, instNames[want], "missing instance test %q", want)
	}
}
