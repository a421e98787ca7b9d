package catalog

import (
	"github.com/rs/zerolog"

	"github.com/baconpaul/clap-go-validator/pkg/host"
)

// newScratchHost builds a throwaway Host for tests that only need one to
// satisfy the factory's create_plugin signature, not to drive a full
// lifecycle.
func newScratchHost(log zerolog.Logger) (*host.Host, func()) {
	h := host.New(log)
	return h, h.Close
}
