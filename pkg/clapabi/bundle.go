package clapabi

import "strings"

func isBundlePath(path string) bool {
	return strings.HasSuffix(path, ".clap")
}
