package clapabi

// #include "trampolines.h"
import "C"
