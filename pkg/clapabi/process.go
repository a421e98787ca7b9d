package clapabi

/*
#include <stdlib.h>
#include "clap/clap.h"
*/
import "C"

import "unsafe"

// AudioBlock is an owned, C-stable mono or multi-channel float32 buffer
// suitable for wiring into a clap_audio_buffer_t as either an input or an
// output. Allocated with C.malloc so its channel pointers remain valid for
// the duration of a process() call without pinning Go memory across cgo.
type AudioBlock struct {
	channels [][]float32 // Go-visible view for filling/reading
	cData    **C.float
	cBuf     *C.clap_audio_buffer_t
	frames   uint32
}

// NewAudioBlock allocates an owned numChannels x numFrames float32 buffer.
func NewAudioBlock(numChannels, numFrames uint32) *AudioBlock {
	ptrArray := (**C.float)(C.malloc(C.size_t(numChannels) * C.size_t(unsafe.Sizeof((*C.float)(nil)))))
	chans := make([][]float32, numChannels)
	ptrSlice := unsafe.Slice(ptrArray, int(numChannels))
	for i := range chans {
		cChan := (*C.float)(C.malloc(C.size_t(numFrames) * C.size_t(unsafe.Sizeof(C.float(0)))))
		ptrSlice[i] = cChan
		chans[i] = unsafe.Slice((*float32)(unsafe.Pointer(cChan)), int(numFrames))
	}

	buf := (*C.clap_audio_buffer_t)(C.malloc(C.sizeof_clap_audio_buffer_t))
	*buf = C.clap_audio_buffer_t{}
	buf.data32 = ptrArray
	buf.channel_count = C.uint32_t(numChannels)

	return &AudioBlock{channels: chans, cData: ptrArray, cBuf: buf, frames: numFrames}
}

// Channel returns a mutable view of channel i for filling/inspecting.
func (b *AudioBlock) Channel(i int) []float32 { return b.channels[i] }

// NumChannels reports the channel count.
func (b *AudioBlock) NumChannels() int { return len(b.channels) }

// Close releases all memory owned by the block.
func (b *AudioBlock) Close() {
	ptrSlice := unsafe.Slice(b.cData, len(b.channels))
	for _, p := range ptrSlice {
		C.free(unsafe.Pointer(p))
	}
	C.free(unsafe.Pointer(b.cData))
	C.free(unsafe.Pointer(b.cBuf))
}

// BuildProcess assembles a clap_process_t from one input and one output
// block plus an event list, matching the out-of-place smoke-test shape
// every process-audio/process-note test in the catalog uses.
func BuildProcess(framesCount uint32, in, out *AudioBlock, inEvents *C.clap_input_events_t, outEvents *C.clap_output_events_t) *Process {
	p := &Process{}
	p.frames_count = C.uint32_t(framesCount)
	if in != nil {
		p.audio_inputs = in.cBuf
		p.audio_inputs_count = 1
	}
	if out != nil {
		p.audio_outputs = out.cBuf
		p.audio_outputs_count = 1
	}
	p.in_events = inEvents
	p.out_events = outEvents
	return p
}
