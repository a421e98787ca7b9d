package clapabi

/*
#include <stdint.h>
#include <stdbool.h>
#include <stdlib.h>
#include "clap/clap.h"

extern uint32_t clapgoEventsSize(const clap_input_events_t *list);
extern const clap_event_header_t *clapgoEventsGet(const clap_input_events_t *list, uint32_t index);
extern bool clapgoEventsTryPush(const clap_output_events_t *list, const clap_event_header_t *event);

static void clapgo_install_input_events(clap_input_events_t *l) {
	l->size = clapgoEventsSize;
	l->get = clapgoEventsGet;
}

static void clapgo_install_output_events(clap_output_events_t *l) {
	l->try_push = clapgoEventsTryPush;
}
*/
import "C"

import (
	"sync"
	"unsafe"
)

// EventList is a fixed, ordered set of clap_event_header_t-prefixed events
// (here exclusively clap_event_param_value_t) exposed to a plug-in as a
// clap_input_events_t. Built fresh per process() call; the validator never
// mutates one after wiring it into a Process.
type EventList struct {
	events []*C.clap_event_param_value_t
}

// NewParamValueEvent builds a single CLAP_EVENT_PARAM_VALUE event.
func NewParamValueEvent(spaceID uint16, paramID uint32, value float64, cookie unsafe.Pointer) *C.clap_event_param_value_t {
	ev := &C.clap_event_param_value_t{}
	ev.header.size = C.uint32_t(unsafe.Sizeof(*ev))
	ev.header.time = 0
	ev.header.space_id = C.uint16_t(spaceID)
	ev.header._type = C.uint16_t(EventParamValue)
	ev.header.flags = 0
	ev.param_id = C.uint32_t(paramID)
	ev.cookie = cookie
	ev.note_id = -1
	ev.port_index = -1
	ev.channel = -1
	ev.key = -1
	ev.value = C.double(value)
	return ev
}

// NewEventList wraps a slice of param-value events for delivery in a single
// process() call.
func NewEventList(events []*C.clap_event_param_value_t) *EventList {
	return &EventList{events: events}
}

var (
	inputListsMu sync.RWMutex
	inputLists   = map[uintptr]*EventList{}
	inputNextID  uintptr
)

// AsInputEvents allocates a C-stable clap_input_events_t view over l. The
// returned release func must run once the owning Process call returns.
func (l *EventList) AsInputEvents() (*C.clap_input_events_t, func()) {
	c := (*C.clap_input_events_t)(C.malloc(C.sizeof_clap_input_events_t))
	*c = C.clap_input_events_t{}

	inputListsMu.Lock()
	inputNextID++
	id := inputNextID
	inputLists[id] = l
	inputListsMu.Unlock()

	c.ctx = unsafe.Pointer(id) //nolint:govet // integer handle
	C.clapgo_install_input_events(c)
	release := func() {
		inputListsMu.Lock()
		delete(inputLists, id)
		inputListsMu.Unlock()
		C.free(unsafe.Pointer(c))
	}
	return c, release
}

// EmptyOutputEvents returns a clap_output_events_t that rejects every push
// -- the validator never needs to inspect plug-in-emitted events today, but
// still must hand the plug-in a well-formed, harmless sink.
func EmptyOutputEvents() (*C.clap_output_events_t, func()) {
	c := (*C.clap_output_events_t)(C.malloc(C.sizeof_clap_output_events_t))
	*c = C.clap_output_events_t{}
	C.clapgo_install_output_events(c)
	release := func() { C.free(unsafe.Pointer(c)) }
	return c, release
}

//export clapgoEventsSize
func clapgoEventsSize(list *C.clap_input_events_t) C.uint32_t {
	id := uintptr(list.ctx)
	inputListsMu.RLock()
	l, ok := inputLists[id]
	inputListsMu.RUnlock()
	if !ok {
		return 0
	}
	return C.uint32_t(len(l.events))
}

//export clapgoEventsGet
func clapgoEventsGet(list *C.clap_input_events_t, index C.uint32_t) *C.clap_event_header_t {
	id := uintptr(list.ctx)
	inputListsMu.RLock()
	l, ok := inputLists[id]
	inputListsMu.RUnlock()
	if !ok || int(index) >= len(l.events) {
		return nil
	}
	return &l.events[index].header
}

//export clapgoEventsTryPush
func clapgoEventsTryPush(list *C.clap_output_events_t, event *C.clap_event_header_t) C.bool {
	return false
}
