// SPDX-License-Identifier: MIT
package audio

import (
	"errors"
	"testing"
)

// handleCounter tracks acquired and released platform handles.
type handleCounter struct {
	acquired int
	released int
}

func (h *handleCounter) acquire() { h.acquired++ }
func (h *handleCounter) release() { h.released++ }

type fakeDevice struct {
	id       string
	name     string
	idErr    error
	storeErr error
	nameErr  error
	itemErr  error
}

type fakeSubsystem struct {
	devices  map[Flow][]fakeDevice
	enumErr  map[Flow]error
	countErr map[Flow]error
	closeErr error

	handles   handleCounter
	execCalls int
	closed    int
}

func newFakeSubsystem() *fakeSubsystem {
	return &fakeSubsystem{
		devices:  make(map[Flow][]fakeDevice),
		enumErr:  make(map[Flow]error),
		countErr: make(map[Flow]error),
	}
}

func (s *fakeSubsystem) exec(fn func()) {
	s.execCalls++
	fn()
}

func (s *fakeSubsystem) activeEndpoints(flow Flow) (collection, error) {
	if err := s.enumErr[flow]; err != nil {
		return nil, err
	}
	s.handles.acquire()
	return &fakeCollection{sys: s, flow: flow}, nil
}

func (s *fakeSubsystem) close() error {
	s.closed++
	return s.closeErr
}

type fakeCollection struct {
	sys  *fakeSubsystem
	flow Flow
}

func (c *fakeCollection) count() (int, error) {
	if err := c.sys.countErr[c.flow]; err != nil {
		return 0, err
	}
	return len(c.sys.devices[c.flow]), nil
}

func (c *fakeCollection) item(i int) (device, error) {
	d := c.sys.devices[c.flow][i]
	if d.itemErr != nil {
		return nil, d.itemErr
	}
	c.sys.handles.acquire()
	return &fakeDeviceHandle{sys: c.sys, d: d}, nil
}

func (c *fakeCollection) release() { c.sys.handles.release() }

type fakeDeviceHandle struct {
	sys *fakeSubsystem
	d   fakeDevice
}

func (h *fakeDeviceHandle) id() (string, error) {
	if h.d.idErr != nil {
		return "", h.d.idErr
	}
	return h.d.id, nil
}

func (h *fakeDeviceHandle) openPropertyStore() (propertyStore, error) {
	if h.d.storeErr != nil {
		return nil, h.d.storeErr
	}
	h.sys.handles.acquire()
	return &fakePropertyStore{sys: h.sys, d: h.d}, nil
}

func (h *fakeDeviceHandle) release() { h.sys.handles.release() }

type fakePropertyStore struct {
	sys *fakeSubsystem
	d   fakeDevice
}

func (p *fakePropertyStore) friendlyName() (string, error) {
	if p.d.nameErr != nil {
		return "", p.d.nameErr
	}
	return p.d.name, nil
}

func (p *fakePropertyStore) release() { p.sys.handles.release() }

// setupFakePlatform makes NewEnumerator use sys for the duration of the test.
func setupFakePlatform(t *testing.T, sys *fakeSubsystem) {
	t.Helper()
	orig := openSubsystem
	openSubsystem = func() (subsystem, error) { return sys, nil }
	t.Cleanup(func() { openSubsystem = orig })
}

// newFakeEnumerator returns an enumerator over sys, closed at test end.
func newFakeEnumerator(t *testing.T, sys *fakeSubsystem) *Enumerator {
	t.Helper()
	setupFakePlatform(t, sys)
	e, err := NewEnumerator()
	if err != nil {
		t.Fatalf("NewEnumerator error: %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e
}

var errMock = errors.New("mock platform error")
