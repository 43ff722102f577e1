// SPDX-License-Identifier: MIT
//go:build windows

package audio

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"
	"github.com/moutend/go-wca/pkg/wca"
	"golang.org/x/sys/windows"
)

// sFalse is returned by CoInitializeEx when COM is already initialised on
// the calling thread. The call must still be balanced by CoUninitialize.
const sFalse = 0x00000001

var procPropVariantClear = windows.NewLazySystemDLL("ole32.dll").NewProc("PropVariantClear")

// wcaSubsystem owns an IMMDeviceEnumerator. COM objects are bound to the
// thread that created them, so all calls run on one goroutine locked to its
// OS thread for the lifetime of the subsystem.
type wcaSubsystem struct {
	mmde      *wca.IMMDeviceEnumerator
	calls     chan func()
	done      chan struct{}
	closeOnce sync.Once
}

func newSubsystem() (subsystem, error) {
	s := &wcaSubsystem{
		calls: make(chan func()),
		done:  make(chan struct{}),
	}

	ready := make(chan error, 1)
	go s.run(ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return s, nil
}

// run is the COM thread. It reports construction status on ready, then
// serves calls until the channel is closed.
func (s *wcaSubsystem) run(ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(s.done)

	if err := coInitialize(); err != nil {
		ready <- fmt.Errorf("failed to initialize COM: %w", err)
		return
	}
	defer ole.CoUninitialize()

	var mmde *wca.IMMDeviceEnumerator
	if err := wca.CoCreateInstance(wca.CLSID_MMDeviceEnumerator, 0, wca.CLSCTX_ALL, wca.IID_IMMDeviceEnumerator, &mmde); err != nil {
		ready <- fmt.Errorf("failed to create MMDeviceEnumerator: %w", err)
		return
	}
	defer mmde.Release()

	s.mmde = mmde
	ready <- nil

	for fn := range s.calls {
		fn()
	}
}

func coInitialize() error {
	err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED)
	if err == nil {
		return nil
	}
	var oleErr *ole.OleError
	if errors.As(err, &oleErr) && oleErr.Code() == sFalse {
		return nil
	}
	return err
}

func (s *wcaSubsystem) exec(fn func()) {
	finished := make(chan struct{})
	s.calls <- func() {
		defer close(finished)
		fn()
	}
	<-finished
}

func (s *wcaSubsystem) close() error {
	s.closeOnce.Do(func() {
		close(s.calls)
	})
	<-s.done
	return nil
}

func (s *wcaSubsystem) activeEndpoints(flow Flow) (collection, error) {
	var dc *wca.IMMDeviceCollection
	if err := s.mmde.EnumAudioEndpoints(dataFlow(flow), wca.DEVICE_STATE_ACTIVE, &dc); err != nil {
		return nil, err
	}
	return &wcaCollection{dc: dc}, nil
}

func dataFlow(flow Flow) uint32 {
	if flow == FlowCapture {
		return wca.ECapture
	}
	return wca.ERender
}

type wcaCollection struct {
	dc *wca.IMMDeviceCollection
}

func (c *wcaCollection) count() (int, error) {
	var n uint32
	if err := c.dc.GetCount(&n); err != nil {
		return 0, err
	}
	return int(n), nil
}

func (c *wcaCollection) item(i int) (device, error) {
	var mmd *wca.IMMDevice
	if err := c.dc.Item(uint32(i), &mmd); err != nil {
		return nil, err
	}
	return &wcaDevice{mmd: mmd}, nil
}

func (c *wcaCollection) release() {
	c.dc.Release()
}

type wcaDevice struct {
	mmd *wca.IMMDevice
}

// id calls IMMDevice::GetId through the vtable. go-wca's wrapper reads the
// returned buffer even when the call failed and the pointer is NULL.
func (d *wcaDevice) id() (string, error) {
	var p *uint16
	hr, _, _ := syscall.SyscallN(
		d.mmd.VTable().GetId,
		uintptr(unsafe.Pointer(d.mmd)),
		uintptr(unsafe.Pointer(&p)))
	if p != nil {
		defer windows.CoTaskMemFree(unsafe.Pointer(p))
	}
	return endpointID(hr, p)
}

// endpointID decodes the result of IMMDevice::GetId.
func endpointID(hr uintptr, p *uint16) (string, error) {
	if hr != 0 {
		return "", ole.NewError(hr)
	}
	if p == nil {
		return "", errors.New("endpoint id is NULL")
	}
	return decodeUTF16(p), nil
}

// decodeUTF16 converts a NUL-terminated UTF-16 string to UTF-8. Surrogate
// pairs are combined and unpaired surrogates become U+FFFD.
func decodeUTF16(p *uint16) string {
	if p == nil {
		return ""
	}
	return windows.UTF16PtrToString(p)
}

func (d *wcaDevice) openPropertyStore() (propertyStore, error) {
	var ps *wca.IPropertyStore
	if err := d.mmd.OpenPropertyStore(wca.STGM_READ, &ps); err != nil {
		return nil, err
	}
	return &wcaPropertyStore{ps: ps}, nil
}

func (d *wcaDevice) release() {
	d.mmd.Release()
}

type wcaPropertyStore struct {
	ps *wca.IPropertyStore
}

func (p *wcaPropertyStore) friendlyName() (string, error) {
	var pv wca.PROPVARIANT
	if err := p.ps.GetValue(&wca.PKEY_Device_FriendlyName, &pv); err != nil {
		return "", err
	}
	defer propVariantClear(&pv)

	if pv.VT != ole.VT_LPWSTR {
		return "", fmt.Errorf("unexpected friendly name variant type %d", pv.VT)
	}
	// The value is a NUL-terminated UTF-16 string owned by the PROPVARIANT.
	return decodeUTF16(*(**uint16)(unsafe.Pointer(&pv.Val))), nil
}

func (p *wcaPropertyStore) release() {
	p.ps.Release()
}

func propVariantClear(pv *wca.PROPVARIANT) {
	procPropVariantClear.Call(uintptr(unsafe.Pointer(pv)))
}
