//go:build windows

package volume

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"

	"github.com/mfulz/powergeist/interfaces"
)

// Endpoint talks to the default render device through the Core Audio
// IAudioEndpointVolume interface. Levels are exact; no text is parsed.
type Endpoint struct{}

// NewEndpoint returns the native Windows volume backend.
func NewEndpoint() *Endpoint {
	return &Endpoint{}
}

var (
	clsidMMDeviceEnumerator = ole.NewGUID("{BCDE0395-E52F-467C-8E3D-C4579291692E}")
	iidIMMDeviceEnumerator  = ole.NewGUID("{A95664D2-9614-4F35-A746-DE8DB63617E6}")
	iidIAudioEndpointVolume = ole.NewGUID("{5CDF2C82-841E-4546-9722-0CF74078229A}")
)

const (
	eRender   = 0
	eConsole  = 0
	clsctxAll = 0x17
	sFalse    = 1
)

type mmDeviceEnumeratorVtbl struct {
	ole.IUnknownVtbl
	EnumAudioEndpoints      uintptr
	GetDefaultAudioEndpoint uintptr
}

type mmDeviceVtbl struct {
	ole.IUnknownVtbl
	Activate uintptr
}

// Only the entries up to GetMasterVolumeLevelScalar are declared; the
// layout of the prefix must match endpointvolume.h.
type audioEndpointVolumeVtbl struct {
	ole.IUnknownVtbl
	RegisterControlChangeNotify   uintptr
	UnregisterControlChangeNotify uintptr
	GetChannelCount               uintptr
	SetMasterVolumeLevel          uintptr
	SetMasterVolumeLevelScalar    uintptr
	GetMasterVolumeLevel          uintptr
	GetMasterVolumeLevelScalar    uintptr
}

func (e *Endpoint) GetVolume(_ context.Context) (int, error) {
	var level int
	err := withEndpointVolume(func(ep *ole.IUnknown, vt *audioEndpointVolumeVtbl) error {
		var scalar float32
		hr, _, _ := syscall.SyscallN(vt.GetMasterVolumeLevelScalar,
			uintptr(unsafe.Pointer(ep)),
			uintptr(unsafe.Pointer(&scalar)))
		if hr != 0 {
			return fmt.Errorf("GetMasterVolumeLevelScalar: %w", ole.NewError(hr))
		}
		level = scalarToLevel(scalar)
		return nil
	})
	return level, err
}

func (e *Endpoint) SetVolume(_ context.Context, level int) error {
	return withEndpointVolume(func(ep *ole.IUnknown, vt *audioEndpointVolumeVtbl) error {
		scalar := levelToScalar(level)
		hr, _, _ := syscall.SyscallN(vt.SetMasterVolumeLevelScalar,
			uintptr(unsafe.Pointer(ep)),
			uintptr(math.Float32bits(scalar)),
			0)
		if hr != 0 {
			return fmt.Errorf("SetMasterVolumeLevelScalar: %w", ole.NewError(hr))
		}
		return nil
	})
}

// withEndpointVolume initializes COM on a locked thread, resolves the
// default render endpoint and hands its IAudioEndpointVolume to fn.
func withEndpointVolume(fn func(ep *ole.IUnknown, vt *audioEndpointVolumeVtbl) error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != sFalse {
			return fmt.Errorf("%w: CoInitializeEx: %v", interfaces.ErrBackendUnavailable, err)
		}
	}
	defer ole.CoUninitialize()

	enumerator, err := ole.CreateInstance(clsidMMDeviceEnumerator, iidIMMDeviceEnumerator)
	if err != nil {
		return fmt.Errorf("%w: MMDeviceEnumerator: %v", interfaces.ErrBackendUnavailable, err)
	}
	defer enumerator.Release()

	enumVt := (*mmDeviceEnumeratorVtbl)(unsafe.Pointer(enumerator.RawVTable))
	var device *ole.IUnknown
	hr, _, _ := syscall.SyscallN(enumVt.GetDefaultAudioEndpoint,
		uintptr(unsafe.Pointer(enumerator)),
		eRender,
		eConsole,
		uintptr(unsafe.Pointer(&device)))
	if hr != 0 {
		return fmt.Errorf("%w: GetDefaultAudioEndpoint: %v", interfaces.ErrBackendUnavailable, ole.NewError(hr))
	}
	defer device.Release()

	devVt := (*mmDeviceVtbl)(unsafe.Pointer(device.RawVTable))
	var endpoint *ole.IUnknown
	hr, _, _ = syscall.SyscallN(devVt.Activate,
		uintptr(unsafe.Pointer(device)),
		uintptr(unsafe.Pointer(iidIAudioEndpointVolume)),
		clsctxAll,
		0,
		uintptr(unsafe.Pointer(&endpoint)))
	if hr != 0 {
		return fmt.Errorf("%w: IMMDevice.Activate: %v", interfaces.ErrBackendUnavailable, ole.NewError(hr))
	}
	defer endpoint.Release()

	return fn(endpoint, (*audioEndpointVolumeVtbl)(unsafe.Pointer(endpoint.RawVTable)))
}
