package switchpad

import "github.com/kenzaburo/switchpad/hid"

// InitState is the per-device initialization state. The *Ok states are
// transient: set by the reply handler during a tick's dispatch and
// consumed by the init-state transition that runs later in the same tick.
type InitState int

const (
	Uninitialized InitState = iota
	RequestedAnalogCalibration
	RequestedAnalogCalibrationOk
	RequestedAnalogParams
	RequestedAnalogParamsOk
	Initialized
)

func (s InitState) String() string {
	switch s {
	case Uninitialized:
		return "Uninitialized"
	case RequestedAnalogCalibration:
		return "RequestedAnalogCalibration"
	case RequestedAnalogCalibrationOk:
		return "RequestedAnalogCalibrationOk"
	case RequestedAnalogParams:
		return "RequestedAnalogParams"
	case RequestedAnalogParamsOk:
		return "RequestedAnalogParamsOk"
	case Initialized:
		return "Initialized"
	default:
		return "InitState(?)"
	}
}

// device is the registry's per-serial entry: an open HID handle plus the
// context switchpad maintains across poll ticks for that serial.
type device struct {
	index   uint64
	handle  hid.Handle
	info    hid.DeviceInfo
	cal     CalibrationData
	state   InitState
	counter uint8
}

func newDevice(index uint64, handle hid.Handle, info hid.DeviceInfo) *device {
	return &device{
		index:  index,
		handle: handle,
		info:   info,
		cal:    DefaultCalibration(),
		state:  Uninitialized,
	}
}
