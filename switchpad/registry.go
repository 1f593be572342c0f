package switchpad

import (
	"sync"

	"github.com/kenzaburo/switchpad/hid"
)

// registry owns every open device keyed by HID serial number. Indices are
// assigned from a monotonic counter that is never reused within the
// registry's lifetime: a serial that disappears and reappears gets a
// fresh, larger index and fresh calibration/state.
type registry struct {
	mu       sync.Mutex
	devices  map[string]*device
	nextIdx  uint64
	allow    map[string]bool // nil means "allow everything"
}

func newRegistry() *registry {
	return &registry{devices: make(map[string]*device)}
}

// setAllowlist restricts the registry to the given serials. A nil or empty
// list clears the restriction (allow everything), which is the default.
func (r *registry) setAllowlist(serials []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(serials) == 0 {
		r.allow = nil
		return
	}
	r.allow = make(map[string]bool, len(serials))
	for _, s := range serials {
		r.allow[s] = true
	}
}

func (r *registry) allowed(serial string) bool {
	if r.allow == nil {
		return true
	}
	return r.allow[serial]
}

// getOrOpen returns the device for info.Serial, opening it via transport
// if this is the first time this poller has seen that serial.
func (r *registry) getOrOpen(transport hid.Transport, info hid.DeviceInfo) (*device, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.allowed(info.Serial) {
		return nil, false, nil
	}

	if d, ok := r.devices[info.Serial]; ok {
		return d, true, nil
	}

	handle, err := transport.Open(info.Vendor, info.Product, info.Serial)
	if err != nil {
		return nil, false, err
	}

	index := r.nextIdx
	r.nextIdx++

	d := newDevice(index, handle, info)
	r.devices[info.Serial] = d
	return d, true, nil
}

// evict closes and removes every registered serial not present in seen.
func (r *registry) evict(seen map[string]bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for serial, d := range r.devices {
		if seen[serial] {
			continue
		}
		_ = d.handle.Close()
		delete(r.devices, serial)
	}
}

// size reports how many devices are currently registered, for diagnostics.
func (r *registry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.devices)
}
