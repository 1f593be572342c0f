//go:build linux

// Package hidraw implements hid.Transport against Linux hidraw character
// devices: /sys/class/hidraw for enumeration, /dev/hidrawN for read/write.
package hidraw

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/kenzaburo/switchpad/hid"
)

const sysClassHidraw = "/sys/class/hidraw"

// Transport is a hid.Transport backed by Linux hidraw devices.
type Transport struct {
	mu     sync.Mutex
	filter []hid.VendorProduct
}

// New returns a hidraw-backed transport with an empty filter (matches
// nothing until SetFilter is called).
func New() *Transport {
	return &Transport{}
}

// SetFilter implements hid.Transport.
func (t *Transport) SetFilter(pairs []hid.VendorProduct) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.filter = append([]hid.VendorProduct(nil), pairs...)
}

// Enumerate implements hid.Transport by scanning /sys/class/hidraw and
// reading each device's uevent for bus identifiers and serial number.
func (t *Transport) Enumerate() ([]hid.DeviceInfo, error) {
	t.mu.Lock()
	filter := append([]hid.VendorProduct(nil), t.filter...)
	t.mu.Unlock()

	entries, err := os.ReadDir(sysClassHidraw)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("hidraw: read %s: %w", sysClassHidraw, err)
	}

	var out []hid.DeviceInfo
	for _, e := range entries {
		info, ok, err := readUevent(filepath.Join(sysClassHidraw, e.Name(), "device", "uevent"))
		if err != nil || !ok {
			continue
		}
		if !matchesFilter(filter, info.Vendor, info.Product) {
			continue
		}
		out = append(out, info)
	}
	return out, nil
}

func matchesFilter(filter []hid.VendorProduct, vendor, product uint16) bool {
	if len(filter) == 0 {
		return false
	}
	for _, p := range filter {
		if p.Vendor == vendor && p.Product == product {
			return true
		}
	}
	return false
}

// readUevent parses the HID_ID and HID_UNIQ lines of a hidraw device's
// sysfs uevent file: "HID_ID=0005:0000057E:00002009" and
// "HID_UNIQ=aa:bb:cc:dd:ee:ff".
func readUevent(path string) (hid.DeviceInfo, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return hid.DeviceInfo{}, false, err
	}
	defer f.Close()

	var info hid.DeviceInfo
	var sawID bool
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "HID_ID="):
			parts := strings.Split(strings.TrimPrefix(line, "HID_ID="), ":")
			if len(parts) != 3 {
				continue
			}
			vendor, err1 := strconv.ParseUint(parts[1], 16, 16)
			product, err2 := strconv.ParseUint(parts[2], 16, 16)
			if err1 != nil || err2 != nil {
				continue
			}
			info.Vendor = uint16(vendor)
			info.Product = uint16(product)
			sawID = true
		case strings.HasPrefix(line, "HID_UNIQ="):
			info.Serial = strings.TrimPrefix(line, "HID_UNIQ=")
		}
	}
	if err := scanner.Err(); err != nil {
		return hid.DeviceInfo{}, false, err
	}
	return info, sawID, nil
}

// handle is an open hidraw device.
type handle struct {
	fd int
}

// Open implements hid.Transport by locating the /dev/hidrawN node whose
// uevent serial matches serial and opening it read-write.
func (t *Transport) Open(vendor, product uint16, serial string) (hid.Handle, error) {
	entries, err := os.ReadDir(sysClassHidraw)
	if err != nil {
		return nil, fmt.Errorf("hidraw: read %s: %w", sysClassHidraw, err)
	}
	for _, e := range entries {
		info, ok, err := readUevent(filepath.Join(sysClassHidraw, e.Name(), "device", "uevent"))
		if err != nil || !ok {
			continue
		}
		if info.Vendor != vendor || info.Product != product || info.Serial != serial {
			continue
		}
		fd, err := unix.Open(filepath.Join("/dev", e.Name()), unix.O_RDWR, 0)
		if err != nil {
			return nil, fmt.Errorf("hidraw: open /dev/%s: %w", e.Name(), err)
		}
		return &handle{fd: fd}, nil
	}
	return nil, fmt.Errorf("hidraw: no device matching %04x:%04x serial %q", vendor, product, serial)
}

func (h *handle) Read(buf []byte) (int, error) {
	return unix.Read(h.fd, buf)
}

func (h *handle) Write(buf []byte) (int, error) {
	return unix.Write(h.fd, buf)
}

func (h *handle) Close() error {
	return unix.Close(h.fd)
}
