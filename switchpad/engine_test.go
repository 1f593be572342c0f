package switchpad

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kenzaburo/switchpad/hid"
)

// fakeHandle is an in-memory hid.Handle: Read pops from a queue of canned
// reports (or returns an empty/short one when the queue is drained);
// Write records what the engine sent.
type fakeHandle struct {
	reads  [][]byte
	writes [][]byte
	closed bool
}

func (h *fakeHandle) Read(buf []byte) (int, error) {
	if len(h.reads) == 0 {
		return 0, nil
	}
	next := h.reads[0]
	h.reads = h.reads[1:]
	n := copy(buf, next)
	return n, nil
}

func (h *fakeHandle) Write(buf []byte) (int, error) {
	cp := append([]byte(nil), buf...)
	h.writes = append(h.writes, cp)
	return len(buf), nil
}

func (h *fakeHandle) Close() error {
	h.closed = true
	return nil
}

// fakeTransport is an in-memory hid.Transport over a fixed set of
// enumerated devices, toggled per-tick by the test.
type fakeTransport struct {
	present map[string]hid.DeviceInfo
	handles map[string]*fakeHandle
	order   []string
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		present: make(map[string]hid.DeviceInfo),
		handles: make(map[string]*fakeHandle),
	}
}

func (t *fakeTransport) SetFilter([]hid.VendorProduct) {}

func (t *fakeTransport) Enumerate() ([]hid.DeviceInfo, error) {
	out := make([]hid.DeviceInfo, 0, len(t.order))
	for _, serial := range t.order {
		if info, ok := t.present[serial]; ok {
			out = append(out, info)
		}
	}
	return out, nil
}

func (t *fakeTransport) Open(vendor, product uint16, serial string) (hid.Handle, error) {
	h, ok := t.handles[serial]
	if !ok {
		return nil, fmt.Errorf("fakeTransport: no handle prepared for %q", serial)
	}
	return h, nil
}

func (t *fakeTransport) add(serial string, product uint16) *fakeHandle {
	t.present[serial] = hid.DeviceInfo{Vendor: VendorNintendo, Product: product, Serial: serial}
	already := false
	for _, s := range t.order {
		if s == serial {
			already = true
			break
		}
	}
	if !already {
		t.order = append(t.order, serial)
	}
	h := &fakeHandle{}
	t.handles[serial] = h
	return h
}

func (t *fakeTransport) remove(serial string) {
	delete(t.present, serial)
}

// TestPollDefaultsNeutralSticks checks that a newly-seen device with no
// replies yet reports all-zero axes and no pressed buttons.
func TestPollDefaultsNeutralSticks(t *testing.T) {
	tr := newFakeTransport()
	h := tr.add("serial-a", ProductProController)
	h.reads = [][]byte{make([]byte, 20)} // zeroed report, id 0x00: unknown, ignored

	e := New(tr, nil, nil)
	snaps, err := e.Poll()
	assert.NoError(t, err)
	assert.Len(t, snaps, 1)
	assert.GreaterOrEqual(t, snaps[0].Index, uint64(0))
	assert.Equal(t, [4]float32{0, 0, 0, 0}, snaps[0].Axes)
	for _, b := range snaps[0].Buttons {
		assert.False(t, b.Pressed)
	}
	// Uninitialized -> RequestedAnalogCalibration, one subcommand written.
	assert.Len(t, h.writes, 1)
	assert.Equal(t, byte(SubcommandSPIFlashRead), h.writes[0][10])
}

// TestPollSimpleReportDecoding checks stick/button decoding against the
// default calibration for a raw InputSimpleControllerState report. The
// report is zero-padded to minDecodableReportLen so it is not a short read.
func TestPollSimpleReportDecoding(t *testing.T) {
	tr := newFakeTransport()
	h := tr.add("serial-b", ProductJoyConLeft)
	report := append([]byte{InputSimpleControllerState}, []byte{
		0x00, 0x00, 0x00,
		0x00, 0x08, 0x00,
		0x00, 0x08, 0x00,
		0x00, 0x00,
	}...)
	h.reads = [][]byte{report}

	e := New(tr, nil, nil)
	snaps, err := e.Poll()
	assert.NoError(t, err)
	assert.Len(t, snaps, 1)

	axes := snaps[0].Axes
	assert.InDelta(t, -0.00133, axes[0], 1e-4)
	assert.Equal(t, float32(-1), axes[1])
	assert.InDelta(t, -0.00133, axes[2], 1e-4)
	assert.Equal(t, float32(-1), axes[3])
	for _, b := range snaps[0].Buttons {
		assert.False(t, b.Pressed)
	}
}

// TestCalibrationHandshake drives the init state machine from
// Uninitialized through Initialized across consecutive polls.
func TestCalibrationHandshake(t *testing.T) {
	tr := newFakeTransport()
	h := tr.add("serial-c", ProductProController)

	e := New(tr, nil, nil)

	// Tick 1: nothing arrives yet; engine requests calibration.
	h.reads = [][]byte{make([]byte, 20)}
	_, err := e.Poll()
	assert.NoError(t, err)

	d := e.registry.devices["serial-c"]
	assert.Equal(t, RequestedAnalogCalibration, d.state)

	// Tick 2: a 0x21 reply for 0x603D arrives.
	calibReply := buildSubcommandReply(SPIAddrAnalogStickCalibration, func(data []byte) {
		leftMax, leftCenter, leftMin := packShorts(1500, 1500), packShorts(2000, 2000), packShorts(500, 500)
		rightCenter, rightMin, rightMax := packShorts(2000, 2000), packShorts(500, 500), packShorts(1500, 1500)
		copy(data[0:3], leftMax[:])      // left max
		copy(data[3:6], leftCenter[:])   // left center
		copy(data[6:9], leftMin[:])      // left min
		copy(data[9:12], rightCenter[:]) // right center
		copy(data[12:15], rightMin[:])   // right min
		copy(data[15:18], rightMax[:])   // right max
	})
	h.reads = [][]byte{calibReply}
	_, err = e.Poll()
	assert.NoError(t, err)
	assert.Equal(t, RequestedAnalogParams, d.state)
	assert.Equal(t, uint16(2000), d.cal.Left.CenterX)
	// engine should have written the 0x6086 read on this tick
	lastWrite := h.writes[len(h.writes)-1]
	assert.Equal(t, byte(0x86), lastWrite[11])
	assert.Equal(t, byte(0x60), lastWrite[12])

	// Tick 3: a 0x21 reply for 0x6086 arrives.
	paramsReply := buildSubcommandReply(SPIAddrAnalogStickParams, func(data []byte) {
		params := packShorts(200, 0)
		copy(data[3:6], params[:])
	})
	// dispatch folds the reply in (RequestedAnalogParamsOk) and
	// advanceInitState runs in the same tick, settling straight to
	// Initialized with no further write.
	h.reads = [][]byte{paramsReply}
	_, err = e.Poll()
	assert.NoError(t, err)
	assert.Equal(t, Initialized, d.state)
	assert.Equal(t, uint16(200), d.cal.Deadzone)

	// Tick 4: left stick at calibrated center => deadzone => zero axes.
	centerReport := append([]byte{InputFullControllerState}, make([]byte, controllerStateSize)...)
	left := packShorts(2000, 2000)
	copy(centerReport[1+2+3:], left[:]) // report id(1), then ControllerState: counter(1)+battery(1)+buttons(3)
	h.reads = [][]byte{centerReport}
	snaps, err := e.Poll()
	assert.NoError(t, err)
	assert.Equal(t, float32(0), snaps[0].Axes[0])
	assert.Equal(t, float32(0), snaps[0].Axes[1])
}

// TestHotUnplug checks that a disappearing serial is evicted and closed,
// and that its reappearance gets a fresh, larger index.
func TestHotUnplug(t *testing.T) {
	tr := newFakeTransport()
	h := tr.add("serial-d", ProductProController)
	h.reads = [][]byte{make([]byte, 20)}

	e := New(tr, nil, nil)
	snaps, err := e.Poll()
	assert.NoError(t, err)
	firstIndex := snaps[0].Index

	tr.remove("serial-d")
	snaps, err = e.Poll()
	assert.NoError(t, err)
	assert.Len(t, snaps, 0)
	assert.True(t, h.closed)
	assert.Equal(t, 0, e.registry.size())

	h2 := tr.add("serial-d", ProductProController)
	h2.reads = [][]byte{make([]byte, 20)}
	snaps, err = e.Poll()
	assert.NoError(t, err)
	assert.Len(t, snaps, 1)
	assert.Greater(t, snaps[0].Index, firstIndex)
}

// TestShortRead checks that a read shorter than minDecodableReportLen
// still lets the init-state machine advance, with a zero-axes snapshot.
func TestShortRead(t *testing.T) {
	tr := newFakeTransport()
	h := tr.add("serial-e", ProductProController)
	h.reads = [][]byte{make([]byte, 8)}

	e := New(tr, nil, nil)
	snaps, err := e.Poll()
	assert.NoError(t, err)
	assert.Len(t, snaps, 1)
	assert.Equal(t, [4]float32{0, 0, 0, 0}, snaps[0].Axes)

	d := e.registry.devices["serial-e"]
	assert.Equal(t, RequestedAnalogCalibration, d.state)
	assert.Len(t, h.writes, 1)
}

// buildSubcommandReply constructs a 0x21 report whose SubcommandInputPacket
// carries subcommandID=SPI-read, the given address, and data filled by fn.
func buildSubcommandReply(address uint16, fn func(data []byte)) []byte {
	b := make([]byte, 1+subcommandInputPacketSize)
	b[0] = InputSubcommandReply
	payload := b[1:]
	payload[12] = 0x80 // ack
	payload[13] = SubcommandSPIFlashRead
	payload[14] = byte(address)
	payload[15] = byte(address >> 8)
	payload[18] = 18
	data := payload[19:37]
	fn(data)
	return b
}
