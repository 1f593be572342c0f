package switchpad

import (
	"fmt"
	"log/slog"

	"github.com/kenzaburo/switchpad/hid"
	switchpadlog "github.com/kenzaburo/switchpad/internal/log"
)

// Engine drives the registry sweep and poll-tick orchestration. It is not
// safe for concurrent use: the contract is a single caller driving Poll in
// a loop.
type Engine struct {
	transport hid.Transport
	registry  *registry
	logger    *slog.Logger
	rawLogger switchpadlog.RawLogger
	buf       [64]byte
}

// New returns an Engine polling transport for the three supported Switch
// controller products. logger may be nil, in which case a discard logger
// is used. rawLogger may be nil, in which case raw report hex dumps are
// discarded.
func New(transport hid.Transport, logger *slog.Logger, rawLogger switchpadlog.RawLogger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(discardWriter{}, nil))
	}
	if rawLogger == nil {
		rawLogger = switchpadlog.NewRaw(nil)
	}
	return &Engine{
		transport: transport,
		registry:  newRegistry(),
		logger:    logger,
		rawLogger: rawLogger,
	}
}

// SetAllowlist restricts the engine's registry to the given serials, or
// clears the restriction when serials is empty.
func (e *Engine) SetAllowlist(serials []string) {
	e.registry.setAllowlist(serials)
}

// Poll runs one full registry sweep: re-enumerate, open newly-seen
// devices, read+decode+advance each open device, evict serials no longer
// present, and return the resulting snapshots in enumeration order.
func (e *Engine) Poll() ([]Gamepad, error) {
	pairs := make([]hid.VendorProduct, len(SupportedProducts))
	for i, p := range SupportedProducts {
		pairs[i] = hid.VendorProduct{Vendor: VendorNintendo, Product: p}
	}
	e.transport.SetFilter(pairs)

	infos, err := e.transport.Enumerate()
	if err != nil {
		return nil, fmt.Errorf("switchpad: enumerate: %w", err)
	}

	snapshots := make([]Gamepad, 0, len(infos))
	seen := make(map[string]bool, len(infos))

	for _, info := range infos {
		d, ok, err := e.registry.getOrOpen(e.transport, info)
		if err != nil {
			return nil, fmt.Errorf("switchpad: open %q: %w", info.Serial, err)
		}
		if !ok {
			continue
		}
		seen[info.Serial] = true

		snap, err := e.tick(d)
		if err != nil {
			return nil, fmt.Errorf("switchpad: tick %q: %w", info.Serial, err)
		}
		snapshots = append(snapshots, snap)
	}

	e.registry.evict(seen)
	return snapshots, nil
}

// tick runs one poll iteration for a single device: read one report,
// dispatch it if it decoded, then advance the init-state machine.
func (e *Engine) tick(d *device) (Gamepad, error) {
	snap := newGamepad(d.index)

	n, err := d.handle.Read(e.buf[:])
	if err != nil {
		return Gamepad{}, fmt.Errorf("read report: %w", err)
	}
	e.rawLogger.Log(true, e.buf[:n])

	if n >= minDecodableReportLen {
		e.dispatch(d, e.buf[:n], &snap)
	} else {
		e.logger.Debug("short read", "serial", d.info.Serial, "bytes", n)
	}

	if err := e.advanceInitState(d); err != nil {
		return Gamepad{}, err
	}

	return snap, nil
}

// dispatch classifies a report by its leading report-id byte and decodes
// it into snap.
func (e *Engine) dispatch(d *device, report []byte, snap *Gamepad) {
	reportID := report[0]
	payload := report[1:]

	switch reportID {
	case InputFullControllerState:
		var cs ControllerState
		if err := cs.UnmarshalBinary(payload); err != nil {
			return
		}
		decodeSimpleState(cs.Simple, d.cal, snap)

	case InputSimpleControllerState:
		var s SimpleControllerState
		if err := s.UnmarshalBinary(payload); err != nil {
			return
		}
		decodeSimpleState(s, d.cal, snap)

	case InputSubcommandReply:
		var sc SubcommandInputPacket
		if err := sc.UnmarshalBinary(payload); err != nil {
			return
		}
		decodeSimpleState(sc.State.Simple, d.cal, snap)
		if sc.SubcommandID == SubcommandSPIFlashRead {
			e.handleSPIReply(d, sc)
		}

	case InputFullWithMCU, InputCommandAck:
		// Reserved/ignored.

	default:
		// Unknown report id: non-fatal, ignored.
	}
}

// handleSPIReply folds an SPI-read subcommand reply into calibration,
// content-addressed on whatever SPI address it names.
func (e *Engine) handleSPIReply(d *device, sc SubcommandInputPacket) {
	switch sc.Address {
	case SPIAddrAnalogStickCalibration:
		var blob AnalogStickCalibrationBlob
		if err := blob.UnmarshalBinary(sc.Data[:]); err != nil {
			return
		}
		applyStickCalibration(&blob, &d.cal)
		d.state = RequestedAnalogCalibrationOk

	case SPIAddrAnalogStickParams:
		var blob AnalogStickParamsBlob
		if err := blob.UnmarshalBinary(sc.Data[:]); err != nil {
			return
		}
		applyStickParams(&blob, &d.cal)
		d.state = RequestedAnalogParamsOk

	default:
		// Unknown SPI address: non-fatal, ignored.
	}
}

// advanceInitState runs the per-device init-state transition for one tick.
func (e *Engine) advanceInitState(d *device) error {
	switch d.state {
	case Uninitialized:
		if err := requestAnalogCalibration(d.handle, d, e.rawLogger); err != nil {
			return fmt.Errorf("request analog calibration: %w", err)
		}
		d.state = RequestedAnalogCalibration

	case RequestedAnalogCalibrationOk:
		if err := requestAnalogParams(d.handle, d, e.rawLogger); err != nil {
			return fmt.Errorf("request analog params: %w", err)
		}
		d.state = RequestedAnalogParams

	case RequestedAnalogParamsOk:
		d.state = Initialized

	case RequestedAnalogCalibration, RequestedAnalogParams, Initialized:
		// No action.
	}
	return nil
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
