package switchpad

import (
	"fmt"

	"github.com/kenzaburo/switchpad/hid"
	switchpadlog "github.com/kenzaburo/switchpad/internal/log"
)

// sendSubcommand builds and writes an OutputSubcommand report, advancing
// d's rolling 4-bit counter first. Write failures are surfaced to the
// caller; switchpad never retries within a tick. rawLogger may be nil.
func sendSubcommand(handle hid.Handle, d *device, subcommandID uint8, payload []byte, rawLogger switchpadlog.RawLogger) error {
	if len(payload) > 32 {
		return fmt.Errorf("switchpad: subcommand payload too large: %d bytes", len(payload))
	}

	d.counter = (d.counter + 1) & 0x0F

	out := OutputSubcommand{
		Counter:      d.counter,
		SubcommandID: subcommandID,
	}
	copy(out.SubcommandData[:], payload)

	b, err := out.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := handle.Write(b); err != nil {
		return fmt.Errorf("switchpad: write subcommand: %w", err)
	}
	if rawLogger != nil {
		rawLogger.Log(false, b)
	}
	return nil
}

// requestAnalogCalibration issues the SPI flash read for the analog-stick
// calibration blob at 0x603D.
func requestAnalogCalibration(handle hid.Handle, d *device, rawLogger switchpadlog.RawLogger) error {
	return requestSPIRead(handle, d, SPIAddrAnalogStickCalibration, rawLogger)
}

// requestAnalogParams issues the SPI flash read for the analog-stick
// parameters blob at 0x6086.
func requestAnalogParams(handle hid.Handle, d *device, rawLogger switchpadlog.RawLogger) error {
	return requestSPIRead(handle, d, SPIAddrAnalogStickParams, rawLogger)
}

func requestSPIRead(handle hid.Handle, d *device, address uint16, rawLogger switchpadlog.RawLogger) error {
	payload := ReadSpiPayload{Address: address, Length: spiReadLength}
	b, err := payload.MarshalBinary()
	if err != nil {
		return err
	}
	return sendSubcommand(handle, d, SubcommandSPIFlashRead, b, rawLogger)
}
