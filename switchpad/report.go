package switchpad

import (
	"encoding/binary"
	"io"
)

// OutputSubcommand is the 43-byte output report (id 0x01) carrying a
// rumble payload and a vendor subcommand.
type OutputSubcommand struct {
	Counter        uint8
	RumbleData     [8]byte
	SubcommandID   uint8
	SubcommandData [32]byte
}

// MarshalBinary encodes the record to its fixed 43-byte wire layout.
func (r *OutputSubcommand) MarshalBinary() ([]byte, error) {
	b := make([]byte, outputSubcommandSize)
	b[0] = OutputRumbleAndSubcommand
	b[1] = r.Counter & 0x0F
	copy(b[2:10], r.RumbleData[:])
	b[10] = r.SubcommandID
	copy(b[11:43], r.SubcommandData[:])
	return b, nil
}

// ReadSpiPayload is the 6-byte subcommand payload for an SPI flash read.
type ReadSpiPayload struct {
	Address uint16
	Length  uint16
}

// MarshalBinary encodes the payload to its fixed 6-byte wire layout.
func (p *ReadSpiPayload) MarshalBinary() ([]byte, error) {
	b := make([]byte, readSpiPayloadSize)
	binary.LittleEndian.PutUint16(b[0:2], p.Address)
	// b[2:4] padding, zero
	binary.LittleEndian.PutUint16(b[4:6], p.Length)
	return b, nil
}

// SimpleControllerState is the 9-byte button+stick payload shared by every
// input report that carries live controller state.
type SimpleControllerState struct {
	ButtonStatus [3]byte
	LeftStick    [3]byte
	RightStick   [3]byte
}

// UnmarshalBinary decodes a 9-byte SimpleControllerState payload.
func (s *SimpleControllerState) UnmarshalBinary(data []byte) error {
	if len(data) < simpleControllerStateSize {
		return io.ErrUnexpectedEOF
	}
	copy(s.ButtonStatus[:], data[0:3])
	copy(s.LeftStick[:], data[3:6])
	copy(s.RightStick[:], data[6:9])
	return nil
}

// ControllerState is the 12-byte envelope (counter, battery/connection,
// SimpleControllerState, vibration code) found at offset 1 of input
// reports 0x21, 0x30 and 0x31.
type ControllerState struct {
	Counter             uint8
	BatteryAndConnection uint8
	Simple              SimpleControllerState
	VibrationCode       uint8
}

// UnmarshalBinary decodes a 12-byte ControllerState payload.
func (c *ControllerState) UnmarshalBinary(data []byte) error {
	if len(data) < controllerStateSize {
		return io.ErrUnexpectedEOF
	}
	c.Counter = data[0]
	c.BatteryAndConnection = data[1]
	if err := c.Simple.UnmarshalBinary(data[2:11]); err != nil {
		return err
	}
	c.VibrationCode = data[11]
	return nil
}

// SubcommandInputPacket is the 37-byte payload of a 0x21 subcommand-reply
// input report: a ControllerState envelope followed by the SPI read ack.
type SubcommandInputPacket struct {
	State         ControllerState
	SubcommandAck uint8
	SubcommandID  uint8
	Address       uint16
	Length        uint8
	Data          [18]byte
}

// UnmarshalBinary decodes a 37-byte SubcommandInputPacket payload.
func (s *SubcommandInputPacket) UnmarshalBinary(data []byte) error {
	if len(data) < subcommandInputPacketSize {
		return io.ErrUnexpectedEOF
	}
	if err := s.State.UnmarshalBinary(data[0:12]); err != nil {
		return err
	}
	s.SubcommandAck = data[12]
	s.SubcommandID = data[13]
	s.Address = binary.LittleEndian.Uint16(data[14:16])
	// data[16:18] padding, ignored
	s.Length = data[18]
	copy(s.Data[:], data[19:37])
	return nil
}

// AnalogStickCalibrationBlob is the 18-byte SPI blob at 0x603D: three
// 3-byte packs for the left stick (max, center, min) followed by three for
// the right stick (center, min, max).
type AnalogStickCalibrationBlob struct {
	LeftMax, LeftCenter, LeftMin    [3]byte
	RightCenter, RightMin, RightMax [3]byte
}

// UnmarshalBinary decodes an 18-byte AnalogStickCalibrationBlob.
func (b *AnalogStickCalibrationBlob) UnmarshalBinary(data []byte) error {
	if len(data) < analogStickCalibrationBlobSize {
		return io.ErrUnexpectedEOF
	}
	copy(b.LeftMax[:], data[0:3])
	copy(b.LeftCenter[:], data[3:6])
	copy(b.LeftMin[:], data[6:9])
	copy(b.RightCenter[:], data[9:12])
	copy(b.RightMin[:], data[12:15])
	copy(b.RightMax[:], data[15:18])
	return nil
}

// AnalogStickParamsBlob is the 6-byte SPI blob at 0x6086: 3 bytes of
// padding followed by a 3-byte packed (deadzone, rangeRatio) pair.
type AnalogStickParamsBlob struct {
	Params [3]byte
}

// UnmarshalBinary decodes a 6-byte AnalogStickParamsBlob.
func (b *AnalogStickParamsBlob) UnmarshalBinary(data []byte) error {
	if len(data) < analogStickParamsBlobSize {
		return io.ErrUnexpectedEOF
	}
	copy(b.Params[:], data[3:6])
	return nil
}
