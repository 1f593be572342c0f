// Package switchpad decodes HID reports from Nintendo Switch controllers
// (Joy-Con Left, Joy-Con Right, Pro Controller) into a normalized gamepad
// snapshot, driving the per-device SPI-flash calibration handshake needed
// to make sense of the raw analog-stick samples.
package switchpad

// Vendor/product identifiers this driver claims.
const (
	VendorNintendo = 0x057E

	ProductJoyConLeft     = 0x2006
	ProductJoyConRight    = 0x2007
	ProductProController  = 0x2009
)

// SupportedProducts lists every product id switchpad enumerates for.
var SupportedProducts = []uint16{ProductJoyConLeft, ProductJoyConRight, ProductProController}

// Output report ids.
const (
	OutputRumbleAndSubcommand = 0x01
	OutputRumbleOnly          = 0x10
	OutputProprietary         = 0x80
)

// Input report ids.
const (
	InputSubcommandReply       = 0x21
	InputFullControllerState   = 0x30
	InputFullWithMCU           = 0x31
	InputSimpleControllerState = 0x3F
	InputCommandAck            = 0x81
)

// Subcommand ids. Only SPI flash read is decoded; the rest are named for
// reference only, and a reply carrying any of them is ignored like any other
// non-SPI-read reply.
const (
	SubcommandSPIFlashRead = 0x10

	subcommandReservedBluetoothPairing   = 0x01
	subcommandReservedRequestDeviceInfo  = 0x02
	subcommandReservedSetInputReportMode = 0x03
	subcommandReservedSetHCIState        = 0x06
	subcommandReservedSetPlayerLights    = 0x30
	subcommandReservedSetHomeLight       = 0x38
	subcommandReservedEnableIMU          = 0x40
	subcommandReservedSetIMUSensitivity  = 0x41
	subcommandReservedEnableVibration    = 0x48
)

// SPI flash addresses switchpad reads during init.
const (
	SPIAddrAnalogStickCalibration = 0x603D
	SPIAddrAnalogStickParams      = 0x6086

	// Reserved: IMU calibration and IMU horizontal offsets. The engine
	// never issues a read for these, and a reply naming them is ignored
	// by the same unknown-address branch as any other address.
	spiAddrIMUCalibration       = 0x6020
	spiAddrIMUHorizontalOffsets = 0x6080
)

// spiReadLength is the length requested for both calibration blobs.
const spiReadLength = 18

// Calibration sentinels and defaults.
const (
	bogusCalibrationValue uint16 = 0x0FFF

	defaultDeadzone    uint16 = 160
	defaultStickMin    uint16 = 550
	defaultStickCenter uint16 = 2050
	defaultStickMax    uint16 = 3550
)

// Report sizes, bytes.
const (
	// outputSubcommandSize is the sum of OutputSubcommand's field widths
	// (1 report id + 1 counter + 8 rumble + 1 subcommand id + 32 data).
	outputSubcommandSize = 43
	readSpiPayloadSize   = 6
	simpleControllerStateSize = 9
	controllerStateSize       = 12
	// subcommandInputPacketSize is the sum of SubcommandInputPacket's field
	// widths (12 state + 1 ack + 1 subcommand id + 2 address + 2 padding +
	// 1 length + 18 data).
	subcommandInputPacketSize      = 37
	analogStickCalibrationBlobSize = 18
	analogStickParamsBlobSize      = 6

	// minDecodableReportLen is the smallest report the engine will even
	// attempt to dispatch; anything shorter is treated as a short read.
	minDecodableReportLen = 12
)
