package switchpad

// DecodeReport decodes a single raw HID input report against cal without
// requiring an Engine or registry, for callers driving their own transport
// or replaying a captured report dump. It recognizes the same report ids
// as Engine.dispatch but never folds SPI-read replies into calibration and
// never touches init state — those require the device context only Engine
// maintains.
//
// ok is false for a short or unrecognized report; the returned Gamepad is
// then the zero value for index 0.
func DecodeReport(report []byte, cal CalibrationData) (gamepad Gamepad, ok bool) {
	if len(report) < minDecodableReportLen {
		return Gamepad{}, false
	}

	payload := report[1:]
	switch report[0] {
	case InputFullControllerState:
		var cs ControllerState
		if err := cs.UnmarshalBinary(payload); err != nil {
			return Gamepad{}, false
		}
		decodeSimpleState(cs.Simple, cal, &gamepad)
		return gamepad, true

	case InputSimpleControllerState:
		var s SimpleControllerState
		if err := s.UnmarshalBinary(payload); err != nil {
			return Gamepad{}, false
		}
		decodeSimpleState(s, cal, &gamepad)
		return gamepad, true

	case InputSubcommandReply:
		var sc SubcommandInputPacket
		if err := sc.UnmarshalBinary(payload); err != nil {
			return Gamepad{}, false
		}
		decodeSimpleState(sc.State.Simple, cal, &gamepad)
		return gamepad, true

	default:
		return Gamepad{}, false
	}
}
