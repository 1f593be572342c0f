package switchpad

// decodeButtons expands the 3-byte button status field into the fixed
// 24-button vector.
func decodeButtons(status [3]byte) [24]Button {
	var buttons [24]Button
	bits := extractBits(status[:])
	for i, bit := range bits {
		buttons[i] = Button{Pressed: bit != 0, Value: float32(bit)}
	}
	return buttons
}

// decodeSticks decodes the left and right stick packs against cal into the
// four normalized axes.
func decodeSticks(left, right [3]byte, cal CalibrationData) (axes [4]float32) {
	lx, ly := unpackShorts(left)
	if isDeadzone(lx, ly, cal.Left.CenterX, cal.Left.CenterY, cal.Deadzone) {
		axes[0], axes[1] = 0, 0
	} else {
		axes[0] = clampAxis(lx, cal.Left.MinX, cal.Left.MaxX)
		axes[1] = clampAxis(ly, cal.Left.MinY, cal.Left.MaxY)
	}

	rx, ry := unpackShorts(right)
	if isDeadzone(rx, ry, cal.Right.CenterX, cal.Right.CenterY, cal.Deadzone) {
		axes[2], axes[3] = 0, 0
	} else {
		axes[2] = clampAxis(rx, cal.Right.MinX, cal.Right.MaxX)
		axes[3] = clampAxis(ry, cal.Right.MinY, cal.Right.MaxY)
	}
	return axes
}

// decodeSimpleState fills a Gamepad's axes and buttons from a
// SimpleControllerState decoded against cal. This is the single decode
// path shared by the simple report, the full report, and a subcommand
// reply, as they all embed the same 9-byte state.
func decodeSimpleState(s SimpleControllerState, cal CalibrationData, g *Gamepad) {
	g.Buttons = decodeButtons(s.ButtonStatus)
	g.Axes = decodeSticks(s.LeftStick, s.RightStick, cal)
}
