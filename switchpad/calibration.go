package switchpad

import "fmt"

// StickCalibration holds the absolute raw travel bounds and center for one
// analog stick axis pair.
type StickCalibration struct {
	CenterX, CenterY uint16
	MinX, MinY       uint16
	MaxX, MaxY       uint16
}

// IMUCalibration is reserved: switchpad never performs IMU init, so every
// field stays at its zero value. It exists so CalibrationData matches the
// full on-device calibration record shape.
type IMUCalibration struct {
	AccelOrigin, AccelSensitivity [3]int16
	GyroOrigin, GyroSensitivity   [3]int16
	HorizontalOffset              [3]int16
}

// CalibrationData is the per-device calibration record.
type CalibrationData struct {
	Left, Right StickCalibration

	Deadzone   uint16
	RangeRatio uint16

	IMU IMUCalibration
}

// DefaultCalibration returns a CalibrationData populated with the safe
// fallback values: deadzone 160, min 550, center 2050, max 3550 for every
// axis of both sticks.
func DefaultCalibration() CalibrationData {
	return CalibrationData{
		Left:       defaultStickCalibration(),
		Right:      defaultStickCalibration(),
		Deadzone:   defaultDeadzone,
		RangeRatio: 0,
	}
}

func (c CalibrationData) String() string {
	return fmt.Sprintf("calibration left=[%d,%d]-[%d,%d] right=[%d,%d]-[%d,%d] deadzone=%d",
		c.Left.MinX, c.Left.MinY, c.Left.MaxX, c.Left.MaxY,
		c.Right.MinX, c.Right.MinY, c.Right.MaxX, c.Right.MaxY,
		c.Deadzone)
}

func (c CalibrationData) GoString() string {
	return fmt.Sprintf(
		"switchpad.CalibrationData{Left: %#v, Right: %#v, Deadzone: %d, RangeRatio: %d}",
		c.Left, c.Right, c.Deadzone, c.RangeRatio)
}

func (s StickCalibration) GoString() string {
	return fmt.Sprintf(
		"switchpad.StickCalibration{CenterX: %d, CenterY: %d, MinX: %d, MinY: %d, MaxX: %d, MaxY: %d}",
		s.CenterX, s.CenterY, s.MinX, s.MinY, s.MaxX, s.MaxY)
}

func defaultStickCalibration() StickCalibration {
	return StickCalibration{
		CenterX: defaultStickCenter, CenterY: defaultStickCenter,
		MinX: defaultStickMin, MinY: defaultStickMin,
		MaxX: defaultStickMax, MaxY: defaultStickMax,
	}
}

// applyStickCalibration folds a raw SPI calibration blob into cal. The
// wire's "min"/"max" packs are offsets from center, not absolute bounds;
// this converts them to absolute min/max. A stick whose min-raw and
// Y-max-raw both read the bogus sentinel 0x0FFF reverts to defaults
// instead.
func applyStickCalibration(blob *AnalogStickCalibrationBlob, cal *CalibrationData) {
	leftMaxX, leftMaxY := unpackShorts(blob.LeftMax)
	leftCenterX, leftCenterY := unpackShorts(blob.LeftCenter)
	leftMinX, leftMinY := unpackShorts(blob.LeftMin)

	if leftMinX == uint16(bogusCalibrationValue) && leftMaxY == uint16(bogusCalibrationValue) {
		cal.Left = defaultStickCalibration()
	} else {
		cal.Left = StickCalibration{
			CenterX: leftCenterX, CenterY: leftCenterY,
			MinX: leftCenterX - leftMinX, MinY: leftCenterY - leftMinY,
			MaxX: leftCenterX + leftMaxX, MaxY: leftCenterY + leftMaxY,
		}
	}

	rightCenterX, rightCenterY := unpackShorts(blob.RightCenter)
	rightMinX, rightMinY := unpackShorts(blob.RightMin)
	rightMaxX, rightMaxY := unpackShorts(blob.RightMax)

	if rightMinX == uint16(bogusCalibrationValue) && rightMaxY == uint16(bogusCalibrationValue) {
		cal.Right = defaultStickCalibration()
	} else {
		cal.Right = StickCalibration{
			CenterX: rightCenterX, CenterY: rightCenterY,
			MinX: rightCenterX - rightMinX, MinY: rightCenterY - rightMinY,
			MaxX: rightCenterX + rightMaxX, MaxY: rightCenterY + rightMaxY,
		}
	}
}

// applyStickParams folds a raw SPI params blob into cal.
func applyStickParams(blob *AnalogStickParamsBlob, cal *CalibrationData) {
	deadzone, rangeRatio := unpackShorts(blob.Params)
	if deadzone == uint16(bogusCalibrationValue) {
		deadzone = defaultDeadzone
	}
	cal.Deadzone = deadzone
	cal.RangeRatio = rangeRatio
}
