package switchpad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultCalibrationInvariants(t *testing.T) {
	cal := DefaultCalibration()
	assert.Equal(t, uint16(160), cal.Deadzone)
	for _, s := range []StickCalibration{cal.Left, cal.Right} {
		assert.Equal(t, uint16(550), s.MinX)
		assert.Equal(t, uint16(2050), s.CenterX)
		assert.Equal(t, uint16(3550), s.MaxX)
		assert.Less(t, s.MinX, s.CenterX)
		assert.Less(t, s.CenterX, s.MaxX)
	}
}

// TestApplyStickCalibrationNonBogus checks that non-bogus packed bounds
// fold into absolute min/max around center.
func TestApplyStickCalibrationNonBogus(t *testing.T) {
	blob := AnalogStickCalibrationBlob{
		LeftMax:     packShorts(1500, 1500),
		LeftCenter:  packShorts(2000, 2000),
		LeftMin:     packShorts(500, 500),
		RightCenter: packShorts(2000, 2000),
		RightMin:    packShorts(500, 500),
		RightMax:    packShorts(1500, 1500),
	}
	cal := DefaultCalibration()
	applyStickCalibration(&blob, &cal)

	assert.Equal(t, uint16(2000), cal.Left.CenterX)
	assert.Equal(t, uint16(1500), cal.Left.MinX) // 2000-500
	assert.Equal(t, uint16(3500), cal.Left.MaxX) // 2000+1500
	assert.Equal(t, uint16(2000), cal.Right.CenterY)
}

// TestApplyStickCalibrationBogus checks that a bogus sentinel reverts only
// the affected stick to defaults; the other stick's real values survive.
func TestApplyStickCalibrationBogus(t *testing.T) {
	blob := AnalogStickCalibrationBlob{
		LeftMax:     packShorts(0, bogusCalibrationValue), // Y-max sentinel
		LeftCenter:  packShorts(1234, 1234),
		LeftMin:     packShorts(bogusCalibrationValue, 0), // min-raw sentinel
		RightCenter: packShorts(2000, 2000),
		RightMin:    packShorts(500, 500),
		RightMax:    packShorts(1500, 1500),
	}
	cal := DefaultCalibration()
	applyStickCalibration(&blob, &cal)

	assert.Equal(t, defaultStickCalibration(), cal.Left)
	assert.Equal(t, uint16(2000), cal.Right.CenterX)
	assert.Equal(t, uint16(1500), cal.Right.MinX)
	assert.Equal(t, uint16(3500), cal.Right.MaxX)
}

func TestApplyStickParamsBogusDeadzone(t *testing.T) {
	blob := AnalogStickParamsBlob{Params: packShorts(bogusCalibrationValue, 0)}
	cal := DefaultCalibration()
	applyStickParams(&blob, &cal)
	assert.Equal(t, defaultDeadzone, cal.Deadzone)
}

func TestApplyStickParamsNonBogus(t *testing.T) {
	blob := AnalogStickParamsBlob{Params: packShorts(200, 0)}
	cal := DefaultCalibration()
	applyStickParams(&blob, &cal)
	assert.Equal(t, uint16(200), cal.Deadzone)
	assert.Equal(t, uint16(0), cal.RangeRatio)
}
