package synth

import "fmt"

// ScaleMode selects the rounding rule of Scale.
type ScaleMode uint8

const (
	// ScaleAutoOffset adds back half of the truncation gap, lowering the
	// DC and volume bias of a plain multiply-shift.
	ScaleAutoOffset ScaleMode = iota

	// ScaleTruncate is the plain ((v*s)>>8)+1 multiply-shift.
	ScaleTruncate
)

func (m ScaleMode) String() string {
	switch m {
	case ScaleAutoOffset:
		return "auto-offset"
	case ScaleTruncate:
		return "truncate"
	}
	return fmt.Sprintf("ScaleMode(%d)", uint8(m))
}

func (m ScaleMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *ScaleMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "auto-offset", "":
		*m = ScaleAutoOffset
	case "truncate":
		*m = ScaleTruncate
	default:
		return fmt.Errorf("unknown scale mode %q", text)
	}
	return nil
}

// Scale attenuates value by scale/256. The result is 0 if and only if one of
// the inputs is 0. The rounding rule is part of the output format and must
// not change: rendered streams are compared byte for byte.
func Scale(value, scale uint8, mode ScaleMode) uint8 {
	if value == 0 || scale == 0 {
		return 0
	}
	scaled := uint8((uint16(value)*uint16(scale))>>8) + 1
	if mode == ScaleTruncate {
		return scaled
	}
	return scaled + (value-scaled)/2
}
