package encode

// Quantize maps one float sample to its 16-bit value. Samples are
// clamped to [-1, 1] first and never trusted to be in range. Negative
// values scale by 32768 and the rest by 32767, so the full signed range
// [-32768, 32767] is reachable without overflow. Conversion truncates
// toward zero; the arithmetic runs in float64 so equal inputs always
// produce equal outputs.
func Quantize(sample float32) int16 {
	f := float64(sample)
	if f < -1 {
		f = -1
	}
	if f > 1 {
		f = 1
	}
	if f < 0 {
		return int16(f * 32768)
	}
	return int16(f * 32767)
}
