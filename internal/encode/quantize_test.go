package encode

import "testing"

func TestQuantizeBoundaries(t *testing.T) {
	tests := []struct {
		name string
		in   float32
		want int16
	}{
		{"negative full scale", -1.0, -32768},
		{"positive full scale", 1.0, 32767},
		{"zero", 0, 0},
		{"below range clamps", -2.5, -32768},
		{"above range clamps", 3.0, 32767},
		{"negative half", -0.5, -16384},
		{"positive half truncates", 0.5, 16383}, // 0.5*32767 = 16383.5
		{"negative quarter", -0.25, -8192},
		{"positive quarter truncates", 0.25, 8191}, // 0.25*32767 = 8191.75
		{"one negative step", -1.0 / 32768, -1},
	}
	for _, tt := range tests {
		if got := Quantize(tt.in); got != tt.want {
			t.Errorf("%s: Quantize(%v) = %d, want %d", tt.name, tt.in, got, tt.want)
		}
	}
}

func TestQuantizeAsymmetry(t *testing.T) {
	// The negative side reaches one step further than the positive side.
	neg := Quantize(-1.0)
	pos := Quantize(1.0)
	if int(neg) != -int(pos)-1 {
		t.Errorf("Quantize(-1)=%d, Quantize(1)=%d; want full asymmetric range", neg, pos)
	}
}
