package numeric

import "testing"

func TestSignZeroIsPositive(t *testing.T) {
	if Sign(0) != 1 {
		t.Errorf("Sign(0) = %d, want 1", Sign(0))
	}
	if Sign(-5) != -1 {
		t.Errorf("Sign(-5) = %d, want -1", Sign(-5))
	}
	if Sign(5) != 1 {
		t.Errorf("Sign(5) = %d, want 1", Sign(5))
	}
}

func TestFloorDiv(t *testing.T) {
	cases := []struct{ a, b, want int64 }{
		{7, 2, 3},
		{-7, 2, -4},
		{7, -2, -4},
		{-7, -2, 3},
		{0, 5, 0},
	}
	for _, c := range cases {
		if got := FloorDiv(c.a, c.b); got != c.want {
			t.Errorf("FloorDiv(%d,%d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestClip(t *testing.T) {
	if got := Clip(5, 0, 3); got != 3 {
		t.Errorf("Clip(5,0,3) = %d, want 3", got)
	}
	if got := Clip(-5, 0, 3); got != 0 {
		t.Errorf("Clip(-5,0,3) = %d, want 0", got)
	}
	if got := Clip(2, 0, 3); got != 2 {
		t.Errorf("Clip(2,0,3) = %d, want 2", got)
	}
}

func TestSignedMod(t *testing.T) {
	cases := []struct {
		x    int64
		bits uint
		want int64
	}{
		{0, 8, 0},
		{255, 8, -1},
		{128, 8, -128},
		{127, 8, 127},
		{256, 8, 0},
	}
	for _, c := range cases {
		if got := SignedMod(c.x, c.bits); got != c.want {
			t.Errorf("SignedMod(%d,%d) = %d, want %d", c.x, c.bits, got, c.want)
		}
	}
}

func TestSignExtend(t *testing.T) {
	cases := []struct {
		v    uint64
		bits int
		want int64
	}{
		{0, 10, 0},
		{1, 10, 1},
		{1023, 10, -1},
		{512, 10, -512},
		{511, 10, 511},
	}
	for _, c := range cases {
		if got := SignExtend(c.v, c.bits); got != c.want {
			t.Errorf("SignExtend(%d,%d) = %d, want %d", c.v, c.bits, got, c.want)
		}
	}
}
