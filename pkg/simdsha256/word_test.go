package simdsha256

import "testing"

func TestEndianSwap32(t *testing.T) {
	cases := []struct {
		in, want Word
	}{
		{0x00000000, 0x00000000},
		{0x01020304, 0x04030201},
		{0xb27c3d02, 0x023d7cb2},
		{0xffffffff, 0xffffffff},
	}
	for _, tc := range cases {
		if got := EndianSwap32(tc.in); got != tc.want {
			t.Errorf("EndianSwap32(%#08x) = %#08x, want %#08x", tc.in, got, tc.want)
		}
	}
}

func TestEndianSwap32IsSelfInverse(t *testing.T) {
	for _, w := range []Word{0, 1, 0xdeadbeef, 0xffffffff, 0x80000000} {
		if got := EndianSwap32(EndianSwap32(w)); got != w {
			t.Errorf("EndianSwap32(EndianSwap32(%#08x)) = %#08x, want %#08x", w, got, w)
		}
	}
}
