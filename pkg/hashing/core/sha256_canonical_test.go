package core

import "testing"

func TestComputeDoubleSHA256MatchesTwoSingleHashes(t *testing.T) {
	c := NewCanonicalSHA256()
	data := []byte("hasher")

	got := c.ComputeDoubleSHA256(data)
	first := c.ComputeSHA256(data)
	want := c.ComputeSHA256(first[:])

	if got != want {
		t.Fatalf("ComputeDoubleSHA256 = %x, want %x", got, want)
	}
}

func TestComputeDoubleSHA256WithNonceRejectsWrongLength(t *testing.T) {
	c := NewCanonicalSHA256()
	if _, err := c.ComputeDoubleSHA256WithNonce(make([]byte, 79), 0); err == nil {
		t.Fatal("expected an error for a header shorter than 80 bytes")
	}
}

func TestComputeDoubleSHA256WithNonceWritesLittleEndian(t *testing.T) {
	c := NewCanonicalSHA256()
	header := make([]byte, 80)

	got, err := c.ComputeDoubleSHA256WithNonce(header, 0x01020304)
	if err != nil {
		t.Fatalf("ComputeDoubleSHA256WithNonce: %v", err)
	}

	wantHeader := make([]byte, 80)
	wantHeader[76] = 0x04
	wantHeader[77] = 0x03
	wantHeader[78] = 0x02
	wantHeader[79] = 0x01
	want := c.ComputeDoubleSHA256(wantHeader)

	if got != want {
		t.Fatalf("nonce was not written little-endian: got %x, want %x", got, want)
	}
}

func TestIsValidDifficulty1(t *testing.T) {
	c := NewCanonicalSHA256()

	cases := []struct {
		name string
		hash [32]byte
		want bool
	}{
		{"all-zero hash passes", [32]byte{}, true},
		{"zero tail word and low last byte passes", [32]byte{28: 0, 29: 0, 30: 0, 31: 0x0f}, true},
		{"last byte at threshold fails", [32]byte{31: 0x10}, false},
		{"nonzero byte 30 fails", [32]byte{30: 1}, false},
		{"nonzero byte 28 fails", [32]byte{28: 1}, false},
		{"nonzero leading byte does not affect the tail check", [32]byte{0: 0xff}, true},
	}
	for _, tc := range cases {
		if got := c.IsValidDifficulty1(tc.hash); got != tc.want {
			t.Errorf("%s: IsValidDifficulty1 = %v, want %v", tc.name, got, tc.want)
		}
	}
}

// TestMineForNonceStaysWithinBounds checks the scan invariant rather than
// asserting a solution is found: a solution is astronomically unlikely in
// a range this small, so the only thing safe to assert without running
// the search is that whatever nonce comes back is either a genuine
// difficulty-1 solution or the range's own upper bound, the sentinel for
// "exhausted".
func TestMineForNonceStaysWithinBounds(t *testing.T) {
	c := NewCanonicalSHA256()
	header := make([]byte, 80)
	for i := range header {
		header[i] = byte(i)
	}

	const start, end = 10, 109
	nonce, err := c.MineForNonce(header, start, end)
	if err != nil {
		t.Fatalf("MineForNonce: %v", err)
	}
	if nonce < start || nonce > end {
		t.Fatalf("MineForNonce returned nonce %d outside [%d, %d]", nonce, start, end)
	}

	hash, err := c.ComputeDoubleSHA256WithNonce(header, nonce)
	if err != nil {
		t.Fatalf("ComputeDoubleSHA256WithNonce: %v", err)
	}
	if !c.IsValidDifficulty1(hash) && nonce != end {
		t.Fatalf("nonce %d is neither a valid solution nor the range's exhaustion sentinel", nonce)
	}
}

func TestMineForNonceEmptyRangeReturnsEnd(t *testing.T) {
	c := NewCanonicalSHA256()
	header := make([]byte, 80)

	nonce, err := c.MineForNonce(header, 5, 3)
	if err != nil {
		t.Fatalf("MineForNonce: %v", err)
	}
	if nonce != 3 {
		t.Fatalf("MineForNonce(start=5, end=3) = %d, want 3", nonce)
	}
}
