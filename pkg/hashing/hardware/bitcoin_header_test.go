package hardware

import (
	"testing"

	"hasher/pkg/hashing/core"
	"hasher/pkg/simdsha256"
)

func TestBuildSearchInputsRejectsWrongLength(t *testing.T) {
	if _, err := BuildSearchInputs(make([]byte, 79)); err == nil {
		t.Fatal("expected an error for a header shorter than 80 bytes")
	}
}

// TestBuildSearchInputsAgreesWithScalarDoubleHash checks BuildSearchInputs
// against the independent crypto/sha256-based reference path: feeding the
// produced SearchInputs through simdsha256.Compress twice must match
// CanonicalSHA256.ComputeDoubleSHA256WithNonce for the same header and
// nonce.
func TestBuildSearchInputsAgreesWithScalarDoubleHash(t *testing.T) {
	header := NewHeader([32]byte{1}, [32]byte{2}, 1700000000, 0)
	header = WithNonce(header, 0x01020304)

	inputs, err := BuildSearchInputs(header)
	if err != nil {
		t.Fatalf("BuildSearchInputs: %v", err)
	}

	// The header carries the nonce little-endian (bytes 04 03 02 01), so
	// the big-endian block word 3 holds its byte swap.
	block2 := inputs.Round1Block2
	block2[3] = simdsha256.EndianSwap32(0x01020304)

	hash1 := simdsha256.Compress(inputs.Round1Midstate, block2)
	round2 := inputs.Round2Block1
	for i, w := range hash1 {
		round2[i] = w
	}
	hash2 := simdsha256.Compress(inputs.Round2InitState, round2)

	var digest [32]byte
	for i, w := range hash2 {
		digest[i*4] = byte(w >> 24)
		digest[i*4+1] = byte(w >> 16)
		digest[i*4+2] = byte(w >> 8)
		digest[i*4+3] = byte(w)
	}

	canon := core.NewCanonicalSHA256()
	want, err := canon.ComputeDoubleSHA256WithNonce(header, 0x01020304)
	if err != nil {
		t.Fatalf("ComputeDoubleSHA256WithNonce: %v", err)
	}

	if digest != want {
		t.Fatalf("BuildSearchInputs-derived hash mismatch:\n got  %x\n want %x", digest, want)
	}
}

func TestNewHeaderDefaultsBitsWhenZero(t *testing.T) {
	header := NewHeader([32]byte{}, [32]byte{}, 0, 0)
	if len(header) != headerLen {
		t.Fatalf("NewHeader produced %d bytes, want %d", len(header), headerLen)
	}
	if got := header[72]; got != 0xff {
		t.Fatalf("bits field not defaulted: header[72] = %#x, want 0xff", got)
	}
}

func TestWithNonceRoundTrips(t *testing.T) {
	header := NewHeader([32]byte{}, [32]byte{}, 0, 0)
	withNonce := WithNonce(header, 0xdeadbeef)

	nonce, err := ExtractNonce(withNonce)
	if err != nil {
		t.Fatalf("ExtractNonce: %v", err)
	}
	if nonce != 0xdeadbeef {
		t.Fatalf("ExtractNonce = %#x, want 0xdeadbeef", nonce)
	}

	if withNonce[0] != header[0] {
		t.Fatal("WithNonce should not mutate fields other than the nonce")
	}
}

func TestWithNonceDoesNotMutateInput(t *testing.T) {
	header := NewHeader([32]byte{}, [32]byte{}, 0, 0)
	original := append([]byte(nil), header...)

	WithNonce(header, 0xffffffff)

	for i := range header {
		if header[i] != original[i] {
			t.Fatalf("WithNonce mutated its input at byte %d", i)
		}
	}
}

func TestValidateHeader(t *testing.T) {
	if !ValidateHeader(make([]byte, 80)) {
		t.Error("80-byte header should validate")
	}
	if ValidateHeader(make([]byte, 79)) {
		t.Error("79-byte header should not validate")
	}
}
