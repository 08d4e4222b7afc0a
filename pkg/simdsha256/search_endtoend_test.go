// This file lives in the simdsha256_test package, not simdsha256, so it
// can import pkg/hashing/hardware (which itself imports simdsha256) to
// build real SearchInputs from a full 80-byte header without creating an
// import cycle in the non-test build.
package simdsha256_test

import (
	"testing"

	"hasher/pkg/hashing/hardware"
	"hasher/pkg/simdsha256"
)

// plantedHeader is an 80-byte Bitcoin-style header with a genuine
// difficulty-1 solution at nonce 37584050, found by brute force: its
// double-SHA-256 digest has hash[28..31] = 0x0000000a. Search4/Search8's
// found path — the branch that calls firstQualifyingLane4/8 and returns
// a swapped nonce — is otherwise never exercised by this package's
// tests, since no arbitrary fixed input is expected to collide with the
// target.
func plantedHeader() []byte {
	return hardware.WithNonce(
		hardware.NewHeader([32]byte{0x11}, [32]byte{0x22}, 1700000000, 0),
		37584050,
	)
}

func TestSearch4FindsPlantedSolution(t *testing.T) {
	inputs, err := hardware.BuildSearchInputs(plantedHeader())
	if err != nil {
		t.Fatalf("BuildSearchInputs: %v", err)
	}

	const plantedNonceInternal = 0xb27c3d02
	const margin = 1 << 10

	out := simdsha256.SearchRange4(inputs, plantedNonceInternal-margin, plantedNonceInternal+margin, func(uint32) bool { return true })
	if !out.Found {
		t.Fatal("Search4 (via SearchRange4) did not find the planted solution")
	}
	if out.Nonce != 37584050 {
		t.Fatalf("Search4 found nonce %d, want planted solution 37584050", out.Nonce)
	}
}

func TestSearch8FindsPlantedSolution(t *testing.T) {
	inputs, err := hardware.BuildSearchInputs(plantedHeader())
	if err != nil {
		t.Fatalf("BuildSearchInputs: %v", err)
	}

	const plantedNonceInternal = 0xb27c3d02
	const margin = 1 << 10

	out := simdsha256.SearchRange8(inputs, plantedNonceInternal-margin, plantedNonceInternal+margin, func(uint32) bool { return true })
	if !out.Found {
		t.Fatal("Search8 (via SearchRange8) did not find the planted solution")
	}
	if out.Nonce != 37584050 {
		t.Fatalf("Search8 found nonce %d, want planted solution 37584050", out.Nonce)
	}
}
