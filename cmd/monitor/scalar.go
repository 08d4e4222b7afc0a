package main

import (
	"encoding/binary"

	"hasher/pkg/hashing/core"
	"hasher/pkg/simdsha256"
)

// scalarSearchWithProgress is the monitor's own tier-0 reference path —
// the scalar tier has no vector search loop to drive, so it walks the
// full nonce space one hash at a time, reporting progress at the same
// reportThreshold cadence Search4/Search8 use.
func scalarSearchWithProgress(inputs simdsha256.SearchInputs, progress simdsha256.ProgressCallback) simdsha256.SearchOutput {
	canon := core.NewCanonicalSHA256()
	block2 := inputs.Round1Block2

	var tried uint32
	nonce := uint32(0)
	for {
		block2[3] = simdsha256.Word(nonce)

		hash1 := simdsha256.Compress(inputs.Round1Midstate, block2)
		round2 := inputs.Round2Block1
		for i, w := range hash1 {
			round2[i] = w
		}
		hash2 := simdsha256.Compress(inputs.Round2InitState, round2)

		var digest [32]byte
		for i, w := range hash2 {
			binary.BigEndian.PutUint32(digest[i*4:], uint32(w))
		}
		if canon.IsValidDifficulty1(digest) {
			return simdsha256.SearchOutput{Nonce: simdsha256.EndianSwap32(simdsha256.Word(nonce)), Found: true}
		}

		tried++
		if tried >= reportThreshold {
			if !progress(tried) {
				return simdsha256.SearchOutput{}
			}
			tried = 0
		}

		if nonce == 0xFFFFFFFF {
			break
		}
		nonce++
	}

	return simdsha256.SearchOutput{}
}
