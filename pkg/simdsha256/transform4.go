package simdsha256

// Transform4 computes one SHA-256 block compression independently for
// each of the four lanes of a W=4 lane-vector register: for every lane
// i, result[*][i] == scalar SHA-256 compress(state[*][i], block[*][i]).
//
// There is no cross-lane data dependency in SHA-256 compression, so a
// real SIMD backend computes the 64 rounds once across all four lanes
// in parallel registers; this portable backend expresses the same
// contract by running the identical scalar round function per lane.
// Either implementation must agree bit-for-bit — that agreement is
// exactly property 1 in spec.md §8 (lane independence) and is what
// transform_test.go checks.
func Transform4(state StateVec4, block BlockVec4) StateVec4 {
	var out StateVec4
	var laneState State
	var laneBlock Block

	for lane := 0; lane < 4; lane++ {
		for i := 0; i < 8; i++ {
			laneState[i] = state[i][lane]
		}
		for i := 0; i < 16; i++ {
			laneBlock[i] = block[i][lane]
		}

		result := transformScalar(laneState, laneBlock)

		for i := 0; i < 8; i++ {
			out[i][lane] = result[i]
		}
	}

	return out
}
