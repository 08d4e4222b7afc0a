package simdsha256

// Vec4 and Vec8 are the two lane-vector widths the core is instantiated
// at: W=4 (the equivalent of a 128-bit SIMD register of four 32-bit
// lanes) and W=8 (a 256-bit register of eight lanes). Elementwise
// operations act independently per lane; there is no cross-lane data
// dependency anywhere in the transform, which is what makes the
// abstraction sound for real SIMD backends even though this
// implementation expresses it with plain Go loops.
type Vec4 [4]Word
type Vec8 [8]Word

// StateVec4/StateVec8 and BlockVec4/BlockVec8 are the lane-vector forms
// of State and Block: each of the 8 (resp. 16) words becomes a
// lane-vector whose W lanes hold W independent per-nonce values.
type StateVec4 [8]Vec4
type BlockVec4 [16]Vec4

type StateVec8 [8]Vec8
type BlockVec8 [16]Vec8

func broadcast4(x Word) Vec4 {
	return Vec4{x, x, x, x}
}

func broadcast8(x Word) Vec8 {
	return Vec8{x, x, x, x, x, x, x, x}
}

func broadcastState4(s State) StateVec4 {
	var out StateVec4
	for i, w := range s {
		out[i] = broadcast4(w)
	}
	return out
}

func broadcastState8(s State) StateVec8 {
	var out StateVec8
	for i, w := range s {
		out[i] = broadcast8(w)
	}
	return out
}

func broadcastBlock4(b Block) BlockVec4 {
	var out BlockVec4
	for i, w := range b {
		out[i] = broadcast4(w)
	}
	return out
}

func broadcastBlock8(b Block) BlockVec8 {
	var out BlockVec8
	for i, w := range b {
		out[i] = broadcast8(w)
	}
	return out
}

// anyNonZero4 is the portable equivalent of a SIMD movemask-and-test:
// a fast "is any lane nonzero" predicate without reinterpreting the
// vector's bits through a pointer cast.
func anyNonZero4(v Vec4) bool {
	return v[0] != 0 || v[1] != 0 || v[2] != 0 || v[3] != 0
}

func anyNonZero8(v Vec8) bool {
	for _, w := range v {
		if w != 0 {
			return true
		}
	}
	return false
}
