package simdsha256

import "testing"

// emptyStringDigest is the well-known SHA-256 digest of the zero-length
// message, decoded into big-endian words. It doubles as the FIPS 180-4
// test vector and as the reference for transformScalar itself.
var emptyStringDigest = State{
	0xe3b0c442, 0x98fc1c14, 0x9afbf4c8, 0x996fb924,
	0x27ae41e4, 0x649b934c, 0xa495991b, 0x7852b855,
}

// doubleEmptyStringDigest is sha256(sha256("")).
var doubleEmptyStringDigest = State{
	0x5df6e0e2, 0x761359d3, 0x0a827505, 0x8e299fcc,
	0x03815345, 0x45f55cf4, 0x3e41983f, 0x5d4c9456,
}

// emptyStringPadBlock is the single padding block SHA-256 processes for
// a zero-length message: a lone 0x80 byte, zero fill, and a 64-bit
// big-endian bit-length of 0.
var emptyStringPadBlock = Block{0x80000000}

func TestTransformScalarKnownAnswer(t *testing.T) {
	got := transformScalar(InitialState, emptyStringPadBlock)
	if got != emptyStringDigest {
		t.Fatalf("sha256('') mismatch:\n got  %08x\n want %08x", got, emptyStringDigest)
	}
}

func TestTransformScalarDoubleHash(t *testing.T) {
	h1 := transformScalar(InitialState, emptyStringPadBlock)

	var block2 Block
	for i, w := range h1 {
		block2[i] = w
	}
	block2[8] = 0x80000000 // pad a 32-byte message
	block2[15] = 256       // bit length of a 32-byte message

	got := transformScalar(InitialState, block2)
	if got != doubleEmptyStringDigest {
		t.Fatalf("sha256(sha256('')) mismatch:\n got  %08x\n want %08x", got, doubleEmptyStringDigest)
	}
}

func TestTransformScalarDeterministic(t *testing.T) {
	s1 := transformScalar(InitialState, emptyStringPadBlock)
	s2 := transformScalar(InitialState, emptyStringPadBlock)
	if s1 != s2 {
		t.Fatalf("transformScalar is not deterministic: %08x != %08x", s1, s2)
	}
}

// varied builds a Block that differs per seed, so per-lane inputs in the
// lane-independence tests are genuinely distinct rather than broadcasts
// of one value.
func varied(seed Word) Block {
	var b Block
	for i := range b {
		b[i] = seed*0x9e3779b1 + Word(i)*0x85ebca6b
	}
	return b
}

func variedState(seed Word) State {
	var s State
	for i := range s {
		s[i] = InitialState[i] ^ (seed*0x27d4eb2f + Word(i))
	}
	return s
}

func TestTransform4LaneIndependence(t *testing.T) {
	var stateVec StateVec4
	var blockVec BlockVec4
	var want [4]State

	for lane := 0; lane < 4; lane++ {
		s := variedState(Word(lane + 1))
		b := varied(Word(lane + 1))
		want[lane] = transformScalar(s, b)
		for i := 0; i < 8; i++ {
			stateVec[i][lane] = s[i]
		}
		for i := 0; i < 16; i++ {
			blockVec[i][lane] = b[i]
		}
	}

	got := Transform4(stateVec, blockVec)

	for lane := 0; lane < 4; lane++ {
		var gotState State
		for i := 0; i < 8; i++ {
			gotState[i] = got[i][lane]
		}
		if gotState != want[lane] {
			t.Fatalf("lane %d mismatch:\n got  %08x\n want %08x", lane, gotState, want[lane])
		}
	}
}

func TestTransform8LaneIndependence(t *testing.T) {
	var stateVec StateVec8
	var blockVec BlockVec8
	var want [8]State

	for lane := 0; lane < 8; lane++ {
		s := variedState(Word(lane + 11))
		b := varied(Word(lane + 11))
		want[lane] = transformScalar(s, b)
		for i := 0; i < 8; i++ {
			stateVec[i][lane] = s[i]
		}
		for i := 0; i < 16; i++ {
			blockVec[i][lane] = b[i]
		}
	}

	got := Transform8(stateVec, blockVec)

	for lane := 0; lane < 8; lane++ {
		var gotState State
		for i := 0; i < 8; i++ {
			gotState[i] = got[i][lane]
		}
		if gotState != want[lane] {
			t.Fatalf("lane %d mismatch:\n got  %08x\n want %08x", lane, gotState, want[lane])
		}
	}
}

func TestTransform4AgreesWithScalarOnBroadcast(t *testing.T) {
	stateVec := broadcastState4(InitialState)
	blockVec := broadcastBlock4(emptyStringPadBlock)

	got := Transform4(stateVec, blockVec)

	for lane := 0; lane < 4; lane++ {
		var gotState State
		for i := 0; i < 8; i++ {
			gotState[i] = got[i][lane]
		}
		if gotState != emptyStringDigest {
			t.Fatalf("broadcast lane %d mismatch:\n got  %08x\n want %08x", lane, gotState, emptyStringDigest)
		}
	}
}
