package simdsha256

import "testing"

func TestSpliceNonces4Permutation(t *testing.T) {
	var blockVec BlockVec4
	spliceNonces4(&blockVec, 100)

	want := Vec4{103, 102, 101, 100} // lane i carries base + laneOffset4[i]
	if blockVec[3] != want {
		t.Fatalf("spliceNonces4(100) word3 = %v, want %v", blockVec[3], want)
	}
}

func TestSpliceNonces8Permutation(t *testing.T) {
	var blockVec BlockVec8
	spliceNonces8(&blockVec, 200)

	want := Vec8{207, 206, 205, 204, 203, 202, 201, 200}
	if blockVec[3] != want {
		t.Fatalf("spliceNonces8(200) word3 = %v, want %v", blockVec[3], want)
	}
}

func TestSpliceNoncesOnlyTouchesWordThree(t *testing.T) {
	var blockVec BlockVec4
	blockVec[0] = Vec4{1, 2, 3, 4}
	blockVec[15] = Vec4{9, 9, 9, 9}

	spliceNonces4(&blockVec, 40)

	if blockVec[0] != (Vec4{1, 2, 3, 4}) {
		t.Fatalf("word0 was clobbered: %v", blockVec[0])
	}
	if blockVec[15] != (Vec4{9, 9, 9, 9}) {
		t.Fatalf("word15 was clobbered: %v", blockVec[15])
	}
}
