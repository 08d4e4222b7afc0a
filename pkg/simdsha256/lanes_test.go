package simdsha256

import "testing"

func TestBroadcastState4(t *testing.T) {
	got := broadcastState4(InitialState)
	for i, w := range InitialState {
		if got[i] != (Vec4{w, w, w, w}) {
			t.Fatalf("word %d: got %v, want all lanes %#x", i, got[i], w)
		}
	}
}

func TestBroadcastBlock8(t *testing.T) {
	got := broadcastBlock8(emptyStringPadBlock)
	for i, w := range emptyStringPadBlock {
		if got[i] != (Vec8{w, w, w, w, w, w, w, w}) {
			t.Fatalf("word %d: got %v, want all lanes %#x", i, got[i], w)
		}
	}
}

func TestAnyNonZero4(t *testing.T) {
	if anyNonZero4(Vec4{0, 0, 0, 0}) {
		t.Fatal("all-zero vector reported non-zero")
	}
	if !anyNonZero4(Vec4{0, 0, 1, 0}) {
		t.Fatal("vector with a nonzero lane reported all-zero")
	}
}

func TestAnyNonZero8(t *testing.T) {
	if anyNonZero8(Vec8{}) {
		t.Fatal("all-zero vector reported non-zero")
	}
	if !anyNonZero8(Vec8{0, 0, 0, 0, 0, 0, 0, 7}) {
		t.Fatal("vector with a nonzero lane reported all-zero")
	}
}
