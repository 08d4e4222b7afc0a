package main

import (
	"strings"
	"testing"
	"time"

	"hasher/pkg/simdsha256"
)

func TestResolveHeaderRandomWhenEmpty(t *testing.T) {
	header, err := resolveHeader("")
	if err != nil {
		t.Fatalf("resolveHeader(\"\") returned error: %v", err)
	}
	if len(header) != 80 {
		t.Fatalf("expected 80-byte header, got %d bytes", len(header))
	}
}

func TestResolveHeaderDecodesHex(t *testing.T) {
	hexHeader := strings.Repeat("ab", 80)
	header, err := resolveHeader(hexHeader)
	if err != nil {
		t.Fatalf("resolveHeader returned error: %v", err)
	}
	if len(header) != 80 {
		t.Fatalf("expected 80-byte header, got %d bytes", len(header))
	}
	for _, b := range header {
		if b != 0xab {
			t.Fatalf("expected every byte to be 0xab, got 0x%02x", b)
		}
	}
}

func TestResolveHeaderRejectsWrongLength(t *testing.T) {
	if _, err := resolveHeader("abcd"); err == nil {
		t.Fatal("expected an error for a header shorter than 80 bytes")
	}
}

func TestResolveHeaderRejectsInvalidHex(t *testing.T) {
	if _, err := resolveHeader("not-hex"); err == nil {
		t.Fatal("expected an error for invalid hex")
	}
}

func TestResolveTier(t *testing.T) {
	cases := []struct {
		name string
		want simdsha256.Tier
	}{
		{"simd256", simdsha256.TierSIMD256},
		{"simd128", simdsha256.TierSIMD128},
		{"scalar", simdsha256.TierScalar},
	}
	for _, tc := range cases {
		got, err := resolveTier(tc.name)
		if err != nil {
			t.Fatalf("resolveTier(%q) returned error: %v", tc.name, err)
		}
		if got != tc.want {
			t.Errorf("resolveTier(%q) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestResolveTierAutoMatchesProbe(t *testing.T) {
	got, err := resolveTier("auto")
	if err != nil {
		t.Fatalf("resolveTier(\"auto\") returned error: %v", err)
	}
	if got != simdsha256.Probe().BestTier() {
		t.Errorf("resolveTier(\"auto\") = %v, want %v", got, simdsha256.Probe().BestTier())
	}
}

func TestResolveTierRejectsUnknown(t *testing.T) {
	if _, err := resolveTier("quantum"); err == nil {
		t.Fatal("expected an error for an unknown tier name")
	}
}

func TestDashboardModelProgressAccumulates(t *testing.T) {
	m := newModel("deadbeef", simdsha256.TierScalar)

	updated, _ := m.Update(progressMsg{hashCount: 1 << 16, elapsed: 10 * time.Millisecond})
	dm := updated.(dashboardModel)

	if dm.hashesDone != 1<<16 {
		t.Errorf("hashesDone = %d, want %d", dm.hashesDone, uint64(1<<16))
	}
	if dm.done {
		t.Error("model should not be done after a progress message")
	}
}

func TestDashboardModelDoneOnFound(t *testing.T) {
	m := newModel("deadbeef", simdsha256.TierScalar)

	updated, cmd := m.Update(doneMsg{output: simdsha256.SearchOutput{Nonce: 42, Found: true}, elapsed: time.Second})
	dm := updated.(dashboardModel)

	if !dm.done || !dm.found {
		t.Fatal("expected done and found to be true")
	}
	if dm.foundNonce != 42 {
		t.Errorf("foundNonce = %d, want 42", dm.foundNonce)
	}
	if cmd == nil {
		t.Error("expected a tea.Quit command after doneMsg")
	}
}

func TestDashboardModelDoneOnCancelWithoutSolution(t *testing.T) {
	m := newModel("deadbeef", simdsha256.TierScalar)

	updated, _ := m.Update(doneMsg{output: simdsha256.SearchOutput{}, cancelled: true, elapsed: time.Second})
	dm := updated.(dashboardModel)

	if !dm.done || dm.found {
		t.Fatal("expected done=true, found=false")
	}
	if !dm.cancelled {
		t.Error("expected cancelled to be true")
	}
}

func TestDashboardModelViewIncludesHeaderAndTier(t *testing.T) {
	m := newModel("deadbeef", simdsha256.TierSIMD256)
	view := m.View()

	if !strings.Contains(view, "deadbeef") {
		t.Error("view should contain the header hex")
	}
	if !strings.Contains(view, "simd256") {
		t.Error("view should contain the tier name")
	}
}
