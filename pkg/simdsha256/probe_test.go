package simdsha256

import "testing"

func TestCapabilitiesBestTier(t *testing.T) {
	cases := []struct {
		name string
		caps Capabilities
		want Tier
	}{
		{"scalar only", Capabilities{Scalar: true}, TierScalar},
		{"simd128", Capabilities{Scalar: true, SIMD128: true}, TierSIMD128},
		{"simd256 wins over simd128", Capabilities{Scalar: true, SIMD128: true, SIMD256: true}, TierSIMD256},
	}
	for _, c := range cases {
		if got := c.caps.BestTier(); got != c.want {
			t.Errorf("%s: BestTier() = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestTierWidth(t *testing.T) {
	if TierScalar.Width() != 0 {
		t.Errorf("TierScalar.Width() = %d, want 0", TierScalar.Width())
	}
	if TierSIMD128.Width() != 4 {
		t.Errorf("TierSIMD128.Width() = %d, want 4", TierSIMD128.Width())
	}
	if TierSIMD256.Width() != 8 {
		t.Errorf("TierSIMD256.Width() = %d, want 8", TierSIMD256.Width())
	}
}

func TestProbeAlwaysReportsScalar(t *testing.T) {
	caps := Probe()
	if !caps.Scalar {
		t.Fatal("Probe() must always report Scalar support")
	}
	if caps.SIMD256 && !caps.SIMD128 {
		t.Fatal("a host with AVX but not SSE2/SSSE3 is not a real tier progression")
	}
}
