package simdsha256

import "github.com/klauspost/cpuid/v2"

// Tier identifies a SIMD width the core can be driven at.
type Tier int

const (
	// TierScalar has no usable SIMD extension; Search4/Search8 still
	// work (the lanes are simulated), but a real vector backend would
	// have nothing to vectorise over.
	TierScalar Tier = iota
	// TierSIMD128 corresponds to a 128-bit register, 4 lanes of Word.
	TierSIMD128
	// TierSIMD256 corresponds to a 256-bit register, 8 lanes of Word.
	TierSIMD256
)

func (t Tier) String() string {
	switch t {
	case TierSIMD256:
		return "simd256"
	case TierSIMD128:
		return "simd128"
	default:
		return "scalar"
	}
}

// Width returns the lane count a tier drives: 0 for TierScalar (no
// vector search loop applies), 4 for TierSIMD128, 8 for TierSIMD256.
func (t Tier) Width() int {
	switch t {
	case TierSIMD256:
		return 8
	case TierSIMD128:
		return 4
	default:
		return 0
	}
}

// Capabilities is a snapshot of which SIMD tiers the host CPU supports,
// taken once and assumed not to change for the process lifetime
// (spec.md §4.2).
type Capabilities struct {
	Scalar   bool
	SIMD128  bool
	SIMD256  bool
	Features []string
}

// Probe reports the SIMD tiers available on the current host. Detection
// uses the standard x86 feature bits: AVX implies the simd256 tier is
// usable (8-lane search), SSE2/SSSE3 implies the simd128 tier (4-lane
// search). Scalar is always available.
//
// This wraps github.com/klauspost/cpuid/v2 rather than reading
// /proc/cpuinfo or CPUID bits by hand — exactly the capability-probe
// primitive spec.md §4.2 describes, off the shelf.
func Probe() Capabilities {
	caps := Capabilities{Scalar: true}

	if cpuid.CPU.Supports(cpuid.SSE2, cpuid.SSSE3) {
		caps.SIMD128 = true
	}
	if cpuid.CPU.Supports(cpuid.AVX) {
		caps.SIMD256 = true
	}

	for _, feat := range []struct {
		name string
		has  bool
	}{
		{"SSE2", cpuid.CPU.Supports(cpuid.SSE2)},
		{"SSSE3", cpuid.CPU.Supports(cpuid.SSSE3)},
		{"AVX", cpuid.CPU.Supports(cpuid.AVX)},
		{"AVX2", cpuid.CPU.Supports(cpuid.AVX2)},
	} {
		if feat.has {
			caps.Features = append(caps.Features, feat.name)
		}
	}

	return caps
}

// BestTier returns the widest tier Capabilities reports as available.
func (c Capabilities) BestTier() Tier {
	switch {
	case c.SIMD256:
		return TierSIMD256
	case c.SIMD128:
		return TierSIMD128
	default:
		return TierScalar
	}
}
