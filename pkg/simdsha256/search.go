package simdsha256

// reportThreshold is T, the number of hashes between progress-callback
// invocations (spec.md §4.4 step 7). It must be a power of two in
// [2^16, 2^20] and a multiple of W for every supported width; 1<<16
// satisfies both for W∈{4,8} and keeps cancellation latency low.
const reportThreshold = 1 << 16

// maxNonce is the true 32-bit unsigned maximum, 0xFFFFFFFF. spec.md §9
// open question 3 flags that some source variants mis-defined this as
// INT32_MAX (0x7FFFFFFF); Search4/Search8 must scan the full 32-bit
// space, so this is the genuine ^uint32(0).
const maxNonce Word = 0xFFFFFFFF

// difficultyThreshold bounds the tail word (hash2[7]) a candidate
// second-round hash must clear to count as a solution: hash2[7] <
// difficultyThreshold. This is the same simplified Difficulty 1 target
// pkg/hashing/core.CanonicalSHA256.IsValidDifficulty1 checks against
// hash[28:32] — the two packages intentionally don't share an import
// (this package stays dependency-free of the domain layer), so the
// constant is kept in sync by hand rather than shared.
const difficultyThreshold Word = 0x10

// SearchInputs is the immutable scalar input to a single search call
// (spec.md §3). All four fields are pre-computed by the caller; the
// core never constructs a header, computes a midstate, or pads a
// block itself.
type SearchInputs struct {
	// Round1Midstate is the SHA-256 chaining value after the header's
	// first 512-bit block has been absorbed.
	Round1Midstate State

	// Round1Block2 is the header's second 512-bit block. Word index 3
	// is the nonce placeholder; every other word, including the
	// trailing SHA-256 padding, is fixed across iterations.
	Round1Block2 Block

	// Round2InitState is the starting chaining value for the second
	// hash round — normally the FIPS 180-4 H0 constants.
	Round2InitState State

	// Round2Block1 is the pre-padded block whose first 8 words are
	// scratch (overwritten every iteration with round 1's output) and
	// whose last 8 words already hold the SHA-256 padding for a
	// 32-byte message.
	Round2Block1 Block
}

// ProgressCallback is invoked synchronously at intervals of
// reportThreshold hashes. hashCount always equals reportThreshold, not
// a running total. Returning false cancels the search: no further
// batch starts once the callback has returned false.
type ProgressCallback func(hashCount uint32) bool

// SearchOutput is the result of a search call: either a found nonce, or
// an absent value that does not distinguish "exhausted the range" from
// "cancelled by the callback" (spec.md §4.4's failure model collapses
// both into one result).
type SearchOutput struct {
	Nonce Word
	Found bool
}

// Search4 scans nonces 0..2^32-1 in batches of 4, returning the first
// (smallest) nonce whose second-round hash has a tail word below
// difficultyThreshold, or a not-found result if the range is exhausted
// or progress cancels the search.
func Search4(inputs SearchInputs, progress ProgressCallback) SearchOutput {
	return SearchRange4(inputs, 0, maxNonce, progress)
}

// SearchRange4 is Search4 narrowed to a caller-chosen inclusive nonce
// range [start, end]. It is not one of the two canonical host-facing
// entry points spec.md §4.5 describes — those always cover the full
// 32-bit space — but job-level range sharding (explicitly out of this
// package's scope, spec.md §1) needs a way to bound a single worker's
// share of the space without re-scanning from zero every time, so it is
// exposed here rather than reimplemented by every caller.
func SearchRange4(inputs SearchInputs, start, end Word, progress ProgressCallback) SearchOutput {
	midstateVec := broadcastState4(inputs.Round1Midstate)
	block2Vec := broadcastBlock4(inputs.Round1Block2)
	initStateVec := broadcastState4(inputs.Round2InitState)
	block1Vec := broadcastBlock4(inputs.Round2Block1)

	var tried uint32
	for base := uint64(start); base <= uint64(end); base += 4 {
		nonce := Word(base)
		spliceNonces4(&block2Vec, nonce)

		hash1 := Transform4(midstateVec, block2Vec)
		for i := 0; i < 8; i++ {
			block1Vec[i] = hash1[i]
		}

		hash2 := Transform4(initStateVec, block1Vec)

		if lane, ok := firstQualifyingLane4(hash2[7]); ok && base+uint64(laneOffset4[lane]) <= uint64(end) {
			return SearchOutput{Nonce: EndianSwap32(nonce + laneOffset4[lane]), Found: true}
		}

		tried += 4
		if tried >= reportThreshold {
			if !progress(tried) {
				return SearchOutput{}
			}
			tried = 0
		}
	}

	return SearchOutput{}
}

// firstQualifyingLane4 scans a batch's four candidate tail words
// against difficultyThreshold and reports the lane carrying the
// smallest nonce among any matches (spec.md §4.4 step 5: ties within a
// batch resolve to the smallest nonce). Lane π is laneOffset4, so the
// smallest-nonce lane is scanned first by walking lane indices in
// decreasing order.
func firstQualifyingLane4(tail Vec4) (lane int, ok bool) {
	for _, l := range [4]int{3, 2, 1, 0} {
		if tail[l] < difficultyThreshold {
			return l, true
		}
	}
	return 0, false
}

// firstQualifyingLane8 is firstQualifyingLane4's W=8 counterpart.
func firstQualifyingLane8(tail Vec8) (lane int, ok bool) {
	for _, l := range [8]int{7, 6, 5, 4, 3, 2, 1, 0} {
		if tail[l] < difficultyThreshold {
			return l, true
		}
	}
	return 0, false
}

// Search8 is Search4's W=8 counterpart.
func Search8(inputs SearchInputs, progress ProgressCallback) SearchOutput {
	return SearchRange8(inputs, 0, maxNonce, progress)
}

// SearchRange8 is SearchRange4's W=8 counterpart.
func SearchRange8(inputs SearchInputs, start, end Word, progress ProgressCallback) SearchOutput {
	midstateVec := broadcastState8(inputs.Round1Midstate)
	block2Vec := broadcastBlock8(inputs.Round1Block2)
	initStateVec := broadcastState8(inputs.Round2InitState)
	block1Vec := broadcastBlock8(inputs.Round2Block1)

	var tried uint32
	for base := uint64(start); base <= uint64(end); base += 8 {
		nonce := Word(base)
		spliceNonces8(&block2Vec, nonce)

		hash1 := Transform8(midstateVec, block2Vec)
		for i := 0; i < 8; i++ {
			block1Vec[i] = hash1[i]
		}

		hash2 := Transform8(initStateVec, block1Vec)

		if lane, ok := firstQualifyingLane8(hash2[7]); ok && base+uint64(laneOffset8[lane]) <= uint64(end) {
			return SearchOutput{Nonce: EndianSwap32(nonce + laneOffset8[lane]), Found: true}
		}

		tried += 8
		if tried >= reportThreshold {
			if !progress(tried) {
				return SearchOutput{}
			}
			tried = 0
		}
	}

	return SearchOutput{}
}
