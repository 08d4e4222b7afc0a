// Package simdsha256 implements a data-parallel double-SHA-256 nonce
// search engine for Bitcoin-style proof-of-work mining. It operates on
// pre-computed header fragments (midstate, padded blocks) handed to it
// by a caller and exhaustively scans a contiguous nonce range looking
// for a second-round hash whose final 32-bit word clears a difficulty
// threshold.
//
// Construction of the block header, the first-round midstate, target
// difficulty policy, and job-level threading are all out of scope here
// — see package hardware for that plumbing.
package simdsha256

// Word is the SHA-256 native word size: an unsigned 32-bit integer with
// modular (wraparound) arithmetic.
type Word = uint32

// State is the 8-word SHA-256 chaining value, a..h.
type State [8]Word

// Block is one 512-bit SHA-256 input block, already decoded into 16
// big-endian words.
type Block [16]Word

// EndianSwap32 reverses the byte order of a 32-bit word. The search
// loop applies this to a found nonce before returning it (spec.md §6):
// the value is produced in the iteration's internal byte order but
// wire-reported the way the Bitcoin header nonce field is laid out.
// Exported so callers building their own bounded or tiered searches on
// top of Compress/Transform4/Transform8 (e.g. package software's scalar
// tier) apply the identical convention rather than inventing their own.
func EndianSwap32(x Word) Word {
	return (x>>24)&0xff | (x>>8)&0xff00 | (x<<8)&0xff0000 | (x << 24)
}

func rotr(x Word, n uint) Word {
	return (x >> n) | (x << (32 - n))
}

func shr(x Word, n uint) Word {
	return x >> n
}

func ch(x, y, z Word) Word {
	return (x & y) ^ (^x & z)
}

func maj(x, y, z Word) Word {
	return (x & y) ^ (x & z) ^ (y & z)
}

func bigSigma0(x Word) Word {
	return rotr(x, 2) ^ rotr(x, 13) ^ rotr(x, 22)
}

func bigSigma1(x Word) Word {
	return rotr(x, 6) ^ rotr(x, 11) ^ rotr(x, 25)
}

func smallSigma0(x Word) Word {
	return rotr(x, 7) ^ rotr(x, 18) ^ shr(x, 3)
}

func smallSigma1(x Word) Word {
	return rotr(x, 17) ^ rotr(x, 19) ^ shr(x, 10)
}

// k holds the 64 FIPS 180-4 SHA-256 round constants.
var k = [64]Word{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5,
	0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3,
	0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc,
	0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7,
	0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13,
	0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3,
	0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5,
	0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208,
	0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

// InitialState holds the FIPS 180-4 H0 constants, the standard starting
// chaining value for a fresh SHA-256 computation.
var InitialState = State{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

// Compress runs one scalar SHA-256 block compression. Callers outside
// this package use it to fold a header's fixed leading blocks into a
// midstate before handing the result to Search4/Search8 as
// SearchInputs.Round1Midstate — the core never builds a header or a
// midstate itself (spec.md §3).
func Compress(state State, block Block) State {
	return transformScalar(state, block)
}

// transformScalar computes one SHA-256 block compression for a single
// lane. It is the reference against which the vectorised transforms
// (transform4.go, transform8.go) are tested for bit-exact agreement.
func transformScalar(state State, block Block) State {
	var w [64]Word
	copy(w[:16], block[:])
	for t := 16; t < 64; t++ {
		w[t] = smallSigma1(w[t-2]) + w[t-7] + smallSigma0(w[t-15]) + w[t-16]
	}

	a, b, c, d, e, f, g, h := state[0], state[1], state[2], state[3], state[4], state[5], state[6], state[7]

	for t := 0; t < 64; t++ {
		t1 := h + bigSigma1(e) + ch(e, f, g) + k[t] + w[t]
		t2 := bigSigma0(a) + maj(a, b, c)
		h, g, f = g, f, e
		e = d + t1
		d, c, b = c, b, a
		a = t1 + t2
	}

	return State{
		state[0] + a, state[1] + b, state[2] + c, state[3] + d,
		state[4] + e, state[5] + f, state[6] + g, state[7] + h,
	}
}
