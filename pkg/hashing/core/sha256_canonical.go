package core

import (
	"crypto/sha256"
)

// CanonicalSHA256 is the scalar, crypto/sha256-backed reference
// implementation of the search every SoftwareMethod tier and the
// simdsha256 search core are checked against: a SIMD-tier solution and
// a scalar rescan of the same header and nonce must agree here.
type CanonicalSHA256 struct{}

// NewCanonicalSHA256 creates a new canonical SHA-256 instance
func NewCanonicalSHA256() *CanonicalSHA256 {
	return &CanonicalSHA256{}
}

// ComputeSHA256 computes a single SHA-256 hash
func (c *CanonicalSHA256) ComputeSHA256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// ComputeDoubleSHA256 computes SHA256(SHA256(data)) - Bitcoin's hash function
// This is the canonical implementation that all methods should use
func (c *CanonicalSHA256) ComputeDoubleSHA256(data []byte) [32]byte {
	first := sha256.Sum256(data)
	return sha256.Sum256(first[:])
}

// ComputeDoubleSHA256WithNonce double-hashes an 80-byte Bitcoin header
// with its nonce field (bytes 76-79, little-endian) replaced.
func (c *CanonicalSHA256) ComputeDoubleSHA256WithNonce(header []byte, nonce uint32) ([32]byte, error) {
	if len(header) != 80 {
		return [32]byte{}, &HashError{
			Type:    ErrorInvalidInput,
			Message: "header must be exactly 80 bytes",
			Context: map[string]interface{}{
				"header_length": len(header),
				"nonce":         nonce,
			},
		}
	}

	workHeader := make([]byte, 80)
	copy(workHeader, header)

	workHeader[76] = byte(nonce)
	workHeader[77] = byte(nonce >> 8)
	workHeader[78] = byte(nonce >> 16)
	workHeader[79] = byte(nonce >> 24)

	return c.ComputeDoubleSHA256(workHeader), nil
}

// IsValidDifficulty1 checks whether a digest clears this engine's
// simplified Difficulty 1 target: the trailing 32-bit word — hash[28:32]
// read big-endian — must be below 0x10. hash[28:32] is digest word 7,
// the same word pkg/simdsha256.SearchRange4/8 test via hash2[7] when a
// batch reports a solution: CanonicalSHA256 (the scalar reference path)
// and the SIMD search core must examine the same end of the digest with
// the same threshold, or a SIMD-found nonce fails this check here and a
// scalar scan stops at a nonce no SIMD scan of the same range would
// ever report.
func (c *CanonicalSHA256) IsValidDifficulty1(hash [32]byte) bool {
	return hash[28] == 0 && hash[29] == 0 && hash[30] == 0 && hash[31] < 0x10
}

// MineForNonce is the one-nonce-at-a-time reference search over
// crypto/sha256, using the same IsValidDifficulty1 predicate as
// internal/worker.verifyDifficulty1 and the SoftwareMethod scalar tier:
// a brute-force double-SHA-256 scan over
// [nonceStart, nonceEnd], returning nonceEnd unchanged if the range is
// exhausted without a hit (indistinguishable from a genuine solution at
// that exact nonce without a caller-side difficulty recheck).
func (c *CanonicalSHA256) MineForNonce(header []byte, nonceStart, nonceEnd uint32) (uint32, error) {
	if len(header) != 80 {
		return 0, &HashError{
			Type:    ErrorInvalidInput,
			Message: "header must be exactly 80 bytes",
			Context: map[string]interface{}{
				"header_length": len(header),
				"nonce_start":   nonceStart,
				"nonce_end":     nonceEnd,
			},
		}
	}

	for nonce := nonceStart; nonce <= nonceEnd; nonce++ {
		hash, err := c.ComputeDoubleSHA256WithNonce(header, nonce)
		if err != nil {
			continue
		}

		if c.IsValidDifficulty1(hash) {
			return nonce, nil
		}
	}

	return nonceEnd, nil
}

// HashError represents errors that can occur during hashing operations
type HashError struct {
	Type    ErrorType
	Message string
	Context map[string]interface{}
}

func (e *HashError) Error() string {
	return e.Message
}

// ErrorType represents different types of hashing errors
type ErrorType int

const (
	ErrorInvalidInput ErrorType = iota
	ErrorHardwareUnavailable
	ErrorOperationFailed
	ErrorTimeout
	ErrorResourceBusy
)
