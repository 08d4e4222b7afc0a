package software

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"sync"

	"hasher/pkg/hashing/core"
	"hasher/pkg/hashing/hardware"
	"hasher/pkg/simdsha256"
)

// SoftwareMethod implements core.HashMethod by driving the simdsha256
// search core at a fixed SIMD tier. One instance exists per tier the
// factory registers (scalar, simd128, simd256); only the tier and the
// resulting lane width differ between them.
type SoftwareMethod struct {
	initialized bool
	mutex       sync.RWMutex
	tier        simdsha256.Tier
	caps        *core.Capabilities
}

// NewSoftwareMethod creates a software method driven at the given tier.
func NewSoftwareMethod(tier simdsha256.Tier) *SoftwareMethod {
	return &SoftwareMethod{tier: tier}
}

// Name returns the human-readable name of the hashing method
func (m *SoftwareMethod) Name() string {
	return fmt.Sprintf("software-%s", m.tier)
}

// IsAvailable returns true if this hashing method is available on the current system
func (m *SoftwareMethod) IsAvailable() bool {
	switch m.tier {
	case simdsha256.TierSIMD256:
		return simdsha256.Probe().SIMD256
	case simdsha256.TierSIMD128:
		return simdsha256.Probe().SIMD128
	default:
		return true
	}
}

// Initialize performs any necessary setup for the hashing method
func (m *SoftwareMethod) Initialize() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if !m.IsAvailable() {
		return &core.HashError{
			Type:    core.ErrorHardwareUnavailable,
			Message: fmt.Sprintf("tier %s is not supported on this host", m.tier),
		}
	}

	m.initialized = true
	return nil
}

// Shutdown performs cleanup and shuts down the hashing method
func (m *SoftwareMethod) Shutdown() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.initialized = false
	return nil
}

// ComputeHash computes a single double-SHA-256 hash
func (m *SoftwareMethod) ComputeHash(data []byte) ([32]byte, error) {
	if !m.ready() {
		return [32]byte{}, fmt.Errorf("%s not initialized", m.Name())
	}

	first := sha256.Sum256(data)
	return sha256.Sum256(first[:]), nil
}

// ComputeBatch computes multiple double-SHA-256 hashes
func (m *SoftwareMethod) ComputeBatch(data [][]byte) ([][32]byte, error) {
	if !m.ready() {
		return nil, fmt.Errorf("%s not initialized", m.Name())
	}

	results := make([][32]byte, len(data))
	for i, d := range data {
		hash, err := m.ComputeHash(d)
		if err != nil {
			return nil, err
		}
		results[i] = hash
	}
	return results, nil
}

// MineHeader searches nonces [nonceStart, nonceEnd] for a header whose
// double-SHA-256 digest satisfies difficulty 1, driving the
// simdsha256 search core at this method's tier. The SIMD tiers use
// SearchRange4/SearchRange8 to bound the scan to the caller's range
// directly — job-level range sharding (internal/worker.Pool) depends on
// each shard only scanning its own assigned slice rather than the full
// 32-bit space Search4/Search8 cover.
func (m *SoftwareMethod) MineHeader(header []byte, nonceStart, nonceEnd uint32) (uint32, error) {
	if !m.ready() {
		return 0, fmt.Errorf("%s not initialized", m.Name())
	}

	inputs, err := hardware.BuildSearchInputs(header)
	if err != nil {
		return 0, err
	}

	alwaysContinue := func(uint32) bool { return true }

	var out simdsha256.SearchOutput
	switch m.tier {
	case simdsha256.TierSIMD256:
		out = simdsha256.SearchRange8(inputs, nonceStart, nonceEnd, alwaysContinue)
	case simdsha256.TierSIMD128:
		out = simdsha256.SearchRange4(inputs, nonceStart, nonceEnd, alwaysContinue)
	default:
		out = scalarSearch(inputs, nonceStart, nonceEnd)
	}

	if !out.Found {
		return nonceEnd, nil
	}
	return out.Nonce, nil
}

// scalarSearch is the tier-0 reference path: a direct per-nonce scan
// over simdsha256.Compress, bounded by the caller's range rather than the
// full 32-bit space Search4/Search8 cover.
func scalarSearch(inputs simdsha256.SearchInputs, nonceStart, nonceEnd uint32) simdsha256.SearchOutput {
	canon := core.NewCanonicalSHA256()
	block2 := inputs.Round1Block2

	for nonce := nonceStart; ; nonce++ {
		block2[3] = nonce

		hash1 := simdsha256.Compress(inputs.Round1Midstate, block2)
		round2 := inputs.Round2Block1
		for i, w := range hash1 {
			round2[i] = w
		}
		hash2 := simdsha256.Compress(inputs.Round2InitState, round2)

		var digest [32]byte
		for i, w := range hash2 {
			binary.BigEndian.PutUint32(digest[i*4:], w)
		}
		if canon.IsValidDifficulty1(digest) {
			return simdsha256.SearchOutput{Nonce: simdsha256.EndianSwap32(nonce), Found: true}
		}
		if nonce == nonceEnd {
			break
		}
	}
	return simdsha256.SearchOutput{}
}

// MineHeaderBatch performs mining on multiple headers
func (m *SoftwareMethod) MineHeaderBatch(headers [][]byte, nonceStart, nonceEnd uint32) ([]uint32, error) {
	if !m.ready() {
		return nil, fmt.Errorf("%s not initialized", m.Name())
	}

	results := make([]uint32, len(headers))
	for i, header := range headers {
		nonce, err := m.MineHeader(header, nonceStart, nonceEnd)
		if err != nil {
			return nil, fmt.Errorf("mining failed for header %d: %w", i, err)
		}
		results[i] = nonce
	}

	return results, nil
}

// GetCapabilities returns the capabilities and performance characteristics
func (m *SoftwareMethod) GetCapabilities() *core.Capabilities {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if m.caps == nil {
		m.caps = &core.Capabilities{
			Name:            m.Name(),
			IsHardware:      false,
			ProductionReady: true,
			LaneWidth:       m.tier.Width(),
			MaxBatchSize:    256,
		}
	}

	return m.caps
}

func (m *SoftwareMethod) ready() bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.initialized
}
