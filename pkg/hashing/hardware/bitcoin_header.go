package hardware

import (
	"encoding/binary"
	"fmt"

	"hasher/pkg/hashing/core"
	"hasher/pkg/simdsha256"
)

// Bitcoin header field layout, all little-endian on the wire.
const (
	headerLen       = 80
	headerBlock1Len = 64 // version..merkle_root[0:28], the header's first SHA-256 block
	nonceOffset     = 76
	bitcoinVersion  = 0x00000002
	bitcoinBits     = 0x1d00ffff
)

// BuildSearchInputs splits an 80-byte Bitcoin header into the four
// fields simdsha256.Search4/Search8 require: the first block's SHA-256
// midstate, the second (nonce-bearing) block, and the fixed round-2
// state/padding for hashing the 32-byte round-1 digest. This is the
// only place header construction and the search core meet — the core
// itself never sees a header.
func BuildSearchInputs(header []byte) (simdsha256.SearchInputs, error) {
	if len(header) != headerLen {
		return simdsha256.SearchInputs{}, &core.HashError{
			Type:    core.ErrorInvalidInput,
			Message: fmt.Sprintf("header must be exactly %d bytes, got %d", headerLen, len(header)),
		}
	}

	block1 := decodeBigEndianBlock(header[:headerBlock1Len])
	midstate := simdsha256.Compress(simdsha256.InitialState, block1)

	var block2 simdsha256.Block
	tail := decodeBigEndianWords(header[headerBlock1Len:headerLen])
	copy(block2[:4], tail)
	block2[4] = 0x80000000
	block2[15] = headerLen * 8 // bit length of the full header

	var round2Block1 simdsha256.Block
	round2Block1[8] = 0x80000000
	round2Block1[15] = 32 * 8 // bit length of a 32-byte round-1 digest

	return simdsha256.SearchInputs{
		Round1Midstate:  midstate,
		Round1Block2:    block2,
		Round2InitState: simdsha256.InitialState,
		Round2Block1:    round2Block1,
	}, nil
}

func decodeBigEndianWords(buf []byte) []uint32 {
	words := make([]uint32, len(buf)/4)
	for i := range words {
		words[i] = binary.BigEndian.Uint32(buf[i*4:])
	}
	return words
}

func decodeBigEndianBlock(buf []byte) simdsha256.Block {
	var b simdsha256.Block
	copy(b[:], decodeBigEndianWords(buf))
	return b
}

// NewHeader assembles an 80-byte Bitcoin header from its constituent
// fields, little-endian per the wire format. The nonce field is left
// zero; callers needing a specific nonce should use WithNonce.
func NewHeader(prevHash, merkleRoot [32]byte, timestamp, bits uint32) []byte {
	header := make([]byte, headerLen)
	binary.LittleEndian.PutUint32(header[0:4], bitcoinVersion)
	copy(header[4:36], prevHash[:])
	copy(header[36:68], merkleRoot[:])
	binary.LittleEndian.PutUint32(header[68:72], timestamp)
	binary.LittleEndian.PutUint32(header[72:76], bits)
	if bits == 0 {
		binary.LittleEndian.PutUint32(header[72:76], bitcoinBits)
	}
	return header
}

// WithNonce returns a copy of header with the nonce field overwritten.
func WithNonce(header []byte, nonce uint32) []byte {
	out := append([]byte(nil), header...)
	binary.LittleEndian.PutUint32(out[nonceOffset:nonceOffset+4], nonce)
	return out
}

// ExtractNonce reads the nonce field out of an 80-byte header.
func ExtractNonce(header []byte) (uint32, error) {
	if len(header) != headerLen {
		return 0, &core.HashError{
			Type:    core.ErrorInvalidInput,
			Message: fmt.Sprintf("header must be exactly %d bytes, got %d", headerLen, len(header)),
		}
	}
	return binary.LittleEndian.Uint32(header[nonceOffset : nonceOffset+4]), nil
}

// ValidateHeader performs basic structural validation of a header.
func ValidateHeader(header []byte) bool {
	return len(header) == headerLen
}
