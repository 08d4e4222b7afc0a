package simdsha256

// Lane-to-nonce permutation π (spec.md §4.3). Lane i of the nonce word
// carries base + laneOffset4[i] (resp. laneOffset8[i]). This is part of
// the public contract: the search loop's lane decode (§4.4 step 5)
// relies on scanning lanes in the order that yields ascending nonces,
// which for this π means scanning from the last lane to the first.
var laneOffset4 = [4]Word{3, 2, 1, 0}
var laneOffset8 = [8]Word{7, 6, 5, 4, 3, 2, 1, 0}

// spliceNonces4 builds the word-index-3 lane vector for base, overwriting
// it in place. All other words of blockVec are left untouched — they
// were already broadcast once, outside the search loop's hot path.
func spliceNonces4(blockVec *BlockVec4, base Word) {
	var v Vec4
	for i, off := range laneOffset4 {
		v[i] = base + off
	}
	blockVec[3] = v
}

func spliceNonces8(blockVec *BlockVec8, base Word) {
	var v Vec8
	for i, off := range laneOffset8 {
		v[i] = base + off
	}
	blockVec[3] = v
}
