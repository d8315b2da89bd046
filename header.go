package buddy

import "unsafe"

// headerLiveBit is bit 63 of an allocated block's header word. When
// set, the block is allocated and the low 63 bits hold its order. When
// clear, the word is instead the block's free-list prev pointer (see
// freeNode), which is how the coalescer tells allocated from free
// blocks without any metadata outside the block itself (spec.md §4.3).
const headerLiveBit = uint64(1) << 63

// encodeHeader packs order into an allocated-block header word.
func encodeHeader(order int) uint64 {
	return headerLiveBit | uint64(order)
}

// decodeHeader unpacks a header word into its order and liveness bit.
func decodeHeader(word uint64) (order int, allocated bool) {
	return int(word &^ headerLiveBit), word&headerLiveBit != 0
}

// headerWordAt reinterprets the first 8 bytes at p as a header word.
func headerWordAt(p unsafe.Pointer) *uint64 {
	return (*uint64)(p)
}
