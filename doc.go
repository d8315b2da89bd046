// Package buddy implements a binary buddy memory allocator over a single
// pre-reserved, power-of-two contiguous byte arena.
//
// # Architecture
//
// The allocator is organized in three layers, leaves first:
//
//	┌─────────────────────────────────────────────────────────┐
//	│                       Arena                              │
//	│  (owns base+size+bank, split cascade, coalesce cascade)  │
//	├─────────────────────────────────────────────────────────┤
//	│                     order bank                           │
//	│  (K+1 free-list heads, one per block order)              │
//	├─────────────────────────────────────────────────────────┤
//	│              intrusive free-list node                    │
//	│  (prev/next embedded in the first 16 bytes of a block)   │
//	└─────────────────────────────────────────────────────────┘
//
// Every request is rounded up to a power of two and served by splitting
// a larger free block into equal halves ("buddies"). Freeing a block
// recursively merges it with its buddy whenever the buddy is itself
// entirely free, bounding external fragmentation and keeping both
// operations O(log S) in the arena size S.
//
// # Addressing
//
// A block's buddy at order o is found by flipping bit o of the block's
// offset from the arena base — never by XORing the raw pointer, which
// is only safe when the base happens to be aligned to the arena size.
// See offsetOf and buddyAddr.
//
// # In-band metadata
//
// An allocated block carries a single 8-byte header at its start: the
// top bit marks it live, the low bits hold its order. A free block
// reuses those same first 16 bytes as a prev/next link pair. No
// metadata is kept outside the arena itself beyond the K+1-entry order
// bank and, for partial-coalesce detection, a per-order membership
// bitmap (see bitmap.go).
//
// # Thread safety
//
// Arena is not safe for concurrent use; every public method assumes the
// caller serializes access. Wrap an Arena with
// [github.com/gogpu/buddyalloc/internal/lockedarena] for concurrent
// callers.
package buddy
