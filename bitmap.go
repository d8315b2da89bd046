package buddy

import "github.com/bits-and-blooms/bitset"

// orderMembership tracks, per order, which offsets currently name a
// block that is a member of bank[order] — i.e. a whole free block of
// exactly that order, as opposed to a block that has been split and
// only partially reclaimed.
//
// This resolves the open question in spec.md §9: the coalescer's
// header-word MSB probe alone cannot tell "buddy is a free block of
// order o" from "buddy was split, and the byte at its address happens
// to be a link-pointer field (MSB clear) belonging to a smaller
// order's free-list node". The spec calls a per-order free-bitmap
// indexed by offset "the cleanest" of its suggested fixes; this is
// that bitmap, backed by bitset.BitSet rather than a hand-rolled bit
// array.
type orderMembership struct {
	minOrder int
	bits     []*bitset.BitSet // indexed by order; nil below minOrder
}

func newOrderMembership(minOrder, maxOrder int, totalSize uint64) *orderMembership {
	m := &orderMembership{
		minOrder: minOrder,
		bits:     make([]*bitset.BitSet, maxOrder+1),
	}
	for order := minOrder; order <= maxOrder; order++ {
		slots := totalSize >> uint(order)
		if slots == 0 {
			slots = 1
		}
		m.bits[order] = bitset.New(uint(slots))
	}
	return m
}

func (m *orderMembership) slot(order int, offset uint64) uint {
	return uint(offset >> uint(order))
}

func (m *orderMembership) mark(order int, offset uint64) {
	m.bits[order].Set(m.slot(order, offset))
}

func (m *orderMembership) clear(order int, offset uint64) {
	m.bits[order].Clear(m.slot(order, offset))
}

func (m *orderMembership) test(order int, offset uint64) bool {
	return m.bits[order].Test(m.slot(order, offset))
}
