package buddy

import (
	"math/bits"
	"unsafe"
)

// Configuration constants from spec.md §6.4.
const (
	// MinOrder is the smallest block order: 2^4 = 16 bytes, the
	// smallest region that can carry a free-list node.
	MinOrder = 4

	// MaxOrder is the largest supported block order: 2^32 = 4 GiB,
	// the largest arena this allocator can manage.
	MaxOrder = 32

	// HeaderBytes is the per-allocation bookkeeping overhead: one
	// 8-byte header word at the start of every allocated block.
	HeaderBytes = 8
)

// Arena owns a single pre-reserved, power-of-two byte region and
// services allocation and deallocation requests against it using the
// binary buddy algorithm. An Arena is not safe for concurrent use; wrap
// it with internal/lockedarena for concurrent callers.
type Arena struct {
	region []byte // keeps the backing memory reachable; nil once closed
	base   uintptr
	size   uint64
	maxOrder int

	bank       *orderBank
	membership *orderMembership
	source     MemorySource
	stats      Stats
	closed     bool
}

// Option configures New.
type Option func(*config)

type config struct {
	source MemorySource
}

// WithSource overrides the external memory source New obtains the
// arena's backing bytes from. The default is DefaultSource(), an
// anonymous-mmap-backed source.
func WithSource(source MemorySource) Option {
	return func(c *config) { c.source = source }
}

// New reserves an arena of at least size usable bytes and initializes
// it as a single free block of the resulting maximum order.
//
// The arena's actual size S is next_pow2(size + HeaderBytes), so that
// even a full-arena single allocation leaves room for its header. New
// fails with ErrConfigInvalid if S would fall outside [16, 2^32], and
// with ErrSourceFailed if the memory source cannot supply S bytes.
func New(size uint64, opts ...Option) (*Arena, error) {
	cfg := config{source: DefaultSource()}
	for _, opt := range opts {
		opt(&cfg)
	}

	if size == 0 {
		return nil, ErrConfigInvalid
	}
	total := nextPow2(size + HeaderBytes)
	if total < 16 {
		total = 16
	}
	if total > uint64(1)<<MaxOrder {
		return nil, ErrConfigInvalid
	}

	region, err := cfg.source.Obtain(total)
	if err != nil || uint64(len(region)) != total {
		return nil, ErrSourceFailed
	}
	for i := range region {
		region[i] = 0
	}

	maxOrder := log2(total)
	a := &Arena{
		region:     region,
		base:       uintptr(unsafe.Pointer(&region[0])),
		size:       total,
		maxOrder:   maxOrder,
		bank:       newOrderBank(maxOrder),
		membership: newOrderMembership(MinOrder, maxOrder, total),
		source:     cfg.source,
	}
	a.stats.TotalBytes = total

	root := nodeAt(a.base)
	root.prev, root.next = 0, 0
	a.bank.heads[maxOrder] = a.base
	a.membership.mark(maxOrder, 0)

	Logger().Debug("buddy: arena initialized", "size", total, "maxOrder", maxOrder)
	return a, nil
}

// Base returns the arena's base address, useful for debugging
// (spec.md §6.1).
func (a *Arena) Base() unsafe.Pointer {
	return unsafe.Pointer(a.base)
}

// Stats returns a snapshot of the allocator's running counters.
func (a *Arena) Stats() Stats {
	return a.stats
}

// Close releases the arena's backing region back to its memory source.
// The Arena must not be used afterward.
func (a *Arena) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	region := a.region
	a.region = nil
	a.base = 0
	return a.source.Release(region)
}

// Alloc rounds r up to a served power-of-two size (spec.md §4.2 step
// 1), finds or creates a free block of the matching order via a
// cascading split, and returns a pointer to at least r usable bytes
// past the block's header.
func (a *Arena) Alloc(r uint64) (unsafe.Pointer, error) {
	if a.closed {
		return nil, ErrClosed
	}

	order := orderFor(r)
	if order > a.maxOrder {
		return nil, ErrCapacityExceeded
	}

	if a.bank.empty(order) {
		splitFrom := -1
		for candidate := order + 1; candidate <= a.maxOrder; candidate++ {
			if !a.bank.empty(candidate) {
				splitFrom = candidate
				break
			}
		}
		if splitFrom == -1 {
			Logger().Warn("buddy: out of memory", "order", order)
			return nil, ErrOutOfMemory
		}
		a.splitCascade(splitFrom, order)
	}

	addr, ok := detachHead(a.bank, order)
	if !ok {
		return nil, ErrOutOfMemory
	}
	a.membership.clear(order, a.offsetOf(addr))

	*headerWordAt(unsafe.Pointer(addr)) = encodeHeader(order)

	size := blockSize(order)
	a.stats.UsedBytes += size
	a.stats.AllocationCount++
	a.stats.TotalAllocated += size
	if a.stats.UsedBytes > a.stats.PeakUsedBytes {
		a.stats.PeakUsedBytes = a.stats.UsedBytes
	}

	Logger().Debug("buddy: allocated", "order", order, "size", size)
	return unsafe.Pointer(addr + HeaderBytes), nil
}

// splitCascade repeatedly splits the head block of order splitFrom down
// to order target, placing each split's lower-address child ("first")
// and its buddy on the child order's free list, lower address first
// (spec.md §4.2 step 4). After it returns, bank[target] is non-empty.
func (a *Arena) splitCascade(splitFrom, target int) {
	block, _ := detachHead(a.bank, splitFrom)
	a.membership.clear(splitFrom, a.offsetOf(block))

	for order := splitFrom; order > target; order-- {
		child := order - 1
		half := blockSize(child)
		buddy := block + uintptr(half)

		insert(a.bank, child, block)
		a.membership.mark(child, a.offsetOf(block))
		insert(a.bank, child, buddy)
		a.membership.mark(child, a.offsetOf(buddy))
		a.stats.SplitCount++

		if child == target {
			break
		}
		block, _ = detachHead(a.bank, child)
		a.membership.clear(child, a.offsetOf(block))
	}
}

// Free releases a block previously returned by Alloc on this Arena.
// Behavior is undefined for any other pointer, unless the package is
// built with the buddydebug tag, in which case a corrupted or
// already-free header is reported as ErrDoubleFree instead.
func (a *Arena) Free(ptr unsafe.Pointer) error {
	if a.closed {
		return ErrClosed
	}
	if ptr == nil {
		return ErrDoubleFree
	}

	addr := uintptr(ptr) - HeaderBytes
	word := *headerWordAt(unsafe.Pointer(addr))
	order, allocated := decodeHeader(word)

	if debugBuild && !allocated {
		return ErrDoubleFree
	}

	size := blockSize(order)
	a.stats.UsedBytes -= size
	a.stats.AllocationCount--
	a.stats.TotalFreed += size

	n := nodeAt(addr)
	n.prev, n.next = 0, 0

	a.coalesce(addr, order)

	Logger().Debug("buddy: freed", "order", order, "size", size)
	return nil
}

// coalesce merges a newly freed block with its buddy, recursively, as
// long as the buddy is allocated-free and exactly an order-matched
// member of the free list — never a partially-split parent (spec.md
// §4.3, §9). It inserts the final, possibly-merged block into its
// bank exactly once, which is equivalent to the spec's
// insert-then-possibly-splice description without the redundant churn.
func (a *Arena) coalesce(addr uintptr, order int) {
	cur := order
	for cur < a.maxOrder {
		buddy := a.buddyAddr(addr, cur)
		buddyWord := *headerWordAt(unsafe.Pointer(buddy))
		_, buddyAllocated := decodeHeader(buddyWord)
		if buddyAllocated {
			break
		}
		if !a.membership.test(cur, a.offsetOf(buddy)) {
			// Buddy's first word reads as a link pointer (MSB clear)
			// but it is not itself a whole free block of this order —
			// it was split and only part of it was reclaimed. Stop.
			break
		}

		splice(a.bank, cur, buddy)
		a.membership.clear(cur, a.offsetOf(buddy))
		a.stats.MergeCount++

		if buddy < addr {
			addr = buddy
		}
		cur++
	}
	insert(a.bank, cur, addr)
	a.membership.mark(cur, a.offsetOf(addr))
}

func (a *Arena) offsetOf(addr uintptr) uint64 {
	return uint64(addr - a.base)
}

func (a *Arena) addrAt(offset uint64) uintptr {
	return a.base + uintptr(offset)
}

// buddyAddr computes the buddy of the block at addr at the given
// order by flipping bit `order` of its arena-relative offset, never
// the raw address (spec.md §3.3, §9).
func (a *Arena) buddyAddr(addr uintptr, order int) uintptr {
	offset := a.offsetOf(addr)
	return a.addrAt(offset ^ blockSize(order))
}

// orderFor computes the order of the block that serves a request of r
// user bytes: the smallest power of two at least r+HeaderBytes, floored
// at MinOrder so the result always has room for a free-list node once
// reclaimed (spec.md §3.2, §4.2 step 1).
func orderFor(r uint64) int {
	served := nextPow2(r + HeaderBytes)
	order := log2(served)
	if order < MinOrder {
		order = MinOrder
	}
	return order
}

func nextPow2(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	if n&(n-1) == 0 {
		return n
	}
	return uint64(1) << uint(bits.Len64(n))
}

func log2(n uint64) int {
	return bits.Len64(n) - 1
}
