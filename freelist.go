package buddy

import "unsafe"

// freeNode is the intrusive doubly-linked list node a free block is
// reinterpreted as, occupying its first 16 bytes. prev and next are
// raw arena addresses (never offsets): 0 means "no neighbor", and a
// live value is always the address of another free block of the same
// order. Storing real addresses rather than offsets is what lets the
// coalescer's header-word liveness probe (spec.md §4.3) treat a free
// block's prev field and an allocated block's header word as the same
// 8-byte slot with different interpretations.
type freeNode struct {
	prev uintptr
	next uintptr
}

func nodeAt(addr uintptr) *freeNode {
	return (*freeNode)(unsafe.Pointer(addr))
}

// detachHead removes and returns the current head of the free list for
// order o, updating the bank slot to the second element (possibly
// null). It reports false if the list was already empty. The detached
// node's own prev/next fields are left untouched; callers that reuse
// the block for something other than immediately relinking it should
// not rely on them being cleared.
func detachHead(bank *orderBank, order int) (uintptr, bool) {
	head := bank.heads[order]
	if head == 0 {
		return 0, false
	}
	n := nodeAt(head)
	bank.heads[order] = n.next
	if n.next != 0 {
		nodeAt(n.next).prev = 0
	}
	return head, true
}

// splice removes addr from wherever it sits in order o's free list,
// fixing up its neighbors and the bank slot if addr was the head.
func splice(bank *orderBank, order int, addr uintptr) {
	n := nodeAt(addr)
	if n.prev != 0 {
		nodeAt(n.prev).next = n.next
	} else {
		bank.heads[order] = n.next
	}
	if n.next != 0 {
		nodeAt(n.next).prev = n.prev
	}
	n.prev, n.next = 0, 0
}

// insert adds addr to order o's free list. If the list is empty, addr
// becomes the head with null links; otherwise it is attached
// immediately after the current head.
func insert(bank *orderBank, order int, addr uintptr) {
	head := bank.heads[order]
	n := nodeAt(addr)
	if head == 0 {
		n.prev, n.next = 0, 0
		bank.heads[order] = addr
		return
	}
	attachAfterHead(bank, order, addr)
}

// attachAfterHead inserts entry as the second element of order o's
// free list, between the current head and the head's next. head must
// be non-null.
func attachAfterHead(bank *orderBank, order int, entry uintptr) {
	head := bank.heads[order]
	h := nodeAt(head)
	e := nodeAt(entry)
	e.prev = head
	e.next = h.next
	if h.next != 0 {
		nodeAt(h.next).prev = entry
	}
	h.next = entry
}
