package buddy

import (
	"testing"
	"unsafe"
)

// slotAddrs carves a byte buffer into n 16-byte-aligned slots, each big
// enough to hold a freeNode, and returns their addresses.
func slotAddrs(t *testing.T, n int) []uintptr {
	t.Helper()
	buf := make([]byte, n*32+32)
	base := uintptr(unsafe.Pointer(&buf[0]))
	// round up to 16-byte alignment so successive slots never overlap.
	if base%16 != 0 {
		base += 16 - base%16
	}
	addrs := make([]uintptr, n)
	for i := 0; i < n; i++ {
		addrs[i] = base + uintptr(i*16)
	}
	t.Cleanup(func() { _ = buf }) // keep buf reachable until the test ends
	return addrs
}

func TestInsertDetachSingle(t *testing.T) {
	addrs := slotAddrs(t, 1)
	bank := newOrderBank(5)

	insert(bank, 4, addrs[0])
	if bank.empty(4) {
		t.Fatal("bank empty after insert")
	}

	got, ok := detachHead(bank, 4)
	if !ok {
		t.Fatal("detachHead reported empty list")
	}
	if got != addrs[0] {
		t.Errorf("detachHead = %#x, want %#x", got, addrs[0])
	}
	if !bank.empty(4) {
		t.Error("bank non-empty after detaching only element")
	}
}

func TestDetachHeadEmpty(t *testing.T) {
	bank := newOrderBank(5)
	if _, ok := detachHead(bank, 4); ok {
		t.Error("detachHead on empty list reported ok=true")
	}
}

func TestInsertOrderIsLIFOAtHead(t *testing.T) {
	// insert() always places new entries at or right after the head, so
	// the most recently inserted-as-head node detaches first, and a
	// freshly attached node is accessible even if it isn't detached
	// first.
	addrs := slotAddrs(t, 3)
	bank := newOrderBank(5)

	insert(bank, 4, addrs[0]) // becomes head
	insert(bank, 4, addrs[1]) // attached after head
	insert(bank, 4, addrs[2]) // attached after head again

	if bank.heads[4] != addrs[0] {
		t.Fatalf("head = %#x, want %#x (first insert stays head)", bank.heads[4], addrs[0])
	}

	first, ok := detachHead(bank, 4)
	if !ok || first != addrs[0] {
		t.Fatalf("first detach = %#x,%v want %#x,true", first, ok, addrs[0])
	}
	second, ok := detachHead(bank, 4)
	if !ok {
		t.Fatal("second detach reported empty")
	}
	third, ok := detachHead(bank, 4)
	if !ok {
		t.Fatal("third detach reported empty")
	}
	if second == third {
		t.Fatalf("second and third detach returned the same address %#x", second)
	}
	if !bank.empty(4) {
		t.Error("bank non-empty after detaching all three")
	}
}

func TestSpliceHead(t *testing.T) {
	addrs := slotAddrs(t, 2)
	bank := newOrderBank(5)
	insert(bank, 4, addrs[0])
	insert(bank, 4, addrs[1])

	splice(bank, 4, addrs[0]) // removes the head
	if bank.heads[4] != addrs[1] {
		t.Errorf("head after splicing head = %#x, want %#x", bank.heads[4], addrs[1])
	}
	n := nodeAt(addrs[1])
	if n.prev != 0 {
		t.Errorf("new head prev = %#x, want 0", n.prev)
	}
}

func TestSpliceNonHead(t *testing.T) {
	addrs := slotAddrs(t, 3)
	bank := newOrderBank(5)
	insert(bank, 4, addrs[0])
	insert(bank, 4, addrs[1])
	insert(bank, 4, addrs[2])

	splice(bank, 4, addrs[1]) // removes the middle element

	remaining := map[uintptr]bool{}
	for addr, ok := detachHead(bank, 4); ok; addr, ok = detachHead(bank, 4) {
		remaining[addr] = true
	}
	if remaining[addrs[1]] {
		t.Error("spliced element still reachable from the list")
	}
	if !remaining[addrs[0]] || !remaining[addrs[2]] {
		t.Error("splicing the middle element dropped a neighbor too")
	}
}

func TestSpliceOnlyElement(t *testing.T) {
	addrs := slotAddrs(t, 1)
	bank := newOrderBank(5)
	insert(bank, 4, addrs[0])
	splice(bank, 4, addrs[0])
	if !bank.empty(4) {
		t.Error("bank non-empty after splicing its only element")
	}
}
