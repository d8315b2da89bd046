// Package lockedarena wraps buddy.Arena with a mutex for callers that
// need concurrent access. The core allocator is deliberately
// unsynchronized (spec.md §1, §5); this is the "higher layer" the spec
// leaves to the caller, grounded on the teacher's GpuAllocator
// (hal/vulkan/memory/allocator.go), which wraps a *BuddyAllocator the
// same way.
package lockedarena

import (
	"sync"
	"unsafe"

	"github.com/gogpu/buddyalloc"
)

// Arena serializes all access to an underlying *buddy.Arena behind a
// single mutex. Every exported method corresponds 1:1 to a buddy.Arena
// method; none of them change the core's semantics.
type Arena struct {
	mu    sync.Mutex
	inner *buddy.Arena
}

// New creates a locked arena, forwarding to buddy.New.
func New(size uint64, opts ...buddy.Option) (*Arena, error) {
	inner, err := buddy.New(size, opts...)
	if err != nil {
		return nil, err
	}
	return &Arena{inner: inner}, nil
}

// Alloc is buddy.Arena.Alloc under the lock.
func (a *Arena) Alloc(r uint64) (unsafe.Pointer, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inner.Alloc(r)
}

// Free is buddy.Arena.Free under the lock.
func (a *Arena) Free(ptr unsafe.Pointer) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inner.Free(ptr)
}

// Stats is buddy.Arena.Stats under the lock.
func (a *Arena) Stats() buddy.Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inner.Stats()
}

// Base is buddy.Arena.Base under the lock.
func (a *Arena) Base() unsafe.Pointer {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inner.Base()
}

// Close is buddy.Arena.Close under the lock.
func (a *Arena) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inner.Close()
}
