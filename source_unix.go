//go:build !windows

package buddy

import "golang.org/x/sys/unix"

// mmapSource satisfies MemorySource with an anonymous, private mmap
// region obtained directly from the kernel rather than the Go heap.
// This keeps the arena's bytes outside the Go garbage collector's scan
// set and gives the arena real page-aligned, zero-filled memory — the
// closest match to the C reference's malloc-then-mmap-backed-heap
// model described in spec.md §6.2.
type mmapSource struct{}

// NewMmapSource returns a MemorySource backed by an anonymous mmap
// region. Obtain rounds up to whatever granularity the kernel imposes;
// Release unmaps exactly the region it was given.
func NewMmapSource() MemorySource { return mmapSource{} }

// DefaultSource returns the memory source New uses when none is given.
func DefaultSource() MemorySource { return mmapSource{} }

func (mmapSource) Obtain(size uint64) ([]byte, error) {
	data, err := unix.Mmap(-1, 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (mmapSource) Release(region []byte) error {
	if len(region) == 0 {
		return nil
	}
	return unix.Munmap(region)
}
