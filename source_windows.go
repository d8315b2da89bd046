//go:build windows

package buddy

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

// mmapSource satisfies MemorySource with a VirtualAlloc-backed region,
// the Windows equivalent of the POSIX anonymous mmap used on other
// platforms. See source_unix.go for the rationale.
type mmapSource struct{}

// NewMmapSource returns a MemorySource backed by a VirtualAlloc region.
func NewMmapSource() MemorySource { return mmapSource{} }

// DefaultSource returns the memory source New uses when none is given.
func DefaultSource() MemorySource { return mmapSource{} }

func (mmapSource) Obtain(size uint64) ([]byte, error) {
	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, err
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size), nil
}

func (mmapSource) Release(region []byte) error {
	if len(region) == 0 {
		return nil
	}
	addr := uintptr(unsafe.Pointer(&region[0]))
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}
