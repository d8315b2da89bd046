package buddy

// Stats reports read-only allocator diagnostics. It is the supplemented
// surface grounded on the teacher's BuddyStats
// (hal/vulkan/memory/buddy.go) — spec.md's Non-goals exclude
// allocation-site tracking, not read-only counters.
type Stats struct {
	TotalBytes      uint64 // arena size, S
	UsedBytes       uint64 // bytes currently allocated (order-rounded, header included)
	PeakUsedBytes   uint64 // high-water mark of UsedBytes
	AllocationCount uint64 // live allocations
	TotalAllocated  uint64 // cumulative bytes ever allocated
	TotalFreed      uint64 // cumulative bytes ever freed
	SplitCount      uint64 // cascading splits performed
	MergeCount      uint64 // cascading merges performed
}

// blockSize returns 2^order.
func blockSize(order int) uint64 {
	return uint64(1) << uint(order)
}
