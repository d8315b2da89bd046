// Command buddydemo exercises a buddy.Arena end to end: it allocates a
// handful of blocks, frees some, and prints allocator statistics. It is
// a smoke test in the spirit of the teacher's cmd/*-test programs, not
// a benchmark.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"unsafe"

	"github.com/gogpu/buddyalloc"
)

func main() {
	size := flag.Uint64("size", 1<<20, "arena size in bytes")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		buddy.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	arena, err := buddy.New(*size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "buddydemo: init failed: %v\n", err)
		os.Exit(1)
	}
	defer arena.Close()

	var live []unsafe.Pointer
	for _, req := range []uint64{4096, 256, 1024, 64} {
		ptr, err := arena.Alloc(req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "buddydemo: alloc(%d) failed: %v\n", req, err)
			os.Exit(1)
		}
		live = append(live, ptr)
	}

	for _, ptr := range live[:len(live)-1] {
		if err := arena.Free(ptr); err != nil {
			fmt.Fprintf(os.Stderr, "buddydemo: free failed: %v\n", err)
			os.Exit(1)
		}
	}

	stats := arena.Stats()
	fmt.Printf("total=%d used=%d peak=%d allocations=%d splits=%d merges=%d\n",
		stats.TotalBytes, stats.UsedBytes, stats.PeakUsedBytes,
		stats.AllocationCount, stats.SplitCount, stats.MergeCount)
}
