package buddy

import "errors"

// Sentinel errors returned by the allocator's public operations.
var (
	// ErrConfigInvalid is returned by New when the requested arena size
	// cannot be honored: zero, or so large that the header-inclusive,
	// power-of-two arena size would exceed 2^32 bytes. Small non-zero
	// sizes are rounded up to the minimum block size, not rejected.
	ErrConfigInvalid = errors.New("buddy: invalid arena configuration")

	// ErrSourceFailed is returned by New when the external memory source
	// could not supply the requested region.
	ErrSourceFailed = errors.New("buddy: memory source failed")

	// ErrCapacityExceeded is returned by Alloc when the request, after
	// rounding to the header-inclusive power of two, exceeds the
	// arena's maximum order.
	ErrCapacityExceeded = errors.New("buddy: request exceeds arena capacity")

	// ErrOutOfMemory is returned by Alloc when no free block of a
	// suitable or larger order is available. The allocator does not
	// distinguish genuine exhaustion from fragmentation-induced
	// exhaustion; callers needing that distinction should consult Stats.
	ErrOutOfMemory = errors.New("buddy: out of memory")

	// ErrClosed is returned by Alloc and Free after Close. A repeated
	// Close returns nil.
	ErrClosed = errors.New("buddy: arena closed")

	// ErrDoubleFree is returned by Free, in builds compiled with the
	// buddydebug tag, when the header word at ptr-8 does not carry the
	// liveness bit — i.e. the pointer was already freed, or was never
	// returned by Alloc on this arena. Release builds do not perform
	// this check; freeing a bad pointer is undefined behavior there,
	// per the allocator's error-handling contract.
	ErrDoubleFree = errors.New("buddy: double free or invalid pointer")
)
