package buddy

import (
	"errors"
	"testing"
)

func TestErrorsAreDistinct(t *testing.T) {
	all := []error{
		ErrConfigInvalid,
		ErrSourceFailed,
		ErrCapacityExceeded,
		ErrOutOfMemory,
		ErrClosed,
		ErrDoubleFree,
	}
	for i, e1 := range all {
		for j, e2 := range all {
			if i == j {
				continue
			}
			if errors.Is(e1, e2) {
				t.Errorf("%v should not match %v", e1, e2)
			}
		}
	}
}
