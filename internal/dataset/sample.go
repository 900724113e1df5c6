package dataset

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument signals a caller-side contract violation.
var ErrInvalidArgument = errors.New("invalid argument")

// Sample reduces d to at most maxPoints rows by taking every stride-th row
// starting at index 0, where stride = len(d)/maxPoints. Order is preserved
// and the result is deterministic; this is even index spacing, not a
// statistical sample. Datasets already within the cap are returned as-is.
func Sample(d Dataset, maxPoints int) (Dataset, error) {
	if maxPoints <= 0 {
		return nil, fmt.Errorf("%w: maxPoints must be positive, got %d", ErrInvalidArgument, maxPoints)
	}
	if len(d) <= maxPoints {
		return d, nil
	}
	// len > maxPoints >= 1 guarantees stride >= 1.
	stride := len(d) / maxPoints
	out := make(Dataset, 0, maxPoints)
	for i := 0; i < len(d) && len(out) < maxPoints; i += stride {
		out = append(out, d[i])
	}
	return out, nil
}
