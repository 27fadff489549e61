package kernel

// Partial is one slot of a block-partial buffer or of block shared memory.
// A zero Partial (Valid == false) marks a lane or block that saw no element.
type Partial[R any] struct {
	Value R
	Valid bool
}

// Merge combines two partials; an invalid side contributes nothing.
func Merge[R any](a, b Partial[R], combine func(R, R) R) Partial[R] {
	switch {
	case !a.Valid:
		return b
	case !b.Valid:
		return a
	default:
		return Partial[R]{Value: combine(a.Value, b.Value), Valid: true}
	}
}

// FoldPartials left-folds parts in block order, skipping invalid slots.
func FoldPartials[R any](parts []Partial[R], combine func(R, R) R) Partial[R] {
	var out Partial[R]
	for _, p := range parts {
		out = Merge(out, p, combine)
	}
	return out
}

// FoldPartialsTree folds parts pairwise. The association differs from
// FoldPartials, which is only acceptable when block order is not significant.
func FoldPartialsTree[R any](parts []Partial[R], combine func(R, R) R) Partial[R] {
	switch len(parts) {
	case 0:
		return Partial[R]{}
	case 1:
		return parts[0]
	}
	mid := len(parts) / 2
	return Merge(FoldPartialsTree(parts[:mid], combine), FoldPartialsTree(parts[mid:], combine), combine)
}
