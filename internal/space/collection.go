package space

import (
	"fmt"
	"iter"
)

// Collection is an immutable-membership, queryable aggregate of cells from a
// single space: all cells, a neighborhood, the empty cells around an agent.
// Every operation returns a new Collection or a derived value; none mutates
// the receiver. Iteration order is stable for a given construction.
type Collection[C Coordinate] struct {
	space *Space[C]
	cells []*Cell[C]
	// weights parallels cells when non-nil and biases SelectRandom.
	weights []float64
}

func newCollection[C Coordinate](s *Space[C], cells []*Cell[C]) *Collection[C] {
	return &Collection[C]{space: s, cells: cells}
}

// NewCollection builds a collection over the given cells, all of which must
// belong to this space; mixing spaces fails with ErrCrossSpace.
func (s *Space[C]) NewCollection(cells []*Cell[C]) (*Collection[C], error) {
	for _, c := range cells {
		if c.space != s {
			return nil, fmt.Errorf("collection over %s: %w", c.coord, ErrCrossSpace)
		}
	}
	return newCollection(s, append([]*Cell[C](nil), cells...)), nil
}

// Len returns the number of cells in the collection.
func (cc *Collection[C]) Len() int { return len(cc.cells) }

// Space returns the space all member cells belong to.
func (cc *Collection[C]) Space() *Space[C] { return cc.space }

// All returns a restartable iterator over the member cells in stable order.
func (cc *Collection[C]) All() iter.Seq[*Cell[C]] {
	return func(yield func(*Cell[C]) bool) {
		for _, c := range cc.cells {
			if !yield(c) {
				return
			}
		}
	}
}

// Cells returns the member cells as a fresh slice in iteration order.
func (cc *Collection[C]) Cells() []*Cell[C] {
	return append([]*Cell[C](nil), cc.cells...)
}

// At returns the i-th cell in iteration order.
func (cc *Collection[C]) At(i int) *Cell[C] { return cc.cells[i] }

// WithWeights returns a copy of the collection carrying a weight per cell,
// used by SelectRandom for biased sampling.
func (cc *Collection[C]) WithWeights(weight func(*Cell[C]) float64) *Collection[C] {
	w := make([]float64, len(cc.cells))
	for i, c := range cc.cells {
		w[i] = weight(c)
	}
	return &Collection[C]{space: cc.space, cells: cc.cells, weights: w}
}

// Select returns a new collection of the cells satisfying pred, in order.
// The scan stops as soon as atMost matches are found; atMost <= 0 means
// unbounded. Stopping early matters on large spaces where only a few
// matches are ever needed ("find one empty neighbor").
func (cc *Collection[C]) Select(pred func(*Cell[C]) bool, atMost int) *Collection[C] {
	var cells []*Cell[C]
	var weights []float64
	for i, c := range cc.cells {
		if !pred(c) {
			continue
		}
		cells = append(cells, c)
		if cc.weights != nil {
			weights = append(weights, cc.weights[i])
		}
		if atMost > 0 && len(cells) >= atMost {
			break
		}
	}
	return &Collection[C]{space: cc.space, cells: cells, weights: weights}
}

// SelectRandom draws k cells through the owning space's seeded generator,
// weighted when the collection carries weights and uniform otherwise.
// Without replacement, k larger than the collection fails with
// ErrSampleSize.
func (cc *Collection[C]) SelectRandom(k int, withReplacement bool) ([]*Cell[C], error) {
	n := len(cc.cells)
	if k < 0 {
		return nil, fmt.Errorf("select %d random cells: %w", k, ErrSampleSize)
	}
	if !withReplacement && k > n {
		return nil, fmt.Errorf("select %d random cells from %d: %w", k, n, ErrSampleSize)
	}
	if withReplacement && k > 0 && n == 0 {
		return nil, fmt.Errorf("select %d random cells from empty collection: %w", k, ErrSampleSize)
	}

	rng := cc.space.rng
	out := make([]*Cell[C], 0, k)

	if cc.weights == nil {
		if withReplacement {
			for i := 0; i < k; i++ {
				out = append(out, cc.cells[rng.Intn(n)])
			}
			return out, nil
		}
		// Partial Fisher-Yates over an index copy.
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		for i := 0; i < k; i++ {
			j := i + rng.Intn(n-i)
			idx[i], idx[j] = idx[j], idx[i]
			out = append(out, cc.cells[idx[i]])
		}
		return out, nil
	}

	// Weighted draws: linear scan of the remaining mass. Collections used
	// for weighted selection are small (neighborhoods, candidate sets).
	cells := append([]*Cell[C](nil), cc.cells...)
	weights := append([]float64(nil), cc.weights...)
	total := 0.0
	for _, w := range weights {
		total += w
	}
	for i := 0; i < k; i++ {
		r := rng.Float64() * total
		chosen := len(cells) - 1
		for j, w := range weights {
			r -= w
			if r < 0 {
				chosen = j
				break
			}
		}
		out = append(out, cells[chosen])
		if !withReplacement {
			total -= weights[chosen]
			cells = append(cells[:chosen], cells[chosen+1:]...)
			weights = append(weights[:chosen], weights[chosen+1:]...)
		}
	}
	return out, nil
}

// BestMatch returns the single cell maximizing (or minimizing) key,
// breaking ties uniformly at random through the space's generator. The
// randomized tie-break is a fairness property: repeated runs with fresh
// seeds spread ties evenly instead of favoring scan order. An empty
// collection fails with ErrSampleSize.
func (cc *Collection[C]) BestMatch(key func(*Cell[C]) float64, maximize bool) (*Cell[C], error) {
	if len(cc.cells) == 0 {
		return nil, fmt.Errorf("best match over empty collection: %w", ErrSampleSize)
	}
	best := key(cc.cells[0])
	ties := []*Cell[C]{cc.cells[0]}
	for _, c := range cc.cells[1:] {
		v := key(c)
		switch {
		case v == best:
			ties = append(ties, c)
		case maximize && v > best, !maximize && v < best:
			best = v
			ties = ties[:0]
			ties = append(ties, c)
		}
	}
	if len(ties) == 1 {
		return ties[0], nil
	}
	return ties[cc.space.rng.Intn(len(ties))], nil
}

// Union returns a new collection holding every cell present in either
// collection, receiver order first. Both collections must belong to the
// same space. The result is unweighted.
func (cc *Collection[C]) Union(other *Collection[C]) (*Collection[C], error) {
	if cc.space != other.space {
		return nil, fmt.Errorf("union: %w", ErrCrossSpace)
	}
	seen := make(map[int]struct{}, len(cc.cells)+len(other.cells))
	cells := make([]*Cell[C], 0, len(cc.cells)+len(other.cells))
	for _, c := range cc.cells {
		if _, ok := seen[c.index]; ok {
			continue
		}
		seen[c.index] = struct{}{}
		cells = append(cells, c)
	}
	for _, c := range other.cells {
		if _, ok := seen[c.index]; ok {
			continue
		}
		seen[c.index] = struct{}{}
		cells = append(cells, c)
	}
	return newCollection(cc.space, cells), nil
}

// Intersect returns a new collection of the cells present in both
// collections, in receiver order. Both collections must belong to the same
// space. The result is unweighted.
func (cc *Collection[C]) Intersect(other *Collection[C]) (*Collection[C], error) {
	if cc.space != other.space {
		return nil, fmt.Errorf("intersect: %w", ErrCrossSpace)
	}
	in := make(map[int]struct{}, len(other.cells))
	for _, c := range other.cells {
		in[c.index] = struct{}{}
	}
	var cells []*Cell[C]
	for _, c := range cc.cells {
		if _, ok := in[c.index]; ok {
			cells = append(cells, c)
		}
	}
	return newCollection(cc.space, cells), nil
}

// Contains reports whether the cell is a member of the collection.
func (cc *Collection[C]) Contains(target *Cell[C]) bool {
	for _, c := range cc.cells {
		if c == target {
			return true
		}
	}
	return false
}
