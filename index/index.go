package index

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/hupe1980/vecgo/distance"
	"github.com/poiesic/asha/core"
)

// ErrDimensionMismatch is returned when a query vector's length differs from
// the indexed vectors.
var ErrDimensionMismatch = errors.New("query dimension does not match index")

// Index is an exact nearest-neighbor index over a fixed set of vectors.
// Search compares the query against every vector; no approximation is made.
// An Index is immutable after Build and safe for concurrent searches.
type Index struct {
	vectors   [][]float32
	dimension int
}

// Build creates an index over matrix. Row i of the matrix becomes unit index i.
// The matrix is copied, so later changes by the caller do not affect the index.
//
// Build rejects an empty matrix, rows of differing or zero length, and
// non-finite values, all as malformed embedding output.
func Build(matrix [][]float32) (*Index, error) {
	if len(matrix) == 0 {
		return nil, fmt.Errorf("%w: no vectors to index", core.ErrEmbeddingService)
	}

	dim := len(matrix[0])
	if dim == 0 {
		return nil, fmt.Errorf("%w: vector 0 is empty", core.ErrEmbeddingService)
	}

	vectors := make([][]float32, len(matrix))
	for i, row := range matrix {
		if len(row) != dim {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, want %d", core.ErrEmbeddingService, i, len(row), dim)
		}
		for j, v := range row {
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				return nil, fmt.Errorf("%w: vector %d has non-finite value at %d", core.ErrEmbeddingService, i, j)
			}
		}
		vectors[i] = slices.Clone(row)
	}

	return &Index{vectors: vectors, dimension: dim}, nil
}

// Len returns the number of indexed vectors.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.vectors)
}

// Dimension returns the length of every indexed vector.
func (ix *Index) Dimension() int {
	if ix == nil {
		return 0
	}
	return ix.dimension
}

// Search returns the k vectors nearest to query by Euclidean distance,
// closest first. Equal distances are ordered by unit index.
// k larger than Len is clamped; k <= 0 returns no hits.
func (ix *Index) Search(query []float32, k int) ([]core.Hit, error) {
	if ix == nil || ix.vectors == nil {
		return nil, core.ErrIndexNotBuilt
	}
	if len(query) != ix.dimension {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(query), ix.dimension)
	}
	if k <= 0 {
		return []core.Hit{}, nil
	}
	k = min(k, len(ix.vectors))

	// Squared distances order the same as distances; take the root only for the winners
	hits := make([]core.Hit, len(ix.vectors))
	for i, v := range ix.vectors {
		hits[i] = core.Hit{UnitIndex: i, Distance: distance.SquaredL2(query, v)}
	}

	slices.SortStableFunc(hits, func(a, b core.Hit) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	hits = hits[:k:k]
	for i := range hits {
		hits[i].Distance = float32(math.Sqrt(float64(hits[i].Distance)))
	}
	return hits, nil
}
