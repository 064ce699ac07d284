package index

import (
	"fmt"
	"math"
	"sort"

	"github.com/docquery-labs/docquery-core/internal/core/domain"
)

// Verify interface compliance
var _ domain.Searcher = (*Index)(nil)

// Index is an in-memory vector index over one document's chunks.
// Built once per document in a single bulk pass and read-only afterwards,
// so concurrent Search calls need no locking. Vectors are L2-normalized at
// build time; cosine similarity reduces to a dot product.
type Index struct {
	chunks  []domain.Chunk
	vectors [][]float32
	dim     int
}

// Build constructs an index from embedded chunks. The input order is kept;
// chunk positions are expected to be in document order.
func Build(embedded []domain.EmbeddedChunk) (*Index, error) {
	if len(embedded) == 0 {
		return nil, domain.ErrEmptyIndex
	}

	dim := len(embedded[0].Vector)
	if dim == 0 {
		return nil, fmt.Errorf("%w: zero-length vector at position %d", domain.ErrDimensionMismatch, embedded[0].Position)
	}

	ix := &Index{
		chunks:  make([]domain.Chunk, len(embedded)),
		vectors: make([][]float32, len(embedded)),
		dim:     dim,
	}
	for i, ec := range embedded {
		if len(ec.Vector) != dim {
			return nil, fmt.Errorf("%w: chunk %d has dimension %d, expected %d",
				domain.ErrDimensionMismatch, ec.Position, len(ec.Vector), dim)
		}
		ix.chunks[i] = ec.Chunk
		ix.vectors[i] = normalize(ec.Vector)
	}
	return ix, nil
}

// Search returns up to k chunks ordered by descending cosine similarity.
// Exact score ties are broken by ascending chunk position for determinism.
func (ix *Index) Search(query []float32, k int) []domain.ScoredChunk {
	if k <= 0 || len(query) != ix.dim {
		return nil
	}

	q := normalize(query)
	results := make([]domain.ScoredChunk, len(ix.chunks))
	for i := range ix.chunks {
		results[i] = domain.ScoredChunk{
			Chunk: &ix.chunks[i],
			Score: dot(ix.vectors[i], q),
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score == results[j].Score {
			return results[i].Chunk.Position < results[j].Chunk.Position
		}
		return results[i].Score > results[j].Score
	})

	if k > len(results) {
		k = len(results)
	}
	return results[:k]
}

// Len returns the number of indexed chunks.
func (ix *Index) Len() int {
	return len(ix.chunks)
}

// Dimensions returns the vector dimension of the index.
func (ix *Index) Dimensions() int {
	return ix.dim
}

// normalize returns an L2-normalized copy of v. Zero vectors are returned
// as a zero copy, which scores 0 against everything.
func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	out := make([]float32, len(v))
	if sum == 0 {
		return out
	}
	norm := math.Sqrt(sum)
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

func dot(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += float64(a[i]) * float64(b[i])
	}
	return sum
}
