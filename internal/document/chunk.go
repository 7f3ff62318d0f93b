package document

import "github.com/dshills/richsheet/internal/delta"

// maxChunkOps bounds the number of operations stored per chunk.
const maxChunkOps = 64

// chunk is an immutable run of operations.
type chunk struct {
	ops    []delta.Op
	length int
}

func newChunk(ops []delta.Op) *chunk {
	c := &chunk{ops: ops}
	for _, op := range ops {
		c.length += op.Len()
	}
	return c
}

// buildChunks splits ops into chunks of at most maxChunkOps operations.
func buildChunks(ops []delta.Op) []*chunk {
	if len(ops) == 0 {
		return nil
	}
	chunks := make([]*chunk, 0, (len(ops)+maxChunkOps-1)/maxChunkOps)
	for len(ops) > 0 {
		n := min(len(ops), maxChunkOps)
		chunks = append(chunks, newChunk(ops[:n:n]))
		ops = ops[n:]
	}
	return chunks
}
