package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"sort"

	"segment-aligner/internal/aligner"
)

// ChunkerVersion identifies the chunking rules. Update it when chunk
// boundaries change so cached chunk hashes can be told apart.
const ChunkerVersion = "v1.0"

// Stats describes how a transcript was segmented and chunked.
type Stats struct {
	Segments          int
	WordTimedSegments int
	Words             int
	Chunks            int
	TimedChunks       int
	ChunkWords        ChunkWordStats
	ChunkerVersion    string
	ChunkHash         string
}

// ChunkWordStats summarizes words per chunk.
type ChunkWordStats struct {
	Min  int
	Max  int
	Mean float64
	P95  int
}

// ContentHash returns the hex sha256 of raw transcript bytes. Import stores
// it so unchanged files can be skipped on re-import.
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// ComputeStats derives chunking statistics for t.
func ComputeStats(t *Transcript) Stats {
	stats := Stats{
		Segments:       len(t.Segments),
		Chunks:         len(t.Chunks),
		ChunkerVersion: ChunkerVersion,
	}

	for _, seg := range t.Segments {
		if seg.Kind() == aligner.KindWordTimed {
			stats.WordTimedSegments++
		}
	}

	counts := make([]int, 0, len(t.Chunks))
	h := sha256.New()
	h.Write([]byte(ChunkerVersion))
	for _, c := range t.Chunks {
		counts = append(counts, c.Words)
		stats.Words += c.Words
		if c.Timed() {
			stats.TimedChunks++
		}
		h.Write([]byte(c.Text))
		h.Write([]byte{0})
	}

	stats.ChunkWords = computeWordStats(counts)
	stats.ChunkHash = hex.EncodeToString(h.Sum(nil))[:16]
	return stats
}

// computeWordStats computes min, max, mean and nearest-rank p95.
func computeWordStats(counts []int) ChunkWordStats {
	if len(counts) == 0 {
		return ChunkWordStats{}
	}

	sorted := make([]int, len(counts))
	copy(sorted, counts)
	sort.Ints(sorted)

	sum := 0
	for _, c := range counts {
		sum += c
	}
	mean := float64(sum) / float64(len(counts))

	p95Index := int(math.Ceil(float64(len(sorted))*0.95)) - 1
	p95Index = max(0, min(p95Index, len(sorted)-1))

	return ChunkWordStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: math.Round(mean*100) / 100,
		P95:  sorted[p95Index],
	}
}
