package sweep

import (
	"math"

	"github.com/bits-and-blooms/bloom/v3"
)

// bloomK returns the optimal Bloom hash count for mBits bits and n elements,
// round(mBits/n * ln 2), at least 1.
func bloomK(mBits uint64, n int) uint {
	if n <= 0 {
		return 1
	}
	k := math.Round(float64(mBits) / float64(n) * math.Ln2)
	if k < 1 {
		return 1
	}
	return uint(k)
}

// bloomFalsePositives fills a Bloom filter of mBits bits with the pool
// members and counts how many of the others it reports present.
func bloomFalsePositives(pool Pool, mBits uint64) int {
	f := bloom.New(uint(mBits), bloomK(mBits, len(pool.Members)))
	for _, id := range pool.Members {
		f.Add(id)
	}
	fp := 0
	for _, id := range pool.Others {
		if f.Test(id) {
			fp++
		}
	}
	return fp
}
