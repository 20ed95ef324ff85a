package hodges

import "math/bits"

// IsPow2 determines if v is a perfect power of 2. Zero is not.
func IsPow2(v uint64) bool {
	return v != 0 && v&(v-1) == 0
}

// Log2Uint64 computes log base 2 of num. num must be non zero.
func Log2Uint64(num uint64) uint64 {
	return uint64(bits.Len64(num) - 1)
}
