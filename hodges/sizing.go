package hodges

// TokenBits returns slotCount * valueSize * 4, the token footprint in bits.
//
// The caller is responsible for ensuring the product does not overflow.
func TokenBits(slotCount, valueSize uint64) uint64 {
	return slotCount * valueSize * NibbleBits
}

// TokenBytes returns ceil(slotCount*valueSize/2), the packed token storage.
func TokenBytes(slotCount, valueSize uint64) uint64 {
	return (slotCount*valueSize + 1) / 2
}

// OccupancyBytes returns ceil(slotCount/8), the size of the occupancy bitset.
func OccupancyBytes(slotCount uint64) uint64 {
	return (slotCount + 7) / 8
}
