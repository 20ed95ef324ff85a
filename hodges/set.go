package hodges

import (
	"math"
	"math/bits"
)

// Set is a Hodges set. See the package documentation for the algorithm.
type Set struct {
	digest    Digest
	slotCount uint64
	valueSize uint64
	mask      uint64

	// occupied is the LSB0 occupancy bitset, one bit per slot.
	occupied []byte
	// tokens holds slotCount*valueSize packed nibbles.
	tokens []byte
}

// New creates an empty set of slotCount slots, each able to hold a token of
// valueSize hex characters.
//
// slotCount must be a positive power of two and valueSize must be in
// [1, digest.HexLen()]. Violations are reported as *ConfigurationError.
func New(slotCount, valueSize uint64, opts ...Option) (*Set, error) {
	options := newOptions(opts...)

	d := options.Digest
	if d == nil || d.HexLen() <= 0 {
		return nil, configErr("digest", 0, ErrDigest)
	}
	hexLen := uint64(d.HexLen())

	if !IsPow2(slotCount) {
		return nil, configErr("slotCount", slotCount, ErrSlotCount)
	}
	// The index can not use more bits than the digest has.
	if Log2Uint64(slotCount) > min(MaxSlotBits, hexLen*NibbleBits) {
		return nil, configErr("slotCount", slotCount, ErrSlotCount)
	}
	if valueSize == 0 || valueSize > hexLen {
		return nil, configErr("valueSize", valueSize, ErrValueSize)
	}
	hi, nibbles := bits.Mul64(slotCount, valueSize)
	if hi != 0 || nibbles > math.MaxUint64/NibbleBits || nibbles > math.MaxInt {
		return nil, configErr("slotCount", slotCount, ErrSizeOverflow)
	}

	return &Set{
		digest:    d,
		slotCount: slotCount,
		valueSize: valueSize,
		mask:      slotCount - 1,
		occupied:  make([]byte, OccupancyBytes(slotCount)),
		tokens:    make([]byte, TokenBytes(slotCount, valueSize)),
	}, nil
}

func (s *Set) SlotCount() uint64 { return s.slotCount }
func (s *Set) ValueSize() uint64 { return s.valueSize }

// SizeBits returns the token footprint, slotCount * valueSize * 4.
func (s *Set) SizeBits() uint64 { return TokenBits(s.slotCount, s.valueSize) }

// SizeBytes returns SizeBits()/8, truncated.
func (s *Set) SizeBytes() uint64 { return s.SizeBits() / 8 }

// Add records entry, evicting the previous occupant of its slot.
func (s *Set) Add(entry []byte) {
	k, v := s.kv(entry)
	base := k * s.valueSize
	for i := uint64(0); i < s.valueSize; i++ {
		setNibble(s.tokens, base+i, hexNibble(v[i]))
	}
	setBitLSB0(s.occupied, k)
}

// Contains reports whether entry is probably in the set.
//
// false may be a false negative (entry was evicted), true may be a false
// positive (an absent entry whose token matches the occupant).
func (s *Set) Contains(entry []byte) bool {
	k, v := s.kv(entry)
	if !getBitLSB0(s.occupied, k) {
		return false
	}
	base := k * s.valueSize
	for i := uint64(0); i < s.valueSize; i++ {
		if getNibble(s.tokens, base+i) != hexNibble(v[i]) {
			return false
		}
	}
	return true
}

// Slot returns the token held by slot i.
//
// ok=false indicates the slot is empty.
func (s *Set) Slot(i uint64) (token string, ok bool, err error) {
	if i >= s.slotCount {
		return "", false, ErrSlotIndex
	}
	if !getBitLSB0(s.occupied, i) {
		return "", false, nil
	}
	b := make([]byte, s.valueSize)
	base := i * s.valueSize
	for j := range b {
		b[j] = hexDigits[getNibble(s.tokens, base+uint64(j))]
	}
	return string(b), true, nil
}

// Occupied returns the number of non empty slots.
func (s *Set) Occupied() uint64 {
	var n int
	for _, b := range s.occupied {
		n += bits.OnesCount8(b)
	}
	return uint64(n)
}

// Reset empties every slot.
func (s *Set) Reset() {
	clear(s.occupied)
	clear(s.tokens)
}

// kv derives the slot index and token for entry.
func (s *Set) kv(entry []byte) (uint64, string) {
	d1 := s.digest.HexSum(entry)
	k := lowBits64(d1) & s.mask
	// The token digest is taken over the hex text of d1, not its raw bytes.
	d2 := s.digest.HexSum([]byte(d1))
	return k, d2[:s.valueSize]
}
