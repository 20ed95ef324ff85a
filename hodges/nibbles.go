package hodges

const hexDigits = "0123456789abcdef"

// hexNibble returns the value of a hex character. Characters outside
// [0-9a-fA-F] read as zero.
func hexNibble(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// lowBits64 reads the trailing (at most 16) hex characters of s as a big
// endian integer, which is int(s, 16) reduced mod 2^64.
func lowBits64(s string) uint64 {
	start := 0
	if len(s) > 16 {
		start = len(s) - 16
	}
	var v uint64
	for i := start; i < len(s); i++ {
		v = v<<NibbleBits | uint64(hexNibble(s[i]))
	}
	return v
}

func getNibble(b []byte, n uint64) uint8 {
	if n&1 == 0 {
		return b[n>>1] >> 4
	}
	return b[n>>1] & 0x0f
}

func setNibble(b []byte, n uint64, v uint8) {
	if n&1 == 0 {
		b[n>>1] = b[n>>1]&0x0f | v<<4
		return
	}
	b[n>>1] = b[n>>1]&0xf0 | v&0x0f
}

func getBitLSB0(bitset []byte, i uint64) bool {
	return bitset[i>>3]&(1<<uint8(i&7)) != 0
}

func setBitLSB0(bitset []byte, i uint64) {
	bitset[i>>3] |= 1 << uint8(i&7)
}
