package hodges

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
)

// Digest produces a fixed width, lowercase hexadecimal digest.
//
// HexSum must be deterministic and must always return HexLen characters.
type Digest interface {
	HexLen() int
	HexSum(data []byte) string
}

// HashDigest adapts a hash.Hash factory to Digest.
//
// A fresh hasher is created per call so a HashDigest may be shared between
// sets used from different goroutines.
type HashDigest struct {
	newHash func() hash.Hash
	hexLen  int
}

// NewHashDigest returns a Digest hex encoding the sums of hashers made by
// newHash.
func NewHashDigest(newHash func() hash.Hash) *HashDigest {
	return &HashDigest{newHash: newHash, hexLen: hex.EncodedLen(newHash().Size())}
}

func (d *HashDigest) HexLen() int { return d.hexLen }

func (d *HashDigest) HexSum(data []byte) string {
	h := d.newHash()
	_, _ = h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// SHA256 is the default digest: 64 hex characters.
var SHA256 Digest = NewHashDigest(sha256.New)
