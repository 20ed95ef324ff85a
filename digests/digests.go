// Package digests provides hodges.Digest implementations beyond the default
// SHA-256, selectable by name.
package digests

import (
	"errors"
	"fmt"
	"hash"
	"sort"

	"github.com/cespare/xxhash/v2"
	"github.com/forestrie/go-hodges/hodges"
	"github.com/spaolacci/murmur3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

const (
	SHA256     = "sha256"
	SHA3_256   = "sha3-256"
	Keccak256  = "keccak256"
	BLAKE2b256 = "blake2b-256"
	XXHash64   = "xxhash64"
	Murmur3128 = "murmur3-128"
)

var ErrUnknownDigest = errors.New("digests: unknown digest")

var registry = map[string]hodges.Digest{
	SHA256:     hodges.SHA256,
	SHA3_256:   hodges.NewHashDigest(sha3.New256),
	Keccak256:  hodges.NewHashDigest(sha3.NewLegacyKeccak256),
	BLAKE2b256: hodges.NewHashDigest(newBlake2b256),
	XXHash64:   hodges.NewHashDigest(func() hash.Hash { return xxhash.New() }),
	Murmur3128: hodges.NewHashDigest(func() hash.Hash { return murmur3.New128() }),
}

// blake2b.New256 only fails for keys longer than 64 bytes.
func newBlake2b256() hash.Hash {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err)
	}
	return h
}

// ByName returns the digest registered under name.
func ByName(name string) (hodges.Digest, error) {
	d, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDigest, name)
	}
	return d, nil
}

// Names returns the registered digest names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
