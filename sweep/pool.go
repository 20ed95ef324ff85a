package sweep

import (
	"math/rand"
	"strconv"
)

// Pool is the id population for a sweep.
type Pool struct {
	// Members are inserted into every set.
	Members [][]byte
	// Others never equal a member and are used to count false positives.
	Others [][]byte
}

// NewPool draws cfg.PoolSize ids from rng. The first cfg.Members ids are the
// members, the rest, less any that collide with a member, are the others.
func NewPool(rng *rand.Rand, cfg Config) Pool {
	ids := make([][]byte, cfg.PoolSize)
	for i := range ids {
		ids[i] = strconv.AppendInt(nil, rng.Int63n(cfg.MaxID+1), 10)
	}

	members := ids[:cfg.Members]
	seen := make(map[string]struct{}, len(members))
	for _, id := range members {
		seen[string(id)] = struct{}{}
	}

	others := make([][]byte, 0, len(ids)-len(members))
	for _, id := range ids[cfg.Members:] {
		if _, ok := seen[string(id)]; ok {
			continue
		}
		others = append(others, id)
	}
	return Pool{Members: members, Others: others}
}

// sampleMembers picks n members without replacement.
func (p Pool) sampleMembers(rng *rand.Rand, n int) [][]byte {
	sample := make([][]byte, len(p.Members))
	copy(sample, p.Members)
	rng.Shuffle(len(sample), func(i, j int) {
		sample[i], sample[j] = sample[j], sample[i]
	})
	return sample[:n]
}
