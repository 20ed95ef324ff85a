// Package sweep measures Hodges set error rates over a grid of
// (slotCount, valueSize) configurations.
package sweep

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-hodges/digests"
	"github.com/forestrie/go-hodges/hodges"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome for one configuration.
type Result struct {
	SlotCount uint64
	ValueSize uint64
	// SizeBytes is slotCount * valueSize * 4 / 8, the token footprint.
	SizeBytes uint64
	Occupied  uint64

	FalseNegatives int
	FalsePositives int

	// BloomFalsePositives is only set when Config.Baseline is true.
	BloomFalsePositives int
}

type job struct {
	idx       int
	slotCount uint64
	valueSize uint64
	seed      int64
}

// Run executes the sweep described by cfg, drawing all randomness from rng.
//
// Each configuration samples from its own source seeded from rng before any
// work starts, so results do not depend on cfg.Workers. Results are ordered
// slot count major, value size minor.
func Run(ctx context.Context, log logger.Logger, cfg Config, rng *rand.Rand) ([]Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d, err := digests.ByName(cfg.Digest)
	if err != nil {
		return nil, err
	}

	// Reject bad configurations before spending time on the pool.
	for _, slotCount := range cfg.SlotCounts {
		for _, valueSize := range cfg.ValueSizes {
			if _, err := hodges.New(slotCount, valueSize, hodges.WithDigest(d)); err != nil {
				return nil, fmt.Errorf("configuration %d/%d: %w", slotCount, valueSize, err)
			}
		}
	}

	runID := uuid.New()
	log.Infof("sweep %s: %d configurations, digest %s, seed %d",
		runID, len(cfg.SlotCounts)*len(cfg.ValueSizes), cfg.Digest, cfg.Seed)

	pool := NewPool(rng, cfg)
	log.Infof("sweep %s: %d members, %d others", runID, len(pool.Members), len(pool.Others))

	var jobs []job
	for _, slotCount := range cfg.SlotCounts {
		for _, valueSize := range cfg.ValueSizes {
			jobs = append(jobs, job{
				idx:       len(jobs),
				slotCount: slotCount,
				valueSize: valueSize,
				seed:      rng.Int63(),
			})
		}
	}

	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for _, j := range jobs {
		j := j
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := measure(pool, d, cfg, j)
			if err != nil {
				return err
			}
			results[j.idx] = r
			log.Debugf("sweep %s: %d/%d fn=%d fp=%d", runID, r.SlotCount, r.ValueSize, r.FalseNegatives, r.FalsePositives)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// A cancel racing the last job is still a cancel.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log.Infof("sweep %s: done", runID)
	return results, nil
}

func measure(pool Pool, d hodges.Digest, cfg Config, j job) (Result, error) {
	set, err := hodges.New(j.slotCount, j.valueSize, hodges.WithDigest(d))
	if err != nil {
		return Result{}, fmt.Errorf("configuration %d/%d: %w", j.slotCount, j.valueSize, err)
	}
	for _, id := range pool.Members {
		set.Add(id)
	}

	r := Result{
		SlotCount: j.slotCount,
		ValueSize: j.valueSize,
		SizeBytes: set.SizeBytes(),
		Occupied:  set.Occupied(),
	}

	rng := rand.New(rand.NewSource(j.seed))
	for _, id := range pool.sampleMembers(rng, cfg.Samples) {
		if !set.Contains(id) {
			r.FalseNegatives++
		}
	}
	for _, id := range pool.Others {
		if set.Contains(id) {
			r.FalsePositives++
		}
	}

	if cfg.Baseline {
		r.BloomFalsePositives = bloomFalsePositives(pool, set.SizeBits())
	}
	return r, nil
}
