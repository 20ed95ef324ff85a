package sweep

import (
	"bytes"
	"context"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-hodges/digests"
	"github.com/forestrie/go-hodges/hodges"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	cfg := NewConfig()
	cfg.Seed = 1698342521
	cfg.PoolSize = 2000
	cfg.Members = 50
	cfg.Samples = 20
	cfg.SlotCounts = []uint64{16, 64}
	cfg.ValueSizes = []uint64{2, 4}
	return cfg
}

func testLog(t *testing.T) logger.Logger {
	logger.New("NOOP")
	t.Cleanup(logger.OnExit)
	return logger.Sugar.WithServiceName(t.Name())
}

func TestRunShapesResults(t *testing.T) {
	log := testLog(t)
	cfg := testConfig()

	results, err := Run(context.Background(), log, cfg, rand.New(rand.NewSource(cfg.Seed)))
	require.NoError(t, err)
	require.Len(t, results, 4)

	want := [][2]uint64{{16, 2}, {16, 4}, {64, 2}, {64, 4}}
	for i, r := range results {
		require.Equal(t, want[i][0], r.SlotCount)
		require.Equal(t, want[i][1], r.ValueSize)
		require.Equal(t, r.SlotCount*r.ValueSize*4/8, r.SizeBytes)
		require.LessOrEqual(t, r.Occupied, r.SlotCount)
		require.LessOrEqual(t, r.FalseNegatives, cfg.Samples)
		require.GreaterOrEqual(t, r.FalseNegatives, 0)
		require.Zero(t, r.BloomFalsePositives)
	}

	// 50 members can not fit in 16 slots: at least 4 of the 20 sampled
	// members were evicted.
	require.GreaterOrEqual(t, results[0].FalseNegatives, 4)
	// Fewer token characters means more false positives for the same slots.
	require.Greater(t, results[0].FalsePositives, results[1].FalsePositives)
}

func TestRunIsReproducible(t *testing.T) {
	log := testLog(t)
	cfg := testConfig()

	cfg.Workers = 1
	a, err := Run(context.Background(), log, cfg, rand.New(rand.NewSource(cfg.Seed)))
	require.NoError(t, err)

	cfg.Workers = 8
	b, err := Run(context.Background(), log, cfg, rand.New(rand.NewSource(cfg.Seed)))
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestRunBaseline(t *testing.T) {
	log := testLog(t)
	cfg := testConfig()
	cfg.Baseline = true
	cfg.SlotCounts = []uint64{2048}
	cfg.ValueSizes = []uint64{8}

	results, err := Run(context.Background(), log, cfg, rand.New(rand.NewSource(cfg.Seed)))
	require.NoError(t, err)
	require.Len(t, results, 1)

	// 65536 bits for 50 members: the Bloom filter is effectively exact.
	assert.Zero(t, results[0].BloomFalsePositives)
}

func TestRunRejectsBadConfiguration(t *testing.T) {
	log := testLog(t)

	cfg := testConfig()
	cfg.SlotCounts = []uint64{16, 3}
	_, err := Run(context.Background(), log, cfg, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, hodges.ErrConfiguration)
	require.ErrorIs(t, err, hodges.ErrSlotCount)

	cfg = testConfig()
	cfg.Digest = "xxhash64"
	cfg.ValueSizes = []uint64{17}
	_, err = Run(context.Background(), log, cfg, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, hodges.ErrValueSize)

	cfg = testConfig()
	cfg.Digest = "md4"
	_, err = Run(context.Background(), log, cfg, rand.New(rand.NewSource(1)))
	require.ErrorIs(t, err, digests.ErrUnknownDigest)
}

func TestRunHonoursCancel(t *testing.T) {
	log := testLog(t)
	cfg := testConfig()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, log, cfg, rand.New(rand.NewSource(cfg.Seed)))
	require.ErrorIs(t, err, context.Canceled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"defaults", func(*Config) {}, nil},
		{"no slot counts", func(c *Config) { c.SlotCounts = nil }, ErrEmptySweep},
		{"no value sizes", func(c *Config) { c.ValueSizes = nil }, ErrEmptySweep},
		{"members exceed pool", func(c *Config) { c.Members = c.PoolSize + 1 }, ErrTooManyMembers},
		{"samples exceed members", func(c *Config) { c.Samples = c.Members + 1 }, ErrTooManySamples},
		{"zero max id", func(c *Config) { c.MaxID = 0 }, ErrBadMaxID},
		{"zero workers", func(c *Config) { c.Workers = 0 }, ErrBadWorkers},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNewConfigDoesNotAliasDefaults(t *testing.T) {
	cfg := NewConfig()
	cfg.SlotCounts[0] = 1
	require.Equal(t, uint64(64), DefaultConfig.SlotCounts[0])
}

func TestNewPool(t *testing.T) {
	cfg := testConfig()
	cfg.MaxID = 100 // force duplicates between members and others

	pool := NewPool(rand.New(rand.NewSource(7)), cfg)
	require.Len(t, pool.Members, cfg.Members)
	require.Less(t, len(pool.Others), cfg.PoolSize-cfg.Members)

	members := map[string]bool{}
	for _, id := range pool.Members {
		members[string(id)] = true
		n, err := strconv.ParseInt(string(id), 10, 64)
		require.NoError(t, err)
		require.LessOrEqual(t, n, cfg.MaxID)
		require.GreaterOrEqual(t, n, int64(0))
	}
	for _, id := range pool.Others {
		require.False(t, members[string(id)], "non member %s equals a member", id)
	}

	again := NewPool(rand.New(rand.NewSource(7)), cfg)
	require.Equal(t, pool, again)

	other := NewPool(rand.New(rand.NewSource(8)), cfg)
	require.NotEqual(t, pool.Members, other.Members)
}

func TestSampleMembers(t *testing.T) {
	cfg := testConfig()
	pool := NewPool(rand.New(rand.NewSource(3)), cfg)

	sample := pool.sampleMembers(rand.New(rand.NewSource(4)), cfg.Samples)
	require.Len(t, sample, cfg.Samples)

	seen := map[string]bool{}
	for _, id := range sample {
		require.False(t, seen[string(id)], "sampled twice")
		seen[string(id)] = true
	}
}

func TestBloomK(t *testing.T) {
	require.Equal(t, uint(1), bloomK(10, 0))
	require.Equal(t, uint(1), bloomK(1, 100))
	// 1024 bits / 100 elements * ln2 = 7.09
	require.Equal(t, uint(7), bloomK(1024, 100))
}

func TestWriteCSV(t *testing.T) {
	results := []Result{
		{SlotCount: 64, ValueSize: 4, SizeBytes: 128, FalseNegatives: 3, FalsePositives: 0, BloomFalsePositives: 9},
		{SlotCount: 2048, ValueSize: 8, SizeBytes: 8192, FalseNegatives: 0, FalsePositives: 1},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, results, false))
	require.Equal(t,
		"configuration,size (bytes),false negatives,false positives\n"+
			"64/4,128,3,0\n"+
			"2048/8,8192,0,1\n",
		buf.String())

	buf.Reset()
	require.NoError(t, WriteCSV(&buf, results, true))
	require.Equal(t,
		"configuration,size (bytes),false negatives,false positives,bloom false positives\n"+
			"64/4,128,3,0,9\n"+
			"2048/8,8192,0,1,0\n",
		buf.String())
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
Seed = 42
Members = 10
SlotCounts = [8, 16]
Digest = "xxhash64"
Baseline = true
`), 0o644))

	cfg := NewConfig()
	require.NoError(t, LoadConfig(path, &cfg))
	require.Equal(t, int64(42), cfg.Seed)
	require.Equal(t, 10, cfg.Members)
	require.Equal(t, []uint64{8, 16}, cfg.SlotCounts)
	require.Equal(t, "xxhash64", cfg.Digest)
	require.True(t, cfg.Baseline)

	// Untouched keys keep their defaults.
	require.Equal(t, DefaultConfig.PoolSize, cfg.PoolSize)
	require.Equal(t, DefaultConfig.ValueSizes, cfg.ValueSizes)
}

func TestLoadConfigRejectsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.toml")
	require.NoError(t, os.WriteFile(path, []byte("Bogus = 1\n"), 0o644))

	cfg := NewConfig()
	err := LoadConfig(path, &cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Bogus")
}

func TestMarshalConfigLoads(t *testing.T) {
	cfg := testConfig()
	cfg.Baseline = true

	out, err := MarshalConfig(cfg)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "dump.toml")
	require.NoError(t, os.WriteFile(path, out, 0o644))

	var loaded Config
	require.NoError(t, LoadConfig(path, &loaded))
	require.Equal(t, cfg, loaded)
}
