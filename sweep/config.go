package sweep

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"reflect"
	"unicode"

	"github.com/naoina/toml"
)

var (
	ErrEmptySweep     = errors.New("sweep: no slot counts or value sizes")
	ErrTooManyMembers = errors.New("sweep: Members exceeds PoolSize")
	ErrTooManySamples = errors.New("sweep: Samples exceeds Members")
	ErrBadMaxID       = errors.New("sweep: MaxID must be positive and below 2^63-1")
	ErrBadWorkers     = errors.New("sweep: Workers must be positive")
)

// Config describes one parameter sweep.
type Config struct {
	// Seed drives every random choice in the sweep. The same Seed gives the
	// same results.
	Seed int64

	// PoolSize ids are generated. The first Members of them are inserted.
	PoolSize int
	Members  int
	// Samples members are re-checked to count false negatives.
	Samples int
	// Ids are decimal strings of integers drawn uniformly from [0, MaxID].
	MaxID int64

	SlotCounts []uint64
	ValueSizes []uint64

	// Digest names a digest registered in the digests package.
	Digest string

	// Baseline also measures a Bloom filter with the same bit budget.
	Baseline bool

	Workers int
}

// DefaultConfig matches the original hand run sweep.
var DefaultConfig = Config{
	Seed:       1,
	PoolSize:   20000,
	Members:    200,
	Samples:    100,
	MaxID:      12345678987654321,
	SlotCounts: []uint64{64, 128, 256, 512, 1024, 2048},
	ValueSizes: []uint64{4, 5, 6, 7, 8},
	Digest:     "sha256",
	Workers:    4,
}

// NewConfig returns a copy of DefaultConfig that shares no slices with it.
func NewConfig() Config {
	cfg := DefaultConfig
	cfg.SlotCounts = append([]uint64(nil), DefaultConfig.SlotCounts...)
	cfg.ValueSizes = append([]uint64(nil), DefaultConfig.ValueSizes...)
	return cfg
}

// Validate checks the sweep level parameters. Individual (slotCount,
// valueSize) pairs are checked by hodges.New when the sweep runs.
func (c Config) Validate() error {
	if len(c.SlotCounts) == 0 || len(c.ValueSizes) == 0 {
		return ErrEmptySweep
	}
	if c.Members < 0 || c.Members > c.PoolSize {
		return fmt.Errorf("%w: %d > %d", ErrTooManyMembers, c.Members, c.PoolSize)
	}
	if c.Samples < 0 || c.Samples > c.Members {
		return fmt.Errorf("%w: %d > %d", ErrTooManySamples, c.Samples, c.Members)
	}
	if c.MaxID <= 0 || c.MaxID == 1<<63-1 {
		return ErrBadMaxID
	}
	if c.Workers <= 0 {
		return ErrBadWorkers
	}
	return nil
}

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		link := ""
		if unicode.IsUpper(rune(rt.Name()[0])) {
			link = fmt.Sprintf(", see https://pkg.go.dev/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

// LoadConfig overlays the TOML file onto cfg.
func LoadConfig(file string, cfg *Config) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// MarshalConfig renders cfg as TOML in the form LoadConfig accepts.
func MarshalConfig(cfg Config) ([]byte, error) {
	return tomlSettings.Marshal(&cfg)
}
