package hodges

import (
	"errors"
	"fmt"
)

const (
	// NibbleBits is the number of bits carried by one hex character of a token.
	NibbleBits = 4

	// MaxSlotBits bounds the slot index width. The index is taken from the low
	// order 64 bits of the primary digest.
	MaxSlotBits = 63
)

var (
	ErrConfiguration = errors.New("hodges: invalid configuration")

	ErrSlotCount = errors.New("hodges: slotCount must be a positive power of two")
	ErrValueSize = errors.New("hodges: valueSize outside [1, digest hex length]")
	ErrDigest    = errors.New("hodges: digest unusable")

	ErrSizeOverflow = errors.New("hodges: size computation overflow")
	ErrSlotIndex    = errors.New("hodges: slot index out of range")
)

// ConfigurationError reports a rejected construction parameter.
//
// It matches both ErrConfiguration and the field specific sentinel under
// errors.Is.
type ConfigurationError struct {
	Field  string
	Value  uint64
	Reason error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%v: %s=%d", e.Reason, e.Field, e.Value)
}

func (e *ConfigurationError) Unwrap() []error {
	return []error{ErrConfiguration, e.Reason}
}

func configErr(field string, value uint64, reason error) error {
	return &ConfigurationError{Field: field, Value: value, Reason: reason}
}
