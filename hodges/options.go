package hodges

// Options collects the optional construction parameters of a Set.
type Options struct {
	Digest Digest
}

type Option func(*Options)

// WithDigest replaces the default SHA256 digest. Both the slot index and the
// token are derived with d.
func WithDigest(d Digest) Option {
	return func(opts *Options) {
		opts.Digest = d
	}
}

func newOptions(opts ...Option) Options {
	options := Options{Digest: SHA256}
	for _, o := range opts {
		o(&options)
	}
	return options
}
