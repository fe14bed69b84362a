package pool

// Option configures a Pool.
type Option func(*options)

type options struct {
	maxSlabs int
}

func defaultOptions() options {
	return options{}
}

// WithMaxSlabs bounds the number of slabs per kind. Zero, the default,
// means unbounded. Exceeding the bound panics with ErrArenaExhausted.
func WithMaxSlabs(n int) Option {
	return func(o *options) {
		o.maxSlabs = max(n, 0)
	}
}
