package drawpack

import "github.com/gogpu/drawpack/stroke"

// DefaultGeometryCacheSize is the number of stroked paths a Context keeps
// chunked between frames.
const DefaultGeometryCacheSize = 256

// Option configures a Context during creation.
//
// Example:
//
//	ctx := drawpack.NewContext(
//	    drawpack.WithTolerance(0.1),
//	    drawpack.WithGeometryCacheSize(1024),
//	)
type Option func(*options)

type options struct {
	tolerance float64
	maxSlabs  int
	cacheSize int
	depthBase int32
}

func defaultOptions() options {
	return options{
		tolerance: stroke.DefaultTolerance,
		cacheSize: DefaultGeometryCacheSize,
	}
}

// WithTolerance sets the flattening tolerance used for strokes whose
// style leaves Tolerance at zero. Non-positive values are ignored.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.tolerance = tol
		}
	}
}

// WithMaxSlabs bounds the pool arena of each value kind. See
// pool.WithMaxSlabs.
func WithMaxSlabs(n int) Option {
	return func(o *options) {
		o.maxSlabs = max(n, 0)
	}
}

// WithGeometryCacheSize sets how many stroked paths are cached. Zero
// disables the cache.
func WithGeometryCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = max(n, 0)
	}
}

// WithDepthBase sets the running z a frame starts from.
func WithDepthBase(z int32) Option {
	return func(o *options) {
		o.depthBase = z
	}
}
