package kernel

import "golang.org/x/image/draw"

// Option configures Apply.
type Option func(*options)

type options struct {
	workers   int
	linear    bool
	encode    bool
	resampler draw.Scaler
	width     int
	height    int
}

func defaultOptions() options {
	return options{resampler: draw.BiLinear}
}

// WithWorkers sets the number of goroutines evaluating rows. Zero or
// negative means GOMAXPROCS. Default: GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLinearSources decodes the color channels of sRGB sources to linear
// light before evaluation. A source is decoded when the program marks its
// slot in Program.SRGB; a program without source flags decodes every
// source. Alpha is never decoded.
func WithLinearSources(on bool) Option {
	return func(o *options) {
		o.linear = on
	}
}

// WithEncodeOutput encodes the color channels of the result from linear
// light to sRGB. Alpha is never encoded.
func WithEncodeOutput(on bool) Option {
	return func(o *options) {
		o.encode = on
	}
}

// WithResampler sets the scaler used for sources whose size differs from
// the output. Default: draw.BiLinear.
func WithResampler(s draw.Scaler) Option {
	return func(o *options) {
		if s != nil {
			o.resampler = s
		}
	}
}

// WithSize sets the output size. Default: the size of the first source.
// Programs without sources need it.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width, o.height = width, height
	}
}
