package shader

import (
	"github.com/gogpu/colorexpr"
	"github.com/gogpu/colorexpr/internal/store"
)

// Option configures templates and builders.
type Option func(*options)

type options struct {
	target Target
	array  string
	store  store.Store
}

func newOptions(opts []Option) options {
	o := options{
		target: SPIRV,
		array:  colorexpr.DefaultSourceArray,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithTarget selects the output of Builder.Build. Default: SPIRV.
func WithTarget(t Target) Option {
	return func(o *options) {
		o.target = t
	}
}

// WithSourceArray names the array generated code indexes. It must match
// the compiler's source array. Default: colorexpr.DefaultSourceArray.
func WithSourceArray(name string) Option {
	return func(o *options) {
		if name != "" {
			o.array = name
		}
	}
}

// WithStore caches built artifacts in s. Default: no caching.
func WithStore(s store.Store) Option {
	return func(o *options) {
		o.store = s
	}
}
