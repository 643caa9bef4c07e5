package colorexpr

import "github.com/gogpu/colorexpr/internal/memo"

// Option configures a Compiler.
//
// Example:
//
//	// HLSL output reading a "sources" array, memoized
//	c := colorexpr.NewCompiler()
//
//	// WGSL output reading "inputs", no memo table
//	c := colorexpr.NewCompiler(
//	    colorexpr.WithDialect(colorexpr.WGSL),
//	    colorexpr.WithSourceArray("inputs"),
//	    colorexpr.WithMemo(0),
//	)
type Option func(*options)

type options struct {
	dialect Dialect
	array   string
	fill    FillPolicy
	memo    int

	customFill bool
}

func defaultOptions() options {
	return options{
		dialect: HLSL,
		array:   DefaultSourceArray,
		fill:    StandardFill,
		memo:    memo.DefaultCapacity,
	}
}

// WithDialect selects the language of generated code. The default is HLSL.
func WithDialect(d Dialect) Option {
	return func(o *options) {
		o.dialect = d
	}
}

// WithSourceArray sets the array name sources are read from in generated
// code. The default is "sources".
func WithSourceArray(name string) Option {
	return func(o *options) {
		if name != "" {
			o.array = name
		}
	}
}

// WithFill sets the fill policy used by Compile. The default is
// StandardFill.
func WithFill(fill FillPolicy) Option {
	return func(o *options) {
		if fill != nil {
			o.fill = fill
			o.customFill = true
		}
	}
}

// WithMemo sets the per-shard capacity of the memo table that caches
// compiled programs. Zero or a negative capacity disables memoization.
//
// Programs are memoized only by Compile, whose inputs fully determine the
// result. A custom fill policy set with WithFill disables memoization,
// since functions cannot be compared.
func WithMemo(capacity int) Option {
	return func(o *options) {
		o.memo = capacity
	}
}
