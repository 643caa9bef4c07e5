package colorexpr

import (
	"fmt"
	"strings"
)

// EvalFunc evaluates a function on the CPU. Arguments arrive with the
// component counts of the selected overload; the result's N is set by the
// caller from the overload.
type EvalFunc func(args []Vector) Vector

// Overload is one accepted calling shape of a function.
type Overload struct {
	// Args holds the required component count of each argument.
	Args []int
	// Result is the component count of the result.
	Result int
	// Symbol overrides Function.Symbol for this overload. Targets without
	// overloading (WGSL) use it to name per-shape helpers.
	Symbol string
}

// Function is a named operation the language can call.
type Function struct {
	// Name is the identifier authors call the function by.
	Name string
	// Symbol is the function name in generated code.
	Symbol string
	// Overloads lists the accepted calling shapes, tried in order.
	Overloads []Overload
	// Space fixes the result color space. Nil means the result takes the
	// space of the first argument.
	Space *ColorSpace
	// Eval is the CPU implementation. Nil makes programs calling the
	// function unavailable to the CPU kernel.
	Eval EvalFunc
}

// symbol returns the generated name for the overload.
func (f *Function) symbol(o Overload) string {
	if o.Symbol != "" {
		return o.Symbol
	}
	if f.Symbol != "" {
		return f.Symbol
	}
	return f.Name
}

// resultSpace returns the color space of a call whose first argument is in
// space first.
func (f *Function) resultSpace(first ColorSpace) ColorSpace {
	if f.Space != nil {
		return *f.Space
	}
	return first
}

// unary returns the overload taking a single argument of n components.
func (f *Function) unary(n int) (Overload, bool) {
	for _, o := range f.Overloads {
		if len(o.Args) == 1 && o.Args[0] == n {
			return o, true
		}
	}
	return Overload{}, false
}

// Select returns the overload whose argument counts equal counts exactly.
// No implicit widening is performed.
func (f *Function) Select(counts []int) (Overload, error) {
	best, bestPrefix := -1, -1
	for i, o := range f.Overloads {
		if len(o.Args) != len(counts) {
			continue
		}
		prefix := matchingPrefix(o.Args, counts)
		if prefix == len(counts) {
			if err := f.checkResult(o); err != nil {
				return Overload{}, err
			}
			return o, nil
		}
		if prefix > bestPrefix {
			best, bestPrefix = i, prefix
		}
	}

	if best < 0 {
		return Overload{}, fmt.Errorf("function '%s' has no overload taking %d argument%s",
			f.Name, len(counts), plural(len(counts)))
	}
	want := f.Overloads[best].Args[bestPrefix]
	return Overload{}, fmt.Errorf(
		"function '%s' with %d argument%s: argument %d has %d component%s, overload requires %d",
		f.Name, len(counts), plural(len(counts)), bestPrefix, counts[bestPrefix],
		plural(counts[bestPrefix]), want)
}

// checkResult rejects an overload whose result width lies outside 1..4.
// Argument widths need no check: values always have 1..4 components, so an
// out-of-range Args entry never matches.
func (f *Function) checkResult(o Overload) error {
	if o.Result < 1 || o.Result > MaxComponents {
		return fmt.Errorf("function '%s' declares a result of %d components, want 1..%d",
			f.Name, o.Result, MaxComponents)
	}
	return nil
}

// Signature renders the overloads, e.g. "pow(1, 1) -> 1 | pow(2, 2) -> 2".
func (f *Function) Signature() string {
	parts := make([]string, len(f.Overloads))
	for i, o := range f.Overloads {
		args := make([]string, len(o.Args))
		for j, a := range o.Args {
			args[j] = fmt.Sprint(a)
		}
		parts[i] = fmt.Sprintf("%s(%s) -> %d", f.Name, strings.Join(args, ", "), o.Result)
	}
	return strings.Join(parts, " | ")
}

func matchingPrefix(want, got []int) int {
	for i := range want {
		if want[i] != got[i] {
			return i
		}
	}
	return len(want)
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
