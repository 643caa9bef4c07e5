package colorexpr

import "github.com/gogpu/colorexpr/syntax"

// Value is the typed result of resolving one parse tree node.
type Value struct {
	// Text is the generated code for the node.
	Text string
	// Components is the channel count, always 1..4.
	Components int
	// Space is the color space the value's channels are spelled in.
	Space ColorSpace
	// Members lists the swizzles reachable from the value with member access.
	// It is shared with the catalog and must not be modified.
	Members []Variable

	// prec is the operator precedence of Text: 0 for operands, then
	// additive and multiplicative.
	prec int

	// plan evaluates the value on the CPU; nil when some function in the
	// subtree has no CPU implementation.
	plan evalOp
}

// Vector is a CPU value of 1 to 4 channels.
type Vector struct {
	N int
	C [MaxComponents]float64
}

// Vec builds a vector from up to four channels.
func Vec(c ...float64) Vector {
	var v Vector
	v.N = copy(v.C[:], c)
	return v
}

// Scalar builds a one-channel vector.
func Scalar(x float64) Vector {
	return Vector{N: 1, C: [MaxComponents]float64{x}}
}

// Slice returns the active channels.
func (v Vector) Slice() []float64 {
	return v.C[:v.N]
}

// evalOp is one node of a program's CPU evaluation plan.
type evalOp interface {
	eval(px []Vector) Vector
}

type opConst struct{ v float64 }

func (o opConst) eval([]Vector) Vector { return Scalar(o.v) }

type opSource struct {
	slot int
	n    int
}

func (o opSource) eval(px []Vector) Vector {
	v := px[o.slot]
	out := Vector{N: o.n}
	copy(out.C[:o.n], v.C[:v.N])
	return out
}

type opSwizzle struct {
	x         evalOp
	positions []int
}

func (o opSwizzle) eval(px []Vector) Vector {
	in := o.x.eval(px)
	out := Vector{N: len(o.positions)}
	for i, p := range o.positions {
		out.C[i] = in.C[p]
	}
	return out
}

type opCall struct {
	fn     EvalFunc
	args   []evalOp
	result int
}

func (o opCall) eval(px []Vector) Vector {
	args := make([]Vector, len(o.args))
	for i, a := range o.args {
		args[i] = a.eval(px)
	}
	out := o.fn(args)
	out.N = o.result
	return out
}

type opBinary struct {
	op   syntax.Op
	x, y evalOp
}

func (o opBinary) eval(px []Vector) Vector {
	a, b := o.x.eval(px), o.y.eval(px)
	n := max(a.N, b.N)
	out := Vector{N: n}
	for i := range n {
		x, y := a.C[0], b.C[0]
		if a.N > 1 {
			x = a.C[i]
		}
		if b.N > 1 {
			y = b.C[i]
		}
		switch o.op {
		case syntax.Add:
			out.C[i] = x + y
		case syntax.Sub:
			out.C[i] = x - y
		case syntax.Mul:
			out.C[i] = x * y
		case syntax.Div:
			out.C[i] = x / y
		}
	}
	return out
}
