package colorexpr

import "math"

// Rec. 709 luma weights used by lum.
const (
	lumR = 0.2126
	lumG = 0.7152
	lumB = 0.0722
)

// Builtin catalogs, built once and shared read-only by every compilation.
var (
	hlslBuiltins = newBuiltins(HLSL)
	wgslBuiltins = newBuiltins(WGSL)
)

// wgslRenames renames builtins whose WGSL spelling differs.
var wgslRenames = map[string]string{
	"lerp": "mix",
}

// wgslHelpers lists builtins that WGSL lacks; they call prelude helpers
// named cx_<name>_<shape> instead.
var wgslHelpers = map[string]bool{
	"log10": true,
	"color": true,
	"lum":   true,
}

func newBuiltins(d Dialect) []*Function {
	fns := []*Function{
		elementwise("abs", 1, unaryEval(math.Abs)),
		elementwise("sin", 1, unaryEval(math.Sin)),
		elementwise("cos", 1, unaryEval(math.Cos)),
		elementwise("tan", 1, unaryEval(math.Tan)),
		elementwise("asin", 1, unaryEval(math.Asin)),
		elementwise("acos", 1, unaryEval(math.Acos)),
		elementwise("atan", 1, unaryEval(math.Atan)),
		elementwise("log", 1, unaryEval(math.Log)),
		elementwise("log2", 1, unaryEval(math.Log2)),
		elementwise("log10", 1, unaryEval(math.Log10)),
		elementwise("sqrt", 1, unaryEval(math.Sqrt)),
		elementwise("pow", 2, binaryEval(math.Pow)),
		elementwise("min", 2, binaryEval(math.Min)),
		elementwise("max", 2, binaryEval(math.Max)),
		elementwise("lerp", 3, evalLerp),
		elementwise("clamp", 3, evalClamp),
		reduction("color", MaxComponents, evalColor),
		reduction("lum", 1, evalLum),
	}

	if d != WGSL {
		return fns
	}
	for _, fn := range fns {
		if s, ok := wgslRenames[fn.Name]; ok {
			fn.Symbol = s
		}
		if wgslHelpers[fn.Name] {
			for i := range fn.Overloads {
				o := &fn.Overloads[i]
				o.Symbol = "cx_" + fn.Name + "_" + wgslShape(o.Args[0])
			}
		}
	}
	return fns
}

// elementwise builds an n->n function of arity arguments for n = 1..4.
func elementwise(name string, arity int, eval EvalFunc) *Function {
	fn := &Function{Name: name, Symbol: name, Eval: eval}
	for n := 1; n <= MaxComponents; n++ {
		args := make([]int, arity)
		for i := range args {
			args[i] = n
		}
		fn.Overloads = append(fn.Overloads, Overload{Args: args, Result: n})
	}
	return fn
}

// reduction builds a unary function mapping every width n = 1..4 to result.
func reduction(name string, result int, eval EvalFunc) *Function {
	fn := &Function{Name: name, Symbol: name, Eval: eval}
	for n := 1; n <= MaxComponents; n++ {
		fn.Overloads = append(fn.Overloads, Overload{Args: []int{n}, Result: result})
	}
	return fn
}

func unaryEval(f func(float64) float64) EvalFunc {
	return func(args []Vector) Vector {
		a := args[0]
		out := Vector{N: a.N}
		for i := range a.N {
			out.C[i] = f(a.C[i])
		}
		return out
	}
}

func binaryEval(f func(float64, float64) float64) EvalFunc {
	return func(args []Vector) Vector {
		a, b := args[0], args[1]
		out := Vector{N: a.N}
		for i := range a.N {
			out.C[i] = f(a.C[i], b.C[i])
		}
		return out
	}
}

func evalLerp(args []Vector) Vector {
	a, b, t := args[0], args[1], args[2]
	out := Vector{N: a.N}
	for i := range a.N {
		out.C[i] = a.C[i] + (b.C[i]-a.C[i])*t.C[i]
	}
	return out
}

func evalClamp(args []Vector) Vector {
	x, lo, hi := args[0], args[1], args[2]
	out := Vector{N: x.N}
	for i := range x.N {
		out.C[i] = math.Min(math.Max(x.C[i], lo.C[i]), hi.C[i])
	}
	return out
}

// evalColor widens a partial vector: gray, gray+alpha, opaque rgb, rgba.
func evalColor(args []Vector) Vector {
	v := args[0]
	switch v.N {
	case 1:
		return Vec(v.C[0], v.C[0], v.C[0], 1)
	case 2:
		return Vec(v.C[0], v.C[0], v.C[0], v.C[1])
	case 3:
		return Vec(v.C[0], v.C[1], v.C[2], 1)
	default:
		return v
	}
}

// evalLum reduces a vector to its luma; one- and two-channel vectors are
// already gray.
func evalLum(args []Vector) Vector {
	v := args[0]
	if v.N < 3 {
		return Scalar(v.C[0])
	}
	return Scalar(lumR*v.C[0] + lumG*v.C[1] + lumB*v.C[2])
}

// LookupFunction returns the function named name in funcs, or nil.
func LookupFunction(funcs []*Function, name string) *Function {
	for _, fn := range funcs {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}
