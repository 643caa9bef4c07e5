package colorexpr

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gogpu/colorexpr/syntax"
)

// Operator precedence of generated text.
const (
	precOperand = iota
	precAdditive
	precMultiplicative
)

// Resolve type-checks one expression against the catalog and returns its
// generated code in dialect d.
func (c *Catalog) Resolve(e syntax.Expr, d Dialect) (Value, error) {
	r := resolver{cat: c, dialect: d}
	return r.resolve(e)
}

// ResolveList resolves every item of a top-level expression list, left to
// right, in the root scope.
func (c *Catalog) ResolveList(list *syntax.List, d Dialect) ([]Value, error) {
	if list == nil || len(list.Items) == 0 {
		return nil, errorf(ErrMalformed, -1, "empty expression list")
	}
	r := resolver{cat: c, dialect: d}
	parts := make([]Value, 0, len(list.Items))
	for _, item := range list.Items {
		v, err := r.resolve(item)
		if err != nil {
			return nil, err
		}
		parts = append(parts, v)
	}
	return parts, nil
}

type resolver struct {
	cat     *Catalog
	dialect Dialect
}

func (r *resolver) resolve(e syntax.Expr) (Value, error) {
	switch n := e.(type) {
	case *syntax.Number:
		return r.number(n)
	case *syntax.Ident:
		return r.ident(n)
	case *syntax.Member:
		return r.member(n)
	case *syntax.Call:
		return r.call(n)
	case *syntax.Paren:
		return r.paren(n)
	case *syntax.Binary:
		return r.binary(n)
	case nil:
		return Value{}, errorf(ErrMalformed, -1, "missing operand")
	default:
		return Value{}, errorf(ErrMalformed, e.Pos(), "unknown node %T", e)
	}
}

func (r *resolver) number(n *syntax.Number) (Value, error) {
	x, err := strconv.ParseFloat(n.Text, 64)
	if errors.Is(err, strconv.ErrRange) {
		return Value{}, errorf(ErrSyntax, n.At, "number %s is out of range", n.Text)
	}
	if err != nil {
		return Value{}, errorf(ErrMalformed, n.At, "invalid number %q", n.Text)
	}
	return Value{
		Text:       r.literal(n.Text),
		Components: 1,
		Space:      Default,
		Members:    vectorMembers(Default, 1),
		plan:       opConst{v: x},
	}, nil
}

// literal spells a numeric literal for the dialect. WGSL integer literals
// would otherwise be typed as integers, so they get a fraction.
func (r *resolver) literal(text string) string {
	if r.dialect == WGSL && !strings.ContainsAny(text, ".eE") {
		return text + ".0"
	}
	return text
}

func (r *resolver) ident(n *syntax.Ident) (Value, error) {
	switch v := r.cat.Lookup(n.Name).(type) {
	case nil:
		return Value{}, errorf(ErrUnresolvedName, n.At, "name '%s' is not defined", n.Name)
	case *FunctionVariable:
		return Value{}, errorf(ErrOverloadMismatch, n.At, "function '%s' requires arguments", n.Name)
	case *VectorVariable:
		val := Value{
			Text:       v.Ref(),
			Components: v.Components(),
			Space:      v.Space(),
			Members:    v.Members(),
		}
		if slot := r.cat.Slot(v); slot >= 0 {
			val.plan = opSource{slot: slot, n: val.Components}
		}
		return val, nil
	default:
		return Value{}, errorf(ErrMalformed, n.At, "root scope holds %T", v)
	}
}

func (r *resolver) member(n *syntax.Member) (Value, error) {
	if n.X == nil {
		return Value{}, errorf(ErrMalformed, n.NameAt, "member '%s' has no operand", n.Name)
	}
	x, err := r.resolve(n.X)
	if err != nil {
		return Value{}, err
	}

	if sw, ok := lookup(x.Members, n.Name).(*SwizzleVariable); ok {
		_, literal := n.X.(*syntax.Number)
		v := Value{
			Text:       r.swizzle(x, sw, literal),
			Components: sw.Components(),
			Space:      sw.Space(),
			Members:    sw.Members(),
		}
		if x.plan != nil {
			v.plan = opSwizzle{x: x.plan, positions: sw.positions}
		}
		return v, nil
	}

	fn := r.cat.function(n.Name)
	if fn == nil {
		return Value{}, errorf(ErrUnresolvedName, n.NameAt,
			"no member or function named '%s' on a %d-component value", n.Name, x.Components)
	}
	o, ok := fn.unary(x.Components)
	if !ok {
		return Value{}, errorf(ErrOverloadMismatch, n.NameAt,
			"function '%s' has no overload taking one argument of %d component%s",
			fn.Name, x.Components, plural(x.Components))
	}
	if err := fn.checkResult(o); err != nil {
		return Value{}, errorf(ErrOverloadMismatch, n.NameAt, "%s", err)
	}
	return r.apply(fn, o, []Value{x}), nil
}

// swizzle spells a channel selection of x. WGSL has no scalar swizzles;
// the only selection of a scalar is the scalar itself.
func (r *resolver) swizzle(x Value, sw *SwizzleVariable, literal bool) string {
	if r.dialect == WGSL && x.Components == 1 {
		return x.Text
	}
	text := x.Text
	if literal || x.prec != precOperand {
		text = "(" + text + ")"
	}
	return text + "." + sw.Suffix()
}

func (r *resolver) call(n *syntax.Call) (Value, error) {
	fn := r.cat.function(n.Func)
	if fn == nil {
		if r.cat.Lookup(n.Func) != nil {
			return Value{}, errorf(ErrUnresolvedName, n.At, "'%s' is not a function", n.Func)
		}
		return Value{}, errorf(ErrUnresolvedName, n.At, "function '%s' is not defined", n.Func)
	}

	args := make([]Value, len(n.Args))
	counts := make([]int, len(n.Args))
	for i, a := range n.Args {
		if a == nil {
			return Value{}, errorf(ErrMalformed, n.At, "argument %d of '%s' is missing", i, n.Func)
		}
		v, err := r.resolve(a)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
		counts[i] = v.Components
	}

	o, err := fn.Select(counts)
	if err != nil {
		return Value{}, errorf(ErrOverloadMismatch, n.At, "%s", err)
	}
	return r.apply(fn, o, args), nil
}

// apply builds the value of calling fn's overload o on args.
func (r *resolver) apply(fn *Function, o Overload, args []Value) Value {
	texts := make([]string, len(args))
	for i, a := range args {
		texts[i] = a.Text
	}
	first := Default
	if len(args) > 0 {
		first = args[0].Space
	}
	space := fn.resultSpace(first)

	v := Value{
		Text:       fn.symbol(o) + "(" + strings.Join(texts, ", ") + ")",
		Components: o.Result,
		Space:      space,
		Members:    vectorMembers(space, o.Result),
	}
	if fn.Eval != nil {
		plans := make([]evalOp, len(args))
		for i, a := range args {
			if a.plan == nil {
				return v
			}
			plans[i] = a.plan
		}
		v.plan = opCall{fn: fn.Eval, args: plans, result: o.Result}
	}
	return v
}

func (r *resolver) paren(n *syntax.Paren) (Value, error) {
	if n.X == nil {
		return Value{}, errorf(ErrMalformed, n.At, "empty parentheses")
	}
	x, err := r.resolve(n.X)
	if err != nil {
		return Value{}, err
	}
	x.Text = "(" + x.Text + ")"
	x.prec = precOperand
	return x, nil
}

func (r *resolver) binary(n *syntax.Binary) (Value, error) {
	if n.X == nil || n.Y == nil {
		return Value{}, errorf(ErrMalformed, n.OpAt, "operator '%s' is missing an operand", n.Op)
	}
	x, err := r.resolve(n.X)
	if err != nil {
		return Value{}, err
	}
	y, err := r.resolve(n.Y)
	if err != nil {
		return Value{}, err
	}

	var v Value
	switch n.Op {
	case syntax.Mul, syntax.Div:
		if x.Components != 1 && y.Components != 1 {
			return Value{}, errorf(ErrOperandMismatch, n.OpAt,
				"operator '%s' needs a scalar operand, got %d and %d components",
				n.Op, x.Components, y.Components)
		}
		v = Value{
			Components: x.Components * y.Components,
			Space:      y.Space,
			Members:    y.Members,
			prec:       precMultiplicative,
		}
	case syntax.Add, syntax.Sub:
		if x.Components != y.Components {
			return Value{}, errorf(ErrOperandMismatch, n.OpAt,
				"operator '%s' needs operands of equal width, got %d and %d components",
				n.Op, x.Components, y.Components)
		}
		v = Value{
			Components: x.Components,
			Space:      x.Space,
			Members:    x.Members,
			prec:       precAdditive,
		}
	default:
		return Value{}, errorf(ErrMalformed, n.OpAt, "unknown operator %q", byte(n.Op))
	}

	// Left operands bind at equal precedence, right operands do not.
	left, right := x.Text, y.Text
	if x.prec != precOperand && x.prec < v.prec {
		left = "(" + left + ")"
	}
	if y.prec != precOperand && y.prec <= v.prec {
		right = "(" + right + ")"
	}
	v.Text = left + " " + n.Op.String() + " " + right

	if x.plan != nil && y.plan != nil {
		v.plan = opBinary{op: n.Op, x: x.plan, y: y.plan}
	}
	return v, nil
}
