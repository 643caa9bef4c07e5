package colorexpr

import (
	"fmt"
	"strconv"
)

// Program is a compiled expression: its generated code plus a plan for
// evaluating it on the CPU.
type Program struct {
	// Expression is the source text, empty for programs compiled from a tree.
	Expression string
	// Code is the four-channel value in the target dialect.
	Code string
	// Dialect is the language Code is written in.
	Dialect Dialect
	// Parts are the resolved top-level values in order.
	Parts []Value
	// Fills are the texts the fill policy supplied for the open channels.
	Fills []string
	// Sources is the number of root vectors in the catalog; Eval expects
	// one pixel per root.
	Sources int
	// SRGB marks, per root slot, the sources whose stored values are
	// sRGB-encoded. It is nil for programs compiled from a custom catalog.
	SRGB []bool

	channels []channelOp
	evalErr  error
}

// channelOp yields one output channel from the evaluated parts.
type channelOp struct {
	part    int // part index, or -1 for a constant
	channel int
	value   float64
}

// newProgram builds the CPU plan for an assembled program. Programs that
// cannot run on the CPU still compile; Eval reports why.
func newProgram(expression, code string, d Dialect, parts []Value, fills []string, sources int) *Program {
	p := &Program{
		Expression: expression,
		Code:       code,
		Dialect:    d,
		Parts:      parts,
		Fills:      fills,
		Sources:    sources,
	}
	p.channels, p.evalErr = planChannels(parts, fills)
	return p
}

func planChannels(parts []Value, fills []string) ([]channelOp, error) {
	ops := make([]channelOp, 0, MaxComponents)
	for i, part := range parts {
		if part.plan == nil {
			return nil, errorf(ErrNotEvaluable, -1, "'%s' calls a function without a CPU form", part.Text)
		}
		for c := range part.Components {
			ops = append(ops, channelOp{part: i, channel: c})
		}
	}
	for _, f := range fills {
		op, ok := fillChannel(parts, f)
		if !ok {
			return nil, errorf(ErrNotEvaluable, -1, "fill '%s' has no CPU form", f)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

// fillChannel maps a fill text to a channel: numeric literals are constants
// and a text equal to a part's code repeats that part's first channel.
func fillChannel(parts []Value, fill string) (channelOp, bool) {
	if x, err := strconv.ParseFloat(fill, 64); err == nil {
		return channelOp{part: -1, value: x}, true
	}
	for i, p := range parts {
		if p.Text == fill {
			return channelOp{part: i}, true
		}
	}
	return channelOp{}, false
}

// Evaluable reports whether Eval can run the program.
func (p *Program) Evaluable() bool { return p.evalErr == nil }

// Eval computes the four output channels for one pixel. px holds one vector
// per root source in slot order.
func (p *Program) Eval(px []Vector) (Vector, error) {
	if p.evalErr != nil {
		return Vector{}, p.evalErr
	}
	if len(px) < p.Sources {
		return Vector{}, fmt.Errorf("colorexpr: eval: %d source pixels, program reads %d", len(px), p.Sources)
	}

	var parts [MaxComponents]Vector
	for i, part := range p.Parts {
		parts[i] = part.plan.eval(px)
	}
	out := Vector{N: MaxComponents}
	for i, op := range p.channels {
		if op.part < 0 {
			out.C[i] = op.value
			continue
		}
		out.C[i] = parts[op.part].C[op.channel]
	}
	return out, nil
}

func (p *Program) String() string { return p.Code }
