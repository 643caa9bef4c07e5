package colorexpr

import (
	"fmt"
	"unicode/utf8"
)

// Variable is a name the resolver can look up in a scope.
//
// The set of implementations is closed: *VectorVariable (a root source),
// *SwizzleVariable (a channel selection generated from a vector), and
// *FunctionVariable (a bare function name, which never resolves).
type Variable interface {
	// Name is the identifier the variable is looked up by.
	Name() string
	// Members returns the variables reachable through member access.
	// The returned slice is shared and must not be modified.
	Members() []Variable

	variable()
}

// VectorVariable is a root source vector of 1 to 4 channels.
type VectorVariable struct {
	name    string
	ref     string
	letters string
	space   ColorSpace
}

// NewVectorVariable creates a root vector named name whose generated code is
// ref. Its channels are spelled with the first components letters of space.
func NewVectorVariable(name, ref string, components int, space ColorSpace) (*VectorVariable, error) {
	if components < 1 || components > MaxComponents {
		return nil, fmt.Errorf("colorexpr: variable %q: component count %d out of range 1..%d",
			name, components, MaxComponents)
	}
	return NewVectorVariableLetters(name, ref, Letters(space, components), space)
}

// NewVectorVariableLetters creates a root vector whose channels are spelled
// with custom letters. The number of letters is the component count.
func NewVectorVariableLetters(name, ref, letters string, space ColorSpace) (*VectorVariable, error) {
	name = normalizeName(name)
	if name == "" {
		return nil, fmt.Errorf("colorexpr: variable name is empty")
	}
	if ref == "" {
		return nil, fmt.Errorf("colorexpr: variable %q: generated reference is empty", name)
	}
	n := utf8.RuneCountInString(letters)
	if n < 1 || n > MaxComponents {
		return nil, fmt.Errorf("colorexpr: variable %q: %d channel letters, want 1..%d",
			name, n, MaxComponents)
	}
	return &VectorVariable{name: name, ref: ref, letters: letters, space: space}, nil
}

// Name implements Variable.
func (v *VectorVariable) Name() string { return v.name }

// Ref returns the generated code the variable resolves to.
func (v *VectorVariable) Ref() string { return v.ref }

// Components returns the channel count.
func (v *VectorVariable) Components() int { return utf8.RuneCountInString(v.letters) }

// Space returns the color space of the vector.
func (v *VectorVariable) Space() ColorSpace { return v.space }

// Letters returns the channel letters, one per component.
func (v *VectorVariable) Letters() string { return v.letters }

// Members implements Variable.
func (v *VectorVariable) Members() []Variable { return membersOf(v.letters, v.space) }

func (*VectorVariable) variable() {}

// SwizzleVariable is a channel selection generated from a parent vector.
// Its own channels are spelled with the letters of its name, so selections
// chain: color.rgba.gr.r.
type SwizzleVariable struct {
	name      string
	positions []int
	space     ColorSpace
}

// Name implements Variable.
func (s *SwizzleVariable) Name() string { return s.name }

// Positions returns the parent channel positions the selection reads.
func (s *SwizzleVariable) Positions() []int {
	out := make([]int, len(s.positions))
	copy(out, s.positions)
	return out
}

// Suffix returns the positional accessor appended to the parent's code.
func (s *SwizzleVariable) Suffix() string { return Suffix(s.positions) }

// Components returns the channel count of the selection.
func (s *SwizzleVariable) Components() int { return len(s.positions) }

// Space returns the color space inherited from the parent vector.
func (s *SwizzleVariable) Space() ColorSpace { return s.space }

// Members implements Variable.
func (s *SwizzleVariable) Members() []Variable { return membersOf(s.name, s.space) }

func (*SwizzleVariable) variable() {}

// FunctionVariable stands for a function name used without arguments.
// Resolving it always fails with ErrOverloadMismatch.
type FunctionVariable struct {
	fn *Function
}

// Name implements Variable.
func (f *FunctionVariable) Name() string { return f.fn.Name }

// Function returns the function the placeholder names.
func (f *FunctionVariable) Function() *Function { return f.fn }

// Members implements Variable. Placeholders have no members.
func (*FunctionVariable) Members() []Variable { return nil }

func (*FunctionVariable) variable() {}

// lookup returns the first variable in scope named name.
func lookup(scope []Variable, name string) Variable {
	for _, v := range scope {
		if v.Name() == name {
			return v
		}
	}
	return nil
}
