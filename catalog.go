package colorexpr

import "fmt"

// DefaultSourceArray is the generated array name sources are read from.
const DefaultSourceArray = "sources"

// Catalog is the root scope of a compilation: the declared source vectors in
// order, followed by one placeholder per function. A Catalog is immutable
// and may be shared between goroutines.
type Catalog struct {
	vars  []*VectorVariable
	funcs []*Function
	scope []Variable
	slots map[*VectorVariable]int
}

// NewCatalog builds a root scope from vars and funcs. Nil entries are
// skipped. When two roots share a name the first one wins.
func NewCatalog(vars []*VectorVariable, funcs []*Function) *Catalog {
	c := &Catalog{slots: make(map[*VectorVariable]int, len(vars))}
	for _, v := range vars {
		if v == nil {
			continue
		}
		c.slots[v] = len(c.vars)
		c.vars = append(c.vars, v)
		c.scope = append(c.scope, v)
	}
	for _, fn := range funcs {
		if fn == nil {
			continue
		}
		c.funcs = append(c.funcs, fn)
		c.scope = append(c.scope, &FunctionVariable{fn: fn})
	}
	return c
}

// SourceCatalog builds the root scope for sources read from the generated
// array named array, with the builtin functions of dialect. Source i
// resolves to array[i]; sources with fewer than four channels are truncated
// positionally (array[i].xy) so the generated type matches the count.
func SourceCatalog(sources []Source, dialect Dialect, array string) (*Catalog, error) {
	if array == "" {
		array = DefaultSourceArray
	}
	vars := make([]*VectorVariable, 0, len(sources))
	for i, src := range sources {
		n := src.count()
		ref := fmt.Sprintf("%s[%d]", array, i)
		if n < MaxComponents {
			ref += "." + positional[:n]
		}
		v, err := NewVectorVariable(src.Name, ref, n, src.Space)
		if err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
		vars = append(vars, v)
	}
	return NewCatalog(vars, dialect.Functions()), nil
}

// Lookup returns the first variable in the root scope named name, or nil.
func (c *Catalog) Lookup(name string) Variable {
	return lookup(c.scope, name)
}

// Variables returns the root vectors in slot order.
func (c *Catalog) Variables() []*VectorVariable {
	out := make([]*VectorVariable, len(c.vars))
	copy(out, c.vars)
	return out
}

// Functions returns the functions of the catalog.
func (c *Catalog) Functions() []*Function {
	out := make([]*Function, len(c.funcs))
	copy(out, c.funcs)
	return out
}

// Slot returns the position of v among the root vectors, or -1.
func (c *Catalog) Slot(v *VectorVariable) int {
	if i, ok := c.slots[v]; ok {
		return i
	}
	return -1
}

// Len returns the number of root vectors.
func (c *Catalog) Len() int { return len(c.vars) }

func (c *Catalog) function(name string) *Function {
	return LookupFunction(c.funcs, name)
}
