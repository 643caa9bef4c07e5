package colorexpr

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gogpu/colorexpr/internal/memo"
	"github.com/gogpu/colorexpr/syntax"
)

// Compiler compiles expressions into programs. A Compiler is safe for
// concurrent use.
type Compiler struct {
	opts options
	memo *memo.Table[*Program]
}

// NewCompiler returns a compiler configured by opts.
func NewCompiler(opts ...Option) *Compiler {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	c := &Compiler{opts: o}
	if o.memo > 0 && !o.customFill {
		c.memo = memo.New[*Program](o.memo)
	}
	return c
}

// Dialect returns the language the compiler generates.
func (c *Compiler) Dialect() Dialect { return c.opts.dialect }

// SourceArray returns the array name sources are read from.
func (c *Compiler) SourceArray() string { return c.opts.array }

// MemoStats returns the counters of the memo table. It is zero when
// memoization is disabled.
func (c *Compiler) MemoStats() memo.Stats {
	if c.memo == nil {
		return memo.Stats{}
	}
	return c.memo.Stats()
}

// Compile compiles expression over sources with the builtin functions of
// the compiler's dialect. Programs are memoized: the returned *Program may
// be shared with other callers and must not be modified.
func (c *Compiler) Compile(expression string, sources []Source) (*Program, error) {
	if c.memo == nil {
		return c.compileSources(expression, sources)
	}

	key := c.fingerprint(expression, sources)
	p, hit, err := c.memo.Do(key, func() (*Program, error) {
		return c.compileSources(expression, sources)
	})
	if err != nil {
		return nil, err
	}
	Metrics.observeMemo(hit)
	if hit {
		Logger().Debug("colorexpr: memo hit", "expression", expression)
	}
	return p, nil
}

func (c *Compiler) compileSources(expression string, sources []Source) (*Program, error) {
	cat, err := SourceCatalog(sources, c.opts.dialect, c.opts.array)
	if err != nil {
		return nil, err
	}
	p, err := c.CompileCatalog(expression, cat, c.opts.fill)
	if err != nil {
		return nil, err
	}
	p.SRGB = make([]bool, len(sources))
	for i, s := range sources {
		p.SRGB[i] = s.SRGB
	}
	return p, nil
}

// CompileCatalog parses expression and compiles it against a custom
// catalog and fill policy. A nil fill selects StandardFill.
func (c *Compiler) CompileCatalog(expression string, cat *Catalog, fill FillPolicy) (*Program, error) {
	start := time.Now()
	list, err := syntax.Parse(expression)
	if err != nil {
		err = fromSyntax(err)
		Metrics.ObserveCompilation(c.opts.dialect, time.Since(start).Seconds(), err)
		return nil, err
	}
	p, err := c.build(list, cat, fill)
	Metrics.ObserveCompilation(c.opts.dialect, time.Since(start).Seconds(), err)
	if err != nil {
		Logger().Debug("colorexpr: compilation failed", "expression", expression, "err", err)
		return nil, err
	}
	p.Expression = expression
	Logger().Debug("colorexpr: compiled expression",
		"expression", expression,
		"dialect", c.opts.dialect,
		"code", p.Code,
		"fills", p.Fills)
	return p, nil
}

// CompileTree compiles an already parsed expression list.
func (c *Compiler) CompileTree(list *syntax.List, cat *Catalog, fill FillPolicy) (*Program, error) {
	start := time.Now()
	p, err := c.build(list, cat, fill)
	Metrics.ObserveCompilation(c.opts.dialect, time.Since(start).Seconds(), err)
	return p, err
}

func (c *Compiler) build(list *syntax.List, cat *Catalog, fill FillPolicy) (*Program, error) {
	if cat == nil {
		cat = NewCatalog(nil, c.opts.dialect.Functions())
	}
	parts, err := cat.ResolveList(list, c.opts.dialect)
	if err != nil {
		return nil, err
	}
	code, fills, err := assemble(parts, fill, c.opts.dialect)
	if err != nil {
		return nil, err
	}
	Metrics.observeFills(parts[0].Space, len(fills))
	return newProgram("", code, c.opts.dialect, parts, fills, cat.Len()), nil
}

// fingerprint identifies everything a memoized compilation depends on.
func (c *Compiler) fingerprint(expression string, sources []Source) string {
	var b strings.Builder
	b.WriteString(c.opts.dialect.String())
	b.WriteByte(0)
	b.WriteString(c.opts.array)
	b.WriteByte(0)
	b.WriteString(expression)
	for _, s := range sources {
		b.WriteByte(0)
		b.WriteString(s.Name)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(s.count()))
		b.WriteByte(':')
		b.WriteString(s.Space.String())
		if s.SRGB {
			b.WriteString(":srgb")
		}
	}
	return b.String()
}

// fromSyntax converts a parser error into an *Error of kind ErrSyntax.
func fromSyntax(err error) error {
	var se *syntax.Error
	if errors.As(err, &se) {
		return &Error{Kind: ErrSyntax, Pos: se.Pos, Msg: se.Msg}
	}
	return err
}

var defaultCompiler = NewCompiler()

// Compile compiles expression over sources to HLSL with the standard fill
// policy, reading source i from sources[i].
func Compile(expression string, sources []Source) (string, error) {
	p, err := defaultCompiler.Compile(expression, sources)
	if err != nil {
		return "", err
	}
	return p.Code, nil
}

// CompileWith compiles expression to HLSL against custom variables,
// functions and fill policy. Nil funcs selects no functions; a nil fill
// selects StandardFill.
func CompileWith(expression string, vars []*VectorVariable, funcs []*Function, fill FillPolicy) (string, error) {
	p, err := defaultCompiler.CompileCatalog(expression, NewCatalog(vars, funcs), fill)
	if err != nil {
		return "", err
	}
	return p.Code, nil
}

// CompileSource compiles an expression over a single four-channel RGB
// source named name.
func CompileSource(expression, name string) (string, error) {
	return Compile(expression, []Source{RGBA(name)})
}
