// Package shader splices compiled colorexpr programs into complete shaders
// and compiles them with naga.
//
// WGSL-dialect programs become a WebGPU module which naga lowers to SPIR-V,
// HLSL, GLSL or MSL. HLSL-dialect programs become a Direct3D pixel shader
// and can only be emitted as HLSL text.
//
//	c := colorexpr.NewCompiler(colorexpr.WithDialect(colorexpr.WGSL))
//	p, _ := c.Compile("color.bgr", sources)
//	art, err := shader.NewBuilder(shader.WithTarget(shader.SPIRV)).Build(p, sources)
package shader

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gogpu/naga"
	"github.com/gogpu/naga/glsl"
	"github.com/gogpu/naga/hlsl"
	"github.com/gogpu/naga/ir"
	"github.com/gogpu/naga/msl"

	"github.com/gogpu/colorexpr"
	"github.com/gogpu/colorexpr/internal/memo"
)

// ErrTarget reports a target the program's dialect cannot be built for.
var ErrTarget = errors.New("shader: unsupported target")

// Target is a shader build output.
type Target uint8

const (
	// SPIRV is a SPIR-V binary module.
	SPIRV Target = iota
	// HLSLText is HLSL source.
	HLSLText
	// GLSLText is GLSL source for the fragment entry point.
	GLSLText
	// MSLText is Metal Shading Language source.
	MSLText
	// WGSLText is the WGSL module itself.
	WGSLText
)

var targetNames = [...]string{
	SPIRV:    "spirv",
	HLSLText: "hlsl",
	GLSLText: "glsl",
	MSLText:  "msl",
	WGSLText: "wgsl",
}

// String returns the target name.
func (t Target) String() string {
	if int(t) < len(targetNames) {
		return targetNames[t]
	}
	return fmt.Sprintf("Target(%d)", t)
}

// Binary reports whether the target produces bytes rather than text.
func (t Target) Binary() bool { return t == SPIRV }

// ParseTarget parses a target name as printed by String.
func ParseTarget(name string) (Target, error) {
	name = strings.ToLower(name)
	for t, n := range targetNames {
		if n == name {
			return Target(t), nil
		}
	}
	return SPIRV, fmt.Errorf("%w %q", ErrTarget, name)
}

// Artifact is a built shader.
type Artifact struct {
	// Target is the artifact format.
	Target Target
	// Key fingerprints the shader source; artifacts are stored under it.
	Key string
	// Source is the shader the program was spliced into.
	Source string
	// Data is the compiled output: SPIR-V bytes or shader text.
	Data []byte
	// Cached reports whether Data came from the store.
	Cached bool
}

// Text returns Data as a string.
func (a *Artifact) Text() string { return string(a.Data) }

// Words returns SPIR-V data as little-endian 32-bit words.
func (a *Artifact) Words() []uint32 {
	words := make([]uint32, len(a.Data)/4)
	for i := range words {
		words[i] = uint32(a.Data[i*4]) |
			uint32(a.Data[i*4+1])<<8 |
			uint32(a.Data[i*4+2])<<16 |
			uint32(a.Data[i*4+3])<<24
	}
	return words
}

// Builder builds programs into shader artifacts.
//
// Builder is safe for concurrent use if its store is.
type Builder struct {
	opts options
}

// NewBuilder creates a builder.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{opts: newOptions(opts)}
}

// Target returns the builder's output target.
func (b *Builder) Target() Target { return b.opts.target }

// Build splices p into a shader for its dialect and compiles it to the
// builder's target. With a store configured, a stored artifact for the
// same shader source and target is returned without compiling.
func (b *Builder) Build(p *colorexpr.Program, sources []colorexpr.Source) (*Artifact, error) {
	if p == nil {
		return nil, fmt.Errorf("shader: nil program")
	}
	src, err := b.source(p, sources)
	if err != nil {
		return nil, err
	}

	t := b.opts.target
	art := &Artifact{
		Target: t,
		Key:    fmt.Sprintf("%016x", memo.Hash(src)),
		Source: src,
	}
	log := colorexpr.Logger()

	if s := b.opts.store; s != nil {
		data, ok, err := s.Get(art.Key, t.String())
		if err != nil {
			return nil, fmt.Errorf("shader: store lookup: %w", err)
		}
		if ok {
			log.Debug("shader: store hit", "key", art.Key, "target", t.String())
			art.Data = data
			art.Cached = true
			return art, nil
		}
	}

	start := time.Now()
	art.Data, err = compile(src, p.Dialect, t)
	if err != nil {
		return nil, err
	}
	log.Info("shader: built", "target", t.String(), "bytes", len(art.Data),
		"duration", time.Since(start))

	if s := b.opts.store; s != nil {
		if err := s.Put(art.Key, t.String(), art.Data); err != nil {
			return nil, fmt.Errorf("shader: store artifact: %w", err)
		}
	}
	return art, nil
}

func (b *Builder) source(p *colorexpr.Program, sources []colorexpr.Source) (string, error) {
	opt := WithSourceArray(b.opts.array)
	switch p.Dialect {
	case colorexpr.WGSL:
		return WGSL(p, sources, opt)
	case colorexpr.HLSL:
		if b.opts.target != HLSLText {
			return "", fmt.Errorf("%w: hlsl programs build only to hlsl, not %s", ErrTarget, b.opts.target)
		}
		return HLSL(p, sources, opt)
	}
	return "", fmt.Errorf("%w: dialect %s", ErrTarget, p.Dialect)
}

// compile runs naga on a WGSL module. HLSL-dialect shaders are already
// final text.
func compile(src string, d colorexpr.Dialect, t Target) ([]byte, error) {
	if d == colorexpr.HLSL || t == WGSLText {
		return []byte(src), nil
	}
	if t == SPIRV {
		data, err := naga.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("shader: compile wgsl: %w", err)
		}
		return data, nil
	}

	module, err := lower(src)
	if err != nil {
		return nil, err
	}
	var text string
	switch t {
	case HLSLText:
		text, _, err = hlsl.Compile(module, hlsl.DefaultOptions())
	case GLSLText:
		opts := glsl.DefaultOptions()
		opts.EntryPoint = FragmentEntry
		text, _, err = glsl.Compile(module, opts)
	case MSLText:
		text, _, err = msl.Compile(module, msl.DefaultOptions())
	default:
		return nil, fmt.Errorf("%w %s", ErrTarget, t)
	}
	if err != nil {
		return nil, fmt.Errorf("shader: generate %s: %w", t, err)
	}
	return []byte(text), nil
}

func lower(src string) (*ir.Module, error) {
	ast, err := naga.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("shader: parse wgsl: %w", err)
	}
	module, err := naga.LowerWithSource(ast, src)
	if err != nil {
		return nil, fmt.Errorf("shader: lower wgsl: %w", err)
	}
	return module, nil
}
