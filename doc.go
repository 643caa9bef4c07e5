// Package colorexpr compiles color expressions into shader code.
//
// # Overview
//
// A color expression combines named pixel sources into one four-channel
// value:
//
//	color.rgb              // three channels, alpha filled with 1
//	lum(color.rgb)         // one channel, broadcast to all four (grayscale)
//	color.r, mask.a        // two channels, the rest filled by the policy
//	lerp(a, b, mask.r)     // builtin functions with exact overloads
//	color.rgb.lum          // member sugar for lum(color.rgb)
//
// Every source is a vector of one to four channels tagged with a color
// space. The space only decides which letters address the channels (rgba,
// hsva, hsla, luva or xyza); generated code always uses positional
// accessors (xyzw).
//
// # Quick Start
//
//	import "github.com/gogpu/colorexpr"
//
//	code, err := colorexpr.Compile("color.bgr", []colorexpr.Source{
//	    colorexpr.RGBA("color"),
//	})
//	// code == "float4(sources[0].zyx, 1)"
//
// A Compiler with options selects the dialect (HLSL or WGSL), the source
// array name and memoization:
//
//	c := colorexpr.NewCompiler(colorexpr.WithDialect(colorexpr.WGSL))
//	p, err := c.Compile("color.rgb * 0.5", sources)
//	// p.Code == "vec4<f32>(sources[0].xyz * 0.5, 1)"
//
// A Program also carries a CPU evaluation plan (Program.Eval) used by the
// kernel package; the shader package splices programs into complete
// fragment shaders.
//
// # Type rules
//
// Member access selects channels with repetition (color.rrr, color.gr.g).
// * and / require a scalar operand; + and - require equal widths. Calls
// match an overload exactly, without implicit widening. Top-level lists
// may produce at most four channels. Failures are *Error values whose Kind
// is one of the Err* sentinels.
//
// # Architecture
//
//   - syntax: parse tree and parser
//   - colorexpr: catalog, resolver, assembler, compiler
//   - shader: WGSL/HLSL shader assembly and naga translation
//   - kernel: parallel CPU evaluation over image.Image sources
//   - cmd/colorexpr: command-line tool
package colorexpr
