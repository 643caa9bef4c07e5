package shader

import (
	"fmt"
	"strings"

	"github.com/gogpu/colorexpr"
)

// Entry point names of the generated shaders.
const (
	VertexEntry   = "vs_main"
	FragmentEntry = "fs_main"
	PixelEntry    = "main"
)

// WGSL returns a WebGPU shader module that evaluates p per pixel: one
// sampler at binding 0, one texture_2d<f32> per source at bindings 1..N,
// a fullscreen-triangle vertex stage and a fragment stage returning p.Code.
// p must be compiled for the WGSL dialect.
func WGSL(p *colorexpr.Program, sources []colorexpr.Source, opts ...Option) (string, error) {
	if p == nil {
		return "", fmt.Errorf("shader: nil program")
	}
	if p.Dialect != colorexpr.WGSL {
		return "", fmt.Errorf("shader: wgsl template needs a wgsl program, got %s", p.Dialect)
	}
	o := newOptions(opts)
	n := sourceCount(p, sources)

	var b strings.Builder
	header(&b, "//", p, sources, n)
	b.WriteString("\n@group(0) @binding(0) var cx_sampler: sampler;\n")
	for i := range n {
		fmt.Fprintf(&b, "@group(0) @binding(%d) var cx_tex%d: texture_2d<f32>;\n", i+1, i)
	}
	b.WriteString("\n")
	b.WriteString(colorexpr.WGSL.Prelude())
	b.WriteString(`
struct VertexOutput {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn ` + VertexEntry + `(@builtin(vertex_index) index: u32) -> VertexOutput {
    let uv = vec2<f32>(f32((index << 1u) & 2u), f32(index & 2u));
    var out: VertexOutput;
    out.position = vec4<f32>(uv * 2.0 - 1.0, 0.0, 1.0);
    out.uv = vec2<f32>(uv.x, 1.0 - uv.y);
    return out;
}

@fragment
fn ` + FragmentEntry + `(in: VertexOutput) -> @location(0) vec4<f32> {
`)
	if n > 0 {
		fmt.Fprintf(&b, "    var %s: array<vec4<f32>, %d>;\n", o.array, n)
		for i := range n {
			fmt.Fprintf(&b, "    %s[%d] = textureSample(cx_tex%d, cx_sampler, in.uv);\n", o.array, i, i)
		}
	}
	fmt.Fprintf(&b, "    return %s;\n}\n", p.Code)
	return b.String(), nil
}

// HLSL returns a Direct3D pixel shader that evaluates p: one Texture2D per
// source in registers t0..tN-1, a shared sampler in s0 and an entry point
// named main. p must be compiled for the HLSL dialect.
func HLSL(p *colorexpr.Program, sources []colorexpr.Source, opts ...Option) (string, error) {
	if p == nil {
		return "", fmt.Errorf("shader: nil program")
	}
	if p.Dialect != colorexpr.HLSL {
		return "", fmt.Errorf("shader: hlsl template needs an hlsl program, got %s", p.Dialect)
	}
	o := newOptions(opts)
	n := sourceCount(p, sources)

	var b strings.Builder
	header(&b, "//", p, sources, n)
	b.WriteString("\nSamplerState cx_sampler : register(s0);\n")
	for i := range n {
		fmt.Fprintf(&b, "Texture2D cx_tex%d : register(t%d);\n", i, i)
	}
	b.WriteString("\n")
	b.WriteString(colorexpr.HLSL.Prelude())
	fmt.Fprintf(&b, "\nfloat4 %s(float4 position : SV_Position, float2 uv : TEXCOORD0) : SV_Target\n{\n", PixelEntry)
	if n > 0 {
		fmt.Fprintf(&b, "    float4 %s[%d];\n", o.array, n)
		for i := range n {
			fmt.Fprintf(&b, "    %s[%d] = cx_tex%d.Sample(cx_sampler, uv);\n", o.array, i, i)
		}
	}
	fmt.Fprintf(&b, "    return %s;\n}\n", p.Code)
	return b.String(), nil
}

// sourceCount is the number of texture slots a shader declares.
func sourceCount(p *colorexpr.Program, sources []colorexpr.Source) int {
	return max(len(sources), p.Sources)
}

func header(b *strings.Builder, comment string, p *colorexpr.Program, sources []colorexpr.Source, n int) {
	expr := p.Expression
	if expr == "" {
		expr = p.Code
	}
	fmt.Fprintf(b, "%s colorexpr: %s\n", comment, strings.ReplaceAll(expr, "\n", " "))
	for i := range n {
		name := fmt.Sprintf("source %d", i)
		if i < len(sources) {
			name = sources[i].Name
		}
		fmt.Fprintf(b, "%s   cx_tex%d: %s\n", comment, i, name)
	}
}
