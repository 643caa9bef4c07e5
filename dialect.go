package colorexpr

import (
	"fmt"
	"strings"
)

// Dialect selects the shading language generated code is written in.
type Dialect uint8

const (
	// HLSL generates code for Direct3D pixel shaders (float4, lerp, overloads).
	HLSL Dialect = iota
	// WGSL generates code for WebGPU shaders (vec4<f32>, mix, per-shape helpers).
	WGSL
)

// String returns the lowercase dialect name.
func (d Dialect) String() string {
	switch d {
	case HLSL:
		return "hlsl"
	case WGSL:
		return "wgsl"
	default:
		return fmt.Sprintf("Dialect(%d)", d)
	}
}

// ParseDialect parses a dialect name as printed by String.
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "hlsl":
		return HLSL, nil
	case "wgsl":
		return WGSL, nil
	}
	return HLSL, fmt.Errorf("colorexpr: unknown dialect %q", name)
}

// Vector4 returns the four-channel constructor of the dialect.
func (d Dialect) Vector4() string {
	if d == WGSL {
		return "vec4<f32>"
	}
	return "float4"
}

// typeName returns the dialect's float vector type of n components.
func (d Dialect) typeName(n int) string {
	if d == WGSL {
		if n == 1 {
			return "f32"
		}
		return fmt.Sprintf("vec%d<f32>", n)
	}
	if n == 1 {
		return "float"
	}
	return fmt.Sprintf("float%d", n)
}

// Prelude returns helper definitions generated code may call. Shaders
// embedding compiled expressions must include it before the expression.
func (d Dialect) Prelude() string {
	if d == WGSL {
		return wgslPrelude
	}
	return hlslPrelude
}

// Functions returns the builtin function catalog for the dialect. The slice
// is shared by every compilation and must not be modified.
func (d Dialect) Functions() []*Function {
	if d == WGSL {
		return wgslBuiltins
	}
	return hlslBuiltins
}

// wgslShape names a component count in WGSL helper symbols.
func wgslShape(n int) string {
	if n == 1 {
		return "f32"
	}
	return fmt.Sprintf("vec%d", n)
}

const lumWeights = "0.2126, 0.7152, 0.0722"

var (
	hlslPrelude = buildHLSLPrelude()
	wgslPrelude = buildWGSLPrelude()
)

func buildHLSLPrelude() string {
	var b strings.Builder
	b.WriteString("float4 color(float v) { return float4(v, v, v, 1); }\n")
	b.WriteString("float4 color(float2 v) { return float4(v.x, v.x, v.x, v.y); }\n")
	b.WriteString("float4 color(float3 v) { return float4(v, 1); }\n")
	b.WriteString("float4 color(float4 v) { return v; }\n")
	b.WriteString("float lum(float v) { return v; }\n")
	b.WriteString("float lum(float2 v) { return v.x; }\n")
	fmt.Fprintf(&b, "float lum(float3 v) { return dot(v, float3(%s)); }\n", lumWeights)
	fmt.Fprintf(&b, "float lum(float4 v) { return dot(v.xyz, float3(%s)); }\n", lumWeights)
	return b.String()
}

func buildWGSLPrelude() string {
	d := WGSL
	var b strings.Builder
	b.WriteString("fn cx_color_f32(v: f32) -> vec4<f32> { return vec4<f32>(v, v, v, 1.0); }\n")
	b.WriteString("fn cx_color_vec2(v: vec2<f32>) -> vec4<f32> { return vec4<f32>(v.x, v.x, v.x, v.y); }\n")
	b.WriteString("fn cx_color_vec3(v: vec3<f32>) -> vec4<f32> { return vec4<f32>(v, 1.0); }\n")
	b.WriteString("fn cx_color_vec4(v: vec4<f32>) -> vec4<f32> { return v; }\n")
	b.WriteString("fn cx_lum_f32(v: f32) -> f32 { return v; }\n")
	b.WriteString("fn cx_lum_vec2(v: vec2<f32>) -> f32 { return v.x; }\n")
	fmt.Fprintf(&b, "fn cx_lum_vec3(v: vec3<f32>) -> f32 { return dot(v, vec3<f32>(%s)); }\n", lumWeights)
	fmt.Fprintf(&b, "fn cx_lum_vec4(v: vec4<f32>) -> f32 { return dot(v.xyz, vec3<f32>(%s)); }\n", lumWeights)
	for n := 1; n <= MaxComponents; n++ {
		t := d.typeName(n)
		fmt.Fprintf(&b, "fn cx_log10_%s(v: %s) -> %s { return log2(v) * 0.30102999566398120; }\n",
			wgslShape(n), t, t)
	}
	return b.String()
}
