package colorexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLetters(t *testing.T) {
	tests := []struct {
		space ColorSpace
		n     int
		want  string
	}{
		{Default, 4, "rgba"},
		{RGB, 3, "rgb"},
		{HSV, 4, "hsva"},
		{HSL, 2, "hs"},
		{LUV, 1, "l"},
		{XYZ, 4, "xyza"},
		{ColorSpace(99), 2, "rg"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Letters(tt.space, tt.n), "%s/%d", tt.space, tt.n)
	}
}

func TestLettersPanicsOutOfRange(t *testing.T) {
	assert.Panics(t, func() { Letters(RGB, 0) })
	assert.Panics(t, func() { Letters(RGB, 5) })
}

func TestSwizzlesCountAndOrder(t *testing.T) {
	// k + k^2 + ... + k^k selections for k letters.
	want := map[int]int{1: 1, 2: 2 + 4, 3: 3 + 9 + 27, 4: 4 + 16 + 64 + 256}
	for k, n := range want {
		got := Swizzles(Letters(RGB, k))
		assert.Len(t, got, n, "k=%d", k)
	}

	sw := Swizzles("rg")
	names := make([]string, len(sw))
	for i, s := range sw {
		names[i] = s.Name
	}
	assert.Equal(t, []string{"r", "g", "rr", "rg", "gr", "gg"}, names)
	assert.Equal(t, "yx", sw[4].Suffix())
	assert.Equal(t, []int{1, 0}, sw[4].Positions)

	assert.Nil(t, Swizzles(""))
	assert.Nil(t, Swizzles("rgbar"))
}

func TestSwizzlesUnique(t *testing.T) {
	seen := make(map[string]bool)
	for _, s := range Swizzles("hsla") {
		require.False(t, seen[s.Name], "duplicate %s", s.Name)
		seen[s.Name] = true
		require.Len(t, s.Positions, len(s.Name))
	}
}

func TestSuffix(t *testing.T) {
	assert.Equal(t, "xyzw", Suffix([]int{0, 1, 2, 3}))
	assert.Equal(t, "wwx", Suffix([]int{3, 3, 0}))
	assert.Equal(t, "", Suffix(nil))
}

func TestMembersMemoized(t *testing.T) {
	a := vectorMembers(HSV, 3)
	b := vectorMembers(HSV, 3)
	require.NotEmpty(t, a)
	assert.Same(t, a[0], b[0])

	// The same letters in another space are distinct members.
	c := membersOf("hsv", XYZ)
	assert.NotSame(t, a[0], c[0])
	assert.Equal(t, XYZ, c[0].(*SwizzleVariable).Space())
}

func TestMembersRecurse(t *testing.T) {
	v, err := NewVectorVariable("c", "c", 4, RGB)
	require.NoError(t, err)

	gr, ok := lookup(v.Members(), "gr").(*SwizzleVariable)
	require.True(t, ok)
	assert.Equal(t, "yx", gr.Suffix())
	assert.Equal(t, 2, gr.Components())

	r, ok := lookup(gr.Members(), "r").(*SwizzleVariable)
	require.True(t, ok)
	assert.Equal(t, []int{1}, r.Positions())
	assert.Nil(t, lookup(gr.Members(), "b"))
}

func TestParseColorSpace(t *testing.T) {
	for _, s := range []ColorSpace{Default, RGB, HSV, HSL, LUV, XYZ} {
		got, err := ParseColorSpace(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	got, err := ParseColorSpace("HSV")
	require.NoError(t, err)
	assert.Equal(t, HSV, got)

	_, err = ParseColorSpace("cmyk")
	assert.Error(t, err)
	assert.Equal(t, "ColorSpace(42)", ColorSpace(42).String())
}

func TestParseDialect(t *testing.T) {
	d, err := ParseDialect("WGSL")
	require.NoError(t, err)
	assert.Equal(t, WGSL, d)
	assert.Equal(t, "hlsl", HLSL.String())
	_, err = ParseDialect("glsl")
	assert.Error(t, err)
}

func TestDialectPrelude(t *testing.T) {
	assert.Contains(t, HLSL.Prelude(), "float4 color(float3 v)")
	assert.Contains(t, HLSL.Prelude(), "float lum(float4 v)")
	for _, name := range []string{"cx_color_vec3", "cx_lum_f32", "cx_log10_vec4"} {
		assert.Contains(t, WGSL.Prelude(), "fn "+name+"(")
	}
}
