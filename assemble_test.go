package colorexpr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func part(text string, n int, space ColorSpace) Value {
	return Value{Text: text, Components: n, Space: space}
}

func TestStandardFill(t *testing.T) {
	tests := []struct {
		name  string
		parts []Value
		want  [4]string
	}{
		{"no parts", nil, [4]string{"0", "0", "0", "1"}},
		{"rgb scalar", []Value{part("g", 1, RGB)}, [4]string{"g", "g", "g", "g"}},
		{"default scalar", []Value{part("0.5", 1, Default)}, [4]string{"0.5", "0.5", "0.5", "0.5"}},
		{"rgb vector", []Value{part("v", 3, RGB)}, [4]string{"1", "1", "1", "1"}},
		{"rgb two scalars", []Value{part("a", 1, RGB), part("b", 1, RGB)}, [4]string{"1", "1", "1", "1"}},
		{"hsv", []Value{part("h", 1, HSV)}, [4]string{"1", "1", "1", "1"}},
		{"hsl", []Value{part("h", 1, HSL)}, [4]string{"1", "0.5", "1", "0"}},
		{"luv", []Value{part("l", 1, LUV)}, [4]string{"0.5", "0.5", "0.5", "0.5"}},
		{"xyz", []Value{part("x", 2, XYZ)}, [4]string{"0.5", "0.5", "0.5", "0.5"}},
		{"first part decides", []Value{part("h", 1, HSV), part("r", 1, RGB)}, [4]string{"1", "1", "1", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for slot, want := range tt.want {
				assert.Equal(t, want, StandardFill(tt.parts, slot), "slot %d", slot)
			}
		})
	}
}

func TestAssembleSinglePart(t *testing.T) {
	tests := []struct {
		part Value
		want string
	}{
		{part("s.x", 1, RGB), "float4(s.x, s.x, s.x, s.x)"},
		{part("s.xy", 2, RGB), "float4(s.xy, 1, 1)"},
		{part("s.xyz", 3, RGB), "float4(s.xyz, 1)"},
		{part("s", 4, RGB), "s"},
		{part("s.x", 1, HSL), "float4(s.x, 0.5, 1, 0)"},
		{part("s.xy", 2, HSL), "float4(s.xy, 1, 0)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := Assemble([]Value{tt.part}, StandardFill, HLSL)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssembleSeveralParts(t *testing.T) {
	got, err := Assemble([]Value{part("a", 1, RGB), part("b", 1, RGB)}, StandardFill, HLSL)
	require.NoError(t, err)
	assert.Equal(t, "float4(a, b, 1, 1)", got)

	got, err = Assemble([]Value{part("a", 2, RGB), part("b", 2, RGB)}, StandardFill, WGSL)
	require.NoError(t, err)
	assert.Equal(t, "vec4<f32>(a, b)", got)

	got, err = Assemble([]Value{part("a", 3, HSV), part("b", 1, RGB)}, nil, HLSL)
	require.NoError(t, err)
	assert.Equal(t, "float4(a, b)", got)
}

func TestAssembleChannelBudget(t *testing.T) {
	for _, parts := range [][]Value{
		{part("a", 4, RGB), part("b", 1, RGB)},
		{part("a", 2, RGB), part("b", 2, RGB), part("c", 1, RGB)},
		{part("a", 3, RGB), part("b", 3, RGB)},
	} {
		_, err := Assemble(parts, StandardFill, HLSL)
		assert.ErrorIs(t, err, ErrChannelBudget)
	}

	_, err := Assemble(nil, StandardFill, HLSL)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestAssembleCustomFill(t *testing.T) {
	var calls []int
	fill := func(parts []Value, slot int) string {
		calls = append(calls, slot)
		assert.Len(t, parts, 2)
		return "f"
	}
	got, err := Assemble([]Value{part("a", 1, RGB), part("b", 1, RGB)}, fill, HLSL)
	require.NoError(t, err)
	assert.Equal(t, "float4(a, b, f, f)", got)
	assert.Equal(t, []int{2, 3}, calls)
}
