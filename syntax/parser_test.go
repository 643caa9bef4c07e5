package syntax

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShapes(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"color.r", []string{"color.r"}},
		{"color.r, color.g", []string{"color.r", "color.g"}},
		{"a + b * c", []string{"(a + (b * c))"}},
		{"a - b - c", []string{"((a - b) - c)"}},
		{"a / b * c", []string{"((a / b) * c)"}},
		{"(a + b) * 2", []string{"([(a + b)] * 2)"}},
		{"sin(color.rgb).r", []string{"sin(color.rgb).r"}},
		{"pow(a.r, 2.5), lerp(a, b, .5)", []string{"pow(a.r, 2.5)", "lerp(a, b, .5)"}},
		{"color.rgb.lum", []string{"color.rgb.lum"}},
		{"2.r", []string{"2.r"}},
		{"1e3 * 2E-1", []string{"(1e3 * 2E-1)"}},
		{"f()", []string{"f()"}},
		{"  a\t.\nr ", []string{"a.r"}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			list, err := Parse(tt.src)
			require.NoError(t, err)
			got := make([]string, len(list.Items))
			for i, e := range list.Items {
				got[i] = Format(e)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePositions(t *testing.T) {
	list, err := Parse("a.rg * pow(b, c)")
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	bin, ok := list.Items[0].(*Binary)
	require.True(t, ok)
	assert.Equal(t, Mul, bin.Op)
	assert.Equal(t, 5, bin.Pos())

	member := bin.X.(*Member)
	assert.Equal(t, "rg", member.Name)
	assert.Equal(t, 2, member.Pos())
	assert.Equal(t, 0, member.X.Pos())

	call := bin.Y.(*Call)
	assert.Equal(t, "pow", call.Func)
	assert.Equal(t, 7, call.Pos())
	assert.Len(t, call.Args, 2)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src string
		pos int
	}{
		{"", 0},
		{"a +", 3},
		{"a.", 2},
		{"a.1", 1},
		{"(a", 2},
		{"a)", 1},
		{"-a", 0},
		{"a $ b", 2},
		{"f(a,)", 4},
		{"a,,b", 2},
		{"a b", 2},
		{"1e999", 0},
		{"a * 1e400", 4},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Parse(tt.src)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSyntax))
			var se *Error
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.pos, se.Pos)
		})
	}
}

func TestParseNormalizesIdentifiers(t *testing.T) {
	// "é" precomposed and as e + combining acute accent.
	composed, err := ParseExpr("caf\u00e9")
	require.NoError(t, err)
	decomposed, err := ParseExpr("cafe\u0301")
	require.NoError(t, err)
	assert.Equal(t, composed.(*Ident).Name, decomposed.(*Ident).Name)
}

func TestParseExprRejectsLists(t *testing.T) {
	_, err := ParseExpr("a, b")
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestOpMultiplicative(t *testing.T) {
	assert.True(t, Mul.Multiplicative())
	assert.True(t, Div.Multiplicative())
	assert.False(t, Add.Multiplicative())
	assert.False(t, Sub.Multiplicative())
	assert.Equal(t, "*", Mul.String())
}
