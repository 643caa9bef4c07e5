package colorexpr

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceForFormat(t *testing.T) {
	tests := []struct {
		format gputypes.TextureFormat
		n      int
		srgb   bool
	}{
		{gputypes.TextureFormatR8Unorm, 1, false},
		{gputypes.TextureFormatR32Float, 1, false},
		{gputypes.TextureFormatRG16Float, 2, false},
		{gputypes.TextureFormatRG11B10Ufloat, 3, false},
		{gputypes.TextureFormatRGBA8Unorm, 4, false},
		{gputypes.TextureFormatRGBA8UnormSrgb, 4, true},
		{gputypes.TextureFormatBGRA8UnormSrgb, 4, true},
		{gputypes.TextureFormatRGBA16Float, 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			src, err := SourceForFormat("tex", tt.format)
			require.NoError(t, err)
			assert.Equal(t, "tex", src.Name)
			assert.Equal(t, tt.n, src.Components)
			assert.Equal(t, RGB, src.Space)
			assert.Equal(t, tt.srgb, src.SRGB)
		})
	}
}

func TestSourceForFormatRejectsNonColor(t *testing.T) {
	for _, f := range []gputypes.TextureFormat{
		gputypes.TextureFormatUndefined,
		gputypes.TextureFormatDepth32Float,
		gputypes.TextureFormatStencil8,
		gputypes.TextureFormatBC1RGBAUnorm,
	} {
		_, err := SourceForFormat("tex", f)
		assert.Error(t, err, f.String())
	}
}

func TestSourceForFormatCompiles(t *testing.T) {
	src, err := SourceForFormat("mask", gputypes.TextureFormatRG8Unorm)
	require.NoError(t, err)
	got, err := Compile("mask.gr", []Source{src})
	require.NoError(t, err)
	assert.Equal(t, "float4(sources[0].xy.yx, 1, 1)", got)
}

func TestSourceDefaults(t *testing.T) {
	got, err := Compile("c.rgba", []Source{{Name: "c"}})
	require.NoError(t, err)
	assert.Equal(t, "sources[0].xyzw", got)
}

func TestSourceNamesAreNormalized(t *testing.T) {
	got, err := Compile("café.r", []Source{RGBA("café")})
	require.NoError(t, err)
	assert.Equal(t, "float4(sources[0].x, sources[0].x, sources[0].x, sources[0].x)", got)
}
