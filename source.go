package colorexpr

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"golang.org/x/text/unicode/norm"
)

// Source describes one named pixel input of an expression.
type Source struct {
	// Name is the identifier expressions use for the source.
	Name string
	// Components is the channel count, 1..4. Zero means 4.
	Components int
	// Space is the color space the channels are spelled in. Default spells
	// them like RGB.
	Space ColorSpace
	// SRGB marks sources whose stored values are sRGB-encoded. The CPU
	// kernel linearizes only these sources when asked to.
	SRGB bool
}

// NewSource returns a source with the given channel count and color space.
func NewSource(name string, components int, space ColorSpace) Source {
	return Source{Name: name, Components: components, Space: space}
}

// RGBA returns a four-channel RGB source.
func RGBA(name string) Source {
	return Source{Name: name, Components: MaxComponents, Space: RGB}
}

// count returns the effective channel count.
func (s Source) count() int {
	if s.Components == 0 {
		return MaxComponents
	}
	return s.Components
}

// SourceForFormat returns an RGB source whose channel count matches a WebGPU
// texture format. Depth, stencil and compressed formats are rejected.
func SourceForFormat(name string, format gputypes.TextureFormat) (Source, error) {
	n, ok := formatChannels[format]
	if !ok {
		return Source{}, fmt.Errorf("colorexpr: source %q: texture format %s is not a color format",
			name, format)
	}
	return Source{Name: name, Components: n, Space: RGB, SRGB: format.IsSrgb()}, nil
}

var formatChannels = map[gputypes.TextureFormat]int{
	gputypes.TextureFormatR8Unorm:  1,
	gputypes.TextureFormatR8Snorm:  1,
	gputypes.TextureFormatR8Uint:   1,
	gputypes.TextureFormatR8Sint:   1,
	gputypes.TextureFormatR16Unorm: 1,
	gputypes.TextureFormatR16Snorm: 1,
	gputypes.TextureFormatR16Uint:  1,
	gputypes.TextureFormatR16Sint:  1,
	gputypes.TextureFormatR16Float: 1,
	gputypes.TextureFormatR32Float: 1,
	gputypes.TextureFormatR32Uint:  1,
	gputypes.TextureFormatR32Sint:  1,

	gputypes.TextureFormatRG8Unorm:  2,
	gputypes.TextureFormatRG8Snorm:  2,
	gputypes.TextureFormatRG8Uint:   2,
	gputypes.TextureFormatRG8Sint:   2,
	gputypes.TextureFormatRG16Unorm: 2,
	gputypes.TextureFormatRG16Snorm: 2,
	gputypes.TextureFormatRG16Uint:  2,
	gputypes.TextureFormatRG16Sint:  2,
	gputypes.TextureFormatRG16Float: 2,
	gputypes.TextureFormatRG32Float: 2,
	gputypes.TextureFormatRG32Uint:  2,
	gputypes.TextureFormatRG32Sint:  2,

	gputypes.TextureFormatRG11B10Ufloat: 3,
	gputypes.TextureFormatRGB9E5Ufloat:  3,

	gputypes.TextureFormatRGBA8Unorm:     4,
	gputypes.TextureFormatRGBA8UnormSrgb: 4,
	gputypes.TextureFormatRGBA8Snorm:     4,
	gputypes.TextureFormatRGBA8Uint:      4,
	gputypes.TextureFormatRGBA8Sint:      4,
	gputypes.TextureFormatBGRA8Unorm:     4,
	gputypes.TextureFormatBGRA8UnormSrgb: 4,
	gputypes.TextureFormatRGB10A2Uint:    4,
	gputypes.TextureFormatRGB10A2Unorm:   4,
	gputypes.TextureFormatRGBA16Unorm:    4,
	gputypes.TextureFormatRGBA16Snorm:    4,
	gputypes.TextureFormatRGBA16Uint:     4,
	gputypes.TextureFormatRGBA16Sint:     4,
	gputypes.TextureFormatRGBA16Float:    4,
	gputypes.TextureFormatRGBA32Float:    4,
	gputypes.TextureFormatRGBA32Uint:     4,
	gputypes.TextureFormatRGBA32Sint:     4,
}

// normalizeName returns the NFC form of an identifier, matching the parser's
// normalization of expression identifiers.
func normalizeName(name string) string {
	return norm.NFC.String(name)
}
