// Package srgb converts channel values between the sRGB transfer curve and
// linear light.
//
// The CPU kernel decodes 8-bit sources through a 256-entry table and
// encodes 16-bit output through a 4096-entry table; the exact curves are
// kept as the reference.
package srgb

import "math"

// decode8 maps an 8-bit sRGB value to linear light in [0, 1].
var decode8 [256]float64

// encodeLUT maps linear light quantized to 12 bits to a 16-bit sRGB value.
var encodeLUT [4096]uint16

func init() {
	for i := range decode8 {
		decode8[i] = Decode(float64(i) / 255)
	}
	for i := range encodeLUT {
		encodeLUT[i] = uint16(math.Round(Encode(float64(i)/4095) * 0xffff))
	}
}

// Decode converts an sRGB-encoded value in [0, 1] to linear light.
func Decode(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// Encode converts linear light in [0, 1] to an sRGB-encoded value.
func Encode(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1/2.4) - 0.055
}

// Decode8 converts an 8-bit sRGB value to linear light using the table.
func Decode8(v uint8) float64 {
	return decode8[v]
}

// Decode16 converts a 16-bit sRGB value to linear light.
func Decode16(v uint16) float64 {
	if v&0xff == v>>8 {
		// Values widened from 8 bits hit the table.
		return decode8[v>>8]
	}
	return Decode(float64(v) / 0xffff)
}

// Encode16 converts linear light to a 16-bit sRGB value. Input is clamped
// to [0, 1] and quantized to 12 bits.
func Encode16(l float64) uint16 {
	if !(l > 0) {
		return 0
	}
	if l >= 1 {
		return 0xffff
	}
	return encodeLUT[int(l*4095+0.5)]
}
