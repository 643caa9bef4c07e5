package colorexpr

import (
	"fmt"
	"strings"
	"sync"
)

// ColorSpace tags a vector with the channel letters authors use to address it.
// The tag is cosmetic: generated code always addresses channels by position.
type ColorSpace uint8

const (
	// Default is the unconstrained space used for literals. It spells channels like RGB.
	Default ColorSpace = iota
	// RGB addresses channels as r, g, b, a.
	RGB
	// HSV addresses channels as h, s, v, a.
	HSV
	// HSL addresses channels as h, s, l, a.
	HSL
	// LUV addresses channels as l, u, v, a.
	LUV
	// XYZ addresses channels as x, y, z, a.
	XYZ
)

// MaxComponents is the widest vector the language can express.
const MaxComponents = 4

// positional maps a channel position to the accessor used in generated code.
const positional = "xyzw"

// String returns the lowercase name of the color space.
func (s ColorSpace) String() string {
	switch s {
	case Default:
		return "default"
	case RGB:
		return "rgb"
	case HSV:
		return "hsv"
	case HSL:
		return "hsl"
	case LUV:
		return "luv"
	case XYZ:
		return "xyz"
	default:
		return fmt.Sprintf("ColorSpace(%d)", s)
	}
}

// ParseColorSpace parses a color space name as printed by String.
// Matching is case-insensitive.
func ParseColorSpace(name string) (ColorSpace, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return Default, nil
	case "rgb":
		return RGB, nil
	case "hsv":
		return HSV, nil
	case "hsl":
		return HSL, nil
	case "luv":
		return LUV, nil
	case "xyz":
		return XYZ, nil
	}
	return Default, fmt.Errorf("colorexpr: unknown color space %q", name)
}

// alphabet returns the canonical four-letter alphabet of the space.
// Unknown spaces fall back to the RGB spelling.
func (s ColorSpace) alphabet() string {
	switch s {
	case HSV:
		return "hsva"
	case HSL:
		return "hsla"
	case LUV:
		return "luva"
	case XYZ:
		return "xyza"
	default:
		return "rgba"
	}
}

// Letters returns the first n channel letters of the space's alphabet.
// It panics if n is outside 1..4.
func Letters(s ColorSpace, n int) string {
	if n < 1 || n > MaxComponents {
		panic(fmt.Sprintf("colorexpr: channel count %d out of range 1..%d", n, MaxComponents))
	}
	return s.alphabet()[:n]
}

// Suffix converts channel positions to the positional accessor used in
// generated code, e.g. [1 0] -> "yx".
func Suffix(positions []int) string {
	var b strings.Builder
	b.Grow(len(positions))
	for _, p := range positions {
		b.WriteByte(positional[p])
	}
	return b.String()
}

// Swizzle is one generated channel selection over an alphabet.
type Swizzle struct {
	// Name is the selection spelled with alphabet letters, e.g. "gr".
	Name string
	// Positions holds the alphabet position of every letter in Name.
	Positions []int
}

// Suffix returns the positional accessor for the selection, e.g. "yx".
func (s Swizzle) Suffix() string {
	return Suffix(s.Positions)
}

// Swizzles enumerates every selection of length 1..len(letters) over letters,
// with repetition, shortest first. Within one length the order follows the
// alphabet positions, so "rr" precedes "rg".
func Swizzles(letters string) []Swizzle {
	runes := []rune(letters)
	if len(runes) == 0 || len(runes) > MaxComponents {
		return nil
	}

	var out []Swizzle
	for length := 1; length <= len(runes); length++ {
		out = appendSwizzles(out, runes, make([]int, 0, length), length)
	}
	return out
}

func appendSwizzles(out []Swizzle, runes []rune, prefix []int, length int) []Swizzle {
	if len(prefix) == length {
		name := make([]rune, length)
		for i, p := range prefix {
			name[i] = runes[p]
		}
		positions := make([]int, length)
		copy(positions, prefix)
		return append(out, Swizzle{Name: string(name), Positions: positions})
	}
	for i := range runes {
		out = appendSwizzles(out, runes, append(prefix, i), length)
	}
	return out
}

// memberKey identifies a memoized member set.
type memberKey struct {
	letters string
	space   ColorSpace
}

// memberSets memoizes generated member sets. Entries are immutable once stored.
var memberSets sync.Map // memberKey -> []Variable

// membersOf returns the swizzle children reachable from a vector spelled with
// letters. The result is shared and must not be modified.
func membersOf(letters string, space ColorSpace) []Variable {
	key := memberKey{letters: letters, space: space}
	if v, ok := memberSets.Load(key); ok {
		return v.([]Variable)
	}

	swizzles := Swizzles(letters)
	members := make([]Variable, len(swizzles))
	for i, sw := range swizzles {
		members[i] = &SwizzleVariable{
			name:      sw.Name,
			positions: sw.Positions,
			space:     space,
		}
	}

	actual, _ := memberSets.LoadOrStore(key, members)
	return actual.([]Variable)
}

// vectorMembers returns the members of an n-component vector in space.
func vectorMembers(space ColorSpace, n int) []Variable {
	return membersOf(Letters(space, n), space)
}
