package colorexpr

import "strings"

// FillPolicy supplies the generated text of an output channel the
// expression does not produce. parts holds the resolved top-level values
// and slot is the output channel index, 0..3.
type FillPolicy func(parts []Value, slot int) string

// StandardFill is the fill policy for pixel-source expressions.
//
// With no parts it fills alpha with 1 and everything else with 0. Otherwise
// it looks at the color space of the first part: RGB-like results fill
// with 1, except that a lone scalar is repeated into every missing channel
// (grayscale expansion); HSV fills with 1; HSL fills hue 1, saturation 0.5,
// lightness 1 and anything else 0; other spaces fill with 0.5.
func StandardFill(parts []Value, slot int) string {
	if len(parts) == 0 {
		if slot == MaxComponents-1 {
			return "1"
		}
		return "0"
	}
	switch parts[0].Space {
	case Default, RGB:
		if len(parts) == 1 && parts[0].Components == 1 {
			return parts[0].Text
		}
		return "1"
	case HSV:
		return "1"
	case HSL:
		switch slot {
		case 0, 2:
			return "1"
		case 1:
			return "0.5"
		default:
			return "0"
		}
	default:
		return "0.5"
	}
}

// Assemble combines resolved parts into one four-channel value in dialect
// d, asking fill for every channel the parts leave open.
func Assemble(parts []Value, fill FillPolicy, d Dialect) (string, error) {
	code, _, err := assemble(parts, fill, d)
	return code, err
}

// assemble returns the generated code and the fill texts in slot order.
func assemble(parts []Value, fill FillPolicy, d Dialect) (string, []string, error) {
	if len(parts) == 0 {
		return "", nil, errorf(ErrMalformed, -1, "nothing to assemble")
	}
	if fill == nil {
		fill = StandardFill
	}

	sum := 0
	for _, p := range parts {
		sum += p.Components
	}
	if sum > MaxComponents {
		return "", nil, errorf(ErrChannelBudget, -1,
			"%d parts produce %d channels", len(parts), sum)
	}

	if len(parts) == 1 && sum == MaxComponents {
		return parts[0].Text, nil, nil
	}

	args := make([]string, 0, MaxComponents)
	for _, p := range parts {
		args = append(args, p.Text)
	}
	fills := make([]string, 0, MaxComponents-sum)
	for slot := sum; slot < MaxComponents; slot++ {
		fills = append(fills, fill(parts, slot))
	}
	args = append(args, fills...)
	return d.Vector4() + "(" + strings.Join(args, ", ") + ")", fills, nil
}
