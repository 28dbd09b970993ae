package normalize

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// Height is a canonical height: whole feet plus fractional inches.
type Height struct {
	Feet   int
	Inches float64
}

// TotalInches returns the height as total inches.
func (h Height) TotalInches() float64 {
	return float64(h.Feet)*InchesPerFoot + h.Inches
}

// heightCompositeRE matches feet-and-inches composites: "5'11", `5' 10"`,
// "5ft 10in", "6 foot 2", "5-10". Checked before everything else — composite
// notation takes absolute priority over the decimal-feet reading, so
// `5' 10"` is exactly 5 feet 10 inches and is never recomputed.
var heightCompositeRE = regexp.MustCompile(`^(\d+)\s*(?:'|ft|feet|foot|-)\s*(\d+(?:\.\d+)?)\s*(?:"|in|ins|inches)?$`)

// heightGeneralRE matches a single signed decimal number with an optional
// trailing unit token: "180cm", "1.75m", "5.5 ft", `70"`, "180".
var heightGeneralRE = regexp.MustCompile(`^(-?[0-9]+(?:\.[0-9]+)?)\s*([a-z'"\s]+)?$`)

// Unitless heuristic bands. Centimeters and meters are checked before feet
// because metric is the dominant clinical entry convention; the foot band
// only sees values the metric bands rejected.
const (
	cmBandLow  = 50.0
	cmBandHigh = 300.0
	mBandLow   = 1.0
	mBandHigh  = 3.0
	ftBandLow  = 3.0
	ftBandHigh = 9.0
)

// ParseHeight parses a free-text height entry into feet and inches.
//
// Stage order: sanitize, composite feet/inches match, general number+unit
// extraction, alias lookup (with the decimal-feet rule for fractional foot
// values), unitless heuristic bands, plausibility validation.
func (n *Normalizer) ParseHeight(input string) (Height, error) {
	s := sanitize(input, heightNoiseRE)
	if s == "" {
		return Height{}, parseErr(ErrUnparsable, input, "empty input")
	}

	if m := heightCompositeRE.FindStringSubmatch(s); m != nil {
		feet, _ := strconv.Atoi(m[1])
		inches, _ := strconv.ParseFloat(m[2], 64)
		if inches >= InchesPerFoot {
			return Height{}, parseErr(ErrOutOfRange, input, "%g inches exceeds composite bound", inches)
		}
		return n.validateHeight(input, Height{Feet: feet, Inches: inches})
	}

	m := heightGeneralRE.FindStringSubmatch(s)
	if m == nil {
		return Height{}, parseErr(ErrUnparsable, input, "no numeric value found")
	}

	val, _ := strconv.ParseFloat(m[1], 64)
	token := canonicalToken(m[2])

	if token == "" {
		return n.inferUnitless(input, val)
	}

	unit, ok := lookupHeightUnit(token)
	if !ok {
		return Height{}, parseErr(ErrUnrecognizedUnit, input, "unit %q", token)
	}

	switch unit {
	case Centimeter:
		return n.validateHeight(input, inchesToHeight(val*InchesPerCentimeter))
	case Meter:
		return n.validateHeight(input, inchesToHeight(val*InchesPerMeter))
	case Inch:
		return n.validateHeight(input, inchesToHeight(val))
	default: // Foot
		return n.validateHeight(input, decimalFeet(val))
	}
}

// inferUnitless assigns a unit to a bare number from its physiological band.
func (n *Normalizer) inferUnitless(input string, val float64) (Height, error) {
	switch {
	case val >= cmBandLow && val <= cmBandHigh:
		return n.validateHeight(input, inchesToHeight(val*InchesPerCentimeter))
	case val >= mBandLow && val < mBandHigh:
		return n.validateHeight(input, inchesToHeight(val*InchesPerMeter))
	case val >= ftBandLow && val < ftBandHigh:
		return n.validateHeight(input, decimalFeet(val))
	}
	return Height{}, parseErr(ErrAmbiguous, input, "%g fits no plausible unit band", val)
}

// decimalFeet applies the decimal-feet rule: the fractional part is a
// mathematical fraction of a foot, not inches after a point. 5.5 ft is
// 5 feet 6 inches; 5.11 ft is 5 feet 1.32 inches, not 5'11".
func decimalFeet(val float64) Height {
	feet := math.Floor(val)
	return Height{Feet: int(feet), Inches: (val - feet) * InchesPerFoot}
}

// inchesToHeight splits total inches into whole feet plus remainder inches.
func inchesToHeight(total float64) Height {
	feet := math.Floor(total / InchesPerFoot)
	return Height{Feet: int(feet), Inches: total - feet*InchesPerFoot}
}

// validateHeight rejects non-positive and implausibly tall results.
func (n *Normalizer) validateHeight(input string, h Height) (Height, error) {
	total := h.TotalInches()
	if total <= 0 {
		return Height{}, parseErr(ErrOutOfRange, input, "height must be positive, got %.2f in", total)
	}
	if total > n.limits.MaxHeightIn {
		return Height{}, parseErr(ErrOutOfRange, input, "%.1f in exceeds %.0f in ceiling", total, n.limits.MaxHeightIn)
	}
	return h, nil
}

// ParseHeightSafe adapts ParseHeight for batch callers: ok is false on any
// failure, kind discarded.
func (n *Normalizer) ParseHeightSafe(input string) (Height, bool) {
	h, err := n.ParseHeight(input)
	if err != nil {
		return Height{}, false
	}
	return h, true
}

// FormatHeight renders a height in quote notation with inches rounded to two
// decimals: `5' 10.87"`. Rounding that lands exactly on 12 rolls into the
// next foot.
func FormatHeight(h Height) string {
	if math.Round(h.Inches*100)/100 >= InchesPerFoot {
		return fmt.Sprintf(`%d' 0"`, h.Feet+1)
	}
	return fmt.Sprintf(`%d' %.2f"`, h.Feet, h.Inches)
}
