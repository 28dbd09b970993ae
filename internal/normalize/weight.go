package normalize

import (
	"regexp"
	"strconv"
)

// maxPoundsInStone is the structural bound on a stone composite remainder:
// 14 lbs rolls over into the next stone, so a remainder of 14+ means the
// entry was mis-keyed rather than merely large.
const maxPoundsInStone = 14.0

// stoneCompositeRE matches stone-plus-pounds composites: "11st 6", "11 stone
// 6lbs", "11-6". Checked before the general extractor — the general pattern
// would otherwise take "11st" and drop the trailing pounds.
var stoneCompositeRE = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(?:st|stone|s|-)\s*(\d+(?:\.\d+)?)(?:\s*lbs?)?$`)

// weightGeneralRE matches a single signed decimal number with an optional
// trailing unit token: "70kg", "120斤", "150". The token class admits the
// localized glyphs so they survive to the alias lookup.
var weightGeneralRE = regexp.MustCompile(`^(-?[0-9]+(?:\.[0-9]+)?)\s*([a-z斤貫@\s]+)?$`)

// ParseWeight parses a free-text weight entry into pounds.
//
// Stage order: sanitize, stone-composite match, general number+unit
// extraction, alias lookup, conversion, plausibility validation. A bare
// number with no unit token defaults to pounds. A present-but-unknown unit
// token is an ErrUnrecognizedUnit, never a silent default.
func (n *Normalizer) ParseWeight(input string) (float64, error) {
	s := sanitize(input, weightNoiseRE)
	if s == "" {
		return 0, parseErr(ErrUnparsable, input, "empty input")
	}

	if m := stoneCompositeRE.FindStringSubmatch(s); m != nil {
		stones, _ := strconv.ParseFloat(m[1], 64)
		pounds, _ := strconv.ParseFloat(m[2], 64)
		if pounds >= maxPoundsInStone {
			return 0, parseErr(ErrOutOfRange, input, "%g lbs exceeds 1 stone", pounds)
		}
		return n.validateWeight(input, stones*PoundsPerStone+pounds)
	}

	m := weightGeneralRE.FindStringSubmatch(s)
	if m == nil {
		return 0, parseErr(ErrUnparsable, input, "no numeric value found")
	}

	val, _ := strconv.ParseFloat(m[1], 64)
	token := canonicalToken(m[2])

	factor := 1.0 // bare numbers default to pounds
	if token != "" {
		unit, ok := lookupWeightUnit(token)
		if !ok {
			return 0, parseErr(ErrUnrecognizedUnit, input, "unit %q", token)
		}
		factor = weightFactors[unit]
	}

	return n.validateWeight(input, val*factor)
}

// validateWeight rejects non-positive and implausibly large results.
func (n *Normalizer) validateWeight(input string, lbs float64) (float64, error) {
	if lbs <= 0 {
		return 0, parseErr(ErrOutOfRange, input, "weight must be positive, got %.2f lbs", lbs)
	}
	if lbs > n.limits.MaxWeightLbs {
		return 0, parseErr(ErrOutOfRange, input, "%.1f lbs exceeds %.0f lbs ceiling", lbs, n.limits.MaxWeightLbs)
	}
	return lbs, nil
}

// ParseWeightSafe adapts ParseWeight for batch callers that must not abort on
// a single bad record: ok is false on any failure, kind discarded.
func (n *Normalizer) ParseWeightSafe(input string) (float64, bool) {
	lbs, err := n.ParseWeight(input)
	if err != nil {
		return 0, false
	}
	return lbs, true
}
