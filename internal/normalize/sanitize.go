package normalize

import (
	"regexp"
	"strings"
)

// weightNoiseRE matches narrative lead-ins on weight entries:
// "weighs 70kg", "about 70kg", "~70kg", "wt. 70kg", "Weight: 70kg".
// "weight" is listed before "weighs?" so the longer spelling wins under
// leftmost-first alternation.
var weightNoiseRE = regexp.MustCompile(`^(?:weight|weighs?|wt\.?|about|approx\.?|~)[:\s]*`)

// heightNoiseRE matches narrative lead-ins on height entries:
// "Height: 180cm", "ht. 5'10", "h: 1.75m", "about 180".
var heightNoiseRE = regexp.MustCompile(`^(?:height|ht\.?|h:|about|approx\.?|~)[:\s]*`)

// sanitize lower-cases, trims, and strips one leading noise prefix. It never
// fails; an empty or still-odd result is left for the later stages to reject.
func sanitize(input string, noise *regexp.Regexp) string {
	s := strings.ToLower(strings.TrimSpace(input))
	s = noise.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
