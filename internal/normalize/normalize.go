// Package normalize converts free-text clinical measurement entries into
// canonical numeric units.
//
// Two parallel pipelines handle body weight (canonical output: pounds) and
// body height (canonical output: feet and inches). Each call runs a fixed
// stage sequence over the input string:
//   - sanitize narrative noise ("weighs", "about", "Height:")
//   - match composite patterns first ("11st 6lb", `5' 10"`)
//   - extract a single number plus trailing unit token
//   - resolve the token against the enumerated alias tables
//   - infer a unit from physiological bands when no token is present
//   - convert with exact factors and validate plausibility
//
// All tables are static and read-only after package init, so the parse
// functions are safe to call concurrently without locking. There is no
// cross-call state of any kind.
package normalize

// Limits bounds the plausibility validator. Zero values are replaced by the
// defaults, so Limits{} behaves like DefaultLimits().
type Limits struct {
	MaxWeightLbs float64
	MaxHeightIn  float64
}

// Default plausibility ceilings. No recorded human weight approaches 1500 lbs
// and no recorded human height approaches 120 inches.
const (
	DefaultMaxWeightLbs = 1500.0
	DefaultMaxHeightIn  = 120.0
)

// DefaultLimits returns the standard plausibility ceilings.
func DefaultLimits() Limits {
	return Limits{
		MaxWeightLbs: DefaultMaxWeightLbs,
		MaxHeightIn:  DefaultMaxHeightIn,
	}
}

func (l Limits) withDefaults() Limits {
	if l.MaxWeightLbs <= 0 {
		l.MaxWeightLbs = DefaultMaxWeightLbs
	}
	if l.MaxHeightIn <= 0 {
		l.MaxHeightIn = DefaultMaxHeightIn
	}
	return l
}

// Normalizer parses free-text weight and height entries. The constructor
// exists so callers can pin non-default plausibility ceilings; the
// package-level functions use DefaultLimits.
type Normalizer struct {
	limits Limits
}

// New returns a Normalizer with the given plausibility limits.
func New(limits Limits) *Normalizer {
	return &Normalizer{limits: limits.withDefaults()}
}

var defaultNormalizer = New(Limits{})

// ParseWeight parses a free-text weight entry into pounds using the default
// limits. See Normalizer.ParseWeight.
func ParseWeight(input string) (float64, error) {
	return defaultNormalizer.ParseWeight(input)
}

// ParseWeightSafe is the non-raising form of ParseWeight: ok is false on any
// parse failure, with the failure kind deliberately discarded.
func ParseWeightSafe(input string) (float64, bool) {
	return defaultNormalizer.ParseWeightSafe(input)
}

// ParseHeight parses a free-text height entry into feet and inches using the
// default limits. See Normalizer.ParseHeight.
func ParseHeight(input string) (Height, error) {
	return defaultNormalizer.ParseHeight(input)
}

// ParseHeightSafe is the non-raising form of ParseHeight.
func ParseHeightSafe(input string) (Height, bool) {
	return defaultNormalizer.ParseHeightSafe(input)
}
