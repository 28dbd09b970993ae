package normalize

import "strings"

// WeightUnit identifies a canonical weight unit.
type WeightUnit string

const (
	Kilogram WeightUnit = "kg"
	Pound    WeightUnit = "lb"
	Stone    WeightUnit = "st"
	Jin      WeightUnit = "jin"
	Kan      WeightUnit = "kan"
	Arroba   WeightUnit = "arroba"
)

// HeightUnit identifies a canonical height unit.
type HeightUnit string

const (
	Centimeter HeightUnit = "cm"
	Meter      HeightUnit = "m"
	Foot       HeightUnit = "ft"
	Inch       HeightUnit = "in"
)

// Exact conversion factors. International avoirdupois and trade standards;
// never rounded inside the pipeline.
const (
	PoundsPerKilogram = 2.2046226218
	PoundsPerStone    = 14.0
	PoundsPerJin      = 1.10231131 // Mainland China standard (500g)
	PoundsPerKan      = 8.267328   // historical Japanese
	PoundsPerArroba   = 25.35316   // Spanish/Portuguese standard

	InchesPerCentimeter = 0.3937007874
	InchesPerMeter      = 39.37007874
	InchesPerFoot       = 12.0
)

// weightFactors maps each canonical weight unit to its pounds multiplier.
var weightFactors = map[WeightUnit]float64{
	Kilogram: PoundsPerKilogram,
	Pound:    1.0,
	Stone:    PoundsPerStone,
	Jin:      PoundsPerJin,
	Kan:      PoundsPerKan,
	Arroba:   PoundsPerArroba,
}

// weightAliases maps every recognized weight spelling to its canonical unit.
// This is a flat, enumerated table: each abbreviation, plural, common
// misspelling, and localized glyph is a distinct key. Deliberately not fuzzy —
// exact lookup keeps the accepted vocabulary auditable.
var weightAliases = map[string]WeightUnit{
	// kilograms
	"kg":          Kilogram,
	"kgs":         Kilogram,
	"kilogram":    Kilogram,
	"kilograms":   Kilogram,
	"kilo":        Kilogram,
	"kilos":       Kilogram,
	"kilo gram":   Kilogram,
	"kilo grams":  Kilogram,
	"kilogramme":  Kilogram,
	"kilogrammes": Kilogram,
	"kilog":       Kilogram,
	"kgram":       Kilogram,
	"killogram":   Kilogram,
	"killograms":  Kilogram,

	// pounds
	"lb":      Pound,
	"lbs":     Pound,
	"pound":   Pound,
	"pounds":  Pound,
	"pount":   Pound,
	"pouds":   Pound,
	"lbses":   Pound,
	"poundes": Pound,
	"lbse":    Pound,

	// stones
	"st":      Stone,
	"sts":     Stone,
	"stone":   Stone,
	"stones":  Stone,
	"ston":    Stone,
	"stonnes": Stone,

	// jin / catty — unified for clinical use
	"jin":     Jin,
	"jins":    Jin,
	"jing":    Jin,
	"gin":     Jin,
	"斤":       Jin,
	"catty":   Jin,
	"catties": Jin,
	"kati":    Jin,
	"katii":   Jin,
	"caty":    Jin,

	// kan
	"kan":  Kan,
	"kans": Kan,
	"貫":    Kan,

	// arroba
	"arroba":  Arroba,
	"arrobas": Arroba,
	"arrobe":  Arroba,
	"aroba":   Arroba,
	"@":       Arroba,
}

// heightAliases maps every recognized height spelling to its canonical unit,
// including the quote-mark notation produced by FormatHeight.
var heightAliases = map[string]HeightUnit{
	// centimeters
	"cm":          Centimeter,
	"cms":         Centimeter,
	"centimeter":  Centimeter,
	"centimeters": Centimeter,
	"centimetre":  Centimeter,
	"centimetres": Centimeter,

	// meters
	"m":      Meter,
	"meter":  Meter,
	"meters": Meter,
	"metre":  Meter,
	"metres": Meter,

	// feet
	"'":    Foot,
	"ft":   Foot,
	"feet": Foot,
	"foot": Foot,

	// inches
	`"`:      Inch,
	"in":     Inch,
	"ins":    Inch,
	"inch":   Inch,
	"inches": Inch,
}

// canonicalToken collapses a raw unit token for table lookup: trims spaces and
// stray periods, folds internal whitespace runs to single spaces. Case folding
// already happened in the sanitizer.
func canonicalToken(raw string) string {
	t := strings.Trim(raw, " .")
	if strings.ContainsAny(t, " \t") {
		t = strings.Join(strings.Fields(t), " ")
	}
	return t
}

// lookupWeightUnit resolves a raw unit token to a canonical weight unit.
// A miss is a normal outcome, not an error.
func lookupWeightUnit(raw string) (WeightUnit, bool) {
	u, ok := weightAliases[canonicalToken(raw)]
	return u, ok
}

// lookupHeightUnit resolves a raw unit token to a canonical height unit.
func lookupHeightUnit(raw string) (HeightUnit, bool) {
	u, ok := heightAliases[canonicalToken(raw)]
	return u, ok
}
