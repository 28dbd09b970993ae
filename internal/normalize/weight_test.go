package normalize

import (
	"errors"
	"math"
	"testing"
)

const weightTol = 0.01

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestParseWeight_StandardMetric(t *testing.T) {
	cases := map[string]float64{
		"70kg":              154.32,
		"70 kgs":            154.32,
		"70.5 kilo grams":   155.43,
		"70 killograms":     154.32, // double L misspelling
		"weighs 70kg":       154.32, // prefix removal
		"Weight: 70kg":      154.32,
		"about 70 kilos":    154.32,
		"~70 kilogrammes":   154.32,
		"wt. 70 kilogram":   154.32,
		"154.323583526 lbs": 154.32,
	}
	for input, want := range cases {
		got, err := ParseWeight(input)
		if err != nil {
			t.Errorf("ParseWeight(%q) error: %v", input, err)
			continue
		}
		if !almostEqual(got, want, weightTol) {
			t.Errorf("ParseWeight(%q) = %f, want %f", input, got, want)
		}
	}
}

func TestParseWeight_StoneComposites(t *testing.T) {
	// 11 st = 154 lbs, plus 6 lbs = 160 lbs.
	cases := map[string]float64{
		"11st 6lb":   160.0,
		"11-6":       160.0,
		"11 stone 6": 160.0,
		"11st6":      160.0,
	}
	for input, want := range cases {
		got, err := ParseWeight(input)
		if err != nil {
			t.Errorf("ParseWeight(%q) error: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseWeight(%q) = %f, want %f", input, got, want)
		}
	}
}

func TestParseWeight_CompositeNotMisparsedAsSingleUnit(t *testing.T) {
	// "11 stone 6" must be 11*14+6, never "11 stone" with the 6 dropped.
	got, err := ParseWeight("11 stone 6")
	if err != nil {
		t.Fatalf("ParseWeight error: %v", err)
	}
	if got != 160.0 {
		t.Errorf("composite priority broken: got %f, want 160.0", got)
	}
	if got == 154.0 {
		t.Error("trailing pounds were dropped from the composite")
	}
}

func TestParseWeight_StoneRemainderBound(t *testing.T) {
	// 14 lbs rolls into the next stone; 15 is structurally invalid even
	// though the string is syntactically composite.
	for _, input := range []string{"11st 15lb", "11 stone 15", "11-14"} {
		_, err := ParseWeight(input)
		if err == nil {
			t.Errorf("ParseWeight(%q) should fail on remainder >= 14", input)
			continue
		}
		if !errors.Is(err, ErrOutOfRange) {
			t.Errorf("ParseWeight(%q) kind = %v, want ErrOutOfRange", input, err)
		}
	}
}

func TestParseWeight_LocalizedUnits(t *testing.T) {
	cases := map[string]float64{
		"100斤":      110.23,
		"120斤":      132.28,
		"100 catty": 110.23,
		"100 jin":   110.23,
		"10貫":       82.67,
		"10 kan":    82.67,
		"2 arroba":  50.71,
		"2@":        50.71,
	}
	for input, want := range cases {
		got, err := ParseWeight(input)
		if err != nil {
			t.Errorf("ParseWeight(%q) error: %v", input, err)
			continue
		}
		if !almostEqual(got, want, weightTol) {
			t.Errorf("ParseWeight(%q) = %f, want %f", input, got, want)
		}
	}
}

func TestParseWeight_UnitlessDefaultsToPounds(t *testing.T) {
	got, err := ParseWeight("150")
	if err != nil {
		t.Fatalf("ParseWeight error: %v", err)
	}
	if got != 150.0 {
		t.Errorf("ParseWeight(\"150\") = %f, want 150.0", got)
	}
}

func TestParseWeight_ErrorKinds(t *testing.T) {
	cases := map[string]error{
		"invalid data": ErrUnparsable,
		"":             ErrUnparsable,
		"kg":           ErrUnparsable,
		"150 pizzas":   ErrUnrecognizedUnit, // present-but-unknown unit is never treated as absent
		"70 gloops":    ErrUnrecognizedUnit,
		"-50kg":        ErrOutOfRange,
		"0":            ErrOutOfRange,
		"5000kg":       ErrOutOfRange, // above the plausibility ceiling
	}
	for input, kind := range cases {
		_, err := ParseWeight(input)
		if err == nil {
			t.Errorf("ParseWeight(%q) should fail", input)
			continue
		}
		if !errors.Is(err, kind) {
			t.Errorf("ParseWeight(%q) = %v, want kind %v", input, err, kind)
		}
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("ParseWeight(%q) error is not a *ParseError", input)
		} else if pe.Input != input {
			t.Errorf("ParseWeight(%q) ParseError.Input = %q", input, pe.Input)
		}
	}
}

func TestParseWeight_ExactFactors(t *testing.T) {
	// convert(value, U) == value * F exactly, within float tolerance.
	const eps = 1e-6
	cases := []struct {
		input  string
		factor float64
	}{
		{"70kg", PoundsPerKilogram},
		{"11st", PoundsPerStone},
		{"100 jin", PoundsPerJin},
		{"10 kan", PoundsPerKan},
		{"2 arroba", PoundsPerArroba},
		{"150 lbs", 1.0},
	}
	values := map[string]float64{
		"70kg": 70, "11st": 11, "100 jin": 100, "10 kan": 10, "2 arroba": 2, "150 lbs": 150,
	}
	for _, tc := range cases {
		got, err := ParseWeight(tc.input)
		if err != nil {
			t.Errorf("ParseWeight(%q) error: %v", tc.input, err)
			continue
		}
		want := values[tc.input] * tc.factor
		if !almostEqual(got, want, eps) {
			t.Errorf("ParseWeight(%q) = %.10f, want exactly %.10f", tc.input, got, want)
		}
	}
}

func TestParseWeight_Idempotence(t *testing.T) {
	// An already-canonical value with its canonical token round-trips.
	got, err := ParseWeight("160 lb")
	if err != nil {
		t.Fatalf("ParseWeight error: %v", err)
	}
	if !almostEqual(got, 160.0, 1e-6) {
		t.Errorf("canonical round-trip drifted: got %.10f", got)
	}
}

func TestParseWeightSafe(t *testing.T) {
	if _, ok := ParseWeightSafe("invalid data"); ok {
		t.Error("ParseWeightSafe(\"invalid data\") should report absent")
	}
	if _, ok := ParseWeightSafe("-5kg"); ok {
		t.Error("ParseWeightSafe(\"-5kg\") should report absent")
	}
	got, ok := ParseWeightSafe("70kg")
	if !ok {
		t.Fatal("ParseWeightSafe(\"70kg\") should succeed")
	}
	if !almostEqual(got, 154.32, weightTol) {
		t.Errorf("ParseWeightSafe(\"70kg\") = %f, want 154.32", got)
	}
}

func TestNormalizer_CustomLimits(t *testing.T) {
	n := New(Limits{MaxWeightLbs: 300})
	if _, err := n.ParseWeight("350 lbs"); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("custom ceiling not applied: %v", err)
	}
	if _, err := n.ParseWeight("250 lbs"); err != nil {
		t.Errorf("value under custom ceiling rejected: %v", err)
	}
}
